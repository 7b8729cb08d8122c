// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/selection"
)

// A SizeScale maps attribute values to sizes.
type SizeScale struct {
	attr     string
	min, max float64
	clip     [2]float64

	// knots are the (attribute value, size) points the scale
	// passes through, in increasing attribute order.
	knots [][2]float64

	// extrapolate extends the first and last segments past the
	// knots. Otherwise sizes are held constant beyond them.
	extrapolate bool
}

// ParseSize parses a size anchor.
func ParseSize(s string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSize, s)
	}
	return x, nil
}

// SizeScale returns a size scale for attr anchored at the sizes of
// groups, whose values must be size anchors.
//
// The scale is the line through the anchor sizes placed at the medians
// of the groups with the lowest and highest median, clipped to the
// Clip range. If there is only one group, or the two extremes coincide,
// the scale instead runs piecewise linearly from Target[0] at the
// dataset minimum through the anchor to Target[1] at the dataset
// maximum.
func (ip *Interpolator) SizeScale(groups []selection.Group, d *dataset.Dataset, attr string) (*SizeScale, error) {
	meds, err := medians(d, attr, groups)
	if err != nil {
		return nil, err
	}
	ext, err := ip.extent(d, attr)
	if err != nil {
		return nil, err
	}
	sizes := make([]float64, len(groups))
	for i, g := range groups {
		if sizes[i], err = ParseSize(g.Value); err != nil {
			return nil, err
		}
	}

	o := ip.opts.Size
	s := &SizeScale{attr: attr, min: ext.min, max: ext.max, clip: o.Clip}
	lo, hi := extremes(meds)
	if lo != hi && meds[lo] != meds[hi] {
		s.knots = [][2]float64{{meds[lo], sizes[lo]}, {meds[hi], sizes[hi]}}
		s.extrapolate = true
		return s, nil
	}

	// Synthesize anchors at the dataset extent around the one
	// usable anchor.
	m, size := meds[lo], sizes[lo]
	if ext.min < m {
		s.knots = append(s.knots, [2]float64{ext.min, o.Target[0]})
	}
	s.knots = append(s.knots, [2]float64{m, size})
	if m < ext.max {
		s.knots = append(s.knots, [2]float64{ext.max, o.Target[1]})
	}
	return s, nil
}

// Size returns the size of x.
func (s *SizeScale) Size(x float64) float64 {
	k := s.knots
	var y float64
	switch {
	case len(k) == 1:
		y = k[0][1]
	case x <= k[0][0] && !s.extrapolate:
		y = k[0][1]
	case x >= k[len(k)-1][0] && !s.extrapolate:
		y = k[len(k)-1][1]
	default:
		// Find the segment containing x, using the end
		// segments for extrapolation.
		i := 1
		for i < len(k)-1 && x > k[i][0] {
			i++
		}
		a, b := k[i-1], k[i]
		y = a[1] + (x-a[0])*(b[1]-a[1])/(b[0]-a[0])
	}
	return math.Max(s.clip[0], math.Min(s.clip[1], y))
}

// Attr returns the attribute s is over.
func (s *SizeScale) Attr() string { return s.attr }

// Domain returns the extent of the attribute over the dataset.
func (s *SizeScale) Domain() (min, max float64) { return s.min, s.max }

// Format returns the size of x with at most one decimal.
func (s *SizeScale) Format(x float64) string { return fmt1(s.Size(x)) }

// Range returns the sizes at the ends of the domain.
func (s *SizeScale) Range() (lo, hi string) {
	return s.Format(s.min), s.Format(s.max)
}

// Ticks returns at most n legend ticks.
func (s *SizeScale) Ticks(n int) []float64 {
	return domainTicks(s.min, s.max, n)
}
