// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"image/color"

	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/selection"
)

// A ColorScale maps attribute values to HSL colors.
type ColorScale struct {
	attr     string
	min, max float64
	fn       func(x float64) HSL
}

// ColorScale returns a color scale for attr anchored at the colors of
// groups, whose values must be color anchors.
//
// With one group, hue and saturation are the anchor's, and lightness
// runs from SingleLow at the dataset minimum through the anchor's
// lightness at the group median to SingleHigh at the dataset maximum.
//
// With more groups, only the groups with the lowest and highest median
// are used. The scale holds the low anchor's hue from the dataset
// minimum to its median while lightness runs from MultiLow to the
// anchor's lightness, then rotates hue to the high anchor's at Mid
// lightness, then holds the high anchor's hue while lightness runs to
// MultiHigh at the dataset maximum. Saturation is fixed.
func (ip *Interpolator) ColorScale(groups []selection.Group, d *dataset.Dataset, attr string) (*ColorScale, error) {
	meds, err := medians(d, attr, groups)
	if err != nil {
		return nil, err
	}
	ext, err := ip.extent(d, attr)
	if err != nil {
		return nil, err
	}
	anchors := make([]HSL, len(groups))
	for i, g := range groups {
		if anchors[i], err = ParseHSL(g.Value); err != nil {
			return nil, err
		}
	}

	s := &ColorScale{attr: attr, min: ext.min, max: ext.max}
	if len(groups) == 1 {
		s.fn = ip.oneAnchor(anchors[0], meds[0], ext)
	} else {
		lo, hi := extremes(meds)
		s.fn = ip.twoAnchors(anchors[lo], meds[lo], anchors[hi], meds[hi], ext)
	}
	return s, nil
}

func (ip *Interpolator) oneAnchor(c HSL, med float64, ext extent) func(float64) HSL {
	if ext.min == ext.max {
		return func(float64) HSL { return c }
	}
	o := ip.opts.Color
	return func(x float64) HSL {
		out := c
		switch {
		case x < med:
			out.L = lerp(x, ext.min, med, o.SingleLow, c.L)
		case x > med:
			out.L = lerp(x, med, ext.max, c.L, o.SingleHigh)
		}
		return out
	}
}

func (ip *Interpolator) twoAnchors(c1 HSL, v1 float64, c2 HSL, v2 float64, ext extent) func(float64) HSL {
	o := ip.opts.Color
	return func(x float64) HSL {
		switch {
		case x <= v1:
			return HSL{c1.H, o.Saturation, lerp(x, ext.min, v1, o.MultiLow, c1.L)}
		case x <= v2:
			return HSL{lerp(x, v1, v2, c1.H, c2.H), o.Saturation, o.Mid}
		}
		return HSL{c2.H, o.Saturation, lerp(x, v2, ext.max, c2.L, o.MultiHigh)}
	}
}

// Attr returns the attribute s is over.
func (s *ColorScale) Attr() string { return s.attr }

// Domain returns the extent of the attribute over the dataset.
func (s *ColorScale) Domain() (min, max float64) { return s.min, s.max }

// HSL returns the color of x.
func (s *ColorScale) HSL(x float64) HSL { return s.fn(x) }

// Color returns the color of x for rendering.
func (s *ColorScale) Color(x float64) color.Color { return s.fn(x) }

// Format returns the color of x as an "hsl(H, S%, L%)" string.
func (s *ColorScale) Format(x float64) string { return s.fn(x).String() }

// Range returns the colors at the ends of the domain.
func (s *ColorScale) Range() (lo, hi string) {
	return s.Format(s.min), s.Format(s.max)
}

// Ticks returns at most n legend ticks.
func (s *ColorScale) Ticks(n int) []float64 {
	return domainTicks(s.min, s.max, n)
}
