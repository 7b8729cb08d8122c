// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package interp builds continuous color and size scales anchored at
// the values users assigned by hand to groups of records.
//
// A color scale places each group's anchor color at the median of the
// target attribute within the group and interpolates in HSL across the
// attribute's extent over the dataset. A size scale does the same
// linearly between anchor sizes.
package interp

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/internal/describe"
	"github.com/aclements/vizrec/selection"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ColorOptions are the fixed lightness and saturation bounds of color
// scales. Lightness decreases as the attribute increases.
type ColorOptions struct {
	// SingleLow and SingleHigh are the lightness at the dataset
	// minimum and maximum of a single-group scale.
	SingleLow  float64 `yaml:"single_low"`
	SingleHigh float64 `yaml:"single_high"`

	// MultiLow and MultiHigh are the lightness at the dataset
	// minimum and maximum of a multi-group scale.
	MultiLow  float64 `yaml:"multi_low"`
	MultiHigh float64 `yaml:"multi_high"`

	// Mid is the lightness between the two anchors of a
	// multi-group scale.
	Mid float64 `yaml:"mid"`

	// Saturation is the saturation of every multi-group color,
	// matching the color picker's palette.
	Saturation float64 `yaml:"saturation"`
}

// SizeOptions bound size scales.
type SizeOptions struct {
	// Target is the size range synthesized at the dataset extent
	// when there is only one usable anchor.
	Target [2]float64 `yaml:"target"`

	// Clip is the range every size is clipped to.
	Clip [2]float64 `yaml:"clip"`
}

// Options configures an Interpolator.
type Options struct {
	Color ColorOptions `yaml:"color"`
	Size  SizeOptions  `yaml:"size"`

	// ExtentCacheSize is the number of attribute extents cached.
	ExtentCacheSize int `yaml:"extent_cache_size"`
}

// DefaultOptions returns the default scale options.
func DefaultOptions() Options {
	return Options{
		Color: ColorOptions{
			SingleLow:  0.7,
			SingleHigh: 0.1,
			MultiLow:   0.8,
			MultiHigh:  0.2,
			Mid:        0.5,
			Saturation: 0.9,
		},
		Size: SizeOptions{
			Target: [2]float64{2, 20},
			Clip:   [2]float64{1, 40},
		},
		ExtentCacheSize: 64,
	}
}

// Validate reports whether o can produce scales.
func (o Options) Validate() error {
	for _, v := range []struct {
		name string
		x    float64
	}{
		{"color.single_low", o.Color.SingleLow},
		{"color.single_high", o.Color.SingleHigh},
		{"color.multi_low", o.Color.MultiLow},
		{"color.multi_high", o.Color.MultiHigh},
		{"color.mid", o.Color.Mid},
		{"color.saturation", o.Color.Saturation},
	} {
		if !(v.x >= 0 && v.x <= 1) {
			return fmt.Errorf("%w: %s = %v not in [0, 1]", ErrConfiguration, v.name, v.x)
		}
	}
	if !(o.Size.Clip[0] <= o.Size.Clip[1]) {
		return fmt.Errorf("%w: size.clip %v is empty", ErrConfiguration, o.Size.Clip)
	}
	if o.ExtentCacheSize <= 0 {
		return fmt.Errorf("%w: extent_cache_size must be positive", ErrConfiguration)
	}
	return nil
}

// A Scale maps values of a numeric attribute to rendered values.
type Scale interface {
	// Attr returns the attribute the scale is over.
	Attr() string

	// Domain returns the extent of the attribute over the dataset.
	Domain() (min, max float64)

	// Format returns the rendered value for x as a string.
	Format(x float64) string

	// Range returns the rendered values at the ends of the domain.
	Range() (lo, hi string)

	// Ticks returns at most n legend tick positions in the domain.
	Ticks(n int) []float64
}

// An Interpolator builds scales from groups. It caches the extent of
// each attribute of the last dataset it saw.
//
// An Interpolator is not safe for concurrent use.
type Interpolator struct {
	opts Options

	token   uuid.UUID
	extents *lru.Cache[string, extent]
}

type extent struct {
	min, max float64
}

// NewInterpolator returns an Interpolator using opts, which must be
// valid.
func NewInterpolator(opts Options) (*Interpolator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cache, err := lru.New[string, extent](opts.ExtentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &Interpolator{opts: opts, extents: cache}, nil
}

// Options returns the options of ip.
func (ip *Interpolator) Options() Options {
	return ip.opts
}

// Invalidate drops every cached extent. Extents are keyed by dataset
// token, so this is only needed to release memory early.
func (ip *Interpolator) Invalidate() {
	ip.token = uuid.Nil
	ip.extents.Purge()
}

// extent returns the extent of attr over d.
func (ip *Interpolator) extent(d *dataset.Dataset, attr string) (extent, error) {
	if d.Token() != ip.token {
		ip.extents.Purge()
		ip.token = d.Token()
	}
	if e, ok := ip.extents.Get(attr); ok {
		return e, nil
	}
	if !d.IsNumeric(attr) {
		return extent{}, fmt.Errorf("%w: %q is not a numeric attribute", ErrStatisticUndefined, attr)
	}
	min, max := describe.Extent(d.AllValues(attr))
	if math.IsNaN(min) {
		return extent{}, fmt.Errorf("%w: extent of %q: no values", ErrStatisticUndefined, attr)
	}
	e := extent{min, max}
	ip.extents.Add(attr, e)
	return e, nil
}

// medians returns the median of attr within each group.
func medians(d *dataset.Dataset, attr string, groups []selection.Group) ([]float64, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: no groups", ErrConfiguration)
	}
	out := make([]float64, len(groups))
	for i, g := range groups {
		m := describe.Median(d.Values(attr, g.IDs))
		if math.IsNaN(m) {
			return nil, fmt.Errorf("%w: median of %q for group %q: no matching rows", ErrStatisticUndefined, attr, g.Value)
		}
		out[i] = m
	}
	return out, nil
}

// extremes returns the indexes of the first smallest and first largest
// of xs.
func extremes(xs []float64) (lo, hi int) {
	for i, x := range xs {
		if x < xs[lo] {
			lo = i
		}
		if x > xs[hi] {
			hi = i
		}
	}
	return lo, hi
}

// lerp maps x in [x0, x1] linearly to [y0, y1], clamping x to the
// interval. If the interval is empty, it returns y1.
func lerp(x, x0, x1, y0, y1 float64) float64 {
	if x0 == x1 {
		return y1
	}
	l := scale.Linear{Min: x0, Max: x1, Clamp: true}
	return y0 + (y1-y0)*l.Map(x)
}

// domainTicks returns at most n nice tick positions in [min, max].
func domainTicks(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if min == max {
		return []float64{min}
	}
	l := scale.Linear{Min: min, Max: max}
	major, _ := l.Ticks(scale.TickOptions{Max: n})
	return major
}
