// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSL is a color in the HSL model. H is in degrees; S and L are in
// [0, 1]. HSL implements color.Color.
type HSL struct {
	H, S, L float64
}

var hslRe = regexp.MustCompile(`(?i)^hsl\(\s*([-+]?[0-9]*\.?[0-9]+)\s*,\s*([-+]?[0-9]*\.?[0-9]+)%?\s*,\s*([-+]?[0-9]*\.?[0-9]+)%?\s*\)$`)

// ParseHSL parses a color anchor. It accepts "hsl(H, S%, L%)", where
// the spaces and percent signs are optional, and "#rrggbb".
func ParseHSL(s string) (HSL, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
		}
		h, sat, l := c.Hsl()
		return HSL{h, sat, l}, nil
	}

	m := hslRe.FindStringSubmatch(s)
	if m == nil {
		return HSL{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}
	var v [3]float64
	for i := range v {
		x, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: %q: %v", ErrMalformedColor, s, err)
		}
		v[i] = x
	}
	if v[1] < 0 || v[1] > 100 || v[2] < 0 || v[2] > 100 {
		return HSL{}, fmt.Errorf("%w: %q: saturation and lightness must be in [0, 100]", ErrMalformedColor, s)
	}
	return HSL{normHue(v[0]), v[1] / 100, v[2] / 100}, nil
}

// normHue maps h to [0, 360).
func normHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// String formats c as "hsl(H, S%, L%)" with at most one decimal.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", fmt1(normHue(c.H)), fmt1(c.S*100), fmt1(c.L*100))
}

// RGBA implements color.Color.
func (c HSL) RGBA() (r, g, b, a uint32) {
	return colorful.Hsl(normHue(c.H), clamp01(c.S), clamp01(c.L)).Clamped().RGBA()
}

func fmt1(x float64) string {
	x = math.Round(x*10) / 10
	if x == 0 {
		// Avoid "-0".
		x = 0
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
