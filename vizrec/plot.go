// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/interp"
	"github.com/aclements/vizrec/selection"
)

// unassigned is the color of records with neither a manual color nor a
// value on the color scale's attribute.
var unassigned = color.Gray{192}

// writePlot writes an SVG scatterplot of attributes x and y to w. Each
// point takes its manually assigned color and size if it has one, and
// otherwise its value on the top recommended scale of each field.
func (s *session) writePlot(w io.Writer, x, y string) error {
	d := s.data
	x, y, err := plotAxes(d, x, y)
	if err != nil {
		return err
	}
	xs, _ := d.Column(x)
	ys, _ := d.Column(y)

	colorAttr, sc := s.topScale(selection.Color)
	colorScale, _ := sc.(*interp.ColorScale)
	sizeAttr, sc := s.topScale(selection.Size)
	sizeScale, _ := sc.(*interp.SizeScale)
	var colorCol []float64
	if colorScale != nil {
		colorCol, _ = d.Column(colorAttr)
	}
	var sizeCol []float64
	if sizeScale != nil {
		sizeCol, _ = d.Column(sizeAttr)
	}

	var (
		px, py   []float64
		pcolor   []color.Color
		psize    []float64
		anySizes bool
	)
	for i, id := range d.IDs() {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		px, py = append(px, xs[i]), append(py, ys[i])

		var c color.Color = unassigned
		if v, ok := s.coord.Value(selection.Color, id); ok {
			if hsl, err := interp.ParseHSL(v); err == nil {
				c = hsl
			}
		} else if colorScale != nil && !math.IsNaN(colorCol[i]) {
			c = colorScale.Color(colorCol[i])
		}
		pcolor = append(pcolor, c)

		size := math.NaN()
		if v, ok := s.coord.Value(selection.Size, id); ok {
			if sz, err := interp.ParseSize(v); err == nil {
				size = sz
			}
		} else if sizeScale != nil && !math.IsNaN(sizeCol[i]) {
			size = sizeScale.Size(sizeCol[i])
		}
		if !math.IsNaN(size) {
			anySizes = true
		}
		psize = append(psize, size)
	}
	if len(px) == 0 {
		return fmt.Errorf("no records have both %s and %s", x, y)
	}

	b := new(table.Builder).Add("x", px).Add("y", py).Add("color", pcolor)
	layer := gg.LayerPoints{X: "x", Y: "y", Color: "color"}
	if anySizes {
		for i := range psize {
			if math.IsNaN(psize[i]) {
				psize[i] = 1
			}
		}
		b.Add("size", psize)
		layer.Size = "size"
	}

	p := gg.NewPlot(b.Done())
	p.Add(layer)
	p.Add(gg.Title(fmt.Sprintf("%s by %s", y, x)))
	return p.WriteSVG(w, 500, 400)
}

// plotAxes fills in default axes from d's numeric attributes.
func plotAxes(d *dataset.Dataset, x, y string) (string, string, error) {
	numeric := d.NumericAttrs()
	if x == "" && len(numeric) > 0 {
		x = numeric[0]
	}
	if y == "" && len(numeric) > 1 {
		y = numeric[1]
	}
	for _, attr := range []string{x, y} {
		if attr == "" {
			return "", "", fmt.Errorf("plot needs two numeric attributes")
		}
		if !d.IsNumeric(attr) {
			return "", "", fmt.Errorf("%s is not a numeric attribute", attr)
		}
	}
	return x, y, nil
}

// topScale returns the best recommended attribute of f that has a
// scale, or "", nil.
func (s *session) topScale(f selection.Field) (string, interp.Scale) {
	for _, attr := range s.coord.Recommendations(f) {
		if sc, ok := s.coord.InterpolatedScale(f, attr); ok {
			return attr, sc
		}
	}
	return "", nil
}
