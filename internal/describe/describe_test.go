// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package describe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	for _, test := range []struct {
		xs   []float64
		want float64
	}{
		{[]float64{5}, 5},
		{[]float64{1, 2, 3}, 2},
		{[]float64{3, 1, 2}, 2},
		{[]float64{1, 2, 3, 4}, 2.5},
		{[]float64{1, 2}, 1.5},
	} {
		assert.InDelta(t, test.want, Median(test.xs), 1e-9, "Median(%v)", test.xs)
	}
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestMedianDoesNotReorder(t *testing.T) {
	xs := []float64{3, 1, 2}
	Median(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestExtent(t *testing.T) {
	min, max := Extent([]float64{3, -1, 7, 2})
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 7.0, max)

	min, max = Extent(nil)
	assert.True(t, math.IsNaN(min))
	assert.True(t, math.IsNaN(max))
}

func TestVariance(t *testing.T) {
	assert.InDelta(t, 0.5, Variance([]float64{1, 2}), 1e-9)
	assert.InDelta(t, 5.0/3, Variance([]float64{1, 2, 3, 4}), 1e-9)
	assert.Equal(t, 0.0, Variance([]float64{4, 4, 4}))
	assert.True(t, math.IsNaN(Variance([]float64{1})))
	assert.True(t, math.IsNaN(Variance(nil)))
}

func TestSumSquares(t *testing.T) {
	mean, ss := SumSquares([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, mean, 1e-9)
	assert.InDelta(t, 5, ss, 1e-9)

	mean, ss = SumSquares([]float64{7})
	assert.Equal(t, 7.0, mean)
	assert.Equal(t, 0.0, ss)

	mean, ss = SumSquares(nil)
	assert.True(t, math.IsNaN(mean))
	assert.True(t, math.IsNaN(ss))
}
