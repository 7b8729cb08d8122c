// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package describe computes the descriptive statistics shared by the
// classifier and the scale interpolator.
//
// Every function returns NaN for a statistic that is undefined on its
// input rather than failing; callers decide whether that is an error.
package describe

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Median returns the median of xs, or NaN if xs is empty.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stats.Sample{Xs: xs}.Quantile(0.5)
}

// Extent returns the minimum and maximum of xs. Both are NaN if xs is
// empty.
func Extent(xs []float64) (min, max float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	return stats.Bounds(xs)
}

// Variance returns the sample variance of xs. It is NaN for fewer
// than two values.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stats.Variance(xs)
}

// SumSquares returns the mean of xs and the sum of squared deviations
// of xs from that mean. Both are NaN if xs is empty.
func SumSquares(xs []float64) (mean, ss float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	mean = stats.Mean(xs)
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, ss
}
