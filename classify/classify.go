// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package classify ranks numeric attributes by how well a grouping of
// records explains them.
//
// With a single group, an attribute's score is the variance of the
// attribute within the group divided by its variance over the whole
// dataset; a smaller ratio means the group is tight on that attribute,
// so lower scores rank first. An attribute with zero or undefined
// total variance scores Unusable and ranks last.
//
// With two or more groups, the score is the one-way ANOVA F statistic
// of the attribute across the groups; higher scores rank first.
// Attributes whose F statistic is not finite are left out.
package classify

import (
	"math"
	"slices"

	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/internal/describe"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"
)

// Unusable is the single-group score of an attribute whose total
// variance is zero or undefined.
const Unusable = -1

// A Method identifies the statistic behind a Score.
type Method int

const (
	// VarianceRatio is used for a single group.
	VarianceRatio Method = iota
	// FStatistic is used for two or more groups.
	FStatistic
)

func (m Method) String() string {
	if m == VarianceRatio {
		return "variance ratio"
	}
	return "F"
}

// A Score is the ranking statistic of one attribute.
type Score struct {
	Attr   string
	Method Method
	Value  float64

	// PValue is the probability of an F statistic at least this
	// large if the groups did not differ. It is NaN for
	// VarianceRatio scores.
	PValue float64
}

// A Classifier ranks the numeric attributes of the current dataset.
//
// It caches the numeric attribute list of the last dataset it saw,
// keyed by the dataset's token.
type Classifier struct {
	src dataset.Source

	token uuid.UUID
	attrs []string
}

// New returns a Classifier over the datasets returned by src.
func New(src dataset.Source) *Classifier {
	return &Classifier{src: src}
}

// Invalidate drops the cached attribute list. It is not needed for
// correctness, since the cache is keyed by dataset token, but releases
// the cached state of a replaced dataset.
func (c *Classifier) Invalidate() {
	c.token = uuid.Nil
	c.attrs = nil
}

// numericAttrs returns the numeric attributes of d, from the cache if
// d is the dataset last seen.
func (c *Classifier) numericAttrs(d *dataset.Dataset) []string {
	if c.attrs == nil || c.token != d.Token() {
		c.token = d.Token()
		c.attrs = d.NumericAttrs()
	}
	return c.attrs
}

// MostSimilarAttrs returns up to k numeric attribute names that best
// explain groups, best first. It returns nil if groups is empty or
// k <= 0.
func (c *Classifier) MostSimilarAttrs(groups []dataset.IDSet, k int) []string {
	scores := c.Scores(groups)
	if k < 0 {
		k = 0
	}
	if len(scores) > k {
		scores = scores[:k]
	}
	var out []string
	for _, s := range scores {
		out = append(out, s.Attr)
	}
	return out
}

// Scores returns the scores of every rankable numeric attribute for
// groups, best first. Ties keep dataset column order.
func (c *Classifier) Scores(groups []dataset.IDSet) []Score {
	if len(groups) == 0 {
		return nil
	}
	d := c.src.Data()
	if d == nil {
		return nil
	}
	attrs := c.numericAttrs(d)

	var scores []Score
	if len(groups) == 1 {
		for _, attr := range attrs {
			r := varianceRatio(d, attr, groups[0])
			if r == Unusable || isFinite(r) {
				scores = append(scores, Score{attr, VarianceRatio, r, math.NaN()})
			}
		}
		slices.SortStableFunc(scores, func(a, b Score) int {
			return compareRatio(a.Value, b.Value)
		})
		return scores
	}

	for _, attr := range attrs {
		f, n := fStatistic(d, attr, groups)
		if isFinite(f) {
			scores = append(scores, Score{attr, FStatistic, f, pValue(f, n, len(groups))})
		}
	}
	slices.SortStableFunc(scores, func(a, b Score) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return 0
	})
	return scores
}

// compareRatio orders variance ratios ascending with Unusable last.
func compareRatio(a, b float64) int {
	switch {
	case a == b:
		return 0
	case a == Unusable:
		return 1
	case b == Unusable:
		return -1
	case a < b:
		return -1
	}
	return 1
}

// varianceRatio returns the variance of attr within group divided by
// its variance over the whole dataset. It returns Unusable if the
// total variance is zero or undefined, and NaN if the group variance
// is undefined.
func varianceRatio(d *dataset.Dataset, attr string, group dataset.IDSet) float64 {
	total := describe.Variance(d.AllValues(attr))
	if total == 0 || math.IsNaN(total) {
		return Unusable
	}
	return describe.Variance(d.Values(attr, group)) / total
}

// fStatistic returns the one-way ANOVA F statistic of attr across
// groups and the pooled sample size. The between-group sum of squares
// is summed directly from the group means, so it is never negative.
func fStatistic(d *dataset.Dataset, attr string, groups []dataset.IDSet) (f float64, n int) {
	var pooled []float64
	means := make([]float64, len(groups))
	counts := make([]int, len(groups))
	var within float64
	for i, g := range groups {
		xs := d.Values(attr, g)
		mean, ss := describe.SumSquares(xs)
		means[i], counts[i] = mean, len(xs)
		within += ss
		pooled = append(pooled, xs...)
	}
	grand, _ := describe.SumSquares(pooled)
	var between float64
	for i, mean := range means {
		dev := mean - grand
		between += float64(counts[i]) * dev * dev
	}

	N, k := float64(len(pooled)), float64(len(groups))
	return (N - k) * between / (within * (k - 1)), len(pooled)
}

// pValue returns the upper tail probability of f under the F
// distribution for k groups and n pooled samples.
func pValue(f float64, n, k int) float64 {
	if n <= k {
		return math.NaN()
	}
	if f <= 0 {
		return 1
	}
	dist := distuv.F{D1: float64(k - 1), D2: float64(n - k)}
	return 1 - dist.CDF(f)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
