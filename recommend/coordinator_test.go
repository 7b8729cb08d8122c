// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recommend

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/interp"
	"github.com/aclements/vizrec/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// abc has a linear attribute A, a noisy attribute B, and a constant
// attribute C.
const abc = "A,B,C\n1,5,3\n2,9,3\n3,1,3\n4,6,3\n"

func ids(xs ...dataset.ID) dataset.IDSet {
	return dataset.NewIDSet(xs...)
}

func newCoordinator(t *testing.T, src dataset.Source, opts ...Option) *Coordinator {
	t.Helper()
	c, err := New(src, DefaultConfig(), opts...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadConfig(t *testing.T) {
	src := dataset.Static(dataset.MustLoadString(abc, ""))
	cfg := DefaultConfig()
	cfg.K = -1
	_, err := New(src, cfg)
	assert.ErrorIs(t, err, interp.ErrConfiguration)

	cfg = DefaultConfig()
	cfg.Scales.ExtentCacheSize = 0
	_, err = New(src, cfg)
	assert.ErrorIs(t, err, interp.ErrConfiguration)
}

func TestSingleGroup(t *testing.T) {
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")))
	assert.Equal(t, Empty, c.State(selection.Color))

	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	assert.Equal(t, HasGroups, c.State(selection.Color))
	assert.Equal(t, Empty, c.State(selection.Size))

	// var(A{1,2}) / var(A) = 0.3 beats var(B{5,9}) / var(B) = 0.73,
	// and C has no variance.
	assert.Equal(t, []string{"A", "B"}, c.Recommendations(selection.Color))
	assert.Empty(t, c.Recommendations(selection.Size))

	s, ok := c.InterpolatedScale(selection.Color, "A")
	require.True(t, ok)
	assert.Equal(t, "A", s.Attr())
	assert.IsType(t, &interp.ColorScale{}, s)
	_, ok = c.InterpolatedScale(selection.Color, "B")
	assert.True(t, ok)

	v, ok := c.Value(selection.Color, 1)
	assert.True(t, ok)
	assert.Equal(t, "hsl(0,90%,50%)", v)
	_, ok = c.Value(selection.Color, 2)
	assert.False(t, ok)
}

func TestTwoGroups(t *testing.T) {
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")))
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	c.Assign(selection.Color, ids(2, 3), "hsl(240,90%,50%)")

	// F(A) = 8, F(B) is about 1.2, and F(C) is undefined.
	assert.Equal(t, []string{"A", "B"}, c.Recommendations(selection.Color))
	scores := c.Scores(selection.Color)
	require.Len(t, scores, 2)
	assert.InDelta(t, 8, scores[0].Value, 1e-9)

	s, ok := c.InterpolatedScale(selection.Color, "A")
	require.True(t, ok)
	cs := s.(*interp.ColorScale)
	assert.InDelta(t, 0, cs.HSL(1).H, 1e-9)
	assert.InDelta(t, 240, cs.HSL(4).H, 1e-9)
}

func TestSizeField(t *testing.T) {
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")))
	c.Assign(selection.Size, ids(0, 1), "4")
	c.Assign(selection.Size, ids(2, 3), "12")

	s, ok := c.InterpolatedScale(selection.Size, "A")
	require.True(t, ok)
	ss := s.(*interp.SizeScale)
	// A line through (1.5, 4) and (3.5, 12).
	assert.InDelta(t, 2, ss.Size(1), 1e-9)
	assert.InDelta(t, 14, ss.Size(4), 1e-9)

	_, ok = c.InterpolatedScale(selection.Color, "A")
	assert.False(t, ok)
}

func TestResetAllWithoutAssignments(t *testing.T) {
	var notified []selection.Field
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")),
		OnGroupingChanged(func(f selection.Field) { notified = append(notified, f) }))

	c.ResetAll(selection.Color)
	assert.Empty(t, c.Groups(selection.Color))
	assert.Empty(t, c.Recommendations(selection.Color))
	assert.Equal(t, []selection.Field{selection.Color}, notified)
}

func TestAssignEmptySet(t *testing.T) {
	var notified int
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")),
		OnGroupingChanged(func(selection.Field) { notified++ }))
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	before := c.Groups(selection.Color)

	c.Assign(selection.Color, ids(), "hsl(120,90%,50%)")
	assert.Equal(t, 2, notified)
	assert.Equal(t, before, c.Groups(selection.Color))
}

func TestScaleOfNonRecommendedAttr(t *testing.T) {
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")))
	s, ok := c.InterpolatedScale(selection.Color, "NonRecommendedAttr")
	assert.False(t, ok)
	assert.Nil(t, s)

	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	s, ok = c.InterpolatedScale(selection.Color, "C")
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.NoError(t, c.ScaleErr(selection.Color, "C"))
}

func TestCallbacksSeeRecomputedState(t *testing.T) {
	var events []string
	var c *Coordinator
	c = newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")),
		OnGroupingChanged(func(f selection.Field) {
			events = append(events, "grouping "+f.String())
			// Recommendations and scales are already current.
			assert.Equal(t, c.HasActiveSelection(f), len(c.Recommendations(f)) > 0)
			for _, attr := range c.Recommendations(f) {
				_, ok := c.InterpolatedScale(f, attr)
				assert.True(t, ok, attr)
			}
		}),
		OnRecommendationChanged(func(recs []Recommendation) {
			events = append(events, "recommendations")
			assert.Equal(t, c.AllRecommendations(), recs)
		}))

	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	c.Assign(selection.Size, ids(2, 3), "10")
	c.Clear(selection.Color, ids(0, 1))

	assert.Equal(t, []string{
		"grouping color", "recommendations",
		"grouping size", "recommendations",
		"grouping color", "recommendations",
	}, events)
}

func TestAllRecommendations(t *testing.T) {
	var last []Recommendation
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")),
		OnRecommendationChanged(func(recs []Recommendation) { last = recs }))

	c.Assign(selection.Size, ids(2, 3), "10")
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	assert.Equal(t, []Recommendation{
		{selection.Color, "A"}, {selection.Color, "B"},
		{selection.Size, "A"}, {selection.Size, "B"},
	}, last)

	c.Reset(selection.Color, nil)
	assert.Equal(t, []Recommendation{{selection.Size, "A"}, {selection.Size, "B"}}, last)
	assert.Equal(t, Empty, c.State(selection.Color))
}

func TestReset(t *testing.T) {
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")))
	c.Assign(selection.Color, ids(0, 1, 2), "hsl(0,90%,50%)")

	c.Reset(selection.Color, ids())
	assert.Len(t, c.AllGroups(selection.Color), 1)

	c.Reset(selection.Color, ids(2))
	require.Len(t, c.AllGroups(selection.Color), 1)
	assert.Equal(t, ids(0, 1), c.AllGroups(selection.Color)[0])

	c.Reset(selection.Color, nil)
	assert.False(t, c.HasActiveSelection(selection.Color))
}

func TestScaleFailureIsolated(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	var published []Recommendation
	c := newCoordinator(t, dataset.Static(dataset.MustLoadString(abc, "")),
		WithLogger(log),
		OnRecommendationChanged(func(recs []Recommendation) { published = recs }))

	c.Assign(selection.Size, ids(2, 3), "10")
	// Named colors are not understood, so no color scale can be
	// built, but the ranking stands.
	c.Assign(selection.Color, ids(0, 1), "red")

	assert.Equal(t, []string{"A", "B"}, c.Recommendations(selection.Color))
	for _, attr := range []string{"A", "B"} {
		_, ok := c.InterpolatedScale(selection.Color, attr)
		assert.False(t, ok, attr)
		assert.ErrorIs(t, c.ScaleErr(selection.Color, attr), interp.ErrMalformedColor, attr)
	}
	_, ok := c.InterpolatedScale(selection.Size, "A")
	assert.True(t, ok)
	assert.Len(t, published, 4)
	assert.Contains(t, buf.String(), "skipping scale")

	// A fix clears the error.
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	assert.NoError(t, c.ScaleErr(selection.Color, "A"))
	_, ok = c.InterpolatedScale(selection.Color, "A")
	assert.True(t, ok)
}

func TestReload(t *testing.T) {
	d := dataset.MustLoadString(abc, "")
	src := dataset.SourceFunc(func() *dataset.Dataset { return d })
	var notified []selection.Field
	c := newCoordinator(t, src,
		OnGroupingChanged(func(f selection.Field) { notified = append(notified, f) }))

	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	c.Assign(selection.Size, ids(0, 1), "10")
	assert.False(t, c.Reload())
	assert.True(t, c.HasActiveSelection(selection.Color))

	d = dataset.MustLoadString("A,D\n1,4\n2,3\n3,2\n", "")
	notified = nil
	assert.True(t, c.Reload())
	assert.Equal(t, []selection.Field{selection.Color, selection.Size}, notified)
	for _, f := range selection.Fields {
		assert.Equal(t, Empty, c.State(f), f)
		assert.Empty(t, c.Recommendations(f), f)
	}
	assert.False(t, c.Reload())

	// The new dataset's attributes are ranked.
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	assert.Equal(t, []string{"A", "D"}, c.Recommendations(selection.Color))
}

func TestNilDataset(t *testing.T) {
	c := newCoordinator(t, dataset.Static(nil))
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	assert.True(t, c.HasActiveSelection(selection.Color))
	assert.Empty(t, c.Recommendations(selection.Color))
	assert.Empty(t, c.Scores(selection.Color))
}

func TestEqualGroupMeans(t *testing.T) {
	// Both groups have the same mean of A, so F(A) is zero.
	d := dataset.MustLoadString("A,B\n1,0\n2,10\n4,11\n6,1\n4,2\n5,12\n", "")
	c := newCoordinator(t, dataset.Static(d))
	require.NotPanics(t, func() {
		c.Assign(selection.Color, ids(1, 2, 5), "hsl(0,90%,50%)")
		c.Assign(selection.Color, ids(0, 3, 4), "hsl(240,90%,50%)")
	})
	assert.Equal(t, []string{"B", "A"}, c.Recommendations(selection.Color))
}

func TestMutationAfterDatasetSwap(t *testing.T) {
	d := dataset.MustLoadString(abc, "")
	src := dataset.SourceFunc(func() *dataset.Dataset { return d })
	var notified []selection.Field
	c := newCoordinator(t, src,
		OnGroupingChanged(func(f selection.Field) { notified = append(notified, f) }))
	c.Assign(selection.Color, ids(2, 3), "hsl(0,90%,50%)")
	c.Assign(selection.Size, ids(0), "4")

	// Swapping without Reload still drops the old assignments on the
	// next mutation.
	d = dataset.MustLoadString("A,D\n1,4\n2,3\n3,2\n", "")
	notified = nil
	c.Assign(selection.Color, ids(0, 1), "hsl(0,90%,50%)")
	assert.Equal(t, []selection.Field{selection.Color, selection.Size, selection.Color}, notified)
	require.Len(t, c.AllGroups(selection.Color), 1)
	assert.Equal(t, ids(0, 1), c.AllGroups(selection.Color)[0])
	assert.False(t, c.HasActiveSelection(selection.Size))
	assert.Equal(t, []string{"A", "D"}, c.Recommendations(selection.Color))
	assert.False(t, c.Reload())
}
