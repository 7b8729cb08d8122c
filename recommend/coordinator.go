// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recommend keeps attribute recommendations and derived
// scales in step with the visual values users assign by hand.
//
// A Coordinator owns a selection.Tracker. After every mutation of a
// field's grouping it synchronously recomputes, in order, the grouping,
// the recommended attributes for that field, and the scale of every
// recommended attribute, and only then invokes the notification
// callbacks. Nothing is patched incrementally.
//
// Every mutating method first checks whether the source's dataset has
// been replaced and, if so, resets both fields as Reload does, so
// assignments never refer to a previous dataset.
//
// Callbacks must not call back into the Coordinator's mutating
// methods.
package recommend

import (
	"log/slog"

	"github.com/aclements/vizrec/classify"
	"github.com/aclements/vizrec/dataset"
	"github.com/aclements/vizrec/interp"
	"github.com/aclements/vizrec/selection"
	"github.com/google/uuid"
)

// A Recommendation suggests mapping Attr to Field.
type Recommendation struct {
	Field selection.Field
	Attr  string
}

// State is the recommendation state of one field.
type State int

const (
	// Empty fields have no groups and no recommendations.
	Empty State = iota
	// HasGroups fields have at least one group and freshly
	// computed recommendations.
	HasGroups
)

func (s State) String() string {
	if s == Empty {
		return "empty"
	}
	return "has groups"
}

// An Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger for recompute summaries and skipped
// scales. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// OnGroupingChanged registers fn to be called with the field after
// every rebuild of that field's grouping, once recommendations and
// scales have been recomputed.
func OnGroupingChanged(fn func(selection.Field)) Option {
	return func(c *Coordinator) { c.onGrouping = fn }
}

// OnRecommendationChanged registers fn to be called with every
// current recommendation, across all fields, after every recompute.
func OnRecommendationChanged(fn func([]Recommendation)) Option {
	return func(c *Coordinator) { c.onRecommend = fn }
}

// A Coordinator connects the tracker, classifier, and interpolator.
//
// A Coordinator is not safe for concurrent use.
type Coordinator struct {
	src dataset.Source
	cfg Config
	log *slog.Logger

	tracker    *selection.Tracker
	classifier *classify.Classifier
	interp     *interp.Interpolator

	// token is the identity of the dataset the tracked
	// assignments refer to.
	token uuid.UUID

	recs      [selection.NumFields][]string
	scales    [selection.NumFields]map[string]interp.Scale
	scaleErrs [selection.NumFields]map[string]error

	onGrouping  func(selection.Field)
	onRecommend func([]Recommendation)
}

// New returns a Coordinator with no assignments over the datasets
// returned by src.
func New(src dataset.Source, cfg Config, opts ...Option) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ip, err := interp.NewInterpolator(cfg.Scales)
	if err != nil {
		return nil, err
	}
	c := &Coordinator{
		src:        src,
		cfg:        cfg,
		log:        slog.New(slog.DiscardHandler),
		classifier: classify.New(src),
		interp:     ip,
		token:      tokenOf(src.Data()),
	}
	for _, opt := range opts {
		opt(c)
	}
	for _, f := range selection.Fields {
		c.scales[f] = map[string]interp.Scale{}
		c.scaleErrs[f] = map[string]error{}
	}
	c.tracker = selection.NewTracker(c.update)
	return c, nil
}

func tokenOf(d *dataset.Dataset) uuid.UUID {
	if d == nil {
		return uuid.Nil
	}
	return d.Token()
}

// Assign assigns value to ids in field f.
func (c *Coordinator) Assign(f selection.Field, ids dataset.IDSet, value string) {
	c.Reload()
	c.tracker.Assign(f, ids, value)
}

// Clear removes the assignments of ids in field f.
func (c *Coordinator) Clear(f selection.Field, ids dataset.IDSet) {
	c.Reload()
	c.tracker.Clear(f, ids)
}

// Reset removes the assignments of ids in field f, or every assignment
// in f if ids is nil. An empty non-nil ids clears nothing.
func (c *Coordinator) Reset(f selection.Field, ids dataset.IDSet) {
	c.Reload()
	if ids == nil {
		c.tracker.ResetAll(f)
		return
	}
	c.tracker.Clear(f, ids)
}

// ResetAll removes every assignment in field f.
func (c *Coordinator) ResetAll(f selection.Field) {
	c.Reload()
	c.tracker.ResetAll(f)
}

// Reload checks whether the source's dataset has been replaced. If it
// has, it drops the cached state of the old dataset and resets every
// field, and reports true.
func (c *Coordinator) Reload() bool {
	tok := tokenOf(c.src.Data())
	if tok == c.token {
		return false
	}
	c.log.Info("dataset replaced, resetting selections", "old", c.token, "new", tok)
	c.token = tok
	c.classifier.Invalidate()
	c.interp.Invalidate()
	for _, f := range selection.Fields {
		c.tracker.ResetAll(f)
	}
	return true
}

// update recomputes the recommendations and scales of field f. It is
// the tracker's observer, so it runs after every grouping rebuild.
func (c *Coordinator) update(f selection.Field) {
	groups := c.tracker.Groups(f)
	d := c.src.Data()

	c.recs[f] = nil
	c.scales[f] = map[string]interp.Scale{}
	c.scaleErrs[f] = map[string]error{}

	if len(groups) > 0 && d != nil {
		sets := make([]dataset.IDSet, len(groups))
		for i, g := range groups {
			sets[i] = g.IDs
		}
		c.recs[f] = c.classifier.MostSimilarAttrs(sets, c.cfg.K)

		for _, attr := range c.recs[f] {
			s, err := c.buildScale(f, groups, d, attr)
			if err != nil {
				// Skip this attribute's scale but keep the
				// rest of the batch.
				c.log.Warn("skipping scale", "field", f, "attr", attr, "err", err)
				c.scaleErrs[f][attr] = err
				continue
			}
			c.scales[f][attr] = s
		}
	}
	c.log.Debug("recomputed recommendations", "field", f, "groups", len(groups), "attrs", c.recs[f])

	if c.onGrouping != nil {
		c.onGrouping(f)
	}
	if c.onRecommend != nil {
		c.onRecommend(c.AllRecommendations())
	}
}

func (c *Coordinator) buildScale(f selection.Field, groups []selection.Group, d *dataset.Dataset, attr string) (interp.Scale, error) {
	if f == selection.Size {
		s, err := c.interp.SizeScale(groups, d, attr)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := c.interp.ColorScale(groups, d, attr)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Value returns the value assigned to id in field f.
func (c *Coordinator) Value(f selection.Field, id dataset.ID) (string, bool) {
	return c.tracker.Value(f, id)
}

// Groups returns a copy of the groups of field f.
func (c *Coordinator) Groups(f selection.Field) []selection.Group {
	return c.tracker.Groups(f)
}

// AllGroups returns a copy of the ID sets of the groups of field f.
func (c *Coordinator) AllGroups(f selection.Field) []dataset.IDSet {
	return c.tracker.AllGroups(f)
}

// HasActiveSelection reports whether field f has any groups.
func (c *Coordinator) HasActiveSelection(f selection.Field) bool {
	return c.tracker.HasActiveSelection(f)
}

// State returns the recommendation state of field f.
func (c *Coordinator) State(f selection.Field) State {
	if c.tracker.HasActiveSelection(f) {
		return HasGroups
	}
	return Empty
}

// Recommendations returns the recommended attributes of field f, best
// first.
func (c *Coordinator) Recommendations(f selection.Field) []string {
	return append([]string(nil), c.recs[f]...)
}

// AllRecommendations returns the recommendations of every field, in
// field order and best first within a field.
func (c *Coordinator) AllRecommendations() []Recommendation {
	var out []Recommendation
	for _, f := range selection.Fields {
		for _, attr := range c.recs[f] {
			out = append(out, Recommendation{f, attr})
		}
	}
	return out
}

// Scores returns the classifier scores of field f's current grouping.
func (c *Coordinator) Scores(f selection.Field) []classify.Score {
	return c.classifier.Scores(c.tracker.AllGroups(f))
}

// InterpolatedScale returns the scale of attr in field f. It reports
// false if attr is not currently recommended for f, or its scale could
// not be built.
func (c *Coordinator) InterpolatedScale(f selection.Field, attr string) (interp.Scale, bool) {
	s, ok := c.scales[f][attr]
	return s, ok
}

// ScaleErr returns the error that prevented building the scale of
// recommended attribute attr in field f, or nil.
func (c *Coordinator) ScaleErr(f selection.Field, attr string) error {
	return c.scaleErrs[f][attr]
}
