// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection records the visual values users assign by hand to
// selected records, and groups records by their assigned value.
//
// A Tracker keeps, for each Field, the value assigned to each record
// ID and the derived grouping from value to the set of IDs sharing it.
// The grouping is rebuilt from scratch after every mutation, so it
// never holds empty groups and always agrees with the assignments.
package selection

import (
	"cmp"
	"slices"

	"github.com/aclements/vizrec/dataset"
)

// A Group is the set of records sharing one assigned value.
type Group struct {
	Value string
	IDs   dataset.IDSet
}

// A Tracker records manual assignments per Field. The zero value is
// not usable; use NewTracker.
//
// A Tracker is not safe for concurrent use.
type Tracker struct {
	fields   [NumFields]fieldState
	observer func(Field)
}

type fieldState struct {
	// assigned maps each assigned ID to its value. seq orders
	// entries by first assignment, which fixes the group order.
	assigned map[dataset.ID]assignment
	seq      uint64

	groups []Group
}

type assignment struct {
	value string
	seq   uint64
}

// NewTracker returns an empty Tracker. If observer is non-nil, it is
// called with the Field after every rebuild of that Field's grouping.
func NewTracker(observer func(Field)) *Tracker {
	t := &Tracker{observer: observer}
	for i := range t.fields {
		t.fields[i].assigned = make(map[dataset.ID]assignment)
	}
	return t
}

// Assign sets the value of field f to value for every ID in ids. An
// empty ids changes nothing but still rebuilds the grouping and
// notifies the observer.
func (t *Tracker) Assign(f Field, ids dataset.IDSet, value string) {
	fs := &t.fields[f]
	for _, id := range ids.Sorted() {
		if a, ok := fs.assigned[id]; ok {
			// Reassignment keeps the original position.
			a.value = value
			fs.assigned[id] = a
			continue
		}
		fs.seq++
		fs.assigned[id] = assignment{value, fs.seq}
	}
	t.rebuild(f)
}

// Clear removes the assignment of field f from every ID in ids,
// leaving other assignments alone.
func (t *Tracker) Clear(f Field, ids dataset.IDSet) {
	fs := &t.fields[f]
	for id := range ids {
		delete(fs.assigned, id)
	}
	t.rebuild(f)
}

// ResetAll removes every assignment of field f.
func (t *Tracker) ResetAll(f Field) {
	fs := &t.fields[f]
	fs.assigned = make(map[dataset.ID]assignment)
	t.rebuild(f)
}

// rebuild regroups the assignments of f and notifies the observer.
func (t *Tracker) rebuild(f Field) {
	fs := &t.fields[f]

	ids := make([]dataset.ID, 0, len(fs.assigned))
	for id := range fs.assigned {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b dataset.ID) int {
		return cmp.Compare(fs.assigned[a].seq, fs.assigned[b].seq)
	})

	var groups []Group
	index := make(map[string]int)
	for _, id := range ids {
		v := fs.assigned[id].value
		i, ok := index[v]
		if !ok {
			i = len(groups)
			index[v] = i
			groups = append(groups, Group{v, make(dataset.IDSet)})
		}
		groups[i].IDs.Add(id)
	}
	fs.groups = groups

	if t.observer != nil {
		t.observer(f)
	}
}

// Value returns the value assigned to id in field f.
func (t *Tracker) Value(f Field, id dataset.ID) (string, bool) {
	a, ok := t.fields[f].assigned[id]
	return a.value, ok
}

// Groups returns a copy of the groups of field f, ordered by the
// first assignment of each distinct value.
func (t *Tracker) Groups(f Field) []Group {
	groups := t.fields[f].groups
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{g.Value, g.IDs.Clone()}
	}
	return out
}

// AllGroups returns a copy of the ID sets of the groups of field f, in
// the same order as Groups.
func (t *Tracker) AllGroups(f Field) []dataset.IDSet {
	groups := t.fields[f].groups
	out := make([]dataset.IDSet, len(groups))
	for i, g := range groups {
		out[i] = g.IDs.Clone()
	}
	return out
}

// HasActiveSelection reports whether field f has at least one group.
func (t *Tracker) HasActiveSelection(f Field) bool {
	return len(t.fields[f].groups) > 0
}

// Len returns the number of IDs with an assignment in field f.
func (t *Tracker) Len(f Field) int {
	return len(t.fields[f].assigned)
}
