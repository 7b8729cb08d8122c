// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// An ID identifies one record for the lifetime of a Dataset.
type ID int

// An IDSet is a set of record IDs.
type IDSet map[ID]struct{}

// NewIDSet returns a set containing ids.
func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in s.
func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Add adds id to s.
func (s IDSet) Add(id ID) {
	s[id] = struct{}{}
}

// Clone returns a copy of s. The copy of a nil set is an empty set.
func (s IDSet) Clone() IDSet {
	c := make(IDSet, len(s))
	maps.Copy(c, s)
	return c
}

// Sorted returns the IDs in s in increasing order.
func (s IDSet) Sorted() []ID {
	return slices.Sorted(maps.Keys(s))
}

func (s IDSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range s.Sorted() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, int(id))
	}
	b.WriteByte('}')
	return b.String()
}

// A Source provides the current Dataset. It must return the same
// *Dataset until the data is replaced wholesale.
type Source interface {
	Data() *Dataset
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() *Dataset

func (f SourceFunc) Data() *Dataset {
	return f()
}

// Static returns a Source that always returns d.
func Static(d *Dataset) Source {
	return SourceFunc(func() *Dataset { return d })
}
