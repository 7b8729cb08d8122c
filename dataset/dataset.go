// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset provides the read-only table of records that
// selections, recommendations, and scales are computed over.
//
// A Dataset wraps a go-gg table. Each row is identified by a stable
// ID, taken either from an integer id column or from the row index.
// Columns of a numeric element kind are numeric attributes; they are
// converted to float64 once when the Dataset is built, with NaN
// marking a missing value.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/google/uuid"
)

// A Dataset is an immutable, ordered sequence of records.
type Dataset struct {
	tab   *table.Table
	idCol string
	token uuid.UUID

	ids   []ID
	index map[ID]int

	attrs   []string
	numeric []string
	floats  map[string][]float64
}

// New returns a Dataset over tab. If idCol is not "", it must name an
// integer column of tab holding unique ids; otherwise each row's index
// is its ID.
func New(tab *table.Table, idCol string) (*Dataset, error) {
	d := &Dataset{
		tab:    tab,
		idCol:  idCol,
		token:  uuid.New(),
		index:  make(map[ID]int, tab.Len()),
		floats: make(map[string][]float64),
	}

	d.ids = make([]ID, tab.Len())
	if idCol == "" {
		for i := range d.ids {
			d.ids[i] = ID(i)
		}
	} else {
		col := tab.Column(idCol)
		if col == nil {
			return nil, fmt.Errorf("id column %q not found", idCol)
		}
		if !isInteger(reflect.TypeOf(col).Elem().Kind()) {
			return nil, fmt.Errorf("id column %q has non-integer type %T", idCol, col)
		}
		var ids []int
		slice.Convert(&ids, col)
		for i, id := range ids {
			d.ids[i] = ID(id)
		}
	}
	for i, id := range d.ids {
		if _, ok := d.index[id]; ok {
			return nil, fmt.Errorf("duplicate id %d in row %d", id, i)
		}
		d.index[id] = i
	}

	for _, name := range tab.Columns() {
		if name == idCol {
			continue
		}
		d.attrs = append(d.attrs, name)
		col := tab.Column(name)
		if !isNumeric(reflect.TypeOf(col).Elem().Kind()) {
			continue
		}
		var xs []float64
		slice.Convert(&xs, col)
		d.numeric = append(d.numeric, name)
		d.floats[name] = xs
	}
	return d, nil
}

// Load reads a CSV dataset from r. The first record is the header.
// Columns whose every value parses as a number become numeric
// attributes; an empty cell in such a column is a missing value.
func Load(r io.Reader, idCol string) (*Dataset, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty CSV input")
	}
	header, body := rows[0], rows[1:]

	// go-gg can only coerce columns that are entirely numeric, so
	// set aside missing cells and patch them in as NaN afterwards.
	missing := make(map[int][]int)
	for i, row := range body {
		for j, cell := range row {
			if cell == "" {
				missing[j] = append(missing[j], i)
				row[j] = "0"
			}
		}
	}
	tab := table.TableFromStrings(header, body, true)
	if len(missing) > 0 {
		tab = patchMissing(tab, header, body, missing)
	}
	return New(tab, idCol)
}

// patchMissing rebuilds tab so that cells recorded in missing are NaN
// for float columns and "" for every other column.
func patchMissing(tab *table.Table, header []string, body [][]string, missing map[int][]int) *table.Table {
	b := table.NewBuilder(tab)
	for j, rows := range missing {
		name := header[j]
		switch col := tab.Column(name).(type) {
		case []float64:
			nc := append([]float64(nil), col...)
			for _, i := range rows {
				nc[i] = math.NaN()
			}
			b.Add(name, nc)
		case []int:
			// An int column with holes must become a float
			// column to represent them.
			nc := make([]float64, len(col))
			for i, x := range col {
				nc[i] = float64(x)
			}
			for _, i := range rows {
				nc[i] = math.NaN()
			}
			b.Add(name, nc)
		default:
			nc := make([]string, len(body))
			for i := range body {
				nc[i] = body[i][j]
			}
			for _, i := range rows {
				nc[i] = ""
			}
			b.Add(name, nc)
		}
	}
	return b.Done()
}

// MustLoadString is like Load, but reads from a string and panics on
// error. It is meant for tests and examples.
func MustLoadString(csvData, idCol string) *Dataset {
	d, err := Load(bytes.NewBufferString(csvData), idCol)
	if err != nil {
		panic(err)
	}
	return d
}

// Token returns the identity token of d. Every Dataset has a distinct
// token, so caches keyed by it are invalidated by a new dataset.
func (d *Dataset) Token() uuid.UUID {
	return d.token
}

// Table returns the underlying table. Callers must not modify it.
func (d *Dataset) Table() *table.Table {
	return d.tab
}

// Len returns the number of records in d.
func (d *Dataset) Len() int {
	return len(d.ids)
}

// IDs returns the ID of every record, in row order.
func (d *Dataset) IDs() []ID {
	return append([]ID(nil), d.ids...)
}

// Row returns the row index of id.
func (d *Dataset) Row(id ID) (int, bool) {
	i, ok := d.index[id]
	return i, ok
}

// Attrs returns the names of all attributes, excluding the id column,
// in table column order.
func (d *Dataset) Attrs() []string {
	return append([]string(nil), d.attrs...)
}

// NumericAttrs returns the names of the numeric attributes in table
// column order.
func (d *Dataset) NumericAttrs() []string {
	return append([]string(nil), d.numeric...)
}

// IsNumeric reports whether attr is a numeric attribute of d.
func (d *Dataset) IsNumeric(attr string) bool {
	_, ok := d.floats[attr]
	return ok
}

// Column returns all values of numeric attribute attr, in row order,
// including NaN for missing values. The returned slice must not be
// modified.
func (d *Dataset) Column(attr string) ([]float64, bool) {
	xs, ok := d.floats[attr]
	return xs, ok
}

// AllValues returns the non-missing values of numeric attribute attr
// over every row.
func (d *Dataset) AllValues(attr string) []float64 {
	xs := d.floats[attr]
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Values returns the non-missing values of numeric attribute attr for
// the rows whose ID is in ids, in row order. IDs not in d are
// ignored.
func (d *Dataset) Values(attr string, ids IDSet) []float64 {
	xs, ok := d.floats[attr]
	if !ok {
		return nil
	}
	rows := make([]int, 0, len(ids))
	for id := range ids {
		if i, ok := d.index[id]; ok {
			rows = append(rows, i)
		}
	}
	slices.Sort(rows)
	out := make([]float64, 0, len(rows))
	for _, i := range rows {
		if !math.IsNaN(xs[i]) {
			out = append(out, xs[i])
		}
	}
	return out
}

var integerKinds = map[reflect.Kind]bool{
	reflect.Int:    true,
	reflect.Int8:   true,
	reflect.Int16:  true,
	reflect.Int32:  true,
	reflect.Int64:  true,
	reflect.Uint:   true,
	reflect.Uint8:  true,
	reflect.Uint16: true,
	reflect.Uint32: true,
	reflect.Uint64: true,
}

func isInteger(k reflect.Kind) bool {
	return integerKinds[k]
}

func isNumeric(k reflect.Kind) bool {
	return integerKinds[k] || k == reflect.Float32 || k == reflect.Float64
}
