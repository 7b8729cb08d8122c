// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import "errors"

var (
	// ErrStatisticUndefined means a median or extent could not be
	// computed because no row of the relevant subset has a value
	// for the attribute.
	ErrStatisticUndefined = errors.New("statistic undefined")

	// ErrMalformedColor means a color anchor is not an hsl(H, S%, L%)
	// triple or a #rrggbb hex color.
	ErrMalformedColor = errors.New("malformed color")

	// ErrMalformedSize means a size anchor is not a decimal number.
	ErrMalformedSize = errors.New("malformed size")

	// ErrConfiguration means a scale was requested with inputs or
	// options that can never produce one.
	ErrConfiguration = errors.New("invalid scale configuration")
)
