// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import "fmt"

// A Field is a visual channel that users can assign values to by hand.
type Field int

const (
	// Color assignments are color strings.
	Color Field = iota
	// Size assignments are decimal size strings.
	Size

	// NumFields is the number of Fields. It is meant for sizing
	// per-field arrays.
	NumFields = iota
)

// Fields lists every Field in order.
var Fields = [NumFields]Field{Color, Size}

func (f Field) String() string {
	switch f {
	case Color:
		return "color"
	case Size:
		return "size"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField returns the Field named s.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown visual field %q", s)
}
