// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recommend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aclements/vizrec/interp"
	"gopkg.in/yaml.v3"
)

// DefaultK is the default number of attributes recommended per field.
const DefaultK = 2

// Config configures a Coordinator.
type Config struct {
	// K is the maximum number of attributes recommended per field.
	K int `yaml:"k"`

	// Scales configures the derived color and size scales.
	Scales interp.Options `yaml:"scales"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{K: DefaultK, Scales: interp.DefaultOptions()}
}

// Validate reports whether c is usable.
func (c Config) Validate() error {
	if c.K < 0 {
		return fmt.Errorf("%w: k = %d is negative", interp.ErrConfiguration, c.K)
	}
	return c.Scales.Validate()
}

// LoadConfig reads a YAML configuration file. Settings missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration over the defaults.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
