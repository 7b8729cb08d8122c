// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recommend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aclements/vizrec/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	c, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
k: 3
scales:
  color:
    mid: 0.4
  extent_cache_size: 8
`))
	require.NoError(t, err)
	want := DefaultConfig()
	want.K = 3
	want.Scales.Color.Mid = 0.4
	want.Scales.ExtentCacheSize = 8
	assert.Equal(t, want, c)
}

func TestParseConfigErrors(t *testing.T) {
	_, err := ParseConfig([]byte("k: -1\n"))
	assert.ErrorIs(t, err, interp.ErrConfiguration)

	_, err = ParseConfig([]byte("scales:\n  color:\n    saturation: 2\n"))
	assert.ErrorIs(t, err, interp.ErrConfiguration)

	_, err = ParseConfig([]byte("kk: 3\n"))
	assert.Error(t, err)

	_, err = ParseConfig([]byte("k: [\n"))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vizrec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: 1\n"), 0666))
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.K)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
