// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iox_test

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/shaderpack/base/iox/tomlx"
	"cogentcore.org/shaderpack/base/iox/yamlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Output string `toml:"output" yaml:"output"`
	Jobs   int    `toml:"jobs" yaml:"jobs"`
}

func TestTOML(t *testing.T) {
	s := settings{Output: "packs_build", Jobs: 1}
	require.NoError(t, tomlx.ReadBytes(&s, []byte("jobs = 4\n")))
	assert.Equal(t, settings{Output: "packs_build", Jobs: 4}, s)
}

func TestYAML(t *testing.T) {
	s := settings{Output: "packs_build", Jobs: 1}
	require.NoError(t, yamlx.ReadBytes(&s, []byte("output: out\n")))
	assert.Equal(t, settings{Output: "out", Jobs: 1}, s)

	require.NoError(t, yamlx.ReadBytes(&s, nil))
	assert.Equal(t, settings{Output: "out", Jobs: 1}, s)
}

func TestOpenFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(a, []byte("output = \"a\"\njobs = 2\n"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("output = \"b\"\n"), 0644))

	var s settings
	require.NoError(t, tomlx.OpenFiles(&s, a, b))
	assert.Equal(t, settings{Output: "b", Jobs: 2}, s)

	err := tomlx.OpenFiles(&s, filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
