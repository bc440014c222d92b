// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Input        string        `flag:"i,input" posarg:"0" desc:"the input directory"`
	Output       string        `flag:"o,output" default:"packs_build"`
	Verbose      bool          `flag:"v,verbose"`
	Jobs         int           `flag:"j,jobs" default:"1"`
	Timeout      time.Duration `default:"0s"`
	GLSL         string        `default:"330 es,330"`
	DeleteSource bool
	Tags         []string `default:"a,b"`
	internal     int
}

func testCmds(ran *string) []*Cmd[*testConfig] {
	return []*Cmd[*testConfig]{
		{Name: "build", Root: true, Func: func(c *testConfig) error { *ran = "build"; return nil }},
		{Name: "clean", Func: func(c *testConfig) error { *ran = "clean"; return nil }},
	}
}

func TestSetFromDefaults(t *testing.T) {
	c := &testConfig{}
	require.NoError(t, SetFromDefaults(c))
	assert.Equal(t, "packs_build", c.Output)
	assert.Equal(t, 1, c.Jobs)
	assert.Equal(t, "330 es,330", c.GLSL)
	assert.Equal(t, []string{"a", "b"}, c.Tags)
	assert.Equal(t, time.Duration(0), c.Timeout)

	type bad struct {
		N int `default:"many"`
	}
	assert.Error(t, setFromDefaultTags(&bad{}))
	assert.Error(t, setFromDefaultTags(bad{}))
}

func TestToKebab(t *testing.T) {
	assert.Equal(t, "delete-source", toKebab("DeleteSource"))
	assert.Equal(t, "glsl", toKebab("GLSL"))
	assert.Equal(t, "cpp-flags", toKebab("CppFlags"))
	assert.Equal(t, "http-server", toKebab("HTTPServer"))
	assert.Equal(t, "jobs2", toKebab("Jobs2"))
}

func TestConfigFlags(t *testing.T) {
	opts := DefaultOptions("shaderpack-test")
	opts.IncludePaths = []string{t.TempDir()}
	var ran string
	c := &testConfig{}
	cmd, err := Config(opts, c, []string{"clean", "-i", "src/pack1", "-v", "--jobs=4", "--delete-source", "--timeout", "2s"}, testCmds(&ran)...)
	require.NoError(t, err)
	assert.Equal(t, "clean", cmd.Name)
	assert.Equal(t, "src/pack1", c.Input)
	assert.True(t, c.Verbose)
	assert.True(t, c.DeleteSource)
	assert.Equal(t, 4, c.Jobs)
	assert.Equal(t, 2*time.Second, c.Timeout)
	assert.Equal(t, "packs_build", c.Output)

	require.NoError(t, cmd.Func(c))
	assert.Equal(t, "clean", ran)
}

func TestConfigPosarg(t *testing.T) {
	opts := DefaultOptions("shaderpack-test")
	opts.IncludePaths = []string{t.TempDir()}
	var ran string
	c := &testConfig{}
	cmd, err := Config(opts, c, []string{"src/pack2"}, testCmds(&ran)...)
	require.NoError(t, err)
	assert.Equal(t, "build", cmd.Name)
	assert.Equal(t, "src/pack2", c.Input)

	_, err = Config(opts, &testConfig{}, []string{"build", "a", "b"}, testCmds(&ran)...)
	assert.Error(t, err)

	_, err = Config(opts, &testConfig{}, []string{"--no-such-flag"}, testCmds(&ran)...)
	assert.Error(t, err)
}

func TestConfigFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaderpack-test.toml"), []byte("Output = \"from_toml\"\nJobs = 3\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("output: from_yaml\n"), 0644))
	opts := DefaultOptions("shaderpack-test")
	opts.IncludePaths = []string{dir}
	var ran string

	c := &testConfig{}
	_, err := Config(opts, c, []string{"-j", "8"}, testCmds(&ran)...)
	require.NoError(t, err)
	assert.Equal(t, "from_toml", c.Output)
	assert.Equal(t, 8, c.Jobs)

	c = &testConfig{}
	_, err = Config(opts, c, []string{"--config", "other.yaml"}, testCmds(&ran)...)
	require.NoError(t, err)
	assert.Equal(t, "from_yaml", c.Output)
	assert.Equal(t, 1, c.Jobs)

	_, err = Config(opts, &testConfig{}, []string{"--config=missing.toml"}, testCmds(&ran)...)
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	opts := DefaultOptions("shaderpack-test", "builds things")
	opts.IncludePaths = []string{t.TempDir()}
	var ran string
	_, err := Config(opts, &testConfig{}, []string{"help"}, testCmds(&ran)...)
	assert.ErrorIs(t, err, ErrHelp)
	_, err = Config(opts, &testConfig{}, []string{"-h"}, testCmds(&ran)...)
	assert.ErrorIs(t, err, ErrHelp)
}
