// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/shaderpack/cli"
	"cogentcore.org/shaderpack/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Config, *cli.Cmd[*Config]) {
	c := &Config{}
	cmd, err := cli.Config(cli.DefaultOptions("shaderpack"), c, args, Commands()...)
	require.NoError(t, err)
	return c, cmd
}

func TestDefaults(t *testing.T) {
	c, cmd := parse(t, "-i", "src/pack1")
	assert.Equal(t, "build", cmd.Name)

	pc := c.PipelineConfig()
	def := pipeline.Defaults("src/pack1")
	assert.Equal(t, def.Output, pc.Output)
	assert.Equal(t, def.Temp, pc.Temp)
	assert.Equal(t, def.Qsb, pc.Qsb)
	assert.Equal(t, def.Cpp, pc.Cpp)
	assert.Equal(t, def.CppFlags, pc.CppFlags)
	assert.Equal(t, def.GLSL, pc.GLSL)
	assert.Equal(t, def.HLSL, pc.HLSL)
	assert.Equal(t, def.MSL, pc.MSL)
	assert.Equal(t, def.Common, pc.Common)
	assert.Equal(t, 1, pc.Jobs)
	assert.Equal(t, time.Duration(0), pc.Timeout)
	assert.False(t, pc.DeleteSource)
	assert.Equal(t, 200*time.Millisecond, c.Settle)
}

func TestFlags(t *testing.T) {
	c, cmd := parse(t, "compile", "src/pack2", "-o", "out", "-t", "tmp", "-q", "qsb", "-j", "3",
		"--timeout", "30s", "--delete-source", "--cpp-flags", "-P -C -w", "-v", "-x", "*.md,drafts/*")
	assert.Equal(t, "compile", cmd.Name)
	pc := c.PipelineConfig()
	assert.Equal(t, "src/pack2", pc.Source)
	assert.Equal(t, "out", pc.Output)
	assert.Equal(t, "tmp", pc.Temp)
	assert.Equal(t, "qsb", pc.Qsb)
	assert.Equal(t, 3, pc.Jobs)
	assert.Equal(t, 30*time.Second, pc.Timeout)
	assert.True(t, pc.DeleteSource)
	assert.Equal(t, "-P -C -w", pc.CppFlags)
	assert.True(t, c.Verbose)
	assert.Equal(t, []string{"*.md", "drafts/*"}, pc.Exclude)
	assert.Equal(t, filepath.Join("out", "pack2"), pc.OutputRoot())
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	c := &Config{Input: dir, Quiet: true}
	assert.ErrorIs(t, Check(c), os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pack.json"),
		[]byte(`{"id": "p", "name": "P", "version": "0.1.0"}`), 0644))
	assert.NoError(t, Check(c))
}

func TestResult(t *testing.T) {
	rep := pipeline.NewReport()
	assert.NoError(t, result(rep, nil))

	boom := errors.New("boom")
	assert.ErrorIs(t, result(rep, boom), boom)

	rep.Failures = append(rep.Failures, &pipeline.DirError{Stage: pipeline.StageCompile, Dir: "d", Err: boom})
	err := result(rep, nil)
	assert.ErrorIs(t, err, errDiscarded)
	assert.ErrorIs(t, err, boom)
}
