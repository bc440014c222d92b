// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/shaderpack/base/exec"
	"cogentcore.org/shaderpack/base/fsx"
)

// ArtifactExt is appended to the name of each shader to get
// the name of its compiled artifact.
const ArtifactExt = ".qsb"

// Compiler runs the shader cross-compiler over every finalized
// shader, writing artifacts to the output root and copying every
// other file there verbatim.
type Compiler struct {
	cfg Config
	run *exec.Config

	// root is the tree of finalized shaders.
	root string

	// owned is whether files in root may be removed on failure.
	owned bool
}

// NewCompiler returns a new [Compiler] that compiles the merged root.
func NewCompiler(cfg Config, run *exec.Config) *Compiler {
	return &Compiler{cfg: cfg, run: run, root: cfg.MergedRoot(), owned: true}
}

// SetRoot sets the tree of finalized shaders that is compiled and
// returns the compiler. Files in a tree set this way are never discarded.
func (c *Compiler) SetRoot(root string) *Compiler {
	c.root = root
	c.owned = false
	return c
}

// Run compiles the whole tree.
func (c *Compiler) Run(ctx context.Context, rep *Report) error {
	return walk(ctx, c.root, c.cfg.Jobs, rep, c.dir)
}

// Args returns the compiler arguments for compiling in to out.
func (c *Compiler) Args(in, out string) []string {
	var args []string
	if c.cfg.GLSL != "" {
		args = append(args, "--glsl", c.cfg.GLSL)
	}
	if c.cfg.HLSL != "" {
		args = append(args, "--hlsl", c.cfg.HLSL)
	}
	if c.cfg.MSL != "" {
		args = append(args, "--msl", c.cfg.MSL)
	}
	return append(args, "-o", out, in)
}

func (c *Compiler) dir(ctx context.Context, rel string) *Outcome {
	dir := filepath.Join(c.root, rel)
	o := &Outcome{Stage: StageCompile, Dir: filepath.ToSlash(rel)}
	dst, err := fsx.Mirror(c.root, c.cfg.OutputRoot(), dir)
	if err != nil {
		return o.fail("", err)
	}
	o.Discard = []string{dst}
	if c.owned {
		o.Discard = append(o.Discard, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return o.fail("", err)
	}
	for _, e := range entries {
		if !e.IsDir() && c.cfg.isShader(e.Name()) {
			o.Units = append(o.Units, c.cfg.unit(filepath.Join(rel, e.Name())))
		}
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return o.fail("", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ctx.Err() != nil {
			return o.fail("", ctx.Err())
		}
		name := e.Name()
		in := filepath.Join(dir, name)
		if !c.cfg.isShader(name) {
			if err := copyAsset(filepath.Join(dst, name), in); err != nil {
				return o.fail(name, err)
			}
			continue
		}
		out := filepath.Join(dst, name+ArtifactExt)
		if err := c.run.Run(ctx, c.cfg.Qsb, c.Args(in, out)...); err != nil {
			return o.fail(name, err)
		}
		if c.cfg.DeleteSource && c.owned {
			if err := os.Remove(in); err != nil {
				return o.fail(name, err)
			}
		}
		slog.Info("compiled", "file", out)
	}
	return o
}
