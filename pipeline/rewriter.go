// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/shaderpack/glsl"
)

// Rewriter rewrites every expanded shader in place into a
// self-contained destination shader.
type Rewriter struct {
	cfg  Config
	rw   *glsl.Rewriter
	root string

	// owned is whether files in root may be removed on failure.
	owned bool
}

// NewRewriter returns a new [Rewriter] that works on the merged root.
func NewRewriter(cfg Config, rw *glsl.Rewriter) *Rewriter {
	return &Rewriter{cfg: cfg, rw: rw, root: cfg.MergedRoot(), owned: true}
}

// SetRoot sets the tree that is rewritten in place and returns the
// rewriter. Files in a tree set this way are never discarded.
func (r *Rewriter) SetRoot(root string) *Rewriter {
	r.root = root
	r.owned = false
	return r
}

// Run rewrites the whole tree.
func (r *Rewriter) Run(ctx context.Context, rep *Report) error {
	return walk(ctx, r.root, r.cfg.Jobs, rep, r.dir)
}

// RewriteFile rewrites a single shader file in place. A file whose
// contents are a known binary type is left unchanged and an error
// wrapping [ErrBinaryShader] is returned.
func (r *Rewriter) RewriteFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := checkText(b); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(r.rw.Rewrite(string(b))), info.Mode().Perm())
}

func (r *Rewriter) dir(ctx context.Context, rel string) *Outcome {
	dir := filepath.Join(r.root, rel)
	o := &Outcome{Stage: StageRewrite, Dir: filepath.ToSlash(rel)}
	if r.owned {
		o.Discard = []string{dir}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return o.fail("", err)
	}
	var shaders []string
	for _, e := range entries {
		if !e.IsDir() && r.cfg.isShader(e.Name()) {
			shaders = append(shaders, e.Name())
			o.Units = append(o.Units, r.cfg.unit(filepath.Join(rel, e.Name())))
		}
	}
	for _, name := range shaders {
		if ctx.Err() != nil {
			return o.fail("", ctx.Err())
		}
		path := filepath.Join(dir, name)
		if err := r.RewriteFile(path); err != nil {
			return o.fail(name, err)
		}
		slog.Info("rewrote", "file", path)
	}
	return o
}
