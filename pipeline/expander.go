// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/shaderpack/base/exec"
)

// Expander runs the C preprocessor over every merged file in
// place, producing the shader file and removing the merged file.
// Only files of units the merger wrote are expanded; any other file
// with the merged extension is an asset and is left alone.
type Expander struct {
	cfg   Config
	flags []string
	run   *exec.Config
}

// NewExpander returns a new [Expander]. The preprocessor flags
// are split using shell word rules.
func NewExpander(cfg Config, run *exec.Config) (*Expander, error) {
	flags, err := exec.Args(cfg.CppFlags)
	if err != nil {
		return nil, err
	}
	return &Expander{cfg: cfg, flags: flags, run: run}, nil
}

// Run expands the whole merged tree.
func (x *Expander) Run(ctx context.Context, rep *Report) error {
	return walk(ctx, x.cfg.MergedRoot(), x.cfg.Jobs, rep, func(ctx context.Context, rel string) *Outcome {
		return x.dir(ctx, rep, rel)
	})
}

func (x *Expander) dir(ctx context.Context, rep *Report, rel string) *Outcome {
	dir := filepath.Join(x.cfg.MergedRoot(), rel)
	o := &Outcome{Stage: StageExpand, Dir: filepath.ToSlash(rel), Discard: []string{dir}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return o.fail("", err)
	}
	var tmps []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != tmpExt {
			continue
		}
		u := x.cfg.unit(filepath.Join(rel, e.Name()))
		if st, _ := rep.State(u); st != Merged {
			continue
		}
		tmps = append(tmps, e.Name())
		o.Units = append(o.Units, u)
	}
	for _, name := range tmps {
		in := filepath.Join(dir, name)
		out := filepath.Join(dir, strings.TrimSuffix(name, tmpExt)+x.cfg.Ext)
		args := append(append([]string{}, x.flags...), in, out)
		if err := x.run.Run(ctx, x.cfg.Cpp, args...); err != nil {
			return o.fail(name, err)
		}
		if err := os.Remove(in); err != nil {
			return o.fail(name, err)
		}
		slog.Info("expanded", "file", out)
	}
	return o
}
