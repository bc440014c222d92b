// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline transforms a pack of ShaderToy fragment shaders
// into compiled shaders for the Qt RHI runtime. A build runs four
// stages in order, each over a whole directory tree: the [Merger]
// prepends each directory's common code to its shaders, the [Expander]
// runs the C preprocessor over them, the [Rewriter] adapts them to the
// runtime's uniform buffer layout, and the [Compiler] runs qsb to
// produce the output tree. A failure in one directory discards that
// directory's output and the build continues with the others.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cogentcore.org/shaderpack/base/exec"
	"cogentcore.org/shaderpack/base/fsx"
	"cogentcore.org/shaderpack/glsl"
	"cogentcore.org/shaderpack/manifest"
	"github.com/Bios-Marcel/wastebasket/v2"
)

// Pipeline runs the stages of a build with one [Config].
type Pipeline struct {
	Config Config

	Merger   *Merger
	Expander *Expander
	Rewriter *Rewriter
	Compiler *Compiler

	rw *glsl.Rewriter
}

// New returns a new [Pipeline] for the given config, after
// expanding its paths and validating it.
func New(cfg Config) (*Pipeline, error) {
	var err error
	for _, p := range []*string{&cfg.Source, &cfg.Output, &cfg.Temp} {
		if *p, err = fsx.Expand(*p); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	run := cfg.Exec
	if run == nil {
		run = exec.Minor()
	}
	run = run.Clone().SetTimeout(cfg.Timeout)
	cfg.Exec = run

	rw, err := glsl.NewRewriter(cfg.Layout)
	if err != nil {
		return nil, err
	}
	cfg.Layout = rw.Layout
	m, err := NewMerger(cfg, rw)
	if err != nil {
		return nil, err
	}
	x, err := NewExpander(cfg, run)
	if err != nil {
		return nil, fmt.Errorf("invalid preprocessor flags %q: %w", cfg.CppFlags, err)
	}
	return &Pipeline{
		Config:   cfg,
		Merger:   m,
		Expander: x,
		Rewriter: NewRewriter(cfg, rw),
		Compiler: NewCompiler(cfg, run),
		rw:       rw,
	}, nil
}

// checkSource returns an error if the source directory is not a directory.
func (p *Pipeline) checkSource() error {
	ok, err := fsx.DirExists(p.Config.Source)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("input directory %q not found", p.Config.Source)
	}
	return nil
}

// checkOverlap returns an error if any two of the given roots
// contain one another.
func checkOverlap(roots ...string) error {
	for i, a := range roots {
		for _, b := range roots[i+1:] {
			if fsx.Within(a, b) || fsx.Within(b, a) {
				return fmt.Errorf("directories %q and %q overlap", a, b)
			}
		}
	}
	return nil
}

// Run runs a full build. The returned error is non-nil only for
// failures that stop the build as a whole, such as a missing source
// directory or a canceled context; directories that failed and were
// discarded are listed in the [Report].
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	cfg := &p.Config
	if err := p.checkSource(); err != nil {
		return nil, err
	}
	if err := checkOverlap(cfg.Source, cfg.MergedRoot(), cfg.OutputRoot()); err != nil {
		return nil, err
	}
	if err := p.Clean(); err != nil {
		return nil, err
	}
	slog.Info("building pack", "pack", cfg.Pack(), "source", cfg.Source, "output", cfg.OutputRoot())
	rep := NewReport()
	stages := []interface {
		Run(ctx context.Context, rep *Report) error
	}{p.Merger, p.Expander, p.Rewriter, p.Compiler}
	for _, st := range stages {
		if err := st.Run(ctx, rep); err != nil {
			return rep, err
		}
	}
	p.CheckManifest()
	return rep, nil
}

// Rewrite runs the rewriter alone, in place over the source tree.
func (p *Pipeline) Rewrite(ctx context.Context) (*Report, error) {
	if err := p.checkSource(); err != nil {
		return nil, err
	}
	rep := NewReport()
	err := NewRewriter(p.Config, p.rw).SetRoot(p.Config.Source).Run(ctx, rep)
	return rep, err
}

// Compile runs the compiler alone over the source tree, which must
// already hold finalized shaders.
func (p *Pipeline) Compile(ctx context.Context) (*Report, error) {
	cfg := &p.Config
	if err := p.checkSource(); err != nil {
		return nil, err
	}
	if err := checkOverlap(cfg.Source, cfg.OutputRoot()); err != nil {
		return nil, err
	}
	rep := NewReport()
	err := NewCompiler(p.Config, p.Config.Exec).SetRoot(cfg.Source).Run(ctx, rep)
	return rep, err
}

// Clean removes the pack's intermediate tree.
func (p *Pipeline) Clean() error {
	if err := p.checkClean(); err != nil {
		return err
	}
	return os.RemoveAll(p.Config.MergedRoot())
}

// Trash moves the pack's intermediate tree to the trash,
// if it exists.
func (p *Pipeline) Trash() error {
	if err := p.checkClean(); err != nil {
		return err
	}
	root := p.Config.MergedRoot()
	ok, err := fsx.DirExists(root)
	if err != nil || !ok {
		return err
	}
	return wastebasket.Trash(root)
}

func (p *Pipeline) checkClean() error {
	if fsx.Within(p.Config.Source, p.Config.MergedRoot()) {
		return fmt.Errorf("refusing to remove %q, which contains the input directory", p.Config.MergedRoot())
	}
	return nil
}

// CheckManifest logs a warning if the pack has no valid manifest,
// without which the runtime will not load it.
func (p *Pipeline) CheckManifest() {
	if _, err := manifest.Check(p.Config.Source); err != nil {
		slog.Warn("the runtime will not load this pack", "err", err)
	}
}
