// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/shaderpack/base/fsx"
	"cogentcore.org/shaderpack/glsl"
	"github.com/gobwas/glob"
)

// tmpExt is the extension of merged files waiting for macro expansion.
const tmpExt = ".tmp"

// Merger combines the common block of each source directory with
// every shader in it, writing the result to the merged root.
type Merger struct {
	cfg     Config
	rw      *glsl.Rewriter
	exclude []glob.Glob
}

// NewMerger returns a new [Merger]. It returns an error if
// an exclude pattern is invalid.
func NewMerger(cfg Config, rw *glsl.Rewriter) (*Merger, error) {
	m := &Merger{cfg: cfg, rw: rw}
	for _, pat := range cfg.Exclude {
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
		m.exclude = append(m.exclude, g)
	}
	return m, nil
}

// Excluded returns whether the source file with the given
// path relative to the source directory is skipped.
func (m *Merger) Excluded(rel string) bool {
	rel = filepath.ToSlash(rel)
	name := path.Base(rel)
	for _, g := range m.exclude {
		if g.Match(name) || g.Match(rel) {
			return true
		}
	}
	return false
}

// Run merges the whole source tree.
func (m *Merger) Run(ctx context.Context, rep *Report) error {
	return walk(ctx, m.cfg.Source, m.cfg.Jobs, rep, m.dir)
}

func (m *Merger) dir(ctx context.Context, rel string) *Outcome {
	src := filepath.Join(m.cfg.Source, rel)
	o := &Outcome{Stage: StageMerge, Dir: filepath.ToSlash(rel)}
	dst, err := fsx.Mirror(m.cfg.Source, m.cfg.MergedRoot(), src)
	if err != nil {
		return o.fail("", err)
	}
	o.Discard = []string{dst}

	entries, err := os.ReadDir(src)
	if err != nil {
		return o.fail("", err)
	}
	entries = slices.DeleteFunc(entries, func(e os.DirEntry) bool {
		return !e.IsDir() && m.Excluded(filepath.Join(rel, e.Name()))
	})
	merged := map[string]string{}
	for _, e := range entries {
		if !e.IsDir() && m.cfg.isShader(e.Name()) {
			o.Units = append(o.Units, m.cfg.unit(filepath.Join(rel, e.Name())))
			merged[strings.TrimSuffix(e.Name(), m.cfg.Ext)+tmpExt] = e.Name()
		}
	}
	for _, e := range entries {
		if shader, has := merged[e.Name()]; has && !e.IsDir() {
			return o.fail(e.Name(), fmt.Errorf("file has the same name as the merged file of %s", shader))
		}
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return o.fail("", err)
	}

	common := ""
	if m.cfg.Common != "" {
		b, err := os.ReadFile(filepath.Join(src, m.cfg.Common))
		if err == nil {
			err = checkText(b)
		}
		switch {
		case err == nil:
			common = m.rw.Prepare(string(b))
		case !os.IsNotExist(err):
			return o.fail(m.cfg.Common, err)
		}
	}

	for _, e := range entries {
		if e.IsDir() || e.Name() == m.cfg.Common {
			continue
		}
		if ctx.Err() != nil {
			return o.fail("", ctx.Err())
		}
		name := e.Name()
		if !m.cfg.isShader(name) {
			if err := copyAsset(filepath.Join(dst, name), filepath.Join(src, name)); err != nil {
				return o.fail(name, err)
			}
			continue
		}
		b, err := os.ReadFile(filepath.Join(src, name))
		if err != nil {
			return o.fail(name, err)
		}
		if err := checkText(b); err != nil {
			return o.fail(name, err)
		}
		out := filepath.Join(dst, strings.TrimSuffix(name, m.cfg.Ext)+tmpExt)
		if err := os.WriteFile(out, []byte(glsl.Merge(common, m.rw.Clean(string(b)))), 0644); err != nil {
			return o.fail(name, err)
		}
		slog.Info("merged", "file", out)
	}
	return o
}
