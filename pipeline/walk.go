// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"cogentcore.org/shaderpack/base/errors"
	"golang.org/x/sync/errgroup"
)

// dirFunc processes the directory with the given path relative
// to the stage root.
type dirFunc func(ctx context.Context, rel string) *Outcome

// dirs returns the paths relative to root of all directories
// in the tree, root first, in lexical pre-order. A root that does
// not exist is an empty tree: an earlier stage discarded all of it.
func dirs(root string) ([]string, error) {
	if _, err := os.Lstat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var ds []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		ds = append(ds, rel)
		return nil
	})
	return ds, err
}

// walk runs fn on every directory under root, on up to jobs
// directories at a time, recording each outcome in the report.
// A failed directory is discarded and the walk continues; the
// walk only stops early when the context is done. The directory
// list is taken before any work starts, so directories created
// or removed by fn do not change which directories are visited.
func walk(ctx context.Context, root string, jobs int, rep *Report, fn dirFunc) error {
	ds, err := dirs(root)
	if err != nil {
		return err
	}
	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for _, rel := range ds {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			o := fn(ctx, rel)
			if o.Err != nil {
				slog.Warn("discarding directory", "stage", o.Stage, "dir", o.Dir, "err", o.Err.Err)
				for _, d := range o.Discard {
					discard(d)
				}
			}
			rep.record(o)
			return nil
		})
	}
	g.Wait()
	return ctx.Err()
}

// discard removes the files directly inside dir and then dir itself
// if it is left empty. Subdirectories are separate units of work and
// are never touched, and neither is any parent directory.
func discard(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("reading discarded directory", "dir", dir, "err", err)
		}
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			slog.Error("removing discarded file", "err", err)
		}
	}
	if rest, err := os.ReadDir(dir); err != nil || len(rest) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
		slog.Error("removing discarded directory", "err", err)
	}
}
