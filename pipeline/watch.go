// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs a build and then runs a new full build every time the
// source tree changes, calling built with the result of each build.
// Changes less than settle apart are handled by a single build.
// It returns when the context is done.
func (p *Pipeline) Watch(ctx context.Context, settle time.Duration, built func(rep *Report, err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := watchTree(w, p.Config.Source); err != nil {
		return err
	}

	built(p.Run(ctx))

	var rebuild <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("source changed", "path", event.Name, "op", event.Op)
			if event.Has(fsnotify.Create) {
				// new directories are not watched automatically
				if err := watchTree(w, event.Name); err != nil {
					slog.Warn("watching new directory", "err", err)
				}
			}
			rebuild = time.After(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watching source", "err", err)
		case <-rebuild:
			rebuild = nil
			built(p.Run(ctx))
		}
	}
}

// watchTree adds root and every directory under it to the watcher.
// A root that is not a directory is ignored.
func watchTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.Add(path)
	})
}
