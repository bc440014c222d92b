// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/shaderpack/base/errors"
)

// DirError is a recoverable failure that caused a directory
// to be discarded.
type DirError struct {
	Stage Stage

	// Dir is the directory relative to the stage root, in slash form.
	Dir string

	// File is the file that failed, if any.
	File string

	Err error
}

func (e *DirError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%v %s: %v", e.Stage, e.File, e.Err)
	}
	return fmt.Sprintf("%v %s: %v", e.Stage, e.Dir, e.Err)
}

func (e *DirError) Unwrap() error {
	return e.Err
}

// Outcome is the result of processing one directory in one stage.
// The walk driver keeps or discards the directory based on it.
type Outcome struct {
	Stage Stage

	// Dir is the directory relative to the stage root, in slash form.
	Dir string

	// Units are the shader units found in the directory.
	Units []string

	// Err is non-nil if the directory failed.
	Err *DirError

	// Discard are the directories removed when the directory fails.
	Discard []string
}

// fail records err for the given file and returns the outcome.
func (o *Outcome) fail(file string, err error) *Outcome {
	o.Err = &DirError{Stage: o.Stage, Dir: o.Dir, File: file, Err: err}
	return o
}

// Report is the result of a pipeline run. It is safe for concurrent use.
type Report struct {
	mu sync.Mutex

	// Units maps the identity of every shader unit seen to its state.
	Units map[string]State

	// Failures are the failures that caused directories to be discarded.
	Failures []*DirError
}

// NewReport returns a new empty [Report].
func NewReport() *Report {
	return &Report{Units: map[string]State{}}
}

// record applies the outcome of a directory to the report.
func (r *Report) record(o *Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	to := o.Stage.Result()
	if o.Err != nil {
		to = Discarded
		r.Failures = append(r.Failures, o.Err)
	}
	for _, u := range o.Units {
		cur, ok := r.Units[u]
		if !ok {
			cur = o.Stage.Result() - 1
		}
		next, err := cur.Advance(to)
		if err != nil {
			slog.Debug("unit not advanced", "unit", u, "err", err)
			continue
		}
		r.Units[u] = next
	}
}

// State returns the state of the given unit, and whether the unit
// has been seen at all.
func (r *Report) State(unit string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Units[unit]
	return s, ok
}

// Count returns the number of units in the given state.
func (r *Report) Count(s State) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, us := range r.Units {
		if us == s {
			n++
		}
	}
	return n
}

// UnitsIn returns the sorted identities of the units in the given state.
func (r *Report) UnitsIn(s State) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var us []string
	for u, st := range r.Units {
		if st == s {
			us = append(us, u)
		}
	}
	slices.Sort(us)
	return us
}

// Err returns all of the failures joined, or nil if there were none.
func (r *Report) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
