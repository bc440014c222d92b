// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import "fmt"

// State is the lifecycle state of a shader unit.
type State int32

const (
	// Raw is a source file that has not been processed.
	Raw State = iota

	// Merged has been combined with its directory's common block.
	Merged

	// Expanded has been run through the macro preprocessor.
	Expanded

	// Rewritten has the destination header, footer and uniforms.
	Rewritten

	// Compiled has a compiled artifact in the output tree.
	Compiled

	// Discarded was removed after a failure in its directory.
	Discarded
)

var stateNames = [...]string{"Raw", "Merged", "Expanded", "Rewritten", "Compiled", "Discarded"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", s)
	}
	return stateNames[s]
}

// Terminal returns whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Compiled || s == Discarded
}

// Advance returns the state to after checking that moving from s to
// it is allowed: each state moves to the one after it, and every
// non-terminal state may move to [Discarded].
func (s State) Advance(to State) (State, error) {
	if s.Terminal() || (to != s+1 && to != Discarded) {
		return s, fmt.Errorf("invalid transition from %v to %v", s, to)
	}
	return to, nil
}

// Stage is one stage of the pipeline.
type Stage int32

const (
	StageMerge Stage = iota
	StageExpand
	StageRewrite
	StageCompile
)

var stageNames = [...]string{"merge", "expand", "rewrite", "compile"}

func (st Stage) String() string {
	if st < 0 || int(st) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", st)
	}
	return stageNames[st]
}

// Result returns the state of a unit that the stage has completed.
func (st Stage) Result() State {
	return State(st) + 1
}
