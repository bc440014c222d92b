// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest reads and validates the pack.json file that a
// shader pack must have at its root to be loaded by the runtime.
package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/shaderpack/base/errors"
	"cogentcore.org/shaderpack/base/iox/jsonx"
	"github.com/Masterminds/semver/v3"
)

// Filename is the name of the manifest file at the root of a pack.
const Filename = "pack.json"

// Manifest describes a shader pack.
type Manifest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
	License     string `json:"license"`

	// Engine is the runtime engine the pack is made for.
	Engine string `json:"engine"`

	// File is the main file of the pack.
	File string `json:"file"`
}

// Open reads the manifest from the given file.
func Open(filename string) (*Manifest, error) {
	m := &Manifest{}
	if err := jsonx.Open(m, filename); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate returns an error describing every required field that
// is missing or malformed.
func (m *Manifest) Validate() error {
	var errs []error
	if strings.TrimSpace(m.ID) == "" {
		errs = append(errs, fmt.Errorf("missing id"))
	}
	if strings.TrimSpace(m.Name) == "" {
		errs = append(errs, fmt.Errorf("missing name"))
	}
	if _, err := m.SemVer(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SemVer returns the parsed version of the pack.
func (m *Manifest) SemVer() (*semver.Version, error) {
	if m.Version == "" {
		return nil, fmt.Errorf("missing version")
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", m.Version, err)
	}
	return v, nil
}

// Check opens and validates the manifest of the pack in the given directory.
func Check(dir string) (*Manifest, error) {
	fn := filepath.Join(dir, Filename)
	m, err := Open(fn)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return m, fmt.Errorf("%s: %w", fn, err)
	}
	return m, nil
}
