// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/shaderpack/base/exec"
	"cogentcore.org/shaderpack/glsl"
)

// Config is the configuration shared by all stages of a [Pipeline].
// It is copied into each stage and never modified after [New].
type Config struct {

	// Source is the pack source directory. Its base name is the pack name.
	Source string

	// Output is the root directory that compiled packs are written to.
	Output string

	// Temp is the root directory for merged and rewritten intermediates.
	Temp string

	// Common is the name of the per-directory file whose code is
	// prepended to every shader in that directory.
	Common string

	// Ext is the extension of shader source files.
	Ext string

	// Exclude are glob patterns of source files that are skipped.
	// A pattern matches either the file name or its slash path
	// relative to the source directory, and * does not match a /.
	Exclude []string

	// Qsb is the shader cross-compiler command.
	Qsb string

	// GLSL, HLSL and MSL are the compiler target profiles.
	GLSL string
	HLSL string
	MSL  string

	// Cpp is the C preprocessor command used to expand macros.
	Cpp string

	// CppFlags are the preprocessor flags, split with shell word rules.
	CppFlags string

	// DeleteSource removes each finalized shader from the temp
	// tree after it compiles successfully.
	DeleteSource bool

	// Jobs is the number of directories processed concurrently.
	Jobs int

	// Timeout is the maximum run time of each external command.
	// Zero means no timeout.
	Timeout time.Duration

	// Layout is the destination shader layout; nil means [glsl.DefaultLayout].
	Layout *glsl.Layout

	// Exec is the base configuration for running external commands;
	// nil means [exec.Minor].
	Exec *exec.Config
}

// Defaults returns a [Config] with the standard settings for the
// given source directory.
func Defaults(source string) Config {
	return Config{
		Source:   source,
		Output:   "packs_build",
		Temp:     "packs_processed",
		Common:   "Common.frag",
		Ext:      ".frag",
		Qsb:      "/usr/lib/qt6/bin/qsb",
		GLSL:     "330 es,330,320 es,320",
		HLSL:     "50",
		MSL:      "12",
		Cpp:      "cpp",
		CppFlags: "-P -C",
		Jobs:     1,
	}
}

// Pack returns the pack name, which is the base name of the source directory.
func (c *Config) Pack() string {
	return filepath.Base(filepath.Clean(c.Source))
}

// MergedRoot returns the root of the pack in the temp tree.
func (c *Config) MergedRoot() string {
	return filepath.Join(c.Temp, c.Pack())
}

// OutputRoot returns the root of the pack in the output tree.
func (c *Config) OutputRoot() string {
	return filepath.Join(c.Output, c.Pack())
}

// Validate returns an error if the config cannot be used to run a pipeline.
func (c *Config) Validate() error {
	switch {
	case c.Source == "":
		return fmt.Errorf("no input directory given")
	case c.Output == "":
		return fmt.Errorf("no output directory given")
	case c.Temp == "":
		return fmt.Errorf("no temp directory given")
	case c.Ext == "":
		return fmt.Errorf("no shader extension given")
	case !strings.HasPrefix(c.Ext, "."):
		return fmt.Errorf("shader extension %q must start with a dot", c.Ext)
	case c.Jobs < 0:
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	case c.Timeout < 0:
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	pack := c.Pack()
	if pack == "." || pack == ".." || pack == string(filepath.Separator) {
		return fmt.Errorf("input directory %q has no usable pack name", c.Source)
	}
	return nil
}

// isShader returns whether the named file is a shader unit source.
func (c *Config) isShader(name string) bool {
	return filepath.Ext(name) == c.Ext && name != c.Common
}

// unit returns the unit identity for the shader with the given
// path relative to a stage root, whatever its current extension.
func (c *Config) unit(rel string) string {
	rel = filepath.ToSlash(rel)
	ext := filepath.Ext(rel)
	return c.Pack() + "/" + strings.TrimSuffix(rel, ext) + c.Ext
}
