// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"io"
	"log/slog"
	"maps"
	"os"
	"time"

	"cogentcore.org/shaderpack/base/logx"
)

// Config contains the configuration information that
// controls the behavior of exec. It is passed to most
// high-level functions, and a default version of it
// can be easily constructed using [Major] or [Minor].
type Config struct {

	// Stdout is the writer to write the standard output of called commands to.
	// It can be set to nil to disable the writing of the standard output.
	Stdout io.Writer

	// Stderr is the writer to write the standard error of called commands to.
	// It can be set to nil to disable the writing of the standard error.
	// The standard error is always also captured and included in the
	// error returned for a failed command.
	Stderr io.Writer

	// Stdin is the reader to use as the standard input.
	Stdin io.Reader

	// Commands is the writer to write the string representation of the called commands to.
	// It can be set to nil to disable the writing of the string representations of the called commands.
	Commands io.Writer

	// Errors is the writer to write program errors to.
	// It can be set to nil to disable the writing of program errors.
	Errors io.Writer

	// Env contains any additional environment variables specified.
	// The current environment variables will also be passed to the
	// command, but they will be overridden by any variables here
	// if there are conflicts.
	Env map[string]string

	// Timeout is the maximum duration a single command may run
	// before it is killed. Zero means no timeout.
	Timeout time.Duration
}

// Major returns the default [Config] object for a major command,
// based on [logx.UserLevel]. It should be used for commands that
// are central to an app's logic and are more important for the user
// to know about and be able to see the output of. It results in
// commands and output being printed with a [logx.UserLevel] of
// [slog.LevelInfo] or below, whereas [Minor] results in that only
// with a [logx.UserLevel] of [slog.LevelDebug] or below.
func Major() *Config {
	if logx.UserLevel <= slog.LevelInfo {
		return &Config{
			Stdout:   os.Stdout,
			Stderr:   os.Stderr,
			Commands: os.Stdout,
			Errors:   os.Stderr,
			Env:      map[string]string{},
		}
	}
	return &Config{
		Stderr: os.Stderr,
		Errors: os.Stderr,
		Env:    map[string]string{},
	}
}

// Minor returns the default [Config] object for a minor command,
// based on [logx.UserLevel]. It should be used for commands that
// support an app behind the scenes and are less important for the
// user to know about and be able to see the output of.
func Minor() *Config {
	if logx.UserLevel <= slog.LevelDebug {
		return &Config{
			Stdout:   os.Stdout,
			Stderr:   os.Stderr,
			Commands: os.Stdout,
			Errors:   os.Stderr,
			Env:      map[string]string{},
		}
	}
	return &Config{
		Errors: os.Stderr,
		Env:    map[string]string{},
	}
}

// Silent returns a [Config] that writes nothing anywhere;
// command output is only visible through returned errors.
func Silent() *Config {
	return &Config{Env: map[string]string{}}
}

// Clone returns a copy of the config, with its own Env map,
// so that setters on the copy do not affect the original.
func (c *Config) Clone() *Config {
	nc := *c
	nc.Env = maps.Clone(c.Env)
	if nc.Env == nil {
		nc.Env = map[string]string{}
	}
	return &nc
}

// SetStdout sets the standard output writer and returns the config.
func (c *Config) SetStdout(w io.Writer) *Config {
	c.Stdout = w
	return c
}

// SetCommands sets the writer commands are echoed to and returns the config.
func (c *Config) SetCommands(w io.Writer) *Config {
	c.Commands = w
	return c
}

// SetErrors sets the writer program errors are written to and returns the config.
func (c *Config) SetErrors(w io.Writer) *Config {
	c.Errors = w
	return c
}

// SetEnv sets the given environment variable and returns the config.
func (c *Config) SetEnv(key, value string) *Config {
	if c.Env == nil {
		c.Env = map[string]string{}
	}
	c.Env[key] = value
	return c
}

// SetTimeout sets the per-command timeout and returns the config.
func (c *Config) SetTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}
