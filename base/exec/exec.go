// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted in part from: https://github.com/magefile/mage
// Copyright presumably by Nate Finch, primary contributor
// Apache License, Version 2.0, January 2004

package exec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"cogentcore.org/shaderpack/base/errors"
	"cogentcore.org/shaderpack/base/logx"
)

// Exec executes the command, piping its stdout and stderr to the config
// writers. If the command fails, it will return an error with the command
// line and anything it wrote to stderr. Env is a list of environment
// variables to set when running the command, which override the current
// environment variables set (which are also passed to the command).
// cmd and args may include references to environment variables in $FOO
// format, in which case these will be expanded before the command is run.
//
// Ran reports if the command ran (rather than was not found or not executable).
// If err == nil, ran is always true.
func (c *Config) Exec(ctx context.Context, cmd string, args ...string) (ran bool, err error) {
	expand := func(s string) string {
		s2, ok := c.Env[s]
		if ok {
			return s2
		}
		return os.Getenv(s)
	}
	cmd = os.Expand(cmd, expand)
	args = append([]string(nil), args...)
	for i := range args {
		args[i] = os.Expand(args[i], expand)
	}
	ran, stderr, err := c.run(ctx, cmd, args...)
	if err == nil {
		return true, nil
	}
	err = &Error{Cmd: cmd, Args: args, Stderr: stderr, Err: err}
	if c.Errors != nil {
		c.Errors.Write([]byte(logx.ErrorColor(err.Error()) + "\n"))
	}
	return ran, err
}

func (c *Config) run(ctx context.Context, cmd string, args ...string) (ran bool, stderr string, err error) {
	if c.Commands != nil {
		c.Commands.Write([]byte(logx.CmdColor(cmd+" "+strings.Join(args, " ")) + "\n"))
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	cm := exec.CommandContext(ctx, cmd, args...)
	cm.Env = os.Environ()
	for k, v := range c.Env {
		cm.Env = append(cm.Env, k+"="+v)
	}
	errBuf := &bytes.Buffer{}
	if c.Stderr != nil {
		cm.Stderr = io.MultiWriter(c.Stderr, errBuf)
	} else {
		cm.Stderr = errBuf
	}
	cm.Stdout = c.Stdout
	cm.Stdin = c.Stdin
	err = cm.Run()
	if err != nil && ctx.Err() != nil {
		err = fmt.Errorf("%w (%w)", ctx.Err(), err)
	}
	return CmdRan(err), strings.TrimSpace(errBuf.String()), err
}

// Error is the error returned for a command that failed to run
// or exited with a non-zero status.
type Error struct {
	// Cmd is the command that was run.
	Cmd string

	// Args are the arguments passed to the command.
	Args []string

	// Stderr is what the command wrote to its standard error.
	Stderr string

	// Err is the underlying error from [exec.Cmd.Run].
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("failed to run %q: %v", e.Cmd+" "+strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitStatus returns the exit status of the failed command.
func (e *Error) ExitStatus() int {
	return ExitStatus(e.Err)
}

// CmdRan examines the error to determine if it was generated as a result of a
// command running via os/exec.Command. If the error is nil, or the command ran
// (even if it exited with a non-zero exit code), CmdRan reports true. If the
// error is an unrecognized type, or it is an error from exec.Command that says
// the command failed to run (usually due to the command not existing or not
// being executable), it reports false.
func CmdRan(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.Exited()
	}
	return false
}

type exitStatus interface {
	ExitStatus() int
}

// ExitStatus returns the exit status of the error if it is an exec.ExitError
// or if it implements ExitStatus() int.
// 0 if it is nil or 1 if it is a different error.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ex, ok := ee.Sys().(exitStatus); ok {
			return ex.ExitStatus()
		}
		return ee.ExitCode()
	}
	if e, ok := err.(exitStatus); ok {
		return e.ExitStatus()
	}
	return 1
}
