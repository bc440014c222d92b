// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"cogentcore.org/shaderpack/base/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipNoShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestRun(t *testing.T) {
	skipNoShell(t)
	ctx := context.Background()
	assert.NoError(t, Silent().Run(ctx, "true"))

	err := Silent().Run(ctx, "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)
	var ee *Error
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "boom", ee.Stderr)
	assert.Equal(t, 3, ExitStatus(err))
	assert.True(t, CmdRan(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestNotFound(t *testing.T) {
	ran, err := Silent().Exec(context.Background(), "shaderpack-no-such-tool")
	assert.Error(t, err)
	assert.False(t, ran)
	assert.Equal(t, 1, ExitStatus(err))
}

func TestStdout(t *testing.T) {
	skipNoShell(t)
	var out, cmds bytes.Buffer
	c := Silent().SetStdout(&out).SetCommands(&cmds).SetEnv("GREETING", "hello")
	require.NoError(t, c.Run(context.Background(), "sh", "-c", "echo $GREETING world"))
	assert.Equal(t, "hello world\n", out.String())
	assert.Contains(t, cmds.String(), "sh -c echo hello world")
}

func TestTimeout(t *testing.T) {
	skipNoShell(t)
	start := time.Now()
	err := Silent().SetTimeout(50*time.Millisecond).Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestArgs(t *testing.T) {
	args, err := Args(`-P -C "-D NAME=a b"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"-P", "-C", "-D NAME=a b"}, args)

	_, err = Args(`-P "unterminated`)
	assert.Error(t, err)
}
