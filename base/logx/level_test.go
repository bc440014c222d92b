// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	oldLevel, oldColor := UserLevel, UseColor
	defer func() { UserLevel, UseColor = oldLevel, oldColor }()
	UserLevel = slog.LevelInfo
	UseColor = false

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf)).With("stage", "merge")
	lg.Debug("hidden")
	lg.Info("wrote file", "path", "pack1/image.tmp")
	lg.WithGroup("dir").Warn("discarded", "name", "pack1")

	assert.Equal(t, "wrote file stage=merge path=pack1/image.tmp\nWARN: discarded stage=merge dir.name=pack1\n", buf.String())
}
