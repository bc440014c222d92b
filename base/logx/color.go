// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages.
// It is on by default; the terminal color profile
// still decides whether any escape codes are emitted.
var UseColor = true

// colorProfile is the termenv color profile, detected from the
// environment so that NO_COLOR and non-terminal outputs are respected.
var colorProfile = termenv.EnvColorProfile()

// ApplyColor applies the given color to the given string
// and returns the resulting string. If [UseColor] is false,
// it just returns the string it was passed.
func ApplyColor(clr termenv.Color, str string) string {
	if !UseColor {
		return str
	}
	return colorProfile.String(str).Foreground(clr).String()
}

// LevelColor returns the color that should be used for the given level.
func LevelColor(level slog.Level) termenv.Color {
	switch {
	case level >= slog.LevelError:
		return termenv.ANSIBrightRed
	case level >= slog.LevelWarn:
		return termenv.ANSIYellow
	case level >= slog.LevelInfo:
		return termenv.ANSIBrightBlack
	default:
		return termenv.ANSIMagenta
	}
}

// ApplyLevelColor applies the color associated with the given level
// to the given string and returns the resulting string.
func ApplyLevelColor(level slog.Level, str string) string {
	return ApplyColor(LevelColor(level), str)
}

// CmdColor applies the color used for printing the commands
// that are run to the given string.
func CmdColor(str string) string {
	return ApplyColor(termenv.ANSICyan, str)
}

// SuccessColor applies the color used for success messages
// to the given string.
func SuccessColor(str string) string {
	return ApplyColor(termenv.ANSIGreen, str)
}

// ErrorColor applies the color used for errors to the given string.
func ErrorColor(str string) string {
	return ApplyLevelColor(slog.LevelError, str)
}
