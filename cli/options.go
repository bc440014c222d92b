// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

// Options contains the options passed to cli
// that control its behavior.
type Options struct {

	// AppName is the name of the cli app.
	AppName string

	// AppAbout is the description of the cli app.
	AppAbout string

	// PrintSuccess is whether to print a message indicating
	// that a command was successful after it is run, unless
	// the user has specified a verbosity level above info.
	PrintSuccess bool

	// DefaultFiles are the default configuration file names, which
	// are looked up on [Options.IncludePaths] and opened if present.
	// The encoding of each file is determined by its extension
	// (.toml, .yaml or .yml).
	DefaultFiles []string

	// IncludePaths is a list of directories to try for finding the
	// default config files or the file specified via the --config flag.
	IncludePaths []string
}

// DefaultOptions returns a new [Options] value
// with standard default values, based on the given
// app name and optional app about info.
func DefaultOptions(appName string, appAbout ...string) *Options {
	about := ""
	if len(appAbout) > 0 {
		about = appAbout[0]
	}
	return &Options{
		AppName:      appName,
		AppAbout:     about,
		PrintSuccess: true,
		DefaultFiles: []string{appName + ".toml", appName + ".yaml"},
		IncludePaths: []string{".", "configs"},
	}
}
