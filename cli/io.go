// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/shaderpack/base/fsx"
	"cogentcore.org/shaderpack/base/iox/tomlx"
	"cogentcore.org/shaderpack/base/iox/yamlx"
)

// OpenFile reads the config struct from the given config file,
// choosing the encoding from the file extension.
func OpenFile(cfg any, file string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return tomlx.Open(cfg, file)
	case ".yaml", ".yml":
		return yamlx.Open(cfg, file)
	default:
		return fmt.Errorf("cli.OpenFile: unsupported config file format %q", file)
	}
}

// openConfigFiles opens the config file specified by the user, which
// must exist on [Options.IncludePaths], or otherwise any of the
// [Options.DefaultFiles] found there. It returns the files it opened.
func openConfigFiles(opts *Options, cfg any, file string) ([]string, error) {
	if file != "" {
		files := fsx.FindFilesOnPaths(opts.IncludePaths, file)
		if filepath.IsAbs(file) {
			if ok, _ := fsx.FileExists(file); ok {
				files = []string{file}
			}
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("config file %q not found on paths %v", file, opts.IncludePaths)
		}
		return files[:1], OpenFile(cfg, files[0])
	}
	files := fsx.FindFilesOnPaths(opts.IncludePaths, opts.DefaultFiles...)
	for _, fn := range files {
		if err := OpenFile(cfg, fn); err != nil {
			return files, err
		}
	}
	return files, nil
}
