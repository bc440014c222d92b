// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted in part from: https://github.com/magefile/mage
// Copyright presumably by Nate Finch, primary contributor
// Apache License, Version 2.0, January 2004

package exec

import (
	"context"
	"fmt"

	"github.com/mattn/go-shellwords"
)

// Run runs the given command using the given configuration information and arguments.
func (c *Config) Run(ctx context.Context, cmd string, args ...string) error {
	_, err := c.Exec(ctx, cmd, args...)
	return err
}

// Args returns a string parsed into separate args
// that can be passed into run commands, using
// standard shell quoting rules.
func Args(str string) ([]string, error) {
	args, err := shellwords.Parse(str)
	if err != nil {
		return nil, fmt.Errorf("parsing arguments %q: %w", str, err)
	}
	return args, nil
}
