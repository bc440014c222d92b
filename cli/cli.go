// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli generates command line interfaces from configuration
// structs and command functions. Config fields are documented with
// struct tags: `default:` sets the default value, `flag:` sets the
// flag names, `posarg:` marks a positional argument and `desc:`
// provides the usage text. Values are applied in the order defaults,
// config files, command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/shaderpack/base/errors"
	"cogentcore.org/shaderpack/base/logx"
	"github.com/spf13/pflag"
)

// ErrHelp is returned by [Config] when the user asked for help
// and usage information has been printed.
var ErrHelp = pflag.ErrHelp

// Cmd represents a runnable command with configuration options.
// The type constraint is the type of the configuration
// information passed to the command.
type Cmd[T any] struct {

	// Func is the actual function that runs the command.
	// It takes configuration information and returns an error.
	Func func(T) error

	// Name is the name of the command.
	Name string

	// Doc is the documentation for the command.
	Doc string

	// Root is whether the command is the root command
	// (what is called when no subcommands are passed).
	Root bool
}

// Run runs an app with the given options, configuration struct,
// and commands. It does not run the GUI; the configuration struct
// should be a pointer. It uses [os.Args] for its arguments.
func Run[T any](opts *Options, cfg T, cmds ...*Cmd[T]) error {
	cmd, err := Config(opts, cfg, os.Args[1:], cmds...)
	if err != nil {
		if errors.Is(err, ErrHelp) {
			return nil
		}
		return fmt.Errorf("error configuring app: %w", err)
	}
	err = cmd.Func(cfg)
	if err != nil {
		return fmt.Errorf("error running command %q: %w", cmd.Name, err)
	}
	if opts.PrintSuccess && logx.UserLevel <= slog.LevelInfo {
		fmt.Println(logx.SuccessColor(opts.AppName + " " + cmd.Name + " succeeded"))
	}
	return nil
}

// Config sets the config object from the given command line arguments,
// after applying `default:` tags and any config files, and returns
// the command to run. If no command is named in the arguments, the
// root command is returned.
func Config[T any](opts *Options, cfg T, args []string, cmds ...*Cmd[T]) (*Cmd[T], error) {
	if err := SetFromDefaults(cfg); err != nil {
		return nil, err
	}
	if _, err := openConfigFiles(opts, cfg, configFlag(args)); err != nil {
		return nil, err
	}

	flds, err := fields(cfg)
	if err != nil {
		return nil, err
	}
	fs := pflag.NewFlagSet(opts.AppName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("config", "", "the config file to open (TOML or YAML)")
	if err := addFlags(fs, flds); err != nil {
		return nil, err
	}
	err = fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Print(Usage(opts, fs, cmds...))
		return nil, ErrHelp
	}
	if err != nil {
		return nil, err
	}

	rest := fs.Args()
	var cmd *Cmd[T]
	if len(rest) > 0 {
		if rest[0] == "help" {
			fmt.Print(Usage(opts, fs, cmds...))
			return nil, ErrHelp
		}
		for _, c := range cmds {
			if c.Name == rest[0] {
				cmd = c
				rest = rest[1:]
				break
			}
		}
	}
	if cmd == nil {
		for _, c := range cmds {
			if c.Root {
				cmd = c
				break
			}
		}
	}
	if cmd == nil {
		return nil, fmt.Errorf("no command specified and no root command; see %s help", opts.AppName)
	}

	used := 0
	for _, fd := range flds {
		if fd.posarg < 0 || fd.posarg >= len(rest) {
			continue
		}
		if fs.Changed(fd.long) {
			return nil, fmt.Errorf("%s given both as a flag and as an argument", fd.long)
		}
		if err := setFromString(fd.value, rest[fd.posarg]); err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", fd.posarg, fd.long, err)
		}
		used++
	}
	if used < len(rest) {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(rest[used:], " "))
	}
	return cmd, nil
}

// configFlag returns the value of a --config flag in the given
// arguments, which must be known before the remaining flags are parsed.
func configFlag(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// Usage returns the usage string for the given app, flag set and commands.
func Usage[T any](opts *Options, fs *pflag.FlagSet, cmds ...*Cmd[T]) string {
	var b strings.Builder
	if opts.AppAbout != "" {
		b.WriteString(opts.AppAbout + "\n\n")
	}
	fmt.Fprintf(&b, "Usage:\n  %s [command] [flags]\n\n", opts.AppName)
	if len(cmds) > 0 {
		b.WriteString("Commands:\n")
		for _, c := range cmds {
			nm := c.Name
			if c.Root {
				nm += " (default)"
			}
			fmt.Fprintf(&b, "  %-16s %s\n", nm, c.Doc)
		}
		fmt.Fprintf(&b, "  %-16s %s\n\n", "help", "show this usage information")
	}
	b.WriteString("Flags:\n")
	b.WriteString(fs.FlagUsages())
	return b.String()
}
