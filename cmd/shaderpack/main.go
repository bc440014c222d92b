// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shaderpack builds packs of ShaderToy fragment shaders into
// shaders compiled with qsb for the Qt RHI runtime.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"cogentcore.org/shaderpack/base/errors"
	"cogentcore.org/shaderpack/base/exec"
	"cogentcore.org/shaderpack/base/logx"
	"cogentcore.org/shaderpack/cli"
	"cogentcore.org/shaderpack/manifest"
	"cogentcore.org/shaderpack/pipeline"
)

// Config is the configuration information for the shaderpack cli.
type Config struct {

	// Input is the pack directory to process. Its base name is the
	// name of the pack in the temp and output directories.
	Input string `flag:"i,input" posarg:"0" desc:"the pack directory to process"`

	// Output is the directory that compiled packs are written to.
	Output string `flag:"o,output" default:"packs_build" desc:"the output directory"`

	// Temp is the directory for intermediate files.
	Temp string `flag:"t,temp" default:"packs_processed" desc:"the temporary files directory"`

	// Qsb is the path to the qsb shader compiler.
	Qsb string `flag:"q,qsb" default:"/usr/lib/qt6/bin/qsb" desc:"the path to the qsb compiler"`

	Cpp string `default:"cpp" desc:"the C preprocessor command"`

	// CppFlags are the preprocessor flags. The defaults disable line
	// markers, which are not valid GLSL, and keep comments.
	CppFlags string `default:"-P -C" desc:"the C preprocessor flags"`

	GLSL string `default:"330 es,330,320 es,320" desc:"the GLSL versions to compile for"`
	HLSL string `default:"50" desc:"the HLSL shader model to compile for"`
	MSL  string `default:"12" desc:"the Metal shading language version to compile for"`

	Common string `default:"Common.frag" desc:"the name of the per-directory common code file"`

	// Exclude are glob patterns of input files to skip, matched
	// against file names and paths relative to the input directory.
	Exclude []string `flag:"x,exclude" desc:"glob patterns of input files to skip"`

	DeleteSource bool `desc:"delete intermediate shaders after they compile"`

	Jobs int `flag:"j,jobs" default:"1" desc:"the number of directories to process at once"`

	Timeout time.Duration `default:"0s" desc:"the time limit for each external command (0 for none)"`

	// Settle is how long the watch command waits for changes to stop
	// before rebuilding.
	Settle time.Duration `default:"200ms" desc:"the delay before rebuilding in watch mode"`

	// Trash makes the clean command move files to the trash
	// instead of deleting them.
	Trash bool `desc:"move cleaned files to the trash"`

	Verbose bool `flag:"v,verbose" desc:"print information about each processed file"`
	Debug   bool `desc:"print debugging information, including every command run"`
	Quiet   bool `desc:"only print errors"`
}

// errDiscarded is returned when a build completed
// but some of its directories were discarded.
var errDiscarded = errors.New("some directories were discarded")

func main() {
	opts := cli.DefaultOptions("shaderpack", "Builds ShaderToy shader packs for the Qt RHI runtime.")
	err := cli.Run(opts, &Config{}, Commands()...)
	if err != nil {
		fmt.Fprintln(os.Stderr, logx.ErrorColor(err.Error()))
		if errors.Is(err, errDiscarded) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// Commands returns the commands of the cli.
func Commands() []*cli.Cmd[*Config] {
	return []*cli.Cmd[*Config]{
		{Name: "build", Root: true, Func: Build, Doc: "merge, expand, rewrite and compile the pack"},
		{Name: "watch", Func: Watch, Doc: "build the pack, and again every time it changes"},
		{Name: "rewrite", Func: Rewrite, Doc: "rewrite the shaders of the input directory in place"},
		{Name: "compile", Func: Compile, Doc: "compile an input directory of rewritten shaders"},
		{Name: "clean", Func: Clean, Doc: "remove the temporary files of the pack"},
		{Name: "check", Func: Check, Doc: "check the pack manifest"},
	}
}

// setup applies the logging flags.
func (c *Config) setup() {
	logx.UserLevel = logx.LevelFromFlags(c.Debug, c.Verbose, c.Quiet)
	logx.SetDefaultLogger()
}

// PipelineConfig returns the pipeline configuration for the config.
func (c *Config) PipelineConfig() pipeline.Config {
	pc := pipeline.Defaults(c.Input)
	pc.Output = c.Output
	pc.Temp = c.Temp
	pc.Common = c.Common
	pc.Exclude = c.Exclude
	pc.Qsb = c.Qsb
	pc.GLSL = c.GLSL
	pc.HLSL = c.HLSL
	pc.MSL = c.MSL
	pc.Cpp = c.Cpp
	pc.CppFlags = c.CppFlags
	pc.DeleteSource = c.DeleteSource
	pc.Jobs = c.Jobs
	pc.Timeout = c.Timeout
	// failures are reported once, by the pipeline
	pc.Exec = exec.Minor().SetErrors(nil)
	return pc
}

func (c *Config) pipeline() (*pipeline.Pipeline, error) {
	c.setup()
	return pipeline.New(c.PipelineConfig())
}

// signalContext returns a context that is canceled on an interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// result converts the result of a run into the error for the command.
func result(rep *pipeline.Report, err error) error {
	if err != nil {
		return err
	}
	slog.Info("done", "compiled", rep.Count(pipeline.Compiled), "rewritten", rep.Count(pipeline.Rewritten), "discarded", rep.Count(pipeline.Discarded))
	if ferr := rep.Err(); ferr != nil {
		return fmt.Errorf("%w: %d directories:\n%w", errDiscarded, len(rep.Failures), ferr)
	}
	return nil
}

// Build builds the pack.
func Build(c *Config) error {
	p, err := c.pipeline()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return result(p.Run(ctx))
}

// Watch builds the pack and rebuilds it every time a file in it
// changes, until interrupted.
func Watch(c *Config) error {
	p, err := c.pipeline()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return p.Watch(ctx, c.Settle, func(rep *pipeline.Report, err error) {
		if err := result(rep, err); err != nil {
			slog.Error(err.Error())
			return
		}
		fmt.Println(logx.SuccessColor("built " + p.Config.OutputRoot()))
	})
}

// Rewrite rewrites the shaders of the input directory in place.
func Rewrite(c *Config) error {
	p, err := c.pipeline()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return result(p.Rewrite(ctx))
}

// Compile compiles an input directory of rewritten shaders.
func Compile(c *Config) error {
	p, err := c.pipeline()
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return result(p.Compile(ctx))
}

// Clean removes the temporary files of the pack.
func Clean(c *Config) error {
	p, err := c.pipeline()
	if err != nil {
		return err
	}
	if c.Trash {
		return p.Trash()
	}
	return p.Clean()
}

// Check checks the pack manifest.
func Check(c *Config) error {
	c.setup()
	if c.Input == "" {
		return fmt.Errorf("no input directory given")
	}
	m, err := manifest.Check(c.Input)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s (%s)\n", m.Name, m.Version, m.ID)
	return nil
}
