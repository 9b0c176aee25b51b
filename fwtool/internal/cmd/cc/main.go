// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cc

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smcfw/tools/fwtool/internal/compile"
	"github.com/smcfw/tools/fwtool/internal/util"
)

const Descr = "compile C/assembly sources in a folder into an ARM64 executable"

func Main(cmd string, args []string) {
	os.Exit(Run(cmd, args, util.NewExecutor(), os.Stdout, os.Stderr))
}

// Run executes the cc tool and returns its exit status.
func Run(cmd string, args []string, ex *util.Executor, stdout, stderr io.Writer) int {
	cfg, err := util.ReadConfig(util.ToolCC)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return 1
	}
	if cfg.Path != "" {
		log.Debug().Str("config", cfg.Path).Msg("using config file")
	}
	req := &compile.Request{
		Tool:         cfg.CC,
		March:        cfg.March,
		LinkerScript: cfg.LinkerScript,
		Freestanding: cfg.Freestanding,
	}
	comp := &compile.Compiler{
		Exec:   ex,
		Stdout: stdout,
		Stderr: stderr,
		Log:    log.Logger,
	}
	code := 0
	c := &cobra.Command{
		Use:           cmd + " [OPTIONS] INPUT_FOLDER OUTPUT_FILE",
		Short:         Descr,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, pos []string) error {
			req.Input, req.Output = pos[0], pos[1]
			code = comp.Compile(req)
			return nil
		},
	}
	fs := c.Flags()
	fs.StringVar(&req.Tool, "cc", req.Tool, "`PATH` to the C compiler")
	fs.StringVar(&req.March, "march", req.March, "target `ARCH`itecture passed as -march")
	fs.BoolVar(
		&req.Freestanding, "freestanding", req.Freestanding,
		"build without libc and startup files using the linker script",
	)
	fs.StringVarP(&req.LinkerScript, "script", "T", req.LinkerScript, "linker script `FILE` used in the freestanding mode")
	fs.BoolVar(
		&comp.IgnoreFailure, "ignore-failure", false,
		"exit with status 0 even if the compiler fails",
	)
	c.SetArgs(args)
	c.SetOut(stdout)
	c.SetErr(stderr)
	if err := c.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		c.Usage()
		return 2
	}
	return code
}
