// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smcfw/tools/fwtool/internal/objcopy"
	"github.com/smcfw/tools/fwtool/internal/util"
)

const Descr = "convert an ELF file to a flat binary image using objcopy"

func Main(cmd string, args []string) {
	os.Exit(Run(cmd, args, util.NewExecutor(), os.Stdout, os.Stderr))
}

// Run executes the bin tool and returns its exit status.
func Run(cmd string, args []string, ex *util.Executor, stdout, stderr io.Writer) int {
	cfg, err := util.ReadConfig(util.ToolBin)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return 1
	}
	if cfg.Path != "" {
		log.Debug().Str("config", cfg.Path).Msg("using config file")
	}
	req := &objcopy.Request{Tool: cfg.Objcopy}
	code := 0
	c := &cobra.Command{
		Use:   cmd + " [OPTIONS] ELF BIN",
		Short: Descr,
		Example: "  " + cmd + " kernel.elf kernel.bin\n" +
			"  " + cmd + " -s .text -s .data --objcopy aarch64-none-elf-objcopy bl31.elf bl31.bin",
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, pos []string) error {
			req.Input, req.Output = pos[0], pos[1]
			conv := &objcopy.Converter{
				Exec:   ex,
				Stdout: stdout,
				Stderr: stderr,
				Log:    log.Logger,
			}
			code = conv.Convert(req)
			return nil
		},
	}
	c.Flags().StringSliceVarP(
		&req.Sections, "sections", "s", nil,
		"section `NAME`s to include, all if omitted (repeat or separate by commas)",
	)
	c.Flags().StringVar(&req.Tool, "objcopy", req.Tool, "`PATH` to objcopy")
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
