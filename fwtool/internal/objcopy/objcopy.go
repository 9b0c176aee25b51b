// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objcopy converts ELF executables to flat binary images using the
// external objcopy tool.
package objcopy

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/smcfw/tools/fwtool/internal/util"
)

// Request describes a single conversion.
type Request struct {
	Input    string   // ELF executable
	Output   string   // flat binary
	Sections []string // sections to retain, all if empty
	Tool     string   // objcopy name or path
}

// Args returns the objcopy arguments (without the program name). The
// --only-section options follow the order of r.Sections.
func (r *Request) Args() []string {
	args := make([]string, 0, 4+2*len(r.Sections))
	args = append(args, "-O", "binary")
	for _, s := range r.Sections {
		args = append(args, "--only-section", s)
	}
	return append(args, r.Input, r.Output)
}

// Converter runs conversion requests.
type Converter struct {
	Exec   *util.Executor
	Stdout io.Writer
	Stderr io.Writer
	Log    zerolog.Logger
}

// Convert runs objcopy for r and returns the exit status of the whole
// conversion: 1 if the tool cannot be found (nothing is run in this case),
// the objcopy exit status if it fails, 0 on success.
func (c *Converter) Convert(r *Request) int {
	path, err := c.Exec.LookPath(r.Tool)
	if err != nil {
		fmt.Fprintf(c.Stderr, "Error: '%s' not found in PATH\n", r.Tool)
		c.Log.Debug().Err(err).Str("tool", r.Tool).Msg("lookup failed")
		return 1
	}
	cmd := c.Exec.Command(path, r.Tool, r.Args(), c.Stdout, c.Stderr)
	c.Log.Info().Msg("Running: " + util.CmdLine(cmd.Args))
	if err := c.Exec.Run(cmd); err != nil {
		fmt.Fprintf(c.Stderr, "%s failed: %v\n", r.Tool, err)
		return util.ExitCode(err)
	}
	fmt.Fprintf(c.Stdout, "Successfully created binary: %s\n", r.Output)
	return 0
}
