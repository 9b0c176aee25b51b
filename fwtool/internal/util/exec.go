// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"io"
	"os/exec"
	"strings"

	"golang.org/x/sys/execabs"
)

// Executor resolves and runs external toolchain programs. Both fields can be
// replaced to run the tools without spawning any process.
type Executor struct {
	LookPath func(file string) (string, error)
	Run      func(c *exec.Cmd) error
}

// NewExecutor returns an Executor that uses the search path and really runs
// the programs. Relative paths found through PATH are rejected.
func NewExecutor() *Executor {
	return &Executor{
		LookPath: execabs.LookPath,
		Run:      (*exec.Cmd).Run,
	}
}

// Command returns the command that runs the program at path. The arguments
// are passed as they are, never through a shell.
func (e *Executor) Command(path, name string, args []string, stdout, stderr io.Writer) *exec.Cmd {
	return &exec.Cmd{
		Path:   path,
		Args:   append([]string{name}, args...),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// ExitCode returns the exit status that represents err: 0 for nil, the exit
// code of the failed process or 1 for any other error (including processes
// killed by a signal).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec interface{ ExitCode() int }
	if errors.As(err, &ec) {
		if code := ec.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

// CmdLine returns the printable form of the argument vector.
func CmdLine(args []string) string {
	return strings.Join(args, " ")
}
