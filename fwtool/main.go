// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/smcfw/tools/fwtool/internal/cmd/bin"
	"github.com/smcfw/tools/fwtool/internal/cmd/cc"
	"github.com/smcfw/tools/fwtool/internal/cmd/hex"
	"github.com/smcfw/tools/fwtool/internal/util"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"bin": {bin.Descr, bin.Main},
	"cc":  {cc.Descr, cc.Main},
	"hex": {hex.Descr, hex.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  fwtool COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Toolchain commands for bare-metal ARM64 images:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
	uw.WriteString(
		"\nRun 'fwtool COMMAND -h' for the options of a command.\n" +
			"Defaults are read from " + util.ConfigName + " ([bin] and [cc] tables)\n" +
			"and FWTOOL_* environment variables; FWTOOL_LOG sets the log level.\n",
	)
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "help" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	util.InitLogger(os.Stderr, "fwtool")
	tool.main(os.Args[1], os.Args[2:])
}
