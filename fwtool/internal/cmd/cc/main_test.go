// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cc

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"testing"

	"github.com/smcfw/tools/fwtool/internal/util"
)

func TestRun(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "fwtool.toml")
	err := os.WriteFile(cfg, []byte("[cc]\ncompiler = \"aarch64-none-elf-gcc\"\nlinker_script = \"bl31.ld\"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("FWTOOL_CONFIG", cfg)
	for _, k := range []string{"FWTOOL_CC", "FWTOOL_MARCH", "FWTOOL_LINKER_SCRIPT", "FWTOOL_FREESTANDING"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	src := t.TempDir()
	smc := filepath.Join(src, "bl31_smc.c")
	if err := os.WriteFile(smc, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		args []string
		want []string
	}{
		{
			[]string{src, "bl31.elf"},
			[]string{
				"aarch64-none-elf-gcc", "-march=armv8-a", "-o", "bl31.elf",
				"-ffreestanding", "-nostdlib", "-nostartfiles", "-T", "bl31.ld",
				smc,
			},
		},
		{
			[]string{"--freestanding=false", "--march", "armv8.2-a", "--cc", "clang", src, "bl31.elf"},
			[]string{"clang", "-march=armv8.2-a", "-o", "bl31.elf", smc},
		},
		{
			[]string{"-T", "other.ld", src, "bl31.elf"},
			[]string{
				"aarch64-none-elf-gcc", "-march=armv8-a", "-o", "bl31.elf",
				"-ffreestanding", "-nostdlib", "-nostartfiles", "-T", "other.ld",
				smc,
			},
		},
	}
	for _, tc := range tests {
		var runs [][]string
		ex := &util.Executor{
			LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
			Run: func(c *exec.Cmd) error {
				runs = append(runs, c.Args)
				return nil
			},
		}
		var stdout, stderr bytes.Buffer
		if code := Run("cc", tc.args, ex, &stdout, &stderr); code != 0 {
			t.Fatalf("%q: exit status %d, stderr: %s", tc.args, code, stderr.String())
		}
		if len(runs) != 1 || !slices.Equal(runs[0], tc.want) {
			t.Errorf("%q: runs = %q, want [%q]", tc.args, runs, tc.want)
		}
	}
}
