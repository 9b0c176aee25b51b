// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smcfw/tools/fwtool/internal/testutil"
)

func writeELF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bl31.elf")
	testutil.WriteELF(t, path, 0x100000, []testutil.Section{
		{Name: ".text", Addr: 0x80000000, Data: []byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}, Alloc: true},
		{Name: ".data", Addr: 0x80000010, Data: []byte{0xaa, 0xbb, 0xcc, 0xdd}, Alloc: true},
	})
	return path
}

func readHex(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.ToUpper(string(b))
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	elf := writeELF(t, dir)
	out := filepath.Join(dir, "bl31.hex")
	if err := Convert(elf, out, nil); err != nil {
		t.Fatal(err)
	}
	s := readHex(t, out)
	for _, want := range []string{"1112131415161718", "AABBCCDD", ":00000001FF"} {
		if !strings.Contains(s, want) {
			t.Errorf("HEX output lacks %s:\n%s", want, s)
		}
	}
}

func TestConvertOnly(t *testing.T) {
	dir := t.TempDir()
	elf := writeELF(t, dir)
	out := filepath.Join(dir, "text.hex")
	if err := Convert(elf, out, []string{".text"}); err != nil {
		t.Fatal(err)
	}
	s := readHex(t, out)
	if !strings.Contains(s, "1112131415161718") || strings.Contains(s, "AABBCCDD") {
		t.Errorf("unexpected HEX output:\n%s", s)
	}
	if err := Convert(elf, out, []string{".bss"}); err == nil {
		t.Error("expected an error for a missing section")
	}
}
