// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/smcfw/tools/fwtool/internal/testutil"
)

func writeTestELF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bl31.elf")
	testutil.WriteELF(t, path, 0x100000, []testutil.Section{
		{Name: ".text", Addr: 0x80000000, Data: []byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}, Alloc: true},
		{Name: ".comment", Data: []byte("gcc")},
		{Name: ".data", Addr: 0x8000000b, Data: []byte{0xaa, 0xbb, 0xcc, 0xdd}, Alloc: true},
	})
	return path
}

func TestReadELF(t *testing.T) {
	ss, err := ReadELF(writeTestELF(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ss) != 2 {
		t.Fatalf("got %d sections, want 2", len(ss))
	}
	want := []struct {
		name  string
		vaddr uint64
		paddr uint64
		data  []byte
	}{
		{".text", 0x80000000, 0x100000, []byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}},
		{".data", 0x8000000b, 0x10000b, []byte{0xaa, 0xbb, 0xcc, 0xdd}},
	}
	for i, w := range want {
		s := ss[i]
		if s.Name != w.name || s.Vaddr != w.vaddr || s.Paddr != w.paddr || !bytes.Equal(s.Data, w.data) {
			t.Errorf("section %d = {%s %#x %#x % x}, want {%s %#x %#x % x}",
				i, s.Name, s.Vaddr, s.Paddr, s.Data, w.name, w.vaddr, w.paddr, w.data)
		}
	}
	if n := ss.Size(); n != 12 {
		t.Errorf("Size() = %d, want 12", n)
	}
}

func TestReadELFOnly(t *testing.T) {
	path := writeTestELF(t)
	ss, err := ReadELF(path, []string{".data"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ss) != 1 || ss[0].Name != ".data" {
		t.Fatalf("got %d sections, want only .data", len(ss))
	}
	for _, only := range [][]string{{".bss"}, {".comment"}} {
		if _, err := ReadELF(path, only); err == nil {
			t.Errorf("ReadELF(%q): expected an error", only)
		}
	}
}

func TestSortByPaddr(t *testing.T) {
	ss := Sections{{Paddr: 0x30}, {Paddr: 0x10}, {Paddr: 0x20}}
	ss.SortByPaddr()
	for i, want := range []uint64{0x10, 0x20, 0x30} {
		if ss[i].Paddr != want {
			t.Fatalf("ss[%d].Paddr = %#x, want %#x", i, ss[i].Paddr, want)
		}
	}
}
