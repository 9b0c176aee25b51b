// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testutil provides fixtures shared by the fwtool tests.
package testutil

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"os"
	"testing"
)

// Section describes a PROGBITS section of a synthesized ELF file.
type Section struct {
	Name  string
	Addr  uint64
	Data  []byte
	Alloc bool
}

const dataOff = 0x100

// WriteELF writes a little endian AArch64 executable containing secs to
// path. The section data is laid out contiguously in the file and covered
// by one PT_LOAD segment with the virtual address of the first section and
// the physical address lma.
func WriteELF(t testing.TB, path string, lma uint64, secs []Section) {
	t.Helper()
	var (
		data   []byte
		strtab = []byte{0}
		shdrs  = []elf.Section64{{}}
	)
	for _, s := range secs {
		name := uint32(len(strtab))
		strtab = append(append(strtab, s.Name...), 0)
		var flags uint64
		if s.Alloc {
			flags = uint64(elf.SHF_ALLOC | elf.SHF_EXECINSTR)
		}
		shdrs = append(shdrs, elf.Section64{
			Name:      name,
			Type:      uint32(elf.SHT_PROGBITS),
			Flags:     flags,
			Addr:      s.Addr,
			Off:       uint64(dataOff + len(data)),
			Size:      uint64(len(s.Data)),
			Addralign: 1,
		})
		data = append(data, s.Data...)
	}
	shstrndx := len(shdrs)
	strOff := dataOff + len(data)
	shdrs = append(shdrs, elf.Section64{
		Name:      uint32(len(strtab)),
		Type:      uint32(elf.SHT_STRTAB),
		Off:       uint64(strOff),
		Size:      uint64(len(strtab) + len(".shstrtab") + 1),
		Addralign: 1,
	})
	strtab = append(append(strtab, ".shstrtab"...), 0)
	shOff := (strOff + len(strtab) + 7) &^ 7

	var vaddr uint64
	if len(secs) != 0 {
		vaddr = secs[0].Addr
	}
	hdr := elf.Header64{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_AARCH64),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     vaddr,
		Phoff:     64,
		Shoff:     uint64(shOff),
		Ehsize:    64,
		Phentsize: 56,
		Phnum:     1,
		Shentsize: 64,
		Shnum:     uint16(len(shdrs)),
		Shstrndx:  uint16(shstrndx),
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	prog := elf.Prog64{
		Type:   uint32(elf.PT_LOAD),
		Flags:  uint32(elf.PF_R | elf.PF_X),
		Off:    dataOff,
		Vaddr:  vaddr,
		Paddr:  lma,
		Filesz: uint64(len(data)),
		Memsz:  uint64(len(data)),
		Align:  1,
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, &hdr)
	binary.Write(&buf, binary.LittleEndian, &prog)
	buf.Write(make([]byte, dataOff-buf.Len()))
	buf.Write(data)
	buf.Write(strtab)
	buf.Write(make([]byte, shOff-buf.Len()))
	binary.Write(&buf, binary.LittleEndian, shdrs)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}
