// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"debug/elf"
	"fmt"
	"os"
	"slices"
	"sort"
)

type Section struct {
	Name   string
	Vaddr  uint64 // address in the memory during execution
	Paddr  uint64 // phisical location of the section in the Flash/ROM
	Offset uint64 // offset in the ELF file to the beggining of the section data
	Data   []byte // section data
}

type Sections []*Section

func loadable(s *elf.Section) bool {
	return s.Type == elf.SHT_PROGBITS && s.Flags&elf.SHF_ALLOC != 0
}

// ReadELF reads the loadable sections of the program and returns them in the
// file order. If only is not empty the sections not listed in it are
// skipped. Naming a section that isn't loadable or doesn't exist is an
// error.
func ReadELF(name string, only []string) (Sections, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	for _, n := range only {
		s := f.Section(n)
		if s == nil {
			return nil, fmt.Errorf("%s: no section '%s'", name, n)
		}
		if !loadable(s) {
			return nil, fmt.Errorf("%s: section '%s' is not loadable", name, n)
		}
	}
	ss := make(Sections, 0, 16)
	for i, s := range f.Sections {
		if !loadable(s) {
			if k := i + 1; k < len(f.Sections) && len(ss) != 0 {
				if loadable(f.Sections[k]) {
					// Log the non-loadable sections between loadable ones.
					Warn("readelf: skipping section '%s' (%d bytes)", s.Name, s.Size)
				}
			}
			continue
		}
		if len(only) != 0 && !slices.Contains(only, s.Name) {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		paddr := s.Addr
		for _, p := range f.Progs {
			if p.Type != elf.PT_LOAD {
				continue
			}
			if p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		ss = append(ss, &Section{s.Name, s.Addr, paddr, s.Offset, data})
	}
	return ss, nil
}

// SortByPaddr sorts sections according to the Paddr field.
func (ss Sections) SortByPaddr() {
	sort.Slice(
		ss,
		func(i, j int) bool {
			return ss[i].Paddr < ss[j].Paddr
		},
	)
}

// Size returns the total number of data bytes in the sections.
func (ss Sections) Size() int {
	n := 0
	for _, s := range ss {
		n += len(s.Data)
	}
	return n
}
