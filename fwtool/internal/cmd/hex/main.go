// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hex

import (
	"fmt"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smcfw/tools/fwtool/internal/util"
)

const Descr = "convert an ELF file to the Intel HEX format"

func Main(cmd string, args []string) {
	var sections []string
	c := &cobra.Command{
		Use:           cmd + " [OPTIONS] [ELF [HEX]]",
		Short:         Descr,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, pos []string) error {
			pos = append(pos, "", "")
			elf, hex := util.InOutFiles(pos[0], ".elf", pos[1], ".hex")
			return Convert(elf, hex, sections)
		},
	}
	c.Flags().StringSliceVarP(
		&sections, "sections", "s", nil,
		"section `NAME`s to include, all loadable if omitted",
	)
	c.SetArgs(args)
	util.FatalErr(cmd, c.Execute())
}

// Convert writes the loadable sections of the ELF file to the HEX file.
func Convert(elf, hex string, only []string) error {
	sections, err := util.ReadELF(elf, only)
	if err != nil {
		return fmt.Errorf("readelf: %w", err)
	}
	sections.SortByPaddr()
	mem := gohex.NewMemory()
	for _, s := range sections {
		log.Debug().
			Str("section", s.Name).
			Str("vaddr", fmt.Sprintf("%#x", s.Vaddr)).
			Str("paddr", fmt.Sprintf("%#x", s.Paddr)).
			Int("size", len(s.Data)).
			Msg("hex")
		if uint64(uint32(s.Paddr)) != s.Paddr {
			return fmt.Errorf("section '%s': address %#x doesn't fit in 32 bits", s.Name, s.Paddr)
		}
		if err := mem.AddBinary(uint32(s.Paddr), s.Data); err != nil {
			return fmt.Errorf("section '%s': %w", s.Name, err)
		}
	}
	w, err := os.Create(hex)
	if err != nil {
		return err
	}
	if err = mem.DumpIntelHex(w, 16); err != nil {
		w.Close()
		return fmt.Errorf("dumpintelhex: %w", err)
	}
	if err = w.Close(); err != nil {
		return err
	}
	log.Info().Int("bytes", sections.Size()).Msg("wrote " + hex)
	return nil
}
