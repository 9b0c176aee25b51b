// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

const ConfigName = "fwtool.toml"

// Config holds the toolchain settings shared by all tools.
type Config struct {
	Objcopy      string // objcopy name or path
	CC           string // C compiler name or path
	March        string // value of the -march compiler option
	LinkerScript string // linker script used in the freestanding mode
	Freestanding bool

	Path string // config file the settings were read from, if any
}

func DefaultConfig() Config {
	return Config{
		Objcopy:      "objcopy",
		CC:           "gcc",
		March:        "armv8-a",
		LinkerScript: "./link.ld",
		Freestanding: true,
	}
}

// Config file sections. Each tool reads only its own section and its own
// environment variables.
const (
	ToolBin = "bin"
	ToolCC  = "cc"
)

type fileConfig struct {
	Bin toml.Primitive `toml:"bin"`
	CC  toml.Primitive `toml:"cc"`
}

type binConfig struct {
	Objcopy string `toml:"objcopy"`
}

type ccConfig struct {
	Compiler     string `toml:"compiler"`
	March        string `toml:"march"`
	LinkerScript string `toml:"linker_script"`
	Freestanding bool   `toml:"freestanding"`
}

// FindConfig looks for the fwtool.toml file in dir and its parents. The
// search stops at the first directory containing go.mod or at the root of
// the file system. It returns an empty string if there is no config file.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(dir, ConfigName)
		fi, err := os.Stat(path)
		if err == nil {
			if !fi.Mode().IsRegular() {
				return "", fmt.Errorf("%s is not a regular file", path)
			}
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		_, err = os.Stat(filepath.Join(dir, "go.mod"))
		if err == nil {
			return "", nil // found go.mod but no config, stop here
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadConfig updates cfg with the settings defined in the tool section of
// the TOML file. Values in the sections of other tools are not checked.
func LoadConfig(path, tool string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !meta.IsDefined(tool) {
		tool = ""
	}
	switch tool {
	case ToolBin:
		var bc binConfig
		if err := meta.PrimitiveDecode(raw.Bin, &bc); err != nil {
			return fmt.Errorf("load config [%s]: %w", tool, err)
		}
		if meta.IsDefined(tool, "objcopy") {
			cfg.Objcopy = strings.TrimSpace(bc.Objcopy)
		}
	case ToolCC:
		var cc ccConfig
		if err := meta.PrimitiveDecode(raw.CC, &cc); err != nil {
			return fmt.Errorf("load config [%s]: %w", tool, err)
		}
		if meta.IsDefined(tool, "compiler") {
			cfg.CC = strings.TrimSpace(cc.Compiler)
		}
		if meta.IsDefined(tool, "march") {
			cfg.March = strings.TrimSpace(cc.March)
		}
		if meta.IsDefined(tool, "linker_script") {
			cfg.LinkerScript = strings.TrimSpace(cc.LinkerScript)
		}
		if meta.IsDefined(tool, "freestanding") {
			cfg.Freestanding = cc.Freestanding
		}
	}
	for _, k := range meta.Undecoded() {
		if len(k) != 0 && (k[0] == tool || k[0] != ToolBin && k[0] != ToolCC) {
			Warn("%s: unknown key %s", path, k)
		}
	}
	cfg.Path = path
	return nil
}

// ConfigFromEnv updates cfg with the FWTOOL_* environment variables used by
// the tool.
func ConfigFromEnv(tool string, cfg *Config) error {
	env.Load()
	switch tool {
	case ToolBin:
		cfg.Objcopy = env.Str("FWTOOL_OBJCOPY", cfg.Objcopy)
	case ToolCC:
		cfg.CC = env.Str("FWTOOL_CC", cfg.CC)
		cfg.March = env.Str("FWTOOL_MARCH", cfg.March)
		cfg.LinkerScript = env.Str("FWTOOL_LINKER_SCRIPT", cfg.LinkerScript)
		if s := env.Str("FWTOOL_FREESTANDING"); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("FWTOOL_FREESTANDING: %w", err)
			}
			cfg.Freestanding = b
		}
	}
	return nil
}

// ReadConfig returns the default settings of the tool overridden by the
// config file (FWTOOL_CONFIG or the one found by FindConfig) and then by the
// environment. The environment is read anew on every call.
func ReadConfig(tool string) (Config, error) {
	env.Load()
	cfg := DefaultConfig()
	path := env.Str("FWTOOL_CONFIG")
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return cfg, err
		}
		if path, err = FindConfig(wd); err != nil {
			return cfg, err
		}
	}
	if path != "" {
		if err := LoadConfig(path, tool, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, ConfigFromEnv(tool, &cfg)
}
