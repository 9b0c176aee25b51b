// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xyproto/env/v2"
)

// NewLogger returns a console logger without timestamps that writes to w.
func NewLogger(w io.Writer, app string) zerolog.Logger {
	out := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(out).With().Str("app", app).Logger()
}

// InitLogger sets the global logger used by Warn, Fatal and FatalErr. The
// level is taken from FWTOOL_LOG.
func InitLogger(w io.Writer, app string) zerolog.Logger {
	env.Load()
	level, err := zerolog.ParseLevel(strings.ToLower(env.Str("FWTOOL_LOG", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = NewLogger(w, app)
	return log.Logger
}
