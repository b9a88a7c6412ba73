// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package debug installs the process wide log handler.
package debug

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/probechain/cinterp/internal/config"
)

var glogger *log.GlogHandler

func init() {
	glogger = log.NewGlogHandler(log.StreamHandler(os.Stderr, log.TerminalFormat(false)))
	glogger.Verbosity(log.Lvl(config.Defaults.Log.Verbosity))
}

// Terminal reports whether f is an interactive terminal that understands
// colour escapes.
func Terminal(f *os.File) bool {
	fd := f.Fd()
	return (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
}

// Setup initializes logging from cfg. Output goes to stderr, coloured when
// stderr is a terminal and colour was not disabled.
func Setup(cfg config.LogConfig) error {
	usecolor := !cfg.NoColor && Terminal(os.Stderr)
	output := io.Writer(os.Stderr)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	return SetupWriter(cfg, output, usecolor)
}

// SetupWriter is Setup with an explicit sink.
func SetupWriter(cfg config.LogConfig, w io.Writer, usecolor bool) error {
	glogger.SetHandler(log.StreamHandler(w, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(cfg.Verbosity))
	if cfg.Vmodule != "" {
		if err := glogger.Vmodule(cfg.Vmodule); err != nil {
			return err
		}
	}
	log.Root().SetHandler(glogger)
	return nil
}
