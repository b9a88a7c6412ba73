// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command cinterp is the front end of the C-like declaration language
// interpreter: it tokenizes, parses and checks source files.
//
// Usage:
//
//	cinterp [global flags] <command> [arguments]
//
// Commands:
//
//	tokens FILE        Print the token stream
//	ast [--dump] FILE  Print the syntax tree
//	check FILE...      Parse files and report errors
//	watch FILE         Re-check a file every time it changes
//	repl               Parse statements interactively
//	dumpconfig [FILE]  Show configuration values
package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/cinterp/internal/config"
	"github.com/probechain/cinterp/internal/debug"
	"github.com/probechain/cinterp/internal/diag"
)

const (
	clientIdentifier = "cinterp"
	version          = "0.1.0"
)

var app = newApp()

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = clientIdentifier
	app.Usage = "front end for the C-like declaration language"
	app.Version = version
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		vmoduleFlag,
		arenaLimitFlag,
		noColorFlag,
		cacheSizeFlag,
	}
	app.Commands = []cli.Command{
		tokensCommand,
		astCommand,
		checkCommand,
		watchCommand,
		replCommand,
		dumpConfigCommand,
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	app.Before = func(ctx *cli.Context) error {
		cfg := makeConfig(ctx)
		return debug.Setup(cfg.Log)
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fatalf formats a message to standard error and exits the program.
func fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if outf, _ := os.Stdout.Stat(); outf != nil && outf.Mode()&os.ModeCharDevice == 0 {
		// The output is redirected, so only write to stderr.
		w = os.Stderr
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// newDiagPrinter returns a printer on stderr that colours its output when
// the configuration and the terminal allow it.
func newDiagPrinter(cfg config.Config) *diag.Printer {
	usecolor := !cfg.Log.NoColor && debug.Terminal(os.Stderr)
	if usecolor {
		return diag.NewPrinter(colorable.NewColorableStderr(), true)
	}
	return diag.NewPrinter(os.Stderr, false)
}

// exitCode wraps err so that the process exits with code 1 without printing
// anything more.
func exitCode(err error) error {
	if err == nil {
		return nil
	}
	log.Debug("Command failed", "err", err)
	return cli.NewExitError("", 1)
}
