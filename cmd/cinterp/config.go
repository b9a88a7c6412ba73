// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/cinterp/internal/config"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[FILE]",
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows the effective configuration, after the config file, environment and flags were applied.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: config.Defaults.Log.Verbosity,
	}
	vmoduleFlag = cli.StringFlag{
		Name:  "vmodule",
		Usage: "Per-module verbosity: comma-separated list of <pattern>=<level> (e.g. parser/*=5)",
	}
	arenaLimitFlag = cli.Uint64Flag{
		Name:  "arena-limit",
		Usage: "Maximum number of bytes a single parse may allocate",
		Value: config.Defaults.Parser.ArenaLimit,
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored output",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Number of parsed sources kept by the REPL",
		Value: config.Defaults.Frontend.CacheSize,
	}
)

// makeConfig assembles the configuration: defaults, then the config file,
// then the environment, then command line flags.
func makeConfig(ctx *cli.Context) config.Config {
	cfg := config.Defaults

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := config.Load(file, &cfg); err != nil {
			fatalf("%v", err)
		}
	}
	config.ApplyEnv(&cfg)

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(vmoduleFlag.Name) {
		cfg.Log.Vmodule = ctx.GlobalString(vmoduleFlag.Name)
	}
	if ctx.GlobalIsSet(noColorFlag.Name) {
		cfg.Log.NoColor = ctx.GlobalBool(noColorFlag.Name)
	}
	if ctx.GlobalIsSet(arenaLimitFlag.Name) {
		cfg.Parser.ArenaLimit = ctx.GlobalUint64(arenaLimitFlag.Name)
	}
	if ctx.GlobalIsSet(cacheSizeFlag.Name) {
		cfg.Frontend.CacheSize = ctx.GlobalInt(cacheSizeFlag.Name)
	}
	cfg.Sanitize()
	return cfg
}

func dumpConfig(ctx *cli.Context) error {
	cfg := makeConfig(ctx)
	out, err := config.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
