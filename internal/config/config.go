// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package config holds the settings shared by the cinterp tools and loads
// them from TOML files and the environment.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/ethereum/go-ethereum/log"
	"github.com/naoina/toml"
	"github.com/xyproto/env/v2"

	"github.com/probechain/cinterp/lang/arena"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvVerbosity  = "CINTERP_VERBOSITY"
	EnvNoColor    = "CINTERP_NOCOLOR"
	EnvArenaLimit = "CINTERP_ARENA_LIMIT"
	EnvCacheSize  = "CINTERP_CACHE_SIZE"
)

// LogConfig controls the log output.
type LogConfig struct {
	Verbosity int    // 0=crit 1=error 2=warn 3=info 4=debug 5=trace
	Vmodule   string `toml:",omitempty"`
	NoColor   bool
}

// ParserConfig bounds a single parse session.
type ParserConfig struct {
	ArenaLimit uint64 // bytes one parse may allocate
}

// FrontendConfig sizes the parse cache used by interactive sessions.
type FrontendConfig struct {
	CacheSize int // number of parsed sources kept
}

// Config is the top level configuration.
type Config struct {
	Log      LogConfig
	Parser   ParserConfig
	Frontend FrontendConfig
}

// Defaults contains the default settings.
var Defaults = Config{
	Log: LogConfig{
		Verbosity: 3,
	},
	Parser: ParserConfig{
		ArenaLimit: arena.DefaultLimit,
	},
	Frontend: FrontendConfig{
		CacheSize: 64,
	},
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// Load decodes the TOML file into cfg. Fields absent from the file keep
// their current values.
func Load(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// Marshal encodes cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	return tomlSettings.Marshal(cfg)
}

// ApplyEnv overrides cfg with any CINTERP_* variables that are set.
func ApplyEnv(cfg *Config) {
	if env.Has(EnvVerbosity) {
		cfg.Log.Verbosity = env.Int(EnvVerbosity, cfg.Log.Verbosity)
	}
	if env.Has(EnvNoColor) {
		cfg.Log.NoColor = env.Bool(EnvNoColor)
	}
	if env.Has(EnvArenaLimit) {
		if limit := env.Int(EnvArenaLimit, 0); limit > 0 {
			cfg.Parser.ArenaLimit = uint64(limit)
		} else {
			log.Warn("Ignoring invalid arena limit", "env", EnvArenaLimit, "value", env.Str(EnvArenaLimit))
		}
	}
	if env.Has(EnvCacheSize) {
		cfg.Frontend.CacheSize = env.Int(EnvCacheSize, cfg.Frontend.CacheSize)
	}
}

// Sanitize replaces out of range values with their defaults.
func (c *Config) Sanitize() {
	if c.Log.Verbosity < 0 || c.Log.Verbosity > 5 {
		log.Warn("Sanitizing invalid verbosity", "provided", c.Log.Verbosity, "updated", Defaults.Log.Verbosity)
		c.Log.Verbosity = Defaults.Log.Verbosity
	}
	if c.Parser.ArenaLimit == 0 {
		log.Warn("Sanitizing invalid arena limit", "provided", c.Parser.ArenaLimit, "updated", Defaults.Parser.ArenaLimit)
		c.Parser.ArenaLimit = Defaults.Parser.ArenaLimit
	}
	if c.Frontend.CacheSize < 1 {
		log.Warn("Sanitizing invalid cache size", "provided", c.Frontend.CacheSize, "updated", Defaults.Frontend.CacheSize)
		c.Frontend.CacheSize = Defaults.Frontend.CacheSize
	}
}
