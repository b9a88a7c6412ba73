// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package debug

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/cinterp/internal/config"
)

func TestSetupWriterVerbosity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWriter(config.LogConfig{Verbosity: int(log.LvlInfo)}, &buf, false))

	log.Info("Visible message", "answer", 42)
	log.Debug("Hidden message")

	out := buf.String()
	assert.Contains(t, out, "Visible message")
	assert.Contains(t, out, "answer=42")
	assert.NotContains(t, out, "Hidden message")
}

func TestSetupWriterChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SetupWriter(config.LogConfig{Verbosity: int(log.LvlTrace)}, &buf, false))

	log.New("pkg", "parser").Trace("Alternative failed", "alt", "call")
	assert.Contains(t, buf.String(), "pkg=parser")
	assert.Contains(t, buf.String(), "alt=call")
}

func TestSetupWriterBadVmodule(t *testing.T) {
	var buf bytes.Buffer
	err := SetupWriter(config.LogConfig{Verbosity: 3, Vmodule: "parser=notanumber"}, &buf, false)
	assert.Error(t, err)
}
