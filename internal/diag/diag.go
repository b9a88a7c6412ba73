// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag renders parse errors for humans.
package diag

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/probechain/cinterp/lang/parser"
)

// Printer writes diagnostics to an output stream.
type Printer struct {
	w io.Writer

	location *color.Color
	severity *color.Color
	caret    *color.Color
}

// NewPrinter creates a printer. Colour escapes are only emitted when
// usecolor is set.
func NewPrinter(w io.Writer, usecolor bool) *Printer {
	p := &Printer{
		w:        w,
		location: color.New(color.Bold),
		severity: color.New(color.FgRed, color.Bold),
		caret:    color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.location, p.severity, p.caret} {
		if usecolor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print reports err against the source it came from. Syntax errors get the
// offending line and a caret under the column; anything else is printed on
// a single line.
func (p *Printer) Print(path string, src []byte, err error) error {
	var perr *parser.Error
	if !errors.As(err, &perr) {
		_, werr := fmt.Fprintf(p.w, "%s %s %v\n", p.location.Sprint(path+":"), p.severity.Sprint("error:"), err)
		return werr
	}

	var out strings.Builder
	loc := fmt.Sprintf("%s:%d:%d:", path, perr.Line(), perr.Column())
	fmt.Fprintf(&out, "%s %s %s\n", p.location.Sprint(loc), p.severity.Sprint("error:"), perr.Msg())

	line := SourceLine(src, perr.Node.Bol)
	out.Write(line)
	out.WriteByte('\n')
	out.WriteString(padding(line, perr.Column()-1))
	out.WriteString(p.caret.Sprint("^"))
	out.WriteByte('\n')

	_, werr := io.WriteString(p.w, out.String())
	return werr
}

// SourceLine returns the line of src starting at bol, without its newline.
func SourceLine(src []byte, bol int) []byte {
	if bol < 0 || bol > len(src) {
		return nil
	}
	line := src[bol:]
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	return bytes.TrimRight(line, "\r")
}

// padding returns the whitespace that puts a caret under column n (0-based)
// of line. Tabs are kept so the caret lines up however they are rendered.
func padding(line []byte, n int) string {
	var pad strings.Builder
	for i := 0; i < n; i++ {
		if i < len(line) && line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return pad.String()
}
