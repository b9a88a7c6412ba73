// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/cinterp/internal/diag"
	"github.com/probechain/cinterp/internal/frontend"
	"github.com/probechain/cinterp/lang/ast"
	"github.com/probechain/cinterp/lang/parser"
	"github.com/probechain/cinterp/lang/view"
)

const (
	historyFile = ".cinterp_history"
	promptMain  = "> "
	promptCont  = ". "
)

var replCommand = cli.Command{
	Action:   repl,
	Name:     "repl",
	Usage:    "Parse statements interactively",
	Category: "INSPECTION COMMANDS",
	Description: `
The repl command reads statements from the terminal, parses them and prints
the resulting syntax tree. Input that ends in the middle of a statement
continues on the next line. Type :help for the available commands.`,
}

func repl(ctx *cli.Context) error {
	cfg := makeConfig(ctx)
	fe, err := frontend.New(cfg)
	if err != nil {
		return err
	}
	defer fe.Close()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	s := &session{fe: fe, out: os.Stdout, printer: newDiagPrinter(cfg)}
	fmt.Printf("%s %s, type :help for commands\n", clientIdentifier, version)
	for {
		src, ok := readStatement(ln, fe)
		if !ok {
			fmt.Println()
			return nil
		}
		if view.FromString(src).Trim().IsEmpty() {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if s.eval(src) {
			return nil
		}
	}
}

// prompter reads one line of input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readStatement reads lines until they form a complete input: one that
// parses, or one that fails before reaching its end. Ctrl-C drops the
// pending input and returns an empty entry. The bool is false once input ends.
func readStatement(ln prompter, fe *frontend.Frontend) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) {
				log.Debug("Prompt failed", "err", err)
			}
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if isCommand(src) {
			return src, true
		}
		if !incomplete(fe.ParseSource("<repl>", []byte(src)).Err) {
			return src, true
		}
	}
}

// isCommand reports whether the entry is a :command rather than source.
func isCommand(src string) bool {
	return view.FromString(src).TrimLeft().HasPrefix(":")
}

// incomplete reports whether err is a syntax error at the very end of the
// input, which more input could still fix.
func incomplete(err error) bool {
	var perr *parser.Error
	return errors.As(err, &perr) && !perr.HasChar
}

// session evaluates REPL entries.
type session struct {
	fe      *frontend.Frontend
	out     io.Writer
	printer *diag.Printer
	verbose bool
}

// eval handles one entry and reports whether the REPL should exit.
func (s *session) eval(src string) bool {
	if isCommand(src) {
		return s.command(view.FromString(src).Trim())
	}
	res := s.fe.ParseSource("<repl>", []byte(src))
	if res.Program != nil {
		for _, stmt := range res.Program.Children {
			if s.verbose {
				ast.Fprint(s.out, stmt)
			} else {
				fmt.Fprintln(s.out, stmt)
			}
		}
	}
	if res.Err != nil {
		s.printer.Print(res.Path, res.Source, res.Err)
	}
	return false
}

// command runs a :command line. The name ends at the first space and the
// rest of the line is its argument.
func (s *session) command(line view.View) bool {
	name, arg := line.SplitByte(' ')
	arg = arg.TrimLeft()
	switch {
	case name.EqualString(":quit"), name.EqualString(":q"):
		return true
	case name.EqualString(":tree"):
		s.verbose = !s.verbose
		fmt.Fprintf(s.out, "tree output %s\n", onOff(s.verbose))
	case name.EqualString(":tokens"):
		writeTokens(s.out, arg)
	case name.EqualString(":stats"):
		hits, misses := s.fe.Stats()
		fmt.Fprintf(s.out, "cache hits=%d misses=%d\n", hits, misses)
	case name.EqualString(":help"):
		fmt.Fprintln(s.out, ":tree          toggle indented tree output")
		fmt.Fprintln(s.out, ":tokens SRC    print the tokens of SRC")
		fmt.Fprintln(s.out, ":stats         show parse cache statistics")
		fmt.Fprintln(s.out, ":quit          leave")
	default:
		fmt.Fprintf(s.out, "unknown command %s, type :help\n", name)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
