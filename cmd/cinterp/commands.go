// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"github.com/rjeczalik/notify"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/cinterp/internal/diag"
	"github.com/probechain/cinterp/internal/frontend"
	"github.com/probechain/cinterp/internal/loader"
	"github.com/probechain/cinterp/lang/ast"
	"github.com/probechain/cinterp/lang/lexer"
	"github.com/probechain/cinterp/lang/token"
)

var (
	tokensCommand = cli.Command{
		Action:    printTokens,
		Name:      "tokens",
		Usage:     "Print the token stream of a file",
		ArgsUsage: "<file>",
		Category:  "INSPECTION COMMANDS",
		Description: `
The tokens command lexes the file and prints one row per token with its
position, kind and text. Comments are not tokens and do not appear.`,
	}
	astCommand = cli.Command{
		Action:    printAST,
		Name:      "ast",
		Usage:     "Print the syntax tree of a file",
		ArgsUsage: "<file>",
		Category:  "INSPECTION COMMANDS",
		Flags:     []cli.Flag{dumpFlag},
		Description: `
The ast command parses the file and prints its syntax tree. With --dump the
raw node structures are printed instead.`,
	}
	checkCommand = cli.Command{
		Action:    check,
		Name:      "check",
		Usage:     "Parse files and report syntax errors",
		ArgsUsage: "<file> [<file>...]",
		Category:  "CHECKING COMMANDS",
		Description: `
The check command parses every file concurrently and prints a diagnostic for
each file that fails. It exits with status 1 if any file failed.`,
	}
	watchCommand = cli.Command{
		Action:    watch,
		Name:      "watch",
		Usage:     "Re-check a file whenever it changes",
		ArgsUsage: "<file>",
		Category:  "CHECKING COMMANDS",
	}

	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "Dump raw node structures",
	}
)

func printTokens(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("tokens: expected exactly one file")
	}
	file, err := loader.Load(ctx.Args().First())
	if err != nil {
		return err
	}
	defer file.Close()

	return writeTokens(os.Stdout, file.Contents)
}

// writeTokens renders the token stream of src as a table.
func writeTokens(w io.Writer, src []byte) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pos", "Kind", "Text"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	l := lexer.New(src)
	for _, tok := range l.Tokenize() {
		if tok.Kind == token.END {
			break
		}
		text := fmt.Sprintf("%q", tok.Text)
		if tok.IsError() {
			text += " (" + tok.Err + ")"
		}
		table.Append([]string{tok.Pos.String(), tok.Kind.String(), text})
	}
	table.Render()
	return nil
}

func printAST(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("ast: expected exactly one file")
	}
	cfg := makeConfig(ctx)
	fe, err := frontend.New(cfg)
	if err != nil {
		return err
	}
	defer fe.Close()

	res, err := fe.ParseFile(ctx.Args().First())
	if err != nil {
		return err
	}
	defer res.Release()

	if ctx.Bool(dumpFlag.Name) {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			ContinueOnMethod:        true,
		}
		dumper.Fdump(os.Stdout, res.Program)
	} else if res.Program != nil {
		if err := ast.Fprint(os.Stdout, res.Program); err != nil {
			return err
		}
	}
	if res.Err != nil {
		newDiagPrinter(cfg).Print(res.Path, res.Source, res.Err)
		return exitCode(res.Err)
	}
	return nil
}

// checkResult is the outcome of checking one file.
type checkResult struct {
	path string
	src  []byte
	err  error
	res  *frontend.Result
}

func check(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("check: expected at least one file")
	}
	cfg := makeConfig(ctx)
	fe, err := frontend.New(cfg)
	if err != nil {
		return err
	}
	defer fe.Close()

	paths := ctx.Args()
	results, err := checkFiles(context.Background(), fe, paths)
	if err != nil {
		return err
	}
	printer := newDiagPrinter(cfg)
	failed := 0
	for _, r := range results {
		if r.err != nil {
			printer.Print(r.path, r.src, r.err)
			failed++
		}
		if r.res != nil {
			r.res.Release()
		}
	}
	log.Info("Checked files", "files", len(paths), "failed", failed)
	if failed > 0 {
		return exitCode(fmt.Errorf("%d of %d files failed", failed, len(paths)))
	}
	return nil
}

// checkFiles parses every path concurrently, one arena per file. Results
// keep the order of paths. Only cancellation aborts the whole run; load and
// parse failures are reported per file.
func checkFiles(ctx context.Context, fe *frontend.Frontend, paths []string) ([]checkResult, error) {
	results := make([]checkResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fe.ParseFile(path)
			if err != nil {
				results[i] = checkResult{path: path, err: err}
				return nil
			}
			results[i] = checkResult{path: path, src: res.Source, err: res.Err, res: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r.res != nil {
				r.res.Release()
			}
		}
		return nil, err
	}
	return results, nil
}

func watch(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("watch: expected exactly one file")
	}
	cfg := makeConfig(ctx)
	fe, err := frontend.New(cfg)
	if err != nil {
		return err
	}
	defer fe.Close()

	path, err := filepath.Abs(ctx.Args().First())
	if err != nil {
		return err
	}
	// Editors often replace the file instead of writing it, so watch the
	// directory and filter by name.
	events := make(chan notify.EventInfo, 16)
	if err := notify.Watch(filepath.Dir(path), events, notify.Write, notify.Create, notify.Rename); err != nil {
		return err
	}
	defer notify.Stop(events)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)

	printer := newDiagPrinter(cfg)
	checkOnce(fe, printer, path)
	for {
		select {
		case ev := <-events:
			if ev.Path() != path {
				continue
			}
			log.Debug("Source changed", "path", path, "event", ev.Event())
			checkOnce(fe, printer, path)
		case <-sigc:
			return nil
		}
	}
}

func checkOnce(fe *frontend.Frontend, printer *diag.Printer, path string) {
	res, err := fe.ParseFile(path)
	if err != nil {
		printer.Print(path, nil, err)
		return
	}
	defer res.Release()

	if res.Err != nil {
		printer.Print(path, res.Source, res.Err)
		return
	}
	log.Info("Source is valid", "path", path, "statements", res.Program.Len(), "arena", res.Used())
}
