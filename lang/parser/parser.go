// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a backtracking, combinator based parser for the
// C-like declaration language.
//
// Design overview:
//
//   - Statements and primary expressions are ordered choices. Each
//     alternative runs on a snapshot of the lexer; on failure the snapshot is
//     restored and the next alternative is tried.
//   - When every alternative fails, the error of the attempt that got
//     furthest into the input is kept (the later attempt on ties), since that
//     is the best guess at what the author meant.
//   - Binary arithmetic is parsed by precedence climbing.
//   - Errors are values (*ast.Error); a failure at the statement level stops
//     the whole parse.
//   - Every node is carved from the arena passed to Parse.
package parser

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/probechain/cinterp/lang/arena"
	"github.com/probechain/cinterp/lang/ast"
	"github.com/probechain/cinterp/lang/lexer"
	"github.com/probechain/cinterp/lang/token"
)

// ErrSyntax is wrapped by every *Error returned from Parse.
var ErrSyntax = errors.New("syntax error")

const (
	msgStatementFallback  = "unexpected error while parsing"
	msgExpressionFallback = "unexpected error while parsing expression"
	msgTooDeep            = "expression nested too deeply"
)

// maxNestingDepth bounds how many primary expressions may be open at once,
// counting every prefix operator and opening paren.
const maxNestingDepth = 10000

var logger = log.New("pkg", "parser")

// Error is a positioned syntax or lexical error.
type Error struct {
	Node *ast.Error

	// Char is the source byte at the error position, valid when HasChar is set.
	Char    byte
	HasChar bool
}

func newError(node *ast.Error, src []byte) *Error {
	e := &Error{Node: node}
	if node.Cursor >= 0 && node.Cursor < len(src) {
		e.Char, e.HasChar = src[node.Cursor], true
	}
	return e
}

// Line returns the 1-based line of the error.
func (e *Error) Line() int { return e.Node.Line + 1 }

// Column returns the 1-based column of the error.
func (e *Error) Column() int { return e.Node.Cursor - e.Node.Bol + 1 }

// Pos returns the 1-based position of the error.
func (e *Error) Pos() token.Position { return e.Node.Pos() }

// Msg returns the bare error message.
func (e *Error) Msg() string { return e.Node.Msg }

func (e *Error) Error() string {
	if e.HasChar {
		return fmt.Sprintf("%d:%d: %s (near %q)", e.Line(), e.Column(), e.Node.Msg, e.Char)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line(), e.Column(), e.Node.Msg)
}

func (e *Error) Unwrap() error { return ErrSyntax }

// Parser holds the mutable state of one parse session.
type Parser struct {
	arena *arena.Arena
	lex   lexer.Lexer

	// err is a sticky allocator failure. Once set, every production unwinds
	// and Parse reports it.
	err error

	depth int // open primary expressions
}

// Parse turns src into a program: a List of statements in source order. All
// nodes are allocated from a; src and a must both outlive the returned tree.
//
// On a syntax error the returned list holds the statements parsed before the
// failing one and the error is a *Error. Allocator exhaustion is returned as
// an error wrapping arena.ErrOutOfMemory.
func Parse(a *arena.Arena, src []byte) (*ast.List, error) {
	p := &Parser{arena: a, lex: lexer.New(src)}
	return p.parseProgram()
}

// ParseExpr parses src as a single expression followed by optional blanks.
func ParseExpr(a *arena.Arena, src []byte) (ast.Node, error) {
	p := &Parser{arena: a, lex: lexer.New(src)}
	skipBlank(&p.lex)
	node := p.parseExpr(0)
	if p.err != nil {
		return nil, p.err
	}
	if e, ok := node.(*ast.Error); ok {
		return nil, newError(e, src)
	}
	skipBlank(&p.lex)
	if !isNext(&p.lex, token.END) {
		return nil, newError(p.fail("unexpected input after expression"), src)
	}
	return node, nil
}

func (p *Parser) parseProgram() (*ast.List, error) {
	prog, err := arena.Make[ast.List](p.arena)
	if err != nil {
		return nil, err
	}
	for {
		tok := p.lex.Peek()
		if tok.Kind == token.END {
			return prog, nil
		}
		if tok.Kind.IsTrivia() {
			p.lex.Next()
			continue
		}
		node := p.choose(msgStatementFallback, statementAlternatives())
		if p.err != nil {
			return prog, p.err
		}
		if e, ok := node.(*ast.Error); ok {
			logger.Debug("Statement rejected", "line", e.Line+1, "cursor", e.Cursor, "msg", e.Msg)
			return prog, newError(e, p.lex.Source())
		}
		if prog.Children, err = arena.Push(p.arena, prog.Children, node); err != nil {
			return prog, err
		}
	}
}

// production parses one grammar rule. It returns an *ast.Error on failure
// and leaves the lexer wherever it gave up.
type production func(p *Parser) ast.Node

// alternative is a named production taking part in an ordered choice.
type alternative struct {
	name  string
	parse production
}

// choose runs the alternatives in order, each from the same lexer snapshot,
// and returns the first success. If all of them fail the lexer is restored
// and the error of the attempt that progressed furthest is returned; ties go
// to the later attempt. Progress is the distance from the snapshot to the
// position recorded in the error.
func (p *Parser) choose(fallback string, alts []alternative) ast.Node {
	before := p.lex
	best := &ast.Error{Msg: fallback, Line: before.Line(), Bol: before.Bol(), Cursor: before.Cursor()}
	bestProgress := 0

	for _, alt := range alts {
		node := alt.parse(p)
		e, failed := node.(*ast.Error)
		if !failed {
			return node
		}
		if p.err != nil {
			return e
		}
		progress := e.Cursor - before.Cursor()
		logger.Trace("Alternative failed", "alt", alt.name, "progress", progress, "msg", e.Msg)
		if progress >= bestProgress {
			best, bestProgress = e, progress
		}
		p.lex.Reset(before)
	}
	return best
}

// fail builds an error at the lexer's current position. If the next token is
// a lexical fault its message replaces msg, since it explains the failure
// better than the expectation that was not met.
func (p *Parser) fail(msg string) *ast.Error {
	if tok := p.lex.Peek(); tok.IsError() {
		msg = tok.Err
	}
	return &ast.Error{Msg: msg, Line: p.lex.Line(), Bol: p.lex.Bol(), Cursor: p.lex.Cursor()}
}

// abort records an allocator failure and returns an error node so that the
// caller unwinds.
func (p *Parser) abort(err error) *ast.Error {
	if p.err == nil {
		p.err = fmt.Errorf("parser: %w", err)
	}
	return &ast.Error{Msg: err.Error(), Line: p.lex.Line(), Bol: p.lex.Bol(), Cursor: p.lex.Cursor()}
}
