// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements an on-demand lexer for the C-like declaration
// language.
//
// Design principles:
//   - ASCII-only input, one byte per character
//   - The Lexer is a small value type; copying it takes a snapshot and
//     assigning a copy back restores it. This is the parser's only
//     backtracking mechanism.
//   - Whitespace and newlines are tokens, // comments are skipped
//   - Lexical faults become UNKNOWN tokens carrying a message, never panics
package lexer

import (
	"fmt"

	"github.com/probechain/cinterp/lang/token"
	"github.com/probechain/cinterp/lang/view"
)

const (
	msgUnterminatedString = `unterminated string: expected a closing quote (")`
	msgUnrecognizedChar   = "unrecognized character %q"
)

// Lexer holds the cursor and line bookkeeping for one source buffer.
type Lexer struct {
	cursor int // offset of the next byte to lex
	bol    int // offset of the first byte of the current line
	line   int // 0-based line number
	src    []byte
}

// New creates a Lexer positioned at the start of src. The lexer never
// modifies src.
func New(src []byte) Lexer {
	return Lexer{src: src}
}

// Cursor returns the offset of the next byte to be lexed.
func (l Lexer) Cursor() int { return l.cursor }

// Line returns the 0-based line number of the cursor.
func (l Lexer) Line() int { return l.line }

// Bol returns the offset of the beginning of the cursor's line.
func (l Lexer) Bol() int { return l.bol }

// Source returns the buffer being lexed.
func (l Lexer) Source() []byte { return l.src }

// Position returns the 1-based location of the cursor.
func (l Lexer) Position() token.Position {
	return token.Position{Line: l.line + 1, Column: l.cursor - l.bol + 1, Offset: l.cursor}
}

// Reset restores the lexer to a snapshot taken earlier by copying it.
func (l *Lexer) Reset(snapshot Lexer) { *l = snapshot }

// Peek returns the next token without advancing. It lexes on a copy of the
// receiver, which is discarded.
func (l Lexer) Peek() token.Token {
	return l.Next()
}

// Next scans and returns the next token, advancing the lexer past it. Once
// the input is exhausted every call returns END.
func (l *Lexer) Next() token.Token {
	if l.cursor >= len(l.src) {
		return token.Token{Kind: token.END, Pos: l.Position()}
	}
	c := l.src[l.cursor]

	// Whitespace and newlines
	if view.IsSpace(c) {
		tok := l.take(token.WS, 1)
		if c == '\n' {
			tok.Kind = token.NEWLINE
			l.bol = l.cursor
			l.line++
		}
		return tok
	}

	// Single-character punctuation
	if kind, ok := token.Punctuation[c]; ok {
		return l.take(kind, 1)
	}

	// Slash: division or a line comment
	if c == '/' {
		if l.cursor+1 < len(l.src) && l.src[l.cursor+1] == '/' {
			l.skipLineComment()
			return l.Next()
		}
		return l.take(token.FSLASH, 1)
	}

	// Keywords, guarded by a word boundary so "constant" stays a symbol
	rest := view.View(l.src[l.cursor:])
	for _, kw := range token.Keywords {
		if rest.HasWordPrefix(kw.Word) {
			return l.take(kw.Kind, len(kw.Word))
		}
	}

	// Identifiers
	if view.IsIdentStart(c) {
		n := 1
		for l.cursor+n < len(l.src) && view.IsIdentByte(l.src[l.cursor+n]) {
			n++
		}
		return l.take(token.SYMBOL, n)
	}

	// String literals
	if c == '"' {
		return l.readString()
	}

	// Decimal integers
	if view.IsDigit(c) {
		n := 1
		for l.cursor+n < len(l.src) && view.IsDigit(l.src[l.cursor+n]) {
			n++
		}
		return l.take(token.SIGNED_INT, n)
	}

	tok := l.take(token.UNKNOWN, 1)
	tok.Err = fmt.Sprintf(msgUnrecognizedChar, c)
	return tok
}

// Tokenize returns every token up to and including the final END.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.END {
			return toks
		}
	}
}

// take emits a token of kind covering the next n bytes.
func (l *Lexer) take(kind token.Kind, n int) token.Token {
	tok := token.Token{Kind: kind, Text: view.View(l.src[l.cursor : l.cursor+n]), Pos: l.Position()}
	l.cursor += n
	return tok
}

// skipLineComment advances up to, but not past, the newline that ends the
// comment.
func (l *Lexer) skipLineComment() {
	for l.cursor < len(l.src) && l.src[l.cursor] != '\n' {
		l.cursor++
	}
}

// readString lexes a quoted string. The token text excludes both quotes. A
// quote preceded by a backslash does not terminate the string; reaching a
// newline or the end of input first yields an UNKNOWN token.
func (l *Lexer) readString() token.Token {
	pos := l.Position()
	start := l.cursor + 1
	i := start
	for {
		if i >= len(l.src) || l.src[i] == '\n' {
			tok := token.Token{Kind: token.UNKNOWN, Text: view.View(l.src[start:i]), Pos: pos, Err: msgUnterminatedString}
			l.cursor = i
			return tok
		}
		if l.src[i] == '"' && l.src[i-1] != '\\' {
			tok := token.Token{Kind: token.STRING, Text: view.View(l.src[start:i]), Pos: pos}
			l.cursor = i + 1
			return tok
		}
		i++
	}
}
