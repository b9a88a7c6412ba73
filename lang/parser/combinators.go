// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"github.com/probechain/cinterp/lang/lexer"
	"github.com/probechain/cinterp/lang/token"
	"github.com/probechain/cinterp/lang/view"
)

// The combinators below peek before consuming, so a failed match leaves the
// lexer untouched. They only report success; building error nodes is the job
// of the productions that call them. A chain such as
//
//	exactlyOne(l, token.SYMBOL, &name) && zeroOrMore(l, token.WS) && exactlyOne(l, token.OPAREN, nil)
//
// commits every token it matches, so callers snapshot the lexer before any
// chain that may fail halfway.

// exactlyOne consumes the next token if it has the given kind and stores its
// text in bind when bind is non-nil.
func exactlyOne(l *lexer.Lexer, kind token.Kind, bind *view.View) bool {
	if l.Peek().Kind != kind {
		return false
	}
	tok := l.Next()
	if bind != nil {
		*bind = tok.Text
	}
	return true
}

// zeroOrOne is the ? operator. It never fails.
func zeroOrOne(l *lexer.Lexer, kind token.Kind, bind *view.View) bool {
	exactlyOne(l, kind, bind)
	return true
}

// zeroOrMore is the * operator. It never fails.
func zeroOrMore(l *lexer.Lexer, kind token.Kind) bool {
	for l.Peek().Kind == kind {
		l.Next()
	}
	return true
}

// oneOrMore is the + operator.
func oneOrMore(l *lexer.Lexer, kind token.Kind) bool {
	if !exactlyOne(l, kind, nil) {
		return false
	}
	return zeroOrMore(l, kind)
}

// isNext reports whether the next token has the given kind.
func isNext(l *lexer.Lexer, kind token.Kind) bool {
	return l.Peek().Kind == kind
}

// skipBlank consumes any mix of WS and NEWLINE tokens and reports whether it
// consumed at least one.
func skipBlank(l *lexer.Lexer) bool {
	skipped := false
	for l.Peek().Kind.IsTrivia() {
		l.Next()
		skipped = true
	}
	return skipped
}
