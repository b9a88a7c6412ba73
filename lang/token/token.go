// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token kinds of the C-like declaration
// language.
//
// Whitespace is significant at the token level: blanks and newlines are
// produced as WS and NEWLINE tokens and the grammar decides where they may
// appear. Comments are dropped by the lexer and never reach the parser.
package token

import (
	"fmt"

	"github.com/probechain/cinterp/lang/view"
)

// Token is a single lexical token. Text points into the source buffer.
type Token struct {
	Kind Kind
	Text view.View
	Pos  Position // where the token starts
	Err  string   // set only for UNKNOWN tokens produced by a lexical fault
}

// IsError reports whether the token carries a lexical fault.
func (t Token) IsError() bool { return t.Kind == UNKNOWN && t.Err != "" }

func (t Token) String() string {
	switch t.Kind {
	case END:
		return "END"
	case NEWLINE:
		return `NEWLINE "\n"`
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// Position is a human readable, 1-based source location.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Kind is the set of lexical token kinds.
type Kind int

const (
	END Kind = iota
	WS
	NEWLINE

	// Punctuation
	OPAREN      // (
	CPAREN      // )
	COMMA       // ,
	SEMICOLON   // ;
	AMPERSAND   // &
	EXCLAMATION // !
	EQL         // =
	STAR        // *
	PLUS        // +
	MINUS       // -
	FSLASH      // /

	// Keywords
	TYPEDEF   // typedef
	STORAGE   // extern static _Thread_local auto register
	QUALIFIER // const restrict volatile _Atomic

	// Names and literals
	SYMBOL
	STRING
	SIGNED_INT
	UNSIGNED_INT
	FLOAT
	DOUBLE

	UNKNOWN

	kindCount
)

var kindNames = [...]string{
	END:     "END",
	WS:      "WS",
	NEWLINE: "NEWLINE",

	OPAREN:      "OPAREN",
	CPAREN:      "CPAREN",
	COMMA:       "COMMA",
	SEMICOLON:   "SEMICOLON",
	AMPERSAND:   "AMPERSAND",
	EXCLAMATION: "EXCLAMATION",
	EQL:         "EQL",
	STAR:        "STAR",
	PLUS:        "PLUS",
	MINUS:       "MINUS",
	FSLASH:      "FSLASH",

	TYPEDEF:   "TYPEDEF",
	STORAGE:   "STORAGE",
	QUALIFIER: "QUALIFIER",

	SYMBOL:       "SYMBOL",
	STRING:       "STRING",
	SIGNED_INT:   "SIGNED_INT",
	UNSIGNED_INT: "UNSIGNED_INT",
	FLOAT:        "FLOAT",
	DOUBLE:       "DOUBLE",

	UNKNOWN: "UNKNOWN",
}

// Every kind must have a name.
var _ = [1]struct{}{}[len(kindNames)-int(kindCount)]

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("token(%d)", int(k))
}

// IsTrivia reports whether the kind is skipped between top-level statements.
func (k Kind) IsTrivia() bool { return k == WS || k == NEWLINE }

// Punctuation maps every single-byte punctuation character to its kind.
var Punctuation = map[byte]Kind{
	'*': STAR,
	'=': EQL,
	'(': OPAREN,
	')': CPAREN,
	',': COMMA,
	';': SEMICOLON,
	'&': AMPERSAND,
	'!': EXCLAMATION,
	'+': PLUS,
	'-': MINUS,
}

// Keyword is a reserved word together with the kind it lexes to.
type Keyword struct {
	Word string
	Kind Kind
}

// Keywords lists the reserved words in the order the lexer tries them.
var Keywords = [...]Keyword{
	{"typedef", TYPEDEF},

	{"extern", STORAGE},
	{"static", STORAGE},
	{"_Thread_local", STORAGE},
	{"auto", STORAGE},
	{"register", STORAGE},

	{"const", QUALIFIER},
	{"restrict", QUALIFIER},
	{"volatile", QUALIFIER},
	{"_Atomic", QUALIFIER},
}
