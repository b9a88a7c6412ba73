// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer_test

import (
	"testing"

	"github.com/probechain/cinterp/lang/lexer"
	"github.com/probechain/cinterp/lang/token"
)

// tokenCase is a single expected token in a table-driven test.
type tokenCase struct {
	kind token.Kind
	text string
}

// runTokenize lexes input and checks that it produces exactly the expected
// sequence (plus a final END).
func runTokenize(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		l := lexer.New([]byte(input))
		toks := l.Tokenize()

		if len(toks) == 0 {
			t.Fatal("Tokenize returned empty slice")
		}
		if last := toks[len(toks)-1]; last.Kind != token.END {
			t.Errorf("last token is %s, want END", last.Kind)
		}
		body := toks[:len(toks)-1]

		if len(body) != len(want) {
			t.Errorf("got %d tokens (excl. END), want %d", len(body), len(want))
			for i, tok := range body {
				t.Logf("  [%d] %s", i, tok)
			}
			return
		}
		for i, w := range want {
			got := body[i]
			if got.Kind != w.kind {
				t.Errorf("token[%d]: kind = %s, want %s (text %q)", i, got.Kind, w.kind, got.Text)
			}
			if got.Text.String() != w.text {
				t.Errorf("token[%d]: text = %q, want %q", i, got.Text, w.text)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Punctuation
// ---------------------------------------------------------------------------

func TestPunctuation(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"(", token.OPAREN},
		{")", token.CPAREN},
		{",", token.COMMA},
		{";", token.SEMICOLON},
		{"&", token.AMPERSAND},
		{"!", token.EXCLAMATION},
		{"=", token.EQL},
		{"*", token.STAR},
		{"+", token.PLUS},
		{"-", token.MINUS},
		{"/", token.FSLASH},
	}
	for _, tc := range cases {
		runTokenize(t, tc.kind.String(), tc.input, []tokenCase{{tc.kind, tc.input}})
	}
}

// ---------------------------------------------------------------------------
// Keywords and identifiers
// ---------------------------------------------------------------------------

func TestKeywords(t *testing.T) {
	cases := []struct {
		word string
		kind token.Kind
	}{
		{"typedef", token.TYPEDEF},
		{"extern", token.STORAGE},
		{"static", token.STORAGE},
		{"_Thread_local", token.STORAGE},
		{"auto", token.STORAGE},
		{"register", token.STORAGE},
		{"const", token.QUALIFIER},
		{"restrict", token.QUALIFIER},
		{"volatile", token.QUALIFIER},
		{"_Atomic", token.QUALIFIER},
	}
	for _, tc := range cases {
		runTokenize(t, tc.word, tc.word, []tokenCase{{tc.kind, tc.word}})
	}
}

func TestKeywordBoundary(t *testing.T) {
	runTokenize(t, "constant", "constant", []tokenCase{{token.SYMBOL, "constant"}})
	runTokenize(t, "static_x", "static_x", []tokenCase{{token.SYMBOL, "static_x"}})
	runTokenize(t, "auto1", "auto1", []tokenCase{{token.SYMBOL, "auto1"}})
	runTokenize(t, "const(", "const(", []tokenCase{
		{token.QUALIFIER, "const"},
		{token.OPAREN, "("},
	})
}

func TestIdentifiers(t *testing.T) {
	runTokenize(t, "simple", "foo", []tokenCase{{token.SYMBOL, "foo"}})
	runTokenize(t, "underscore", "_bar_9", []tokenCase{{token.SYMBOL, "_bar_9"}})
	runTokenize(t, "digits then name", "12ab", []tokenCase{
		{token.SIGNED_INT, "12"},
		{token.SYMBOL, "ab"},
	})
}

// ---------------------------------------------------------------------------
// Literals
// ---------------------------------------------------------------------------

func TestIntegers(t *testing.T) {
	runTokenize(t, "zero", "0", []tokenCase{{token.SIGNED_INT, "0"}})
	runTokenize(t, "multi", "12345", []tokenCase{{token.SIGNED_INT, "12345"}})
	runTokenize(t, "negative is two tokens", "-7", []tokenCase{
		{token.MINUS, "-"},
		{token.SIGNED_INT, "7"},
	})
}

func TestStrings(t *testing.T) {
	runTokenize(t, "plain", `"hello"`, []tokenCase{{token.STRING, "hello"}})
	runTokenize(t, "empty", `""`, []tokenCase{{token.STRING, ""}})
	runTokenize(t, "escaped quote", `"a\"b"`, []tokenCase{{token.STRING, `a\"b`}})
	runTokenize(t, "followed", `"x";`, []tokenCase{
		{token.STRING, "x"},
		{token.SEMICOLON, ";"},
	})
}

func TestUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, "\"abc\nx"} {
		l := lexer.New([]byte(input))
		tok := l.Next()
		if tok.Kind != token.UNKNOWN || !tok.IsError() {
			t.Fatalf("%q: got %s, want a lexical error", input, tok)
		}
		if tok.Text.String() != "abc" {
			t.Errorf("%q: text = %q, want %q", input, tok.Text, "abc")
		}
		if l.Cursor() != 4 {
			t.Errorf("%q: cursor = %d, want 4", input, l.Cursor())
		}
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	l := lexer.New([]byte("@x"))
	tok := l.Next()
	if !tok.IsError() {
		t.Fatalf("got %s, want a lexical error", tok)
	}
	if want := `unrecognized character '@'`; tok.Err != want {
		t.Errorf("err = %q, want %q", tok.Err, want)
	}
	if next := l.Next(); next.Kind != token.SYMBOL {
		t.Errorf("lexing did not resume after the bad byte, got %s", next)
	}
}

// ---------------------------------------------------------------------------
// Whitespace, newlines and comments
// ---------------------------------------------------------------------------

func TestWhitespaceTokens(t *testing.T) {
	runTokenize(t, "each byte", "a \t\nb", []tokenCase{
		{token.SYMBOL, "a"},
		{token.WS, " "},
		{token.WS, "\t"},
		{token.NEWLINE, "\n"},
		{token.SYMBOL, "b"},
	})
}

func TestLineComments(t *testing.T) {
	runTokenize(t, "trailing", "x; // note\ny", []tokenCase{
		{token.SYMBOL, "x"},
		{token.SEMICOLON, ";"},
		{token.WS, " "},
		{token.NEWLINE, "\n"},
		{token.SYMBOL, "y"},
	})
	runTokenize(t, "at end", "// only", nil)
	runTokenize(t, "slash", "a / b", []tokenCase{
		{token.SYMBOL, "a"},
		{token.WS, " "},
		{token.FSLASH, "/"},
		{token.WS, " "},
		{token.SYMBOL, "b"},
	})
}

func TestLineTracking(t *testing.T) {
	l := lexer.New([]byte("a\n  b"))
	for i := 0; i < 4; i++ {
		l.Next()
	}
	pos := l.Position()
	if pos.Line != 2 || pos.Column != 3 {
		t.Errorf("position = %s, want 2:3", pos)
	}
	if l.Bol() != 2 {
		t.Errorf("bol = %d, want 2", l.Bol())
	}
}

func TestTokenPositions(t *testing.T) {
	l := lexer.New([]byte("a // c\n  \"s\" b"))
	want := []struct {
		kind token.Kind
		pos  string
	}{
		{token.SYMBOL, "1:1"},
		{token.WS, "1:2"},
		{token.NEWLINE, "1:7"},
		{token.WS, "2:1"},
		{token.WS, "2:2"},
		{token.STRING, "2:3"},
		{token.WS, "2:6"},
		{token.SYMBOL, "2:7"},
		{token.END, "2:8"},
	}
	toks := l.Tokenize()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Pos.String() != w.pos {
			t.Errorf("token %d: got %s at %s, want %s at %s", i, toks[i].Kind, toks[i].Pos, w.kind, w.pos)
		}
	}
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

func TestPeekDoesNotAdvance(t *testing.T) {
	l := lexer.New([]byte("foo bar"))
	first := l.Peek()
	second := l.Peek()
	if first.Kind != second.Kind || first.Text.String() != second.Text.String() {
		t.Fatalf("peek not idempotent: %s vs %s", first, second)
	}
	if l.Cursor() != 0 {
		t.Errorf("peek moved the cursor to %d", l.Cursor())
	}
	if got := l.Next(); got.Text.String() != "foo" {
		t.Errorf("next = %s, want foo", got)
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := lexer.New([]byte("a\nb c"))
	l.Next()
	snap := l
	l.Next()
	l.Next()
	l.Next()
	if l.Line() != 1 {
		t.Fatalf("line = %d, want 1", l.Line())
	}
	l.Reset(snap)
	if l.Cursor() != 1 || l.Line() != 0 || l.Bol() != 0 {
		t.Errorf("restore gave cursor=%d line=%d bol=%d", l.Cursor(), l.Line(), l.Bol())
	}
	if tok := l.Next(); tok.Kind != token.NEWLINE {
		t.Errorf("after restore got %s, want NEWLINE", tok)
	}
}

func TestEndIsSticky(t *testing.T) {
	l := lexer.New(nil)
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != token.END {
			t.Fatalf("call %d: got %s, want END", i, tok)
		}
	}
}

func TestDeclarationStream(t *testing.T) {
	runTokenize(t, "pointer decl", "static const int *p = &x;", []tokenCase{
		{token.STORAGE, "static"},
		{token.WS, " "},
		{token.QUALIFIER, "const"},
		{token.WS, " "},
		{token.SYMBOL, "int"},
		{token.WS, " "},
		{token.STAR, "*"},
		{token.SYMBOL, "p"},
		{token.WS, " "},
		{token.EQL, "="},
		{token.WS, " "},
		{token.AMPERSAND, "&"},
		{token.SYMBOL, "x"},
		{token.SEMICOLON, ";"},
	})
}
