// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/cinterp/lang/token"
	"github.com/probechain/cinterp/lang/view"
)

func sym(name string) *Symbol { return &Symbol{Name: view.FromString(name)} }

func num(v string) *Literal { return &Literal{LitKind: LiteralNumber, Value: view.FromString(v)} }

func TestKindTables(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		assert.NotEmpty(t, k.String())
	}
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.Equal(t, "Deref", Deref.String())
	assert.Equal(t, "*", Deref.Symbol())
	assert.Equal(t, "Pow", Pow.String())
	assert.Equal(t, "**", Pow.Symbol())
	assert.Equal(t, "?", BinaryKind(9).Symbol())
}

func TestTokenMappings(t *testing.T) {
	assert.Equal(t, AddrOf, UnaryKindOf(token.AMPERSAND))
	assert.Equal(t, Deref, UnaryKindOf(token.STAR))
	assert.Equal(t, Negate, UnaryKindOf(token.MINUS))
	assert.Equal(t, UnaryUnknown, UnaryKindOf(token.PLUS))

	assert.Equal(t, Add, BinaryKindOf(token.PLUS))
	assert.Equal(t, Sub, BinaryKindOf(token.MINUS))
	assert.Equal(t, Mul, BinaryKindOf(token.STAR))
	assert.Equal(t, Div, BinaryKindOf(token.FSLASH))
	assert.Equal(t, BinaryUnknown, BinaryKindOf(token.EQL))

	assert.Equal(t, LiteralNumber, LiteralKindOf(token.SIGNED_INT))
	assert.Equal(t, LiteralNumber, LiteralKindOf(token.DOUBLE))
	assert.Equal(t, LiteralString, LiteralKindOf(token.STRING))
	assert.Equal(t, LiteralUnknown, LiteralKindOf(token.SYMBOL))
}

func TestNodeStrings(t *testing.T) {
	var tests = []struct {
		node Node
		want string
	}{
		{num("7"), "7"},
		{&Literal{LitKind: LiteralString, Value: view.FromString(`a\"b`)}, `"a\"b"`},
		{sym("x"), "x"},
		{&UnaryOp{Op: Negate, Operand: sym("x")}, "(-x)"},
		{&BinaryOp{Op: Add, Left: num("1"), Right: &BinaryOp{Op: Mul, Left: num("2"), Right: num("3")}}, "(1 + (2 * 3))"},
		{&List{}, "[]"},
		{&List{Children: []Node{num("1"), sym("y")}}, "[1, y]"},
		{&Call{Name: view.FromString("f"), Args: []Node{sym("a"), num("2")}}, "f(a, 2);"},
		{&Assignment{
			Datatypes:  []view.View{view.FromString("int")},
			Identifier: view.FromString("n"),
			ValueKind:  token.SIGNED_INT,
			Value:      view.FromString("3"),
		}, "int n = 3;"},
		{&Assignment{
			Identifier: view.FromString("s"),
			ValueKind:  token.STRING,
			Value:      view.FromString("hi"),
		}, `s = "hi";`},
		{&Assignment{
			Identifier: view.FromString("e"),
			ValueKind:  token.STRING,
			Value:      view.FromString(`say \"hi\"\n`),
		}, `e = "say \"hi\"\n";`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.node.String())
	}
}

func TestErrorNode(t *testing.T) {
	e := &Error{Msg: "expected '='", Line: 2, Bol: 10, Cursor: 14}
	assert.Equal(t, KindError, e.Kind())
	assert.Equal(t, token.Position{Line: 3, Column: 5, Offset: 14}, e.Pos())
	assert.Equal(t, "3:5: expected '='", e.Error())

	var err error = e
	var target *Error
	require.True(t, errors.As(err, &target))
	assert.True(t, IsError(e))
	assert.False(t, IsError(sym("x")))
}

func TestFprint(t *testing.T) {
	prog := &List{Children: []Node{
		&Assignment{
			StorageClass:      view.FromString("static"),
			Datatypes:         []view.View{view.FromString("int")},
			PointerDepth:      1,
			PointerQualifiers: []view.View{nil},
			Identifier:        view.FromString("p"),
			AddressOf:         true,
			ValueKind:         token.SYMBOL,
			Value:             view.FromString("x"),
		},
		&BinaryOp{Op: Sub, Left: num("4"), Right: &UnaryOp{Op: Negate, Operand: sym("y")}},
		&List{},
	}}

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, prog))

	want := strings.Join([]string{
		"Node kind: List",
		"Children: (length = 3)",
		"   Node kind: Assignment",
		"   Storage class: static",
		"   Datatypes: [int]",
		"   Pointer depth: 1",
		"   Pointer qualifiers: [-]",
		"   Identifier: p",
		"   Address of: true",
		"   Value kind: SYMBOL",
		"   Value: x",
		"   Node kind: BinaryOp",
		"   Op: Sub",
		"   Left:",
		"      Node kind: Literal",
		"      Literal kind: Number",
		"      Value: 4",
		"   Right:",
		"      Node kind: UnaryOp",
		"      Op: Negate",
		"      Expr:",
		"         Node kind: Symbol",
		"         Value: y",
		"   Node kind: List",
		"   Children: None",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFprintWriteError(t *testing.T) {
	err := Fprint(failingWriter{}, sym("x"))
	assert.EqualError(t, err, "disk full")
}
