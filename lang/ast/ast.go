// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the syntax tree produced by the parser.
//
// Design overview:
//
//   - Every node implements Node. The concrete type is the variant tag; Kind
//     exposes it as a value for printing and switches.
//   - Nodes are built bottom-up by the parser and never mutated afterwards.
//   - Names and literal values are view.View slices of the source buffer,
//     so the buffer must outlive the tree.
//   - Nodes are carved from the arena of the parse that produced them and all
//     become invalid when that arena is released.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/probechain/cinterp/lang/token"
	"github.com/probechain/cinterp/lang/view"
)

// Node is implemented by every AST node.
type Node interface {
	// Kind returns the variant tag of the node.
	Kind() Kind

	// String returns a compact, parenthesised form of the node suitable for
	// tests and debug output.
	String() string
}

// ---------------------------------------------------------------------------
// Kind tables
// ---------------------------------------------------------------------------

// Kind tags the node variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindError
	KindLiteral
	KindSymbol
	KindUnaryOp
	KindBinaryOp
	KindList
	KindAssignment
	KindCall
	kindCount
)

var kindNames = [...]string{
	KindUnknown:    "Unknown",
	KindError:      "Error",
	KindLiteral:    "Literal",
	KindSymbol:     "Symbol",
	KindUnaryOp:    "UnaryOp",
	KindBinaryOp:   "BinaryOp",
	KindList:       "List",
	KindAssignment: "Assignment",
	KindCall:       "Call",
}

var _ = [1]struct{}{}[len(kindNames)-int(kindCount)]

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// LiteralKind classifies literal values.
type LiteralKind int

const (
	LiteralUnknown LiteralKind = iota
	LiteralNumber
	LiteralString
	LiteralBool
)

var literalNames = [...]string{
	LiteralUnknown: "Unknown",
	LiteralNumber:  "Number",
	LiteralString:  "String",
	LiteralBool:    "Bool",
}

func (k LiteralKind) String() string {
	if k >= 0 && int(k) < len(literalNames) {
		return literalNames[k]
	}
	return fmt.Sprintf("LiteralKind(%d)", int(k))
}

// LiteralKindOf maps a token kind to the literal kind it denotes.
func LiteralKindOf(k token.Kind) LiteralKind {
	switch k {
	case token.SIGNED_INT, token.UNSIGNED_INT, token.FLOAT, token.DOUBLE:
		return LiteralNumber
	case token.STRING:
		return LiteralString
	}
	return LiteralUnknown
}

// UnaryKind enumerates prefix operators.
type UnaryKind int

const (
	UnaryUnknown UnaryKind = iota
	AddrOf
	Deref
	Negate
)

var unaryNames = [...]string{
	UnaryUnknown: "Unknown",
	AddrOf:       "AddrOf",
	Deref:        "Deref",
	Negate:       "Negate",
}

var unarySymbols = [...]string{
	UnaryUnknown: "?",
	AddrOf:       "&",
	Deref:        "*",
	Negate:       "-",
}

func (k UnaryKind) String() string {
	if k >= 0 && int(k) < len(unaryNames) {
		return unaryNames[k]
	}
	return fmt.Sprintf("UnaryKind(%d)", int(k))
}

// Symbol returns the operator as written in source.
func (k UnaryKind) Symbol() string {
	if k >= 0 && int(k) < len(unarySymbols) {
		return unarySymbols[k]
	}
	return "?"
}

// UnaryKindOf maps a token kind to the prefix operator it spells.
func UnaryKindOf(k token.Kind) UnaryKind {
	switch k {
	case token.STAR:
		return Deref
	case token.AMPERSAND:
		return AddrOf
	case token.MINUS:
		return Negate
	}
	return UnaryUnknown
}

// BinaryKind enumerates infix operators.
type BinaryKind int

const (
	BinaryUnknown BinaryKind = iota
	Add
	Sub
	Mul
	Div
	Pow
)

var binaryNames = [...]string{
	BinaryUnknown: "Unknown",
	Add:           "Add",
	Sub:           "Sub",
	Mul:           "Mul",
	Div:           "Div",
	Pow:           "Pow",
}

var binarySymbols = [...]string{
	BinaryUnknown: "?",
	Add:           "+",
	Sub:           "-",
	Mul:           "*",
	Div:           "/",
	Pow:           "**",
}

func (k BinaryKind) String() string {
	if k >= 0 && int(k) < len(binaryNames) {
		return binaryNames[k]
	}
	return fmt.Sprintf("BinaryKind(%d)", int(k))
}

// Symbol returns the operator as written in source.
func (k BinaryKind) Symbol() string {
	if k >= 0 && int(k) < len(binarySymbols) {
		return binarySymbols[k]
	}
	return "?"
}

// BinaryKindOf maps a token kind to the infix operator it spells.
func BinaryKindOf(k token.Kind) BinaryKind {
	switch k {
	case token.PLUS:
		return Add
	case token.MINUS:
		return Sub
	case token.STAR:
		return Mul
	case token.FSLASH:
		return Div
	}
	return BinaryUnknown
}

// ---------------------------------------------------------------------------
// Nodes
// ---------------------------------------------------------------------------

// Error is a failed production. It never has children. Line is 0-based, Bol
// is the offset of the start of that line and Cursor the offset at which the
// production gave up.
type Error struct {
	Msg    string
	Line   int
	Bol    int
	Cursor int
}

func (e *Error) Kind() Kind { return KindError }

// Pos returns the 1-based location of the error.
func (e *Error) Pos() token.Position {
	return token.Position{Line: e.Line + 1, Column: e.Cursor - e.Bol + 1, Offset: e.Cursor}
}

func (e *Error) String() string { return e.Pos().String() + ": " + e.Msg }

// Error implements the error interface.
func (e *Error) Error() string { return e.String() }

// Literal is a number, string or bool constant.
type Literal struct {
	LitKind LiteralKind
	Value   view.View
}

func (n *Literal) Kind() Kind { return KindLiteral }
func (n *Literal) String() string {
	if n.LitKind == LiteralString {
		return `"` + n.Value.String() + `"`
	}
	return n.Value.String()
}

// Symbol is a bare name.
type Symbol struct {
	Name view.View
}

func (n *Symbol) Kind() Kind     { return KindSymbol }
func (n *Symbol) String() string { return n.Name.String() }

// UnaryOp applies a prefix operator to its operand.
type UnaryOp struct {
	Op      UnaryKind
	Operand Node
}

func (n *UnaryOp) Kind() Kind { return KindUnaryOp }
func (n *UnaryOp) String() string {
	return "(" + n.Op.Symbol() + n.Operand.String() + ")"
}

// BinaryOp applies an infix operator.
type BinaryOp struct {
	Op    BinaryKind
	Left  Node
	Right Node
}

func (n *BinaryOp) Kind() Kind { return KindBinaryOp }
func (n *BinaryOp) String() string {
	return "(" + n.Left.String() + " " + n.Op.Symbol() + " " + n.Right.String() + ")"
}

// List is an ordered sequence of nodes. The top level program is a List of
// statements in source order.
type List struct {
	Children []Node
}

func (n *List) Kind() Kind { return KindList }

// Len returns the number of children.
func (n *List) Len() int { return len(n.Children) }

func (n *List) String() string {
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Assignment is a declaration with an initial value:
//
//	[storage] [qualifier] datatype... {* [qualifier]} identifier = [&]value;
//
// PointerQualifiers has one entry per pointer level; an empty View means the
// level is unqualified.
type Assignment struct {
	StorageClass      view.View
	TypeQualifier     view.View
	Datatypes         []view.View
	PointerDepth      int
	PointerQualifiers []view.View
	Identifier        view.View
	AddressOf         bool

	ValueKind token.Kind
	Value     view.View

	// Decimal conversions of Value, set according to ValueKind.
	Int   int64
	Uint  uint64
	Float float64
}

func (n *Assignment) Kind() Kind { return KindAssignment }

func (n *Assignment) String() string {
	var out bytes.Buffer
	for _, w := range []view.View{n.StorageClass, n.TypeQualifier} {
		if !w.IsEmpty() {
			out.Write(w)
			out.WriteByte(' ')
		}
	}
	for _, dt := range n.Datatypes {
		out.Write(dt)
		out.WriteByte(' ')
	}
	for _, q := range n.PointerQualifiers {
		out.WriteByte('*')
		if !q.IsEmpty() {
			out.Write(q)
			out.WriteByte(' ')
		}
	}
	out.Write(n.Identifier)
	out.WriteString(" = ")
	if n.AddressOf {
		out.WriteByte('&')
	}
	if n.ValueKind == token.STRING {
		out.WriteByte('"')
		out.Write(n.Value)
		out.WriteByte('"')
	} else {
		out.Write(n.Value)
	}
	out.WriteByte(';')
	return out.String()
}

// Call is a call statement.
type Call struct {
	Name view.View
	Args []Node
}

func (n *Call) Kind() Kind { return KindCall }
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name.String() + "(" + strings.Join(args, ", ") + ");"
}

// IsError reports whether n is a failed production.
func IsError(n Node) bool {
	_, ok := n.(*Error)
	return ok
}
