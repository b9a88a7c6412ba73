// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/probechain/cinterp/lang/view"
)

const indentUnit = "   "

// Fprint writes an indented, one-field-per-line dump of the tree rooted at n.
func Fprint(w io.Writer, n Node) error {
	p := printer{w: w}
	p.node(n, 0)
	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(indentUnit, depth), fmt.Sprintf(format, args...))
}

func (p *printer) node(n Node, depth int) {
	if n == nil {
		p.line(depth, "<nil>")
		return
	}
	p.line(depth, "Node kind: %s", n.Kind())

	switch n := n.(type) {
	case *Error:
		p.line(depth, "message: %s", n.Msg)
		p.line(depth, "line: %d", n.Line)
		p.line(depth, "cursor: %d", n.Cursor)
		p.line(depth, "bol: %d", n.Bol)

	case *Literal:
		p.line(depth, "Literal kind: %s", n.LitKind)
		p.line(depth, "Value: %s", n.Value)

	case *Symbol:
		p.line(depth, "Value: %s", n.Name)

	case *UnaryOp:
		p.line(depth, "Op: %s", n.Op)
		p.line(depth, "Expr:")
		p.node(n.Operand, depth+1)

	case *BinaryOp:
		p.line(depth, "Op: %s", n.Op)
		p.line(depth, "Left:")
		p.node(n.Left, depth+1)
		p.line(depth, "Right:")
		p.node(n.Right, depth+1)

	case *List:
		if len(n.Children) == 0 {
			p.line(depth, "Children: None")
			break
		}
		p.line(depth, "Children: (length = %d)", len(n.Children))
		for _, c := range n.Children {
			p.node(c, depth+1)
		}

	case *Assignment:
		if !n.StorageClass.IsEmpty() {
			p.line(depth, "Storage class: %s", n.StorageClass)
		}
		if !n.TypeQualifier.IsEmpty() {
			p.line(depth, "Type qualifier: %s", n.TypeQualifier)
		}
		p.line(depth, "Datatypes: %s", joinViews(n.Datatypes))
		p.line(depth, "Pointer depth: %d", n.PointerDepth)
		if n.PointerDepth > 0 {
			p.line(depth, "Pointer qualifiers: %s", joinViews(n.PointerQualifiers))
		}
		p.line(depth, "Identifier: %s", n.Identifier)
		p.line(depth, "Address of: %t", n.AddressOf)
		p.line(depth, "Value kind: %s", n.ValueKind)
		p.line(depth, "Value: %s", n.Value)

	case *Call:
		p.line(depth, "Name: %s", n.Name)
		p.line(depth, "Args: (length = %d)", len(n.Args))
		for _, a := range n.Args {
			p.node(a, depth+1)
		}
	}
}

func joinViews(vs []view.View) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		if v.IsEmpty() {
			parts[i] = "-"
			continue
		}
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
