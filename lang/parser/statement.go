// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"strconv"

	"github.com/probechain/cinterp/lang/arena"
	"github.com/probechain/cinterp/lang/ast"
	"github.com/probechain/cinterp/lang/token"
	"github.com/probechain/cinterp/lang/view"
)

// statementAlternatives lists the statement productions in priority order.
func statementAlternatives() []alternative {
	return []alternative{
		{"assignment", parseAssignment},
		{"call", parseCall},
		{"expression", parseExprStatement},
	}
}

// valueKinds are the token kinds accepted on the right of an assignment, in
// the order they are tried.
var valueKinds = [...]token.Kind{
	token.SIGNED_INT,
	token.UNSIGNED_INT,
	token.FLOAT,
	token.STRING,
	token.SYMBOL,
}

// ---------------------------------------------------------------------------
// assignment = [ STORAGE ws ] [ QUALIFIER ws ] { SYMBOL ws* }
//              { "*" ws* [ QUALIFIER ws* ] } [ SYMBOL ] ws* "=" ws* [ "&" ws* ]
//              value ws* ";"+ ;
//
// Without a pointer declarator the last SYMBOL of the datatype run is the
// identifier; with one, a separate SYMBOL must follow the last "*".
// ---------------------------------------------------------------------------

func parseAssignment(p *Parser) ast.Node {
	var (
		l    = &p.lex
		n    ast.Assignment
		word view.View
		err  error
	)

	zeroOrOne(l, token.STORAGE, &n.StorageClass)
	if !n.StorageClass.IsEmpty() && !skipBlank(l) {
		return p.fail("expected whitespace after storage class")
	}
	zeroOrOne(l, token.QUALIFIER, &n.TypeQualifier)
	if !n.TypeQualifier.IsEmpty() && !skipBlank(l) {
		return p.fail("expected whitespace after type qualifier")
	}

	for exactlyOne(l, token.SYMBOL, &word) {
		if n.Datatypes, err = arena.Push(p.arena, n.Datatypes, word); err != nil {
			return p.abort(err)
		}
		skipBlank(l)
	}

	for exactlyOne(l, token.STAR, nil) {
		var qual view.View
		skipBlank(l)
		if zeroOrOne(l, token.QUALIFIER, &qual) && !qual.IsEmpty() {
			skipBlank(l)
		}
		n.PointerDepth++
		if n.PointerQualifiers, err = arena.Push(p.arena, n.PointerQualifiers, qual); err != nil {
			return p.abort(err)
		}
	}

	if n.PointerDepth == 0 {
		if len(n.Datatypes) == 0 {
			return p.fail("expected an identifier")
		}
		last := len(n.Datatypes) - 1
		n.Identifier, n.Datatypes = n.Datatypes[last], n.Datatypes[:last]
	} else if !exactlyOne(l, token.SYMBOL, &n.Identifier) {
		return p.fail("expected an identifier after pointer declarator")
	}
	if n.PointerDepth != len(n.PointerQualifiers) {
		return p.fail("pointer depth does not match the number of pointer qualifiers")
	}

	skipBlank(l)
	if !exactlyOne(l, token.EQL, nil) {
		return p.fail("expected '=' after identifier")
	}
	skipBlank(l)
	if exactlyOne(l, token.AMPERSAND, nil) {
		n.AddressOf = true
		skipBlank(l)
	}

	found := false
	for _, kind := range valueKinds {
		if exactlyOne(l, kind, &n.Value) {
			n.ValueKind, found = kind, true
			break
		}
	}
	if !found {
		return p.fail("expected a value after '='")
	}
	convertValue(&n)

	// A missing ';' is reported right after the value, not on whatever
	// line the blanks ran to, unless a lexical fault is what follows.
	end := *l
	skipBlank(l)
	if !oneOrMore(l, token.SEMICOLON) {
		if !l.Peek().IsError() {
			l.Reset(end)
		}
		return p.fail("expected ';' at the end of the assignment")
	}

	node, err := arena.Make[ast.Assignment](p.arena)
	if err != nil {
		return p.abort(err)
	}
	*node = n
	return node
}

// convertValue fills the numeric fields of n from its value text. Only
// decimal digits are accepted; out of range values saturate, matching
// strtol, rather than failing.
func convertValue(n *ast.Assignment) {
	s := n.Value.String()
	switch n.ValueKind {
	case token.SIGNED_INT:
		n.Int, _ = strconv.ParseInt(s, 10, 64)
	case token.UNSIGNED_INT:
		n.Uint, _ = strconv.ParseUint(s, 10, 64)
	case token.FLOAT, token.DOUBLE:
		n.Float, _ = strconv.ParseFloat(s, 64)
	}
}

// ---------------------------------------------------------------------------
// call = SYMBOL ws* "(" blank* [ expr { blank* "," blank* expr } ] blank* ")" ws* ";"+ ;
// ---------------------------------------------------------------------------

func parseCall(p *Parser) ast.Node {
	var (
		l    = &p.lex
		name view.View
		args []ast.Node
		err  error
	)

	if !exactlyOne(l, token.SYMBOL, &name) {
		return p.fail("expected a function name")
	}
	zeroOrMore(l, token.WS)
	if !exactlyOne(l, token.OPAREN, nil) {
		return p.fail("expected '(' after function name")
	}
	skipBlank(l)

	if !isNext(l, token.CPAREN) {
		for {
			arg := p.parseExpr(0)
			if ast.IsError(arg) {
				return arg
			}
			if args, err = arena.Push(p.arena, args, arg); err != nil {
				return p.abort(err)
			}
			skipBlank(l)
			if !exactlyOne(l, token.COMMA, nil) {
				break
			}
			skipBlank(l)
		}
	}

	skipBlank(l)
	if !exactlyOne(l, token.CPAREN, nil) {
		return p.fail("expected ')' after call arguments")
	}
	zeroOrMore(l, token.WS)
	if !oneOrMore(l, token.SEMICOLON) {
		return p.fail("expected ';' after call")
	}

	node, err := arena.Make[ast.Call](p.arena)
	if err != nil {
		return p.abort(err)
	}
	node.Name, node.Args = name, args
	return node
}

// ---------------------------------------------------------------------------
// expr_stmt = expr ws* ( ";"+ | NEWLINE | END ) ;
// ---------------------------------------------------------------------------

func parseExprStatement(p *Parser) ast.Node {
	l := &p.lex

	expr := p.parseExpr(0)
	if ast.IsError(expr) {
		return expr
	}
	zeroOrMore(l, token.WS)
	if oneOrMore(l, token.SEMICOLON) || isNext(l, token.NEWLINE) || isNext(l, token.END) {
		return expr
	}
	return p.fail("expected ';' or a newline after expression")
}
