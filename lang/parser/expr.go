// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"github.com/probechain/cinterp/lang/arena"
	"github.com/probechain/cinterp/lang/ast"
	"github.com/probechain/cinterp/lang/token"
	"github.com/probechain/cinterp/lang/view"
)

// bindingPower holds the left and right binding power of an infix operator.
// Right is always left+1, which makes every operator left associative.
type bindingPower struct {
	left, right int
}

var infixPower = map[token.Kind]bindingPower{
	token.PLUS:   {1, 2},
	token.MINUS:  {1, 2},
	token.STAR:   {3, 4},
	token.FSLASH: {3, 4},
}

// primaryAlternatives lists the primary expression productions in priority
// order.
func primaryAlternatives() []alternative {
	return []alternative{
		{"parenthesized", parseParenthesized},
		{"unary", parseUnary},
		{"symbol", parseSymbol},
		{"literal", parseLiteral},
	}
}

// literalKinds are the token kinds a literal may be spelled with.
var literalKinds = [...]token.Kind{
	token.SIGNED_INT,
	token.UNSIGNED_INT,
	token.FLOAT,
	token.DOUBLE,
	token.STRING,
}

// ---------------------------------------------------------------------------
// expr = primary { ws* infix blank* expr } ;
//
// Only spaces may separate an operand from the operator that follows it; a
// newline there ends the expression. Any blank may follow the operator.
// ---------------------------------------------------------------------------

func (p *Parser) parseExpr(minBP int) ast.Node {
	l := &p.lex

	lhs := p.parsePrimary()
	if ast.IsError(lhs) {
		return lhs
	}
	for {
		before := *l
		zeroOrMore(l, token.WS)

		tok := l.Peek()
		bp, ok := infixPower[tok.Kind]
		if !ok || bp.left < minBP {
			l.Reset(before)
			return lhs
		}
		l.Next()
		skipBlank(l)

		rhs := p.parseExpr(bp.right)
		if ast.IsError(rhs) {
			return rhs
		}
		node, err := arena.Make[ast.BinaryOp](p.arena)
		if err != nil {
			return p.abort(err)
		}
		node.Op, node.Left, node.Right = ast.BinaryKindOf(tok.Kind), lhs, rhs
		lhs = node
	}
}

func (p *Parser) parsePrimary() ast.Node {
	if p.depth >= maxNestingDepth {
		return p.fail(msgTooDeep)
	}
	p.depth++
	defer func() { p.depth-- }()

	return p.choose(msgExpressionFallback, primaryAlternatives())
}

// ---------------------------------------------------------------------------
// parenthesized = "(" blank* [ expr { blank* "," blank* expr } [ blank* "," ] ] blank* ")" ;
//
// A group holding exactly one expression without a trailing comma is that
// expression. Anything else is a List.
// ---------------------------------------------------------------------------

func parseParenthesized(p *Parser) ast.Node {
	var (
		l        = &p.lex
		children []ast.Node
		trailing bool
		err      error
	)

	if !exactlyOne(l, token.OPAREN, nil) {
		return p.fail("expected an opening paren")
	}
	skipBlank(l)

	for !isNext(l, token.CPAREN) {
		child := p.parseExpr(0)
		if ast.IsError(child) {
			return child
		}
		if children, err = arena.Push(p.arena, children, child); err != nil {
			return p.abort(err)
		}
		skipBlank(l)
		if trailing = exactlyOne(l, token.COMMA, nil); !trailing {
			break
		}
		skipBlank(l)
	}

	if !exactlyOne(l, token.CPAREN, nil) {
		return p.fail("expected a closing paren")
	}
	if len(children) == 1 && !trailing {
		return children[0]
	}
	list, err := arena.Make[ast.List](p.arena)
	if err != nil {
		return p.abort(err)
	}
	list.Children = children
	return list
}

// ---------------------------------------------------------------------------
// unary = ( "&" | "*" | "-" ) ws* primary ;
// ---------------------------------------------------------------------------

func parseUnary(p *Parser) ast.Node {
	l := &p.lex

	op := ast.UnaryKindOf(l.Peek().Kind)
	if op == ast.UnaryUnknown {
		return p.fail("expected a unary operator")
	}
	l.Next()
	zeroOrMore(l, token.WS)

	operand := p.parsePrimary()
	if ast.IsError(operand) {
		return operand
	}
	node, err := arena.Make[ast.UnaryOp](p.arena)
	if err != nil {
		return p.abort(err)
	}
	node.Op, node.Operand = op, operand
	return node
}

func parseSymbol(p *Parser) ast.Node {
	var name view.View
	if !exactlyOne(&p.lex, token.SYMBOL, &name) {
		return p.fail("expected a symbol")
	}
	node, err := arena.Make[ast.Symbol](p.arena)
	if err != nil {
		return p.abort(err)
	}
	node.Name = name
	return node
}

func parseLiteral(p *Parser) ast.Node {
	kind := p.lex.Peek().Kind
	for _, k := range literalKinds {
		if kind != k {
			continue
		}
		tok := p.lex.Next()
		node, err := arena.Make[ast.Literal](p.arena)
		if err != nil {
			return p.abort(err)
		}
		node.LitKind, node.Value = ast.LiteralKindOf(kind), tok.Text
		return node
	}
	return p.fail("expected a literal")
}
