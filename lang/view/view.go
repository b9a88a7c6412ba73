// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package view implements non-owning byte views into a source buffer.
//
// A View is an ordinary Go sub-slice, so it shares the backing array of the
// buffer it was cut from. Every View handed out by the lexer and stored in an
// AST node points into the caller's source buffer; the buffer must stay valid
// (and unmodified) for as long as any such View is in use.
package view

import "bytes"

// View is a read-only window into a source buffer.
type View []byte

// FromString returns a View over a copy of s.
func FromString(s string) View { return View(s) }

// String returns a copy of the viewed bytes.
func (v View) String() string { return string(v) }

// IsEmpty reports whether the view covers no bytes.
func (v View) IsEmpty() bool { return len(v) == 0 }

// Equal reports whether two views hold the same bytes. Positions are ignored.
func (v View) Equal(o View) bool { return bytes.Equal(v, o) }

// EqualString reports whether the view holds exactly the bytes of s.
func (v View) EqualString(s string) bool { return string(v) == s }

// HasPrefix reports whether the view begins with s.
func (v View) HasPrefix(s string) bool {
	return len(v) >= len(s) && string(v[:len(s)]) == s
}

// HasWordPrefix reports whether the view begins with the word s, i.e. s is a
// prefix and is not immediately followed by an identifier byte. "static x"
// and "static" have the word prefix "static", "statics" does not.
func (v View) HasWordPrefix(s string) bool {
	if !v.HasPrefix(s) {
		return false
	}
	return len(v) == len(s) || !IsIdentByte(v[len(s)])
}

// TrimLeft drops leading whitespace.
func (v View) TrimLeft() View {
	i := 0
	for i < len(v) && IsSpace(v[i]) {
		i++
	}
	return v[i:]
}

// TrimRight drops trailing whitespace.
func (v View) TrimRight() View {
	i := len(v)
	for i > 0 && IsSpace(v[i-1]) {
		i--
	}
	return v[:i]
}

// Trim drops whitespace on both ends.
func (v View) Trim() View { return v.TrimLeft().TrimRight() }

// SplitByte returns the bytes before the first occurrence of delim and the
// remainder after it. If delim does not occur, the whole view is returned as
// head and rest is empty.
func (v View) SplitByte(delim byte) (head, rest View) {
	i := bytes.IndexByte(v, delim)
	if i < 0 {
		return v, v[len(v):]
	}
	return v[:i], v[i+1:]
}

// IsSpace matches the C locale isspace set.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsIdentStart reports whether c may begin an identifier.
func IsIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// IsIdentByte reports whether c may continue an identifier.
func IsIdentByte(c byte) bool { return IsIdentStart(c) || IsDigit(c) }
