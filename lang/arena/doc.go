// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package arena provides the bump allocator and growable list that back one
// parse session.
//
// Every AST node produced by a parse, including the backing arrays of node
// lists, is obtained from exactly one Arena. The parser never frees anything
// itself; the caller releases the whole arena once it has finished with the
// tree. All limits are enforced up front so that allocator exhaustion is an
// ordinary error value rather than a crash.
package arena
