// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ProbeChain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ProbeChain. If not, see <http://www.gnu.org/licenses/>.

package arena

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

const (
	// DefaultLimit is the number of bytes an arena may hand out before
	// allocations start failing (4 MiB).
	DefaultLimit uint64 = 4 * 1024 * 1024

	// MinCapacity is the capacity a growable list starts with.
	MinCapacity = 8

	// chunkSize is the size of each raw byte chunk carved by Alloc.
	chunkSize uint64 = 4096

	// wordSize is the allocation granularity.
	wordSize uint64 = 8

	// typedChunkLen is the number of values in each typed chunk.
	typedChunkLen = 64
)

// ErrOutOfMemory is returned when an allocation would exceed the limit.
var ErrOutOfMemory = errors.New("arena: out of memory")

// ErrReleased is returned by every allocation made after Release.
var ErrReleased = errors.New("arena: use after release")

// ErrZeroSize is returned when Alloc is asked for zero bytes.
var ErrZeroSize = errors.New("arena: zero sized allocation")

// Arena is a bump allocator. Memory is carved sequentially from chunks and
// is only ever returned all at once by Release; there is no per-allocation
// free.
//
// Raw byte allocations come from byte chunks. Values containing pointers
// (AST nodes, list backing arrays) cannot live in raw bytes without hiding
// them from the garbage collector, so they are carved from typed chunks
// instead. Both kinds are charged against the same limit.
//
// An Arena is not safe for concurrent use. The zero value is not usable; use
// New.
type Arena struct {
	limit uint64 // max total bytes handed out
	used  uint64 // bytes handed out so far

	chunk []byte // current byte chunk, len is the bump offset
	last  []byte // most recent raw allocation, for in-place Realloc
	typed map[reflect.Type]interface{}

	released bool
}

// New creates an arena allowed to hand out limit bytes. If limit is 0,
// DefaultLimit is used.
func New(limit uint64) *Arena {
	if limit == 0 {
		limit = DefaultLimit
	}
	return &Arena{
		limit: limit,
		typed: make(map[reflect.Type]interface{}),
	}
}

// Used returns the number of bytes handed out so far.
func (a *Arena) Used() uint64 { return a.used }

// Limit returns the configured ceiling.
func (a *Arena) Limit() uint64 { return a.limit }

// Released reports whether Release has been called.
func (a *Arena) Released() bool { return a.released }

// Release drops every allocation at once. Nothing obtained from the arena
// may be used afterwards and further allocations fail with ErrReleased.
func (a *Arena) Release() {
	a.chunk, a.last, a.typed = nil, nil, nil
	a.used = 0
	a.released = true
}

// charge reserves size bytes of budget.
func (a *Arena) charge(size uint64) error {
	if a.released {
		return ErrReleased
	}
	if a.used+size > a.limit {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrOutOfMemory, size, a.used, a.limit)
	}
	a.used += size
	return nil
}

// Alloc returns size zeroed bytes carved from the current chunk.
func (a *Arena) Alloc(size uint64) ([]byte, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}
	aligned := roundUp(size, wordSize)
	if err := a.charge(aligned); err != nil {
		return nil, err
	}
	if uint64(cap(a.chunk)-len(a.chunk)) < aligned {
		a.chunk = make([]byte, 0, max64(chunkSize, aligned))
	}
	off := len(a.chunk)
	a.chunk = a.chunk[:off+int(aligned)]
	buf := a.chunk[off : off+int(size) : off+int(aligned)]
	a.last = buf
	return buf, nil
}

// Calloc returns count*size zeroed bytes.
func (a *Arena) Calloc(count, size uint64) ([]byte, error) {
	if size != 0 && count > a.limit/size {
		return nil, fmt.Errorf("%w: %d elements of %d bytes", ErrOutOfMemory, count, size)
	}
	return a.Alloc(count * size)
}

// Realloc resizes buf, which must have come from Alloc. The most recent
// allocation is grown in place when its chunk has room; anything else is
// copied into a fresh allocation. The old bytes are not reclaimed.
func (a *Arena) Realloc(buf []byte, size uint64) ([]byte, error) {
	if size <= uint64(len(buf)) {
		return buf[:size], nil
	}
	if a.last != nil && len(buf) > 0 && &buf[0] == &a.last[0] {
		var grow uint64
		if need := roundUp(size, wordSize); need > uint64(cap(buf)) {
			grow = need - uint64(cap(buf))
		}
		off := len(a.chunk) - cap(buf)
		if off+cap(buf)+int(grow) <= cap(a.chunk) {
			if err := a.charge(grow); err != nil {
				return nil, err
			}
			a.chunk = a.chunk[:off+cap(buf)+int(grow)]
			a.last = a.chunk[off : off+int(size) : off+cap(buf)+int(grow)]
			return a.last, nil
		}
	}
	fresh, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}
	copy(fresh, buf)
	return fresh, nil
}

// typedChunk holds the unused tail of the current chunk for one type.
type typedChunk[T any] struct {
	free []T
}

// Make returns a pointer to a zero T carved from the arena.
func Make[T any](a *Arena) (*T, error) {
	var zero T
	if err := a.charge(roundUp(uint64(unsafe.Sizeof(zero)), wordSize)); err != nil {
		return nil, err
	}
	key := reflect.TypeOf((*T)(nil))
	tc, _ := a.typed[key].(*typedChunk[T])
	if tc == nil {
		tc = new(typedChunk[T])
		a.typed[key] = tc
	}
	if len(tc.free) == 0 {
		tc.free = make([]T, typedChunkLen)
	}
	p := &tc.free[0]
	tc.free = tc.free[1:]
	return p, nil
}

// Push appends item to list, growing the backing array by doubling from
// MinCapacity. Growth is charged to the arena; the abandoned backing array
// is not reclaimed until Release.
func Push[T any](a *Arena, list []T, item T) ([]T, error) {
	if len(list) < cap(list) {
		return append(list, item), nil
	}
	newCap := cap(list) * 2
	if newCap < MinCapacity {
		newCap = MinCapacity
	}
	var zero T
	if err := a.charge(uint64(newCap) * uint64(unsafe.Sizeof(zero))); err != nil {
		return list, err
	}
	grown := make([]T, len(list), newCap)
	copy(grown, list)
	return append(grown, item), nil
}

// roundUp rounds n up to the nearest multiple of align (a power of two).
func roundUp(n, align uint64) uint64 {
	return (n + align - 1) &^ (align - 1)
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
