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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAlignment(t *testing.T) {
	a := New(0)
	assert.Equal(t, DefaultLimit, a.Limit())

	buf, err := a.Alloc(3)
	require.NoError(t, err)
	assert.Len(t, buf, 3)
	assert.Equal(t, uint64(8), a.Used())

	buf2, err := a.Alloc(9)
	require.NoError(t, err)
	assert.Len(t, buf2, 9)
	assert.Equal(t, uint64(24), a.Used())
}

func TestAllocZeroed(t *testing.T) {
	a := New(0)
	buf, err := a.Alloc(16)
	require.NoError(t, err)
	for i, b := range buf {
		assert.Zero(t, b, "byte %d", i)
	}
}

func TestAllocZeroSize(t *testing.T) {
	_, err := New(0).Alloc(0)
	assert.ErrorIs(t, err, ErrZeroSize)
}

func TestAllocLargerThanChunk(t *testing.T) {
	a := New(0)
	buf, err := a.Alloc(chunkSize * 2)
	require.NoError(t, err)
	assert.Len(t, buf, int(chunkSize*2))
}

func TestOutOfMemory(t *testing.T) {
	a := New(32)
	_, err := a.Alloc(24)
	require.NoError(t, err)

	_, err = a.Alloc(16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfMemory))
	assert.Equal(t, uint64(24), a.Used(), "failed allocation must not be charged")
}

func TestCallocOverflow(t *testing.T) {
	a := New(1024)
	_, err := a.Calloc(1<<62, 8)
	assert.ErrorIs(t, err, ErrOutOfMemory)

	buf, err := a.Calloc(4, 4)
	require.NoError(t, err)
	assert.Len(t, buf, 16)
}

func TestReallocInPlace(t *testing.T) {
	a := New(0)
	buf, err := a.Alloc(8)
	require.NoError(t, err)
	copy(buf, "abcdefgh")

	grown, err := a.Realloc(buf, 20)
	require.NoError(t, err)
	assert.Len(t, grown, 20)
	assert.Equal(t, "abcdefgh", string(grown[:8]))
	assert.Same(t, &buf[0], &grown[0], "last allocation should grow in place")
	assert.Equal(t, uint64(24), a.Used())
}

func TestReallocCopies(t *testing.T) {
	a := New(0)
	first, err := a.Alloc(8)
	require.NoError(t, err)
	copy(first, "12345678")
	_, err = a.Alloc(8)
	require.NoError(t, err)

	moved, err := a.Realloc(first, 16)
	require.NoError(t, err)
	assert.Equal(t, "12345678", string(moved[:8]))
	assert.NotSame(t, &first[0], &moved[0])
}

func TestReallocShrink(t *testing.T) {
	a := New(0)
	buf, err := a.Alloc(16)
	require.NoError(t, err)
	used := a.Used()

	small, err := a.Realloc(buf, 4)
	require.NoError(t, err)
	assert.Len(t, small, 4)
	assert.Equal(t, used, a.Used())
}

type node struct {
	name string
	next *node
}

func TestTypedNew(t *testing.T) {
	a := New(0)
	var prev *node
	for i := 0; i < typedChunkLen+5; i++ {
		n, err := Make[node](a)
		require.NoError(t, err)
		assert.Nil(t, n.next)
		n.next = prev
		prev = n
	}
	count := 0
	for n := prev; n != nil; n = n.next {
		count++
	}
	assert.Equal(t, typedChunkLen+5, count)
}

func TestPushGrowth(t *testing.T) {
	a := New(0)
	var list []int
	var err error
	for i := 0; i < 20; i++ {
		list, err = Push(a, list, i)
		require.NoError(t, err)
	}
	assert.Len(t, list, 20)
	assert.Equal(t, 32, cap(list))
	for i, v := range list {
		assert.Equal(t, i, v)
	}
}

func TestPushOutOfMemory(t *testing.T) {
	a := New(64)
	var list []int64
	var err error
	for i := 0; i < MinCapacity; i++ {
		list, err = Push(a, list, int64(i))
		require.NoError(t, err)
	}
	before := list
	list, err = Push(a, list, 99)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, before, list, "list must be left untouched on failure")
}

func TestRelease(t *testing.T) {
	a := New(0)
	_, err := a.Alloc(8)
	require.NoError(t, err)

	a.Release()
	assert.True(t, a.Released())
	assert.Zero(t, a.Used())

	_, err = a.Alloc(8)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = Make[node](a)
	assert.ErrorIs(t, err, ErrReleased)
}
