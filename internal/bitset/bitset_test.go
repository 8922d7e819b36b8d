// Copyright 2021 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitset(t *testing.T) {
	b := New(128)

	require.Equal(t, 2, len(b.words))
	require.Equal(t, 128, b.Len())

	// should do nothing
	b.Set(132)
	b.Set(-1)

	zero := []uint64{0, 0}
	require.Equal(t, zero, b.words)

	require.False(t, b.IsSet(7))
	b.Set(7)
	require.True(t, b.IsSet(7))
	b.Set(8)
	require.True(t, b.IsSet(8))
	require.Equal(t, 2, b.Count())
	b.Clear(7)
	require.False(t, b.IsSet(7))
	require.True(t, b.IsSet(8))
	b.Clear(8)
	require.Equal(t, zero, b.words)

	for i := 0; i < 128; i++ {
		b.Set(i)
	}

	full := []uint64{^uint64(0), ^uint64(0)}
	require.Equal(t, full, b.words)
	require.Equal(t, 128, b.Count())

	// should do nothing
	b.Clear(137)
	require.Equal(t, full, b.words)
	require.False(t, b.IsSet(137))

	b.Reset()
	require.Equal(t, zero, b.words)
	require.Equal(t, 0, b.Count())
}

func TestBitset_OddLength(t *testing.T) {
	b := New(65)
	require.Equal(t, 2, len(b.words))
	b.Set(64)
	require.True(t, b.IsSet(64))
	b.Set(65)
	require.False(t, b.IsSet(65))
	require.Equal(t, 1, b.Count())

	empty := New(0)
	empty.Set(0)
	require.False(t, empty.IsSet(0))
	require.Equal(t, 0, empty.Count())
}
