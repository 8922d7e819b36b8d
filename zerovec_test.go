// Copyright 2021 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zerovec

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableLengthVector(t *testing.T) {
	elems := []string{"foo", "bar", "baz", "dolor", "quux", "lorem ipsum"}
	buf, err := BuildVariableLengthVector(elems)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(buf[0:4]))
	for i, want := range []uint32{3, 6, 9, 14, 18} {
		assert.Equal(t, want, binary.LittleEndian.Uint32(buf[4+4*i:]))
	}
	assert.Equal(t, "foobarbazdolorquuxlorem ipsum", string(buf[24:]))

	v, err := ParseVariableLengthVector(buf)
	require.NoError(t, err)
	assert.Equal(t, elems, v.ToSlice())
}

func TestVariableLengthVector_Empty(t *testing.T) {
	buf, err := BuildVariableLengthVector(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf)
	v, err := ParseVariableLengthVector(buf)
	require.NoError(t, err)
	_, ok := v.Get(0)
	assert.False(t, ok)
}

func TestVariableLengthVector_Errors(t *testing.T) {
	// count 3 needs two offsets; only one is present
	_, err := ParseVariableLengthVector([]byte{3, 0, 0, 0, 1, 0, 0, 0})
	require.ErrorIs(t, err, ErrStructural)

	_, err = ParseVariableLengthVector([]byte{1, 0, 0, 0, 0xff})
	require.ErrorIs(t, err, ErrElement)
}

func TestPerfectHash(t *testing.T) {
	var keys []byte
	for c := byte('A'); c <= 'Z'; c++ {
		keys = append(keys, c)
	}
	for c := byte('a'); c <= 'z'; c++ {
		keys = append(keys, c)
	}
	for c := byte('0'); c <= '9'; c++ {
		keys = append(keys, c)
	}
	buf, err := BuildPerfectHash(keys)
	require.NoError(t, err)
	require.Len(t, buf, 2*62+1)

	slots := make(map[int]byte)
	for _, k := range keys {
		slot, ok := PerfectHashLookup(buf, k)
		require.True(t, ok, "key %q", k)
		require.GreaterOrEqual(t, slot, 0)
		require.Less(t, slot, 62)
		_, taken := slots[slot]
		require.False(t, taken, "slot %d reused", slot)
		slots[slot] = k
	}
	_, ok := PerfectHashLookup(buf, '!')
	assert.False(t, ok)
	_, ok = PerfectHashLookup(buf[:10], 'A')
	assert.False(t, ok)
}

func TestPerfectHash_Errors(t *testing.T) {
	_, err := BuildPerfectHash([]byte("aa"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrConstructionFailure)
}

func ExampleParseVariableLengthVector() {
	buf, err := BuildVariableLengthVector([]string{"zero", "copy"})
	if err != nil {
		panic(err)
	}
	v, err := ParseVariableLengthVector(buf)
	if err != nil {
		panic(err)
	}
	for i, s := range v.All() {
		fmt.Println(i, s)
	}
	// Output:
	// 0 zero
	// 1 copy
}
