// Copyright 2021 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ondisk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint32Array(t *testing.T) {
	const arrayLen = 12
	buf := make([]byte, arrayLen*4)
	arr := MutableUint32s(buf)
	require.Equal(t, arrayLen, arr.Len())
	err := arr.Set(12, 0)
	require.Error(t, err)
	err = arr.Set(-1, 0)
	require.Error(t, err)
	for i := 0; i < arrayLen; i++ {
		err := arr.Set(i, uint32(i*2))
		require.NoError(t, err)
	}

	view := Uint32s(buf)
	require.Equal(t, arrayLen, view.Len())
	for i := 0; i < arrayLen; i++ {
		require.Equal(t, uint32(i*2), view.Get(i))
	}
	require.Panics(t, func() { view.Get(arrayLen) })

	// values are little-endian regardless of host
	require.Equal(t, []byte{2, 0, 0, 0}, buf[4:8])
}

func TestUint32Words(t *testing.T) {
	buf := make([]byte, 4*5+1)
	arr := MutableUint32s(buf[1:])
	for i := 0; i < arr.Len(); i++ {
		require.NoError(t, arr.Set(i, uint32(1000+i)))
	}

	// aligned or not, the values read back the same
	for _, view := range []Uint32s{Uint32s(buf[1:]), Uint32s(append([]byte(nil), buf[1:]...))} {
		words, _ := view.Words()
		require.Equal(t, []uint32{1000, 1001, 1002, 1003, 1004}, words)
	}

	words, aliased := Uint32s(nil).Words()
	require.Nil(t, words)
	require.False(t, aliased)
}
