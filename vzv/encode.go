// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vzv

import (
	"errors"
	"fmt"
	"math"

	"github.com/bpowers/zerovec/internal/ondisk"
)

// ErrTooLarge is returned when a vector's element count or total size does
// not fit the u32 fields of the encoding.
var ErrTooLarge = errors.New("vector too large to encode")

// Encode builds the encoding of elems.  This is the only path that computes
// an offset table.
func Encode[T any, C Codec[T]](elems []T) ([]byte, error) {
	var c C
	return build(len(elems),
		func(i int) int { return c.EncodedLen(elems[i]) },
		func(i int, dst []byte) { c.Encode(dst, elems[i]) },
	)
}

// From encodes elems and returns the result as an owned Vec.
func From[T any, C Codec[T]](elems []T) (Vec[T, C], error) {
	buf, err := Encode[T, C](elems)
	if err != nil {
		return Vec[T, C]{}, err
	}
	v := ParseUnchecked[T, C](buf)
	v.owned = true
	return v, nil
}

// MustFrom is like From but panics on error.  It is intended for
// package-level tables initialized from literals.
func MustFrom[T any, C Codec[T]](elems []T) Vec[T, C] {
	v, err := From[T, C](elems)
	if err != nil {
		panic(err)
	}
	return v
}

// build lays out n elements whose sizes are given by elemLen and whose bytes
// are produced by write.
func build(n int, elemLen func(int) int, write func(int, []byte)) ([]byte, error) {
	if uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d elements", ErrTooLarge, n)
	}
	if n == 0 {
		return []byte{0, 0, 0, 0}, nil
	}

	hlen := headerLen(uint64(n))
	total := uint64(0)
	for i := 0; i < n; i++ {
		total += uint64(elemLen(i))
		if total > math.MaxUint32 {
			return nil, fmt.Errorf("%w: element data exceeds %d bytes", ErrTooLarge, uint64(math.MaxUint32))
		}
	}

	buf := make([]byte, hlen+total)
	count := ondisk.MutableUint32s(buf[:countSize])
	offsets := ondisk.MutableUint32s(buf[countSize:hlen])
	data := buf[hlen:]
	if err := count.Set(0, uint32(n)); err != nil {
		return nil, err
	}

	off := 0
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := offsets.Set(i-1, uint32(off)); err != nil {
				return nil, err
			}
		}
		size := elemLen(i)
		write(i, data[off:off+size])
		off += size
	}
	return buf, nil
}
