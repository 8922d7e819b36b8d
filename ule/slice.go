// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ule

import (
	"iter"

	"github.com/bpowers/zerovec/internal/ondisk"
)

// Slice is a validated, read-only view of fixed-width values stored in a
// byte buffer.  The zero value is an empty Slice.
type Slice[T any, C Codec[T]] struct {
	b []byte
}

// Parse validates b and returns a Slice borrowing it.  b must not be
// modified while the Slice is in use.
func Parse[T any, C Codec[T]](b []byte) (Slice[T, C], error) {
	if err := ValidateSlice[T, C](b); err != nil {
		return Slice[T, C]{}, err
	}
	return Slice[T, C]{b: b}, nil
}

// FromBytesUnchecked wraps b without validating it.  b must have been produced
// by Encode or previously accepted by Parse.
func FromBytesUnchecked[T any, C Codec[T]](b []byte) Slice[T, C] {
	return Slice[T, C]{b: b}
}

// FromValues encodes vals into a new Slice.
func FromValues[T any, C Codec[T]](vals []T) Slice[T, C] {
	return Slice[T, C]{b: Encode[T, C](vals)}
}

// Len returns the number of elements.
func (s Slice[T, C]) Len() int {
	var c C
	return len(s.b) / c.Size()
}

// Get returns element i, or false if i is out of range.
func (s Slice[T, C]) Get(i int) (v T, ok bool) {
	if i < 0 || i >= s.Len() {
		return v, false
	}
	return s.At(i), true
}

// At returns element i and panics if it is out of range.
func (s Slice[T, C]) At(i int) T {
	var c C
	size := c.Size()
	return c.Decode(s.b[i*size : (i+1)*size])
}

// All iterates over the elements in order.
func (s Slice[T, C]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := s.Len()
		for i := 0; i < n; i++ {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// Bytes returns the underlying encoded bytes.
func (s Slice[T, C]) Bytes() []byte {
	return s.b
}

// ToSlice decodes every element into a new slice.
func (s Slice[T, C]) ToSlice() []T {
	out := make([]T, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// BinarySearch searches a Slice sorted by cmp for target, returning the
// position where it was found or would be inserted.
func (s Slice[T, C]) BinarySearch(target T, cmp func(T, T) int) (int, bool) {
	lo, hi := 0, s.Len()
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(s.At(mid), target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < s.Len() && cmp(s.At(lo), target) == 0
}

// Uint32Words returns b, a little-endian uint32 array, as a []uint32.  When
// the host byte order and alignment allow it the result aliases b and must be
// treated as read-only; aliased reports whether that happened.
func Uint32Words(b []byte) (words []uint32, aliased bool, err error) {
	if err := ValidateSlice[uint32, Uint32](b); err != nil {
		return nil, false, err
	}
	words, aliased = ondisk.Uint32s(b).Words()
	return words, aliased, nil
}
