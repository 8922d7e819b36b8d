// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ule

import "slices"

// Codec maps values of T to and from a canonical fixed-width encoding.
//
// Implementations must guarantee:
//   - Encode is total and injective, writing exactly Size() bytes;
//   - Validate accepts exactly the encodings produced by Encode;
//   - Decode is defined for every input Validate accepts, and
//     Decode(Encode(v)) == v.
type Codec[T any] interface {
	// Size is the width of one encoded value in bytes.  It must be > 0.
	Size() int
	// Encode writes v into dst[:Size()].
	Encode(dst []byte, v T)
	// Decode reads a value from src[:Size()], which must already be valid.
	Decode(src []byte) T
	// Validate checks that src is the encoding of a single value.
	Validate(src []byte) error
}

// ValidateSlice checks that b is a whole number of valid encodings.
func ValidateSlice[T any, C Codec[T]](b []byte) error {
	var c C
	size := c.Size()
	if size <= 0 {
		return Structuralf("codec %T has non-positive size %d", c, size)
	}
	if len(b)%size != 0 {
		return Structuralf("length %d is not a multiple of element size %d", len(b), size)
	}
	for i := 0; i*size < len(b); i++ {
		if err := c.Validate(b[i*size : (i+1)*size]); err != nil {
			return &ElementError{Index: i, Err: err}
		}
	}
	return nil
}

// Encode serializes vals into a new buffer.
func Encode[T any, C Codec[T]](vals []T) []byte {
	var c C
	size := c.Size()
	buf := make([]byte, len(vals)*size)
	for i, v := range vals {
		c.Encode(buf[i*size:(i+1)*size], v)
	}
	return buf
}

// Append serializes v onto the end of dst.
func Append[T any, C Codec[T]](dst []byte, v T) []byte {
	var c C
	size := c.Size()
	n := len(dst)
	dst = slices.Grow(dst, size)[:n+size]
	c.Encode(dst[n:], v)
	return dst
}
