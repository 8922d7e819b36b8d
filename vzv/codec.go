// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vzv

import (
	"errors"
	"unicode/utf8"

	"github.com/bpowers/zerovec/internal/unsafestring"
	"github.com/bpowers/zerovec/ule"
)

// Codec describes a variable-length element type.  Like ule.Codec,
// implementations are stateless and selected by type parameter.
type Codec[T any] interface {
	// Validate checks that b is the encoding of exactly one value.
	Validate(b []byte) error
	// Decode reads a value from b, which must already be valid.  The result
	// may alias b.
	Decode(b []byte) T
	// EncodedLen returns the number of bytes Encode will write for v.
	EncodedLen(v T) int
	// Encode writes v into dst[:EncodedLen(v)].
	Encode(dst []byte, v T)
}

var errInvalidUTF8 = errors.New("invalid UTF-8")

// String stores UTF-8 text.  Decoded strings share memory with the vector.
type String struct{}

func (String) Validate(b []byte) error {
	if !utf8.Valid(b) {
		return errInvalidUTF8
	}
	return nil
}

func (String) Decode(b []byte) string      { return unsafestring.FromBytes(b) }
func (String) EncodedLen(v string) int     { return len(v) }
func (String) Encode(dst []byte, v string) { copy(dst, v) }

// Bytes stores raw byte strings.  Decoded slices alias the vector and must
// not be written to.
type Bytes struct{}

func (Bytes) Validate([]byte) error       { return nil }
func (Bytes) Decode(b []byte) []byte      { return b[:len(b):len(b)] }
func (Bytes) EncodedLen(v []byte) int     { return len(v) }
func (Bytes) Encode(dst []byte, v []byte) { copy(dst, v) }

// FixedSlice stores a run of fixed-width values per element.
type FixedSlice[T any, C ule.Codec[T]] struct{}

func (FixedSlice[T, C]) Validate(b []byte) error {
	return ule.ValidateSlice[T, C](b)
}

func (FixedSlice[T, C]) Decode(b []byte) ule.Slice[T, C] {
	return ule.FromBytesUnchecked[T, C](b)
}

func (FixedSlice[T, C]) EncodedLen(v ule.Slice[T, C]) int {
	return len(v.Bytes())
}

func (FixedSlice[T, C]) Encode(dst []byte, v ule.Slice[T, C]) {
	copy(dst, v.Bytes())
}

// Nested stores a whole vector per element.
type Nested[T any, C Codec[T]] struct{}

func (Nested[T, C]) Validate(b []byte) error {
	_, err := Parse[T, C](b)
	return err
}

func (Nested[T, C]) Decode(b []byte) Vec[T, C] {
	return ParseUnchecked[T, C](b)
}

func (Nested[T, C]) EncodedLen(v Vec[T, C]) int {
	return len(v.Bytes())
}

func (Nested[T, C]) Encode(dst []byte, v Vec[T, C]) {
	copy(dst, v.Bytes())
}
