// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ule

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Uint8 is the Codec for uint8.
type Uint8 struct{}

func (Uint8) Size() int                  { return 1 }
func (Uint8) Encode(dst []byte, v uint8) { dst[0] = v }
func (Uint8) Decode(src []byte) uint8    { return src[0] }
func (Uint8) Validate(src []byte) error  { return checkLen(src, 1) }

// Uint16 is the Codec for uint16.
type Uint16 struct{}

func (Uint16) Size() int                   { return 2 }
func (Uint16) Encode(dst []byte, v uint16) { binary.LittleEndian.PutUint16(dst, v) }
func (Uint16) Decode(src []byte) uint16    { return binary.LittleEndian.Uint16(src) }
func (Uint16) Validate(src []byte) error   { return checkLen(src, 2) }

// Uint32 is the Codec for uint32.
type Uint32 struct{}

func (Uint32) Size() int                   { return 4 }
func (Uint32) Encode(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func (Uint32) Decode(src []byte) uint32    { return binary.LittleEndian.Uint32(src) }
func (Uint32) Validate(src []byte) error   { return checkLen(src, 4) }

// Uint64 is the Codec for uint64.
type Uint64 struct{}

func (Uint64) Size() int                   { return 8 }
func (Uint64) Encode(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }
func (Uint64) Decode(src []byte) uint64    { return binary.LittleEndian.Uint64(src) }
func (Uint64) Validate(src []byte) error   { return checkLen(src, 8) }

// Int16 is the Codec for int16, stored two's complement.
type Int16 struct{}

func (Int16) Size() int                  { return 2 }
func (Int16) Encode(dst []byte, v int16) { binary.LittleEndian.PutUint16(dst, uint16(v)) }
func (Int16) Decode(src []byte) int16    { return int16(binary.LittleEndian.Uint16(src)) }
func (Int16) Validate(src []byte) error  { return checkLen(src, 2) }

// Int32 is the Codec for int32, stored two's complement.
type Int32 struct{}

func (Int32) Size() int                  { return 4 }
func (Int32) Encode(dst []byte, v int32) { binary.LittleEndian.PutUint32(dst, uint32(v)) }
func (Int32) Decode(src []byte) int32    { return int32(binary.LittleEndian.Uint32(src)) }
func (Int32) Validate(src []byte) error  { return checkLen(src, 4) }

// Int64 is the Codec for int64, stored two's complement.
type Int64 struct{}

func (Int64) Size() int                  { return 8 }
func (Int64) Encode(dst []byte, v int64) { binary.LittleEndian.PutUint64(dst, uint64(v)) }
func (Int64) Decode(src []byte) int64    { return int64(binary.LittleEndian.Uint64(src)) }
func (Int64) Validate(src []byte) error  { return checkLen(src, 8) }

// Bool is the Codec for bool.  Only 0 and 1 are valid encodings, so that byte
// equality and value equality coincide.
type Bool struct{}

func (Bool) Size() int { return 1 }

func (Bool) Encode(dst []byte, v bool) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
}

func (Bool) Decode(src []byte) bool { return src[0] == 1 }

func (Bool) Validate(src []byte) error {
	if err := checkLen(src, 1); err != nil {
		return err
	}
	if src[0] > 1 {
		return fmt.Errorf("bool byte %#02x is not 0 or 1", src[0])
	}
	return nil
}

// Rune is the Codec for Unicode scalar values, packed into 3 little-endian
// bytes.  Surrogates and values above U+10FFFF are rejected.
type Rune struct{}

func (Rune) Size() int { return 3 }

func (Rune) Encode(dst []byte, v rune) {
	_ = dst[2]
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}

func (Rune) Decode(src []byte) rune {
	_ = src[2]
	return rune(src[0]) | rune(src[1])<<8 | rune(src[2])<<16
}

func (r Rune) Validate(src []byte) error {
	if err := checkLen(src, 3); err != nil {
		return err
	}
	if v := r.Decode(src); !utf8.ValidRune(v) {
		return fmt.Errorf("%#x is not a Unicode scalar value", v)
	}
	return nil
}

// Tuple is a pair of fixed-width values.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// TupleCodec encodes a Tuple as the concatenation of its fields.
type TupleCodec[A, B any, CA Codec[A], CB Codec[B]] struct{}

func (TupleCodec[A, B, CA, CB]) Size() int {
	var ca CA
	var cb CB
	return ca.Size() + cb.Size()
}

func (TupleCodec[A, B, CA, CB]) Encode(dst []byte, v Tuple[A, B]) {
	var ca CA
	var cb CB
	n := ca.Size()
	ca.Encode(dst[:n], v.First)
	cb.Encode(dst[n:n+cb.Size()], v.Second)
}

func (TupleCodec[A, B, CA, CB]) Decode(src []byte) Tuple[A, B] {
	var ca CA
	var cb CB
	n := ca.Size()
	return Tuple[A, B]{
		First:  ca.Decode(src[:n]),
		Second: cb.Decode(src[n : n+cb.Size()]),
	}
}

func (c TupleCodec[A, B, CA, CB]) Validate(src []byte) error {
	var ca CA
	var cb CB
	if err := checkLen(src, c.Size()); err != nil {
		return err
	}
	n := ca.Size()
	if err := ca.Validate(src[:n]); err != nil {
		return fmt.Errorf("first: %w", err)
	}
	if err := cb.Validate(src[n:]); err != nil {
		return fmt.Errorf("second: %w", err)
	}
	return nil
}

func checkLen(src []byte, want int) error {
	if len(src) != want {
		return fmt.Errorf("got %d bytes, want %d", len(src), want)
	}
	return nil
}
