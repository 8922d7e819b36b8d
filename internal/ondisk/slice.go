// Copyright 2021 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package ondisk contains views over little-endian integer arrays that live
// inside larger serialized buffers.
package ondisk

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Uint32s is a read-only view into a byte array as if it was []uint32.
type Uint32s []byte

// Len returns the number of whole uint32 values in the view.
func (s Uint32s) Len() int {
	return len(s) / 4
}

// Get returns the value at index i.  It panics if i is out of range, like a
// slice index would.
func (s Uint32s) Get(i int) uint32 {
	return binary.LittleEndian.Uint32(s[i*4 : i*4+4])
}

// Words returns the contents as a []uint32.  When the host is little-endian
// and the data is 4-byte aligned the result aliases s and must not be written
// to; otherwise the values are decoded into a new slice.
func (s Uint32s) Words() (words []uint32, aliased bool) {
	n := s.Len()
	if n == 0 {
		return nil, false
	}
	p := unsafe.Pointer(unsafe.SliceData(s))
	if !cpu.IsBigEndian && uintptr(p)%unsafe.Alignof(uint32(0)) == 0 {
		return unsafe.Slice((*uint32)(p), n), true
	}
	words = make([]uint32, n)
	for i := range words {
		words[i] = s.Get(i)
	}
	return words, false
}

// MutableUint32s is a writable view into a byte array as if it was []uint32.
type MutableUint32s []byte

// Len returns the number of whole uint32 values in the view.
func (s MutableUint32s) Len() int {
	return len(s) / 4
}

// Set stores value at index i.
func (s MutableUint32s) Set(i int, value uint32) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("offset (%d) out of range (len %d)", i, s.Len())
	}
	binary.LittleEndian.PutUint32(s[i*4:i*4+4], value)
	return nil
}
