// Copyright 2021 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bitset is a small fixed-length bitmap used as scratch space by the
// perfect hash builders to track which table slots have been claimed.
package bitset

import "math/bits"

// Bitset is an in-memory bitmap that is conceptually similar to []bool, but more memory efficient.
type Bitset struct {
	words  []uint64
	length int
}

// New returns a bitset holding length bits, all initially clear.
func New(length int) *Bitset {
	if length < 0 {
		length = 0
	}
	return &Bitset{
		words:  make([]uint64, (length+63)/64),
		length: length,
	}
}

func split(off int) (word int, mask uint64) {
	return off / 64, 1 << (uint(off) % 64)
}

// Len returns the number of addressable bits.
func (b *Bitset) Len() int {
	return b.length
}

// Set sets the bit at position `off` to 1.  Out of range offsets are ignored.
func (b *Bitset) Set(off int) {
	if off < 0 || off >= b.length {
		return
	}
	w, m := split(off)
	b.words[w] |= m
}

// Clear sets the bit at position `off` to 0.  Out of range offsets are ignored.
func (b *Bitset) Clear(off int) {
	if off < 0 || off >= b.length {
		return
	}
	w, m := split(off)
	b.words[w] &^= m
}

// IsSet returns true if the bit at position `off` is 1.
func (b *Bitset) IsSet(off int) bool {
	if off < 0 || off >= b.length {
		return false
	}
	w, m := split(off)
	return b.words[w]&m != 0
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Reset clears every bit, keeping the allocation for reuse.
func (b *Bitset) Reset() {
	clear(b.words)
}
