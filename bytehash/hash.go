// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytehash

const (
	// MaxKeys is the largest key set a table can hold.
	MaxKeys = 256

	// PFastMax and QFastMax bound the first pass of the search.
	PFastMax = 95
	QFastMax = 95
	// PRealMax and QRealMax bound the widened second pass.
	PRealMax = 255
	QRealMax = 255

	// MaxL2SearchMisses is the number of backtracks allowed for a single p
	// before moving on to the next one.
	MaxL2SearchMisses = 24
)

// f1 assigns b to one of n buckets.  For p > 0 it is a bijection on bytes
// that folds the high bits down before the modulus.
func f1(b, p byte, n int) int {
	if n == 0 {
		return 0
	}
	if p == 0 {
		return int(b) % n
	}
	x := b ^ p
	x *= p<<1 | 1
	x ^= x >> 5
	x *= 0x9d
	x ^= x >> 4
	return int(x) % n
}

// mix is a fixed bijection on bytes.
func mix(b byte) byte {
	x := b * 0x9d
	x ^= x >> 5
	x *= 0x3b
	x ^= x >> 4
	return x
}

// f2 places b in one of n slots.  The final xor with q means that as q walks
// an aligned power-of-two range at least as large as n, every slot is
// reachable for any single b.
func f2(b, q byte, n int) int {
	if n == 0 {
		return 0
	}
	return int(mix(b)^q) % n
}
