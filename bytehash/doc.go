// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bytehash builds and queries perfect hash tables over sets of at most
// 256 distinct bytes.  Tries use these tables as compact dispatch nodes: given
// the next input byte, the table answers in O(1) which child (if any) it
// selects, without storing the keys in any searchable order.
//
// A table for N keys is 2N+1 bytes:
//
//	+---+------------------+------------------------+
//	| p | q[0] ... q[N-1]  | key[0] ... key[N-1]    |
//	+---+------------------+------------------------+
//
// Lookup of byte b computes
//
//	bucket = f1(b, p, N)
//	slot   = f2(b, q[bucket], N)
//
// and reports slot if key[slot] == b.  The parameters p and q are found by a
// bucketed, backtracking search in the style of "Hash, displace, and compress"
// (http://cmph.sourceforge.net/papers/esa09.pdf).  The search is
// deterministic, so building the same key set twice gives identical bytes.
package bytehash
