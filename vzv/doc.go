// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package vzv implements a zero-copy vector of variable-length elements.
//
// A vector of N elements is laid out as:
//
//	 0    1    2    3    4 ...
//	+----+----+----+----+-------------------------+----------------------+
//	| count (u32 LE)    | offsets[1..N-1] (u32 LE) | element bytes...     |
//	+----+----+----+----+-------------------------+----------------------+
//
// Offsets are measured from the start of the element region.  The first
// element implicitly starts at 0 and the last implicitly ends at the end of
// the buffer, so element i spans [offsets[i], offsets[i+1]).  An empty vector
// is just a zero count.  For example ["foo", "bar", "baz"] encodes as
//
//	03 00 00 00  03 00 00 00  06 00 00 00  'f' 'o' 'o' 'b' 'a' 'r' 'b' 'a' 'z'
//
// Parse validates a buffer once (header shape, offset bounds and
// monotonicity, then every element through its Codec) and returns a Vec that
// borrows it.  Reads from a Vec never allocate.  Vecs are immutable; ToOwned
// and ToSlice are the explicit, one-way conversions to mutable forms.
package vzv
