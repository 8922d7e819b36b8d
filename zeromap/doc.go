// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package zeromap implements a read-only map from byte-string keys to values,
// stored in a single buffer that can be read in place.
//
// Keys are indexed with a minimal perfect hash built with the "hash, displace,
// and compress" algorithm (http://cmph.sourceforge.net/papers/esa09.pdf): a
// first-level hash picks a bucket, whose seed re-hashes the key into a slot of
// the second level.  The slot names an entry, and the entry's stored key is
// compared against the query so absent keys are reported as missing.
//
//	header   [u32 magic][u32 version][u32 level0Len][u32 level1Len][u32 keysLen][u32 valuesLen]
//	level0   level0Len × u32 seeds
//	level1   level1Len × u32 entry indices
//	keys     vzv vector of keys
//	values   vzv vector of values
package zeromap
