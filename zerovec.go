// Copyright 2021 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package zerovec provides byte layouts for immutable data that can be read
// in place, without deserializing into heap objects.
//
// The building blocks live in subpackages: ule for fixed-width values, vzv for
// vectors of variable-length values, bytehash for perfect hash tables over
// small byte key sets, and zeromap for string-keyed maps.  This package wraps
// their most common uses.
package zerovec

import (
	"github.com/bpowers/zerovec/bytehash"
	"github.com/bpowers/zerovec/ule"
	"github.com/bpowers/zerovec/vzv"
)

var (
	// ErrStructural matches errors for buffers whose length, header, or
	// offsets are inconsistent.
	ErrStructural = ule.ErrStructural
	// ErrElement matches errors for buffers with a well-formed layout holding
	// an invalid element.
	ErrElement = ule.ErrElement
	// ErrConstructionFailure matches errors for key sets no perfect hash
	// could be found for.
	ErrConstructionFailure = bytehash.ErrConstructionFailure
)

// StringVector is a vector of strings read in place.
type StringVector = vzv.Vec[string, vzv.String]

// BuildVariableLengthVector encodes elems as a vector of strings.
func BuildVariableLengthVector(elems []string) ([]byte, error) {
	return vzv.Encode[string, vzv.String](elems)
}

// ParseVariableLengthVector validates buf and returns a vector that reads
// from it without copying.
func ParseVariableLengthVector(buf []byte) (StringVector, error) {
	return vzv.Parse[string, vzv.String](buf)
}

// BuildPerfectHash finds a perfect hash for keys and returns the encoded
// table.
func BuildPerfectHash(keys []byte, opts ...bytehash.Option) ([]byte, error) {
	return bytehash.Build(keys, opts...)
}

// PerfectHashLookup returns the slot of b in an encoded table, or false if b
// is not a key.  Malformed tables report every byte as absent.
func PerfectHashLookup(buf []byte, b byte) (int, bool) {
	return bytehash.Lookup(buf, b)
}
