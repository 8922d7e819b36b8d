// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package ule defines the "unaligned little-endian" contract for fixed-width
// values: types whose canonical encoding is a fixed number of bytes with no
// padding and no alignment requirement, so that arrays of them can be read
// directly out of any byte buffer.
//
// A Codec describes one such type.  Codecs are stateless, zero-size types
// selected by type parameter, which keeps views like Slice free of any
// per-instance configuration:
//
//	s, err := ule.Parse[uint32, ule.Uint32](buf)
//	if err != nil {
//		return err
//	}
//	v, ok := s.Get(3)
//
// Validation happens exactly once, when a Slice is created with Parse.  It
// rejects buffers whose length is not a multiple of the element size
// (ErrStructural) and elements whose bit pattern does not correspond to a
// value of the type (an *ElementError, which matches ErrElement).  Every
// accessor on a validated Slice is then a total function.
//
// The same error taxonomy is shared by the other packages in this module.
package ule
