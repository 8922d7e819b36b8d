// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vzv

import (
	"bytes"
	"iter"

	"github.com/bpowers/zerovec/internal/ondisk"
	"github.com/bpowers/zerovec/ule"
)

const (
	countSize  = 4
	offsetSize = 4
)

// emptyEncoding is the canonical encoding of a vector with no elements.
var emptyEncoding = []byte{0, 0, 0, 0}

// Vec is a read-only vector of variable-length elements backed by a single
// byte buffer.  A Vec either borrows a caller's buffer (from Parse) or owns
// one it allocated (from Encode and the unmarshalers); both are read the same
// way.  The zero value is an empty vector.
type Vec[T any, C Codec[T]] struct {
	buf     []byte
	offsets ondisk.Uint32s
	data    []byte
	count   int
	owned   bool
}

func headerLen(count uint64) uint64 {
	if count == 0 {
		return countSize
	}
	return countSize + (count-1)*offsetSize
}

// Parse validates buf and returns a Vec borrowing it.  Malformed headers and
// offsets produce an error matching ule.ErrStructural; an element rejected by
// its Codec produces a *ule.ElementError.  buf must not be modified while the
// Vec is reachable.
func Parse[T any, C Codec[T]](buf []byte) (Vec[T, C], error) {
	v, err := parseHeader[T, C](buf)
	if err != nil {
		return Vec[T, C]{}, err
	}
	var c C
	for i := 0; i < v.count; i++ {
		if err := c.Validate(v.ElementBytes(i)); err != nil {
			return Vec[T, C]{}, &ule.ElementError{Index: i, Err: err}
		}
	}
	return v, nil
}

// ParseUnchecked wraps a buffer that is already known to be valid, such as
// one produced by Encode and embedded in the binary.  It panics if the header
// is corrupt; elements are not validated.
func ParseUnchecked[T any, C Codec[T]](buf []byte) Vec[T, C] {
	if len(buf) == 0 {
		return Vec[T, C]{}
	}
	count := int(ondisk.Uint32s(buf[:countSize]).Get(0))
	hlen := int(headerLen(uint64(count)))
	return Vec[T, C]{
		buf:     buf,
		offsets: ondisk.Uint32s(buf[countSize:hlen]),
		data:    buf[hlen:],
		count:   count,
	}
}

// parseHeader checks everything but the elements themselves.
func parseHeader[T any, C Codec[T]](buf []byte) (Vec[T, C], error) {
	if len(buf) == 0 {
		return Vec[T, C]{}, nil
	}
	if len(buf) < countSize {
		return Vec[T, C]{}, ule.Structuralf("buffer of %d bytes is too short for a count", len(buf))
	}
	count := uint64(ondisk.Uint32s(buf[:countSize]).Get(0))
	hlen := headerLen(count)
	if hlen > uint64(len(buf)) {
		return Vec[T, C]{}, ule.Structuralf("count %d needs a %d byte header, buffer has %d bytes", count, hlen, len(buf))
	}
	if count == 0 && len(buf) != countSize {
		return Vec[T, C]{}, ule.Structuralf("empty vector has %d trailing bytes", len(buf)-countSize)
	}

	offsets := ondisk.Uint32s(buf[countSize:hlen])
	data := buf[hlen:]
	words, _ := offsets.Words()
	prev := uint32(0)
	for i, off := range words {
		if off < prev {
			return Vec[T, C]{}, ule.Structuralf("offset %d (%d) is less than the previous offset (%d)", i+1, off, prev)
		}
		if uint64(off) > uint64(len(data)) {
			return Vec[T, C]{}, ule.Structuralf("offset %d (%d) is beyond the %d byte element region", i+1, off, len(data))
		}
		prev = off
	}

	return Vec[T, C]{
		buf:     buf,
		offsets: offsets,
		data:    data,
		count:   int(count),
	}, nil
}

// Len returns the number of elements.
func (v Vec[T, C]) Len() int {
	return v.count
}

// IsEmpty reports whether the vector has no elements.
func (v Vec[T, C]) IsEmpty() bool {
	return v.count == 0
}

// IsBorrowed reports whether the vector reads from a caller-provided buffer
// rather than one it allocated itself.
func (v Vec[T, C]) IsBorrowed() bool {
	return !v.owned && v.buf != nil
}

// Bytes returns the encoded vector.  The result must not be modified.
func (v Vec[T, C]) Bytes() []byte {
	if v.buf == nil {
		return emptyEncoding
	}
	return v.buf
}

func (v Vec[T, C]) bounds(i int) (start, end int) {
	if i > 0 {
		start = int(v.offsets.Get(i - 1))
	}
	if i < v.count-1 {
		end = int(v.offsets.Get(i))
	} else {
		end = len(v.data)
	}
	return start, end
}

// ElementBytes returns the encoded bytes of element i.  It panics if i is out
// of range.
func (v Vec[T, C]) ElementBytes(i int) []byte {
	if i < 0 || i >= v.count {
		panic("vzv: index out of range")
	}
	start, end := v.bounds(i)
	return v.data[start:end:end]
}

// Get returns element i, or false if i is out of range.  It does not
// allocate.
func (v Vec[T, C]) Get(i int) (T, bool) {
	if i < 0 || i >= v.count {
		var zero T
		return zero, false
	}
	return v.At(i), true
}

// At returns element i and panics if it is out of range.
func (v Vec[T, C]) At(i int) T {
	var c C
	return c.Decode(v.ElementBytes(i))
}

// All iterates over the elements in order.  The sequence can be ranged over
// any number of times.
func (v Vec[T, C]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.count; i++ {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

// Search finds target in a vector sorted by cmp, returning its index or the
// position where it would be inserted.
func (v Vec[T, C]) Search(target T, cmp func(T, T) int) (int, bool) {
	lo, hi := 0, v.count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(v.At(mid), target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, lo < v.count && cmp(v.At(lo), target) == 0
}

// ToSlice decodes every element into a new slice.  The elements are decoded
// from a private copy of the buffer, so they never alias a borrowed input.
func (v Vec[T, C]) ToSlice() []T {
	out := make([]T, v.count)
	if v.count == 0 {
		return out
	}
	private := ParseUnchecked[T, C](bytes.Clone(v.buf))
	for i := range out {
		out[i] = private.At(i)
	}
	return out
}

// ToOwned copies the vector into a new, mutable Owned.
func (v Vec[T, C]) ToOwned() *Owned[T, C] {
	return &Owned[T, C]{buf: bytes.Clone(v.Bytes())}
}
