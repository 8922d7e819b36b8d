// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytehash

import (
	"github.com/bpowers/zerovec/internal/bitset"
	"github.com/bpowers/zerovec/ule"
)

// Params are the tunables discovered by the search.
type Params struct {
	P byte
	Q []byte
}

// Table is a validated, read-only view of a perfect hash table buffer.  The
// zero value is an empty table.
type Table struct {
	buf []byte
}

// Parse checks that buf is a well-formed table: an odd length of at most
// 2*MaxKeys+1 bytes, and permuted keys that each hash to their own slot.
func Parse(buf []byte) (Table, error) {
	if len(buf) == 0 {
		return Table{}, ule.Structuralf("empty perfect hash buffer")
	}
	if len(buf)%2 != 1 {
		return Table{}, ule.Structuralf("perfect hash buffer length %d is not 2N+1", len(buf))
	}
	n := len(buf) / 2
	if n > MaxKeys {
		return Table{}, ule.Structuralf("perfect hash table holds %d keys (max %d)", n, MaxKeys)
	}
	t := Table{buf: buf}
	seen := bitset.New(MaxKeys)
	for i, k := range t.Keys() {
		if seen.IsSet(int(k)) {
			return Table{}, ule.Structuralf("key %#02x appears twice", k)
		}
		seen.Set(int(k))
		if slot, ok := t.Lookup(k); !ok || slot != i {
			return Table{}, ule.Structuralf("key %#02x at slot %d does not hash to itself", k, i)
		}
	}
	return t, nil
}

// FromBytesUnchecked wraps a buffer produced by Build without validating it.
func FromBytesUnchecked(buf []byte) Table {
	return Table{buf: buf}
}

// Len returns the number of keys in the table.
func (t Table) Len() int {
	return len(t.buf) / 2
}

// Lookup returns the slot of b, or false if b is not in the table.
func (t Table) Lookup(b byte) (int, bool) {
	return Lookup(t.buf, b)
}

// Keys returns the keys in slot order.  The result aliases the table.
func (t Table) Keys() []byte {
	n := t.Len()
	if n == 0 {
		return nil
	}
	return t.buf[1+n : 1+2*n]
}

// Params returns the hash parameters stored in the table.
func (t Table) Params() Params {
	n := t.Len()
	if len(t.buf) == 0 {
		return Params{}
	}
	return Params{P: t.buf[0], Q: t.buf[1 : 1+n]}
}

// Bytes returns the underlying buffer.
func (t Table) Bytes() []byte {
	return t.buf
}

// Lookup returns the slot of b in the table buffer buf, or false if b is not
// present.  It does not allocate.  buf must be 2N+1 bytes long; a buffer of
// any other length is treated as empty.
func Lookup(buf []byte, b byte) (int, bool) {
	if len(buf)%2 != 1 {
		return -1, false
	}
	n := len(buf) / 2
	if n == 0 {
		return -1, false
	}
	p := buf[0]
	q := buf[1+f1(b, p, n)]
	slot := f2(b, q, n)
	if buf[1+n+slot] != b {
		return -1, false
	}
	return slot, true
}
