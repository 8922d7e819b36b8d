// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zeromap

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-farm"

	"github.com/bpowers/zerovec/internal/ondisk"
	"github.com/bpowers/zerovec/internal/unsafestring"
	"github.com/bpowers/zerovec/ule"
	"github.com/bpowers/zerovec/vzv"
)

// Map is a read-only view of a map buffer.  The zero value is an empty map.
// A Map is safe for concurrent use.
type Map[V any, VC vzv.Codec[V]] struct {
	buf        []byte
	level0     ondisk.Uint32s // power of 2 size
	level0Mask uint64         // len(level0) - 1
	level1     ondisk.Uint32s // power of 2 size >= len(keys)
	level1Mask uint64         // len(level1) - 1
	keys       vzv.Vec[[]byte, vzv.Bytes]
	values     vzv.Vec[V, VC]
}

func isPow2(n uint32) bool {
	return n != 0 && n&(n-1) == 0
}

// Parse validates buf and returns a Map reading from it.  buf must not be
// modified while the Map is in use.
func Parse[V any, VC vzv.Codec[V]](buf []byte) (Map[V, VC], error) {
	var h header
	if err := h.UnmarshalBytes(buf); err != nil {
		return Map[V, VC]{}, err
	}
	if got := uint64(len(buf) - headerSize); got != h.bodyLen() {
		return Map[V, VC]{}, ule.Structuralf("body is %d bytes, header describes %d", got, h.bodyLen())
	}
	if !isPow2(h.level0Len) || !isPow2(h.level1Len) {
		return Map[V, VC]{}, ule.Structuralf("level sizes %d and %d must be powers of two", h.level0Len, h.level1Len)
	}

	level0Size, level1Size := 4*uint64(h.level0Len), 4*uint64(h.level1Len)
	rest := buf[headerSize:]
	level0 := rest[:level0Size]
	rest = rest[level0Size:]
	level1 := rest[:level1Size]
	rest = rest[level1Size:]
	keysBuf := rest[:h.keysLen]
	valuesBuf := rest[h.keysLen:]

	keys, err := vzv.Parse[[]byte, vzv.Bytes](keysBuf)
	if err != nil {
		return Map[V, VC]{}, fmt.Errorf("keys: %w", err)
	}
	values, err := vzv.Parse[V, VC](valuesBuf)
	if err != nil {
		return Map[V, VC]{}, fmt.Errorf("values: %w", err)
	}
	if keys.Len() != values.Len() {
		return Map[V, VC]{}, ule.Structuralf("%d keys but %d values", keys.Len(), values.Len())
	}
	if keys.Len() > int(h.level1Len) {
		return Map[V, VC]{}, ule.Structuralf("%d keys do not fit %d slots", keys.Len(), h.level1Len)
	}

	m := Map[V, VC]{
		buf:        buf,
		level0:     ondisk.Uint32s(level0),
		level0Mask: uint64(h.level0Len - 1),
		level1:     ondisk.Uint32s(level1),
		level1Mask: uint64(h.level1Len - 1),
		keys:       keys,
		values:     values,
	}
	// every key must find itself; this also rules out duplicates
	for i, key := range keys.All() {
		if j, ok := m.Index(key); !ok || j != i {
			return Map[V, VC]{}, ule.Structuralf("key %d (%q) does not hash to its entry", i, key)
		}
	}
	return m, nil
}

// Len returns the number of entries.
func (m Map[V, VC]) Len() int {
	return m.keys.Len()
}

// Bytes returns the encoded map.
func (m Map[V, VC]) Bytes() []byte {
	return m.buf
}

// Index returns the entry number of key.
func (m Map[V, VC]) Index(key []byte) (int, bool) {
	if m.keys.Len() == 0 {
		return 0, false
	}
	// first we hash the key with a fixed seed, giving us the seed that
	// perfectly hashes its bucket into the second level
	seed := m.level0.Get(int(xxhash.Sum64(key) & m.level0Mask))
	// the second level holds entry numbers; unused slots point at entry 0,
	// so the stored key is always checked
	i := int(m.level1.Get(int(farm.Hash64WithSeed(key, uint64(seed)) & m.level1Mask)))
	if i >= m.keys.Len() || !bytes.Equal(m.keys.At(i), key) {
		return 0, false
	}
	return i, true
}

// Get returns the value stored for key.
func (m Map[V, VC]) Get(key []byte) (V, bool) {
	i, ok := m.Index(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.values.At(i), true
}

// GetString is like Get but takes a string key without copying it.
func (m Map[V, VC]) GetString(key string) (V, bool) {
	return m.Get(unsafestring.ToBytes(key))
}

// All iterates over the entries in the order they were built.  Keys share
// memory with the map.
func (m Map[V, VC]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, key := range m.keys.All() {
			if !yield(unsafestring.FromBytes(key), m.values.At(i)) {
				return
			}
		}
	}
}

// Keys returns the keys as a vector.
func (m Map[V, VC]) Keys() vzv.Vec[[]byte, vzv.Bytes] {
	return m.keys
}

// Values returns the values as a vector, in entry order.
func (m Map[V, VC]) Values() vzv.Vec[V, VC] {
	return m.values
}
