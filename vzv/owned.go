// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vzv

import (
	"fmt"
)

// Owned is a growable vector that keeps its elements in the same encoding as
// Vec.  It is created with NewOwned or Vec.ToOwned and is never shared with
// the Vec it was copied from.  Owned is not safe for concurrent mutation.
type Owned[T any, C Codec[T]] struct {
	buf []byte
}

// NewOwned returns an empty Owned.
func NewOwned[T any, C Codec[T]]() *Owned[T, C] {
	return &Owned[T, C]{buf: []byte{0, 0, 0, 0}}
}

// Vec returns a read-only view of the current contents.  The view is
// invalidated by the next mutation.
func (o *Owned[T, C]) Vec() Vec[T, C] {
	v := ParseUnchecked[T, C](o.buf)
	v.owned = true
	return v
}

// Len returns the number of elements.
func (o *Owned[T, C]) Len() int {
	return o.Vec().Len()
}

// Get returns element i, or false if i is out of range.
func (o *Owned[T, C]) Get(i int) (T, bool) {
	return o.Vec().Get(i)
}

// Bytes returns the current encoding.
func (o *Owned[T, C]) Bytes() []byte {
	return o.buf
}

// Push appends v.
func (o *Owned[T, C]) Push(v T) error {
	return o.splice(o.Len(), 0, &v)
}

// Insert places v at index i, shifting later elements up.  i may equal Len.
func (o *Owned[T, C]) Insert(i int, v T) error {
	if i < 0 || i > o.Len() {
		return fmt.Errorf("insert index %d out of range (len %d)", i, o.Len())
	}
	return o.splice(i, 0, &v)
}

// Remove deletes element i and returns it.
func (o *Owned[T, C]) Remove(i int) (T, error) {
	var removed T
	if i < 0 || i >= o.Len() {
		return removed, fmt.Errorf("remove index %d out of range (len %d)", i, o.Len())
	}
	var c C
	removed = c.Decode(append([]byte(nil), o.Vec().ElementBytes(i)...))
	return removed, o.splice(i, 1, nil)
}

// Replace overwrites element i with v.
func (o *Owned[T, C]) Replace(i int, v T) error {
	if i < 0 || i >= o.Len() {
		return fmt.Errorf("replace index %d out of range (len %d)", i, o.Len())
	}
	return o.splice(i, 1, &v)
}

// splice removes `remove` elements at i and inserts *insert there if non-nil,
// re-encoding into a fresh buffer.
func (o *Owned[T, C]) splice(i, remove int, insert *T) error {
	cur := o.Vec()
	var c C

	n := cur.Len() - remove
	if insert != nil {
		n++
	}
	elemAt := func(j int) (src []byte, isNew bool) {
		switch {
		case j < i:
			return cur.ElementBytes(j), false
		case insert != nil && j == i:
			return nil, true
		case insert != nil:
			return cur.ElementBytes(j - 1 + remove), false
		default:
			return cur.ElementBytes(j + remove), false
		}
	}

	buf, err := build(n,
		func(j int) int {
			if src, isNew := elemAt(j); !isNew {
				return len(src)
			}
			return c.EncodedLen(*insert)
		},
		func(j int, dst []byte) {
			if src, isNew := elemAt(j); !isNew {
				copy(dst, src)
				return
			}
			c.Encode(dst, *insert)
		},
	)
	if err != nil {
		return err
	}
	o.buf = buf
	return nil
}
