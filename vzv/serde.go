// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vzv

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// MaxFrameLen bounds the length prefix ReadFrom will accept.
const MaxFrameLen = 1 << 30

// Human-readable formats see a vector as a sequence of decoded elements.

// MarshalJSON encodes the vector as a JSON array.
func (v Vec[T, C]) MarshalJSON() ([]byte, error) {
	elems := make([]T, 0, v.count)
	for _, e := range v.All() {
		elems = append(elems, e)
	}
	return json.Marshal(elems)
}

// UnmarshalJSON replaces v with an owned vector built from a JSON array.
func (v *Vec[T, C]) UnmarshalJSON(data []byte) error {
	var elems []T
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	return v.setFromElements(elems)
}

// MarshalYAML encodes the vector as a YAML sequence.
func (v Vec[T, C]) MarshalYAML() (any, error) {
	elems := make([]T, 0, v.count)
	for _, e := range v.All() {
		elems = append(elems, e)
	}
	return elems, nil
}

// UnmarshalYAML replaces v with an owned vector built from a YAML sequence.
func (v *Vec[T, C]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a sequence, got %s", node.Line, node.ShortTag())
	}
	var elems []T
	if err := node.Decode(&elems); err != nil {
		return err
	}
	return v.setFromElements(elems)
}

func (v *Vec[T, C]) setFromElements(elems []T) error {
	buf, err := Encode[T, C](elems)
	if err != nil {
		return err
	}
	// the codec may not accept everything it can encode (e.g. invalid UTF-8)
	parsed, err := Parse[T, C](buf)
	if err != nil {
		return err
	}
	parsed.owned = true
	*v = parsed
	return nil
}

// Binary formats see a vector as its raw buffer.

// MarshalBinary returns a copy of the encoded vector.
func (v Vec[T, C]) MarshalBinary() ([]byte, error) {
	return bytes.Clone(v.Bytes()), nil
}

// AppendBinary appends the encoded vector to b.
func (v Vec[T, C]) AppendBinary(b []byte) ([]byte, error) {
	return append(b, v.Bytes()...), nil
}

// UnmarshalBinary validates a copy of data and replaces v with it.
func (v *Vec[T, C]) UnmarshalBinary(data []byte) error {
	parsed, err := DecodeBinary[T, C](data, false)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// DecodeBinary parses src.  When the caller can lend src for the lifetime of
// the result (borrowed is true) the vector aliases it with no copy; otherwise
// the vector gets its own copy.
func DecodeBinary[T any, C Codec[T]](src []byte, borrowed bool) (Vec[T, C], error) {
	if !borrowed {
		src = bytes.Clone(src)
	}
	v, err := Parse[T, C](src)
	if err != nil {
		return Vec[T, C]{}, err
	}
	v.owned = !borrowed
	return v, nil
}

// WriteTo writes the vector prefixed by its length as a u32 LE.
func (v Vec[T, C]) WriteTo(w io.Writer) (int64, error) {
	buf := v.Bytes()
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(buf)))
	n, err := w.Write(prefix[:])
	if err != nil {
		return int64(n), fmt.Errorf("write length: %w", err)
	}
	m, err := w.Write(buf)
	if err != nil {
		return int64(n + m), fmt.Errorf("write vector: %w", err)
	}
	return int64(n + m), nil
}

// ReadFrom reads one length-prefixed vector written by WriteTo and replaces v
// with it.
func (v *Vec[T, C]) ReadFrom(r io.Reader) (int64, error) {
	var prefix [4]byte
	n, err := io.ReadFull(r, prefix[:])
	if err != nil {
		return int64(n), fmt.Errorf("read length: %w", err)
	}
	size := binary.LittleEndian.Uint32(prefix[:])
	if size > MaxFrameLen {
		return int64(n), fmt.Errorf("%w: frame of %d bytes", ErrTooLarge, size)
	}
	buf := make([]byte, size)
	m, err := io.ReadFull(r, buf)
	if err != nil {
		return int64(n + m), fmt.Errorf("read vector: %w", err)
	}
	parsed, err := DecodeBinary[T, C](buf, true)
	if err != nil {
		return int64(n + m), err
	}
	// buf is ours; nobody else holds it
	parsed.owned = true
	*v = parsed
	return int64(n + m), nil
}
