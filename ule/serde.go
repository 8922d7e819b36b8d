// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ule

import "encoding/json"

// MarshalJSON encodes the slice as a JSON array of its decoded values.
func (s Slice[T, C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToSlice())
}

// UnmarshalJSON replaces s with a newly encoded slice.
func (s *Slice[T, C]) UnmarshalJSON(data []byte) error {
	var vals []T
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	*s = FromValues[T, C](vals)
	return nil
}

// MarshalBinary returns the encoded values.
func (s Slice[T, C]) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), s.b...), nil
}

// UnmarshalBinary validates a copy of data and replaces s with it.
func (s *Slice[T, C]) UnmarshalBinary(data []byte) error {
	parsed, err := Parse[T, C](append([]byte(nil), data...))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
