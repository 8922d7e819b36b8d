// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package ule

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural is matched by errors describing a malformed container:
	// bad lengths, headers, or offsets.
	ErrStructural = errors.New("malformed buffer")
	// ErrElement is matched by errors describing an individual element whose
	// bytes do not satisfy its type's contract.
	ErrElement = errors.New("invalid element")
)

// Structuralf returns an error wrapping ErrStructural.
func Structuralf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...))
}

// ElementError reports that the element at Index failed validation.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s %d: %v", ErrElement, e.Index, e.Err)
}

// Unwrap allows errors.Is to match both ErrElement and the underlying cause.
func (e *ElementError) Unwrap() []error {
	return []error{ErrElement, e.Err}
}
