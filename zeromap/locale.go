// Copyright 2023 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zeromap

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/bpowers/zerovec/vzv"
)

// BuildLocaleMap encodes m after canonicalizing its keys as BCP 47 language
// tags, so "en_us" and "EN-US" both become "en-US".  Keys that are not
// well-formed tags, or that collide once canonicalized, are errors.
func BuildLocaleMap[V any, VC vzv.Codec[V]](m map[string]V, opts ...Option) ([]byte, error) {
	canonical := make(map[string]V, len(m))
	from := make(map[string]string, len(m))
	for k, v := range m {
		tag, err := language.Parse(k)
		if err != nil {
			return nil, fmt.Errorf("locale key %q: %w", k, err)
		}
		id := tag.String()
		if prev, ok := from[id]; ok {
			return nil, fmt.Errorf("%w: %q and %q are both %s", ErrDuplicateKey, prev, k, id)
		}
		from[id] = k
		canonical[id] = v
	}
	return BuildMap[V, VC](canonical, opts...)
}

// GetLocale returns the value stored for tag in a map built by
// BuildLocaleMap.
func (m Map[V, VC]) GetLocale(tag language.Tag) (V, bool) {
	return m.GetString(tag.String())
}
