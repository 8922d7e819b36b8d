// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytehash

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildAll builds a table for each key set in parallel.  The builds share no
// state; ctx is checked before each one starts, not during a search.  The
// first error cancels the remaining builds.
func BuildAll(ctx context.Context, keySets [][]byte, opts ...Option) ([][]byte, error) {
	out := make([][]byte, len(keySets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, keys := range keySets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := Build(keys, opts...)
			if err != nil {
				return fmt.Errorf("key set %d: %w", i, err)
			}
			out[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
