// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package zeromap

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math/bits"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-farm"

	"github.com/bpowers/zerovec/internal/bitset"
	"github.com/bpowers/zerovec/internal/unsafestring"
	"github.com/bpowers/zerovec/ule"
	"github.com/bpowers/zerovec/vzv"
)

const maxEntries = (1 << 31) - 1

var (
	// ErrDuplicateKey is returned when two entries share a key.
	ErrDuplicateKey = errors.New("duplicate keys aren't supported")
	// ErrTooManyEntries is returned when the entry count does not fit the
	// format's u32 fields.
	ErrTooManyEntries = errors.New("too many entries")
	// ErrSeedExhausted is returned when some bucket has no collision-free
	// level-1 seed.
	ErrSeedExhausted = errors.New("couldn't find 32-bit seed")
)

// Entry is a key and its value.
type Entry[V any] struct {
	Key   string
	Value V
}

// Option configures Build.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	maxSeed uint32
}

// WithLogger sets an optional logger for the builder to report progress.  If
// not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func withMaxSeed(seed uint32) Option {
	return func(opts *options) {
		opts.maxSeed = seed
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxSeed: maxUint32 - 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// nextPow2 returns the next highest power of two above a given number.
func nextPow2(n int) int {
	return 1 << (32 - bits.LeadingZeros32(uint32(n)))
}

// Build encodes entries as a map buffer.  Entries keep their order: the i'th
// entry is the i'th element of All.
func Build[V any, VC vzv.Codec[V]](entries []Entry[V], opts ...Option) ([]byte, error) {
	o := newOptions(opts)

	if len(entries) > maxEntries {
		return nil, fmt.Errorf("%w: we only support %d entries (%d asked for)", ErrTooManyEntries, maxEntries, len(entries))
	}

	keys := make([][]byte, len(entries))
	values := make([]V, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if _, ok := seen[e.Key]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, e.Key)
		}
		seen[e.Key] = struct{}{}
		keys[i] = unsafestring.ToBytes(e.Key)
		values[i] = e.Value
	}

	level0, level1, err := buildIndex(keys, o)
	if err != nil {
		return nil, err
	}

	keysBuf, err := vzv.Encode[[]byte, vzv.Bytes](keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	valuesBuf, err := vzv.Encode[V, VC](values)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}

	h := header{
		magic:         magicMapHeader,
		formatVersion: mapFormatVersion,
		level0Len:     uint32(len(level0)),
		level1Len:     uint32(len(level1)),
		keysLen:       uint32(len(keysBuf)),
		valuesLen:     uint32(len(valuesBuf)),
	}
	buf := make([]byte, headerSize, uint64(headerSize)+h.bodyLen())
	h.MarshalTo(buf)
	for _, seed := range level0 {
		buf = ule.Append[uint32, ule.Uint32](buf, seed)
	}
	for _, i := range level1 {
		buf = ule.Append[uint32, ule.Uint32](buf, i)
	}
	buf = append(buf, keysBuf...)
	buf = append(buf, valuesBuf...)

	o.logger.Debug("built map", "entries", len(entries), "bytes", len(buf))
	return buf, nil
}

// BuildMap encodes m, ordering entries by key.
func BuildMap[V any, VC vzv.Codec[V]](m map[string]V, opts ...Option) ([]byte, error) {
	entries := make([]Entry[V], 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		entries = append(entries, Entry[V]{Key: k, Value: m[k]})
	}
	return Build[V, VC](entries, opts...)
}

type bucket struct {
	n    int
	vals []int
}

// buildIndex assigns every key a level-1 slot, returning the per-bucket seeds
// and the slot-to-entry table.
func buildIndex(keys [][]byte, o options) (level0, level1 []uint32, err error) {
	var (
		entryLen   = len(keys)
		level0Len  = nextPow2(entryLen / 4)
		level1Len  = nextPow2(entryLen)
		level0Mask = uint64(level0Len - 1)
		level1Mask = uint64(level1Len - 1)
	)

	level0 = make([]uint32, level0Len)
	level1 = make([]uint32, level1Len)
	sparseBuckets := make([][]int, level0Len)

	o.logger.Debug("building sparse buckets", "entries", entryLen, "level0", level0Len, "level1", level1Len)
	for i, key := range keys {
		n := xxhash.Sum64(key) & level0Mask
		sparseBuckets[n] = append(sparseBuckets[n], i)
	}

	var buckets []bucket
	for n, vals := range sparseBuckets {
		if len(vals) > 0 {
			buckets = append(buckets, bucket{n: n, vals: vals})
		}
	}
	// most full first; equal sizes stay in bucket order
	slices.SortStableFunc(buckets, func(a, b bucket) int {
		return cmp.Compare(len(b.vals), len(a.vals))
	})

	o.logger.Debug("iterating over buckets", "buckets", len(buckets))
	occ := bitset.New(level1Len)
	var tmpOcc []int
	for _, b := range buckets {
		seed := uint32(1)
	trySeed:
		if seed > o.maxSeed {
			return nil, nil, fmt.Errorf("%w: bucket %d with %d keys", ErrSeedExhausted, b.n, len(b.vals))
		}
		tmpOcc = tmpOcc[:0]
		for _, i := range b.vals {
			n := int(farm.Hash64WithSeed(keys[i], uint64(seed)) & level1Mask)
			if occ.IsSet(n) {
				for _, n := range tmpOcc {
					occ.Clear(n)
					level1[n] = 0
				}
				seed++
				goto trySeed
			}
			tmpOcc = append(tmpOcc, n)
			occ.Set(n)
			level1[n] = uint32(i)
		}
		level0[b.n] = seed
	}
	o.logger.Debug("placed keys", "slots", occ.Len(), "occupied", occ.Count())

	return level0, level1, nil
}
