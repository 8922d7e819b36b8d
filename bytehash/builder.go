// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytehash

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/bpowers/zerovec/internal/bitset"
)

var (
	// ErrConstructionFailure is returned when no (p, q) assignment was found
	// within the search limits.  Callers need a fallback representation, such
	// as a sorted key list searched linearly.
	ErrConstructionFailure = errors.New("no perfect hash parameters found")
	// ErrDuplicateKey is returned when the key set contains a byte twice.
	ErrDuplicateKey = errors.New("duplicate keys aren't supported")
	// ErrTooManyKeys is returned for key sets larger than MaxKeys.
	ErrTooManyKeys = errors.New("too many keys")
)

// Option configures Build.
type Option func(*options)

type limits struct {
	pFastMax, qFastMax int
	pRealMax, qRealMax int
	maxMisses          int
}

type options struct {
	logger *slog.Logger
	limits limits
}

var defaultLimits = limits{
	pFastMax:  PFastMax,
	qFastMax:  QFastMax,
	pRealMax:  PRealMax,
	qRealMax:  QRealMax,
	maxMisses: MaxL2SearchMisses,
}

// WithLogger sets an optional logger for the builder to report when the search
// widens or gives up.  If not provided, no logging output will be produced.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func withLimits(l limits) Option {
	return func(opts *options) {
		opts.limits = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		limits: defaultLimits,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Build constructs a perfect hash table for keys, returning its 2N+1 byte
// encoding.  The order of keys does not matter.
func Build(keys []byte, opts ...Option) ([]byte, error) {
	t, err := BuildTable(keys, opts...)
	if err != nil {
		return nil, err
	}
	return t.Bytes(), nil
}

// BuildTable is like Build but returns the result as a Table.
func BuildTable(keys []byte, opts ...Option) (Table, error) {
	o := newOptions(opts)

	if len(keys) > MaxKeys {
		return Table{}, fmt.Errorf("%w: %d > %d", ErrTooManyKeys, len(keys), MaxKeys)
	}
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Table{}, fmt.Errorf("%w: %#02x", ErrDuplicateKey, sorted[i])
		}
	}

	n := len(sorted)
	if n == 0 {
		return Table{buf: []byte{0}}, nil
	}

	w := newWorkspace(sorted, o.limits.maxMisses)
	for p := 0; p <= o.limits.pFastMax; p++ {
		if w.try(byte(p), o.limits.qFastMax) {
			return w.emit(byte(p)), nil
		}
	}

	o.logger.Debug("widening perfect hash search", "keys", n, "pMax", o.limits.pRealMax, "qMax", o.limits.qRealMax)
	for p := 0; p <= o.limits.pRealMax; p++ {
		if w.try(byte(p), o.limits.qRealMax) {
			return w.emit(byte(p)), nil
		}
	}

	o.logger.Debug("perfect hash search exhausted", "keys", n)
	return Table{}, fmt.Errorf("%w for %d keys", ErrConstructionFailure, n)
}

// workspace is the scratch state for one Build.  It is reset for every p.
type workspace struct {
	keys      []byte
	n         int
	maxMisses int

	buckets [][]byte // bucket index -> keys, for the current p
	order   []int    // non-empty bucket indexes, largest first
	qs      []byte   // bucket index -> chosen q
	seen    *bitset.Bitset
	tmp     []int
}

func newWorkspace(keys []byte, maxMisses int) *workspace {
	n := len(keys)
	return &workspace{
		keys:      keys,
		n:         n,
		maxMisses: maxMisses,
		buckets:   make([][]byte, n),
		order:     make([]int, 0, n),
		qs:        make([]byte, n),
		seen:      bitset.New(n),
		tmp:       make([]int, 0, n),
	}
}

func (w *workspace) reset(p byte) {
	for i := range w.buckets {
		w.buckets[i] = w.buckets[i][:0]
	}
	for _, k := range w.keys {
		b := f1(k, p, w.n)
		w.buckets[b] = append(w.buckets[b], k)
	}

	w.order = w.order[:0]
	for i, bucket := range w.buckets {
		if len(bucket) > 0 {
			w.order = append(w.order, i)
		}
	}
	slices.SortFunc(w.order, func(a, b int) int {
		if c := cmp.Compare(len(w.buckets[b]), len(w.buckets[a])); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	clear(w.qs)
	w.seen.Reset()
}

// try searches for a q assignment under p, backtracking when a bucket has no
// free placement.  It reports whether every bucket was placed.
func (w *workspace) try(p byte, qMax int) bool {
	w.reset(p)

	misses := 0
	start := 0
	for i := 0; i < len(w.order); {
		bi := w.order[i]
		if q, ok := w.place(w.buckets[bi], start, qMax); ok {
			w.qs[bi] = byte(q)
			start = 0
			i++
			continue
		}

		misses++
		if i == 0 || misses > w.maxMisses {
			return false
		}
		i--
		prev := w.order[i]
		w.release(w.buckets[prev], w.qs[prev])
		start = int(w.qs[prev]) + 1
		w.qs[prev] = 0
	}
	return true
}

// place finds the smallest q in [start, qMax] sending every key of bucket to
// an unclaimed slot, and claims those slots.
func (w *workspace) place(bucket []byte, start, qMax int) (int, bool) {
	for q := start; q <= qMax; q++ {
		w.tmp = w.tmp[:0]
		ok := true
		for _, k := range bucket {
			slot := f2(k, byte(q), w.n)
			if w.seen.IsSet(slot) {
				ok = false
				break
			}
			w.seen.Set(slot)
			w.tmp = append(w.tmp, slot)
		}
		if ok {
			return q, true
		}
		for _, slot := range w.tmp {
			w.seen.Clear(slot)
		}
	}
	return 0, false
}

func (w *workspace) release(bucket []byte, q byte) {
	for _, k := range bucket {
		w.seen.Clear(f2(k, q, w.n))
	}
}

func (w *workspace) emit(p byte) Table {
	n := w.n
	buf := make([]byte, 2*n+1)
	buf[0] = p
	copy(buf[1:1+n], w.qs)
	for _, k := range w.keys {
		buf[1+n+f2(k, w.qs[f1(k, p, n)], n)] = k
	}
	return Table{buf: buf}
}
