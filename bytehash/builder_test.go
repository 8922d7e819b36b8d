// Copyright 2022 The zerovec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bytehash

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphanumeric() []byte {
	var keys []byte
	for c := byte('A'); c <= 'Z'; c++ {
		keys = append(keys, c)
	}
	for c := byte('a'); c <= 'z'; c++ {
		keys = append(keys, c)
	}
	for c := byte('0'); c <= '9'; c++ {
		keys = append(keys, c)
	}
	return keys
}

// requirePerfect checks that every key maps to a distinct slot holding it,
// and that bytes outside the set are absent.
func requirePerfect(t *testing.T, keys []byte, buf []byte) {
	t.Helper()
	require.Len(t, buf, 2*len(keys)+1)

	var inSet [256]bool
	for _, k := range keys {
		inSet[k] = true
	}
	seenSlots := make(map[int]byte)
	for _, k := range keys {
		slot, ok := Lookup(buf, k)
		require.True(t, ok, "key %#02x not found", k)
		require.GreaterOrEqual(t, slot, 0)
		require.Less(t, slot, len(keys))
		if other, dup := seenSlots[slot]; dup {
			t.Fatalf("keys %#02x and %#02x share slot %d", other, k, slot)
		}
		seenSlots[slot] = k
		require.Equal(t, k, buf[1+len(keys)+slot])
	}
	for b := 0; b < 256; b++ {
		if inSet[b] {
			continue
		}
		_, ok := Lookup(buf, byte(b))
		require.False(t, ok, "byte %#02x should be absent", b)
	}
}

func TestBuild_Alphanumeric(t *testing.T) {
	keys := alphanumeric()
	require.Len(t, keys, 62)

	buf, err := Build(keys)
	require.NoError(t, err)
	requirePerfect(t, keys, buf)

	tbl, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, 62, tbl.Len())
	require.Len(t, tbl.Params().Q, 62)
	require.ElementsMatch(t, keys, tbl.Keys())
}

func TestBuild_Small(t *testing.T) {
	for _, keys := range [][]byte{
		{},
		{'x'},
		{0, 255},
		{0x00, ' '},
		{0, 64},
		{1, 33},
		{0, 128, 64, 192},
		{'a', 'b', 'c'},
		[]byte("etaoinshrdlu"),
	} {
		buf, err := Build(keys)
		require.NoError(t, err)
		requirePerfect(t, keys, buf)
	}

	buf, err := Build(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, buf)
}

func TestBuild_AllBytes(t *testing.T) {
	keys := make([]byte, 256)
	for i := range keys {
		keys[i] = byte(i)
	}
	buf, err := Build(keys)
	require.NoError(t, err)
	requirePerfect(t, keys, buf)
}

func TestBuild_Deterministic(t *testing.T) {
	keys := alphanumeric()
	first, err := Build(keys)
	require.NoError(t, err)

	// same key set, different order
	shuffled := bytes.Clone(keys)
	rng := rand.New(rand.NewPCG(1, 2))
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	second, err := Build(shuffled)
	require.NoError(t, err)
	require.Equal(t, first, second)

	third, err := Build(keys)
	require.NoError(t, err)
	require.Equal(t, first, third)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build([]byte{'a', 'b', 'a'})
	require.ErrorIs(t, err, ErrDuplicateKey)

	_, err = Build(make([]byte, 257))
	require.ErrorIs(t, err, ErrTooManyKeys)
}

func TestBuild_ConstructionFailure(t *testing.T) {
	// with p = q = 0 the only candidate, keys 0 and 2 share a bucket and a slot
	tight := limits{maxMisses: MaxL2SearchMisses}
	_, err := Build([]byte{0, 2}, withLimits(tight))
	require.ErrorIs(t, err, ErrConstructionFailure)

	// the widened range recovers
	widen := tight
	widen.pRealMax = PRealMax
	widen.qRealMax = QRealMax
	buf, err := Build([]byte{0, 2}, withLimits(widen))
	require.NoError(t, err)
	requirePerfect(t, []byte{0, 2}, buf)
}

func TestBuild_Logger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Build([]byte{0, 2}, withLimits(limits{maxMisses: 1}), WithLogger(logger))
	require.ErrorIs(t, err, ErrConstructionFailure)
	assert.Contains(t, logs.String(), "widening perfect hash search")
	assert.Contains(t, logs.String(), "perfect hash search exhausted")
}

func TestBuild_AllSmallSets(t *testing.T) {
	for a := 0; a < 256; a++ {
		keys := []byte{byte(a)}
		buf, err := Build(keys)
		require.NoError(t, err)
		requirePerfect(t, keys, buf)
	}
	for a := 0; a < 256; a++ {
		for b := a + 1; b < 256; b++ {
			keys := []byte{byte(a), byte(b)}
			buf, err := Build(keys)
			if err != nil {
				t.Fatalf("Build(%#02x, %#02x): %v", a, b, err)
			}
			requirePerfect(t, keys, buf)
		}
	}
}

// randomKeySet returns n distinct bytes, drawn either uniformly or from a
// narrow window to skew the distribution.
func randomKeySet(rng *rand.Rand, n int, skewed bool) []byte {
	var pool []byte
	if skewed && n <= 64 {
		base := rng.IntN(256 - 64 + 1)
		for i := 0; i < 64; i++ {
			pool = append(pool, byte(base+i))
		}
	} else {
		for i := 0; i < 256; i++ {
			pool = append(pool, byte(i))
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}

func TestBuild_EverySize(t *testing.T) {
	rng := rand.New(rand.NewPCG(0xC0FFEE, 0x0D))
	for n := 3; n <= MaxKeys; n++ {
		for i := 0; i < 8; i++ {
			keys := randomKeySet(rng, n, i%2 == 0)
			buf, err := Build(keys)
			if err != nil {
				t.Fatalf("Build(%x): %v", keys, err)
			}
			requirePerfect(t, keys, buf)

			again, err := Build(keys)
			require.NoError(t, err)
			require.Equal(t, buf, again)
		}
	}
}

func TestBuildAll(t *testing.T) {
	keySets := [][]byte{
		alphanumeric(),
		[]byte("xyz"),
		{},
		[]byte("0123456789abcdef"),
	}
	bufs, err := BuildAll(context.Background(), keySets)
	require.NoError(t, err)
	require.Len(t, bufs, len(keySets))
	for i, keys := range keySets {
		requirePerfect(t, keys, bufs[i])
		single, err := Build(keys)
		require.NoError(t, err)
		require.Equal(t, single, bufs[i])
	}

	_, err = BuildAll(context.Background(), [][]byte{[]byte("ok"), []byte("dd")})
	require.ErrorIs(t, err, ErrDuplicateKey)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = BuildAll(ctx, keySets)
	require.ErrorIs(t, err, context.Canceled)
}

func BenchmarkBuild(b *testing.B) {
	keys := alphanumeric()
	for i := 0; i < b.N; i++ {
		if _, err := Build(keys); err != nil {
			b.Fatal(err)
		}
	}
}
