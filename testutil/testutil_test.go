package testutil

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	words := Words(1000, 5)

	require.Len(t, words, 1000)
	assert.Equal(t, "aaaaa", words[0])
	assert.Equal(t, "aaaab", words[1])

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		assert.Len(t, w, 5)
		seen[w] = struct{}{}
	}
	assert.Len(t, seen, len(words), "words must be unique")
}

func TestWordBuilderExhausts(t *testing.T) {
	b := NewWordBuilder(1)
	n := 0
	for {
		if _, ok := b.Next(); !ok {
			break
		}
		n++
	}
	assert.Equal(t, len(Alphabet), n)

	assert.Panics(t, func() { Words(len(Alphabet)+1, 1) })
}

func TestWordBuilderZeroLength(t *testing.T) {
	_, ok := NewWordBuilder(0).Next()
	assert.False(t, ok)
}

func TestRNGWord(t *testing.T) {
	rng := NewRNG(4711)

	for range 100 {
		w := rng.Word(3, 8)
		assert.GreaterOrEqual(t, len(w), 3)
		assert.LessOrEqual(t, len(w), 8)
		assert.True(t, utf8.ValidString(w))
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	w1 := rng.Word(10, 10)
	rng.Reset()
	w2 := rng.Word(10, 10)

	assert.Equal(t, w1, w2)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestShuffleKeepsElements(t *testing.T) {
	rng := NewRNG(1)
	words := Words(50, 3)

	shuffled := rng.Shuffle(words)
	assert.ElementsMatch(t, words, shuffled)
	assert.Equal(t, "aaa", words[0], "input must not be modified")
}

func TestZipfStreamSkew(t *testing.T) {
	rng := NewRNG(42)
	vocab := Words(100, 4)

	stream := rng.ZipfStream(vocab, 10_000, 1.2)
	require.Len(t, stream, 10_000)

	counts := make(map[string]int)
	for _, w := range stream {
		counts[w]++
	}
	assert.Greater(t, counts[vocab[0]], counts[vocab[50]])
}

func TestZipfRange(t *testing.T) {
	rng := NewRNG(7)
	for range 200 {
		k := rng.Zipf(10, 1.5)
		assert.GreaterOrEqual(t, k, 0)
		assert.Less(t, k, 10)
	}
	assert.Equal(t, 0, rng.Zipf(1, 1.5))
}

func TestBytesLength(t *testing.T) {
	rng := NewRNG(3)
	assert.Len(t, rng.Bytes(17), 17)
	assert.NotZero(t, rng.Uint64()|uint64(rng.Intn(10)+1))
}
