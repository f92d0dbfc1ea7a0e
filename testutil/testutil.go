package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// Alphabet is the set of bytes Words and RNG.Word draw from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// WordBuilder yields unique words of a fixed length in lexicographic order
// over Alphabet.
type WordBuilder struct {
	digits []int
	done   bool
}

// NewWordBuilder creates a WordBuilder for words of length n (n > 0).
func NewWordBuilder(n int) *WordBuilder {
	return &WordBuilder{digits: make([]int, n), done: n <= 0}
}

// Next returns the next word, or false once all len(Alphabet)^n words have
// been produced.
func (w *WordBuilder) Next() (string, bool) {
	if w.done {
		return "", false
	}

	buf := make([]byte, len(w.digits))
	for i, d := range w.digits {
		buf[i] = Alphabet[d]
	}

	// Increment the odometer from the last position.
	i := len(w.digits) - 1
	for ; i >= 0; i-- {
		w.digits[i]++
		if w.digits[i] < len(Alphabet) {
			break
		}
		w.digits[i] = 0
	}
	if i < 0 {
		w.done = true
	}

	return string(buf), true
}

// Words returns n unique words of length wordLen. It panics if fewer than n
// such words exist.
func Words(n, wordLen int) []string {
	b := NewWordBuilder(wordLen)
	words := make([]string, 0, n)
	for len(words) < n {
		w, ok := b.Next()
		if !ok {
			panic("testutil: word space exhausted")
		}
		words = append(words, w)
	}
	return words
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Bytes returns n pseudo-random bytes. The result is usually not valid UTF-8.
func (r *RNG) Bytes(n int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := make([]byte, n)
	_, _ = r.rand.Read(b)
	return b
}

// Word returns a random word over Alphabet with a length in [minLen, maxLen].
func (r *RNG) Word(minLen, maxLen int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.wordLocked(minLen, maxLen)
}

func (r *RNG) wordLocked(minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += r.rand.Intn(maxLen - minLen + 1)
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = Alphabet[r.rand.Intn(len(Alphabet))]
	}
	return string(buf)
}

// Shuffle returns a shuffled copy of words.
func (r *RNG) Shuffle(words []string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), words...)
	r.rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, harmonic(n, s), s)
}

// ZipfStream draws n values from vocab with Zipfian popularity. Early
// entries of vocab are the most frequent, which mimics identifier streams
// where a few names dominate.
func (r *RNG) ZipfStream(vocab []string, n int, s float64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	hns := harmonic(len(vocab), s)
	out := make([]string, n)
	for i := range out {
		out[i] = vocab[r.zipfLocked(len(vocab), hns, s)]
	}
	return out
}

// zipfLocked samples by inverse transform (caller must hold lock).
func (r *RNG) zipfLocked(n int, hns, s float64) int {
	if n <= 1 {
		return 0
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// harmonic returns the generalized harmonic number H(n, s).
func harmonic(n int, s float64) float64 {
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}
	return hns
}
