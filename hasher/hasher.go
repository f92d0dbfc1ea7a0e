// Package hasher provides the hash functions an interner can be configured
// with.
//
// A Hasher maps a value's byte view to a 64-bit hash. The interner computes
// it once per insertion and caches the result, so the same Hasher must be
// used for the lifetime of an interner (and of any snapshot restored into
// one with matching hashes).
package hasher

import (
	"hash/fnv"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes 64-bit hashes of byte sequences.
// Implementations must be deterministic for the lifetime of a process and
// safe for concurrent use.
type Hasher interface {
	Sum64(b []byte) uint64
	Name() string
}

// Default is the hasher used when none is configured.
var Default Hasher = XXHash{}

// XXHash is xxHash64 with seed 0, backed by github.com/cespare/xxhash/v2.
// Hashes are stable across processes and platforms.
type XXHash struct{}

// Sum64 implements Hasher.
func (XXHash) Sum64(b []byte) uint64 { return xxhash.Sum64(b) }

// Name implements Hasher.
func (XXHash) Name() string { return "xxhash" }

// Maphash is the runtime's seeded hash (hash/maphash). Hashes differ
// between processes, which makes them resistant to collision flooding by
// untrusted input.
type Maphash struct {
	seed maphash.Seed
}

// NewMaphash returns a Maphash with a fresh random seed.
func NewMaphash() Maphash {
	return Maphash{seed: maphash.MakeSeed()}
}

// Sum64 implements Hasher.
func (m Maphash) Sum64(b []byte) uint64 { return maphash.Bytes(m.seed, b) }

// Name implements Hasher.
func (Maphash) Name() string { return "maphash" }

// FNV1a is the 64-bit FNV-1a hash.
type FNV1a struct{}

// Sum64 implements Hasher.
func (FNV1a) Sum64(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}

// Name implements Hasher.
func (FNV1a) Name() string { return "fnv1a" }

// Func adapts a plain function to the Hasher interface.
type Func func(b []byte) uint64

// Sum64 implements Hasher.
func (f Func) Sum64(b []byte) uint64 { return f(b) }

// Name implements Hasher.
func (Func) Name() string { return "func" }

// ByName returns a built-in hasher by its stable name. Maphash gets a fresh
// seed on every call.
func ByName(name string) (Hasher, bool) {
	switch name {
	case "xxhash", "":
		return XXHash{}, true
	case "maphash":
		return NewMaphash(), true
	case "fnv1a":
		return FNV1a{}, true
	default:
		return nil, false
	}
}
