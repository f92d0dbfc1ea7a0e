// Package hashcache stores the precomputed hash of every interned entry,
// indexed by symbol.
//
// The cache is filled in lock-step with the arena: entry i's hash is
// recorded right after the arena assigned index i. Backed by a segmented
// array, growing the cache never moves hashes that are already stored.
package hashcache

import (
	"fmt"

	"github.com/hupe1980/hashintern/internal/container"
)

// Cache is a symbol-indexed sequence of hashes.
type Cache struct {
	hashes *container.Segmented[uint64]
}

// New creates a Cache with room for capacity hashes.
func New(capacity int) *Cache {
	return &Cache{hashes: container.NewSegmented[uint64](capacity)}
}

// Record stores the hash of entry i. Entries must be recorded in order,
// exactly once each; Record panics otherwise since a gap would break the
// cache/arena alignment.
func (c *Cache) Record(i int, hash uint64) {
	if i != c.hashes.Len() {
		panic(fmt.Sprintf("hashcache: out-of-order record %d, expected %d", i, c.hashes.Len()))
	}
	c.hashes.Append(hash)
}

// Get returns the hash of entry i, or false if i was never recorded.
func (c *Cache) Get(i int) (uint64, bool) {
	return c.hashes.Get(i)
}

// GetUnchecked returns the hash of entry i. The caller guarantees that i
// was recorded; an index outside the allocated segments panics.
func (c *Cache) GetUnchecked(i int) uint64 {
	return c.hashes.At(i)
}

// GetUnchecked32 is GetUnchecked keyed by a symbol, in the shape the lookup
// table expects for rebuilds.
func (c *Cache) GetUnchecked32(sym uint32) uint64 {
	return c.hashes.At(int(sym))
}

// Len returns the number of recorded hashes.
func (c *Cache) Len() int { return c.hashes.Len() }

// Cap returns the number of hashes that fit without allocating a segment.
func (c *Cache) Cap() int { return c.hashes.Cap() }

// Clone returns a deep copy.
func (c *Cache) Clone() *Cache {
	return &Cache{hashes: c.hashes.Clone()}
}

// ShrinkToFit releases unused directory capacity.
func (c *Cache) ShrinkToFit() { c.hashes.ShrinkToFit() }
