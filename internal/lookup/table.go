package lookup

import (
	"fmt"
	"iter"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

const (
	minSize = 8

	// The table grows when more than 7/8 of the slots are occupied.
	maxLoadNum = 7
	maxLoadDen = 8

	// fibonacci spreads weak hashes over the slot range.
	fibonacci = 0x9E3779B97F4A7C15
)

type slot struct {
	hash uint64
	sym  uint32
}

// Stats describes the table shape.
type Stats struct {
	Len    int
	Slots  int
	Grows  uint64
	Probes uint64 // occupied slots skipped while placing symbols
}

// Table is the hash-first probing table.
type Table struct {
	slots  []slot
	used   *bitset.BitSet
	shift  uint
	mask   uint64
	len    int
	maxLen int
	grows  uint64
	probes uint64
}

// New creates a Table that holds capacity symbols without growing.
func New(capacity int) *Table {
	t := &Table{}
	t.init(sizeFor(capacity))
	return t
}

// Len returns the number of stored symbols.
func (t *Table) Len() int { return t.len }

// Slots returns the number of slots.
func (t *Table) Slots() int { return len(t.slots) }

// Stats returns the current table statistics.
func (t *Table) Stats() Stats {
	return Stats{Len: t.len, Slots: len(t.slots), Grows: t.grows, Probes: t.probes}
}

// Find probes the slots for hash and returns the first symbol, in insertion
// order, for which eq reports true. Find does not modify the table, so
// concurrent calls are safe as long as nothing inserts.
func (t *Table) Find(hash uint64, eq func(sym uint32) bool) (uint32, bool) {
	i := t.home(hash)
	for t.used.Test(uint(i)) {
		s := t.slots[i]
		if s.hash == hash && eq(s.sym) {
			return s.sym, true
		}
		i = (i + 1) & t.mask
	}
	return 0, false
}

// Candidates yields every symbol stored under hash, in insertion order,
// without any equality check.
func (t *Table) Candidates(hash uint64) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		i := t.home(hash)
		for t.used.Test(uint(i)) {
			s := t.slots[i]
			if s.hash == hash && !yield(s.sym) {
				return
			}
			i = (i + 1) & t.mask
		}
	}
}

// Insert records sym under hash. sym must equal Len(): symbols are inserted
// densely and exactly once. hashOf returns the stored hash of an already
// inserted symbol and is only called when the table grows.
//
// Insert reports whether the table grew.
func (t *Table) Insert(hash uint64, sym uint32, hashOf func(sym uint32) uint64) bool {
	if int(sym) != t.len {
		panic(fmt.Sprintf("lookup: non-dense insert of symbol %d, expected %d", sym, t.len))
	}

	grew := false
	if t.len+1 > t.maxLen {
		t.rebuild(len(t.slots)*2, hashOf)
		t.grows++
		grew = true
	}

	t.place(hash, sym)
	t.len++
	return grew
}

// Reserve grows the table so that additional symbols fit without growing.
func (t *Table) Reserve(additional int, hashOf func(sym uint32) uint64) {
	size := sizeFor(t.len + additional)
	if size > len(t.slots) {
		t.rebuild(size, hashOf)
		t.grows++
	}
}

// ShrinkToFit rebuilds the table at the smallest size that holds Len().
func (t *Table) ShrinkToFit(hashOf func(sym uint32) uint64) {
	size := sizeFor(t.len)
	if size < len(t.slots) {
		t.rebuild(size, hashOf)
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := *t
	c.slots = make([]slot, len(t.slots))
	copy(c.slots, t.slots)
	c.used = t.used.Clone()
	return &c
}

func (t *Table) init(size int) {
	t.slots = make([]slot, size)
	t.used = bitset.New(uint(size))
	t.shift = uint(64 - bits.TrailingZeros(uint(size)))
	t.mask = uint64(size - 1)
	t.maxLen = size / maxLoadDen * maxLoadNum
}

func (t *Table) home(hash uint64) uint64 {
	return (hash * fibonacci) >> t.shift
}

func (t *Table) place(hash uint64, sym uint32) {
	i := t.home(hash)
	for t.used.Test(uint(i)) {
		t.probes++
		i = (i + 1) & t.mask
	}
	t.used.Set(uint(i))
	t.slots[i] = slot{hash: hash, sym: sym}
}

// rebuild re-places symbols 0..len-1 in order using their stored hashes.
func (t *Table) rebuild(size int, hashOf func(sym uint32) uint64) {
	n := t.len
	t.init(size)
	for s := 0; s < n; s++ {
		sym := uint32(s) //nolint:gosec // s < len, which fits uint32 by construction
		t.place(hashOf(sym), sym)
	}
}

// sizeFor returns the power-of-two slot count that holds n symbols.
func sizeFor(n int) int {
	size := minSize
	for size/maxLoadDen*maxLoadNum < n {
		size *= 2
	}
	return size
}
