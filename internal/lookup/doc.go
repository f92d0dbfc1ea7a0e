// Package lookup implements the hash-keyed index that maps an entry's hash
// to the symbols stored under it.
//
// Unlike a general-purpose map, the table never computes a hash itself.
// Callers probe with a hash they already hold and decide equality with a
// callback, which is what lets the interner hash a value exactly once.
//
// The table is open-addressed with linear probing over a power-of-two
// number of slots. Slot occupancy lives in a bitset; a slot stores the full
// 64-bit hash next to the symbol so most non-matching slots are rejected
// without touching the arena.
//
// Symbols must be inserted densely (0, 1, 2, ...). Growth rebuilds the table
// in symbol order from the caller's hash cache, so entries sharing a hash
// are always probed in insertion order. There is no removal.
package lookup
