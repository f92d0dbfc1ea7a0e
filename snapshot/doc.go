// Package snapshot persists an ordered list of byte entries.
//
// A snapshot stores the entries of an interner in insertion order. Loading
// re-interns them in that order, which reproduces the same symbols.
//
// # Format
//
//	magic "HINT" | version u8 | compression u8 | count uvarint
//	block: [uncompressed u32][compressed u32][data]
//	crc32c u32 (little endian, over everything before it)
//
// The block data is the concatenation of uvarint(len) | bytes for every
// entry. A compressed size of 0 marks a block stored without compression,
// which Write falls back to when compression does not pay off.
package snapshot
