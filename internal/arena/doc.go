// Package arena provides the byte arena backing an interner.
//
// All interned values live back to back in one contiguous, append-only
// buffer. A parallel slice records where each entry ends; the entry's start
// is the previous entry's end (or 0), so one int per entry is the whole
// per-entry bookkeeping.
//
// # Addressing
//
// Entries are addressed by their dense index, never by pointer. Growth
// reallocates the buffer (doubling its capacity) and copies the used bytes,
// so every previously returned index stays valid. Byte slices handed out by
// Bytes alias the buffer that was current at the time of the call; those
// bytes are never written again, so such views remain valid (and unchanged)
// after later growth.
//
// # Safety
//
// The buffer always starts on a 64-byte boundary (see internal/mem), which
// lets fixed-width kinds reinterpret their spans in place.
//
// Arena is not safe for concurrent mutation.
package arena
