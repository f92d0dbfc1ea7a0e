// Package hashintern provides a string interner that caches the hash of
// every interned value.
//
// An interner deduplicates values and maps each distinct value to a compact
// Symbol. Symbols are dense indices assigned in insertion order, so they can
// index slices directly and compare in O(1). Every value's hash is computed
// once when it is first interned and kept next to it; GetHash and
// SymbolsForHash never rehash.
//
// # Quick Start
//
//	in := hashintern.NewString()
//
//	cat := in.MustGetOrIntern("cat") // Symbol(0)
//	dog := in.MustGetOrIntern("dog") // Symbol(1)
//	_ = in.MustGetOrIntern("cat")    // Symbol(0) again
//
//	v, _ := in.Resolve(dog) // "dog"
//	h, _ := in.GetHash(cat) // cached, no rehash
//
// # String Kinds
//
// The value type is chosen at compile time through a kind adapter (package
// kind). Each kind validates values once, on first insertion:
//
//	Kind            Value     Accepts
//	kind.String     string    well-formed UTF-8
//	kind.Bytes      []byte    anything
//	kind.CString    []byte    NUL-terminated, no interior NUL
//	kind.Native     string    platform OS strings (no NUL)
//	kind.Runes      []rune    Unicode scalar values
//
// # Memory Layout
//
// All values live back to back in one arena buffer; entry i ends at a
// recorded offset. Growing the arena copies into a new buffer and never
// rewrites stored bytes, so values returned by Resolve stay valid for the
// interner's lifetime even across growth. A separate hash-first lookup table
// maps hashes to symbols and is rebuilt from the cached hashes on growth.
//
// # Errors
//
// Interning fails only for values the kind rejects (*ErrInvalidEncoding,
// wrapping ErrEncoding) and when the symbol range or the limits set with
// WithLimits are exhausted (*ErrCapacityOverflow, wrapping ErrCapacity). In
// both cases the interner is unchanged. Resolve and GetHash report unknown
// symbols with a false second result.
//
// # Persistence
//
// WriteSnapshot and ReadSnapshot persist the values in insertion order
// (package snapshot). Re-interning them in order reproduces every symbol.
// MarshalJSON and UnmarshalJSON do the same with a JSON array.
//
// # Observability
//
// WithLogger enables structured logging (log/slog) of growth and refusals;
// WithMetricsCollector enables metrics. The metrics/prometheus package
// exports them to Prometheus.
//
// # Concurrency
//
// An Interner is not safe for concurrent mutation. Concurrent readers are
// fine as long as nothing interns at the same time.
package hashintern
