package hashintern

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/hashintern/hasher"
	"github.com/hupe1980/hashintern/internal/arena"
	"github.com/hupe1980/hashintern/internal/hashcache"
	"github.com/hupe1980/hashintern/internal/lookup"
	"github.com/hupe1980/hashintern/kind"
)

// Interner deduplicates values of one string kind and maps each distinct
// value to a Symbol.
//
// T is the value type and K the kind adapter bound to it (see package kind).
// Values are stored once in a contiguous arena; each entry's hash is computed
// once at insertion and cached, so GetHash never rehashes.
//
// An Interner is not safe for concurrent use. Read-only methods (Resolve,
// GetHash, Get, Contains, Len, iteration) may run concurrently with each
// other, but never concurrently with GetOrIntern, Extend, Reserve or
// ShrinkToFit. Callers that mutate from several goroutines must serialize
// access themselves.
type Interner[T any, K kind.Kind[T]] struct {
	kind    K
	hasher  hasher.Hasher
	arena   *arena.Arena
	hashes  *hashcache.Cache
	index   *lookup.Table
	hashOf  func(sym uint32) uint64
	logger  *Logger
	metrics MetricsCollector
}

// Entry is one interned value with its symbol and cached hash.
type Entry[T any] struct {
	Symbol Symbol
	Value  T
	Hash   uint64
}

// Stats describes the interner's memory layout.
type Stats struct {
	Entries       int
	BytesUsed     int
	BytesReserved int
	ArenaGrows    uint64 // buffer and end offset reallocations
	LookupSlots   int
	LookupGrows   uint64
	LookupProbes  uint64 // collision displacements on insert
}

// New creates an empty Interner for kind K.
func New[T any, K kind.Kind[T]](opts ...Option) *Interner[T, K] {
	in := &Interner[T, K]{}
	in.init(applyOptions(opts))
	return in
}

func (in *Interner[T, K]) init(o options) {
	in.hasher = o.hasher
	in.metrics = o.metricsCollector
	if o.logger != nil {
		in.logger = o.logger.WithKind(in.kind.Name())
	}

	maxEntries := symbolLimit()
	if o.maxEntries > 0 && o.maxEntries < maxEntries {
		maxEntries = o.maxEntries
	}

	in.arena = arena.New(o.entries, o.bytes,
		arena.WithLimits(arena.Limits{MaxEntries: maxEntries, MaxBytes: o.maxBytes}),
		arena.WithGrowHook(in.onArenaGrow),
	)
	in.hashes = hashcache.New(o.entries)
	in.index = lookup.New(o.entries)
	in.hashOf = in.hashes.GetUnchecked32
}

// symbolLimit is the number of symbols that fit both Symbol and int.
func symbolLimit() int {
	n := uint64(NoSymbol)
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

// Len returns the number of distinct interned values.
func (in *Interner[T, K]) Len() int { return in.arena.Len() }

// IsEmpty reports whether nothing has been interned.
func (in *Interner[T, K]) IsEmpty() bool { return in.arena.IsEmpty() }

// Kind returns the name of the interner's string kind.
func (in *Interner[T, K]) Kind() string { return in.kind.Name() }

// Hasher returns the configured hash function.
func (in *Interner[T, K]) Hasher() hasher.Hasher { return in.hasher }

// Hash returns the hash of v's byte view under the configured hasher,
// without interning v.
func (in *Interner[T, K]) Hash(v T) uint64 {
	return in.hasher.Sum64(in.kind.Bytes(v))
}

// GetOrIntern returns the symbol of v, interning v first if needed.
// Byte-equal values always yield the same symbol.
//
// It fails with *ErrInvalidEncoding if v is not valid for the kind and with
// *ErrCapacityOverflow if the interner is full; in both cases nothing is
// stored.
func (in *Interner[T, K]) GetOrIntern(v T) (Symbol, error) {
	sym, _, err := in.InternAndHash(v)
	return sym, err
}

// MustGetOrIntern is like GetOrIntern but panics on error.
func (in *Interner[T, K]) MustGetOrIntern(v T) Symbol {
	sym, _, err := in.InternAndHash(v)
	if err != nil {
		panic(fmt.Sprintf("hashintern: %v", err))
	}
	return sym
}

// InternAndHash is like GetOrIntern but also returns the value's hash.
func (in *Interner[T, K]) InternAndHash(v T) (Symbol, uint64, error) {
	return in.intern(in.kind.Bytes(v))
}

// Get returns the symbol of v if v has been interned.
func (in *Interner[T, K]) Get(v T) (Symbol, bool) {
	b := in.kind.Bytes(v)
	return in.find(in.hasher.Sum64(b), b)
}

// Contains reports whether v has been interned.
func (in *Interner[T, K]) Contains(v T) bool {
	_, ok := in.Get(v)
	return ok
}

// Resolve returns the value of s. It returns false for NoSymbol and for
// symbols this interner never issued.
//
// The returned value shares memory with the interner and must not be
// modified.
func (in *Interner[T, K]) Resolve(s Symbol) (T, bool) {
	b, ok := in.arena.Bytes(s.Index())
	if !ok {
		var zero T
		return zero, false
	}
	return in.kind.FromBytes(b), true
}

// ResolveUnchecked returns the value of s. The caller guarantees that s was
// issued by this interner; otherwise it panics.
func (in *Interner[T, K]) ResolveUnchecked(s Symbol) T {
	return in.kind.FromBytes(in.arena.BytesUnchecked(int(s)))
}

// GetHash returns the cached hash of s. It returns false for NoSymbol and
// for symbols this interner never issued.
func (in *Interner[T, K]) GetHash(s Symbol) (uint64, bool) {
	return in.hashes.Get(s.Index())
}

// GetHashUnchecked returns the cached hash of s. The caller guarantees that
// s was issued by this interner; for any other symbol the result is
// meaningless or the call panics.
func (in *Interner[T, K]) GetHashUnchecked(s Symbol) uint64 {
	return in.hashes.GetUnchecked(int(s))
}

// SymbolsForHash yields, in insertion order, every symbol whose cached hash
// equals h. No value is hashed or compared: distinct values that collide
// under the hasher are all yielded.
func (in *Interner[T, K]) SymbolsForHash(h uint64) iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for sym := range in.index.Candidates(h) {
			if !yield(Symbol(sym)) {
				return
			}
		}
	}
}

// All yields every symbol and value in insertion order.
func (in *Interner[T, K]) All() iter.Seq2[Symbol, T] {
	return func(yield func(Symbol, T) bool) {
		for i, b := range in.arena.All() {
			if !yield(Symbol(i), in.kind.FromBytes(b)) { //nolint:gosec // i < symbolLimit
				return
			}
		}
	}
}

// Entries yields every entry with its cached hash in insertion order.
func (in *Interner[T, K]) Entries() iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		for i, b := range in.arena.All() {
			e := Entry[T]{
				Symbol: Symbol(i), //nolint:gosec // i < symbolLimit
				Value:  in.kind.FromBytes(b),
				Hash:   in.hashes.GetUnchecked(i),
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Extend interns every value of seq in order. It stops at the first error.
func (in *Interner[T, K]) Extend(seq iter.Seq[T]) error {
	for v := range seq {
		if _, err := in.GetOrIntern(v); err != nil {
			return err
		}
	}
	return nil
}

// Reserve makes room for the given number of additional entries and bytes.
func (in *Interner[T, K]) Reserve(entries, size int) {
	in.arena.Reserve(entries, size)
	if entries > 0 {
		before := in.index.Slots()
		in.index.Reserve(entries, in.hashOf)
		if after := in.index.Slots(); after != before {
			in.onGrow(componentLookup, before, after)
		}
	}
}

// ShrinkToFit releases spare capacity of the arena, the hash cache and the
// lookup index. Symbols and previously resolved values stay valid.
func (in *Interner[T, K]) ShrinkToFit() {
	in.arena.ShrinkToFit()
	in.hashes.ShrinkToFit()
	in.index.ShrinkToFit(in.hashOf)
}

// Clone returns an independent deep copy. Both interners keep issuing
// identical symbols for identical insert sequences.
func (in *Interner[T, K]) Clone() *Interner[T, K] {
	c := &Interner[T, K]{
		hasher:  in.hasher,
		arena:   in.arena.Clone(),
		hashes:  in.hashes.Clone(),
		index:   in.index.Clone(),
		logger:  in.logger,
		metrics: in.metrics,
	}
	c.arena.SetGrowHook(c.onArenaGrow)
	c.hashOf = c.hashes.GetUnchecked32
	return c
}

// Stats returns memory and table statistics.
func (in *Interner[T, K]) Stats() Stats {
	as := in.arena.Stats()
	ls := in.index.Stats()
	return Stats{
		Entries:       as.Entries,
		BytesUsed:     as.BytesUsed,
		BytesReserved: as.BytesReserved,
		ArenaGrows:    as.BufferGrows + as.EndsGrows,
		LookupSlots:   ls.Slots,
		LookupGrows:   ls.Grows,
		LookupProbes:  ls.Probes,
	}
}

// intern is the insertion path shared by every public entry point. b is the
// byte view of the candidate value.
func (in *Interner[T, K]) intern(b []byte) (Symbol, uint64, error) {
	var start time.Time
	if in.metrics != nil {
		start = time.Now()
	}

	h := in.hasher.Sum64(b)
	if sym, ok := in.find(h, b); ok {
		if in.metrics != nil {
			in.metrics.RecordIntern(true, time.Since(start))
		}
		return sym, h, nil
	}

	if err := in.kind.Validate(b); err != nil {
		return NoSymbol, 0, in.refuse(err)
	}

	idx, err := in.arena.Append(b)
	if err != nil {
		return NoSymbol, 0, in.refuse(err)
	}

	// The arena's entry limit never exceeds symbolLimit, so idx fits.
	sym := Symbol(idx) //nolint:gosec // bounded by arena limits
	in.hashes.Record(idx, h)

	before := in.index.Slots()
	if in.index.Insert(h, uint32(sym), in.hashOf) {
		in.onGrow(componentLookup, before, in.index.Slots())
	}

	if in.metrics != nil {
		in.metrics.RecordIntern(false, time.Since(start))
	}
	return sym, h, nil
}

// find probes the lookup index with a precomputed hash and confirms a hit by
// comparing bytes.
func (in *Interner[T, K]) find(h uint64, b []byte) (Symbol, bool) {
	sym, ok := in.index.Find(h, func(sym uint32) bool {
		return bytes.Equal(in.arena.BytesUnchecked(int(sym)), b)
	})
	if !ok {
		return NoSymbol, false
	}
	return Symbol(sym), true
}

func (in *Interner[T, K]) refuse(err error) error {
	err = translateError(err, in.arena.Len(), in.arena.Size(), in.kind.Name())
	if in.logger != nil {
		in.logger.LogRefused(context.Background(), in.arena.Len(), err)
	}
	if in.metrics != nil {
		in.metrics.RecordRefused(err)
	}
	return err
}

const componentLookup = "lookup"

func (in *Interner[T, K]) onArenaGrow(e arena.GrowEvent) {
	in.onGrow(e.Component, e.OldCap, e.NewCap)
}

func (in *Interner[T, K]) onGrow(component string, oldCap, newCap int) {
	if in.logger != nil {
		in.logger.LogGrowth(context.Background(), component, oldCap, newCap, in.arena.Len())
	}
	if in.metrics != nil {
		in.metrics.RecordGrowth(component, oldCap, newCap)
	}
}
