// Package symset provides compressed sets of interner symbols.
//
// Symbols are dense 32-bit indices, which is exactly what a Roaring bitmap
// stores best. A Set is handy for tag sets, visited sets or any "which of
// these values occur" question asked over interned data.
package symset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hashintern"
	"github.com/hupe1980/hashintern/kind"
)

// Set is a set of symbols backed by a Roaring bitmap.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Of creates a set holding syms. NoSymbol is ignored.
func Of(syms ...hashintern.Symbol) *Set {
	s := New()
	for _, sym := range syms {
		s.Add(sym)
	}
	return s
}

// Add inserts sym. Adding NoSymbol is a no-op.
func (s *Set) Add(sym hashintern.Symbol) {
	if sym.IsValid() {
		s.rb.Add(uint32(sym))
	}
}

// Remove deletes sym.
func (s *Set) Remove(sym hashintern.Symbol) {
	s.rb.Remove(uint32(sym))
}

// Contains reports whether sym is in the set.
func (s *Set) Contains(sym hashintern.Symbol) bool {
	return sym.IsValid() && s.rb.Contains(uint32(sym))
}

// IsEmpty reports whether the set is empty.
func (s *Set) IsEmpty() bool { return s.rb.IsEmpty() }

// Len returns the number of symbols in the set.
func (s *Set) Len() int { return int(s.rb.GetCardinality()) } //nolint:gosec // at most 2^32-1

// Clone returns a deep copy.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// All yields the symbols in ascending order, which is insertion order of the
// interner that issued them.
func (s *Set) All() iter.Seq[hashintern.Symbol] {
	return func(yield func(hashintern.Symbol) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(hashintern.Symbol(it.Next())) {
				return
			}
		}
	}
}

// Intersect keeps only symbols also in other.
func (s *Set) Intersect(other *Set) { s.rb.And(other.rb) }

// Union adds every symbol of other.
func (s *Set) Union(other *Set) { s.rb.Or(other.rb) }

// Difference removes every symbol of other.
func (s *Set) Difference(other *Set) { s.rb.AndNot(other.rb) }

// Clear removes all symbols.
func (s *Set) Clear() { s.rb.Clear() }

// SizeInBytes returns the serialized size of the bitmap.
func (s *Set) SizeInBytes() uint64 { return s.rb.GetSizeInBytes() }

// InternAll interns every value and returns the set of their symbols.
// On error, values interned before the failing one stay interned.
func InternAll[T any, K kind.Kind[T]](in *hashintern.Interner[T, K], values []T) (*Set, error) {
	s := New()
	for _, v := range values {
		sym, err := in.GetOrIntern(v)
		if err != nil {
			return nil, err
		}
		s.rb.Add(uint32(sym))
	}
	return s, nil
}

// Values yields the value of every symbol in s, resolved through in.
// Symbols in does not know are skipped.
func Values[T any, K kind.Kind[T]](in *hashintern.Interner[T, K], s *Set) iter.Seq[T] {
	return func(yield func(T) bool) {
		for sym := range s.All() {
			v, ok := in.Resolve(sym)
			if !ok {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}
