package hashintern

import (
	"math"
	"strconv"
)

// Symbol identifies one interned value.
//
// Symbols are dense indices assigned in insertion order starting at 0. They
// are only meaningful for the interner that issued them and stay valid for
// that interner's whole lifetime. Comparing two symbols of the same interner
// is equivalent to comparing the values they stand for.
type Symbol uint32

// NoSymbol is the reserved "absent" value. It is never issued, so optional
// symbol fields can use it instead of a separate flag.
const NoSymbol Symbol = math.MaxUint32

// MaxSymbols is the number of distinct values an interner can hold on a
// 64-bit platform. On 32-bit platforms the limit is math.MaxInt32.
const MaxSymbols uint64 = uint64(NoSymbol)

// SymbolFromIndex returns the symbol for a dense index, or false if the
// index is negative or does not fit the symbol range.
func SymbolFromIndex(i int) (Symbol, bool) {
	if i < 0 || uint64(i) >= uint64(NoSymbol) {
		return NoSymbol, false
	}
	return Symbol(i), true
}

// Index returns the dense index of s. It returns -1 for NoSymbol.
func (s Symbol) Index() int {
	if s == NoSymbol {
		return -1
	}
	return int(s)
}

// IsValid reports whether s is not NoSymbol. It does not check that s was
// issued by any particular interner.
func (s Symbol) IsValid() bool { return s != NoSymbol }

func (s Symbol) String() string {
	if s == NoSymbol {
		return "Symbol(none)"
	}
	return "Symbol(" + strconv.FormatUint(uint64(s), 10) + ")"
}
