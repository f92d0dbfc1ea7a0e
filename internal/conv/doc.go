// Package conv provides checked integer conversions for the interner's
// index types.
//
// Symbols are uint32 and arena offsets are int. Every conversion between the
// two goes through this package so that an entry count or byte size that no
// longer fits the target type is reported as ErrOverflow instead of silently
// wrapping around.
package conv
