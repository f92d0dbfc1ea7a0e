package kind

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
	"unsafe"
)

// RuneSize is the width of one stored codepoint in bytes.
const RuneSize = int(unsafe.Sizeof(rune(0)))

// Runes is the fixed-width codepoint sequence kind for []rune values.
//
// Codepoints are stored in host byte order. FromBytes reinterprets arena
// memory as []rune in place: the arena buffer is 64-byte aligned and every
// span of a Runes interner is a multiple of RuneSize, so each span starts on
// a rune boundary.
type Runes struct{}

// Name implements Kind.
func (Runes) Name() string { return "runes" }

// Bytes implements Kind.
func (Runes) Bytes(v []rune) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*RuneSize) //nolint:gosec // read-only view
}

// Validate implements Kind: the length must be a whole number of codepoints
// and each codepoint must be a Unicode scalar value.
func (Runes) Validate(b []byte) error {
	if len(b)%RuneSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrInvalid, len(b), RuneSize)
	}
	for i := 0; i < len(b); i += RuneSize {
		r := rune(binary.NativeEndian.Uint32(b[i:])) //nolint:gosec // reinterpretation of a stored codepoint
		if !utf8.ValidRune(r) {
			return fmt.Errorf("%w: codepoint %#x at index %d out of range", ErrInvalid, r, i/RuneSize)
		}
	}
	return nil
}

// FromBytes implements Kind.
func (Runes) FromBytes(b []byte) []rune {
	n := len(b) / RuneSize
	if n == 0 {
		return []rune{}
	}
	return unsafe.Slice((*rune)(unsafe.Pointer(unsafe.SliceData(b))), n)[:n:n] //nolint:gosec // aligned, validated arena memory
}
