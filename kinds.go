package hashintern

import (
	"iter"

	"github.com/hupe1980/hashintern/kind"
)

type (
	// StringInterner interns UTF-8 strings.
	StringInterner = Interner[string, kind.String]
	// BytesInterner interns arbitrary byte strings.
	BytesInterner = Interner[[]byte, kind.Bytes]
	// CStringInterner interns NUL-terminated byte strings (see kind.CStringFrom).
	CStringInterner = Interner[[]byte, kind.CString]
	// NativeInterner interns platform path/OS strings.
	NativeInterner = Interner[string, kind.Native]
	// RuneInterner interns rune sequences.
	RuneInterner = Interner[[]rune, kind.Runes]
)

// NewString creates an interner for UTF-8 strings.
func NewString(opts ...Option) *StringInterner { return New[string, kind.String](opts...) }

// NewBytes creates an interner for byte strings.
func NewBytes(opts ...Option) *BytesInterner { return New[[]byte, kind.Bytes](opts...) }

// NewCString creates an interner for NUL-terminated byte strings.
func NewCString(opts ...Option) *CStringInterner { return New[[]byte, kind.CString](opts...) }

// NewNative creates an interner for platform OS strings.
func NewNative(opts ...Option) *NativeInterner { return New[string, kind.Native](opts...) }

// NewRunes creates an interner for rune sequences.
func NewRunes(opts ...Option) *RuneInterner { return New[[]rune, kind.Runes](opts...) }

// FromSeq creates an interner of kind K holding the values of seq, in order.
func FromSeq[T any, K kind.Kind[T]](seq iter.Seq[T], opts ...Option) (*Interner[T, K], error) {
	in := New[T, K](opts...)
	if err := in.Extend(seq); err != nil {
		return nil, err
	}
	return in, nil
}

// FromSlice creates an interner of kind K holding values, in order.
func FromSlice[T any, K kind.Kind[T]](values []T, opts ...Option) (*Interner[T, K], error) {
	opts = append([]Option{WithCapacity(len(values), 0)}, opts...)
	in := New[T, K](opts...)
	for _, v := range values {
		if _, err := in.GetOrIntern(v); err != nil {
			return nil, err
		}
	}
	return in, nil
}
