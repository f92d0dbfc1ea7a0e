package hashintern

import (
	"errors"

	"github.com/hupe1980/hashintern/codec"
)

// ErrNotEmpty is returned when decoding into an interner that already holds
// values.
var ErrNotEmpty = errors.New("interner is not empty")

// MarshalJSON encodes the interned values as a JSON array in insertion
// order, using codec.Default.
func (in *Interner[T, K]) MarshalJSON() ([]byte, error) {
	return in.Encode(codec.Default)
}

// UnmarshalJSON re-interns the values of a JSON array in order. The
// receiver must be empty; a zero Interner is initialized with defaults.
func (in *Interner[T, K]) UnmarshalJSON(data []byte) error {
	return in.Decode(codec.Default, data)
}

// Encode encodes the interned values in insertion order with c.
func (in *Interner[T, K]) Encode(c codec.Codec) ([]byte, error) {
	values := make([]T, 0, in.Len())
	for _, v := range in.All() {
		values = append(values, v)
	}
	return c.Marshal(values)
}

// Decode decodes a value list produced by Encode and interns it in order.
// Symbol i resolves to the i-th value afterwards. On error the receiver is
// left empty.
//
// Repeated values are reported as ErrDuplicateEntry, since they could not
// have come from Encode.
func (in *Interner[T, K]) Decode(c codec.Codec, data []byte) error {
	if in.arena == nil {
		in.init(defaultOptions())
	}
	if !in.IsEmpty() {
		return ErrNotEmpty
	}

	var values []T
	if err := c.Unmarshal(data, &values); err != nil {
		return err
	}

	entries := make([][]byte, len(values))
	for i, v := range values {
		entries[i] = in.kind.Bytes(v)
	}

	fresh := in.Clone()
	if err := fresh.restore(entries); err != nil {
		return err
	}
	in.adopt(fresh)
	return nil
}

// adopt moves the state of src into in and rebinds the callbacks that
// capture the owning interner.
func (in *Interner[T, K]) adopt(src *Interner[T, K]) {
	*in = *src
	in.arena.SetGrowHook(in.onArenaGrow)
	in.hashOf = in.hashes.GetUnchecked32
}
