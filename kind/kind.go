// Package kind defines the string kinds an interner can store.
//
// A Kind converts a typed value into the bytes the arena stores and turns
// stored bytes back into a typed value. Each interner is bound to exactly one
// Kind for its lifetime through a type parameter, so the conversion calls are
// resolved at compile time.
//
// # Soundness
//
// FromBytes performs no validation and aliases its input. It must only be
// called with bytes that passed Validate when they were first stored and that
// are never written again afterwards. The arena guarantees both: it only
// receives bytes after validation and it never mutates stored bytes.
package kind

import (
	"errors"
	"unsafe"
)

// ErrInvalid is wrapped by every validation error returned by a Kind.
var ErrInvalid = errors.New("invalid encoding")

// Kind is the adapter contract between a value type T and the arena.
//
// Implementations are zero-size types; their methods must not depend on
// instance state.
type Kind[T any] interface {
	// Name returns a short, stable identifier of the kind.
	Name() string
	// Bytes returns the byte view of v without copying.
	Bytes(v T) []byte
	// Validate reports whether b is a valid encoding for this kind.
	Validate(b []byte) error
	// FromBytes reconstructs a value from bytes that previously passed
	// Validate. It does not copy.
	FromBytes(b []byte) T
}

// stringBytes returns the bytes of s without copying. The result must not
// be modified.
func stringBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s)) //nolint:gosec // read-only view
}

// bytesString returns a string sharing memory with b. b must never be
// modified afterwards.
func bytesString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b)) //nolint:gosec // b is immutable arena memory
}
