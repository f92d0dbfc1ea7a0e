package hashintern

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hashintern/internal/arena"
	"github.com/hupe1980/hashintern/internal/conv"
	"github.com/hupe1980/hashintern/kind"
	"github.com/hupe1980/hashintern/snapshot"
)

var (
	// ErrCapacity is wrapped by every capacity overflow.
	ErrCapacity = errors.New("interner capacity exceeded")

	// ErrEncoding is wrapped by every rejected value.
	ErrEncoding = errors.New("invalid encoding")

	// ErrCorruptSnapshot is returned when a snapshot cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrDuplicateEntry is returned when a restored value list repeats a
	// value.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// ErrCapacityOverflow reports that interning a value would exceed the
// symbol range or the configured limits. The interner is left unchanged.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCapacityOverflow struct {
	Len   int // entries at the time of the failed insert
	Bytes int // arena bytes at the time of the failed insert
	cause error
}

func (e *ErrCapacityOverflow) Error() string {
	return fmt.Sprintf("capacity overflow at %d entries / %d bytes: %v", e.Len, e.Bytes, e.cause)
}

func (e *ErrCapacityOverflow) Unwrap() []error { return []error{ErrCapacity, e.cause} }

// ErrInvalidEncoding reports that a value failed its kind's validation.
// Nothing was stored.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidEncoding struct {
	Kind  string
	cause error
}

func (e *ErrInvalidEncoding) Error() string {
	return fmt.Sprintf("invalid %s value: %v", e.Kind, e.cause)
}

func (e *ErrInvalidEncoding) Unwrap() []error { return []error{ErrEncoding, e.cause} }

// translateError maps errors of internal packages onto the public taxonomy.
func translateError(err error, entries, bytes int, kindName string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, arena.ErrCapacity) || errors.Is(err, conv.ErrOverflow) {
		return &ErrCapacityOverflow{Len: entries, Bytes: bytes, cause: err}
	}
	if errors.Is(err, kind.ErrInvalid) {
		return &ErrInvalidEncoding{Kind: kindName, cause: err}
	}
	if errors.Is(err, snapshot.ErrCorrupt) {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	return err
}
