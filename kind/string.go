package kind

import (
	"fmt"
	"unicode/utf8"
)

// String is the UTF-8 text kind for Go strings.
type String struct{}

// Name implements Kind.
func (String) Name() string { return "string" }

// Bytes implements Kind.
func (String) Bytes(v string) []byte { return stringBytes(v) }

// Validate implements Kind. Only well-formed UTF-8 is accepted.
func (String) Validate(b []byte) error {
	if !utf8.Valid(b) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalid)
	}
	return nil
}

// FromBytes implements Kind. The returned string aliases b.
func (String) FromBytes(b []byte) string { return bytesString(b) }
