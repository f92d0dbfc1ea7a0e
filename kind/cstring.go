package kind

import (
	"bytes"
	"fmt"
)

// CString is the NUL-terminated byte sequence kind. Values include their
// terminating NUL, which is stored and hashed as part of the value.
type CString struct{}

// Name implements Kind.
func (CString) Name() string { return "cstring" }

// Bytes implements Kind.
func (CString) Bytes(v []byte) []byte { return v }

// Validate implements Kind: the value must end in NUL and contain no other NUL.
func (CString) Validate(b []byte) error {
	n := len(b)
	if n == 0 || b[n-1] != 0 {
		return fmt.Errorf("%w: missing NUL terminator", ErrInvalid)
	}
	if i := bytes.IndexByte(b[:n-1], 0); i >= 0 {
		return fmt.Errorf("%w: interior NUL at byte %d", ErrInvalid, i)
	}
	return nil
}

// FromBytes implements Kind.
func (CString) FromBytes(b []byte) []byte { return b[:len(b):len(b)] }

// CStringFrom returns s followed by a NUL terminator.
func CStringFrom(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// CStringText returns the value of a C string without its terminator.
func CStringText(b []byte) string {
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return string(b)
}
