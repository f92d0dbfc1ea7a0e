package kind

import "fmt"

// Native is the platform-native text kind: strings as the operating system
// accepts them in paths, arguments and environment entries. Validation
// follows the host platform's own rules (see validateNative).
type Native struct{}

// Name implements Kind.
func (Native) Name() string { return "native" }

// Bytes implements Kind.
func (Native) Bytes(v string) []byte { return stringBytes(v) }

// Validate implements Kind.
func (Native) Validate(b []byte) error {
	if err := validateNative(bytesString(b)); err != nil {
		return fmt.Errorf("%w: not a native string: %w", ErrInvalid, err)
	}
	return nil
}

// FromBytes implements Kind.
func (Native) FromBytes(b []byte) string { return bytesString(b) }
