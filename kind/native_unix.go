//go:build unix

package kind

import "golang.org/x/sys/unix"

// validateNative applies the unix rule: any byte sequence without NUL.
func validateNative(s string) error {
	_, err := unix.ByteSliceFromString(s)
	return err
}
