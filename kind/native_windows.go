//go:build windows

package kind

import "golang.org/x/sys/windows"

// validateNative applies the windows rule: the string must convert to a
// NUL-free UTF-16 sequence.
func validateNative(s string) error {
	_, err := windows.UTF16FromString(s)
	return err
}
