//go:build !unix && !windows

package kind

import (
	"errors"
	"strings"
)

// validateNative applies the portable rule used on targets without a host
// OS string type (js/wasm, wasip1, plan9): no NUL bytes.
func validateNative(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return errors.New("string contains NUL")
	}
	return nil
}
