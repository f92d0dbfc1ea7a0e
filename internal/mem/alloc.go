package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of buffers returned by AllocAligned.
const Alignment = 64

// AllocAligned allocates a zeroed byte slice of the given size with 64-byte
// alignment. The returned slice has len == cap == size.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	buf := make([]byte, size+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := int((Alignment - (addr & (Alignment - 1))) & (Alignment - 1))

	return buf[offset : offset+size : offset+size]
}

// IsAligned reports whether the first element of b sits on an n-byte boundary.
// Empty slices are considered aligned.
func IsAligned(b []byte, n uintptr) bool {
	if len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&b[0]))%n == 0 //nolint:gosec // address inspection only
}
