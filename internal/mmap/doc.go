// Package mmap maps snapshot files read-only into memory.
//
//	m, err := mmap.Open("words.snap")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes() // valid until Close
//
// Unix uses mmap(2) and madvise(2); Windows uses CreateFileMapping and
// MapViewOfFile, where Advise is a no-op. Other platforms read the file
// into memory instead.
//
// Close is idempotent. Callers must not touch the bytes after Close.
package mmap
