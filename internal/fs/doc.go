// Package fs abstracts the few filesystem operations snapshot files need,
// so that tests can inject I/O failures.
//
//   - [LocalFS] uses the os package; [Default] is a LocalFS.
//   - [FaultyFS] wraps another FileSystem and fails writes, syncs, closes or
//     renames on request.
//
// [WriteFileAtomic] writes a temporary file next to the target, syncs it
// and renames it into place, so readers never observe a partial file.
//
// Operations take no context.Context: local file I/O cannot be cancelled
// at the syscall level.
package fs
