package hashintern

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/hashintern/internal/fs"
	"github.com/hupe1980/hashintern/internal/mmap"
	"github.com/hupe1980/hashintern/kind"
	"github.com/hupe1980/hashintern/snapshot"
)

// WriteSnapshot writes every interned value to w in insertion order.
// Hashes are not persisted; ReadSnapshot recomputes them.
func (in *Interner[T, K]) WriteSnapshot(w io.Writer, opts ...snapshot.Option) error {
	o := snapshot.Options{}
	for _, opt := range opts {
		opt(&o)
	}

	err := snapshot.Write(w, in.rawEntries(), opts...)
	if in.logger != nil {
		in.logger.LogSnapshot(context.Background(), in.Len(), o.Compression.String(), err)
	}
	return err
}

// ReadSnapshot builds an Interner from a snapshot written by WriteSnapshot.
// Entries are re-interned in order, so every symbol resolves to the value it
// had when the snapshot was written.
//
// Entries that fail the kind's validation are reported as
// *ErrInvalidEncoding; duplicate entries as ErrCorruptSnapshot.
func ReadSnapshot[T any, K kind.Kind[T]](r io.Reader, opts ...Option) (*Interner[T, K], error) {
	s, err := snapshot.Read(r)
	if err != nil {
		return nil, translateError(err, 0, 0, "")
	}
	return FromSnapshot[T, K](s, opts...)
}

// FromSnapshot builds an Interner from an already decoded snapshot.
func FromSnapshot[T any, K kind.Kind[T]](s *snapshot.Snapshot, opts ...Option) (*Interner[T, K], error) {
	size := 0
	for _, e := range s.Entries {
		size += len(e)
	}

	opts = append([]Option{WithCapacity(len(s.Entries), size)}, opts...)
	in := New[T, K](opts...)
	err := in.restore(s.Entries)
	if errors.Is(err, ErrDuplicateEntry) {
		// A snapshot written by WriteSnapshot never repeats a value.
		err = fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if in.logger != nil {
		in.logger.LogRestore(context.Background(), in.Len(), err)
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (in *Interner[T, K]) restore(entries [][]byte) error {
	for i, e := range entries {
		sym, _, err := in.intern(e)
		if err != nil {
			return err
		}
		if sym.Index() != i {
			return fmt.Errorf("%w: entry %d repeats %v", ErrDuplicateEntry, i, sym)
		}
	}
	return nil
}

// rawEntries yields the stored byte view of every entry.
func (in *Interner[T, K]) rawEntries() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, b := range in.arena.All() {
			if !yield(b) {
				return
			}
		}
	}
}

// WriteSnapshotFile writes a snapshot to path. The file is replaced
// atomically: on error any previous file at path is left intact.
func (in *Interner[T, K]) WriteSnapshotFile(path string, opts ...snapshot.Option) error {
	return in.writeSnapshotFile(fs.Default, path, opts...)
}

func (in *Interner[T, K]) writeSnapshotFile(fsys fs.FileSystem, path string, opts ...snapshot.Option) error {
	return fs.WriteFileAtomic(fsys, path, 0o644, func(w io.Writer) error {
		return in.WriteSnapshot(w, opts...)
	})
}

// ReadSnapshotFile builds an Interner from a snapshot file. The file is
// memory-mapped while its entries are re-interned.
func ReadSnapshotFile[T any, K kind.Kind[T]](path string, opts ...Option) (*Interner[T, K], error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	o := applyOptions(opts)
	// Advice is a hint; a kernel that rejects it still serves the reads.
	if err := m.Advise(mmap.AccessSequential); err != nil && o.logger != nil {
		o.logger.LogAdvise(context.Background(), path, err)
	}

	s, err := snapshot.Decode(m.Bytes())
	if err != nil {
		return nil, translateError(err, 0, 0, "")
	}
	return FromSnapshot[T, K](s, opts...)
}
