package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.snap")

	require.NoError(t, WriteFileAtomic(nil, path, 0o600, writeString("hello")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = Default.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileAtomicKeepsOldFileOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		fault Fault
		write func(io.Writer) error
	}{
		{"write limit", Fault{FailAfterBytes: 2}, writeString("new content")},
		{"sync", Fault{FailAfterBytes: -1, FailOnSync: true}, writeString("new")},
		{"close", Fault{FailAfterBytes: -1, FailOnClose: true}, writeString("new")},
		{"rename", Fault{FailAfterBytes: -1, FailOnRename: true}, writeString("new")},
		{"callback", Fault{FailAfterBytes: -1}, func(io.Writer) error { return errors.New("boom") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.snap")
			require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

			ffs := NewFaultyFS(nil)
			ffs.AddRule(".tmp", tt.fault)

			err := WriteFileAtomic(ffs, path, 0o600, tt.write)
			require.Error(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "old", string(data))

			_, err = ffs.Stat(path + ".tmp")
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestFaultyFSCustomError(t *testing.T) {
	custom := errors.New("disk full")
	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("x", Fault{FailAfterBytes: 0, Err: custom})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "x"), os.O_CREATE|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("a"))
	assert.ErrorIs(t, err, custom)
}

func TestFaultyFSPassThrough(t *testing.T) {
	ffs := NewFaultyFS(nil)
	path := filepath.Join(t.TempDir(), "plain")

	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	require.NoError(t, ffs.Rename(path, path+".2"))
	require.NoError(t, ffs.Remove(path+".2"))
}
