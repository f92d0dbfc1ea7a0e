package hashintern

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/hupe1980/hashintern/codec"
	"github.com/hupe1980/hashintern/internal/fs"
	"github.com/hupe1980/hashintern/kind"
	"github.com/hupe1980/hashintern/snapshot"
	"github.com/hupe1980/hashintern/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	words := testutil.Words(500, 3)

	for _, c := range []snapshot.Compression{snapshot.None, snapshot.LZ4, snapshot.ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			in, err := FromSlice[string, kind.String](words)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, in.WriteSnapshot(&buf, snapshot.WithCompression(c)))

			out, err := ReadSnapshot[string, kind.String](&buf)
			require.NoError(t, err)
			require.Equal(t, in.Len(), out.Len())

			for sym, v := range in.All() {
				got, ok := out.Resolve(sym)
				require.True(t, ok)
				assert.Equal(t, v, got)

				h, _ := in.GetHash(sym)
				assert.Equal(t, h, out.GetHashUnchecked(sym))
			}
		})
	}
}

func TestSnapshotEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBytes().WriteSnapshot(&buf))

	out, err := ReadSnapshot[[]byte, kind.Bytes](&buf)
	require.NoError(t, err)
	assert.True(t, out.IsEmpty())
}

func TestSnapshotCorruptData(t *testing.T) {
	in := NewString()
	in.MustGetOrIntern("cat")

	var buf bytes.Buffer
	require.NoError(t, in.WriteSnapshot(&buf))
	data := buf.Bytes()
	data[len(data)-1] ^= 0xff

	_, err := ReadSnapshot[string, kind.String](bytes.NewReader(data))
	require.ErrorIs(t, err, ErrCorruptSnapshot)
	require.ErrorIs(t, err, snapshot.ErrCorrupt)
}

func TestSnapshotRejectsInvalidEntries(t *testing.T) {
	raw := NewBytes()
	raw.MustGetOrIntern([]byte("fine"))
	raw.MustGetOrIntern([]byte{0xff, 0xfe})

	var buf bytes.Buffer
	require.NoError(t, raw.WriteSnapshot(&buf))

	_, err := ReadSnapshot[string, kind.String](&buf)
	require.ErrorIs(t, err, ErrEncoding)
}

func TestSnapshotRejectsDuplicates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, snapshot.Write(&buf, slices.Values([][]byte{[]byte("a"), []byte("a")})))

	_, err := ReadSnapshot[string, kind.String](&buf)
	require.ErrorIs(t, err, ErrCorruptSnapshot)
	require.ErrorIs(t, err, ErrDuplicateEntry)
}

func TestSnapshotKeepsOptions(t *testing.T) {
	in := NewString()
	in.MustGetOrIntern("a")
	in.MustGetOrIntern("b")

	var buf bytes.Buffer
	require.NoError(t, in.WriteSnapshot(&buf))

	_, err := ReadSnapshot[string, kind.String](&buf, WithLimits(1, 0))
	require.ErrorIs(t, err, ErrCapacity)
}

func TestJSONRoundTrip(t *testing.T) {
	in := NewString()
	for _, w := range []string{"cat", "dog", "bird"} {
		in.MustGetOrIntern(w)
	}

	data, err := in.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["cat","dog","bird"]`, string(data))

	var out StringInterner
	require.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, Symbol(1), out.MustGetOrIntern("dog"))
	assert.Equal(t, 3, out.Len())

	assert.ErrorIs(t, out.UnmarshalJSON(data), ErrNotEmpty)
}

func TestCodecRoundTripAllCodecs(t *testing.T) {
	in := NewRunes()
	in.MustGetOrIntern([]rune("αβγ"))
	in.MustGetOrIntern([]rune("x"))

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := in.Encode(c)
			require.NoError(t, err)

			out := NewRunes()
			require.NoError(t, out.Decode(c, data))

			v, ok := out.Resolve(0)
			require.True(t, ok)
			assert.Equal(t, []rune("αβγ"), v)
		})
	}
}

func TestDecodeRejectsDuplicatesAndInvalid(t *testing.T) {
	err := NewString().Decode(codec.JSON{}, []byte(`["a","a"]`))
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.NotErrorIs(t, err, ErrCorruptSnapshot)

	assert.ErrorIs(t, NewRunes().Decode(codec.JSON{}, []byte(`[[55296]]`)), ErrEncoding)
	assert.Error(t, NewString().Decode(codec.JSON{}, []byte(`{`)))
}

func TestFailedDecodeLeavesInternerEmpty(t *testing.T) {
	t.Run("invalid entry", func(t *testing.T) {
		var in RuneInterner
		err := in.UnmarshalJSON([]byte(`[[97],[98],[1114112]]`))
		require.ErrorIs(t, err, ErrEncoding)
		assert.Equal(t, 0, in.Len())
		assert.False(t, in.Contains([]rune("a")))

		require.NoError(t, in.UnmarshalJSON([]byte(`[[97]]`)))
		assert.Equal(t, 1, in.Len())
		assert.Equal(t, Symbol(0), in.MustGetOrIntern([]rune("a")))
	})

	t.Run("duplicate entry", func(t *testing.T) {
		in := NewString(WithLimits(3, 0))
		require.ErrorIs(t, in.Decode(codec.GoJSON{}, []byte(`["x","y","x"]`)), ErrDuplicateEntry)
		assert.True(t, in.IsEmpty())

		require.NoError(t, in.Decode(codec.GoJSON{}, []byte(`["x","y","z"]`)))
		assert.Equal(t, 3, in.Len())

		// The receiver keeps its options after a successful decode.
		_, err := in.GetOrIntern("w")
		require.ErrorIs(t, err, ErrCapacity)
	})

	t.Run("growth after decode", func(t *testing.T) {
		var in StringInterner
		require.NoError(t, in.UnmarshalJSON([]byte(`["a"]`)))
		for _, w := range testutil.Words(500, 3) {
			in.MustGetOrIntern(w)
		}
		v, ok := in.Resolve(0)
		require.True(t, ok)
		assert.Equal(t, "a", v)
	})
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.snap")

	in := NewString()
	for _, w := range testutil.Words(200, 2) {
		in.MustGetOrIntern(w)
	}
	require.NoError(t, in.WriteSnapshotFile(path, snapshot.WithCompression(snapshot.LZ4)))

	out, err := ReadSnapshotFile[string, kind.String](path)
	require.NoError(t, err)
	require.Equal(t, in.Len(), out.Len())

	// Values must outlive the mapping.
	for sym, v := range in.All() {
		got, ok := out.Resolve(sym)
		require.True(t, ok)
		assert.Equal(t, v, got)
	}
}

func TestSnapshotFileFailedWriteKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.snap")

	old := NewString()
	old.MustGetOrIntern("old")
	require.NoError(t, old.WriteSnapshotFile(path))

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(".tmp", fs.Fault{FailAfterBytes: -1, FailOnSync: true})

	in := NewString()
	in.MustGetOrIntern("new")
	require.ErrorIs(t, in.writeSnapshotFile(ffs, path), fs.ErrInjected)

	out, err := ReadSnapshotFile[string, kind.String](path)
	require.NoError(t, err)
	assert.True(t, out.Contains("old"))
	assert.False(t, out.Contains("new"))
}

func TestReadSnapshotFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadSnapshotFile[string, kind.String](filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = ReadSnapshotFile[string, kind.String](empty)
	require.ErrorIs(t, err, ErrCorruptSnapshot)
}
