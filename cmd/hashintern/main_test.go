package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStatsFromStdin(t *testing.T) {
	out, err := run(t, "cat\ndog\ncat\nbird\n", "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "lines:       4")
	assert.Contains(t, out, "distinct:    3")
	assert.Contains(t, out, "duplicates:  1")
	assert.Contains(t, out, "hasher:      xxhash")
}

func TestStatsFromFilesCountsRefusedLines(t *testing.T) {
	path := writeFile(t, "a\n\xff\nb\na\n")

	out, err := run(t, "", "stats", "--hasher", "fnv1a", "--log-level", "error", path)
	require.NoError(t, err)

	assert.Contains(t, out, "distinct:    2")
	assert.Contains(t, out, "refused:     1")
	assert.Contains(t, out, "hasher:      fnv1a")
}

func TestStatsStopsAtCapacity(t *testing.T) {
	_, err := run(t, "a\nb\nc\n", "stats", "--max-entries", "2", "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity overflow")
}

func TestEnvironmentConfiguresHasher(t *testing.T) {
	t.Setenv("HASHINTERN_HASHER", "maphash")

	out, err := run(t, "x\n", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "hasher:      maphash")
}

func TestInvalidConfig(t *testing.T) {
	tests := [][]string{
		{"stats", "--hasher", "md5"},
		{"stats", "--log-level", "loud"},
		{"stats", "--max-bytes", "lots"},
		{"stats", "--max-entries", "-1"},
		{"stats", "--compression", "brotli"},
		{"stats", "--parallel", "0"},
		{"stats", "--io-limit", "fast"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			_, err := run(t, "", args...)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSnapshotWriteAndDump(t *testing.T) {
	input := writeFile(t, "alpha\nbeta\nalpha\ngamma\n")
	snap := filepath.Join(t.TempDir(), "words.snap")

	out, err := run(t, "", "snapshot", "write", "--compression", "zstd", "-o", snap, input)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 entries")

	out, err = run(t, "", "snapshot", "dump", "--entries", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "version:     1")
	assert.Contains(t, out, "compression: zstd")
	assert.Contains(t, out, "entries:     3")
	assert.Contains(t, out, "0\t\"alpha\"")
	assert.Contains(t, out, "2\t\"gamma\"")
}

func TestSnapshotDumpMissingFile(t *testing.T) {
	_, err := run(t, "", "snapshot", "dump", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestMaxBytesAcceptsHumanSizes(t *testing.T) {
	out, err := run(t, "abc\n", "stats", "--max-bytes", "1KiB")
	require.NoError(t, err)
	assert.Contains(t, out, "distinct:    1")
}

func TestStatsInternsFilesInArgumentOrder(t *testing.T) {
	first := writeFile(t, "one\ntwo\n")
	second := writeFile(t, "three\none\n")
	snap := filepath.Join(t.TempDir(), "ordered.snap")

	_, err := run(t, "", "snapshot", "write", "--parallel", "2", "--io-limit", "1MiB", "-o", snap, first, second)
	require.NoError(t, err)

	out, err := run(t, "", "snapshot", "dump", "--entries", snap)
	require.NoError(t, err)
	assert.Contains(t, out, "0\t\"one\"")
	assert.Contains(t, out, "1\t\"two\"")
	assert.Contains(t, out, "2\t\"three\"")
}

func TestStatsMissingFile(t *testing.T) {
	_, err := run(t, "", "stats", filepath.Join(t.TempDir(), "absent.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
