package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/hupe1980/hashintern/internal/hash"
)

// Version is the current format version.
const Version = 1

var magic = [4]byte{'H', 'I', 'N', 'T'}

const (
	headerSize  = len(magic) + 2
	trailerSize = 4
)

var (
	// ErrCorrupt is wrapped by every decoding failure.
	ErrCorrupt = errors.New("snapshot: corrupt data")

	// ErrTooLarge is returned by Write when the entry block exceeds the
	// 32-bit block size.
	ErrTooLarge = errors.New("snapshot: entry block too large")
)

// Options configures Write.
type Options struct {
	Compression Compression
}

// Option configures Write.
type Option func(*Options)

// WithCompression selects the block compression.
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

// Snapshot is a decoded snapshot.
type Snapshot struct {
	Version     uint8
	Compression Compression
	// Entries in insertion order. They share one backing buffer.
	Entries [][]byte
	// RawSize is the size of the uncompressed entry block.
	RawSize int
	// StoredSize is the total encoded size including header and trailer.
	StoredSize int
}

// Write encodes entries in iteration order and writes the snapshot to w.
func Write(w io.Writer, entries iter.Seq[[]byte], opts ...Option) error {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Compression > ZSTD {
		return fmt.Errorf("snapshot: unsupported compression %s", o.Compression)
	}

	var (
		block []byte
		count uint64
	)
	for e := range entries {
		block = binary.AppendUvarint(block, uint64(len(e)))
		block = append(block, e...)
		count++
	}
	if uint64(len(block)) > math.MaxUint32 {
		return ErrTooLarge
	}

	encoded, err := compressBlock(block, o.Compression)
	if err != nil {
		return fmt.Errorf("snapshot: compress: %w", err)
	}

	crc := hash.NewCRC32C()
	mw := io.MultiWriter(w, crc)

	header := make([]byte, 0, headerSize+binary.MaxVarintLen64)
	header = append(header, magic[:]...)
	header = append(header, Version, byte(o.Compression))
	header = binary.AppendUvarint(header, count)
	if _, err := mw.Write(header); err != nil {
		return err
	}
	if _, err := mw.Write(encoded); err != nil {
		return err
	}

	_, err = w.Write(binary.LittleEndian.AppendUint32(nil, crc.Sum32()))
	return err
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode decodes a snapshot held in memory. The returned entries alias data
// when the block is stored uncompressed.
func Decode(data []byte) (*Snapshot, error) {
	if len(data) < headerSize+trailerSize {
		return nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}

	body := data[:len(data)-trailerSize]
	if got, want := hash.CRC32C(body), binary.LittleEndian.Uint32(data[len(body):]); got != want {
		return nil, fmt.Errorf("%w: checksum mismatch (got %08x, want %08x)", ErrCorrupt, got, want)
	}

	s := &Snapshot{
		Version:     data[4],
		Compression: Compression(data[5]),
		StoredSize:  len(data),
	}
	if s.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, s.Version)
	}
	if s.Compression > ZSTD {
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, uint8(s.Compression))
	}

	rest := body[headerSize:]
	count, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad entry count", ErrCorrupt)
	}
	rest = rest[n:]

	raw, used, err := decompressBlock(rest, s.Compression)
	if err != nil {
		return nil, err
	}
	if used != len(rest) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(rest)-used)
	}
	s.RawSize = len(raw)

	// Each entry takes at least one length byte.
	if count > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: entry count %d exceeds block size", ErrCorrupt, count)
	}

	s.Entries = make([][]byte, 0, count)
	for len(raw) > 0 {
		size, n := binary.Uvarint(raw)
		if n <= 0 || size > uint64(len(raw)-n) {
			return nil, fmt.Errorf("%w: entry %d truncated", ErrCorrupt, len(s.Entries))
		}
		end := n + int(size)
		s.Entries = append(s.Entries, raw[n:end:end])
		raw = raw[end:]
	}
	if uint64(len(s.Entries)) != count {
		return nil, fmt.Errorf("%w: header announces %d entries, block holds %d", ErrCorrupt, count, len(s.Entries))
	}

	return s, nil
}
