package snapshot

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how the entry block is stored.
type Compression uint8

const (
	// None stores the block as is.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Compression = 1
	// ZSTD uses Zstandard (better ratio).
	ZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression returns the compression for a name as printed by String.
// The empty string selects None.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return None, fmt.Errorf("snapshot: unknown compression %q", name)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBlockSize))
	return dec
}

// Block format: [uncompressed u32][compressed u32][data]. A compressed size
// of 0 marks a stored block.
const blockHeaderSize = 8

// storeRatio is the compressed/raw ratio above which a block is stored.
const storeRatio = 0.9

// maxBlockSize is the largest raw size the block header can express.
const maxBlockSize = math.MaxUint32

// lz4MaxRatio bounds how much an LZ4 block can expand: every extra match
// length byte adds at most 255 output bytes.
const lz4MaxRatio = 255

// zstdPrealloc caps the output buffer reserved up front for a ZSTD block.
// The decoder grows it as frames are actually produced.
const zstdPrealloc = 1 << 20

func compressBlock(data []byte, c Compression) ([]byte, error) {
	var (
		compressed []byte
		err        error
	)

	switch c {
	case LZ4:
		compressed, err = compressLZ4(data)
	case ZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*storeRatio {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data))) //nolint:gosec // checked by caller
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))       //nolint:gosec // checked by caller
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed))) //nolint:gosec // smaller than data
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	// n == 0 means incompressible.
	return dst[:n], nil
}

// decompressBlock decodes one block and returns the raw payload together
// with the number of input bytes it consumed.
func decompressBlock(data []byte, c Compression) ([]byte, int, error) {
	if len(data) < blockHeaderSize {
		return nil, 0, fmt.Errorf("%w: block header truncated", ErrCorrupt)
	}

	rawSize := uint64(binary.LittleEndian.Uint32(data[0:]))
	storedSize := uint64(binary.LittleEndian.Uint32(data[4:]))
	body := data[blockHeaderSize:]

	if storedSize == 0 {
		if uint64(len(body)) < rawSize {
			return nil, 0, fmt.Errorf("%w: stored block truncated", ErrCorrupt)
		}
		return body[:rawSize], blockHeaderSize + int(rawSize), nil
	}

	if uint64(len(body)) < storedSize {
		return nil, 0, fmt.Errorf("%w: compressed block truncated", ErrCorrupt)
	}
	body = body[:storedSize]

	var (
		raw []byte
		err error
	)
	switch c {
	case LZ4:
		if rawSize > storedSize*lz4MaxRatio {
			return nil, 0, fmt.Errorf("%w: raw size %d exceeds lz4 bound for %d stored bytes", ErrCorrupt, rawSize, storedSize)
		}
		raw = make([]byte, rawSize)
		var n int
		n, err = lz4.UncompressBlock(body, raw)
		raw = raw[:max(n, 0)]
	case ZSTD:
		dec := getZstdDecoder()
		raw, err = dec.DecodeAll(body, make([]byte, 0, min(rawSize, zstdPrealloc)))
		zstdDecoderPool.Put(dec)
	default:
		return nil, 0, fmt.Errorf("%w: compressed block with compression %s", ErrCorrupt, c)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if uint64(len(raw)) != rawSize {
		return nil, 0, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
	}

	return raw, blockHeaderSize + int(storedSize), nil
}
