package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/fastlist/internal/conv"
)

// ZSTD encoder/decoder pools for efficiency
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

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block header: [UncompressedSize uint32][StoredSize uint32].
// StoredSize == 0 means the data that follows is uncompressed.
const blockHeaderSize = 8

// maxLZ4Ratio bounds how far an LZ4 block can expand; a header claiming more
// is corrupt.
const maxLZ4Ratio = 255

// compressBlock compresses data and prefixes the block header.
// Falls back to storing data uncompressed when compression does not help.
func compressBlock(data []byte, compressionType CompressionType) ([]byte, error) {
	rawSize, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
	}

	var compressed []byte
	switch compressionType {
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed = compressBlockZSTD(data)
	}
	if err != nil {
		return nil, err
	}

	// If compression doesn't help (ratio > 0.9), store uncompressed
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], rawSize)
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], rawSize)
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed))) //nolint:gosec // smaller than rawSize
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func compressBlockZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// decompressBlock decodes the stored bytes of a block whose header fields
// have already been read.
func decompressBlock(stored []byte, rawSize, storedSize uint32, compressionType CompressionType) ([]byte, error) {
	if storedSize == 0 {
		if uint64(len(stored)) != uint64(rawSize) {
			return nil, fmt.Errorf("%w: block data size mismatch", ErrCorrupt)
		}
		return stored, nil
	}

	switch compressionType {
	case CompressionLZ4:
		if uint64(rawSize) > uint64(len(stored))*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: block claims %d bytes from %d", ErrCorrupt, rawSize, len(stored))
		}
		result := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(stored, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint64(n) != uint64(rawSize) {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		// Streamed so the output grows with decoded bytes, not the frame's
		// declared content size.
		if err := dec.Reset(bytes.NewReader(stored)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		var out bytes.Buffer
		if _, err := out.ReadFrom(io.LimitReader(dec, int64(rawSize)+1)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if uint64(out.Len()) != uint64(rawSize) {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out.Bytes(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, compressionType)
	}
}
