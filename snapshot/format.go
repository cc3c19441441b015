package snapshot

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies fastlist snapshots (ASCII: "FLST").
	MagicNumber = 0x464C5354
	// Version is the current snapshot format version.
	Version = 1
)

var (
	ErrInvalidMagic           = errors.New("snapshot: invalid magic number")
	ErrUnsupportedVersion     = errors.New("snapshot: unsupported version")
	ErrUnsupportedCompression = errors.New("snapshot: unsupported compression")
	ErrUnknownCodec           = errors.New("snapshot: unknown codec")
	ErrChecksumMismatch       = errors.New("snapshot: checksum mismatch")
	ErrCorrupt                = errors.New("snapshot: corrupt body")
	ErrTooLarge               = errors.New("snapshot: body exceeds 4 GiB")
)

// CompressionType defines the compression algorithm applied to the body.
type CompressionType uint8

const (
	// CompressionNone stores the body as-is.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD CompressionType = 2
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("CompressionType(%d)", uint8(c))
	}
}

// ParseCompression maps "none", "lz4" or "zstd" to a CompressionType.
func ParseCompression(name string) (CompressionType, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCompression, name)
	}
}

func (c CompressionType) valid() bool {
	return c <= CompressionZSTD
}
