package snapshot

import (
	"hash"
	"hash/crc32"
	"io"
)

// crc32cTable is pre-computed for the Castagnoli polynomial, which has
// hardware support on amd64 and arm64.
// The checksum detects accidental corruption, not tampering.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// checksumWriter wraps an io.Writer and computes a running CRC32-C checksum.
type checksumWriter struct {
	w    io.Writer
	hash hash.Hash32
}

func newChecksumWriter(w io.Writer) *checksumWriter {
	return &checksumWriter{
		w:    w,
		hash: crc32.New(crc32cTable),
	}
}

// Write implements io.Writer.
func (cw *checksumWriter) Write(p []byte) (int, error) {
	if _, err := cw.hash.Write(p); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}

// Sum returns the current checksum value.
func (cw *checksumWriter) Sum() uint32 {
	return cw.hash.Sum32()
}

func checksum(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}
