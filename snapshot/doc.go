// Package snapshot serializes the values of a fastlist.List in list order.
//
// # Format
//
//	magic        uint32  "FLST"
//	version      uint16
//	compression  uint8   (0=none, 1=lz4, 2=zstd)
//	codecLen     uint8
//	codec        [codecLen]byte
//	count        uint64
//	body block   [raw uint32][stored uint32][data...]  (stored=0: data is raw)
//	checksum     uint32  CRC32-C (Castagnoli) of the raw body
//
// The raw body is a sequence of uvarint-length-prefixed encoded values.
//
// Indices are not persisted: handles are only meaningful for the arena that
// issued them, so Read returns the new list together with the fresh indices
// in list order.
package snapshot
