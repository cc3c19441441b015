package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/fastlist"
	"github.com/hupe1980/fastlist/codec"
	"github.com/hupe1980/fastlist/internal/conv"
)

// ctxCheckInterval is how many values are processed between context checks.
const ctxCheckInterval = 1024

type options struct {
	compression CompressionType
	codec       codec.Codec
	logger      *fastlist.Logger
	listOpts    []fastlist.Option
}

// Option configures Write and Read.
type Option func(*options)

// WithCompression sets the body compression used by Write.
// Read takes the compression from the snapshot header.
func WithCompression(c CompressionType) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec sets the value codec. Write records its name in the header;
// Read uses it when its name matches the header, otherwise the built-in codec
// of that name.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger logs snapshot outcomes.
func WithLogger(logger *fastlist.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithListOptions configures the list built by Read.
func WithListOptions(opts ...fastlist.Option) Option {
	return func(o *options) {
		o.listOpts = append(o.listOpts, opts...)
	}
}

func newOptions(opts []Option) options {
	o := options{codec: codec.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type header struct {
	Magic       uint32
	Version     uint16
	Compression CompressionType
	CodecLen    uint8
}

// Write encodes the values of l, head to tail, to w.
func Write[T any](ctx context.Context, w io.Writer, l *fastlist.List[T], opts ...Option) error {
	o := newOptions(opts)
	err := write(ctx, w, l, o)
	if o.logger != nil {
		o.logger.LogSnapshot(ctx, "write", l.Len(), o.compression.String(), err)
	}
	return err
}

func write[T any](ctx context.Context, w io.Writer, l *fastlist.List[T], o options) error {
	if !o.compression.valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedCompression, o.compression)
	}
	name := o.codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("%w: invalid name %q", ErrUnknownCodec, name)
	}

	var raw bytes.Buffer
	cw := newChecksumWriter(&raw)
	var (
		lenBuf [binary.MaxVarintLen64]byte
		count  uint64
	)
	for v := range l.Values() {
		if count%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		data, err := o.codec.Marshal(v)
		if err != nil {
			return fmt.Errorf("snapshot: encode value %d: %w", count, err)
		}
		n := binary.PutUvarint(lenBuf[:], uint64(len(data)))
		if _, err := cw.Write(lenBuf[:n]); err != nil {
			return err
		}
		if _, err := cw.Write(data); err != nil {
			return err
		}
		count++
	}

	block, err := compressBlock(raw.Bytes(), o.compression)
	if err != nil {
		return err
	}

	h := header{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: o.compression,
		CodecLen:    uint8(len(name)), //nolint:gosec // checked above
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	if _, err := io.WriteString(w, name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return err
	}
	if _, err := w.Write(block); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, cw.Sum())
}

// Read decodes a snapshot into a new list. The returned indices address the
// new list's items in order.
func Read[T any](ctx context.Context, r io.Reader, opts ...Option) (*fastlist.List[T], []fastlist.Index, error) {
	o := newOptions(opts)
	l, idxs, compression, err := read[T](ctx, r, o)
	if o.logger != nil {
		o.logger.LogSnapshot(ctx, "read", len(idxs), compression.String(), err)
	}
	if err != nil {
		return nil, nil, err
	}
	return l, idxs, nil
}

func read[T any](ctx context.Context, r io.Reader, o options) (*fastlist.List[T], []fastlist.Index, CompressionType, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, nil, 0, fmt.Errorf("snapshot: read header: %w", err)
	}
	if h.Magic != MagicNumber {
		return nil, nil, 0, ErrInvalidMagic
	}
	if h.Version != Version {
		return nil, nil, 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if !h.Compression.valid() {
		return nil, nil, 0, fmt.Errorf("%w: %s", ErrUnsupportedCompression, h.Compression)
	}

	nameBuf := make([]byte, h.CodecLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, nil, h.Compression, fmt.Errorf("snapshot: read codec name: %w", err)
	}
	c, err := resolveCodec(string(nameBuf), o.codec)
	if err != nil {
		return nil, nil, h.Compression, err
	}

	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, nil, h.Compression, fmt.Errorf("snapshot: read count: %w", err)
	}

	raw, err := readBody(r, h.Compression)
	if err != nil {
		return nil, nil, h.Compression, err
	}

	// Every entry carries at least its length byte.
	if count > uint64(len(raw)) {
		return nil, nil, h.Compression, fmt.Errorf("%w: %d values in %d bytes", ErrCorrupt, count, len(raw))
	}
	n, err := conv.Uint64ToInt(count)
	if err != nil {
		return nil, nil, h.Compression, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	values := make([]T, 0, n)
	for i := 0; i < n; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, h.Compression, err
			}
		}
		size, k := binary.Uvarint(raw)
		if k <= 0 || size > uint64(len(raw)-k) {
			return nil, nil, h.Compression, fmt.Errorf("%w: bad length prefix at value %d", ErrCorrupt, i)
		}
		end := k + int(size) //nolint:gosec // bounded by len(raw)
		var v T
		if err := c.Unmarshal(raw[k:end], &v); err != nil {
			return nil, nil, h.Compression, fmt.Errorf("snapshot: decode value %d: %w", i, err)
		}
		values = append(values, v)
		raw = raw[end:]
	}
	if len(raw) != 0 {
		return nil, nil, h.Compression, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(raw))
	}

	l := fastlist.NewWithCapacity[T](n, o.listOpts...)
	return l, l.Extend(values...), h.Compression, nil
}

func readBody(r io.Reader, compression CompressionType) ([]byte, error) {
	var sizes [2]uint32
	if err := binary.Read(r, binary.LittleEndian, &sizes); err != nil {
		return nil, fmt.Errorf("snapshot: read block header: %w", err)
	}
	rawSize, storedSize := sizes[0], sizes[1]

	toRead := storedSize
	if storedSize == 0 {
		toRead = rawSize
	}
	// The sizes are untrusted: the buffer grows with the bytes actually read.
	var block bytes.Buffer
	n, err := block.ReadFrom(io.LimitReader(r, int64(toRead)))
	if err != nil {
		return nil, fmt.Errorf("snapshot: read block: %w", err)
	}
	if n != int64(toRead) {
		return nil, fmt.Errorf("%w: block truncated at %d of %d bytes", ErrCorrupt, n, toRead)
	}
	stored := block.Bytes()

	raw, err := decompressBlock(stored, rawSize, storedSize, compression)
	if err != nil {
		return nil, err
	}

	var sum uint32
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return nil, fmt.Errorf("snapshot: read checksum: %w", err)
	}
	if sum != checksum(raw) {
		return nil, ErrChecksumMismatch
	}
	return raw, nil
}

func resolveCodec(name string, configured codec.Codec) (codec.Codec, error) {
	if configured != nil && configured.Name() == name {
		return configured, nil
	}
	if c, ok := codec.ByName(name); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}
