package rffio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Compression names the transport-level wrapper applied around a serialized
// RFF byte stream. It is independent of the RFF format itself: the
// invariants and wire layout in serialize.go/deserialize.go are computed on
// the uncompressed bytes, before wrapping or after unwrapping.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
)

// ParseCompression maps a CLI flag value to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "gzip":
		return CompressionGzip, nil
	default:
		return CompressionNone, fmt.Errorf("rffio: unknown compression %q", s)
	}
}

// NewCompressWriter wraps w so that everything written to the returned
// writer is compressed according to c before reaching w. The caller must
// Close the returned writer to flush trailing compressor state; Close on
// CompressionNone is a no-op.
func NewCompressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		return zstd.NewWriter(w)
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("rffio: unknown compression %d", c)
	}
}

// NewDecompressReader wraps r so that reads through the returned reader
// yield the decompressed bytes, per c.
func NewDecompressReader(r io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case CompressionNone:
		return r, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionGzip:
		return gzip.NewReader(r)
	default:
		return nil, fmt.Errorf("rffio: unknown compression %d", c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

var (
	gzipMagic = [2]byte{0x1f, 0x8b}
	zstdMagic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}
)

// DetectCompression peeks at br's leading bytes and reports which transport
// wrapper, if any, produced them. br is left unconsumed: callers pass the
// same *bufio.Reader on to NewDecompressReader. This lets `rff check` accept
// a file written with any --compress setting without the caller naming it.
func DetectCompression(br *bufio.Reader) (Compression, error) {
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return CompressionNone, err
	}
	if len(head) >= 4 && [4]byte(head[:4]) == zstdMagic {
		return CompressionZstd, nil
	}
	if len(head) >= 2 && [2]byte(head[:2]) == gzipMagic {
		return CompressionGzip, nil
	}
	return CompressionNone, nil
}
