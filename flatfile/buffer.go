package flatfile

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// InputBuffer wraps a byte source in a fixed-size, refillable window
// [Start, End). The parser owns the window mechanics: it advances Start as
// it consumes bytes and calls Refill only when it needs more. Refill
// compacts the unconsumed tail to the front of Bytes before reading more
// from the source.
type InputBuffer struct {
	Bytes []byte
	Start int
	End   int

	FileEncoding FileEncoding

	src           io.Reader
	atEndOfStream bool
}

// NewInputBuffer sniffs a BOM from r, wraps r in a re-encoding adapter if
// needed, and returns a ready-to-use InputBuffer of the given capacity
// (minimum 4 bytes).
func NewInputBuffer(r io.Reader, bufSize int) (*InputBuffer, error) {
	if bufSize < 4 {
		bufSize = 4
	}
	enc, src, err := detectEncoding(r)
	if err != nil {
		return nil, err
	}
	ib := &InputBuffer{
		Bytes:        make([]byte, bufSize),
		FileEncoding: enc,
		src:          src,
	}
	if err := ib.Refill(); err != nil {
		return nil, err
	}
	return ib, nil
}

// detectEncoding reads up to the first 3 bytes of r to sniff a BOM, returning
// the detected encoding and a reader positioned just after the BOM (or with
// the peeked bytes pushed back, if no BOM was present). UTF-16 sources are
// wrapped in a transform.Reader that re-encodes to UTF-8 on the fly.
func detectEncoding(r io.Reader) (FileEncoding, io.Reader, error) {
	var head [3]byte
	n, err := io.ReadFull(r, head[:2])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return EncodingUnknown, nil, err
	}

	switch {
	case n == 2 && head[0] == 0xFF && head[1] == 0xFE:
		return EncodingUTF16LE, newUTF16Reader(r, unicode.LittleEndian), nil
	case n == 2 && head[0] == 0xFE && head[1] == 0xFF:
		return EncodingUTF16BE, newUTF16Reader(r, unicode.BigEndian), nil
	case n == 2 && head[0] == 0xEF && head[1] == 0xBB:
		n3, err3 := io.ReadFull(r, head[2:3])
		if err3 != nil && err3 != io.ErrUnexpectedEOF && err3 != io.EOF {
			return EncodingUnknown, nil, err3
		}
		if n3 == 1 && head[2] == 0xBF {
			return EncodingUTF8BOM, r, nil
		}
		return EncodingUnknown, io.MultiReader(bytes.NewReader(head[:2+n3]), r), nil
	default:
		return EncodingUnknown, io.MultiReader(bytes.NewReader(head[:n]), r), nil
	}
}

// newUTF16Reader wraps r so that reads through it yield UTF-8 bytes decoded
// from the given UTF-16 byte order. golang.org/x/text/transform's internal
// transfer counters are full ints, avoiding the narrow-counter truncation
// bug a hand-rolled adapter would be prone to.
func newUTF16Reader(r io.Reader, endian unicode.Endianness) io.Reader {
	e := unicode.UTF16(endian, unicode.IgnoreBOM)
	return transform.NewReader(r, e.NewDecoder())
}

// Refill compacts Bytes[Start:End] to the front and reads more from the
// source into the freed tail. It is a no-op once AtEndOfStream is true and
// the window already spans the whole buffer.
func (ib *InputBuffer) Refill() error {
	n := copy(ib.Bytes, ib.Bytes[ib.Start:ib.End])
	ib.Start = 0
	ib.End = n

	if ib.atEndOfStream || ib.End == len(ib.Bytes) {
		return nil
	}

	read, err := ib.src.Read(ib.Bytes[ib.End:])
	ib.End += read
	if err == io.EOF {
		ib.atEndOfStream = true
		return nil
	}
	return err
}

// AtEndOfStream reports whether the source has been exhausted.
func (ib *InputBuffer) AtEndOfStream() bool { return ib.atEndOfStream }

// IsFull reports whether the current window already spans the whole buffer,
// or the stream is exhausted — either way, Refill cannot make more bytes
// available without the caller first consuming some.
func (ib *InputBuffer) IsFull() bool {
	return ib.End-ib.Start == len(ib.Bytes) || ib.atEndOfStream
}
