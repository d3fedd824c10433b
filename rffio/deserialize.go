package rffio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gboya/flatfiles/flatfile"
)

// headerSize is the fixed-width prefix: version(1) + columns(2) +
// cellCount(4) + contentCount(4).
const headerSize = 1 + 2 + 4 + 4

// Deserialize reverses Serialize, reconstructing columns, cells, and
// content exactly as written. It does not validate the four RawFlatFile
// invariants — callers that need that should run flatfile.CheckConsistency
// on the result. Errors wrap ErrBadVersion or ErrShortRead, except for a
// varint longer than MaxVarintLen32 bytes, which is reported as a plain error.
func Deserialize(r io.Reader) (*flatfile.RawFlatFile, error) {
	br := bufio.NewReader(r)

	var header [headerSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrShortRead, err)
	}

	version := header[0]
	if version != CurrentVersion {
		return nil, fmt.Errorf("%w: got version %d, want %d", ErrBadVersion, version, CurrentVersion)
	}

	columns := binary.LittleEndian.Uint16(header[1:3])
	cellCount := binary.LittleEndian.Uint32(header[3:7])
	contentCount := binary.LittleEndian.Uint32(header[7:11])

	cells := make([]int32, cellCount)
	for i := range cells {
		v, err := readVarintFrom(br)
		if err != nil {
			return nil, fmt.Errorf("reading cell %d: %w", i, err)
		}
		cells[i] = int32(v)
	}

	content := make([][]byte, contentCount)
	for i := range content {
		n, err := readVarintFrom(br)
		if err != nil {
			return nil, fmt.Errorf("reading content %d length: %w", i, err)
		}
		blob := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(br, blob); err != nil {
				return nil, fmt.Errorf("%w: reading content %d (%d bytes): %v", ErrShortRead, i, n, err)
			}
		}
		content[i] = blob
	}

	return &flatfile.RawFlatFile{
		Columns: columns,
		Cells:   cells,
		Content: content,
	}, nil
}

// readVarintFrom decodes one LEB128 value reading exactly one byte at a
// time from br, failing with ErrShortRead on premature EOF.
func readVarintFrom(br *bufio.Reader) (uint32, error) {
	var v uint32
	for i := 0; ; i++ {
		if i >= MaxVarintLen32 {
			return 0, fmt.Errorf("rffio: varint exceeds %d bytes", MaxVarintLen32)
		}
		b, err := br.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrShortRead, err)
		}
		v |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
}
