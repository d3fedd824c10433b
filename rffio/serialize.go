package rffio

import (
	"encoding/binary"
	"io"

	"github.com/gboya/flatfiles/flatfile"
)

// Serialize writes r to w in the RFF binary format: a version byte, a
// little-endian fixed-width header (columns, cell count, content count),
// the cells as a varint stream, and the content dictionary as
// length-prefixed blobs.
func Serialize(w io.Writer, r *flatfile.RawFlatFile) error {
	var header [1 + 2 + 4 + 4]byte
	header[0] = CurrentVersion
	binary.LittleEndian.PutUint16(header[1:3], r.Columns)
	binary.LittleEndian.PutUint32(header[3:7], uint32(len(r.Cells)))
	binary.LittleEndian.PutUint32(header[7:11], uint32(len(r.Content)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	buf := make([]byte, 0, MaxVarintLen32)
	for _, c := range r.Cells {
		buf = AppendVarint(buf[:0], uint32(c))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	for _, content := range r.Content {
		buf = AppendVarint(buf[:0], uint32(len(content)))
		if _, err := w.Write(buf); err != nil {
			return err
		}
		if len(content) > 0 {
			if _, err := w.Write(content); err != nil {
				return err
			}
		}
	}

	return nil
}
