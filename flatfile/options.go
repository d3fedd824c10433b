package flatfile

import (
	"fmt"
	"math"
)

const (
	// DefaultReadBufferSize is used when ParserOptions.ReadBufferSize is 0.
	DefaultReadBufferSize = 100 << 20 // 100 MiB

	// MinReadBufferSize is the floor enforced on a non-zero ReadBufferSize.
	MinReadBufferSize = 4096

	// MaximalValueLength is the hard per-cell byte cap. Cells longer than
	// this are silently truncated before being handed to the trie.
	MaximalValueLength = 4096
)

// ParserOptions configures a Parser. The zero value is valid: it means
// unbounded maxLineCount/maxCellCount and the default 100 MiB read buffer.
type ParserOptions struct {
	// MaxLineCount caps the number of non-header lines committed to Cells.
	// 0 means unbounded.
	MaxLineCount int

	// MaxCellCount caps the number of non-header cells committed to Cells.
	// 0 means unbounded.
	MaxCellCount int

	// ReadBufferSize is the InputBuffer's backing array size. 0 selects
	// DefaultReadBufferSize; any other value must be >= MinReadBufferSize.
	ReadBufferSize int
}

// normalize validates o and fills in defaults, returning ErrBadParserOption
// (wrapped with detail) on a negative limit or an undersized read buffer.
func (o ParserOptions) normalize() (ParserOptions, error) {
	if o.MaxLineCount < 0 {
		return o, fmt.Errorf("%w: maxLineCount %d is negative", ErrBadParserOption, o.MaxLineCount)
	}
	if o.MaxCellCount < 0 {
		return o, fmt.Errorf("%w: maxCellCount %d is negative", ErrBadParserOption, o.MaxCellCount)
	}
	if o.ReadBufferSize == 0 {
		o.ReadBufferSize = DefaultReadBufferSize
	} else if o.ReadBufferSize < MinReadBufferSize {
		return o, fmt.Errorf("%w: readBufferSize %d is below the %d byte floor", ErrBadParserOption, o.ReadBufferSize, MinReadBufferSize)
	}
	return o, nil
}

// effectiveCellCap returns min(maxCellCount+columns, columns*(maxLineCount+1)),
// substituting math.MaxInt for either term left unbounded (0).
func (o ParserOptions) effectiveCellCap(columns int) int {
	byCells := math.MaxInt
	if o.MaxCellCount > 0 {
		byCells = o.MaxCellCount + columns
	}
	byLines := math.MaxInt
	if o.MaxLineCount > 0 {
		byLines = columns * (o.MaxLineCount + 1)
	}
	if byCells < byLines {
		return byCells
	}
	return byLines
}
