package flatfile

import "fmt"

// CheckConsistency validates r against the four invariants of the data
// model: an empty first content entry, the columns==0 degenerate case,
// cells length divisible by columns, and strict first-use ordering of
// content identifiers within cells. It returns an error wrapping
// ErrInconsistentRFF naming the offending index/value, or nil.
func CheckConsistency(r *RawFlatFile) error {
	if len(r.Content) == 0 || len(r.Content[0]) != 0 {
		return fmt.Errorf("%w: content[0] must be the empty byte array", ErrInconsistentRFF)
	}

	if r.Columns == 0 {
		if len(r.Cells) != 0 {
			return fmt.Errorf("%w: columns is 0 but cells has length %d", ErrInconsistentRFF, len(r.Cells))
		}
		if len(r.Content) != 1 {
			return fmt.Errorf("%w: columns is 0 but content has length %d", ErrInconsistentRFF, len(r.Content))
		}
		return nil
	}

	if len(r.Cells)%int(r.Columns) != 0 {
		return fmt.Errorf("%w: cells length %d is not a multiple of columns %d", ErrInconsistentRFF, len(r.Cells), r.Columns)
	}

	nextNew := int32(1)
	for i, c := range r.Cells {
		if c < 0 {
			return fmt.Errorf("%w: cells[%d] = %d is negative", ErrInconsistentRFF, i, c)
		}
		if c > nextNew {
			return fmt.Errorf("%w: cells[%d] = %d skips ahead of next-new identifier %d", ErrInconsistentRFF, i, c, nextNew)
		}
		if int(c) >= len(r.Content) {
			return fmt.Errorf("%w: cells[%d] = %d has no matching content entry (len %d)", ErrInconsistentRFF, i, c, len(r.Content))
		}
		if c == nextNew {
			nextNew++
		}
	}
	return nil
}
