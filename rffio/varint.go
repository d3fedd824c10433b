package rffio

import "fmt"

// MaxVarintLen32 is the maximum number of bytes AppendVarint can emit for a
// value that fits in 32 bits.
const MaxVarintLen32 = 5

// AppendVarint appends the LEB128 (base-128, little-endian, continuation
// bit set on all but the last byte) encoding of v to dst and returns the
// extended slice.
func AppendVarint(dst []byte, v uint32) []byte {
	for v >= 128 {
		dst = append(dst, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// ReadVarint decodes a LEB128-encoded uint32 from the front of src,
// returning the value and the number of bytes consumed. It fails if src
// ends before a terminating byte (high bit clear) is found, or if the
// encoding runs past 5 bytes. Bits of a 5th byte above the low 4 do not fit
// in 32 bits and are dropped without an error.
func ReadVarint(src []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < len(src); i++ {
		b := src[i]
		if i >= MaxVarintLen32 {
			return 0, 0, fmt.Errorf("rffio: varint exceeds %d bytes", MaxVarintLen32)
		}
		v |= uint32(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: truncated varint", ErrShortRead)
}
