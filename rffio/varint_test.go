package rffio

import (
	"testing"

	"pgregory.net/rapid"
)

func TestVarintRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Uint32Range(0, 1<<31-1).Draw(rt, "v")
		buf := AppendVarint(nil, v)
		got, n, err := ReadVarint(buf)
		if err != nil {
			rt.Fatalf("ReadVarint: %v", err)
		}
		if got != v {
			rt.Fatalf("round trip: got %d, want %d", got, v)
		}
		if n != len(buf) {
			rt.Fatalf("consumed %d bytes, want %d", n, len(buf))
		}
	})
}

func TestVarintLengthByMagnitude(t *testing.T) {
	cases := []struct {
		v    uint32
		want int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{1<<14 - 1, 2},
		{1 << 14, 3},
		{1<<21 - 1, 3},
		{1 << 21, 4},
		{1<<28 - 1, 4},
		{1 << 28, 5},
		{0xFFFFFFFF, 5},
	}
	for _, c := range cases {
		buf := AppendVarint(nil, c.v)
		if len(buf) != c.want {
			t.Errorf("AppendVarint(%d): length %d, want %d", c.v, len(buf), c.want)
		}
		got, n, err := ReadVarint(buf)
		if err != nil {
			t.Fatalf("ReadVarint(%d): %v", c.v, err)
		}
		if got != c.v || n != len(buf) {
			t.Fatalf("ReadVarint(%d): got (%d, %d)", c.v, got, n)
		}
	}
}

func TestReadVarintTruncated(t *testing.T) {
	// A byte with the continuation bit set but nothing following.
	_, _, err := ReadVarint([]byte{0x80})
	if err == nil {
		t.Fatal("expected error for truncated varint")
	}
}
