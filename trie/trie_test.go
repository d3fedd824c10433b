package trie

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

func TestHashEmptyIsZero(t *testing.T) {
	tr := New()
	if got := tr.Hash(nil); got != 0 {
		t.Fatalf("Hash(nil) = %d, want 0", got)
	}
	if got := tr.Hash([]byte{}); got != 0 {
		t.Fatalf("Hash([]byte{}) = %d, want 0", got)
	}
}

func TestHashRepeatedInsertReturnsSameID(t *testing.T) {
	tr := New()
	first := tr.Hash([]byte("hello"))
	second := tr.Hash([]byte("hello"))
	if first != second {
		t.Fatalf("repeated insert of equal slice: got %d and %d", first, second)
	}
	if first == 0 {
		t.Fatal("non-empty slice hashed to 0")
	}
}

func TestHashDistinctSlicesGetDistinctIDs(t *testing.T) {
	tr := New()
	words := []string{"a", "ab", "abc", "b", "ba", "abd", "xyz"}
	seen := map[int32]string{}
	for _, w := range words {
		id := tr.Hash([]byte(w))
		if prev, ok := seen[id]; ok && prev != w {
			t.Fatalf("words %q and %q both hashed to %d", prev, w, id)
		}
		seen[id] = w
	}
}

func TestHashValuesRoundTrip(t *testing.T) {
	tr := New()
	words := []string{"apple", "application", "apply", "banana", "band", "bandana", ""}
	values := tr.Values()
	for _, w := range words {
		id := tr.Hash([]byte(w))
		values = tr.Values()
		if !bytes.Equal(values[id], []byte(w)) {
			t.Fatalf("values[%d] = %q, want %q", id, values[id], w)
		}
	}
}

func TestHashFirstUseOrder(t *testing.T) {
	tr := New()
	order := []string{"z", "y", "x", "zz", "w"}
	for i, w := range order {
		id := tr.Hash([]byte(w))
		if int(id) != i+1 {
			t.Fatalf("insertion %d (%q): got id %d, want %d", i, w, id, i+1)
		}
	}
}

// TestHashEdgeSplitSharedPrefix exercises the common-prefix split path (case
// 2/3 of the insertion algorithm) by inserting strings that share long
// prefixes and diverge at varying points.
func TestHashEdgeSplitSharedPrefix(t *testing.T) {
	tr := New()
	inputs := []string{
		"common",
		"commonwealth",
		"commonality",
		"com",
		"commute",
	}
	ids := map[string]int32{}
	for _, s := range inputs {
		ids[s] = tr.Hash([]byte(s))
	}
	values := tr.Values()
	for s, id := range ids {
		if diff := cmp.Diff([]byte(s), values[id]); diff != "" {
			t.Fatalf("values[%d] mismatch (-want +got):\n%s", id, diff)
		}
	}
	// Re-inserting must reproduce the same ids.
	for s, id := range ids {
		if got := tr.Hash([]byte(s)); got != id {
			t.Fatalf("re-insert of %q: got %d, want %d", s, got, id)
		}
	}
}

// TestHashDeepNestingLinkedListFallback drives insertion depth past the
// point where HashSize collapses to 1 (depth >= 7), forcing pure
// NextSibling traversal for children lookups.
func TestHashDeepNestingLinkedListFallback(t *testing.T) {
	tr := New()
	var prefix []byte
	var ids []int32
	for i := 0; i < 20; i++ {
		prefix = append(prefix, byte('a'+i%26))
		ids = append(ids, tr.Hash(append([]byte(nil), prefix...)))
	}
	// Insert several siblings that diverge at depth >= 7 to populate the
	// single-bucket table with more than one entry.
	for i := 0; i < 20; i++ {
		variant := append(append([]byte(nil), prefix[:10]...), byte('A'+i))
		tr.Hash(variant)
	}
	values := tr.Values()
	for i, id := range ids {
		want := prefix[:i+1]
		if !bytes.Equal(values[id], want) {
			t.Fatalf("depth %d: values[%d] = %q, want %q", i, id, values[id], want)
		}
	}
}

func TestHashRapidProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := New()
		cellGen := rapid.SliceOfN(rapid.Uint8(), 0, 12)
		inputs := rapid.SliceOfN(cellGen, 0, 30).Draw(rt, "inputs")

		ids := make(map[string]int32)
		nextID := int32(1)
		for _, s := range inputs {
			key := string(s)
			id := tr.Hash(s)

			if len(s) == 0 {
				if id != 0 {
					rt.Fatalf("Hash(empty) = %d, want 0", id)
				}
				continue
			}

			if want, ok := ids[key]; ok {
				if id != want {
					rt.Fatalf("repeated insert of %q: got %d, want %d", key, id, want)
				}
				continue
			}

			if id != nextID {
				rt.Fatalf("first insertion of %q: got id %d, want strictly next id %d", key, id, nextID)
			}
			ids[key] = id
			nextID++

			values := tr.Values()
			if !bytes.Equal(values[id], s) {
				rt.Fatalf("values[%d] = %q, want %q", id, values[id], s)
			}
		}

		if got, want := tr.Len(), len(ids); got != want {
			rt.Fatalf("Len() = %d, want %d", got, want)
		}
	})
}
