package lzss

import (
	"bytes"
	"math/rand"
	"testing"
	"testing/quick"
)

// roundTrip encodes and decodes data with the given (W, L), sinking and
// polling in the given chunk sizes, and returns the recovered bytes.
func roundTrip(t *testing.T, data []byte, w, l uint8, sinkChunk, pollChunk int) []byte {
	t.Helper()

	e := mustEncoder(t, Window(w), Lookahead(l))
	encoded := encodeAllChunked(t, e, append([]byte(nil), data...), sinkChunk, pollChunk)

	d := mustDecoder(t, Window(w), Lookahead(l))
	return decodeAllChunked(t, d, encoded, sinkChunk, pollChunk)
}

func TestRoundTripScenario3And4(t *testing.T) {
	cases := []string{"abcdabcd", "abcdabcde"}
	for _, s := range cases {
		got := roundTrip(t, []byte(s), 8, 3, 0, 0)
		if string(got) != s {
			t.Errorf("round-trip %q: got %q", s, got)
		}
	}
}

// TestRoundTripProperty exercises the fundamental round-trip property
// across random inputs and a handful of valid (W, L) pairs, all-at-once.
func TestRoundTripProperty(t *testing.T) {
	configs := []struct{ w, l uint8 }{
		{4, 3}, {4, 4}, {8, 4}, {8, 7}, {10, 5}, {15, 8},
	}

	f := func(data []byte) bool {
		for _, c := range configs {
			got := roundTrip(t, data, c.w, c.l, 0, 0)
			if !bytes.Equal(got, data) {
				t.Errorf("W=%d L=%d: round-trip mismatch for %d-byte input", c.w, c.l, len(data))
				return false
			}
		}
		return true
	}

	cfg := &quick.Config{MaxCount: 4096, Rand: rand.New(rand.NewSource(1))}
	if err := quick.Check(f, cfg); err != nil {
		t.Error(err)
	}
}

// TestRoundTripIncrementality checks that round-tripping the same input
// holds regardless of how sink/poll calls are chunked, and that the
// compressed bytes produced are identical across chunkings (determinism).
func TestRoundTripIncrementality(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog, the quick brown fox jumps again")

	var reference []byte
	for i, chunking := range []struct{ sink, poll int }{
		{0, 0},
		{1, 1},
		{3, 5},
		{7, 1},
		{1, 64},
	} {
		e := mustEncoder(t, Window(8), Lookahead(6))
		encoded := encodeAllChunked(t, e, append([]byte(nil), input...), chunking.sink, chunking.poll)
		if i == 0 {
			reference = encoded
		} else if !bytes.Equal(encoded, reference) {
			t.Errorf("chunking %+v produced different compressed bytes", chunking)
		}

		d := mustDecoder(t, Window(8), Lookahead(6))
		decoded := decodeAllChunked(t, d, encoded, chunking.sink, chunking.poll)
		if !bytes.Equal(decoded, input) {
			t.Errorf("chunking %+v: round-trip mismatch", chunking)
		}
	}
}

// TestSelfOverlapRun checks that long runs of a single repeated byte are
// encoded using a back-reference whose length exceeds its index, per the
// self-overlap testable property.
func TestSelfOverlapRun(t *testing.T) {
	input := bytes.Repeat([]byte{'x'}, 64)
	e := mustEncoder(t, Window(8), Lookahead(7))
	encoded := encodeAllChunked(t, e, append([]byte(nil), input...), 0, 0)

	// A run this long compresses heavily: far fewer bytes than the input,
	// and well inside the non-expansion bound either way.
	if len(encoded) >= len(input) {
		t.Errorf("expected compression on a 64-byte run, got %d bytes out", len(encoded))
	}

	// With W=8, L=7 the leading literal 'x' fills bits 0-8; the second
	// symbol starts at bit 9: tag, 8 index bits, 7 length bits.
	if len(encoded) < 4 {
		t.Fatalf("encoded run too short: %d bytes", len(encoded))
	}
	if encoded[1]&0x40 != 0 {
		t.Fatalf("second symbol is a literal, want a back-reference")
	}
	index := (int(encoded[1]&0x3F)<<2 | int(encoded[2]>>6)) + 1
	length := (int(encoded[2]&0x3F)<<1 | int(encoded[3]>>7)) + 1
	if length <= index {
		t.Errorf("back-reference length %d does not exceed its index %d", length, index)
	}

	d := mustDecoder(t, Window(8), Lookahead(7))
	decoded := decodeAllChunked(t, d, encoded, 0, 0)
	if !bytes.Equal(decoded, input) {
		t.Errorf("decoded run mismatch: got %d bytes, want %d", len(decoded), len(input))
	}
}

// TestNonExpansionBound checks the practical ceiling from §8 against random
// input that defeats matching (so the encoder falls back to all-literals).
func TestNonExpansionBound(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	data := make([]byte, 8192)
	r.Read(data)

	e := mustEncoder(t, Window(10), Lookahead(5))
	encoded := encodeAllChunked(t, e, append([]byte(nil), data...), 0, 0)

	n := len(data)
	ceiling := n + n/2 + 4
	if len(encoded) > ceiling {
		t.Errorf("encoded length %d exceeds practical ceiling %d for n=%d", len(encoded), ceiling, n)
	}
}
