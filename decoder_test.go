package lzss

import (
	"bytes"
	"testing"
)

func mustDecoder(t *testing.T, opts ...Option) *Decoder {
	t.Helper()
	d, err := NewDecoder(opts...)
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	return d
}

// decodeAllChunked drives a Decoder to completion, sinking and polling in
// the given chunk sizes (0 means "all at once").
func decodeAllChunked(t *testing.T, d *Decoder, input []byte, sinkChunk, pollChunk int) []byte {
	t.Helper()
	if sinkChunk <= 0 {
		sinkChunk = len(input) + 1
	}
	if pollChunk <= 0 {
		pollChunk = 4096
	}

	var out []byte
	buf := make([]byte, pollChunk)
	drain := func() {
		for {
			n, status, err := d.Poll(buf)
			if err != nil {
				t.Fatalf("Poll: %v", err)
			}
			out = append(out, buf[:n]...)
			if status != StatusMore {
				return
			}
		}
	}

	for len(input) > 0 {
		end := sinkChunk
		if end > len(input) {
			end = len(input)
		}
		n, status, err := d.Sink(input[:end])
		if err != nil {
			t.Fatalf("Sink: %v", err)
		}
		if status == StatusFull && n == 0 {
			drain()
			continue
		}
		input = input[n:]
		drain()
	}

	for {
		status, err := d.Finish()
		if err != nil {
			t.Fatalf("Finish: %v", err)
		}
		drain()
		if status == StatusDone {
			break
		}
	}
	return out
}

func TestDecoderScenario5_Foo(t *testing.T) {
	d := mustDecoder(t, Window(7), Lookahead(3))
	got := decodeAllChunked(t, d, []byte{0xB3, 0x5B, 0xED, 0xE0}, 0, 0)
	if string(got) != "foo" {
		t.Errorf("got %q, want %q", got, "foo")
	}
}

func TestDecoderScenario6_FooFoo(t *testing.T) {
	d := mustDecoder(t, Window(7), Lookahead(7))
	got := decodeAllChunked(t, d, []byte{0xB3, 0x5B, 0xED, 0xE0, 0x40, 0x80}, 0, 0)
	if string(got) != "foofoo" {
		t.Errorf("got %q, want %q", got, "foofoo")
	}
}

func TestDecoderScenario5_OneByteAtATime(t *testing.T) {
	d := mustDecoder(t, Window(7), Lookahead(3))
	got := decodeAllChunked(t, d, []byte{0xB3, 0x5B, 0xED, 0xE0}, 1, 1)
	if string(got) != "foo" {
		t.Errorf("chunked got %q, want %q", got, "foo")
	}
}

func TestDecoderScenario2_SelfOverlap(t *testing.T) {
	d := mustDecoder(t, Window(8), Lookahead(7))
	got := decodeAllChunked(t, d, []byte{0xB0, 0x80, 0x01, 0x80}, 0, 0)
	if !bytes.Equal(got, bytes.Repeat([]byte{'a'}, 5)) {
		t.Errorf("got % X, want 5x 'a'", got)
	}
}

func TestDecoderSinkNilBuffer(t *testing.T) {
	d := mustDecoder(t)
	if _, _, err := d.Sink(nil); err != ErrNilBuffer {
		t.Errorf("Sink(nil): err = %v, want ErrNilBuffer", err)
	}
}

func TestDecoderSinkFull(t *testing.T) {
	d := mustDecoder(t, InputBufferSize(4))
	n, status, err := d.Sink([]byte{1, 2, 3, 4})
	if err != nil || status != StatusOK || n != 4 {
		t.Fatalf("initial Sink: n=%d status=%v err=%v", n, status, err)
	}
	n, status, err = d.Sink([]byte{5})
	if err != nil || status != StatusFull || n != 0 {
		t.Errorf("Sink on full input region: n=%d status=%v err=%v, want 0/FULL/nil", n, status, err)
	}
}

func TestDecoderPollEmptyOutBuf(t *testing.T) {
	d := mustDecoder(t)
	if _, _, err := d.Poll(nil); err != ErrNilBuffer {
		t.Errorf("Poll(nil): err = %v, want ErrNilBuffer", err)
	}
	if _, _, err := d.Poll([]byte{}); err != ErrEmptyOutBuf {
		t.Errorf("Poll([]byte{}): err = %v, want ErrEmptyOutBuf", err)
	}
}

func TestDecoderFinishOnEmpty(t *testing.T) {
	d := mustDecoder(t)
	status, err := d.Finish()
	if err != nil || status != StatusDone {
		t.Errorf("Finish on fresh decoder: status=%v err=%v, want DONE/nil", status, err)
	}
}

func TestDecoderFinishMidStream(t *testing.T) {
	d := mustDecoder(t, Window(7), Lookahead(3))
	// Sink only part of the literal 'f' symbol's bits: not enough to make
	// progress, and not a safely terminable state either.
	if _, _, err := d.Sink([]byte{0xB3}); err != nil {
		t.Fatalf("Sink: %v", err)
	}
	buf := make([]byte, 16)
	if _, _, err := d.Poll(buf); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	status, err := d.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if status != StatusMore {
		t.Errorf("Finish mid-stream: status = %v, want MORE", status)
	}
}

func TestDecoderReset(t *testing.T) {
	d := mustDecoder(t, Window(7), Lookahead(3))
	_ = decodeAllChunked(t, d, []byte{0xB3, 0x5B, 0xED, 0xE0}, 0, 0)
	d.Reset()

	got := decodeAllChunked(t, d, []byte{0xB3, 0x5B, 0xED, 0xE0}, 0, 0)
	if string(got) != "foo" {
		t.Errorf("after Reset, got %q, want %q", got, "foo")
	}
}
