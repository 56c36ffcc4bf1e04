package lzss

// One-shot convenience wrappers over the incremental Sink/Poll/Finish API,
// for callers that already hold the whole input in memory and don't need
// to interleave it with other work. Grounded on woozymasta/lzss's
// package-level Compress/Decompress functions, which offer the same
// buffer-in-buffer-out shape over this codec's streaming core.

// drainChunk is the scratch buffer size used by EncodeAll/DecodeAll between
// Poll calls; it has no bearing on the wire format, only on how many Poll
// round-trips a large input takes.
const drainChunk = 4096

// EncodeAll compresses src in one call, returning the compressed bytes.
// opts configure the Encoder exactly as NewEncoder does.
func EncodeAll(src []byte, opts ...Option) ([]byte, error) {
	enc, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	var out []byte
	buf := make([]byte, drainChunk)

	drain := func() error {
		for {
			n, status, err := enc.Poll(buf)
			if err != nil {
				return err
			}
			out = append(out, buf[:n]...)
			if status != StatusMore {
				return nil
			}
		}
	}

	for len(src) > 0 {
		n, _, err := enc.Sink(src)
		if err != nil {
			return nil, err
		}
		src = src[n:]
		if err := drain(); err != nil {
			return nil, err
		}
	}

	for {
		status, err := enc.Finish()
		if err != nil {
			return nil, err
		}
		if err := drain(); err != nil {
			return nil, err
		}
		if status == StatusDone {
			break
		}
	}

	return out, nil
}

// DecodeAll decompresses src in one call, returning the original bytes.
// opts must specify the same Window/Lookahead used to encode src, and may
// additionally set InputBufferSize.
func DecodeAll(src []byte, opts ...Option) ([]byte, error) {
	dec, err := NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	var out []byte
	buf := make([]byte, drainChunk)

	drain := func() error {
		for {
			n, status, err := dec.Poll(buf)
			if err != nil {
				return err
			}
			out = append(out, buf[:n]...)
			if status != StatusMore {
				return nil
			}
		}
	}

	for len(src) > 0 {
		n, _, err := dec.Sink(src)
		if err != nil {
			return nil, err
		}
		src = src[n:]
		if err := drain(); err != nil {
			return nil, err
		}
	}

	for {
		status, err := dec.Finish()
		if err != nil {
			return nil, err
		}
		if err := drain(); err != nil {
			return nil, err
		}
		if status == StatusDone {
			break
		}
	}

	return out, nil
}
