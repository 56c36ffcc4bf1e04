/*
Package lzss implements a streaming, bounded-memory LZSS-style codec.

The encoder and decoder are incremental, non-blocking state machines: data is
pushed in with Sink, pulled out with Poll, and end-of-stream is signaled with
Finish. Neither side allocates after construction, and neither side requires
the whole input or the whole output to be resident at once — bytes may
arrive one at a time, and the caller may stop draining Poll at any byte
boundary and resume later.

Both sides must be constructed with the same window and lookahead sizes
(Window, Lookahead options) to interoperate; the wire format carries no
header, length, or checksum of its own — framing is the caller's job.

# Examples

Compress and decompress an in-memory buffer in one shot:

	enc, err := lzss.EncodeAll(data, lzss.Window(8), lzss.Lookahead(4))
	if err != nil {
		return err
	}
	dec, err := lzss.DecodeAll(enc, lzss.Window(8), lzss.Lookahead(4))
	if err != nil {
		return err
	}
	// dec equals data

Drive an Encoder incrementally, one caller-sized chunk at a time:

	e, err := lzss.NewEncoder(lzss.Window(8), lzss.Lookahead(4))
	if err != nil {
		return err
	}
	out := make([]byte, 256)
	for _, chunk := range chunks {
		for len(chunk) > 0 {
			n, _, err := e.Sink(chunk)
			if err != nil {
				return err
			}
			chunk = chunk[n:]
			drainPoll(e, out)
		}
	}
	e.Finish()
	drainPoll(e, out)

	func drainPoll(e *lzss.Encoder, out []byte) {
		for {
			n, status, err := e.Poll(out)
			if err != nil {
				panic(err)
			}
			writeToTransport(out[:n])
			if status != lzss.StatusMore {
				return
			}
		}
	}
*/
package lzss
