package lzss

// Decoder states, per §4.2. The zero value is stateDecEmpty, the
// machine's initial state.
type decoderState int

const (
	stateDecEmpty decoderState = iota
	stateDecInputAvailable
	stateDecYieldLiteral
	stateDecBackrefIndex
	stateDecBackrefCount
	stateDecYieldBackref
	stateDecCheckForMoreInput
)

// Decoder reverses Encoder's output: it consumes the bit stream produced
// by an Encoder with the same window/lookahead configuration and replays
// literals and back-references through a circular history window.
//
// Grounded on the same heatshrink-family state machine as Encoder; no
// decoder file was present among the retrieved reference sources, so this
// mirrors the encoder's idiom (state enum, sink/poll/finish, MSB-first bit
// walk) symmetrically, as documented in DESIGN.md.
type Decoder struct {
	cfg config

	buffers []byte // len = InputBufSize + windowSize; [0:IBS) input ring, [IBS:IBS+window) history

	inputSize  int
	inputIndex int

	currentByte byte
	bitIndex    byte // 0 means "load next input byte"

	fieldArmed bool
	fieldWidth int
	fieldBits  int
	fieldAccum uint32

	headIndex   int // circular write cursor into the history window, already normalized to [0, window)
	outputIndex int // pending back-reference distance
	outputCount int // remaining bytes to emit for the current back-reference

	state decoderState

	bytesSunk   int64
	bytesPolled int64
}

// NewDecoder constructs a Decoder. W and L must match the Encoder that
// produced the stream; InputBufferSize defaults to 256 bytes if not given.
func NewDecoder(opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	d := &Decoder{cfg: cfg}
	d.buffers = make([]byte, cfg.InputBufSize+cfg.windowSize())
	d.Reset()
	return d, nil
}

// Reset clears all mutable state, retaining configuration and allocated
// buffers.
func (d *Decoder) Reset() {
	for i := range d.buffers {
		d.buffers[i] = 0
	}
	d.inputSize = 0
	d.inputIndex = 0
	d.currentByte = 0
	d.bitIndex = 0
	d.fieldArmed = false
	d.fieldWidth = 0
	d.fieldBits = 0
	d.fieldAccum = 0
	d.headIndex = 0
	d.outputIndex = 0
	d.outputCount = 0
	d.state = stateDecEmpty
	d.bytesSunk = 0
	d.bytesPolled = 0
}

// Stats reports bytes accepted by Sink and bytes emitted by Poll so far.
func (d *Decoder) Stats() (sunk, polled int64) {
	return d.bytesSunk, d.bytesPolled
}

// Sink appends compressed bytes into the input region, up to
// InputBufSize-inputSize bytes. It returns StatusFull with accepted=0 if
// there is no room at all; non-fatal, drain with Poll and retry.
func (d *Decoder) Sink(p []byte) (int, Status, error) {
	if p == nil {
		return 0, StatusOK, ErrNilBuffer
	}

	free := d.cfg.InputBufSize - d.inputSize
	if free <= 0 {
		return 0, StatusFull, nil
	}

	n := len(p)
	if n > free {
		n = free
	}
	copy(d.buffers[d.inputSize:], p[:n])
	d.inputSize += n
	d.bytesSunk += int64(n)

	if d.state == stateDecEmpty {
		d.state = stateDecInputAvailable
		d.inputIndex = 0
	}

	d.cfg.Logger.Debugf("sink: accepted %d bytes, input_size=%d/%d", n, d.inputSize, d.cfg.InputBufSize)

	return n, StatusOK, nil
}

// Finish reports whether the decoder is in a safely terminable state:
// EMPTY, or mid-back-reference-header with no input left to read (which
// only happens when the final byte's zero padding was decoded as a
// spurious back-reference start). Otherwise it returns StatusMore.
func (d *Decoder) Finish() (Status, error) {
	if d.state == stateDecEmpty {
		return StatusDone, nil
	}
	noPendingInput := d.inputIndex >= d.inputSize && d.bitIndex == 0
	if noPendingInput && (d.state == stateDecBackrefIndex || d.state == stateDecBackrefCount) {
		return StatusDone, nil
	}
	return StatusMore, nil
}

// Poll drives the state machine, writing decompressed bytes into out
// until either out fills (StatusMore) or input is exhausted (StatusEmpty).
func (d *Decoder) Poll(out []byte) (int, Status, error) {
	if out == nil {
		return 0, StatusEmpty, ErrNilBuffer
	}
	if len(out) == 0 {
		return 0, StatusEmpty, ErrEmptyOutBuf
	}

	n := 0
	for {
		d.cfg.Logger.Debugf("poll: state=%d n=%d/%d", d.state, n, len(out))
		switch d.state {
		case stateDecEmpty:
			d.bytesPolled += int64(n)
			return n, StatusEmpty, nil

		case stateDecInputAvailable:
			tag, ok := d.readBits(1)
			if !ok {
				d.bytesPolled += int64(n)
				return n, StatusEmpty, nil
			}
			if byte(tag) == markLit {
				d.state = stateDecYieldLiteral
			} else {
				d.state = stateDecBackrefIndex
			}

		case stateDecYieldLiteral:
			if n >= len(out) {
				d.bytesPolled += int64(n)
				return n, StatusMore, nil
			}
			v, ok := d.readBits(8)
			if !ok {
				d.bytesPolled += int64(n)
				return n, StatusEmpty, nil
			}
			b := byte(v)
			d.writeHistory(b)
			out[n] = b
			n++
			d.state = stateDecCheckForMoreInput

		case stateDecBackrefIndex:
			v, ok := d.readBits(int(d.cfg.WindowBits))
			if !ok {
				d.bytesPolled += int64(n)
				return n, StatusEmpty, nil
			}
			d.outputIndex = v + 1
			d.state = stateDecBackrefCount

		case stateDecBackrefCount:
			v, ok := d.readBits(int(d.cfg.LookaheadBits))
			if !ok {
				d.bytesPolled += int64(n)
				return n, StatusEmpty, nil
			}
			d.outputCount = v + 1
			d.state = stateDecYieldBackref

		case stateDecYieldBackref:
			for d.outputCount > 0 {
				if n >= len(out) {
					d.bytesPolled += int64(n)
					return n, StatusMore, nil
				}
				b := d.buffers[d.cfg.InputBufSize+d.historyIndex(d.outputIndex)]
				d.writeHistory(b)
				out[n] = b
				n++
				d.outputCount--
			}
			d.state = stateDecCheckForMoreInput

		case stateDecCheckForMoreInput:
			if d.inputIndex < d.inputSize || d.bitIndex != 0 {
				d.state = stateDecInputAvailable
			} else {
				d.state = stateDecEmpty
			}
		}
	}
}

// historyIndex returns the position in the history window `back` bytes
// before the current write cursor, wrapping modulo the window size.
func (d *Decoder) historyIndex(back int) int {
	window := d.cfg.windowSize()
	pos := (d.headIndex - back) % window
	if pos < 0 {
		pos += window
	}
	return pos
}

// writeHistory appends b to the circular history window and advances the
// write cursor, normalized back into [0, window) on every update (per the
// design notes: head_index is semantically monotonic, but a wide counter
// and a normalized one behave identically).
func (d *Decoder) writeHistory(b byte) {
	window := d.cfg.windowSize()
	d.buffers[d.cfg.InputBufSize+d.headIndex] = b
	d.headIndex = (d.headIndex + 1) % window
}

// nextBit pulls one bit MSB-first from the input region, loading a fresh
// byte when bitIndex == 0. It reports underflow (ok=false) rather than
// blocking when no input byte is available — the spec-compliant behavior
// per the design notes' Open Questions, not the reference heuristic that
// can reject satisfiable requests.
func (d *Decoder) nextBit() (bit byte, ok bool) {
	if d.bitIndex == 0 {
		if d.inputIndex >= d.inputSize {
			return 0, false
		}
		d.currentByte = d.buffers[d.inputIndex]
		d.inputIndex++
		d.bitIndex = 0x80
		if d.inputIndex >= d.inputSize {
			d.inputIndex = 0
			d.inputSize = 0
		}
	}
	if d.currentByte&d.bitIndex != 0 {
		bit = 1
	}
	d.bitIndex >>= 1
	return bit, true
}

// readBits extracts a width-bit field (1 <= width <= 31), MSB-first,
// retaining partial progress in fieldAccum across underflow retries — the
// accumulator holds state for exactly one in-flight request, per §4.2.
func (d *Decoder) readBits(width int) (int, bool) {
	if !d.fieldArmed {
		d.fieldWidth = width
		d.fieldBits = 0
		d.fieldAccum = 0
		d.fieldArmed = true
	}
	for d.fieldBits < d.fieldWidth {
		bit, ok := d.nextBit()
		if !ok {
			return 0, false
		}
		d.fieldAccum = (d.fieldAccum << 1) | uint32(bit)
		d.fieldBits++
	}
	d.fieldArmed = false
	return int(d.fieldAccum), true
}
