package lzss

// Encoder states, in the order described by §4.1. The zero value is
// stateNotFull, the machine's initial state.
type encoderState int

const (
	stateNotFull encoderState = iota
	stateFilled
	stateSearch
	stateYieldTagBit
	stateYieldLiteral
	stateYieldBRIndex
	stateYieldBRLength
	stateSaveBacklog
	stateFlushBits
	stateDone
)

// Encoder compresses a byte stream into the wire format described in
// format.go, one caller-driven Sink/Poll/Finish step at a time. It holds a
// 2*window byte buffer split into a backlog half (already-processed data,
// kept around so matches may reach into it) and an active half (data sunk
// but not yet scanned), plus whatever partial-symbol state is in flight.
//
// Grounded on woozymasta/lzss's Compress (a single buffered pass over the
// whole input) restructured into the heatshrink-style incremental state
// machine the retrieved whowechina-heatshrink/currantlabs-goheatshrink
// files implement, generalized to arbitrary W/L per config.go.
type Encoder struct {
	cfg config

	buffer []byte // len = 2 * windowSize; [0:window) backlog, [window:2*window) active
	index  matchIndex

	inputSize      int
	matchScanIndex int
	matchPos       int
	matchLength    int

	finishing      bool
	backlogPartial bool
	backlogFilled  bool

	currentByte byte
	bitIndex    byte

	outgoingBits      uint32
	outgoingBitsCount int

	state encoderState

	bytesSunk   int64
	bytesPolled int64
}

// NewEncoder constructs an Encoder. Options with no Window/Lookahead given
// default to an 8-bit window and 4-bit lookahead, matching
// currantlabs/goheatshrink's documented defaults.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	e := &Encoder{cfg: cfg}
	e.buffer = make([]byte, 2*cfg.windowSize())
	if cfg.UseIndex {
		e.index = newMatchIndex(len(e.buffer))
	}
	e.Reset()
	return e, nil
}

// Reset clears all mutable state, retaining configuration and allocated
// buffers.
func (e *Encoder) Reset() {
	for i := range e.buffer {
		e.buffer[i] = 0
	}
	e.inputSize = 0
	e.matchScanIndex = 0
	e.matchPos = 0
	e.matchLength = 0
	e.finishing = false
	e.backlogPartial = false
	e.backlogFilled = false
	e.currentByte = 0
	e.bitIndex = 0x80
	e.outgoingBits = 0
	e.outgoingBitsCount = 0
	e.state = stateNotFull
	e.bytesSunk = 0
	e.bytesPolled = 0
}

// Stats reports bytes accepted by Sink and bytes emitted by Poll so far.
func (e *Encoder) Stats() (sunk, polled int64) {
	return e.bytesSunk, e.bytesPolled
}

func (e *Encoder) activeBase() int {
	return e.cfg.windowSize()
}

// Sink copies as many bytes as fit into the free space of the active
// half. It returns the number accepted (0 <= accepted <= len(p)); when the
// active half fills, the encoder transitions to stateFilled.
func (e *Encoder) Sink(p []byte) (int, Status, error) {
	if p == nil {
		return 0, StatusOK, ErrNilBuffer
	}
	if e.finishing {
		return 0, StatusOK, ErrFinishing
	}
	if e.state != stateNotFull {
		return 0, StatusOK, ErrNotSinkable
	}

	window := e.cfg.windowSize()
	free := window - e.inputSize
	n := len(p)
	if n > free {
		n = free
	}

	base := e.activeBase() + e.inputSize
	copy(e.buffer[base:], p[:n])
	e.inputSize += n
	e.bytesSunk += int64(n)

	e.cfg.Logger.Debugf("sink: accepted %d bytes, input_size=%d/%d", n, e.inputSize, window)

	if e.inputSize == window {
		e.state = stateFilled
	}

	return n, StatusOK, nil
}

// Finish signals end-of-input. If the encoder had free space in its
// active half, that space is deemed final and the remaining buffered
// bytes are processed. Idempotent; returns StatusDone once the machine has
// fully drained, else StatusMore.
func (e *Encoder) Finish() (Status, error) {
	e.finishing = true
	if e.state == stateNotFull {
		e.state = stateFilled
	}
	if e.state == stateDone {
		return StatusDone, nil
	}
	return StatusMore, nil
}

// Poll drives the state machine, writing compressed bytes into out until
// either out fills (StatusMore), more input is required (StatusEmpty), or
// the stream is fully flushed (StatusEmpty, with Finish now returning
// StatusDone).
func (e *Encoder) Poll(out []byte) (int, Status, error) {
	if out == nil {
		return 0, StatusEmpty, ErrNilBuffer
	}
	if len(out) == 0 {
		return 0, StatusEmpty, ErrEmptyOutBuf
	}

	n := 0
	for {
		e.cfg.Logger.Debugf("poll: state=%d n=%d/%d", e.state, n, len(out))
		switch e.state {
		case stateNotFull:
			e.bytesPolled += int64(n)
			return n, StatusEmpty, nil

		case stateFilled:
			if e.cfg.UseIndex {
				e.index.build(e.buffer, e.activeBase()+e.inputSize)
			}
			e.state = stateSearch

		case stateSearch:
			e.state = e.stepSearch()

		case stateYieldTagBit:
			if n >= len(out) {
				e.bytesPolled += int64(n)
				return n, StatusMore, nil
			}
			e.state, n = e.yieldTagBit(out, n)

		case stateYieldLiteral:
			if n >= len(out) {
				e.bytesPolled += int64(n)
				return n, StatusMore, nil
			}
			e.state, n = e.yieldLiteral(out, n)

		case stateYieldBRIndex:
			if n >= len(out) {
				e.bytesPolled += int64(n)
				return n, StatusMore, nil
			}
			e.state, n = e.yieldBRIndex(out, n)

		case stateYieldBRLength:
			if n >= len(out) {
				e.bytesPolled += int64(n)
				return n, StatusMore, nil
			}
			e.state, n = e.yieldBRLength(out, n)

		case stateSaveBacklog:
			e.state = e.saveBacklog()

		case stateFlushBits:
			if n >= len(out) {
				e.bytesPolled += int64(n)
				return n, StatusMore, nil
			}
			e.state, n = e.flushBits(out, n)

		case stateDone:
			e.bytesPolled += int64(n)
			return n, StatusEmpty, nil
		}
	}
}

// stepSearch implements §4.1 state 3 (SEARCH) and the end-of-search
// boundary: with rem = inputSize - matchScanIndex, search ends when
// rem <= 0 while finishing, else when rem <= maxMatch (keep a full
// lookahead behind the scan so every match considered can be fully
// evaluated). When maxMatch equals the window (L == W) the boundary is
// lowered to window-1, so a full active half always yields at least one
// symbol before it is saved to the backlog.
func (e *Encoder) stepSearch() encoderState {
	maxMatch := e.cfg.maxMatch()
	rem := e.inputSize - e.matchScanIndex

	boundary := maxMatch
	if boundary >= e.cfg.windowSize() {
		boundary = e.cfg.windowSize() - 1
	}
	if e.finishing {
		boundary = 0
	}
	if rem <= boundary {
		// SAVE_BACKLOG itself decides, based on finishing, whether to
		// flush the trailing bits or fold the active half into backlog.
		return stateSaveBacklog
	}

	start := e.searchStart()
	needle := e.activeBase() + e.matchScanIndex
	maxLen := maxMatch
	if e.inputSize-e.matchScanIndex < maxLen {
		maxLen = e.inputSize - e.matchScanIndex
	}

	distance, length := findLongestMatch(e.buffer, e.index, e.cfg.UseIndex, start, needle, maxLen)
	if length == 0 {
		e.matchLength = 0
		e.matchScanIndex++
		return stateYieldTagBit
	}

	e.matchPos = distance
	e.matchLength = length
	return stateYieldTagBit
}

// searchStart implements §4.1's "start selection": a full window
// lookbehind once the backlog is entirely filled; clamped to >= maxMatch
// while the backlog is only partially filled (the first maxMatch backlog
// bytes are undefined); and no lookbehind into the still-zeroed backlog
// at all before it has ever been written.
func (e *Encoder) searchStart() int {
	needle := e.activeBase() + e.matchScanIndex
	window := e.cfg.windowSize()

	if e.backlogFilled {
		return needle - window + 1
	}
	if e.backlogPartial {
		start := needle - window + 1
		if start < e.cfg.maxMatch() {
			start = e.cfg.maxMatch()
		}
		return start
	}
	return e.activeBase()
}

// yieldTagBit implements §4.1 state 4.
func (e *Encoder) yieldTagBit(out []byte, n int) (encoderState, int) {
	if e.matchLength == 0 {
		n = e.pushBits(out, n, 1, uint32(markLit))
		return stateYieldLiteral, n
	}
	n = e.pushBits(out, n, 1, uint32(markRef))
	e.outgoingBits = uint32(e.matchPos - 1)
	e.outgoingBitsCount = int(e.cfg.WindowBits)
	return stateYieldBRIndex, n
}

// yieldLiteral implements §4.1 state 5. yieldTagBit only routes here when
// matchLength is 0 (the literal path), so the next symbol always starts a
// fresh search.
func (e *Encoder) yieldLiteral(out []byte, n int) (encoderState, int) {
	b := e.buffer[e.activeBase()+e.matchScanIndex-1]
	n = e.pushBits(out, n, 8, uint32(b))
	return stateSearch, n
}

// yieldBRIndex implements §4.1 state 6.
func (e *Encoder) yieldBRIndex(out []byte, n int) (encoderState, int) {
	n = e.pushStagedBits(out, n)
	if e.outgoingBitsCount > 0 {
		return stateYieldBRIndex, n
	}
	e.outgoingBits = uint32(e.matchLength - 1)
	e.outgoingBitsCount = int(e.cfg.LookaheadBits)
	return stateYieldBRLength, n
}

// yieldBRLength implements §4.1 state 7.
func (e *Encoder) yieldBRLength(out []byte, n int) (encoderState, int) {
	n = e.pushStagedBits(out, n)
	if e.outgoingBitsCount > 0 {
		return stateYieldBRLength, n
	}
	e.matchScanIndex += e.matchLength
	e.matchLength = 0
	return stateSearch, n
}

// saveBacklog implements §4.1 state 8 (SAVE_BACKLOG).
func (e *Encoder) saveBacklog() encoderState {
	if e.finishing {
		return stateFlushBits
	}

	// Shift the whole buffer down by match_scan_index: the bytes already
	// scanned in the old active half slide into the backlog half (they
	// are now genuine history), and the unprocessed tail slides to the
	// front of the active half to be rescanned from index 0. Grounded on
	// the retrieved heatshrink reference's save_backlog / search_index
	// shift (whowechina-heatshrink__encoder.go, currantlabs-goheatshrink).
	msi := e.matchScanIndex
	copy(e.buffer, e.buffer[msi:])
	e.inputSize -= msi
	e.matchScanIndex = 0

	if e.backlogPartial {
		e.backlogFilled = true
	} else {
		e.backlogPartial = true
	}

	return stateNotFull
}

// flushBits implements §4.1 state 9.
func (e *Encoder) flushBits(out []byte, n int) (encoderState, int) {
	if e.bitIndex == 0x80 {
		return stateDone, n
	}
	out[n] = e.currentByte
	n++
	e.currentByte = 0
	e.bitIndex = 0x80
	return stateDone, n
}

// pushBits pushes a field of the given bit width (<=8 here; callers split
// wider fields via pushStagedBits) MSB-first into out starting at n,
// returning the advanced write cursor. Each call here writes at most one
// output byte, so the caller only needs to check capacity once before
// calling.
func (e *Encoder) pushBits(out []byte, n int, width int, value uint32) int {
	for i := width - 1; i >= 0; i-- {
		bit := byte((value >> uint(i)) & 1)
		if pushBit(&e.currentByte, &e.bitIndex, bit) {
			out[n] = e.currentByte
			n++
			e.currentByte = 0
		}
	}
	return n
}

// pushStagedBits pushes up to 8 bits of the staged outgoingBits field (the
// top remaining bits first), per §4.1's "Bit packing": emitting a staged
// field of width k>8 proceeds in 8-bit slices, the final slice being <=8
// bits.
func (e *Encoder) pushStagedBits(out []byte, n int) int {
	count := e.outgoingBitsCount
	if count > 8 {
		count = 8
	}
	if count == 0 {
		return n
	}
	bits := topBits(e.outgoingBits, e.outgoingBitsCount, count)
	n = e.pushBits(out, n, count, uint32(bits))
	e.outgoingBitsCount -= count
	return n
}
