package lzss

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Bounds on the configuration parameters, per the shared wire format: window
// and lookahead sizes are fixed per instance and must match between encoder
// and decoder to interoperate.
const (
	MinWindowBits    uint8 = 4
	MaxWindowBits    uint8 = 15
	MinLookaheadBits uint8 = 3

	defaultWindowBits    uint8 = 8
	defaultLookaheadBits uint8 = 4
	defaultInputBufSize  int   = 256
)

var validate = validator.New()

// config holds the validated, immutable-per-instance parameters shared by
// Encoder and Decoder: W (windowBits), L (lookaheadBits), and, for decoders
// only, IBS (inputBufSize).
type config struct {
	WindowBits    uint8 `validate:"gte=4,lte=15"`
	LookaheadBits uint8 `validate:"gte=3"`
	InputBufSize  int   `validate:"gte=1"`
	UseIndex      bool
	Logger        logger
}

func defaultConfig() config {
	return config{
		WindowBits:    defaultWindowBits,
		LookaheadBits: defaultLookaheadBits,
		InputBufSize:  defaultInputBufSize,
		UseIndex:      true,
		Logger:        nopLogger{},
	}
}

// Option configures an Encoder or Decoder at construction time. Grounded on
// currantlabs/goheatshrink's functional-option config package (Window,
// Lookahead), generalized to this codec's bounds and extended with an index
// toggle and a logger hook.
type Option func(*config)

// Window sets W, the base-2 log of the sliding window size (window = 2^W
// bytes). Must be in [MinWindowBits, MaxWindowBits].
func Window(bits uint8) Option {
	return func(c *config) { c.WindowBits = bits }
}

// Lookahead sets L, the base-2 log of the maximum match length (lookahead =
// 2^L bytes). Must be in [MinLookaheadBits, W].
func Lookahead(bits uint8) Option {
	return func(c *config) { c.LookaheadBits = bits }
}

// InputBufferSize sets IBS, the number of bytes a Decoder reserves to hold
// compressed input awaiting bit-extraction. Has no effect on Encoder.
func InputBufferSize(n int) Option {
	return func(c *config) { c.InputBufSize = n }
}

// WithIndex toggles the optional byte-chain match index described in the
// design notes: on (the default) it accelerates search from O(window) to
// output-sensitive at the cost of one int32 per buffer byte; off, search is
// a linear scan over the window and uses no extra memory.
func WithIndex(enabled bool) Option {
	return func(c *config) { c.UseIndex = enabled }
}

// WithLogger attaches a structured trace logger (github.com/apex/log's
// log.Interface) to observe state-machine transitions. The default is a
// no-op logger so the hot path pays nothing unless a caller opts in.
func WithLogger(l logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

func newConfig(opts []Option) (config, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	if err := validate.Struct(c); err != nil {
		return config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.LookaheadBits > c.WindowBits {
		return config{}, fmt.Errorf("%w: lookahead bits %d exceeds window bits %d", ErrInvalidConfig, c.LookaheadBits, c.WindowBits)
	}

	return c, nil
}

func (c config) windowSize() int {
	return 1 << c.WindowBits
}

func (c config) maxMatch() int {
	return 1 << c.LookaheadBits
}
