package lzss

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrNilBuffer     = errors.New("lzss: required buffer is nil")
	ErrEmptyOutBuf   = errors.New("lzss: poll output buffer has zero capacity")
	ErrFinishing     = errors.New("lzss: sink called after finish")
	ErrNotSinkable   = errors.New("lzss: sink called while encoder is not accepting input")
	ErrInvalidConfig = errors.New("lzss: invalid window/lookahead/buffer configuration")
)
