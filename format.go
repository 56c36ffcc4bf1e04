package lzss

// Wire format constants shared by the encoder and decoder. A symbol is a
// 1-bit tag followed by its payload:
//
//	literal:  1 b7 b6 b5 b4 b3 b2 b1 b0
//	backref:  0 i_(W-1) ... i_0 l_(L-1) ... l_0   (index and length stored as value-1)
const (
	markLit byte = 1 // tag bit for a literal byte
	markRef byte = 0 // tag bit for a back-reference

	matchNotFound = -1 // sentinel: chain-index end, no earlier offset holds the same byte
)
