package lzss

// The optional byte-chain index: matchIndex[i] is the nearest offset j < i
// with the same byte value as buffer[i], or matchNotFound if there is
// none. Grounded on the retrieved heatshrink reference's do_indexing /
// search_index (currantlabs-goheatshrink, whowechina-heatshrink): a
// per-offset "previous occurrence of the same byte value" linked list
// that turns the longest-match search from O(window) into
// output-sensitive. Rebuilt once per active-half fill; §9 notes
// implementers may omit it entirely (see WithIndex), at a cost in
// throughput only, never correctness.
type matchIndex []int32

func newMatchIndex(size int) matchIndex {
	return make(matchIndex, size)
}

// build recomputes the chain over buffer[:n] from scratch.
func (idx matchIndex) build(buffer []byte, n int) {
	var last [256]int32
	for i := range last {
		last[i] = matchNotFound
	}
	for i := 0; i < n; i++ {
		b := buffer[i]
		idx[i] = last[b]
		last[b] = int32(i)
	}
}

// breakEven is the longest match length not worth encoding: only matches
// strictly longer than breakEven (3 bytes or more) are used, since a
// 2-byte match costs more bits than two literals for the formats this
// codec targets.
const breakEven = 2

// findLongestMatch searches buffer[start:needle) for the longest run that
// also matches buffer[needle:needle+maxLen), scanning most-recent-first
// (needle-1 downward to start, or via the chain index when enabled).
// Ties keep the first (most recent) candidate reached. It returns
// (distance, length) with distance = needle - candidatePos, or (0, 0) if
// no match longer than breakEven exists.
func findLongestMatch(buffer []byte, idx matchIndex, useIndex bool, start, needle, maxLen int) (distance, length int) {
	if maxLen <= 0 || needle <= start {
		return 0, 0
	}

	bestLen := 0
	bestPos := -1

	if useIndex && idx != nil {
		for pos := int(idx[needle]); pos >= start; pos = int(idx[pos]) {
			if bestLen > 0 && buffer[pos+bestLen] != buffer[needle+bestLen] {
				continue
			}
			l := matchLen(buffer, pos, needle, maxLen)
			if l > bestLen {
				bestLen = l
				bestPos = pos
				if l == maxLen {
					break
				}
			}
		}
	} else {
		for pos := needle - 1; pos >= start; pos-- {
			l := matchLen(buffer, pos, needle, maxLen)
			if l > bestLen {
				bestLen = l
				bestPos = pos
				if l == maxLen {
					break
				}
			}
		}
	}

	if bestPos < 0 || bestLen <= breakEven {
		return 0, 0
	}
	return needle - bestPos, bestLen
}

func matchLen(buffer []byte, pos, needle, maxLen int) int {
	l := 0
	for l < maxLen && buffer[pos+l] == buffer[needle+l] {
		l++
	}
	return l
}
