package layout

import "math"

// Bidirectional translation between document coordinates (paragraph, rune
// offset) and display coordinates (global line index, column). Every
// operation is total: unmappable input degrades to the nearest valid
// position instead of returning an error.

// DocToDisplay maps a document position to the first line whose paragraph
// matches and whose offset range contains offset (inclusive on both ends, so
// a position exactly on a wrap boundary resolves to the earlier line). When
// nothing matches it falls back to the start of the last line.
func (r *Result) DocToDisplay(para, offset int) (line, col int) {
	for i, ln := range r.Lines {
		p := ln.Pos()
		if p.Para == para && offset >= p.Start && offset <= p.End {
			return i, offset - p.Start
		}
	}
	if len(r.Lines) == 0 {
		return 0, 0
	}
	return len(r.Lines) - 1, 0
}

// DisplayToDoc maps a display position back to (paragraph, rune offset).
// The line index clamps into [0, lineCount-1] — an out-of-range line lands
// at the end of the document — and the column clamps to the line's
// cursor-reachable text length.
func (r *Result) DisplayToDoc(line, col int) (para, offset int) {
	if len(r.Lines) == 0 {
		return 0, 0
	}
	if line < 0 {
		line = 0
	}
	if line >= len(r.Lines) {
		line = len(r.Lines) - 1
	}
	ln := r.Lines[line]
	if col < 0 {
		col = 0
	}
	if n := textLen(ln); col > n {
		col = n
	}
	p := ln.Pos()
	return p.Para, p.Start + col
}

// XToColumn converts a horizontal pixel offset within a line's text into a
// rune column. It binary-searches the cumulative measured width of
// text[0:mid], then snaps to whichever of the two adjacent boundaries is
// numerically closer to x. Correctness assumes the measurer is monotone in
// substring length; a non-monotone measurer still terminates.
func XToColumn(x float64, text string, m Measurer) int {
	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi) / 2
		if m.Measure(string(runes[:mid])) < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	// Nearest-boundary correction on top of the raw search result.
	if lo > 0 {
		dPrev := math.Abs(m.Measure(string(runes[:lo-1])) - x)
		dCur := math.Abs(m.Measure(string(runes[:lo])) - x)
		if dPrev < dCur {
			lo--
		}
	}
	return lo
}
