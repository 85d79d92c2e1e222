package layout

// Greedy, word-boundary-aware line breaking. The wrapper never emits an
// empty line for non-empty input and always advances the scan position by at
// least one rune, so a pass terminates for any Measurer, monotone or not.

// lineSeg is one wrapped segment of a paragraph in rune offsets. end is the
// exclusive range end including any space run eaten at the wrap point;
// textEnd excludes that run and bounds the display text.
type lineSeg struct {
	start   int
	end     int
	textEnd int
}

// nextBreak finds the break for the line starting at cur. It returns the
// display-text end and the start of the following line. When the remaining
// text fits the budget both returns equal len(runes).
//
// The scan tracks the position immediately after the most recent space; when
// adding the next rune would exceed the budget it breaks there, or failing a
// boundary past cur, force-breaks after the last rune that still fit —
// advancing at least one rune even for a single over-wide token or a
// non-positive budget.
func nextBreak(runes []rune, cur int, budget float64, m Measurer) (textEnd, next int) {
	if m.Measure(string(runes[cur:])) <= budget {
		return len(runes), len(runes)
	}

	lastBoundary := -1
	breakAt := cur + 1
	for i := cur; i < len(runes); i++ {
		if m.Measure(string(runes[cur:i+1])) > budget {
			switch {
			case lastBoundary > cur:
				breakAt = lastBoundary
			case i > cur:
				breakAt = i
			default:
				breakAt = cur + 1
			}
			break
		}
		if runes[i] == ' ' {
			lastBoundary = i + 1
		}
	}

	textEnd = breakAt
	for textEnd > cur && runes[textEnd-1] == ' ' {
		textEnd--
	}
	next = breakAt
	for next < len(runes) && runes[next] == ' ' {
		next++
	}
	return textEnd, next
}

// wrapParagraph breaks text into segments covering [0, len) exactly once
// under a fixed width budget. An empty paragraph yields exactly one
// zero-length segment. The assembler uses the per-line variant below when
// float reductions vary the budget line by line.
func wrapParagraph(text string, budget float64, m Measurer) []lineSeg {
	return wrapParagraphFunc(text, func(int) float64 { return budget }, m)
}

// wrapParagraphFunc is wrapParagraph with a per-line budget: budget(i) is
// the width available to the i-th produced line.
func wrapParagraphFunc(text string, budget func(i int) float64, m Measurer) []lineSeg {
	runes := []rune(text)
	if len(runes) == 0 {
		return []lineSeg{{start: 0, end: 0, textEnd: 0}}
	}

	var segs []lineSeg
	cur := 0
	for cur < len(runes) {
		textEnd, next := nextBreak(runes, cur, budget(len(segs)), m)
		segs = append(segs, lineSeg{start: cur, end: next, textEnd: textEnd})
		cur = next
	}
	return segs
}
