package layout

// A layout pass flattens the document into one globally ordered sequence of
// display lines. Lines come in exactly three shapes — wrapped text, image
// slots and page-break padding — modeled as a closed tagged union so that
// invalid flag combinations are unrepresentable.

// LinePos is the positional core shared by every line variant: the source
// paragraph index and the contiguous rune-offset range the line covers
// within it. For each paragraph the ranges of its lines union to exactly
// [0, len) with no gaps or overlaps.
type LinePos struct {
	Para  int `json:"para"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Pos returns the positional core.
func (p LinePos) Pos() LinePos { return p }

// Line is one visually wrapped unit of layout output. It is a sealed
// interface; the only implementations are TextLine, ImageLine and
// PageBreakLine.
type Line interface {
	Pos() LinePos
	sealedLine()
}

// Side is the content-area side a floated image occupies.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// FloatReduction is the width squeeze a float imposes on a text line.
type FloatReduction struct {
	Side  Side    `json:"side"`
	Width float64 `json:"width"`
}

// TextLine is one wrapped segment of a text paragraph. Text may be shorter
// than the covered range: the space run eaten at a wrap point belongs to the
// range but not to the display text, so cursors cannot land after it.
type TextLine struct {
	LinePos
	Text       string          `json:"text"`
	ListNumber int             `json:"listNumber,omitempty"` // first line of a list item only
	Last       bool            `json:"last"`                 // last line of its paragraph
	Reduction  *FloatReduction `json:"reduction,omitempty"`
}

func (TextLine) sealedLine() {}

// ImageLine is one line slot occupied by an in-flow or flow-exempt image.
// HeightLines is the image's full slot span on the first line of the image
// and 0 on continuation lines; a flow-exempt anchor is a single line with
// HeightLines 0.
type ImageLine struct {
	LinePos
	ImageID     string `json:"imageId"`
	HeightLines int    `json:"heightLines"`
}

func (ImageLine) sealedLine() {}

// PageBreakLine is the forced-break marker line or one of the blank padding
// lines that push the following paragraph to the top of the next page.
type PageBreakLine struct {
	LinePos
}

func (PageBreakLine) sealedLine() {}

// FloatImage records the width reduction a floated image imposes over the
// half-open global line range [StartLine, EndLine).
type FloatImage struct {
	ID        string  `json:"id"`
	StartLine int     `json:"startLine"`
	EndLine   int     `json:"endLine"`
	Width     float64 `json:"width"`
	Side      Side    `json:"side"`
}

// textLen is the cursor-reachable length of a line: the rune count of the
// display text for text lines, zero for image and page-break lines.
func textLen(ln Line) int {
	if t, ok := ln.(TextLine); ok {
		return len([]rune(t.Text))
	}
	return 0
}
