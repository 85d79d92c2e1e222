package doc

// Alignment is the horizontal alignment of a paragraph.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Format is the per-paragraph formatting metadata, index-aligned with the
// paragraph sequence.
type Format struct {
	Align Alignment

	// ListNumber is the sequence number of a list item, 0 for plain
	// paragraphs. Only the first wrapped line of a list item displays it.
	ListNumber int

	// ListIndent is the horizontal indent (in layout units) subtracted from
	// the width budget of every wrapped line of a list item.
	ListIndent float64
}
