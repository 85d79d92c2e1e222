package layout

// Measurer is the single synchronous capability the layout core needs from
// its rendering collaborator: the advance width of a text run under the
// current font. It must be monotonically non-decreasing in substring length;
// this is an assumed precondition, not enforced.
type Measurer interface {
	Measure(text string) float64
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(text string) float64

// Measure implements Measurer.
func (f MeasureFunc) Measure(text string) float64 { return f(text) }

// Config bundles the width/height/zoom parameters governing one layout pass.
// All lengths are in the same unit the Measurer reports (typically pixels).
type Config struct {
	FontSize        float64 `json:"fontSize"`        // zoom-scaled font size
	LineHeight      float64 `json:"lineHeight"`      // zoom-scaled line height
	BaseFontSize    float64 `json:"baseFontSize"`    // font size at 100% zoom
	LineHeightScale float64 `json:"lineHeightScale"` // multiplier on the font size
	ContentWidth    float64 `json:"contentWidth"`    // zoom-scaled content area width
	ColumnWidth     float64 `json:"columnWidth"`     // zoom-scaled width of one text column
	LinesPerPage    int     `json:"linesPerPage"`
	Columns         int     `json:"columns"` // text columns per page, minimum 1
	Zoom            float64 `json:"zoom"`    // percent, 100 = unscaled
}

// normalized patches structurally degenerate values so that every layout
// pass terminates. Width <= 0 is deliberately left alone: it degrades to
// single-character lines in the wrapper rather than being an error.
func (c Config) normalized() Config {
	if c.LinesPerPage < 1 {
		c.LinesPerPage = 1
	}
	if c.Columns < 1 {
		c.Columns = 1
	}
	if c.Zoom <= 0 {
		c.Zoom = 100
	}
	if c.LineHeight <= 0 {
		c.LineHeight = c.FontSize * defaultLineHeightScale
	}
	if c.LineHeight <= 0 {
		c.LineHeight = 1
	}
	return c
}

const defaultLineHeightScale = 1.4
