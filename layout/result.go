package layout

// Result is the output of one layout pass: the flat, globally ordered
// display-line sequence, the float ranges, and the config that produced
// them. A Result is immutable once built; the mapping operations below are
// pure reads and freely reentrant against a given Result.
type Result struct {
	Lines  []Line       `json:"lines"`
	Floats []FloatImage `json:"floats"`
	Config Config       `json:"config"`

	// MissingImages counts anchored-image paragraphs whose id was absent
	// from the image collection. The pass degrades silently per policy;
	// the counter lets a caller surface a warning.
	MissingImages int `json:"missingImages,omitempty"`
}

// PageCount returns the number of pages the line sequence fills.
func (r *Result) PageCount() int {
	return r.Locator().PageCount(len(r.Lines))
}
