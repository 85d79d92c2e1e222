package layout

// Fixed-capacity pagination: every page holds exactly LinesPerPage line
// slots regardless of rendered content height (a multi-line image consumes
// that many slots). Column subdivision is an independent derivation for
// multi-column views; page boundaries never depend on it.

// Locator derives page and column indices from global line indices.
type Locator struct {
	LinesPerPage int
	Columns      int
}

// Locator returns the locator for this result's configuration.
func (r *Result) Locator() Locator {
	return Locator{LinesPerPage: r.Config.LinesPerPage, Columns: r.Config.Columns}
}

// PageOf returns the page holding the given global line index.
func (l Locator) PageOf(line int) int {
	if line < 0 || l.LinesPerPage < 1 {
		return 0
	}
	return line / l.LinesPerPage
}

// LineRangeOfPage returns the half-open global line range [start, end) of a
// page, clipped to the total line count.
func (l Locator) LineRangeOfPage(page, totalLines int) (start, end int) {
	if page < 0 || l.LinesPerPage < 1 {
		return 0, 0
	}
	start = page * l.LinesPerPage
	end = start + l.LinesPerPage
	if end > totalLines {
		end = totalLines
	}
	if start > totalLines {
		start = totalLines
	}
	return start, end
}

// PageCount returns ceil(totalLines / LinesPerPage), at least 1 so an empty
// document still presents one page.
func (l Locator) PageCount(totalLines int) int {
	if l.LinesPerPage < 1 {
		return 1
	}
	n := (totalLines + l.LinesPerPage - 1) / l.LinesPerPage
	if n < 1 {
		n = 1
	}
	return n
}

// ColumnOf returns the column index of a line within its page, with the
// page's line slots divided evenly (ceiling) across the configured columns.
func (l Locator) ColumnOf(line int) int {
	if l.Columns < 2 || l.LinesPerPage < 1 || line < 0 {
		return 0
	}
	perColumn := (l.LinesPerPage + l.Columns - 1) / l.Columns
	col := (line % l.LinesPerPage) / perColumn
	if col >= l.Columns {
		col = l.Columns - 1
	}
	return col
}
