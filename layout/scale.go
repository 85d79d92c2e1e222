package layout

import "math"

// This file keeps the zoom arithmetic in one place so that the rest of the
// core never multiplies by Zoom/100 ad hoc.

// scale returns the zoom factor (1.0 at 100%).
func (c Config) scale() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom / 100
}

// scaled converts an unscaled (100% zoom) length into the current view.
func (c Config) scaled(v float64) float64 { return v * c.scale() }

// baseLineHeight is the unscaled line height: base font size times the
// line-height multiplier. Float anchor lines derive from it so that the
// anchor is a document property, stable across zoom changes.
func (c Config) baseLineHeight() float64 {
	lh := c.BaseFontSize * c.LineHeightScale
	if lh <= 0 {
		lh = c.BaseFontSize * defaultLineHeightScale
	}
	return lh
}

// imageLineSpan is the number of line slots a zoom-scaled image height
// occupies: ceil(scaledHeight / scaledLineHeight).
func (c Config) imageLineSpan(unscaledHeight float64) int {
	lh := c.LineHeight
	if lh <= 0 {
		return 1
	}
	span := int(math.Ceil(c.scaled(unscaledHeight) / lh))
	if span < 0 {
		return 0
	}
	return span
}
