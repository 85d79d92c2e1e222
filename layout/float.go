package layout

import "github.com/Pterygoidien/folio/doc"

// Image flow resolution: each anchored image falls into exactly one flow
// class, decided by its wrap style.

type flowClass int

const (
	flowFloat  flowClass = iota // reduces text width over a line range
	flowBlock                   // occupies line slots in the normal flow
	flowExempt                  // single zero-height anchor line
)

// classOf maps every wrap style onto its flow class. The set is closed;
// out-of-range values land in the normal flow like the default block style.
func classOf(s doc.WrapStyle) flowClass {
	switch s {
	case doc.WrapSquare, doc.WrapTight, doc.WrapThrough:
		return flowFloat
	case doc.WrapInline, doc.WrapTopBottom:
		return flowBlock
	case doc.WrapBehind, doc.WrapInFront:
		return flowExempt
	}
	return flowBlock
}

// floatSide picks the side a floated image occupies: explicit alignment
// wins; a centered image goes to whichever half of the content area holds
// its horizontal center.
func floatSide(img doc.Image, cfg Config) Side {
	switch img.Align {
	case doc.HAlignLeft:
		return SideLeft
	case doc.HAlignRight:
		return SideRight
	}
	if cfg.scaled(img.X+img.Width/2) > cfg.ContentWidth/2 {
		return SideRight
	}
	return SideLeft
}

// resolveFloats precomputes the FloatImage ranges for every float-class
// image anchored in the document, in paragraph order.
//
// Unit convention: the start line derives from the stored unscaled Y over
// the unscaled line height — the anchor is a document property and must not
// move when the zoom changes — while the reduction width and the line-span
// extent use the zoom-scaled dimensions, because occupancy is a property of
// the current view.
func resolveFloats(d *doc.Document, cfg Config) []FloatImage {
	var floats []FloatImage
	for _, text := range d.Paragraphs {
		id, ok := doc.ImageID(text)
		if !ok {
			continue
		}
		img, ok := d.Images[id]
		if !ok || classOf(img.Wrap) != flowFloat {
			continue
		}

		start := 0
		if lh := cfg.baseLineHeight(); lh > 0 && img.Y > 0 {
			start = int(img.Y / lh)
		}
		floats = append(floats, FloatImage{
			ID:        id,
			StartLine: start,
			EndLine:   start + cfg.imageLineSpan(img.Height),
			Width:     cfg.scaled(img.Width),
			Side:      floatSide(img, cfg),
		})
	}
	return floats
}

// reductionAt returns the float reduction applying to the global line index,
// or nil. When several floats cover the same line the most recently
// registered one wins; a simultaneous left+right squeeze is not modeled.
func reductionAt(line int, floats []FloatImage) *FloatReduction {
	var red *FloatReduction
	for _, f := range floats {
		if line >= f.StartLine && line < f.EndLine {
			red = &FloatReduction{Side: f.Side, Width: f.Width}
		}
	}
	return red
}
