package layout

import (
	"unicode/utf8"

	"github.com/Pterygoidien/folio/doc"
)

// Build runs one full layout pass: it resolves image flow, walks the
// paragraphs in document order and produces a brand-new Result. Nothing from
// a previous pass is reused or mutated; recomputing against an unchanged
// document and config yields a structurally identical Result.
//
// The pass is a single blocking call with no suspension points. It is not
// safe to invoke concurrently over a document being mutated — the caller
// serializes relayout triggers (see the editor package's dirty flag).
func Build(d *doc.Document, cfg Config, m Measurer) *Result {
	cfg = cfg.normalized()
	res := &Result{
		Config: cfg,
		Floats: resolveFloats(d, cfg),
	}

	for pi, text := range d.Paragraphs {
		if id, ok := doc.ImageID(text); ok {
			res.assembleImage(pi, text, id, d)
			continue
		}
		if doc.IsBreak(text) {
			res.assembleBreak(pi, text)
			continue
		}
		res.assembleText(pi, text, d.FormatAt(pi), m)
	}
	return res
}

// assembleImage emits the line slots for an anchored image. A float
// contributes no lines of its own (its effect lives in Result.Floats); an
// in-flow block occupies its full slot span; a flow-exempt image keeps a
// single zero-height anchor line so position mapping stays total. A marker
// whose id is missing from the collection contributes an empty text line,
// counted in MissingImages.
func (r *Result) assembleImage(pi int, text, id string, d *doc.Document) {
	n := utf8.RuneCountInString(text)
	img, ok := d.Images[id]
	if !ok {
		r.MissingImages++
		r.Lines = append(r.Lines, TextLine{
			LinePos: LinePos{Para: pi, Start: 0, End: n},
			Last:    true,
		})
		return
	}

	switch classOf(img.Wrap) {
	case flowFloat:
		// Already registered in Floats; the anchor paragraph occupies no
		// line of its own.
	case flowBlock:
		span := r.Config.imageLineSpan(img.Height)
		if span < 1 {
			span = 1
		}
		r.Lines = append(r.Lines, ImageLine{
			LinePos:     LinePos{Para: pi, Start: 0, End: n},
			ImageID:     id,
			HeightLines: span,
		})
		for i := 1; i < span; i++ {
			r.Lines = append(r.Lines, ImageLine{
				LinePos: LinePos{Para: pi, Start: n, End: n},
				ImageID: id,
			})
		}
	case flowExempt:
		r.Lines = append(r.Lines, ImageLine{
			LinePos: LinePos{Para: pi, Start: 0, End: n},
			ImageID: id,
		})
	}
}

// assembleBreak emits the page-break marker line, then pads with further
// break-flagged blank lines until the running line count reaches the next
// LinesPerPage multiple, so the following paragraph opens a fresh page.
func (r *Result) assembleBreak(pi int, text string) {
	n := utf8.RuneCountInString(text)
	r.Lines = append(r.Lines, PageBreakLine{LinePos{Para: pi, Start: 0, End: n}})
	for len(r.Lines)%r.Config.LinesPerPage != 0 {
		r.Lines = append(r.Lines, PageBreakLine{LinePos{Para: pi, Start: n, End: n}})
	}
}

// assembleText wraps one text paragraph. The width budget of each line is
// the column width minus the list indent minus whatever float reduction is
// active at the global index the line will occupy.
func (r *Result) assembleText(pi int, text string, f doc.Format, m Measurer) {
	base := len(r.Lines)
	reductions := make([]*FloatReduction, 0, 4)

	budget := func(i int) float64 {
		red := reductionAt(base+i, r.Floats)
		reductions = append(reductions, red)
		b := r.Config.ColumnWidth - f.ListIndent
		if red != nil {
			b -= red.Width
		}
		return b
	}

	segs := wrapParagraphFunc(text, budget, m)
	runes := []rune(text)
	for i, seg := range segs {
		ln := TextLine{
			LinePos: LinePos{Para: pi, Start: seg.start, End: seg.end},
			Text:    string(runes[seg.start:seg.textEnd]),
			Last:    i == len(segs)-1,
		}
		if i == 0 {
			ln.ListNumber = f.ListNumber
		}
		if i < len(reductions) {
			ln.Reduction = reductions[i]
		}
		r.Lines = append(r.Lines, ln)
	}
}
