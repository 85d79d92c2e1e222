// Package editor owns the mutable editing session: the document, the layout
// configuration and the cached layout result. It serializes relayout through
// a dirty flag so that one mutation burst triggers at most one pass.
package editor

import (
	"github.com/Pterygoidien/folio/doc"
	"github.com/Pterygoidien/folio/layout"
)

// Editor is a single-session aggregate. It is not safe for concurrent use;
// the caller owns the serialization of edits and layout calls.
type Editor struct {
	doc   *doc.Document
	cfg   layout.Config
	res   *layout.Result
	dirty bool
}

// New creates an editor over the given document and configuration. The first
// Layout call always runs a pass.
func New(d *doc.Document, cfg layout.Config) *Editor {
	if d == nil {
		d = doc.New()
	}
	return &Editor{doc: d, cfg: cfg, dirty: true}
}

// Document exposes the underlying document. Mutating it directly requires a
// MarkDirty call; prefer the mutation helpers below, which handle it.
func (e *Editor) Document() *doc.Document { return e.doc }

// Config returns the current layout configuration.
func (e *Editor) Config() layout.Config { return e.cfg }

// Dirty reports whether the cached result is stale.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkDirty invalidates the cached layout result.
func (e *Editor) MarkDirty() { e.dirty = true }

// Layout returns the current layout result, recomputing it only when a
// mutation has invalidated the cache.
func (e *Editor) Layout(m layout.Measurer) *layout.Result {
	if e.dirty || e.res == nil {
		e.res = layout.Build(e.doc, e.cfg, m)
		e.dirty = false
	}
	return e.res
}

// Result returns the cached layout result without recomputation. It is nil
// until the first Layout call.
func (e *Editor) Result() *layout.Result { return e.res }

// DocToDisplay maps a document position over the cached snapshot. Before the
// first Layout call it returns the origin.
func (e *Editor) DocToDisplay(para, offset int) (line, col int) {
	if e.res == nil {
		return 0, 0
	}
	return e.res.DocToDisplay(para, offset)
}

// DisplayToDoc maps a display position over the cached snapshot. Before the
// first Layout call it returns the origin.
func (e *Editor) DisplayToDoc(line, col int) (para, offset int) {
	if e.res == nil {
		return 0, 0
	}
	return e.res.DisplayToDoc(line, col)
}

// ClampCursor snaps a display position onto the nearest cursor-reachable
// display position of the cached snapshot: out-of-range lines land on the
// last line, columns clamp to the line's text length.
func (e *Editor) ClampCursor(line, col int) (int, int) {
	if e.res == nil {
		return 0, 0
	}
	para, offset := e.res.DisplayToDoc(line, col)
	return e.res.DocToDisplay(para, offset)
}

// AppendParagraph appends a text paragraph with its format.
func (e *Editor) AppendParagraph(text string, f doc.Format) {
	e.doc.Append(text, f)
	e.dirty = true
}

// ReplaceParagraph swaps the text of paragraph i; out-of-range indices are
// ignored.
func (e *Editor) ReplaceParagraph(i int, text string) {
	if i < 0 || i >= len(e.doc.Paragraphs) {
		return
	}
	e.doc.Paragraphs[i] = text
	e.dirty = true
}

// InsertParagraph inserts a text paragraph before index i, clamping i into
// the valid range.
func (e *Editor) InsertParagraph(i int, text string, f doc.Format) {
	if i < 0 {
		i = 0
	}
	if i > len(e.doc.Paragraphs) {
		i = len(e.doc.Paragraphs)
	}
	e.doc.Paragraphs = append(e.doc.Paragraphs, "")
	copy(e.doc.Paragraphs[i+1:], e.doc.Paragraphs[i:])
	e.doc.Paragraphs[i] = text
	e.doc.Formats = append(e.doc.Formats, doc.Format{})
	copy(e.doc.Formats[i+1:], e.doc.Formats[i:])
	e.doc.Formats[i] = f
	e.dirty = true
}

// SetFormat replaces the format of paragraph i; out-of-range indices are
// ignored.
func (e *Editor) SetFormat(i int, f doc.Format) {
	if i < 0 || i >= len(e.doc.Formats) {
		return
	}
	e.doc.Formats[i] = f
	e.dirty = true
}

// SetImage registers or updates an image resource.
func (e *Editor) SetImage(img doc.Image) {
	if e.doc.Images == nil {
		e.doc.Images = map[string]doc.Image{}
	}
	e.doc.Images[img.ID] = img
	e.dirty = true
}

// SetZoom changes the view zoom percentage, rescaling the view-dependent
// config fields from their 100% bases. Non-positive zoom is ignored.
func (e *Editor) SetZoom(zoom float64) {
	if zoom <= 0 || zoom == e.cfg.Zoom {
		return
	}
	old := e.cfg.Zoom
	if old <= 0 {
		old = 100
	}
	ratio := zoom / old
	e.cfg.FontSize *= ratio
	e.cfg.LineHeight *= ratio
	e.cfg.ContentWidth *= ratio
	e.cfg.ColumnWidth *= ratio
	e.cfg.Zoom = zoom
	e.dirty = true
}
