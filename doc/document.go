// Package doc holds the flat, paragraph-oriented document model consumed by
// the layout core: a paragraph sequence, an index-aligned format sequence,
// and a keyed image collection. Two sentinel paragraph forms carry non-text
// intent inline in the paragraph stream (see ImageMarker and BreakMarker).
package doc

import "unicode/utf8"

// Sentinel marker runes. A paragraph whose text is exactly ImageMarker
// followed by an id string anchors an image; a paragraph whose text is
// exactly BreakMarker forces the following content onto a fresh page.
const (
	ImageMarker = '\uFFFC' // OBJECT REPLACEMENT CHARACTER
	BreakMarker = '\uFFFD' // REPLACEMENT CHARACTER
)

// Document is the editable source of a layout pass. Paragraphs and Formats
// are parallel sequences, same length, same index. The document is owned and
// mutated by the editing collaborators; the layout core only reads it.
type Document struct {
	Paragraphs []string
	Formats    []Format
	Images     map[string]Image
}

// New returns an empty document with an initialized image collection.
func New() *Document {
	return &Document{Images: map[string]Image{}}
}

// Append adds a paragraph and its format, keeping the sequences aligned.
func (d *Document) Append(text string, f Format) {
	d.Paragraphs = append(d.Paragraphs, text)
	d.Formats = append(d.Formats, f)
}

// AppendImage adds an anchored-image marker paragraph for id and registers
// the image in the collection.
func (d *Document) AppendImage(img Image) {
	if d.Images == nil {
		d.Images = map[string]Image{}
	}
	d.Images[img.ID] = img
	d.Append(ImageParagraph(img.ID), Format{})
}

// AppendBreak adds a forced page-break marker paragraph.
func (d *Document) AppendBreak() {
	d.Append(BreakParagraph(), Format{})
}

// FormatAt returns the format for paragraph i, or the zero format when the
// sequences have drifted out of alignment.
func (d *Document) FormatAt(i int) Format {
	if i < 0 || i >= len(d.Formats) {
		return Format{}
	}
	return d.Formats[i]
}

// ImageParagraph builds the sentinel text anchoring the image with id.
func ImageParagraph(id string) string {
	return string(ImageMarker) + id
}

// BreakParagraph builds the sentinel text of a forced page break.
func BreakParagraph() string {
	return string(BreakMarker)
}

// ImageID reports whether text is an anchored-image marker paragraph and
// returns the opaque id that follows the marker rune.
func ImageID(text string) (string, bool) {
	r, size := utf8.DecodeRuneInString(text)
	if r != ImageMarker || len(text) == size {
		return "", false
	}
	return text[size:], true
}

// IsBreak reports whether text is a forced page-break marker paragraph.
func IsBreak(text string) bool {
	return text == string(BreakMarker)
}
