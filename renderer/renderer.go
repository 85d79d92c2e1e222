// Package renderer defines the boundary to rendering backends.
package renderer

import (
	"github.com/Pterygoidien/folio/doc"
	"github.com/Pterygoidien/folio/layout"
)

// Renderer turns a layout result into an output document (e.g. PDF bytes).
type Renderer interface {
	Render(d *doc.Document, res *layout.Result) ([]byte, error)
}
