// Package canvasrenderer renders layout results via github.com/tdewolff/canvas
// and supplies the text-measurement capability the layout core injects.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/Pterygoidien/folio/doc"
	"github.com/Pterygoidien/folio/layout"
	"github.com/Pterygoidien/folio/renderer"
)

// Layout units are pixels at 96 dpi; canvas draws in mm and takes font
// sizes in pt. All conversion happens at this boundary.
const (
	mmPerPx = 25.4 / 96.0
	pxPerMm = 96.0 / 25.4
	ptPerPx = 72.0 / 96.0
)

const defaultMargin = 48.0 // px

// Options configures the canvas renderer.
type Options struct {
	// BaseDir resolves relative image Src paths.
	BaseDir string
	// Font supplies the single text face, by bytes or by path.
	Font Resource
	// Margin is the page margin around the content area, in px.
	Margin float64
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// Renderer draws layout results and measures text through one cached canvas
// font family.
type Renderer struct {
	baseDir string
	margin  float64
	font    Resource

	fontMu sync.Mutex
	family *canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// New creates a canvas-based renderer.
func New(opts Options) *Renderer {
	margin := opts.Margin
	if margin <= 0 {
		margin = defaultMargin
	}
	return &Renderer{
		baseDir: opts.BaseDir,
		margin:  margin,
		font:    opts.Font,
	}
}

// Measurer returns the synchronous measurement capability for the given
// configuration: advance widths in px under a face sized to cfg.FontSize.
func (r *Renderer) Measurer(cfg layout.Config) (layout.Measurer, error) {
	face, err := r.fontFace(cfg.FontSize)
	if err != nil {
		return nil, err
	}
	return layout.MeasureFunc(func(text string) float64 {
		return face.TextWidth(text) * pxPerMm
	}), nil
}

// Render draws every page of the layout result into a PDF.
func (r *Renderer) Render(d *doc.Document, res *layout.Result) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("canvasrenderer: nil layout result")
	}
	face, err := r.fontFace(res.Config.FontSize)
	if err != nil {
		return nil, err
	}

	pageW, pageH := r.pageSize(res.Config)
	var buf bytes.Buffer
	writer := pdf.New(&buf, pageW, pageH, nil)

	loc := res.Locator()
	for page := 0; page < res.PageCount(); page++ {
		if page > 0 {
			writer.NewPage(pageW, pageH)
		}
		c := canvas.New(pageW, pageH)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the layout

		if err := r.drawPage(ctx, d, res, loc, page, face); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("canvasrenderer: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pageSize derives the fixed page geometry in mm from the layout config.
func (r *Renderer) pageSize(cfg layout.Config) (w, h float64) {
	lpp := cfg.LinesPerPage
	if lpp < 1 {
		lpp = 1
	}
	w = (cfg.ContentWidth + 2*r.margin) * mmPerPx
	h = (float64(lpp)*cfg.LineHeight + 2*r.margin) * mmPerPx
	return w, h
}

func (r *Renderer) drawPage(ctx *canvas.Context, d *doc.Document, res *layout.Result, loc layout.Locator, page int, face *canvas.FontFace) error {
	start, end := loc.LineRangeOfPage(page, len(res.Lines))
	cfg := res.Config

	if err := r.drawAnchored(ctx, d, res, start, end, false); err != nil {
		return err
	}

	perColumn := loc.LinesPerPage
	if cfg.Columns > 1 {
		perColumn = (loc.LinesPerPage + cfg.Columns - 1) / cfg.Columns
	}

	for i := start; i < end; i++ {
		slot := i % loc.LinesPerPage
		col := loc.ColumnOf(i)
		x := r.margin + float64(col)*cfg.ColumnWidth
		y := r.margin + float64(slot%perColumn)*cfg.LineHeight

		switch ln := res.Lines[i].(type) {
		case layout.TextLine:
			r.drawTextLine(ctx, d, cfg, ln, face, x, y)
		case layout.ImageLine:
			if ln.HeightLines > 0 {
				if err := r.drawImage(ctx, d, cfg, ln, x, y); err != nil {
					return err
				}
			}
		case layout.PageBreakLine:
			// Padding slots render as blank space.
		}
	}

	if err := r.drawFloats(ctx, d, res, loc, page); err != nil {
		return err
	}
	return r.drawAnchored(ctx, d, res, start, end, true)
}

// exemptAnchor returns the flow-exempt image anchored on ln, filtered by
// stacking order: behind-text anchors when front is false, in-front anchors
// when true. In-flow image lines and continuation slots do not match.
func exemptAnchor(d *doc.Document, ln layout.Line, front bool) (doc.Image, bool) {
	il, ok := ln.(layout.ImageLine)
	if !ok || il.HeightLines != 0 {
		return doc.Image{}, false
	}
	img, ok := d.Images[il.ImageID]
	if !ok {
		return doc.Image{}, false
	}
	switch img.Wrap {
	case doc.WrapBehind:
		return img, !front
	case doc.WrapInFront:
		return img, front
	}
	return doc.Image{}, false
}

// drawAnchored draws the flow-exempt images anchored within [start, end) at
// their stored positions. They displace no content, so position comes from
// the declared X/Y (zoom-scaled), not from the anchor line's slot.
func (r *Renderer) drawAnchored(ctx *canvas.Context, d *doc.Document, res *layout.Result, start, end int, front bool) error {
	scale := res.Config.Zoom / 100
	if scale <= 0 {
		scale = 1
	}
	for i := start; i < end; i++ {
		img, ok := exemptAnchor(d, res.Lines[i], front)
		if !ok {
			continue
		}
		x := r.margin + img.X*scale
		y := r.margin + img.Y*scale
		if err := r.drawImageBox(ctx, img, x, y, img.Width*scale, img.Height*scale); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawTextLine(ctx *canvas.Context, d *doc.Document, cfg layout.Config, ln layout.TextLine, face *canvas.FontFace, x, y float64) {
	f := d.FormatAt(ln.Para)
	x += f.ListIndent
	width := cfg.ColumnWidth - f.ListIndent
	if ln.Reduction != nil {
		width -= ln.Reduction.Width
		if ln.Reduction.Side == layout.SideLeft {
			x += ln.Reduction.Width
		}
	}

	text := ln.Text
	if ln.ListNumber > 0 {
		text = strconv.Itoa(ln.ListNumber) + ". " + text
	}
	if text == "" {
		return
	}

	align := canvas.Left
	anchor := x
	switch f.Align {
	case doc.AlignCenter:
		align = canvas.Center
		anchor = x + width/2
	case doc.AlignRight:
		align = canvas.Right
		anchor = x + width
	}

	baseline := y*mmPerPx + face.Metrics().Ascent
	ctx.DrawText(anchor*mmPerPx, baseline, canvas.NewTextLine(face, text, align))
}

func (r *Renderer) drawImage(ctx *canvas.Context, d *doc.Document, cfg layout.Config, ln layout.ImageLine, x, y float64) error {
	img, ok := d.Images[ln.ImageID]
	if !ok {
		return nil
	}
	w := img.Width * cfg.Zoom / 100
	h := img.Height * cfg.Zoom / 100
	return r.drawImageBox(ctx, img, x, y, w, h)
}

// drawFloats draws floated images at their anchored positions; their text
// effect is already baked into the line widths.
func (r *Renderer) drawFloats(ctx *canvas.Context, d *doc.Document, res *layout.Result, loc layout.Locator, page int) error {
	cfg := res.Config
	for _, f := range res.Floats {
		if loc.PageOf(f.StartLine) != page {
			continue
		}
		img, ok := d.Images[f.ID]
		if !ok {
			continue
		}
		slot := f.StartLine % loc.LinesPerPage
		y := r.margin + float64(slot)*cfg.LineHeight
		x := r.margin
		if f.Side == layout.SideRight {
			x = r.margin + cfg.ContentWidth - f.Width
		}
		h := img.Height * cfg.Zoom / 100
		if err := r.drawImageBox(ctx, img, x, y, f.Width, h); err != nil {
			return err
		}
	}
	return nil
}

// drawImageBox decodes and draws the image resource, falling back to an
// outlined placeholder when the source is missing or unreadable.
func (r *Renderer) drawImageBox(ctx *canvas.Context, img doc.Image, x, y, w, h float64) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	data, err := r.decodeImage(img)
	if err != nil {
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(canvas.Gray)
		ctx.SetStrokeWidth(0.2)
		ctx.DrawPath(x*mmPerPx, y*mmPerPx, canvas.Rectangle(w*mmPerPx, h*mmPerPx))
		return nil
	}
	dpmm := float64(data.Bounds().Dx()) / (w * mmPerPx)
	if dpmm <= 0 {
		dpmm = 1
	}
	ctx.DrawImage(x*mmPerPx, y*mmPerPx, data, canvas.Resolution(dpmm))
	return nil
}

func (r *Renderer) decodeImage(img doc.Image) (image.Image, error) {
	if img.Src == "" {
		return nil, fmt.Errorf("canvasrenderer: image %s has no src", img.ID)
	}
	path := img.Src
	if !filepath.IsAbs(path) {
		if r.baseDir == "" {
			return nil, fmt.Errorf("canvasrenderer: relative src %q without base dir", img.Src)
		}
		path = filepath.Join(r.baseDir, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("canvasrenderer: open image %s: %w", img.Src, err)
	}
	defer file.Close()
	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("canvasrenderer: decode image %s: %w", img.Src, err)
	}
	return decoded, nil
}

// fontFace returns a face sized to the given px size, loading and caching
// the configured font family on first use.
func (r *Renderer) fontFace(sizePx float64) (*canvas.FontFace, error) {
	family, err := r.ensureFamily()
	if err != nil {
		return nil, err
	}
	if sizePx <= 0 {
		sizePx = 16
	}
	return family.Face(sizePx*ptPerPx, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFamily() (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if r.family != nil {
		return r.family, nil
	}

	data := r.font.Bytes
	if len(data) == 0 {
		if r.font.Path == "" {
			return nil, fmt.Errorf("canvasrenderer: no font configured")
		}
		b, err := os.ReadFile(r.font.Path)
		if err != nil {
			return nil, fmt.Errorf("canvasrenderer: read font %s: %w", r.font.Path, err)
		}
		data = b
	}

	family := canvas.NewFontFamily("folio")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("canvasrenderer: load font: %w", err)
	}
	r.family = family
	return family, nil
}
