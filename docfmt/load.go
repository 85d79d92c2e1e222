package docfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Pterygoidien/folio/doc"
	"github.com/Pterygoidien/folio/layout"
)

// Defaults applied when the page section omits a setting. Lengths are in
// layout units (pixels at 100% zoom).
const (
	defaultFontSize     = 16.0
	defaultLineScale    = 1.5
	defaultContentWidth = 816.0
	defaultLinesPerPage = 40
)

// Load parses a .folio file and converts it into the document model and the
// layout configuration for the declared zoom level.
func Load(r io.Reader) (*doc.Document, layout.Config, error) {
	file, err := Parse(r)
	if err != nil {
		return nil, layout.Config{}, fmt.Errorf("docfmt: parse: %w", err)
	}
	return Convert(file)
}

// LoadString is Load over a string input.
func LoadString(input string) (*doc.Document, layout.Config, error) {
	file, err := ParseString(input)
	if err != nil {
		return nil, layout.Config{}, fmt.Errorf("docfmt: parse: %w", err)
	}
	return Convert(file)
}

// Convert walks a parsed File and produces the document plus its layout
// configuration. Declared lengths are unscaled; Convert applies the zoom to
// the view-dependent fields of the config.
func Convert(file *File) (*doc.Document, layout.Config, error) {
	if file == nil {
		return nil, layout.Config{}, fmt.Errorf("docfmt: empty file")
	}

	page := pageSettings{
		fontSize:     defaultFontSize,
		lineScale:    defaultLineScale,
		contentWidth: defaultContentWidth,
		columnWidth:  0, // defaults to the content width
		linesPerPage: defaultLinesPerPage,
		columns:      1,
		zoom:         100,
	}
	d := doc.New()

	for _, section := range file.Sections {
		switch {
		case section.Page != nil:
			if err := page.apply(section.Page.Block); err != nil {
				return nil, layout.Config{}, err
			}
		case section.Images != nil:
			if err := collectImages(section.Images.Block, d); err != nil {
				return nil, layout.Config{}, err
			}
		}
	}
	for _, section := range file.Sections {
		if section.Body == nil {
			continue
		}
		if err := buildBody(section.Body.Block, d); err != nil {
			return nil, layout.Config{}, err
		}
	}

	return d, page.config(), nil
}

type pageSettings struct {
	fontSize     float64
	lineScale    float64
	contentWidth float64
	columnWidth  float64
	linesPerPage int
	columns      int
	zoom         float64
}

func (p *pageSettings) apply(block *Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Assignment == nil {
			continue
		}
		key := strings.ToLower(stmt.Assignment.Key)
		switch key {
		case "font-size":
			p.fontSize = numberValue(stmt.Assignment.Value, p.fontSize)
		case "line-height":
			p.lineScale = numberValue(stmt.Assignment.Value, p.lineScale)
		case "content-width":
			p.contentWidth = numberValue(stmt.Assignment.Value, p.contentWidth)
		case "column-width":
			p.columnWidth = numberValue(stmt.Assignment.Value, p.columnWidth)
		case "lines-per-page":
			p.linesPerPage = int(numberValue(stmt.Assignment.Value, float64(p.linesPerPage)))
		case "columns":
			p.columns = int(numberValue(stmt.Assignment.Value, float64(p.columns)))
		case "zoom":
			p.zoom = numberValue(stmt.Assignment.Value, p.zoom)
		default:
			return fmt.Errorf("docfmt: unknown page setting %q", stmt.Assignment.Key)
		}
	}
	return nil
}

func (p *pageSettings) config() layout.Config {
	scale := p.zoom / 100
	if scale <= 0 {
		scale = 1
	}
	colWidth := p.columnWidth
	if colWidth <= 0 {
		colWidth = p.contentWidth / float64(max(p.columns, 1))
	}
	return layout.Config{
		FontSize:        p.fontSize * scale,
		LineHeight:      p.fontSize * p.lineScale * scale,
		BaseFontSize:    p.fontSize,
		LineHeightScale: p.lineScale,
		ContentWidth:    p.contentWidth * scale,
		ColumnWidth:     colWidth * scale,
		LinesPerPage:    p.linesPerPage,
		Columns:         p.columns,
		Zoom:            p.zoom,
	}
}

func collectImages(block *Block, d *doc.Document) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Command == nil || stmt.Command.Name != "image" {
			continue
		}
		if len(stmt.Command.Args) == 0 {
			return fmt.Errorf("docfmt: image declaration needs an id")
		}
		img := doc.Image{ID: stmt.Command.Args[0].Value}
		if stmt.Command.Block != nil {
			for _, as := range stmt.Command.Block.Statements {
				if as.Assignment == nil {
					continue
				}
				if err := applyImageProp(&img, as.Assignment); err != nil {
					return err
				}
			}
		}
		d.Images[img.ID] = img
	}
	return nil
}

func applyImageProp(img *doc.Image, a *Assignment) error {
	switch strings.ToLower(a.Key) {
	case "src":
		img.Src = stringValue(a.Value)
	case "width":
		img.Width = numberValue(a.Value, 0)
	case "height":
		img.Height = numberValue(a.Value, 0)
	case "x":
		img.X = numberValue(a.Value, 0)
	case "y":
		img.Y = numberValue(a.Value, 0)
	case "wrap":
		style, err := wrapStyle(identValue(a.Value))
		if err != nil {
			return err
		}
		img.Wrap = style
	case "align":
		align, err := imageAlign(identValue(a.Value))
		if err != nil {
			return err
		}
		img.Align = align
	default:
		return fmt.Errorf("docfmt: unknown image property %q", a.Key)
	}
	return nil
}

func wrapStyle(name string) (doc.WrapStyle, error) {
	switch strings.ToLower(name) {
	case "", "inline":
		return doc.WrapInline, nil
	case "square":
		return doc.WrapSquare, nil
	case "tight":
		return doc.WrapTight, nil
	case "through":
		return doc.WrapThrough, nil
	case "top-bottom":
		return doc.WrapTopBottom, nil
	case "behind":
		return doc.WrapBehind, nil
	case "in-front":
		return doc.WrapInFront, nil
	}
	return doc.WrapInline, fmt.Errorf("docfmt: unknown wrap style %q", name)
}

func imageAlign(name string) (doc.HAlign, error) {
	switch strings.ToLower(name) {
	case "", "center":
		return doc.HAlignCenter, nil
	case "left":
		return doc.HAlignLeft, nil
	case "right":
		return doc.HAlignRight, nil
	}
	return doc.HAlignCenter, fmt.Errorf("docfmt: unknown image alignment %q", name)
}

func buildBody(block *Block, d *doc.Document) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if stmt.Command == nil {
			continue
		}
		cmd := stmt.Command
		switch cmd.Name {
		case "para":
			f, err := paraFormat(cmd.Args)
			if err != nil {
				return err
			}
			d.Append(extractText(cmd.Block), f)
		case "image":
			if len(cmd.Args) == 0 {
				return fmt.Errorf("docfmt: image anchor needs an id")
			}
			// The id may be absent from the images section; the layout
			// pass degrades per its missing-image policy.
			d.Append(doc.ImageParagraph(cmd.Args[0].Value), doc.Format{})
		case "pagebreak":
			d.AppendBreak()
		default:
			return fmt.Errorf("docfmt: unknown body directive %q", cmd.Name)
		}
	}
	return nil
}

// paraFormat reads the key/value argument pairs of a para directive:
// align left|center|right, list <n>, indent <px>.
func paraFormat(args []*Lexeme) (doc.Format, error) {
	var f doc.Format
	for i := 0; i+1 < len(args); i += 2 {
		key := strings.ToLower(args[i].Value)
		val := args[i+1].Value
		switch key {
		case "align":
			switch strings.ToLower(val) {
			case "left", "start":
				f.Align = doc.AlignLeft
			case "center":
				f.Align = doc.AlignCenter
			case "right", "end":
				f.Align = doc.AlignRight
			default:
				return f, fmt.Errorf("docfmt: unknown alignment %q", val)
			}
		case "list":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return f, fmt.Errorf("docfmt: bad list number %q", val)
			}
			f.ListNumber = n
		case "indent":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil || v < 0 {
				return f, fmt.Errorf("docfmt: bad indent %q", val)
			}
			f.ListIndent = v
		default:
			return f, fmt.Errorf("docfmt: unknown para attribute %q", key)
		}
	}
	return f, nil
}

func extractText(block *Block) string {
	if block == nil {
		return ""
	}
	var builder strings.Builder
	for _, stmt := range block.Statements {
		if stmt.Text != nil {
			builder.WriteString(string(stmt.Text.Value))
		}
	}
	return builder.String()
}

func numberValue(v *Value, fallback float64) float64 {
	if v == nil || v.Number == nil {
		return fallback
	}
	f, err := strconv.ParseFloat(*v.Number, 64)
	if err != nil {
		return fallback
	}
	return f
}

func stringValue(v *Value) string {
	if v == nil || v.String == nil {
		return ""
	}
	return string(*v.String)
}

func identValue(v *Value) string {
	if v == nil {
		return ""
	}
	if v.Ident != nil {
		return *v.Ident
	}
	return stringValue(v)
}
