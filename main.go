package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Pterygoidien/folio/docfmt"
	"github.com/Pterygoidien/folio/editor"
	"github.com/Pterygoidien/folio/layout"
	canvasrenderer "github.com/Pterygoidien/folio/renderer/canvas"
)

func main() {
	input := flag.String("in", "examples/demo.folio", "input document path")
	output := flag.String("out", "output/demo.pdf", "PDF output path")
	debug := flag.String("debug", "", "layout debug JSON output path")
	fontPath := flag.String("font", "", "TTF/OTF font file path")
	zoom := flag.Float64("zoom", 0, "override the document zoom percentage")
	flag.Parse()

	if *fontPath == "" {
		log.Fatal("a -font file is required")
	}

	r := canvasrenderer.New(canvasrenderer.Options{
		BaseDir: filepath.Dir(*input),
		Font:    canvasrenderer.Resource{Path: *fontPath},
	})
	if err := run(*input, *output, *debug, *zoom, r); err != nil {
		log.Fatalf("generating PDF failed: %v", err)
	}
	fmt.Printf("wrote %s\n", *output)
}

// run chains parsing, layout and rendering.
func run(inputPath, outputPath, debugPath string, zoom float64, r *canvasrenderer.Renderer) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open document %s: %w", inputPath, err)
	}
	defer file.Close()

	d, cfg, err := docfmt.Load(file)
	if err != nil {
		return err
	}

	ed := editor.New(d, cfg)
	if zoom > 0 {
		ed.SetZoom(zoom)
	}

	m, err := r.Measurer(ed.Config())
	if err != nil {
		return err
	}
	result := ed.Layout(m)
	if result.MissingImages > 0 {
		log.Printf("warning: %d image anchor(s) reference unknown ids", result.MissingImages)
	}

	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	pdfBytes, err := r.Render(d, result)
	if err != nil {
		return fmt.Errorf("render PDF: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write PDF file: %w", err)
	}

	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("create debug directory: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("write debug JSON: %w", err)
	}
	return nil
}
