package canvasrenderer

import (
	"math"
	"testing"

	"github.com/Pterygoidien/folio/doc"
	"github.com/Pterygoidien/folio/layout"
)

func TestNewAppliesDefaultMargin(t *testing.T) {
	r := New(Options{})
	if r.margin != defaultMargin {
		t.Errorf("margin = %v, want %v", r.margin, defaultMargin)
	}
	r = New(Options{Margin: 20})
	if r.margin != 20 {
		t.Errorf("margin = %v, want 20", r.margin)
	}
}

func TestMeasurerRequiresFont(t *testing.T) {
	r := New(Options{})
	if _, err := r.Measurer(layout.Config{FontSize: 16}); err == nil {
		t.Fatal("Measurer without a configured font should fail")
	}
}

func TestRenderRejectsNilResult(t *testing.T) {
	r := New(Options{})
	if _, err := r.Render(nil, nil); err == nil {
		t.Fatal("Render(nil) should fail")
	}
}

func TestExemptAnchorSelectsStackingOrder(t *testing.T) {
	d := doc.New()
	d.Images["wm"] = doc.Image{ID: "wm", Width: 400, Height: 400, Wrap: doc.WrapBehind}
	d.Images["fg"] = doc.Image{ID: "fg", Width: 50, Height: 50, Wrap: doc.WrapInFront}
	d.Images["pic"] = doc.Image{ID: "pic", Width: 50, Height: 48, Wrap: doc.WrapInline}

	behind := layout.ImageLine{ImageID: "wm"}
	inFront := layout.ImageLine{ImageID: "fg"}
	continuation := layout.ImageLine{ImageID: "pic"} // in-flow slot, HeightLines 0
	block := layout.ImageLine{ImageID: "pic", HeightLines: 2}
	text := layout.TextLine{Text: "x"}

	cases := []struct {
		name  string
		ln    layout.Line
		front bool
		want  bool
	}{
		{"behind image in behind pass", behind, false, true},
		{"behind image skipped in front pass", behind, true, false},
		{"in-front image in front pass", inFront, true, true},
		{"in-front image skipped in behind pass", inFront, false, false},
		{"in-flow continuation never matches", continuation, false, false},
		{"in-flow block never matches", block, false, false},
		{"text line never matches", text, false, false},
	}
	for _, tc := range cases {
		img, ok := exemptAnchor(d, tc.ln, tc.front)
		if ok != tc.want {
			t.Errorf("%s: matched = %v, want %v", tc.name, ok, tc.want)
		}
		if ok && img.ID == "" {
			t.Errorf("%s: matched with empty image", tc.name)
		}
	}

	if _, ok := exemptAnchor(d, layout.ImageLine{ImageID: "ghost"}, false); ok {
		t.Error("unknown image id matched")
	}
}

func TestPageSizeGeometry(t *testing.T) {
	r := New(Options{Margin: 48})
	cfg := layout.Config{ContentWidth: 816, LineHeight: 24, LinesPerPage: 40}

	w, h := r.pageSize(cfg)
	wantW := (816 + 2*48.0) * mmPerPx
	wantH := (40*24 + 2*48.0) * mmPerPx
	if math.Abs(w-wantW) > 1e-9 || math.Abs(h-wantH) > 1e-9 {
		t.Errorf("pageSize = %v x %v, want %v x %v", w, h, wantW, wantH)
	}

	// A degenerate lines-per-page still yields a positive page.
	w, h = r.pageSize(layout.Config{ContentWidth: 100, LineHeight: 24})
	if w <= 0 || h <= 0 {
		t.Errorf("degenerate pageSize = %v x %v, want positive", w, h)
	}
}
