package layout

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Pterygoidien/folio/doc"
)

func testConfig() Config {
	return Config{
		FontSize:        16,
		LineHeight:      24,
		BaseFontSize:    16,
		LineHeightScale: 1.5,
		ContentWidth:    800,
		ColumnWidth:     200,
		LinesPerPage:    20,
		Columns:         1,
		Zoom:            100,
	}
}

func TestBuildPageBreakPadsToPageBoundary(t *testing.T) {
	d := doc.New()
	d.Append(strings.Repeat("x", 100), doc.Format{}) // 5 lines at 20 runes each
	d.AppendBreak()
	d.Append("tail", doc.Format{})

	res := Build(d, testConfig(), fixedWidth(10))

	if len(res.Lines) != 21 {
		t.Fatalf("got %d lines, want 21", len(res.Lines))
	}
	for i := 0; i < 5; i++ {
		if _, ok := res.Lines[i].(TextLine); !ok {
			t.Errorf("line %d is %T, want TextLine", i, res.Lines[i])
		}
	}
	for i := 5; i < 20; i++ {
		ln, ok := res.Lines[i].(PageBreakLine)
		if !ok {
			t.Fatalf("line %d is %T, want PageBreakLine", i, res.Lines[i])
		}
		want := LinePos{Para: 1, Start: 1, End: 1}
		if i == 5 {
			want = LinePos{Para: 1, Start: 0, End: 1}
		}
		if ln.LinePos != want {
			t.Errorf("line %d pos = %+v, want %+v", i, ln.LinePos, want)
		}
	}
	next := res.Lines[20].(TextLine)
	if next.Para != 2 || next.Text != "tail" {
		t.Errorf("line 20 = %+v, want paragraph 2 at the top of page 2", next)
	}
	if got := res.PageCount(); got != 2 {
		t.Errorf("PageCount = %d, want 2", got)
	}
}

func TestBuildFloatReducesCoveredLines(t *testing.T) {
	d := doc.New()
	d.AppendImage(doc.Image{
		ID:     "fig",
		Width:  100,
		Height: 72, // 3 line slots at height 24
		Y:      48, // anchors at line 2
		Wrap:   doc.WrapSquare,
		Align:  doc.HAlignLeft,
	})
	d.Append(strings.Repeat("x", 150), doc.Format{})

	res := Build(d, testConfig(), fixedWidth(10))

	wantFloats := []FloatImage{{ID: "fig", StartLine: 2, EndLine: 5, Width: 100, Side: SideLeft}}
	if diff := cmp.Diff(wantFloats, res.Floats); diff != "" {
		t.Fatalf("floats mismatch (-want +got):\n%s", diff)
	}

	// The float anchor paragraph contributes no lines; the text paragraph
	// starts at global index 0 and squeezes to 100px on lines 2..4.
	if len(res.Lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(res.Lines))
	}
	for i, ln := range res.Lines {
		tl := ln.(TextLine)
		reduced := i >= 2 && i < 5
		if reduced {
			want := &FloatReduction{Side: SideLeft, Width: 100}
			if diff := cmp.Diff(want, tl.Reduction); diff != "" {
				t.Errorf("line %d reduction mismatch (-want +got):\n%s", i, diff)
			}
			if got := tl.End - tl.Start; got != 10 {
				t.Errorf("line %d spans %d runes, want 10 under the squeeze", i, got)
			}
		} else if tl.Reduction != nil {
			t.Errorf("line %d has reduction %+v, want none", i, tl.Reduction)
		}
	}
}

func TestResolveFloatsAnchorStableAcrossZoom(t *testing.T) {
	d := doc.New()
	d.AppendImage(doc.Image{
		ID: "fig", Width: 100, Height: 72, Y: 48,
		Wrap: doc.WrapSquare, Align: doc.HAlignLeft,
	})

	cfg := testConfig()
	cfg.Zoom = 200
	cfg.FontSize, cfg.LineHeight = 32, 48
	cfg.ContentWidth, cfg.ColumnWidth = 1600, 400

	floats := resolveFloats(d, cfg)
	want := []FloatImage{{ID: "fig", StartLine: 2, EndLine: 5, Width: 200, Side: SideLeft}}
	if diff := cmp.Diff(want, floats); diff != "" {
		t.Fatalf("floats mismatch (-want +got):\n%s", diff)
	}
}

func TestFloatSideFromCenter(t *testing.T) {
	cfg := testConfig() // content width 800
	cases := []struct {
		name string
		img  doc.Image
		want Side
	}{
		{"left half", doc.Image{X: 100, Width: 100}, SideLeft},
		{"right half", doc.Image{X: 600, Width: 100}, SideRight},
		{"explicit right wins", doc.Image{X: 0, Width: 100, Align: doc.HAlignRight}, SideRight},
		{"explicit left wins", doc.Image{X: 700, Width: 100, Align: doc.HAlignLeft}, SideLeft},
	}
	for _, tc := range cases {
		if got := floatSide(tc.img, cfg); got != tc.want {
			t.Errorf("%s: floatSide = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestReductionAtLastFloatWins(t *testing.T) {
	floats := []FloatImage{
		{ID: "a", StartLine: 0, EndLine: 4, Width: 50, Side: SideLeft},
		{ID: "b", StartLine: 2, EndLine: 6, Width: 120, Side: SideRight},
	}
	if red := reductionAt(3, floats); red == nil || red.Width != 120 || red.Side != SideRight {
		t.Errorf("line 3 reduction = %+v, want the later float", red)
	}
	if red := reductionAt(1, floats); red == nil || red.Width != 50 {
		t.Errorf("line 1 reduction = %+v, want the first float", red)
	}
	if red := reductionAt(6, floats); red != nil {
		t.Errorf("line 6 reduction = %+v, want nil", red)
	}
}

func TestBuildInFlowImageOccupiesSlotSpan(t *testing.T) {
	d := doc.New()
	d.AppendImage(doc.Image{ID: "pic", Width: 50, Height: 48, Wrap: doc.WrapInline})

	res := Build(d, testConfig(), fixedWidth(10))

	n := len([]rune(doc.ImageParagraph("pic")))
	want := []Line{
		ImageLine{LinePos: LinePos{Para: 0, Start: 0, End: n}, ImageID: "pic", HeightLines: 2},
		ImageLine{LinePos: LinePos{Para: 0, Start: n, End: n}, ImageID: "pic"},
	}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFlowExemptImageKeepsAnchorLine(t *testing.T) {
	d := doc.New()
	d.AppendImage(doc.Image{ID: "wm", Width: 400, Height: 400, Wrap: doc.WrapBehind})

	res := Build(d, testConfig(), fixedWidth(10))

	if len(res.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(res.Lines))
	}
	ln := res.Lines[0].(ImageLine)
	if ln.HeightLines != 0 || ln.ImageID != "wm" {
		t.Errorf("anchor line = %+v, want zero-height wm anchor", ln)
	}
}

func TestBuildMissingImageDegrades(t *testing.T) {
	d := doc.New()
	d.Append(doc.ImageParagraph("ghost"), doc.Format{})

	res := Build(d, testConfig(), fixedWidth(10))

	if res.MissingImages != 1 {
		t.Fatalf("MissingImages = %d, want 1", res.MissingImages)
	}
	n := len([]rune(doc.ImageParagraph("ghost")))
	want := []Line{TextLine{LinePos: LinePos{Para: 0, Start: 0, End: n}, Last: true}}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmptyParagraphKeepsOneLine(t *testing.T) {
	d := doc.New()
	d.Append("", doc.Format{})

	res := Build(d, testConfig(), fixedWidth(10))

	want := []Line{TextLine{LinePos: LinePos{Para: 0}, Last: true}}
	if diff := cmp.Diff(want, res.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildListNumberOnFirstLineOnly(t *testing.T) {
	d := doc.New()
	d.Append(strings.Repeat("x", 40), doc.Format{ListNumber: 3, ListIndent: 20})

	res := Build(d, testConfig(), fixedWidth(10))

	// 200 - 20 indent = 180 budget: 18 runes per line.
	if len(res.Lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(res.Lines))
	}
	first := res.Lines[0].(TextLine)
	if first.ListNumber != 3 {
		t.Errorf("first line ListNumber = %d, want 3", first.ListNumber)
	}
	for i := 1; i < len(res.Lines); i++ {
		if tl := res.Lines[i].(TextLine); tl.ListNumber != 0 {
			t.Errorf("line %d ListNumber = %d, want 0", i, tl.ListNumber)
		}
	}
	last := res.Lines[2].(TextLine)
	if !last.Last {
		t.Error("final line not marked Last")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	d := doc.New()
	d.Append("The quick brown fox jumps over the lazy dog", doc.Format{})
	d.AppendImage(doc.Image{ID: "fig", Width: 100, Height: 72, Y: 48, Wrap: doc.WrapTight})
	d.AppendBreak()
	d.Append("and settles down", doc.Format{Align: doc.AlignRight})

	cfg := testConfig()
	a := Build(d, cfg, fixedWidth(10))
	b := Build(d, cfg, fixedWidth(10))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("two passes over unchanged input differ (-first +second):\n%s", diff)
	}
}
