package text

import (
	"testing"

	"github.com/go-text/typesetting/language"
)

func shapeRun(s string, src *FontSource, dir Direction) Run {
	r := []rune(s)
	return Run{Text: r, End: len(r), Source: src, Size: 20, Direction: dir, Kerning: true}
}

func TestSimpleShaper(t *testing.T) {
	src := goRegular(t)
	glyphs := NewSimpleShaper().Shape(shapeRun("Hi!", src, DirectionLTR))
	if len(glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(glyphs))
	}
	for i, g := range glyphs {
		if g.Cluster != i {
			t.Errorf("glyph %d cluster = %d", i, g.Cluster)
		}
		if g.GID == 0 || g.XAdvance <= 0 {
			t.Errorf("glyph %d = %+v", i, g)
		}
	}
}

func TestSimpleShaperRTL(t *testing.T) {
	src := goRegular(t)
	glyphs := NewSimpleShaper().Shape(shapeRun("abc", src, DirectionRTL))
	want := []int{2, 1, 0}
	for i, g := range glyphs {
		if g.Cluster != want[i] {
			t.Errorf("glyph %d cluster = %d, want %d", i, g.Cluster, want[i])
		}
	}
}

func TestSimpleShaperSubRange(t *testing.T) {
	src := goRegular(t)
	run := shapeRun("abcdef", src, DirectionLTR)
	run.Start, run.End = 2, 4
	glyphs := NewSimpleShaper().Shape(run)
	if len(glyphs) != 2 || glyphs[0].Cluster != 2 || glyphs[1].Cluster != 3 {
		t.Errorf("sub-range glyphs = %+v", glyphs)
	}
	if got := NewSimpleShaper().Shape(Run{}); got != nil {
		t.Errorf("empty run = %v", got)
	}
}

func TestGoTextShaperMatchesCmap(t *testing.T) {
	src := goRegular(t)
	gt := NewGoTextShaper()
	simple := NewSimpleShaper()

	run := shapeRun("Hello", src, DirectionLTR)
	run.Kerning = false
	a := gt.Shape(run)
	b := simple.Shape(run)
	if len(a) != len(b) {
		t.Fatalf("glyph count %d vs %d", len(a), len(b))
	}
	var wa, wb float64
	for i := range a {
		if a[i].GID != b[i].GID || a[i].Cluster != b[i].Cluster {
			t.Errorf("glyph %d: gotext %+v, simple %+v", i, a[i], b[i])
		}
		wa += a[i].XAdvance
		wb += b[i].XAdvance
	}
	if d := wa - wb; d > 1 || d < -1 {
		t.Errorf("total advance %v vs %v", wa, wb)
	}
}

func TestGoTextShaperRTL(t *testing.T) {
	src := goRegular(t)
	glyphs := NewGoTextShaper().Shape(shapeRun("abc", src, DirectionRTL))
	if len(glyphs) != 3 {
		t.Fatalf("got %d glyphs", len(glyphs))
	}
	if glyphs[0].Cluster != 2 || glyphs[2].Cluster != 0 {
		t.Errorf("RTL glyphs not in visual order: %+v", glyphs)
	}
}

func TestGoTextShaperCachesFonts(t *testing.T) {
	src := goRegular(t)
	s := NewGoTextShaper()
	s.Shape(shapeRun("a", src, DirectionLTR))
	if s.fonts.Len() != 1 {
		t.Errorf("cached fonts = %d, want 1", s.fonts.Len())
	}
	s.Shape(shapeRun("b", src, DirectionLTR))
	if s.fonts.Len() != 1 {
		t.Errorf("cached fonts after reuse = %d, want 1", s.fonts.Len())
	}
	s.RemoveSource(src)
	if s.fonts.Len() != 0 {
		t.Errorf("cached fonts after RemoveSource = %d", s.fonts.Len())
	}
}

func TestRunScript(t *testing.T) {
	tests := []struct {
		text string
		want language.Script
	}{
		{"  hello", language.Latin},
		{"123 שלום", language.Hebrew},
		{"...", language.Latin},
		{"Привет", language.Cyrillic},
	}
	for _, tt := range tests {
		r := []rune(tt.text)
		if got := RunScript(r, 0, len(r)); got != tt.want {
			t.Errorf("RunScript(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
