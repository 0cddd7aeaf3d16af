package text

import (
	"errors"
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goregular"
)

func goRegular(t testing.TB) *FontSource {
	t.Helper()
	src, err := NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	return src
}

func TestNewFontSource(t *testing.T) {
	src := goRegular(t)
	if got := src.Name(); got != "Go" {
		t.Errorf("Name() = %q, want %q", got, "Go")
	}
	if src.Weight() != 400 || src.Italic() {
		t.Errorf("Weight/Italic = %d/%v, want 400/false", src.Weight(), src.Italic())
	}
	if !src.HasGlyph('A') {
		t.Error("HasGlyph('A') = false")
	}
	if src.HasGlyph('\U0001F600') {
		t.Error("HasGlyph(emoji) = true")
	}
	other := goRegular(t)
	if src.ID() == other.ID() {
		t.Error("two sources share an ID")
	}
}

func TestNewFontSourceStyle(t *testing.T) {
	src, err := NewFontSource(gobolditalic.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if src.Weight() != 700 || !src.Italic() {
		t.Errorf("Weight/Italic = %d/%v, want 700/true", src.Weight(), src.Italic())
	}
}

func TestNewFontSourceErrors(t *testing.T) {
	if _, err := NewFontSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("nil data: err = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewFontSource([]byte("not a font")); err == nil {
		t.Error("garbage data: expected error")
	}
	if _, err := NewFontSource(goregular.TTF, WithFaceIndex(3)); !errors.Is(err, ErrFaceIndex) {
		t.Errorf("bad index: err = %v, want ErrFaceIndex", err)
	}
}

func TestNewFontSources(t *testing.T) {
	srcs, err := NewFontSources(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 1 || srcs[0].Index() != 0 {
		t.Fatalf("got %d sources, want 1", len(srcs))
	}
}

func TestFontSourceClose(t *testing.T) {
	src := goRegular(t)
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.Closed() || src.Parsed() != nil || src.HasGlyph('A') {
		t.Error("closed source still usable")
	}
	if _, err := NewOutlineExtractor().Extract(src, 1, 16, HintingNone); !errors.Is(err, ErrClosed) {
		t.Errorf("Extract after Close: err = %v, want ErrClosed", err)
	}
}

func TestFontSourceCopyPanics(t *testing.T) {
	src := goRegular(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for copied FontSource")
		}
	}()
	// Copying on purpose; done via reflect so go vet's copylocks check passes.
	cpv := reflect.New(reflect.TypeOf(src).Elem())
	cpv.Elem().Set(reflect.ValueOf(src).Elem())
	cp := cpv.Interface().(*FontSource)
	_ = cp.Name()
}

func TestStyleFromSubfamily(t *testing.T) {
	tests := []struct {
		sub    string
		weight int
		italic bool
	}{
		{"Regular", 400, false},
		{"Bold", 700, false},
		{"Bold Italic", 700, true},
		{"ExtraBold", 800, false},
		{"Semi-Bold Oblique", 600, true},
		{"Light", 300, false},
		{"", 400, false},
	}
	for _, tt := range tests {
		t.Run(tt.sub, func(t *testing.T) {
			w, it := styleFromSubfamily(tt.sub)
			if w != tt.weight || it != tt.italic {
				t.Errorf("styleFromSubfamily(%q) = %d, %v; want %d, %v", tt.sub, w, it, tt.weight, tt.italic)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	m := goRegular(t).Parsed().Metrics(20, HintingNone)
	if m.Ascent <= 0 || m.Descent <= 0 {
		t.Fatalf("Ascent/Descent = %v/%v, want positive", m.Ascent, m.Descent)
	}
	if m.Height() < m.Ascent+m.Descent {
		t.Errorf("Height() = %v smaller than ascent+descent", m.Height())
	}
	if m.UnderlineThickness <= 0 {
		t.Errorf("UnderlineThickness = %v", m.UnderlineThickness)
	}
	if s := m.Scale(2); s.Ascent != 2*m.Ascent {
		t.Errorf("Scale(2).Ascent = %v", s.Ascent)
	}
}
