package text

import (
	"github.com/go-text/typesetting/language"
)

// Run is one span of text to shape with a single font.
type Run struct {
	// Text is the whole paragraph. Only Text[Start:End] is shaped; the
	// rest is context.
	Text       []rune
	Start, End int

	Source *FontSource
	// Size is the font size in pixels per em.
	Size      float64
	Direction Direction
	// Language is a BCP 47 tag such as "en" or "ar". Empty means unset.
	Language string
	Kerning  bool
	Hinting  Hinting
}

// Glyph is one shaped glyph. Advances and offsets are in pixels with y
// growing down.
type Glyph struct {
	GID GlyphID
	// Cluster is the index in Run.Text of the first rune the glyph was
	// shaped from.
	Cluster  int
	XAdvance float64
	YAdvance float64
	XOffset  float64
	YOffset  float64
}

// Shaper converts a run into positioned glyphs in visual order.
type Shaper interface {
	Shape(run Run) []Glyph
}

// SimpleShaper maps runes to glyphs one to one through the font cmap and
// applies kern table kerning. It is safe for concurrent use.
type SimpleShaper struct{}

// NewSimpleShaper creates a SimpleShaper.
func NewSimpleShaper() *SimpleShaper { return &SimpleShaper{} }

// Shape implements Shaper.
func (s *SimpleShaper) Shape(run Run) []Glyph {
	if run.Source == nil || run.End <= run.Start {
		return nil
	}
	parsed := run.Source.Parsed()
	if parsed == nil {
		return nil
	}

	glyphs := make([]Glyph, 0, run.End-run.Start)
	for i := run.Start; i < run.End; i++ {
		gid := parsed.GlyphIndex(run.Text[i])
		glyphs = append(glyphs, Glyph{
			GID:      gid,
			Cluster:  i,
			XAdvance: parsed.GlyphAdvance(gid, run.Size, run.Hinting),
		})
	}
	if run.Direction == DirectionRTL {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	if run.Kerning {
		for i := 0; i+1 < len(glyphs); i++ {
			glyphs[i].XAdvance += parsed.Kern(glyphs[i].GID, glyphs[i+1].GID, run.Size, run.Hinting)
		}
	}
	return glyphs
}

// RunScript returns the script of the first rune of text[start:end] that
// has a strong script, or Latin.
func RunScript(text []rune, start, end int) language.Script {
	for _, r := range text[start:end] {
		if s := language.LookupScript(r); s.Strong() {
			return s
		}
	}
	return language.Latin
}
