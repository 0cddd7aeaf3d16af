package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/sfnt.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte, index int) (ParsedFont, error) {
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	if index < 0 || index >= c.NumFonts() {
		return nil, fmt.Errorf("%w: %d of %d", ErrFaceIndex, index, c.NumFonts())
	}
	f, err := c.Font(index)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse face %d: %w", index, err)
	}
	return &ximageParsedFont{font: f}, nil
}

// NumFaces implements FontParser.NumFaces.
func (p *ximageParser) NumFaces(data []byte) (int, error) {
	c, err := sfnt.ParseCollection(data)
	if err != nil {
		return 0, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return c.NumFonts(), nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font. sfnt.Font is
// safe for concurrent use; every call takes its own Buffer.
type ximageParsedFont struct {
	font *sfnt.Font
}

func (f *ximageParsedFont) name(id sfnt.NameID) string {
	s, err := f.font.Name(nil, id)
	if err != nil {
		return ""
	}
	return s
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	if s := f.name(sfnt.NameIDTypographicFamily); s != "" {
		return s
	}
	return f.name(sfnt.NameIDFamily)
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string { return f.name(sfnt.NameIDFull) }

// Subfamily implements ParsedFont.Subfamily.
func (f *ximageParsedFont) Subfamily() string {
	if s := f.name(sfnt.NameIDTypographicSubfamily); s != "" {
		return s
	}
	return f.name(sfnt.NameIDSubfamily)
}

// PostScriptName implements ParsedFont.PostScriptName.
func (f *ximageParsedFont) PostScriptName() string { return f.name(sfnt.NameIDPostScript) }

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) GlyphID {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID, ppem float64, h Hinting) float64 {
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), floatToFixed(ppem), advanceHinting(h))
	if err != nil {
		return 0
	}
	return fixedToFloat(advance)
}

// Kern implements ParsedFont.Kern.
func (f *ximageParsedFont) Kern(a, b GlyphID, ppem float64, h Hinting) float64 {
	var buf sfnt.Buffer
	k, err := f.font.Kern(&buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), floatToFixed(ppem), advanceHinting(h))
	if err != nil {
		return 0
	}
	return fixedToFloat(k)
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64, h Hinting) FontMetrics {
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, floatToFixed(ppem), metricsHinting(h))
	if err != nil {
		return FontMetrics{}
	}
	out := FontMetrics{
		Ascent:    fixedToFloat(m.Ascent),
		Descent:   fixedToFloat(m.Descent),
		LineGap:   fixedToFloat(m.Height) - fixedToFloat(m.Ascent) - fixedToFloat(m.Descent),
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
	if out.LineGap < 0 {
		out.LineGap = 0
	}

	scale := ppem / float64(f.font.UnitsPerEm())
	if post := f.font.PostTable(); post != nil && post.UnderlineThickness > 0 {
		out.UnderlinePosition = -float64(post.UnderlinePosition) * scale
		out.UnderlineThickness = float64(post.UnderlineThickness) * scale
	} else {
		out.UnderlinePosition = ppem / 10
		out.UnderlineThickness = ppem / 20
	}
	return out
}

// ItalicAngle implements ParsedFont.ItalicAngle.
func (f *ximageParsedFont) ItalicAngle() float64 {
	if post := f.font.PostTable(); post != nil {
		return post.ItalicAngle
	}
	return 0
}

func advanceHinting(h Hinting) font.Hinting {
	if h >= HintingNormal {
		return font.HintingFull
	}
	return font.HintingNone
}

func metricsHinting(h Hinting) font.Hinting {
	switch h {
	case HintingNone:
		return font.HintingNone
	case HintingLight:
		return font.HintingVertical
	default:
		return font.HintingFull
	}
}

// floatToFixed converts a float64 size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
