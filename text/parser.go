package text

import "sync"

// FontParser is an interface for font parsing backends.
//
// The default implementation uses golang.org/x/image/font/sfnt.
type FontParser interface {
	// Parse parses the face at index of font data (TTF, OTF or a
	// TTC/OTC collection) and returns a ParsedFont.
	Parse(data []byte, index int) (ParsedFont, error)

	// NumFaces returns the number of faces in font data.
	NumFaces(data []byte) (int, error)
}

// ParsedFont represents one parsed font face.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// Subfamily returns the style name ("Bold Italic"), or "".
	Subfamily() string

	// PostScriptName returns the PostScript name, or "".
	PostScriptName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune, 0 if the font has
	// no glyph for it.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the advance width of a glyph at ppem pixels
	// per em.
	GlyphAdvance(gid GlyphID, ppem float64, h Hinting) float64

	// Kern returns the kerning adjustment between two glyphs, 0 when the
	// font has none.
	Kern(a, b GlyphID, ppem float64, h Hinting) float64

	// Metrics returns the font metrics at ppem pixels per em.
	Metrics(ppem float64, h Hinting) FontMetrics

	// ItalicAngle returns the post table italic angle in degrees.
	ItalicAngle() float64
}

// FontMetrics holds font-level metrics at a specific size. All distances
// are positive.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font.
	Descent float64

	// LineGap is the recommended line gap between lines.
	LineGap float64

	XHeight   float64
	CapHeight float64

	// UnderlinePosition is the distance of the underline's centre below
	// the baseline.
	UnderlinePosition  float64
	UnderlineThickness float64
}

// Height returns the total line height (ascent + descent + line gap).
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Scale returns m with every distance multiplied by s.
func (m FontMetrics) Scale(s float64) FontMetrics {
	return FontMetrics{
		Ascent:             m.Ascent * s,
		Descent:            m.Descent * s,
		LineGap:            m.LineGap * s,
		XHeight:            m.XHeight * s,
		CapHeight:          m.CapHeight * s,
		UnderlinePosition:  m.UnderlinePosition * s,
		UnderlineThickness: m.UnderlineThickness * s,
	}
}

// parserRegistry holds registered font parsers.
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]FontParser{
		defaultParserName: &ximageParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser under name.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
