// Package text holds the font and text primitives the subtitle layout is
// built on.
//
// A FontSource wraps one parsed face of a font file. Glyph outlines are
// extracted from it with an OutlineExtractor, and runs of text are shaped
// into positioned glyphs with a Shaper. Two shapers are provided:
//
//   - SimpleShaper maps runes through the cmap and applies kern-table
//     kerning. It never substitutes glyphs.
//   - GoTextShaper runs the HarfBuzz port from go-text/typesetting and
//     supports ligatures, marks and complex scripts.
//
// Levels computes Unicode bidi embedding levels for a paragraph and
// VisualOrder reorders one line of it. Line break opportunities come from
// a LineBreaker:
//
//	lb := text.NewUAX14Breaker()
//	allowed := lb.Breaks([]rune("Hello world"))
package text
