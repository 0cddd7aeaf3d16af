package layout

import (
	"log/slog"

	"github.com/gogpu/ass/fonts"
	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/text"
)

// Glyph is one placed glyph, drawing or decoration.
type Glyph struct {
	Rune rune
	// Run indexes Event.Runs.
	Run  int
	Line int

	Face fonts.Face
	GID  text.GlyphID
	// Size is the font size in pixels per em the outline is loaded at.
	Size float64
	// Drawing is the outline of a \p drawing or an underline, in pen
	// space. It is nil for font glyphs.
	Drawing *text.Outline

	// Local maps glyph outline coordinates to pen space: font scale and
	// synthetic slant.
	Local text.Matrix
	// Matrix maps pen space to frame pixels: pen position, rotation,
	// shear and perspective.
	Matrix text.Matrix

	// X, Y is the pen position in frame pixels before rotation.
	X, Y    float64
	Advance float64
	// Ascent and Descent bound the glyph cell in pen space.
	Ascent, Descent float64

	// Skip marks glyphs that occupy space but draw nothing.
	Skip bool
}

// Transform returns the full glyph outline to frame transform.
func (g *Glyph) Transform() text.Matrix {
	return g.Matrix.Mul(g.Local)
}

// Line is one laid out line of an event.
type Line struct {
	// Glyphs indexes Event.Glyphs as [Start, End).
	Start, End int
	// X is the left edge and Y the baseline, in frame pixels.
	X, Y    float64
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns the total height of the line (ascent + descent).
func (l *Line) Height() float64 {
	return l.Ascent + l.Descent
}

// Event is a laid out subtitle event.
type Event struct {
	Resolved *style.Resolved
	Glyphs   []Glyph
	Lines    []Line
	// Box is the untransformed text block in frame pixels.
	Box text.Rect
	// Positioned is set for events placed with \pos or \move.
	Positioned bool
	// OrgX, OrgY is the rotation origin in frame pixels.
	OrgX, OrgY float64
	// BorderScale converts script border, shadow and blur values to frame
	// pixels.
	BorderScale float64
	// Aspect is the horizontal stretch applied to glyphs.
	Aspect float64
}

// Empty reports whether the event has nothing to draw.
func (e *Event) Empty() bool {
	if e == nil {
		return true
	}
	for i := range e.Glyphs {
		if !e.Glyphs[i].Skip {
			return false
		}
	}
	return true
}

// Options carries the per-track layout switches.
type Options struct {
	Frame    Frame
	Kerning  bool
	Language string
	// WholeText resolves bidi and shapes across override tags.
	WholeText bool
	// Brackets enables bidi bracket pairing.
	Brackets bool
	// WrapUnicode breaks lines by the Unicode algorithm.
	WrapUnicode bool
}

// Engine lays out resolved events. An Engine must not be used by more
// than one goroutine at a time.
type Engine struct {
	Fonts   *fonts.Selector
	Shaper  text.Shaper
	Bidi    text.BidiResolver
	Hinting text.Hinting
	// Breaker overrides the line breaker chosen from the options.
	Breaker text.LineBreaker
	Logger  *slog.Logger
}

// NewEngine creates an Engine with the simple shaper and x/text bidi.
func NewEngine(sel *fonts.Selector) *Engine {
	return &Engine{
		Fonts:  sel,
		Shaper: text.NewSimpleShaper(),
		Bidi:   text.XTextBidi{},
		Logger: slog.New(slog.DiscardHandler),
	}
}

func (e *Engine) log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Engine) breaker(wrapStyle int, opts *Options) text.LineBreaker {
	switch {
	case wrapStyle == 2:
		return text.HardBreaker{}
	case e.Breaker != nil:
		return e.Breaker
	case opts.WrapUnicode:
		return text.UnicodeBreaker{}
	}
	return text.SpaceBreaker{}
}
