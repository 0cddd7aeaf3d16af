package ass

import (
	"log/slog"

	"github.com/gogpu/ass/fonts"
	"github.com/gogpu/ass/layout"
	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/text"
	"github.com/gogpu/ass/track"
)

// ShapingLevel selects the text shaper.
type ShapingLevel int

const (
	// ShapingSimple maps runes to glyphs one to one and applies kerning.
	ShapingSimple ShapingLevel = iota
	// ShapingComplex runs full OpenType shaping (ligatures, marks,
	// complex scripts).
	ShapingComplex
)

// String returns the shaping level name.
func (s ShapingLevel) String() string {
	switch s {
	case ShapingSimple:
		return "simple"
	case ShapingComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Renderer turns tracks into frames of subtitle images.
//
// A Renderer is not safe for concurrent use. Renderers sharing a Library
// may run on different goroutines.
type Renderer struct {
	lib    *Library
	logger *slog.Logger

	frameW, frameH     int
	storageW, storageH int
	// margins are top, bottom, left, right.
	margins      [4]int
	useMargins   bool
	pixelAspect  float64
	fontScale    float64
	hinting      text.Hinting
	shaping      ShapingLevel
	lineSpacing  float64
	linePosition float64

	defaultFont    string
	defaultFamily  string
	useSystemFonts bool

	overrideBits  style.Override
	overrideStyle track.Style

	glyphMax  int
	bitmapMax int64

	breaker text.LineBreaker

	// Derived state, rebuilt by reset.
	fontGen   uint64
	stale     bool
	system    *fonts.SystemProvider
	selector  *fonts.Selector
	engine    *layout.Engine
	shaper    *text.GoTextShaper
	extractor *text.OutlineExtractor
	caches    *cacheSet
	// guessed is set once the guessed frame size was reported.
	guessed bool

	prev frameSnapshot
}

// NewRenderer creates a renderer drawing with the fonts of lib.
func NewRenderer(lib *Library, opts ...RendererOption) *Renderer {
	if lib == nil {
		lib = NewLibrary()
	}
	r := &Renderer{
		lib:       lib,
		logger:    slog.New(libraryHandler{lib: lib}),
		fontScale: 1,
		stale:     true,
		extractor: text.NewOutlineExtractor(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Library returns the library the renderer was created with.
func (r *Renderer) Library() *Library { return r.lib }

// invalidate drops every cache and the font selection before the next
// render.
func (r *Renderer) invalidate() { r.stale = true }

// reset rebuilds the derived state.
func (r *Renderer) reset() {
	r.fontGen = r.lib.FontsGeneration()

	providers := []fonts.Provider{r.lib.memory}
	if r.useSystemFonts {
		if r.system == nil {
			r.system = fonts.NewSystemProvider(fonts.WithSystemLogger(r.logger.WithGroup("fonts")))
		}
		r.system.Reset()
		providers = append(providers, r.system)
	}
	opts := []fonts.SelectorOption{
		fonts.WithDefaultFamily(r.defaultFamily),
		fonts.WithLogger(r.logger.WithGroup("fonts")),
	}
	if r.defaultFont != "" {
		src, err := text.NewFontSourceFromFile(r.defaultFont)
		if err != nil {
			r.logger.Warn("default font failed to load", "path", r.defaultFont, "err", err)
		} else {
			opts = append(opts, fonts.WithDefaultFont(src))
		}
	}
	r.selector = fonts.NewSelector(providers, opts...)

	r.engine = layout.NewEngine(r.selector)
	r.engine.Logger = r.logger.WithGroup("layout")
	r.engine.Hinting = r.hinting
	r.engine.Breaker = r.breaker
	if r.shaping == ShapingComplex {
		if r.shaper == nil {
			r.shaper = text.NewGoTextShaper()
		}
		r.engine.Shaper = r.shaper
	}

	r.caches = newCacheSet(r.glyphMax, r.bitmapMax)
	r.prev = frameSnapshot{}
	r.guessed = false
	r.stale = false
	r.logger.Info("renderer caches reset")
}

// ensure brings the derived state up to date with the settings and the
// library fonts.
func (r *Renderer) ensure() {
	if r.stale || r.caches == nil || r.fontGen != r.lib.FontsGeneration() {
		r.reset()
	}
}

// SetFrameSize sets the output frame size in pixels. A zero size makes
// the renderer guess it on each render.
func (r *Renderer) SetFrameSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if r.frameW != w || r.frameH != h {
		r.frameW, r.frameH = w, h
		r.invalidate()
	}
}

// FrameSize returns the size set with SetFrameSize.
func (r *Renderer) FrameSize() (int, int) { return r.frameW, r.frameH }

// SetStorageSize sets the size of the source video before any scaling.
// It derives the pixel aspect when none is set.
func (r *Renderer) SetStorageSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if r.storageW != w || r.storageH != h {
		r.storageW, r.storageH = w, h
		r.invalidate()
	}
}

// SetShaper selects the shaping level.
func (r *Renderer) SetShaper(level ShapingLevel) {
	if level != ShapingSimple && level != ShapingComplex {
		level = ShapingComplex
	}
	if r.shaping != level {
		r.shaping = level
		r.invalidate()
	}
}

// SetMargins sets the frame area around the video. Unpositioned events
// may use it when SetUseMargins is on.
func (r *Renderer) SetMargins(top, bottom, left, right int) {
	m := [4]int{top, bottom, left, right}
	if r.margins != m {
		r.margins = m
		r.invalidate()
	}
}

// SetUseMargins lets unpositioned events extend into the margins.
func (r *Renderer) SetUseMargins(use bool) {
	if r.useMargins != use {
		r.useMargins = use
		r.invalidate()
	}
}

// SetPixelAspect sets the pixel aspect ratio. 0 derives it from the
// storage size, or 1 without one.
func (r *Renderer) SetPixelAspect(par float64) {
	if par < 0 {
		par = 0
	}
	if r.pixelAspect != par {
		r.pixelAspect = par
		r.invalidate()
	}
}

// SetFontScale scales every font size. Non-positive values mean 1.
func (r *Renderer) SetFontScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	if r.fontScale != scale {
		r.fontScale = scale
		r.invalidate()
	}
}

// SetHinting sets the glyph hinting.
func (r *Renderer) SetHinting(h text.Hinting) {
	if r.hinting != h {
		r.hinting = h
		r.invalidate()
	}
}

// SetLineSpacing adds space between lines, in frame pixels.
func (r *Renderer) SetLineSpacing(spacing float64) {
	if r.lineSpacing != spacing {
		r.lineSpacing = spacing
		r.invalidate()
	}
}

// SetLinePosition lifts bottom-aligned unpositioned events by pos
// percent of the video height. It is clamped to [0, 100].
func (r *Renderer) SetLinePosition(pos float64) {
	pos = min(max(pos, 0), 100)
	if r.linePosition != pos {
		r.linePosition = pos
		r.invalidate()
	}
}

// SetFonts configures font fallback: defaultFont is a font file used when
// no family matches, defaultFamily the family tried first, and useSystem
// enables lookup of installed fonts.
func (r *Renderer) SetFonts(defaultFont, defaultFamily string, useSystem bool) {
	r.defaultFont = defaultFont
	r.defaultFamily = defaultFamily
	r.useSystemFonts = useSystem
	r.invalidate()
}

// SetSelectiveStyleOverrideEnabled selects which parts of the override
// style replace the event styles.
func (r *Renderer) SetSelectiveStyleOverrideEnabled(bits style.Override) {
	if r.overrideBits != bits {
		r.overrideBits = bits
		r.invalidate()
	}
}

// SetSelectiveStyleOverride sets the style used by selective overrides.
// Its sizes are in a 288 pixel high script.
func (r *Renderer) SetSelectiveStyleOverride(s track.Style) {
	r.overrideStyle = s
	r.invalidate()
}

// SetCacheLimits bounds the glyph outline count and the glyph bitmap
// memory. Zero selects the defaults.
func (r *Renderer) SetCacheLimits(glyphMax int, bitmapMaxBytes int64) {
	if r.glyphMax != glyphMax || r.bitmapMax != bitmapMaxBytes {
		r.glyphMax, r.bitmapMax = glyphMax, bitmapMaxBytes
		r.invalidate()
	}
}

// SetLineBreaker replaces the line breaker chosen from the track
// features; nil restores the automatic choice. Wrap style 2 still only
// breaks at \N.
func (r *Renderer) SetLineBreaker(b text.LineBreaker) {
	r.breaker = b
	r.invalidate()
}

// CacheStats reports the renderer cache activity since the last reset.
func (r *Renderer) CacheStats() CacheStats {
	if r.caches == nil {
		return CacheStats{}
	}
	return CacheStats{
		Outlines:   r.caches.outlines.Stats(),
		Bitmaps:    r.caches.bitmaps.Stats(),
		Composites: r.caches.composites.Stats(),
	}
}

// frameFor builds the layout frame for t, guessing the frame size when
// none was set.
func (r *Renderer) frameFor(t *track.Track) layout.Frame {
	w, h := r.frameW, r.frameH
	if w <= 0 || h <= 0 {
		switch {
		case r.storageW > 0 && r.storageH > 0:
			w, h = r.storageW, r.storageH
		case t.PlayResX > 0 && t.PlayResY > 0:
			w, h = t.PlayResX, t.PlayResY
		default:
			w, h = 384, 288
		}
		if !r.guessed {
			r.logger.Warn("frame size not set, guessing", "width", w, "height", h)
			r.guessed = true
		}
	}
	fr := layout.Frame{
		Width:        w,
		Height:       h,
		MarginTop:    r.margins[0],
		MarginBottom: r.margins[1],
		MarginLeft:   r.margins[2],
		MarginRight:  r.margins[3],
		UseMargins:   r.useMargins,
		PlayResX:     t.PlayResX,
		PlayResY:     t.PlayResY,
		LineSpacing:  r.lineSpacing,
		LinePosition: r.linePosition,
		ScaledBorder: t.ScaledBorderAndShadow,
	}
	fr.PixelAspect = r.aspectFor(t, &fr)
	return fr
}

// aspectFor returns the pixel aspect: the explicit one, else the ratio
// of the video area aspect to the storage (or layout resolution) aspect.
func (r *Renderer) aspectFor(t *track.Track, fr *layout.Frame) float64 {
	if r.pixelAspect > 0 {
		return r.pixelAspect
	}
	sw, sh := r.storageW, r.storageH
	if t.LayoutResX > 0 && t.LayoutResY > 0 {
		sw, sh = t.LayoutResX, t.LayoutResY
	}
	vw := fr.Width - fr.MarginLeft - fr.MarginRight
	vh := fr.Height - fr.MarginTop - fr.MarginBottom
	if sw <= 0 || sh <= 0 || vw <= 0 || vh <= 0 {
		return 1
	}
	return (float64(vw) / float64(vh)) / (float64(sw) / float64(sh))
}
