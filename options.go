package ass

import (
	"log/slog"

	"github.com/gogpu/ass/text"
)

// LibraryOption configures a Library during creation.
//
// Example:
//
//	lib := ass.NewLibrary(ass.WithLogger(slog.Default()))
type LibraryOption func(*Library)

// WithLogger sets the logger used by the library and its renderers.
func WithLogger(l *slog.Logger) LibraryOption {
	return func(lib *Library) {
		if l != nil {
			lib.logger.Store(l)
		}
	}
}

// WithExtractFonts sets the extract-fonts flag, see SetExtractFonts.
func WithExtractFonts(extract bool) LibraryOption {
	return func(lib *Library) {
		lib.extractFonts = extract
	}
}

// WithStyleOverrides sets the style overrides, see SetStyleOverrides.
func WithStyleOverrides(overrides ...string) LibraryOption {
	return func(lib *Library) {
		lib.styleOverrides = append([]string(nil), overrides...)
	}
}

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	r := ass.NewRenderer(lib,
//	    ass.WithFrameSize(1920, 1080),
//	    ass.WithShaper(ass.ShapingComplex),
//	)
type RendererOption func(*Renderer)

// WithFrameSize sets the output frame size, see SetFrameSize.
func WithFrameSize(w, h int) RendererOption {
	return func(r *Renderer) {
		r.SetFrameSize(w, h)
	}
}

// WithShaper selects the shaping level, see SetShaper.
func WithShaper(level ShapingLevel) RendererOption {
	return func(r *Renderer) {
		r.SetShaper(level)
	}
}

// WithHinting sets the glyph hinting, see SetHinting.
func WithHinting(h text.Hinting) RendererOption {
	return func(r *Renderer) {
		r.SetHinting(h)
	}
}

// WithCacheLimits sets the cache limits, see SetCacheLimits.
func WithCacheLimits(glyphMax int, bitmapMaxBytes int64) RendererOption {
	return func(r *Renderer) {
		r.SetCacheLimits(glyphMax, bitmapMaxBytes)
	}
}

// WithLineBreaker sets the line breaker, see SetLineBreaker.
func WithLineBreaker(b text.LineBreaker) RendererOption {
	return func(r *Renderer) {
		r.SetLineBreaker(b)
	}
}
