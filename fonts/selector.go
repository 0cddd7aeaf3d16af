package fonts

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ass/cache"
	"github.com/gogpu/ass/text"
)

// Request describes the face wanted for a run of text.
type Request struct {
	Family string
	// Weight is 400 for regular and 700 for bold.
	Weight int
	Italic bool
}

func (r Request) key() string {
	return fmt.Sprintf("%s|%d|%t", NormalizeFamily(r.Family), r.Weight, r.Italic)
}

// Face is a selected font face with the synthetic styling needed to
// match the request.
type Face struct {
	Source *text.FontSource
	// Embolden asks for synthetic bold: the face is lighter than wanted.
	Embolden bool
	// Oblique asks for a synthetic slant: the face is upright.
	Oblique bool
}

// Selector resolves requests through a chain of providers: the providers
// in order, then the default family, then the default font file, then the
// built-in Go Regular face. Selector is safe for concurrent use.
type Selector struct {
	providers     []Provider
	defaultFamily string
	defaultFont   *text.FontSource
	logger        *slog.Logger

	faces *cache.ShardedCache[string, Face]
	runes *cache.ShardedCache[string, Face]
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithDefaultFamily sets the family tried when the requested one is
// missing.
func WithDefaultFamily(family string) SelectorOption {
	return func(s *Selector) { s.defaultFamily = family }
}

// WithDefaultFont sets the face used when no family matches.
func WithDefaultFont(src *text.FontSource) SelectorOption {
	return func(s *Selector) { s.defaultFont = src }
}

// WithLogger sets the logger for fallback diagnostics.
func WithLogger(l *slog.Logger) SelectorOption {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSelector creates a Selector over providers.
func NewSelector(providers []Provider, opts ...SelectorOption) *Selector {
	s := &Selector{
		providers: providers,
		logger:    slog.New(slog.DiscardHandler),
		faces:     cache.NewSharded[string, Face](cache.DefaultShardCapacity, cache.StringHasher),
		runes:     cache.NewSharded[string, Face](cache.DefaultShardCapacity*4, cache.StringHasher),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the best face for req. It never fails: the built-in face
// ends the chain.
func (s *Selector) Select(req Request) Face {
	f, _ := s.faces.GetOrCreate(req.key(), func() (Face, error) {
		return s.resolve(req), nil
	})
	return f
}

func (s *Selector) resolve(req Request) Face {
	if faces := s.family(req.Family); len(faces) > 0 {
		return best(faces, req)
	}
	if s.defaultFamily != "" {
		if faces := s.family(s.defaultFamily); len(faces) > 0 {
			s.logger.Info("font family not found, using default family",
				"family", req.Family, "default", s.defaultFamily)
			return best(faces, req)
		}
	}
	if s.defaultFont != nil {
		s.logger.Info("font family not found, using default font",
			"family", req.Family, "font", s.defaultFont.Name())
		return best([]*text.FontSource{s.defaultFont}, req)
	}
	s.logger.Warn("font family not found, using built-in font", "family", req.Family)
	return best([]*text.FontSource{Builtin()}, req)
}

func (s *Selector) family(name string) []*text.FontSource {
	if NormalizeFamily(name) == "" {
		return nil
	}
	for _, p := range s.providers {
		if faces, err := p.Faces(name); err == nil && len(faces) > 0 {
			return faces
		}
	}
	return nil
}

// ForRune returns a face for req that has a glyph for r. When the
// selected face lacks it, the chain is searched for one that has it. If
// none does, the selected face is returned and glyph 0 is drawn.
func (s *Selector) ForRune(req Request, r rune) Face {
	primary := s.Select(req)
	if primary.Source.HasGlyph(r) {
		return primary
	}
	key := fmt.Sprintf("%s|%d", req.key(), r)
	f, _ := s.runes.GetOrCreate(key, func() (Face, error) {
		for _, faces := range s.chain(req) {
			var covering []*text.FontSource
			for _, f := range faces {
				if f.HasGlyph(r) {
					covering = append(covering, f)
				}
			}
			if len(covering) > 0 {
				return best(covering, req), nil
			}
		}
		s.logger.Debug("no font has glyph", "family", req.Family, "rune", fmt.Sprintf("%U", r))
		return primary, nil
	})
	return f
}

// chain lists every candidate face group in fallback order.
func (s *Selector) chain(req Request) [][]*text.FontSource {
	var out [][]*text.FontSource
	if faces := s.family(req.Family); len(faces) > 0 {
		out = append(out, faces)
	}
	if s.defaultFamily != "" {
		if faces := s.family(s.defaultFamily); len(faces) > 0 {
			out = append(out, faces)
		}
	}
	for _, p := range s.providers {
		if m, ok := p.(*MemoryProvider); ok {
			out = append(out, m.Sources())
		}
	}
	if s.defaultFont != nil {
		out = append(out, []*text.FontSource{s.defaultFont})
	}
	return append(out, []*text.FontSource{Builtin()})
}

// Reset drops cached selections, for example after fonts were added.
func (s *Selector) Reset() {
	s.faces.Clear()
	s.runes.Clear()
}

// best picks the face closest to req: a slant mismatch weighs more than
// any weight difference.
func best(faces []*text.FontSource, req Request) Face {
	want := req.Weight
	if want == 0 {
		want = 400
	}
	var pick *text.FontSource
	bestScore := 0
	for _, f := range faces {
		score := abs(f.Weight() - want)
		if f.Italic() != req.Italic {
			score += 1000
		}
		if pick == nil || score < bestScore {
			pick, bestScore = f, score
		}
	}
	return Face{
		Source:   pick,
		Embolden: want-pick.Weight() >= 150,
		Oblique:  req.Italic && !pick.Italic(),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var (
	builtinOnce sync.Once
	builtin     *text.FontSource
)

// Builtin returns the embedded Go Regular face, the end of every chain.
func Builtin() *text.FontSource {
	builtinOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF, text.WithSharedData())
		if err != nil {
			panic("fonts: built-in font: " + err.Error())
		}
		builtin = src
	})
	return builtin
}
