package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/ass/cache"
)

var kernTag = ot.MustNewTag("kern")

// GoTextShaper provides HarfBuzz-level text shaping using go-text/typesetting.
// It supports ligatures, mark positioning, GPOS kerning, right-to-left
// scripts and complex scripts such as Devanagari.
//
// GoTextShaper is safe for concurrent use. It caches parsed font.Font objects
// (which are thread-safe) and creates lightweight font.Face instances per
// Shape() call (font.Face is NOT safe for concurrent use). The HarfbuzzShaper
// instances are pooled via sync.Pool since they also are not concurrent-safe.
type GoTextShaper struct {
	shaperPool sync.Pool

	// fonts maps FontSource IDs to parsed go-text fonts.
	fonts *cache.ShardedCache[uint64, *font.Font]
}

// NewGoTextShaper creates a new GoTextShaper backed by go-text/typesetting's
// HarfBuzz implementation.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		fonts: cache.NewSharded[uint64, *font.Font](cache.DefaultShardCapacity, cache.Uint64Hasher),
	}
}

// Shape implements the Shaper interface.
// Fonts go-text cannot parse fall back to SimpleShaper.
func (s *GoTextShaper) Shape(run Run) []Glyph {
	if run.Source == nil || run.End <= run.Start {
		return nil
	}

	goTextFont, err := s.font(run.Source)
	if err != nil {
		return (&SimpleShaper{}).Shape(run)
	}

	dir := di.DirectionLTR
	if run.Direction == DirectionRTL {
		dir = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      run.Text,
		RunStart:  run.Start,
		RunEnd:    run.End,
		Direction: dir,
		Face:      font.NewFace(goTextFont),
		Size:      floatToFixed(run.Size),
		Script:    RunScript(run.Text, run.Start, run.End),
	}
	if run.Language != "" {
		input.Language = language.NewLanguage(run.Language)
	}
	if !run.Kerning {
		input.FontFeatures = []shaping.FontFeature{{Tag: kernTag, Value: 0}}
	}

	hbShaper := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hbShaper.Shape(input)
	s.shaperPool.Put(hbShaper)

	return convertGlyphs(output.Glyphs)
}

// font returns the cached go-text font for source, parsing it on first use.
func (s *GoTextShaper) font(source *FontSource) (*font.Font, error) {
	return s.fonts.GetOrCreate(source.ID(), func() (*font.Font, error) {
		r := bytes.NewReader(source.Data())
		if source.Index() == 0 {
			face, err := font.ParseTTF(r)
			if err != nil {
				return nil, err
			}
			return face.Font, nil
		}
		faces, err := font.ParseTTC(r)
		if err != nil {
			return nil, err
		}
		if source.Index() >= len(faces) {
			return nil, ErrFaceIndex
		}
		return faces[source.Index()].Font, nil
	})
}

// RemoveSource drops the cached parsed font of a closed source.
func (s *GoTextShaper) RemoveSource(source *FontSource) {
	s.fonts.Delete(source.ID())
}

// convertGlyphs converts go-text/typesetting output glyphs. Shaping output
// has y growing up; Glyph has y growing down.
func convertGlyphs(glyphs []shaping.Glyph) []Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]Glyph, len(glyphs))
	for i, g := range glyphs {
		result[i] = Glyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph indices fit in 16 bits
			Cluster:  g.TextIndex(),
			XAdvance: fixedToFloat(g.XAdvance),
			YAdvance: -fixedToFloat(g.YAdvance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  -fixedToFloat(g.YOffset),
		}
	}
	return result
}
