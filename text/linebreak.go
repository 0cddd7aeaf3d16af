package text

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
	"github.com/npillmayer/uax"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
)

// LineBreaker finds soft line break opportunities in a paragraph.
//
// Breaks returns a slice of len(para)+1 where allowed[i] reports whether a
// line may start at rune i. allowed[0] and allowed[len(para)] are always
// false.
type LineBreaker interface {
	Breaks(para []rune) []bool
}

// SpaceBreaker allows breaks only after spaces and zero width spaces.
// This is the classic subtitle wrapping behaviour.
type SpaceBreaker struct{}

// Breaks implements LineBreaker.
func (SpaceBreaker) Breaks(para []rune) []bool {
	allowed := make([]bool, len(para)+1)
	for i := 1; i < len(para); i++ {
		if isBreakSpace(para[i-1]) && !isBreakSpace(para[i]) {
			allowed[i] = true
		}
	}
	return allowed
}

func isBreakSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u200b'
}

// HardBreaker allows no soft breaks; lines end only at \N.
type HardBreaker struct{}

// Breaks implements LineBreaker.
func (HardBreaker) Breaks(para []rune) []bool {
	return make([]bool, len(para)+1)
}

// UnicodeBreaker finds UAX #14 break opportunities with the go-text
// segmenter.
type UnicodeBreaker struct{}

// Breaks implements LineBreaker.
func (UnicodeBreaker) Breaks(para []rune) []bool {
	allowed := make([]bool, len(para)+1)
	if len(para) == 0 {
		return allowed
	}
	var seg segmenter.Segmenter
	seg.Init(para)
	it := seg.LineIterator()
	for it.Next() {
		if off := it.Line().Offset; off > 0 && off < len(para) {
			allowed[off] = true
		}
	}
	return allowed
}

// UAX14Breaker finds UAX #14 break opportunities with the npillmayer/uax
// line wrapper. It exposes the same classes as UnicodeBreaker through an
// independent implementation and is selectable by configuration.
type UAX14Breaker struct{}

// NewUAX14Breaker creates a UAX14Breaker.
func NewUAX14Breaker() UAX14Breaker { return UAX14Breaker{} }

// Breaks implements LineBreaker.
func (UAX14Breaker) Breaks(para []rune) []bool {
	allowed := make([]bool, len(para)+1)
	if len(para) == 0 {
		return allowed
	}
	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.Init(strings.NewReader(string(para)))
	pos := 0
	for seg.Next() {
		pos += len([]rune(seg.Text()))
		if p1, _ := seg.Penalties(); p1 < uax.InfinitePenalty && pos > 0 && pos < len(para) {
			allowed[pos] = true
		}
	}
	return allowed
}

// BreakerByName returns the LineBreaker for a configuration name:
// "space" (the default), "unicode", "uax14" or "none".
func BreakerByName(name string) LineBreaker {
	switch strings.ToLower(name) {
	case "none":
		return HardBreaker{}
	case "unicode":
		return UnicodeBreaker{}
	case "uax14":
		return UAX14Breaker{}
	default:
		return SpaceBreaker{}
	}
}

// IsSpace reports whether r is trimmed at soft line ends.
func IsSpace(r rune) bool {
	return isBreakSpace(r) || r == '\u3000'
}

// IsNewline reports whether r ends a paragraph.
func IsNewline(r rune) bool {
	return r == '\n' || unicode.Is(unicode.Zl, r) || unicode.Is(unicode.Zp, r)
}
