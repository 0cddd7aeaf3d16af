package text

import (
	"golang.org/x/text/unicode/bidi"
)

// BidiOptions controls paragraph level resolution.
type BidiOptions struct {
	// Base is the paragraph direction unless Auto is set.
	Base Direction
	// Auto takes the paragraph direction from the first strong character,
	// falling back to Base.
	Auto bool
	// Brackets enables bracket pair resolution (rule N0).
	Brackets bool
}

// BidiResolver computes embedding levels of a paragraph.
type BidiResolver interface {
	Levels(para []rune, opts BidiOptions) ([]uint8, Direction)
}

// XTextBidi resolves levels with golang.org/x/text/unicode/bidi.
type XTextBidi struct{}

// Levels implements BidiResolver.
func (XTextBidi) Levels(para []rune, opts BidiOptions) ([]uint8, Direction) {
	return Levels(para, opts)
}

const (
	lrm = '\u200e'
	rlm = '\u200f'
)

// Levels returns the embedding level of every rune of one paragraph and
// the resolved paragraph direction. Odd levels are right-to-left.
//
// Levels are approximated from the resolved runs: 1 for RTL runs, and 0
// or 2 for LTR runs depending on the paragraph direction. That is exact
// for text without explicit embeddings.
func Levels(para []rune, opts BidiOptions) ([]uint8, Direction) {
	levels := make([]uint8, len(para))
	if len(para) == 0 {
		return levels, opts.Base
	}

	// A leading mark forces the paragraph direction when Auto is off.
	src := make([]rune, 0, len(para)+1)
	shift := 0
	if !opts.Auto {
		shift = 1
		if opts.Base == DirectionRTL {
			src = append(src, rlm)
		} else {
			src = append(src, lrm)
		}
	}
	for _, r := range para {
		if !opts.Brackets {
			if p, _ := bidi.LookupRune(r); p.IsBracket() {
				r = '!'
			}
		}
		src = append(src, r)
	}

	dir := opts.Base
	if opts.Auto {
		dir = firstStrong(para, opts.Base)
	}
	defaultDir := bidi.LeftToRight
	if dir == DirectionRTL {
		defaultDir = bidi.RightToLeft
	}

	ok := resolveRuns(string(src), defaultDir, func(start, end int, rtl bool) {
		lvl := uint8(0)
		switch {
		case rtl:
			lvl = 1
		case dir == DirectionRTL:
			lvl = 2
		}
		for i := max(start-shift, 0); i <= end-shift && i < len(levels); i++ {
			levels[i] = lvl
		}
	})
	if !ok {
		base := uint8(0)
		if dir == DirectionRTL {
			base = 1
		}
		for i := range levels {
			levels[i] = base
		}
	}
	return levels, dir
}

// firstStrong returns the direction of the first strong character (rule
// P2), or def.
func firstStrong(para []rune, def Direction) Direction {
	for _, r := range para {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return DirectionLTR
		case bidi.R, bidi.AL:
			return DirectionRTL
		}
	}
	return def
}

// resolveRuns runs the x/text bidi algorithm and reports each run's
// inclusive rune range. It reports false if the algorithm fails.
func resolveRuns(s string, def bidi.Direction, fn func(start, end int, rtl bool)) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(def)); err != nil {
		return false
	}
	ordering, err := p.Order()
	if err != nil {
		return false
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		fn(start, end, run.Direction() == bidi.RightToLeft)
	}
	return true
}

// VisualOrder returns the logical indices of one line in visual order
// (rule L2): from the highest level down to the lowest odd level, every
// maximal sequence at or above that level is reversed.
func VisualOrder(levels []uint8) []int {
	order := make([]int, len(levels))
	for i := range order {
		order[i] = i
	}
	if len(levels) == 0 {
		return order
	}

	var hi, loOdd uint8 = 0, 255
	for _, l := range levels {
		hi = max(hi, l)
		if l%2 == 1 {
			loOdd = min(loOdd, l)
		}
	}
	if loOdd == 255 {
		return order
	}

	for lvl := hi; lvl >= loOdd && lvl > 0; lvl-- {
		for i := 0; i < len(order); {
			if levels[order[i]] < lvl {
				i++
				continue
			}
			j := i
			for j < len(order) && levels[order[j]] >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				order[a], order[b] = order[b], order[a]
			}
			i = j
		}
	}
	return order
}
