package layout

import (
	"math"

	"github.com/gogpu/ass/text"
)

// Wrap styles.
const (
	// WrapSmart balances lines with the upper line wider.
	WrapSmart = 0
	// WrapEndOfLine fills each line before breaking.
	WrapEndOfLine = 1
	// WrapNone only breaks at \N.
	WrapNone = 2
	// WrapSmartLower balances lines with the lower line wider.
	WrapSmartLower = 3
)

// lineRange is a rune range [start, end) of a paragraph.
type lineRange struct {
	start, end int
}

// measure answers width queries over one paragraph. Whitespace at the
// ends of a line does not count.
type measure struct {
	runes  []rune
	prefix []float64
}

func newMeasure(runes []rune, adv []float64) *measure {
	prefix := make([]float64, len(adv)+1)
	for i, a := range adv {
		prefix[i+1] = prefix[i] + a
	}
	return &measure{runes: runes, prefix: prefix}
}

// trim returns [a, b) without leading and trailing whitespace.
func (m *measure) trim(a, b int) (int, int) {
	for a < b && text.IsSpace(m.runes[a]) {
		a++
	}
	for b > a && text.IsSpace(m.runes[b-1]) {
		b--
	}
	return a, b
}

func (m *measure) width(a, b int) float64 {
	a, b = m.trim(a, b)
	return m.prefix[b] - m.prefix[a]
}

// wrapLines splits a paragraph into lines no wider than maxWidth where
// the break opportunities allow. A word wider than maxWidth overflows.
func wrapLines(runes []rune, adv []float64, allowed []bool, maxWidth float64, wrapStyle int) []lineRange {
	n := len(runes)
	if n == 0 || wrapStyle == WrapNone || maxWidth <= 0 {
		return []lineRange{{0, n}}
	}
	m := newMeasure(runes, adv)

	// Greedy fill.
	var lines []lineRange
	start, last := 0, -1
	for i := 1; i <= n; i++ {
		if allowed[i-1] && i-1 > start {
			last = i - 1
		}
		if m.width(start, i) > maxWidth && last > start {
			lines = append(lines, lineRange{start, last})
			start, last = last, -1
		}
	}
	lines = append(lines, lineRange{start, n})

	if wrapStyle == WrapSmart || wrapStyle == WrapSmartLower {
		balance(lines, m, allowed, maxWidth, wrapStyle == WrapSmartLower)
	}
	return lines
}

// balance moves breaks between neighbouring lines so that their widths
// get as close as possible. lowerWider picks the side that ends up
// wider when the widths cannot match.
func balance(lines []lineRange, m *measure, allowed []bool, maxWidth float64, lowerWider bool) {
	for pass := 0; pass < len(lines); pass++ {
		changed := false
		for i := 0; i+1 < len(lines); i++ {
			a, b := lines[i].start, lines[i+1].end
			cur := lines[i].end
			best, bestScore := cur, score(m.width(a, cur), m.width(cur, b), lowerWider)
			for c := a + 1; c < b; c++ {
				if !allowed[c] || c == cur {
					continue
				}
				w1, w2 := m.width(a, c), m.width(c, b)
				if w1 > maxWidth || w2 > maxWidth || w1 == 0 || w2 == 0 {
					continue
				}
				if s := score(w1, w2, lowerWider); s < bestScore {
					best, bestScore = c, s
				}
			}
			if best != cur {
				lines[i].end, lines[i+1].start = best, best
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// score ranks a split: the width difference, with splits that make the
// wrong line wider ranked after every split that does not.
func score(w1, w2 float64, lowerWider bool) float64 {
	d := w1 - w2
	if lowerWider {
		d = -d
	}
	if d < 0 {
		return 1e9 - d
	}
	return d
}

// maxTextWidth is the wrapping width: the video width between the event
// margins.
func maxTextWidth(fr *Frame, marginL, marginR int) float64 {
	_, _, w, _ := fr.video()
	return math.Max(w-float64(marginL+marginR)*fr.ScaleX(), 0)
}
