package layout

import (
	"math"
	"unicode"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/ass/fonts"
	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/tags"
	"github.com/gogpu/ass/text"
)

// objectRune stands in for a drawing in the paragraph text.
const objectRune = '\ufffc'

// obliqueShear is the synthetic italic slant.
const obliqueShear = 0.2

// paragraph is the text between two hard line breaks.
type paragraph struct {
	runes []rune
	runs  []int
	// run is the run in effect where the paragraph starts, used to size
	// empty lines.
	run int

	levels []uint8
	dir    text.Direction
	// adv is the pen advance attributed to every rune.
	adv  []float64
	segs []segment
}

// segment is a stretch of a paragraph shaped in one go.
type segment struct {
	start, end int
	run        int
	group      int
	level      uint8

	face    fonts.Face
	ppem    float64
	scale   runScale
	metrics text.FontMetrics
	drawing *text.Outline

	glyphs []shapedGlyph
}

type shapedGlyph struct {
	gid     text.GlyphID
	cluster int
	adv     float64
	dx, dy  float64
}

// runScale holds the size of one run in frame pixels.
type runScale struct {
	size    float64
	hs, vs  float64
	spacing float64
}

func (e *Engine) scaleOf(st *style.State, res *style.Resolved, fr *Frame) runScale {
	sy := fr.ScaleY()
	fs := res.FontScale
	if fs <= 0 {
		fs = 1
	}
	size := st.FontSize * fs * sy
	hs := st.ScaleX * fr.Aspect()
	return runScale{
		size:    size,
		hs:      hs,
		vs:      st.ScaleY,
		spacing: st.Spacing * fs * sy * hs,
	}
}

// splitParagraphs tokenizes the runs into paragraphs at hard breaks.
// Drawings become a single object replacement rune.
func splitParagraphs(runs []style.Run) []*paragraph {
	cur := &paragraph{}
	out := []*paragraph{cur}
	for ri := range runs {
		r := &runs[ri]
		if len(cur.runes) == 0 {
			cur.run = ri
		}
		if r.State.Drawing > 0 {
			cur.runes = append(cur.runes, objectRune)
			cur.runs = append(cur.runs, ri)
			continue
		}
		for _, c := range r.Text {
			if c == '\n' {
				cur = &paragraph{run: ri}
				out = append(out, cur)
				continue
			}
			cur.runes = append(cur.runes, c)
			cur.runs = append(cur.runs, ri)
		}
	}
	return out
}

// resolveLevels computes bidi levels over the paragraph, or separately for
// every override segment.
func (e *Engine) resolveLevels(p *paragraph, runs []style.Run, opts *Options) {
	bo := text.BidiOptions{Brackets: opts.Brackets}
	if len(p.runes) > 0 && runs[p.runs[0]].State.Encoding == -1 {
		bo.Auto = true
	}
	bidi := e.Bidi
	if bidi == nil {
		bidi = text.XTextBidi{}
	}
	if opts.WholeText || len(p.runes) == 0 {
		p.levels, p.dir = bidi.Levels(p.runes, bo)
		return
	}
	p.levels = make([]uint8, len(p.runes))
	p.dir = bo.Base
	for start := 0; start < len(p.runes); {
		group := runs[p.runs[start]].Segment
		end := start + 1
		for end < len(p.runes) && runs[p.runs[end]].Segment == group {
			end++
		}
		levels, dir := bidi.Levels(p.runes[start:end], bo)
		copy(p.levels[start:end], levels)
		if start == 0 {
			p.dir = dir
		}
		start = end
	}
}

func request(st *style.State) fonts.Request {
	return fonts.Request{Family: st.FontName, Weight: st.Weight(), Italic: st.Italic}
}

// faceFor picks the face for one rune. Whitespace keeps the primary face
// so that it never splits a segment.
func (e *Engine) faceFor(st *style.State, r rune) fonts.Face {
	req := request(st)
	if unicode.IsSpace(r) || r == objectRune || unicode.Is(unicode.Mn, r) {
		return e.Fonts.Select(req)
	}
	return e.Fonts.ForRune(req, r)
}

// ppemFor converts an ASS font size, which spans ascender to descender,
// to pixels per em.
func ppemFor(src *text.FontSource, size float64) float64 {
	parsed := src.Parsed()
	if parsed == nil {
		return size
	}
	const ref = 1000
	m := parsed.Metrics(ref, text.HintingNone)
	h := m.Ascent + m.Descent
	if h <= 0 {
		return size
	}
	return size * ref / h
}

// segmentParagraph splits p into shaping segments and shapes them.
func (e *Engine) segmentParagraph(p *paragraph, res *style.Resolved, opts *Options) {
	fr := &opts.Frame
	n := len(p.runes)
	p.adv = make([]float64, n)
	faces := make([]fonts.Face, n)
	for i, r := range p.runes {
		faces[i] = e.faceFor(&res.Runs[p.runs[i]].State, r)
	}

	var script language.Script
	for start := 0; start < n; {
		run := p.runs[start]
		end := start + 1
		if res.Runs[run].State.Drawing == 0 {
			script = text.RunScript(p.runes, start, n)
			for end < n {
				if p.runs[end] != run || p.levels[end] != p.levels[start] ||
					faces[end].Source != faces[start].Source {
					break
				}
				if s := language.LookupScript(p.runes[end]); s.Strong() && s != script {
					break
				}
				end++
			}
		}
		seg := segment{
			start: start,
			end:   end,
			run:   run,
			group: res.Runs[run].Segment,
			level: p.levels[start],
			face:  faces[start],
		}
		st := &res.Runs[run].State
		seg.scale = e.scaleOf(st, res, fr)
		if st.Drawing > 0 {
			e.shapeDrawing(&seg, &res.Runs[run], fr)
		} else {
			e.shapeText(&seg, p, st, opts)
		}
		for _, g := range seg.glyphs {
			if g.cluster >= 0 && g.cluster < n {
				p.adv[g.cluster] += g.adv
			}
		}
		p.segs = append(p.segs, seg)
		start = end
	}
}

func (e *Engine) shapeText(seg *segment, p *paragraph, st *style.State, opts *Options) {
	src := seg.face.Source
	if src == nil {
		return
	}
	sc := seg.scale
	seg.ppem = ppemFor(src, sc.size)
	if parsed := src.Parsed(); parsed != nil {
		seg.metrics = parsed.Metrics(seg.ppem, e.Hinting).Scale(sc.vs)
	}
	dir := text.DirectionLTR
	if seg.level%2 == 1 {
		dir = text.DirectionRTL
	}
	shaper := e.Shaper
	if shaper == nil {
		shaper = text.NewSimpleShaper()
	}
	glyphs := shaper.Shape(text.Run{
		Text:      p.runes,
		Start:     seg.start,
		End:       seg.end,
		Source:    src,
		Size:      seg.ppem,
		Direction: dir,
		Language:  opts.Language,
		Kerning:   opts.Kerning,
		Hinting:   e.Hinting,
	})
	seg.glyphs = make([]shapedGlyph, 0, len(glyphs))
	for _, g := range glyphs {
		seg.glyphs = append(seg.glyphs, shapedGlyph{
			gid:     g.GID,
			cluster: g.Cluster,
			adv:     g.XAdvance*sc.hs + sc.spacing,
			dx:      g.XOffset * sc.hs,
			dy:      g.YOffset * sc.vs,
		})
	}
}

// shapeDrawing turns a \p run into a single outline glyph whose cell
// spans the drawing's bounding box, with its bottom on the baseline.
func (e *Engine) shapeDrawing(seg *segment, run *style.Run, fr *Frame) {
	st := &run.State
	k := math.Ldexp(1, -(st.Drawing - 1)) * fr.ScaleY()
	sx, sy := k*seg.scale.hs, k*seg.scale.vs
	o := drawingOutline(tags.ParseDrawing(run.Text), sx, sy)
	if o.IsEmpty() {
		return
	}
	b := o.Bounds()
	shift := st.Baseline * sy
	o = o.Translate(-b.MinX, -b.MaxY+shift)
	seg.drawing = o
	seg.metrics = text.FontMetrics{Ascent: max(b.Height()-shift, 0), Descent: max(shift, 0)}
	seg.glyphs = []shapedGlyph{{cluster: seg.start, adv: b.Width()}}
}

// drawingOutline converts drawing commands to an outline scaled by
// (sx, sy).
func drawingOutline(cmds []tags.PathCmd, sx, sy float64) *text.Outline {
	o := &text.Outline{}
	for _, c := range cmds {
		switch c.Op {
		case tags.MoveTo:
			o.MoveTo(c.Pts[0].X*sx, c.Pts[0].Y*sy)
		case tags.LineTo:
			o.LineTo(c.Pts[0].X*sx, c.Pts[0].Y*sy)
		case tags.CubicTo:
			o.CubicTo(c.Pts[0].X*sx, c.Pts[0].Y*sy,
				c.Pts[1].X*sx, c.Pts[1].Y*sy,
				c.Pts[2].X*sx, c.Pts[2].Y*sy)
		}
	}
	return o
}
