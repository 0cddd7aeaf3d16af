package layout

import (
	"math"

	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/text"
)

// cameraDistance is the perspective distance in script pixels.
const cameraDistance = 20000

// piece is the part of a segment that falls on one line.
type piece struct {
	seg    *segment
	glyphs []shapedGlyph
}

// pendingLine is a line before block placement; glyph X values are
// relative to the line start and Y to the baseline.
type pendingLine struct {
	Line
	run    int
	glyphs []Glyph
}

// Layout places the glyphs of res on the frame described by opts. It
// returns an event without glyphs for empty text.
func (e *Engine) Layout(res *style.Resolved, opts *Options) *Event {
	fr := &opts.Frame
	ev := &Event{
		Resolved:    res,
		Positioned:  res.HasPos,
		BorderScale: fr.BorderScale(),
		Aspect:      fr.Aspect(),
	}
	if e.Fonts == nil || len(res.Runs) == 0 {
		return ev
	}

	maxWidth := maxTextWidth(fr, res.MarginL, res.MarginR)
	breaker := e.breaker(res.WrapStyle, opts)

	var lines []pendingLine
	for _, p := range splitParagraphs(res.Runs) {
		if len(p.runes) == 0 {
			lines = append(lines, e.emptyLine(p.run, res, fr))
			continue
		}
		e.resolveLevels(p, res.Runs, opts)
		e.segmentParagraph(p, res, opts)
		allowed := breaker.Breaks(p.runes)
		m := newMeasure(p.runes, p.adv)
		for _, lr := range wrapLines(p.runes, p.adv, allowed, maxWidth, res.WrapStyle) {
			a, b := m.trim(lr.start, lr.end)
			if a == b {
				lines = append(lines, e.emptyLine(p.runs[lr.start], res, fr))
				continue
			}
			lines = append(lines, e.buildLine(p, a, b, opts))
		}
	}
	if len(lines) == 0 {
		return ev
	}
	e.place(ev, lines, res, fr)
	return ev
}

// emptyLine sizes a line without text from the run's primary font.
func (e *Engine) emptyLine(run int, res *style.Resolved, fr *Frame) pendingLine {
	st := &res.Runs[run].State
	sc := e.scaleOf(st, res, fr)
	pl := pendingLine{run: run}
	face := e.Fonts.Select(request(st))
	if parsed := face.Source.Parsed(); parsed != nil {
		m := parsed.Metrics(ppemFor(face.Source, sc.size), e.Hinting).Scale(sc.vs)
		pl.Ascent, pl.Descent = m.Ascent, m.Descent
	}
	return pl
}

// buildLine collects the glyphs of runes [a, b) of p in visual order.
func (e *Engine) buildLine(p *paragraph, a, b int, opts *Options) pendingLine {
	var pieces []piece
	for i := range p.segs {
		s := &p.segs[i]
		if s.end <= a || s.start >= b {
			continue
		}
		pc := piece{seg: s}
		for _, g := range s.glyphs {
			if g.cluster >= a && g.cluster < b {
				pc.glyphs = append(pc.glyphs, g)
			}
		}
		pieces = append(pieces, pc)
	}
	order := visualOrder(pieces, opts.WholeText)

	pl := pendingLine{run: p.runs[a]}
	pen := 0.0
	for _, idx := range order {
		pc := &pieces[idx]
		s := pc.seg
		pl.Ascent = math.Max(pl.Ascent, s.metrics.Ascent)
		pl.Descent = math.Max(pl.Descent, s.metrics.Descent)
		for _, g := range pc.glyphs {
			gl := Glyph{
				Rune:    p.runes[g.cluster],
				Run:     s.run,
				Face:    s.face,
				GID:     g.gid,
				Size:    s.ppem,
				X:       pen + g.dx,
				Y:       g.dy,
				Advance: g.adv,
				Ascent:  s.metrics.Ascent,
				Descent: s.metrics.Descent,
				Local:   text.ScaleMatrix(s.scale.hs, s.scale.vs),
			}
			switch {
			case s.drawing != nil:
				gl.Drawing = s.drawing
				gl.Local = text.IdentityMatrix()
			case s.face.Source == nil || text.IsSpace(gl.Rune):
				gl.Skip = true
			}
			if s.face.Oblique && gl.Drawing == nil {
				gl.Local = gl.Local.Mul(text.ShearMatrix(-obliqueShear, 0))
			}
			pl.glyphs = append(pl.glyphs, gl)
			pen += g.adv
		}
	}
	pl.Width = pen
	return pl
}

// visualOrder returns the display order of the line's pieces. Without
// whole text layout every override segment is reordered on its own and
// the segments stay in logical order.
func visualOrder(pieces []piece, whole bool) []int {
	order := make([]int, 0, len(pieces))
	for start := 0; start < len(pieces); {
		end := start + 1
		if whole {
			end = len(pieces)
		} else {
			for end < len(pieces) && pieces[end].seg.group == pieces[start].seg.group {
				end++
			}
		}
		levels := make([]uint8, end-start)
		for i := range levels {
			levels[i] = pieces[start+i].seg.level
		}
		for _, i := range text.VisualOrder(levels) {
			order = append(order, start+i)
		}
		start = end
	}
	return order
}

// place stacks the lines, positions the block and computes every glyph
// transform.
func (e *Engine) place(ev *Event, lines []pendingLine, res *style.Resolved, fr *Frame) {
	spacing := fr.LineSpacing
	var blockW float64
	y := 0.0
	for i := range lines {
		l := &lines[i]
		if i == 0 {
			y = l.Ascent
		} else {
			prev := &lines[i-1]
			y = prev.Y + prev.Descent + spacing + l.Ascent
		}
		l.Y = y
		blockW = math.Max(blockW, l.Width)
	}
	last := &lines[len(lines)-1]
	blockH := last.Y + last.Descent

	align := res.Alignment
	if align < 1 || align > 9 {
		align = 2
	}
	kh := float64((align-1)%3) / 2
	kv := 1.0
	switch {
	case align >= 7:
		kv = 0
	case align >= 4:
		kv = 0.5
	}
	kj := kh
	switch res.Justify {
	case 1:
		kj = 0
	case 2:
		kj = 0.5
	case 3:
		kj = 1
	}

	vx, vy, vw, vh := fr.video()
	sx, sy := fr.ScaleX(), fr.ScaleY()
	var bx, by, ax, ay float64
	if res.HasPos {
		ax, ay = fr.ToFrame(res.PosX, res.PosY)
		bx, by = ax-blockW*kh, ay-blockH*kv
	} else {
		ml, mr, mv := float64(res.MarginL)*sx, float64(res.MarginR)*sx, float64(res.MarginV)*sy
		switch kh {
		case 0:
			bx = vx + ml
		case 1:
			bx = vx + vw - mr - blockW
		default:
			bx = vx + ml + (vw-ml-mr-blockW)/2
		}
		top, bottom := vy, vy+vh
		if fr.UseMargins {
			top, bottom = 0, float64(fr.Height)
		}
		switch kv {
		case 0:
			by = top + mv
		case 1:
			by = bottom - mv - blockH
			if fr.LinePosition > 0 {
				by = math.Max(by-fr.LinePosition/100*vh, top+mv)
			}
		default:
			by = vy + (vh-blockH)/2
		}
		ax, ay = bx+blockW*kh, by+blockH*kv
	}
	ev.Box = text.Rect{MinX: bx, MinY: by, MaxX: bx + blockW, MaxY: by + blockH}
	ev.OrgX, ev.OrgY = ax, ay
	if res.HasOrg {
		ev.OrgX, ev.OrgY = fr.ToFrame(res.OrgX, res.OrgY)
	}

	transforms := make(map[int]text.Matrix)
	transform := func(run int) text.Matrix {
		if m, ok := transforms[run]; ok {
			return m
		}
		st := &res.Runs[run].State
		m := eventTransform(st, ev.OrgX, ev.OrgY, cameraDistance*sy)
		transforms[run] = m
		return m
	}

	for li := range lines {
		l := &lines[li]
		l.X = bx + (blockW-l.Width)*kj
		l.Y += by
		l.Start = len(ev.Glyphs)
		for gi := range l.glyphs {
			g := &l.glyphs[gi]
			g.Line = li
			g.X += l.X
			g.Y += l.Y
			g.Matrix = transform(g.Run).Mul(text.TranslateMatrix(g.X, g.Y))
			ev.Glyphs = append(ev.Glyphs, *g)
		}
		ev.Glyphs = append(ev.Glyphs, e.decorations(l, res, transform)...)
		l.End = len(ev.Glyphs)
		ev.Lines = append(ev.Lines, l.Line)
	}
}

// eventTransform returns the shear, rotation and perspective transform of
// a run about the origin (ox, oy). dist is the camera distance in frame
// pixels.
func eventTransform(st *style.State, ox, oy, dist float64) text.Matrix {
	if st.RotX == 0 && st.RotY == 0 && st.RotZ == 0 && st.ShearX == 0 && st.ShearY == 0 {
		return text.IdentityMatrix()
	}
	rad := math.Pi / 180
	sinX, cosX := math.Sincos(st.RotX * rad)
	sinY, cosY := math.Sincos(st.RotY * rad)
	sinZ, cosZ := math.Sincos(st.RotZ * rad)

	// Linear forms over the sheared, origin relative point.
	x1 := [2]float64{cosZ, sinZ}
	y1 := [2]float64{-sinZ, cosZ}
	y2 := [2]float64{cosX * y1[0], cosX * y1[1]}
	z2 := [2]float64{sinX * y1[0], sinX * y1[1]}
	x3 := [2]float64{cosY*x1[0] + sinY*z2[0], cosY*x1[1] + sinY*z2[1]}
	z3 := [2]float64{-sinY*x1[0] + cosY*z2[0], -sinY*x1[1] + cosY*z2[1]}

	w := [2]float64{z3[0] / dist, z3[1] / dist}
	rot := text.Matrix{
		XX: x3[0] + ox*w[0], XY: x3[1] + ox*w[1], X0: ox,
		YX: y2[0] + oy*w[0], YY: y2[1] + oy*w[1], Y0: oy,
		ZX: w[0], ZY: w[1], Z0: 1,
	}
	return rot.Mul(text.ShearMatrix(st.ShearX, st.ShearY)).Mul(text.TranslateMatrix(-ox, -oy))
}

// decorations returns underline and strikeout bars for the line, one per
// stretch of glyphs from the same run.
func (e *Engine) decorations(l *pendingLine, res *style.Resolved, transform func(int) text.Matrix) []Glyph {
	var out []Glyph
	pen := 0.0
	for start := 0; start < len(l.glyphs); {
		run := l.glyphs[start].Run
		x0 := l.X + pen
		end := start
		for end < len(l.glyphs) && l.glyphs[end].Run == run {
			pen += l.glyphs[end].Advance
			end++
		}
		x1 := l.X + pen
		st := &res.Runs[run].State
		if (st.Underline || st.StrikeOut) && st.Drawing == 0 && x1 > x0 {
			m := e.decorationMetrics(&l.glyphs[start])
			bar := func(center float64) Glyph {
				return Glyph{
					Run:     run,
					Line:    l.glyphs[start].Line,
					Drawing: barOutline(x1-x0, center, m.thick),
					Local:   text.IdentityMatrix(),
					Matrix:  transform(run).Mul(text.TranslateMatrix(x0, l.Y)),
					X:       x0,
					Y:       l.Y,
					Advance: x1 - x0,
				}
			}
			if st.Underline {
				out = append(out, bar(m.underline))
			}
			if st.StrikeOut {
				out = append(out, bar(m.strike))
			}
		}
		start = end
	}
	return out
}

// barOutline is a horizontal bar of width w centred on y = center.
func barOutline(w, center, thick float64) *text.Outline {
	o := &text.Outline{}
	o.MoveTo(0, center-thick/2)
	o.LineTo(w, center-thick/2)
	o.LineTo(w, center+thick/2)
	o.LineTo(0, center+thick/2)
	return o
}

type decoMetrics struct {
	underline, strike, thick float64
}

func (e *Engine) decorationMetrics(g *Glyph) decoMetrics {
	var m text.FontMetrics
	if g.Face.Source != nil {
		if parsed := g.Face.Source.Parsed(); parsed != nil {
			m = parsed.Metrics(g.Size, e.Hinting).Scale(g.Local.YY)
		}
	}
	d := decoMetrics{underline: m.UnderlinePosition, thick: m.UnderlineThickness}
	if d.thick <= 0 {
		d.thick = math.Max((g.Ascent+g.Descent)/20, 1)
	}
	if d.underline == 0 {
		d.underline = g.Descent / 2
	}
	if m.XHeight > 0 {
		d.strike = -m.XHeight / 2
	} else {
		d.strike = -g.Ascent * 0.3
	}
	return d
}
