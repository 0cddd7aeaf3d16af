package raster

import (
	"math"

	"github.com/gogpu/ass/text"
)

// point is a 2D point or vector.
type point struct {
	X, Y float64
}

func (p point) add(v point) point       { return point{p.X + v.X, p.Y + v.Y} }
func (p point) sub(q point) point       { return point{p.X - q.X, p.Y - q.Y} }
func (p point) scale(s float64) point   { return point{p.X * s, p.Y * s} }
func (p point) neg() point              { return point{-p.X, -p.Y} }
func (p point) dot(q point) float64     { return p.X*q.X + p.Y*q.Y }
func (p point) cross(q point) float64   { return p.X*q.Y - p.Y*q.X }
func (p point) length() float64         { return math.Hypot(p.X, p.Y) }
func (p point) perp() point             { return point{-p.Y, p.X} }
func (p point) angle() float64          { return math.Atan2(p.Y, p.X) }
func (p point) lerp(q point, t float64) point {
	return point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// defaultTolerance is the curve flattening tolerance in pixels.
const defaultTolerance = 0.1

// minRadius replaces a zero border axis so that the scale stays finite.
const minRadius = 1.0 / 64

// Stroke expands every contour of o into a ring reaching rx pixels
// horizontally and ry vertically on both sides, with round joins. The
// result is meant to be filled and unioned with the fill of o.
func Stroke(o *text.Outline, rx, ry float64) *text.Outline {
	if o.IsEmpty() || (rx <= 0 && ry <= 0) {
		return nil
	}
	rx = math.Max(rx, minRadius)
	ry = math.Max(ry, minRadius)

	// Stroke a circle of radius rx in a space squashed vertically by
	// rx/ry, then stretch back.
	k := rx / ry
	e := &strokeExpander{radius: rx, tolerance: defaultTolerance, out: &text.Outline{}}
	var contour []point
	flush := func() {
		e.contour(contour)
		contour = contour[:0]
	}
	var last point
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case text.OutlineOpMoveTo:
			flush()
			last = point{p[0].X, p[0].Y * k}
			contour = append(contour, last)
		case text.OutlineOpLineTo:
			last = point{p[0].X, p[0].Y * k}
			contour = append(contour, last)
		case text.OutlineOpQuadTo:
			c, end := point{p[0].X, p[0].Y * k}, point{p[1].X, p[1].Y * k}
			contour = e.flattenQuad(contour, last, c, end)
			last = end
		case text.OutlineOpCubicTo:
			c1, c2 := point{p[0].X, p[0].Y * k}, point{p[1].X, p[1].Y * k}
			end := point{p[2].X, p[2].Y * k}
			contour = e.flattenCubic(contour, last, c1, c2, end)
			last = end
		}
	}
	flush()

	if e.out.IsEmpty() {
		return nil
	}
	return e.out.Transform(text.ScaleMatrix(1, 1/k))
}

// strokeExpander builds the two offset contours of one closed polyline.
// The forward contour runs at -norm, the backward one at +norm and is
// emitted reversed.
type strokeExpander struct {
	radius    float64
	tolerance float64
	out       *text.Outline

	forward, backward []text.OutlineSegment
}

func (e *strokeExpander) contour(pts []point) {
	// Drop repeated points, including the closing duplicate.
	clean := make([]point, 0, len(pts))
	for _, p := range pts {
		if len(clean) == 0 || p.sub(clean[len(clean)-1]).length() > 1e-9 {
			clean = append(clean, p)
		}
	}
	for len(clean) > 1 && clean[0].sub(clean[len(clean)-1]).length() <= 1e-9 {
		clean = clean[:len(clean)-1]
	}

	switch len(clean) {
	case 0:
		return
	case 1:
		e.dot(clean[0])
		return
	}

	e.forward = e.forward[:0]
	e.backward = e.backward[:0]
	n := len(clean)
	firstTan := clean[1].sub(clean[0])
	lastTan := clean[0].sub(clean[n-1])
	for i := range n {
		p0, p1 := clean[i], clean[(i+1)%n]
		tan := p1.sub(p0)
		if i == 0 {
			norm := e.norm(tan)
			e.forward = append(e.forward, seg(text.OutlineOpMoveTo, p0.add(norm.neg())))
			e.backward = append(e.backward, seg(text.OutlineOpMoveTo, p0.add(norm)))
		} else {
			e.join(p0, lastTan, tan)
		}
		norm := e.norm(tan)
		e.forward = append(e.forward, seg(text.OutlineOpLineTo, p1.add(norm.neg())))
		e.backward = append(e.backward, seg(text.OutlineOpLineTo, p1.add(norm)))
		lastTan = tan
	}
	e.join(clean[0], lastTan, firstTan)

	e.out.Segments = append(e.out.Segments, e.forward...)
	e.appendReversed(e.backward)
}

// dot emits a full circle for a degenerate contour.
func (e *strokeExpander) dot(c point) {
	start := point{c.X + e.radius, c.Y}
	e.out.Segments = append(e.out.Segments, seg(text.OutlineOpMoveTo, start))
	e.forward = e.forward[:0]
	e.arc(&e.forward, c, point{e.radius, 0}, 2*math.Pi)
	e.out.Segments = append(e.out.Segments, e.forward...)
}

func (e *strokeExpander) norm(tan point) point {
	return tan.perp().scale(e.radius / tan.length())
}

// join connects the segment ending at p0 with direction ab to the one
// starting there with direction cd. The outer side gets a round arc, the
// inner side a straight line.
func (e *strokeExpander) join(p0, ab, cd point) {
	norm := e.norm(cd)
	lastNorm := e.norm(ab)
	cross := ab.cross(cd)
	dot := ab.dot(cd)

	if dot > 0 && math.Abs(cross) < math.Hypot(cross, dot)*2*e.tolerance/(2*e.radius) {
		e.forward = append(e.forward, seg(text.OutlineOpLineTo, p0.add(norm.neg())))
		e.backward = append(e.backward, seg(text.OutlineOpLineTo, p0.add(norm)))
		return
	}

	angle := math.Atan2(cross, dot)
	if angle > 0 {
		e.backward = append(e.backward, seg(text.OutlineOpLineTo, p0.add(norm)))
		e.arc(&e.forward, p0, lastNorm.neg(), angle)
	} else {
		e.forward = append(e.forward, seg(text.OutlineOpLineTo, p0.add(norm.neg())))
		e.arc(&e.backward, p0, lastNorm, angle)
	}
}

// arc appends a circular arc around center starting at center+from and
// sweeping angle radians, as cubic Beziers of at most 90 degrees.
func (e *strokeExpander) arc(out *[]text.OutlineSegment, center, from point, angle float64) {
	n := int(math.Ceil(math.Abs(angle) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := angle / float64(n)
	a := from.angle()
	r := from.length()
	for range n {
		a0, a1 := a, a+step
		alpha := math.Sin(step) * (math.Sqrt(4+3*math.Tan(step/2)*math.Tan(step/2)) - 1) / 3

		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		p1 := point{center.X + r*cos0, center.Y + r*sin0}
		p2 := point{center.X + r*cos1, center.Y + r*sin1}
		c1 := point{p1.X - alpha*r*sin0, p1.Y + alpha*r*cos0}
		c2 := point{p2.X + alpha*r*sin1, p2.Y - alpha*r*cos1}
		*out = append(*out, text.OutlineSegment{
			Op:     text.OutlineOpCubicTo,
			Points: [3]text.OutlinePoint{{X: c1.X, Y: c1.Y}, {X: c2.X, Y: c2.Y}, {X: p2.X, Y: p2.Y}},
		})
		a = a1
	}
}

// appendReversed appends a contour in reverse order as a new contour.
func (e *strokeExpander) appendReversed(segs []text.OutlineSegment) {
	if len(segs) == 0 {
		return
	}
	e.out.Segments = append(e.out.Segments, seg(text.OutlineOpMoveTo, toPoint(segs[len(segs)-1].End())))
	for i := len(segs) - 1; i >= 1; i-- {
		end := segs[i-1].End()
		s := segs[i]
		switch s.Op {
		case text.OutlineOpLineTo:
			e.out.Segments = append(e.out.Segments, seg(text.OutlineOpLineTo, toPoint(end)))
		case text.OutlineOpCubicTo:
			e.out.Segments = append(e.out.Segments, text.OutlineSegment{
				Op:     text.OutlineOpCubicTo,
				Points: [3]text.OutlinePoint{s.Points[1], s.Points[0], end},
			})
		}
	}
}

func seg(op text.OutlineOp, p point) text.OutlineSegment {
	return text.OutlineSegment{Op: op, Points: [3]text.OutlinePoint{{X: p.X, Y: p.Y}}}
}

func toPoint(p text.OutlinePoint) point { return point{p.X, p.Y} }

// flattenQuad appends the flattened quadratic p0-p1-p2, without p0.
func (e *strokeExpander) flattenQuad(pts []point, p0, p1, p2 point) []point {
	if distanceToLine(p1, p0, p2) < e.tolerance {
		return append(pts, p2)
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := q0.lerp(q1, 0.5)
	pts = e.flattenQuad(pts, p0, q0, q2)
	return e.flattenQuad(pts, q2, q1, p2)
}

// flattenCubic appends the flattened cubic p0-p1-p2-p3, without p0.
func (e *strokeExpander) flattenCubic(pts []point, p0, p1, p2, p3 point) []point {
	if math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < e.tolerance {
		return append(pts, p3)
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	s := r0.lerp(r1, 0.5)
	pts = e.flattenCubic(pts, p0, q0, r0, s)
	return e.flattenCubic(pts, s, r1, q2, p3)
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b point) float64 {
	ab := b.sub(a)
	abLen := ab.length()
	if abLen < 1e-10 {
		return p.sub(a).length()
	}
	t := p.sub(a).dot(ab) / (abLen * abLen)
	if t < 0 {
		return p.sub(a).length()
	}
	if t > 1 {
		return p.sub(b).length()
	}
	return p.sub(a.add(ab.scale(t))).length()
}
