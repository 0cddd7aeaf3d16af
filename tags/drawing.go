package tags

import "strings"

// Point is a coordinate in drawing space.
type Point struct{ X, Y float64 }

// PathOp is a drawing path operation.
type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	CubicTo
	ClosePath
)

// PathCmd is one path operation. MoveTo and LineTo use Pts[0]; CubicTo
// uses all three points.
type PathCmd struct {
	Op  PathOp
	Pts [3]Point
}

// ParseDrawing decodes ASS vector drawing commands (m n l b s p c). Every
// contour is closed. Coordinates are returned unscaled; invalid tokens end
// the current command.
func ParseDrawing(s string) []PathCmd {
	d := drawParser{tok: strings.Fields(s)}
	d.run()
	d.closeContour()
	return d.out
}

type drawParser struct {
	tok    []string
	pos    int
	out    []PathCmd
	open   bool
	cur    Point
	start  Point
	spline []Point
}

func (d *drawParser) run() {
	cmd := byte(0)
	for d.pos < len(d.tok) {
		t := d.tok[d.pos]
		if len(t) == 1 && strings.IndexByte("mnlbspc", t[0]) >= 0 {
			d.pos++
			if cmd == 's' || cmd == 'p' {
				if t[0] != 'p' && t[0] != 'c' {
					d.flushSpline(false)
				}
			}
			cmd = t[0]
			if cmd == 'c' {
				d.flushSpline(true)
				cmd = 0
			}
			if cmd == 's' {
				d.spline = []Point{d.cur}
			}
			continue
		}
		switch cmd {
		case 'm', 'n':
			p, ok := d.point()
			if !ok {
				return
			}
			if cmd == 'm' {
				d.closeContour()
			}
			d.moveTo(p)
		case 'l':
			p, ok := d.point()
			if !ok {
				return
			}
			d.lineTo(p)
		case 'b':
			var pts [3]Point
			for i := range pts {
				p, ok := d.point()
				if !ok {
					return
				}
				pts[i] = p
			}
			d.ensureOpen()
			d.out = append(d.out, PathCmd{Op: CubicTo, Pts: pts})
			d.cur = pts[2]
		case 's', 'p':
			p, ok := d.point()
			if !ok {
				return
			}
			d.spline = append(d.spline, p)
		default:
			d.pos++
		}
	}
	if cmd == 's' || cmd == 'p' {
		d.flushSpline(false)
	}
}

func (d *drawParser) point() (Point, bool) {
	if d.pos+1 >= len(d.tok) {
		d.pos = len(d.tok)
		return Point{}, false
	}
	x, okx := number(d.tok[d.pos])
	y, oky := number(d.tok[d.pos+1])
	if !okx || !oky {
		d.pos = len(d.tok)
		return Point{}, false
	}
	d.pos += 2
	return Point{x, y}, true
}

func (d *drawParser) moveTo(p Point) {
	d.out = append(d.out, PathCmd{Op: MoveTo, Pts: [3]Point{p}})
	d.cur, d.start, d.open = p, p, true
}

func (d *drawParser) ensureOpen() {
	if !d.open {
		d.moveTo(d.cur)
	}
}

func (d *drawParser) lineTo(p Point) {
	d.ensureOpen()
	d.out = append(d.out, PathCmd{Op: LineTo, Pts: [3]Point{p}})
	d.cur = p
}

func (d *drawParser) closeContour() {
	if d.open {
		d.out = append(d.out, PathCmd{Op: ClosePath})
		d.cur = d.start
		d.open = false
	}
}

// flushSpline converts the pending uniform cubic B-spline to Bézier
// segments. closed wraps the first three control points around.
func (d *drawParser) flushSpline(closed bool) {
	pts := d.spline
	d.spline = nil
	if closed && len(pts) >= 3 {
		pts = append(pts, pts[0], pts[1], pts[2])
	}
	if len(pts) < 4 {
		for _, p := range pts[min(1, len(pts)):] {
			d.lineTo(p)
		}
		return
	}
	for i := 0; i+3 < len(pts); i++ {
		p0, p1, p2, p3 := pts[i], pts[i+1], pts[i+2], pts[i+3]
		b0 := Point{(p0.X + 4*p1.X + p2.X) / 6, (p0.Y + 4*p1.Y + p2.Y) / 6}
		b1 := Point{(4*p1.X + 2*p2.X) / 6, (4*p1.Y + 2*p2.Y) / 6}
		b2 := Point{(2*p1.X + 4*p2.X) / 6, (2*p1.Y + 4*p2.Y) / 6}
		b3 := Point{(p1.X + 4*p2.X + p3.X) / 6, (p1.Y + 4*p2.Y + p3.Y) / 6}
		if i == 0 {
			d.lineTo(b0)
		}
		d.ensureOpen()
		d.out = append(d.out, PathCmd{Op: CubicTo, Pts: [3]Point{b1, b2, b3}})
		d.cur = b3
	}
}
