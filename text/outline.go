package text

import (
	"math"

	"golang.org/x/image/font/sfnt"
)

// OutlinePoint is a point of a glyph outline in pixels, y growing down
// from the baseline.
type OutlinePoint struct {
	X, Y float64
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new closed contour.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return unknownStr
	}
}

// NumPoints returns how many points of a segment the op uses.
func (op OutlineOp) NumPoints() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]OutlinePoint
}

// End returns the segment's target point.
func (s OutlineSegment) End() OutlinePoint {
	return s.Points[s.Op.NumPoints()-1]
}

// Outline is a vector outline made of closed contours. Every contour
// starts with a MoveTo and is implicitly closed by the next MoveTo or the
// end of the outline.
type Outline struct {
	Segments []OutlineSegment

	// Advance is the horizontal advance width of the glyph.
	Advance float64
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// Clone creates a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	return &Outline{
		Segments: append([]OutlineSegment(nil), o.Segments...),
		Advance:  o.Advance,
	}
}

// MoveTo starts a new contour.
func (o *Outline) MoveTo(x, y float64) {
	o.Segments = append(o.Segments, OutlineSegment{Op: OutlineOpMoveTo, Points: [3]OutlinePoint{{x, y}}})
}

// LineTo appends a line.
func (o *Outline) LineTo(x, y float64) {
	o.Segments = append(o.Segments, OutlineSegment{Op: OutlineOpLineTo, Points: [3]OutlinePoint{{x, y}}})
}

// QuadTo appends a quadratic curve.
func (o *Outline) QuadTo(cx, cy, x, y float64) {
	o.Segments = append(o.Segments, OutlineSegment{Op: OutlineOpQuadTo, Points: [3]OutlinePoint{{cx, cy}, {x, y}}})
}

// CubicTo appends a cubic curve.
func (o *Outline) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	o.Segments = append(o.Segments, OutlineSegment{Op: OutlineOpCubicTo, Points: [3]OutlinePoint{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// Append adds the contours of other to o.
func (o *Outline) Append(other *Outline) {
	if other.IsEmpty() {
		return
	}
	o.Segments = append(o.Segments, other.Segments...)
}

// Bounds returns the control box of the outline.
func (o *Outline) Bounds() Rect {
	if o.IsEmpty() {
		return Rect{}
	}
	r := EmptyRect()
	for _, seg := range o.Segments {
		for j := range seg.Op.NumPoints() {
			r = r.Add(seg.Points[j].X, seg.Points[j].Y)
		}
	}
	return r
}

// Translate returns a new outline with all coordinates translated by (dx, dy).
func (o *Outline) Translate(dx, dy float64) *Outline {
	return o.Transform(TranslateMatrix(dx, dy))
}

// Transform returns a new outline with every point mapped through m.
func (o *Outline) Transform(m Matrix) *Outline {
	if o == nil {
		return nil
	}
	out := &Outline{
		Segments: make([]OutlineSegment, len(o.Segments)),
		Advance:  o.Advance,
	}
	for i, seg := range o.Segments {
		out.Segments[i].Op = seg.Op
		for j := range seg.Op.NumPoints() {
			x, y := m.Apply(seg.Points[j].X, seg.Points[j].Y)
			out.Segments[i].Points[j] = OutlinePoint{X: x, Y: y}
		}
	}
	return out
}

// Embolden returns a copy of o with every contour pushed outward by sx
// horizontally and sy vertically. The advance grows by sx.
func (o *Outline) Embolden(sx, sy float64) *Outline {
	if o.IsEmpty() || (sx == 0 && sy == 0) {
		return o.Clone()
	}
	out := o.Clone()
	out.Advance += sx

	contours := out.contours()
	// Ink lies on the same side of every edge, so the winding of the whole
	// outline picks the outward direction for outer contours and holes alike.
	var area float64
	for _, c := range contours {
		area += contourArea(out.Segments[c[0]:c[1]])
	}
	sign := 1.0
	if area < 0 {
		sign = -1
	}
	for _, c := range contours {
		emboldenContour(out.Segments[c[0]:c[1]], sign*sx/2, sign*sy/2)
	}
	return out
}

// contours returns the [start, end) segment range of every contour.
func (o *Outline) contours() [][2]int {
	var out [][2]int
	for start := 0; start < len(o.Segments); {
		end := start + 1
		for end < len(o.Segments) && o.Segments[end].Op != OutlineOpMoveTo {
			end++
		}
		out = append(out, [2]int{start, end})
		start = end
	}
	return out
}

type pointRef struct{ seg, idx int }

func contourPoints(segs []OutlineSegment) []pointRef {
	var refs []pointRef
	for i, seg := range segs {
		for j := range seg.Op.NumPoints() {
			refs = append(refs, pointRef{i, j})
		}
	}
	return refs
}

// contourArea is twice the signed area of the control polygon. With y
// growing down it is positive for visually clockwise contours.
func contourArea(segs []OutlineSegment) float64 {
	refs := contourPoints(segs)
	var area float64
	for k := range refs {
		p := segs[refs[k].seg].Points[refs[k].idx]
		q := segs[refs[(k+1)%len(refs)].seg].Points[refs[(k+1)%len(refs)].idx]
		area += p.X*q.Y - q.X*p.Y
	}
	return area
}

func emboldenContour(segs []OutlineSegment, sx, sy float64) {
	refs := contourPoints(segs)
	n := len(refs)
	if n < 3 {
		return
	}
	at := func(k int) OutlinePoint {
		r := refs[((k%n)+n)%n]
		return segs[r.seg].Points[r.idx]
	}

	moved := make([]OutlinePoint, n)
	for k := range n {
		prev, cur, next := at(k-1), at(k), at(k+1)
		n1x, n1y := edgeNormal(prev, cur)
		n2x, n2y := edgeNormal(cur, next)
		ux, uy := n1x+n2x, n1y+n2y
		l := math.Hypot(ux, uy)
		if l < 1e-9 {
			moved[k] = cur
			continue
		}
		ux, uy = ux/l, uy/l
		// Stretch the bisector so that both edges move by the full amount.
		d := math.Max(ux*n1x+uy*n1y, 0.25)
		moved[k] = OutlinePoint{X: cur.X + ux/d*sx, Y: cur.Y + uy/d*sy}
	}
	for k, r := range refs {
		segs[r.seg].Points[r.idx] = moved[k]
	}
}

func edgeNormal(a, b OutlinePoint) (float64, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return 0, 0
	}
	return dy / l, -dx / l
}

// Matrix is a 3x3 projective transform:
//
//	[XX XY X0]
//	[YX YY Y0]
//	[ZX ZY Z0]
type Matrix struct {
	XX, XY, X0 float64
	YX, YY, Y0 float64
	ZX, ZY, Z0 float64
}

// IdentityMatrix returns the identity transformation.
func IdentityMatrix() Matrix {
	return Matrix{XX: 1, YY: 1, Z0: 1}
}

// ScaleMatrix returns a scaling transformation.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{XX: sx, YY: sy, Z0: 1}
}

// TranslateMatrix returns a translation transformation.
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{XX: 1, X0: tx, YY: 1, Y0: ty, Z0: 1}
}

// ShearMatrix returns x' = x + shx*y, y' = y + shy*x.
func ShearMatrix(shx, shy float64) Matrix {
	return Matrix{XX: 1, XY: shx, YX: shy, YY: 1, Z0: 1}
}

// Mul returns m applied after o.
func (m Matrix) Mul(o Matrix) Matrix {
	return Matrix{
		XX: m.XX*o.XX + m.XY*o.YX + m.X0*o.ZX,
		XY: m.XX*o.XY + m.XY*o.YY + m.X0*o.ZY,
		X0: m.XX*o.X0 + m.XY*o.Y0 + m.X0*o.Z0,
		YX: m.YX*o.XX + m.YY*o.YX + m.Y0*o.ZX,
		YY: m.YX*o.XY + m.YY*o.YY + m.Y0*o.ZY,
		Y0: m.YX*o.X0 + m.YY*o.Y0 + m.Y0*o.Z0,
		ZX: m.ZX*o.XX + m.ZY*o.YX + m.Z0*o.ZX,
		ZY: m.ZX*o.XY + m.ZY*o.YY + m.Z0*o.ZY,
		Z0: m.ZX*o.X0 + m.ZY*o.Y0 + m.Z0*o.Z0,
	}
}

// IsAffine reports whether m has no perspective component.
func (m Matrix) IsAffine() bool {
	return m.ZX == 0 && m.ZY == 0 && m.Z0 == 1
}

// minW keeps points behind the viewer from flipping through infinity.
const minW = 0.1

// Apply maps a point through m.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	tx := m.XX*x + m.XY*y + m.X0
	ty := m.YX*x + m.YY*y + m.Y0
	if m.IsAffine() {
		return tx, ty
	}
	w := m.ZX*x + m.ZY*y + m.Z0
	if w < minW {
		w = minW
	}
	return tx / w, ty / w
}

// OutlineExtractor extracts glyph outlines from fonts. An extractor is
// not safe for concurrent use; it reuses one sfnt.Buffer.
type OutlineExtractor struct {
	buffer sfnt.Buffer
}

// NewOutlineExtractor creates a new outline extractor.
func NewOutlineExtractor() *OutlineExtractor {
	return &OutlineExtractor{}
}

// Extract returns the outline of glyph gid at ppem pixels per em. Glyphs
// without contours, like the space, yield an empty outline that still
// carries the advance.
func (e *OutlineExtractor) Extract(src *FontSource, gid GlyphID, ppem float64, h Hinting) (*Outline, error) {
	parsed := src.Parsed()
	if parsed == nil {
		return nil, ErrClosed
	}
	xi, ok := parsed.(*ximageParsedFont)
	if !ok {
		return nil, ErrUnsupportedFontType
	}
	if h != HintingNone {
		ppem = math.Max(1, math.Round(ppem))
	}

	segments, err := xi.font.LoadGlyph(&e.buffer, sfnt.GlyphIndex(gid), floatToFixed(ppem), nil)
	if err != nil {
		return nil, err
	}

	out := &Outline{
		Segments: make([]OutlineSegment, 0, len(segments)),
		Advance:  parsed.GlyphAdvance(gid, ppem, h),
	}
	for _, seg := range segments {
		var s OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			s.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			s.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			s.Op = OutlineOpCubicTo
		}
		for j := range s.Op.NumPoints() {
			s.Points[j] = OutlinePoint{X: fixedToFloat(seg.Args[j].X), Y: fixedToFloat(seg.Args[j].Y)}
		}
		out.Segments = append(out.Segments, s)
	}
	return out, nil
}
