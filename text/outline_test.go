package text

import (
	"math"
	"testing"
)

func TestExtractOutline(t *testing.T) {
	src := goRegular(t)
	e := NewOutlineExtractor()

	gid := src.Parsed().GlyphIndex('A')
	o, err := e.Extract(src, gid, 32, HintingNone)
	if err != nil {
		t.Fatal(err)
	}
	if o.IsEmpty() {
		t.Fatal("outline of 'A' is empty")
	}
	if o.Segments[0].Op != OutlineOpMoveTo {
		t.Errorf("first op = %v, want MoveTo", o.Segments[0].Op)
	}
	b := o.Bounds()
	// Glyphs sit on the baseline with y growing down.
	if b.MinY >= 0 || b.MaxY > 1 {
		t.Errorf("bounds %+v not above baseline", b)
	}
	if b.Height() < 15 || b.Height() > 32 {
		t.Errorf("cap height %v out of range for 32ppem", b.Height())
	}
	if o.Advance <= 0 {
		t.Errorf("Advance = %v", o.Advance)
	}

	space, err := e.Extract(src, src.Parsed().GlyphIndex(' '), 32, HintingNone)
	if err != nil {
		t.Fatal(err)
	}
	if !space.IsEmpty() || space.Advance <= 0 {
		t.Errorf("space: empty=%v advance=%v", space.IsEmpty(), space.Advance)
	}
}

func TestOutlineEmbolden(t *testing.T) {
	var o Outline
	o.MoveTo(0, 0)
	o.LineTo(10, 0)
	o.LineTo(10, 10)
	o.LineTo(0, 10)
	o.Advance = 12

	b := o.Embolden(2, 2)
	got := b.Bounds()
	want := Rect{MinX: -1, MinY: -1, MaxX: 11, MaxY: 11}
	if !rectNear(got, want) {
		t.Errorf("Embolden bounds = %+v, want %+v", got, want)
	}
	if b.Advance != 14 {
		t.Errorf("Advance = %v, want 14", b.Advance)
	}
	// Reversed winding grows the same way.
	var r Outline
	r.MoveTo(0, 0)
	r.LineTo(0, 10)
	r.LineTo(10, 10)
	r.LineTo(10, 0)
	if got := r.Embolden(2, 2).Bounds(); !rectNear(got, want) {
		t.Errorf("reversed Embolden bounds = %+v, want %+v", got, want)
	}
	if o.Bounds() != (Rect{MaxX: 10, MaxY: 10}) {
		t.Error("Embolden modified its receiver")
	}
}

func TestOutlineEmboldenHole(t *testing.T) {
	var o Outline
	o.MoveTo(0, 0)
	o.LineTo(30, 0)
	o.LineTo(30, 30)
	o.LineTo(0, 30)
	// Hole with opposite winding.
	o.MoveTo(10, 10)
	o.LineTo(10, 20)
	o.LineTo(20, 20)
	o.LineTo(20, 10)

	b := o.Embolden(2, 2)
	hole := Outline{Segments: b.Segments[4:]}
	want := Rect{MinX: 11, MinY: 11, MaxX: 19, MaxY: 19}
	if got := hole.Bounds(); !rectNear(got, want) {
		t.Errorf("hole bounds = %+v, want %+v", got, want)
	}
}

func TestMatrix(t *testing.T) {
	m := TranslateMatrix(5, 7).Mul(ScaleMatrix(2, 3))
	x, y := m.Apply(1, 1)
	if x != 7 || y != 10 {
		t.Errorf("Apply = (%v, %v), want (7, 10)", x, y)
	}
	if !m.IsAffine() {
		t.Error("IsAffine() = false")
	}

	sh := ShearMatrix(0.5, 0)
	if x, y := sh.Apply(0, 10); x != 5 || y != 10 {
		t.Errorf("shear Apply = (%v, %v), want (5, 10)", x, y)
	}

	p := Matrix{XX: 1, YY: 1, ZX: 0.01, Z0: 1}
	if x, _ := p.Apply(100, 0); math.Abs(x-50) > 1e-9 {
		t.Errorf("perspective x = %v, want 50", x)
	}
	if p.IsAffine() {
		t.Error("perspective matrix reported affine")
	}
}

func TestOutlineTransform(t *testing.T) {
	var o Outline
	o.MoveTo(0, 0)
	o.CubicTo(1, 0, 2, 1, 2, 2)
	got := o.Translate(10, 20).Bounds()
	want := Rect{MinX: 10, MinY: 20, MaxX: 12, MaxY: 22}
	if got != want {
		t.Errorf("Translate bounds = %+v, want %+v", got, want)
	}
	if end := o.Segments[1].End(); end != (OutlinePoint{2, 2}) {
		t.Errorf("End() = %+v", end)
	}
}

func TestRect(t *testing.T) {
	if !(Rect{}).Empty() || !EmptyRect().Empty() {
		t.Error("zero and EmptyRect should be empty")
	}
	r := EmptyRect().Add(1, 2).Add(3, 5)
	if r != (Rect{1, 2, 3, 5}) {
		t.Errorf("Add = %+v", r)
	}
	u := r.Union(Rect{}).Union(Rect{0, 0, 2, 2})
	if u != (Rect{0, 0, 3, 5}) {
		t.Errorf("Union = %+v", u)
	}
	if r.Width() != 2 || r.Height() != 3 {
		t.Errorf("Width/Height = %v/%v", r.Width(), r.Height())
	}
}

func rectNear(a, b Rect) bool {
	const eps = 1e-6
	return math.Abs(a.MinX-b.MinX) < eps && math.Abs(a.MinY-b.MinY) < eps &&
		math.Abs(a.MaxX-b.MaxX) < eps && math.Abs(a.MaxY-b.MaxY) < eps
}
