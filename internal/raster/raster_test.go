package raster

import (
	"image"
	"testing"

	"github.com/gogpu/ass/text"
)

func TestFillRect(t *testing.T) {
	b := Fill(Rect(2, 3, 12, 8))
	if b.Empty() {
		t.Fatal("Fill returned empty bitmap")
	}
	if got, want := b.Bounds(), image.Rect(2, 3, 12, 8); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := b.At(5, 5); got != 255 {
		t.Errorf("At(5,5) = %d, want 255", got)
	}
	if got := b.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %d, want 0", got)
	}
	if got, want := b.Sum(), uint64(10*5*255); got != want {
		t.Errorf("Sum() = %d, want %d", got, want)
	}
}

func TestFillHalfPixel(t *testing.T) {
	b := Fill(Rect(0, 0, 1.5, 1))
	if got := b.At(1, 0); got < 120 || got > 135 {
		t.Errorf("half covered pixel = %d, want about 128", got)
	}
}

func TestFillEmpty(t *testing.T) {
	if b := Fill(nil); b != nil {
		t.Errorf("Fill(nil) = %v, want nil", b)
	}
	if b := Fill(&text.Outline{}); b != nil {
		t.Errorf("Fill(empty) = %v, want nil", b)
	}
	if b := Fill(Rect(0, 0, 1e5, 1e5)); b != nil {
		t.Error("oversized outline should not be rasterized")
	}
}

func TestUnion(t *testing.T) {
	a := Fill(Rect(0, 0, 4, 4))
	b := Fill(Rect(2, 2, 6, 6))
	u := Union(a, b)
	if got, want := u.Bounds(), image.Rect(0, 0, 6, 6); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	tests := []struct {
		x, y int
		want byte
	}{
		{0, 0, 255},
		{3, 3, 255},
		{5, 5, 255},
		{5, 0, 0},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := u.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	if got := Union(nil, a); got.Sum() != a.Sum() {
		t.Error("Union(nil, a) should equal a")
	}
}

func TestSubtract(t *testing.T) {
	o := Fill(Rect(0, 0, 6, 6))
	g := Fill(Rect(1, 1, 5, 5))
	Subtract(o, g)
	if got := o.At(3, 3); got != 0 {
		t.Errorf("inside = %d, want 0", got)
	}
	if got := o.At(0, 3); got != 255 {
		t.Errorf("ring = %d, want 255", got)
	}
}

func TestMask(t *testing.T) {
	b := Fill(Rect(0, 0, 4, 4))
	m := Fill(Rect(0, 0, 2, 4))

	in := Mask(b, m, false)
	if in.At(1, 1) != 255 || in.At(3, 1) != 0 {
		t.Errorf("Mask: got %d/%d, want 255/0", in.At(1, 1), in.At(3, 1))
	}
	out := Mask(b, m, true)
	if out.At(1, 1) != 0 || out.At(3, 1) != 255 {
		t.Errorf("inverse Mask: got %d/%d, want 0/255", out.At(1, 1), out.At(3, 1))
	}
	if b.At(3, 1) != 255 {
		t.Error("Mask modified its input")
	}
}

func TestCrop(t *testing.T) {
	b := Fill(Rect(0, 0, 8, 8))
	c := Crop(b, image.Rect(2, 2, 4, 20))
	if got, want := c.Bounds(), image.Rect(2, 2, 4, 8); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got, want := c.Sum(), uint64(2*6*255); got != want {
		t.Errorf("Sum() = %d, want %d", got, want)
	}
	if Crop(b, image.Rect(20, 20, 30, 30)) != nil {
		t.Error("disjoint crop should be nil")
	}
}

func TestPadAndClone(t *testing.T) {
	b := Fill(Rect(0, 0, 3, 2))
	p := b.Pad(2, 1)
	if got, want := p.Bounds(), image.Rect(-2, -1, 5, 3); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if p.Sum() != b.Sum() {
		t.Errorf("Pad changed coverage: %d != %d", p.Sum(), b.Sum())
	}
	c := Crop(p, image.Rect(0, 0, 3, 2)).Clone()
	if c.Stride != c.W || c.Sum() != b.Sum() {
		t.Errorf("Clone of view: stride %d, sum %d", c.Stride, c.Sum())
	}
}

func TestStrokeRing(t *testing.T) {
	o := Rect(10, 10, 30, 30)
	ring := Fill(Stroke(o, 2, 2))
	if ring.Empty() {
		t.Fatal("empty stroke")
	}
	if got, want := ring.Bounds(), image.Rect(8, 8, 32, 32); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	tests := []struct {
		name string
		x, y int
		want byte
	}{
		{"center", 20, 20, 0},
		{"left edge outside", 8, 20, 255},
		{"left edge inside", 11, 20, 255},
		{"far outside", 5, 20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ring.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
	// A round join only clips the corner pixel of the bounding box.
	if got := ring.At(8, 8); got >= 128 {
		t.Errorf("corner coverage = %d, want round join", got)
	}
}

func TestStrokeReversedContour(t *testing.T) {
	var o text.Outline
	o.MoveTo(10, 10)
	o.LineTo(10, 30)
	o.LineTo(30, 30)
	o.LineTo(30, 10)
	a := Fill(Stroke(&o, 2, 2))
	b := Fill(Stroke(Rect(10, 10, 30, 30), 2, 2))
	if a.Bounds() != b.Bounds() {
		t.Fatalf("bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	if a.At(20, 20) != 0 || a.At(9, 20) != 255 {
		t.Errorf("reversed ring: center %d edge %d", a.At(20, 20), a.At(9, 20))
	}
}

func TestStrokeAnisotropic(t *testing.T) {
	ring := Fill(Stroke(Rect(10, 10, 30, 30), 4, 1))
	if got, want := ring.Bounds(), image.Rect(6, 9, 34, 31); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestStrokeDegenerate(t *testing.T) {
	if Stroke(nil, 2, 2) != nil {
		t.Error("nil outline should give nil")
	}
	if Stroke(Rect(0, 0, 4, 4), 0, 0) != nil {
		t.Error("zero width should give nil")
	}
	var dot text.Outline
	dot.MoveTo(10, 10)
	b := Fill(Stroke(&dot, 3, 3))
	if b.Empty() || b.At(10, 10) != 255 {
		t.Error("single point should stroke to a disc")
	}
}

func TestStrokeCurve(t *testing.T) {
	var o text.Outline
	o.MoveTo(0, 10)
	o.QuadTo(10, -10, 20, 10)
	o.CubicTo(20, 20, 0, 20, 0, 10)
	if b := Fill(Stroke(&o, 1, 1)); b.Empty() {
		t.Error("curved outline should produce a ring")
	}
}

func TestBoxSizes(t *testing.T) {
	tests := []struct {
		sigma float64
		want  [3]int
	}{
		{0.3, [3]int{1, 1, 1}},
		{1, [3]int{1, 1, 3}},
		{2, [3]int{3, 3, 5}},
	}
	for _, tt := range tests {
		if got := boxSizes(tt.sigma); got != tt.want {
			t.Errorf("boxSizes(%v) = %v, want %v", tt.sigma, got, tt.want)
		}
	}
}

func TestBlur(t *testing.T) {
	b := Fill(Rect(10, 10, 20, 20))
	out := Blur(b, 2, 2)
	if !out.Bounds().In(image.Rect(-10, -10, 40, 40)) || !b.Bounds().In(out.Bounds()) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if got := out.At(15, 15); got < 200 {
		t.Errorf("center = %d, want mostly opaque", got)
	}
	if got := out.At(9, 15); got == 0 || got == 255 {
		t.Errorf("edge = %d, want partial coverage", got)
	}
	in, got := float64(b.Sum()), float64(out.Sum())
	if got < in*0.95 || got > in*1.05 {
		t.Errorf("Sum() = %v, want about %v", got, in)
	}
	again := Blur(b, 2, 2)
	for i := range out.Buf {
		if out.Buf[i] != again.Buf[i] {
			t.Fatal("Blur is not deterministic")
		}
	}
	if Blur(b, 0, 0).Sum() != b.Sum() {
		t.Error("zero blur should copy")
	}
}

func TestBoxBlur3x3(t *testing.T) {
	b := Fill(Rect(0, 0, 1, 1))
	out := BoxBlur3x3(b, 1)
	if got, want := out.Bounds(), image.Rect(-1, -1, 2, 2); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	// 255 * 2/4 * 2/4
	if got := out.At(0, 0); got < 63 || got > 65 {
		t.Errorf("center = %d, want 64", got)
	}
	if got := out.At(-1, -1); got < 15 || got > 17 {
		t.Errorf("corner = %d, want 16", got)
	}
}

func TestShift(t *testing.T) {
	b := Fill(Rect(0, 0, 2, 2))
	whole := Shift(b, 3, -1)
	if got, want := whole.Bounds(), image.Rect(3, -1, 5, 1); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	half := Shift(b, 0.5, 0)
	if got, want := half.Bounds(), image.Rect(0, 0, 3, 2); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := half.At(0, 0); got < 126 || got > 129 {
		t.Errorf("left = %d, want about 128", got)
	}
	if got := half.At(1, 0); got != 255 {
		t.Errorf("middle = %d, want 255", got)
	}
}
