package raster

import "image"

// Bitmap is an 8-bit coverage image positioned at (Left, Top) in pixels.
type Bitmap struct {
	Left, Top int
	W, H      int
	Stride    int
	Buf       []byte
}

// NewBitmap allocates a zeroed bitmap.
func NewBitmap(left, top, w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Bitmap{Left: left, Top: top, W: w, H: h, Stride: w, Buf: make([]byte, w*h)}
}

// Empty reports whether b has no pixels.
func (b *Bitmap) Empty() bool {
	return b == nil || b.W == 0 || b.H == 0
}

// Bounds returns the pixel rectangle covered by b.
func (b *Bitmap) Bounds() image.Rectangle {
	if b == nil {
		return image.Rectangle{}
	}
	return image.Rect(b.Left, b.Top, b.Left+b.W, b.Top+b.H)
}

// At returns the coverage at absolute pixel (x, y), 0 outside.
func (b *Bitmap) At(x, y int) byte {
	if b.Empty() {
		return 0
	}
	x -= b.Left
	y -= b.Top
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return 0
	}
	return b.Buf[y*b.Stride+x]
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	if b == nil {
		return nil
	}
	c := NewBitmap(b.Left, b.Top, b.W, b.H)
	for y := range b.H {
		copy(c.Buf[y*c.Stride:y*c.Stride+b.W], b.Buf[y*b.Stride:])
	}
	return c
}

// Translate moves b by whole pixels.
func (b *Bitmap) Translate(dx, dy int) {
	b.Left += dx
	b.Top += dy
}

// Pad returns a copy of b with n transparent pixels added on each side.
func (b *Bitmap) Pad(nx, ny int) *Bitmap {
	out := NewBitmap(b.Left-nx, b.Top-ny, b.W+2*nx, b.H+2*ny)
	for y := range b.H {
		copy(out.Buf[(y+ny)*out.Stride+nx:], b.Buf[y*b.Stride:y*b.Stride+b.W])
	}
	return out
}

// Sum returns the total coverage, useful as a cheap content fingerprint.
func (b *Bitmap) Sum() uint64 {
	var s uint64
	if b.Empty() {
		return 0
	}
	for y := range b.H {
		for _, v := range b.Buf[y*b.Stride : y*b.Stride+b.W] {
			s += uint64(v)
		}
	}
	return s
}

// Union returns max(a, b) over the union of both bounds. Either may be
// nil.
func Union(a, b *Bitmap) *Bitmap {
	if a.Empty() {
		return b.Clone()
	}
	if b.Empty() {
		return a.Clone()
	}
	r := a.Bounds().Union(b.Bounds())
	out := NewBitmap(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
	out.maxWith(a)
	out.maxWith(b)
	return out
}

func (b *Bitmap) maxWith(src *Bitmap) {
	r := b.Bounds().Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := b.Buf[(y-b.Top)*b.Stride+(r.Min.X-b.Left):]
		s := src.Buf[(y-src.Top)*src.Stride+(r.Min.X-src.Left):]
		for x := range r.Dx() {
			if s[x] > d[x] {
				d[x] = s[x]
			}
		}
	}
}

// Subtract lowers o by g wherever they overlap, clamping at zero. It
// hollows a border so that a translucent fill does not show the border
// through it.
func Subtract(o, g *Bitmap) {
	if o.Empty() || g.Empty() {
		return
	}
	r := o.Bounds().Intersect(g.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := o.Buf[(y-o.Top)*o.Stride+(r.Min.X-o.Left):]
		s := g.Buf[(y-g.Top)*g.Stride+(r.Min.X-g.Left):]
		for x := range r.Dx() {
			if d[x] > s[x] {
				d[x] -= s[x]
			} else {
				d[x] = 0
			}
		}
	}
}

// Mask returns b multiplied by mask. Pixels outside mask count as 0, or
// as 255 when inverse is set, in which case the mask is inverted too.
func Mask(b, mask *Bitmap, inverse bool) *Bitmap {
	if b.Empty() {
		return nil
	}
	out := b.Clone()
	for y := range out.H {
		row := out.Buf[y*out.Stride : y*out.Stride+out.W]
		for x := range row {
			m := int(mask.At(out.Left+x, out.Top+y))
			if inverse {
				m = 255 - m
			}
			row[x] = byte((int(row[x])*m + 127) / 255)
		}
	}
	return out
}

// Crop returns the part of b inside r as a view sharing b's buffer, or
// nil when they do not overlap.
func Crop(b *Bitmap, r image.Rectangle) *Bitmap {
	if b.Empty() {
		return nil
	}
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil
	}
	off := (r.Min.Y-b.Top)*b.Stride + (r.Min.X - b.Left)
	return &Bitmap{
		Left:   r.Min.X,
		Top:    r.Min.Y,
		W:      r.Dx(),
		H:      r.Dy(),
		Stride: b.Stride,
		Buf:    b.Buf[off : off+(r.Dy()-1)*b.Stride+r.Dx()],
	}
}
