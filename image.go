package ass

import (
	"image"
	"iter"

	"github.com/gogpu/ass/internal/raster"
)

// ImageType tells which layer of an event an image belongs to.
type ImageType int

const (
	// ImageCharacter is glyph fill.
	ImageCharacter ImageType = iota
	// ImageOutline is glyph border or an opaque box.
	ImageOutline
	// ImageShadow is the shadow of the border or fill.
	ImageShadow
)

// String returns the image type name.
func (t ImageType) String() string {
	switch t {
	case ImageCharacter:
		return "character"
	case ImageOutline:
		return "outline"
	case ImageShadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// Image is one monochrome coverage bitmap to be blended onto the frame
// with a single color. Images form a linked list in drawing order.
//
// Bitmap is owned by the renderer and may be shared between images and
// frames. It stays valid until the next RenderFrame call on the same
// renderer and must not be modified.
type Image struct {
	W, H   int
	Stride int
	// Bitmap holds H rows of W coverage bytes, Stride bytes apart.
	Bitmap []byte
	// Color is 0xRRGGBBAA where AA is the transparency: 0 is opaque.
	Color uint32
	// DstX and DstY place the bitmap's top-left pixel on the frame.
	DstX, DstY int
	Type       ImageType

	Next *Image
}

func newImage(b *raster.Bitmap, color uint32, typ ImageType) *Image {
	return &Image{
		W:      b.W,
		H:      b.H,
		Stride: b.Stride,
		Bitmap: b.Buf,
		Color:  color,
		DstX:   b.Left,
		DstY:   b.Top,
		Type:   typ,
	}
}

// All iterates the list starting at img.
func (img *Image) All() iter.Seq[*Image] {
	return func(yield func(*Image) bool) {
		for p := img; p != nil; p = p.Next {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of images in the list starting at img.
func (img *Image) Len() int {
	n := 0
	for range img.All() {
		n++
	}
	return n
}

// Bounds returns the frame rectangle covered by img.
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(img.DstX, img.DstY, img.DstX+img.W, img.DstY+img.H)
}

// cropTo limits img to r. It reports false when nothing is left.
func (img *Image) cropTo(r image.Rectangle) bool {
	v := img.Bounds().Intersect(r)
	if v.Empty() {
		return false
	}
	if v == img.Bounds() {
		return true
	}
	off := (v.Min.Y-img.DstY)*img.Stride + (v.Min.X - img.DstX)
	img.Bitmap = img.Bitmap[off : off+(v.Dy()-1)*img.Stride+v.Dx()]
	img.W, img.H = v.Dx(), v.Dy()
	img.DstX, img.DstY = v.Min.X, v.Min.Y
	return true
}

// Alpha returns the coverage bitmap as an image.Alpha sharing its buffer.
func (img *Image) Alpha() *image.Alpha {
	return &image.Alpha{
		Pix:    img.Bitmap,
		Stride: img.Stride,
		Rect:   img.Bounds(),
	}
}

// Composite blends every image of the list onto dst with source-over, in
// list order. dst holds premultiplied colors.
func Composite(dst *image.RGBA, list *Image) {
	for img := range list.All() {
		blend(dst, img)
	}
}

func blend(dst *image.RGBA, img *Image) {
	opacity := 255 - img.Color&0xFF
	if opacity == 0 {
		return
	}
	cr := img.Color >> 24
	cg := img.Color >> 16 & 0xFF
	cb := img.Color >> 8 & 0xFF
	r := img.Bounds().Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := img.Bitmap[(y-img.DstY)*img.Stride:]
		for x := r.Min.X; x < r.Max.X; x++ {
			a := uint32(src[x-img.DstX]) * opacity / 255
			if a == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			inv := 255 - a
			p[0] = uint8((cr*a + uint32(p[0])*inv) / 255)
			p[1] = uint8((cg*a + uint32(p[1])*inv) / 255)
			p[2] = uint8((cb*a + uint32(p[2])*inv) / 255)
			p[3] = uint8(a + uint32(p[3])*inv/255)
		}
	}
}
