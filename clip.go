package ass

import (
	"image"
	"math"

	"github.com/gogpu/ass/internal/raster"
	"github.com/gogpu/ass/layout"
	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/track"
)

// everything is the rectangle that does not restrict an emit.
var everything = image.Rect(math.MinInt32, math.MinInt32, math.MaxInt32, math.MaxInt32)

// clipArea is the visible region of an event: a union of disjoint
// rectangles inside the frame, optionally multiplied by a vector mask.
type clipArea struct {
	rects   []image.Rectangle
	mask    *raster.Bitmap
	inverse bool
	// hidden is set when nothing of the event can be visible.
	hidden bool
}

func clipFor(res *style.Resolved, fr *layout.Frame) *clipArea {
	frame := image.Rect(0, 0, fr.Width, fr.Height)
	cl := &clipArea{rects: []image.Rectangle{frame}}
	switch res.Clip.Mode {
	case style.ClipRect:
		rc := layout.ClipRect(&res.Clip, fr)
		r := image.Rect(
			int(math.Round(rc.MinX)), int(math.Round(rc.MinY)),
			int(math.Round(rc.MaxX)), int(math.Round(rc.MaxY)))
		if res.Clip.Inverse {
			cl.rects = outside(frame, r)
		} else {
			cl.rects = []image.Rectangle{frame.Intersect(r)}
		}
	case style.ClipVector:
		cl.mask = raster.Fill(layout.ClipOutline(&res.Clip, fr))
		cl.inverse = res.Clip.Inverse
		if cl.mask == nil && !cl.inverse {
			cl.hidden = true
		}
	}
	n := 0
	for _, r := range cl.rects {
		if !r.Empty() {
			cl.rects[n] = r
			n++
		}
	}
	cl.rects = cl.rects[:n]
	if n == 0 {
		cl.hidden = true
	}
	return cl
}

// outside splits frame minus r into at most four rectangles: the bands
// above and below r, and the parts left and right of it.
func outside(frame, r image.Rectangle) []image.Rectangle {
	r = r.Intersect(frame)
	if r.Empty() {
		return []image.Rectangle{frame}
	}
	return []image.Rectangle{
		image.Rect(frame.Min.X, frame.Min.Y, frame.Max.X, r.Min.Y),
		image.Rect(frame.Min.X, r.Max.Y, frame.Max.X, frame.Max.Y),
		image.Rect(frame.Min.X, r.Min.Y, r.Min.X, r.Max.Y),
		image.Rect(r.Max.X, r.Min.Y, frame.Max.X, r.Max.Y),
	}
}

// emit appends the visible parts of b, placed at (dx, dy) and limited to
// within, as images of the given colour. Fully transparent colours emit
// nothing.
func (cl *clipArea) emit(dst *[]*Image, b *raster.Bitmap, dx, dy int, color track.Color, typ ImageType, within image.Rectangle) {
	if b.Empty() || cl.hidden || color.A() == 0xFF {
		return
	}
	view := *b
	view.Translate(dx, dy)
	src := &view
	if cl.mask != nil {
		src = raster.Mask(src, cl.mask, cl.inverse)
	}
	for _, r := range cl.rects {
		if part := raster.Crop(src, r.Intersect(within)); part != nil {
			*dst = append(*dst, newImage(part, uint32(color), typ))
		}
	}
}
