package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/ass/text"
)

// MaxPixels bounds the area of a single bitmap. Larger outlines are not
// rasterized.
const MaxPixels = 1 << 24

// Fill scan-converts o with the non-zero rule. Contours are closed
// implicitly. It returns nil for empty or oversized outlines.
func Fill(o *text.Outline) *Bitmap {
	if o.IsEmpty() {
		return nil
	}
	bounds := o.Bounds()
	if math.IsNaN(bounds.MinX) || math.IsInf(bounds.MinX, 0) || math.IsInf(bounds.MaxX, 0) ||
		math.IsInf(bounds.MinY, 0) || math.IsInf(bounds.MaxY, 0) {
		return nil
	}
	x0 := int(math.Floor(bounds.MinX))
	y0 := int(math.Floor(bounds.MinY))
	x1 := int(math.Ceil(bounds.MaxX))
	y1 := int(math.Ceil(bounds.MaxY))
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 || w*h > MaxPixels {
		return nil
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	fx := func(x float64) float32 { return float32(x - float64(x0)) }
	fy := func(y float64) float32 { return float32(y - float64(y0)) }

	open := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case text.OutlineOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(fx(p[0].X), fy(p[0].Y))
			open = true
		case text.OutlineOpLineTo:
			z.LineTo(fx(p[0].X), fy(p[0].Y))
		case text.OutlineOpQuadTo:
			z.QuadTo(fx(p[0].X), fy(p[0].Y), fx(p[1].X), fy(p[1].Y))
		case text.OutlineOpCubicTo:
			z.CubeTo(fx(p[0].X), fy(p[0].Y), fx(p[1].X), fy(p[1].Y), fx(p[2].X), fy(p[2].Y))
		}
	}
	if open {
		z.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return &Bitmap{Left: x0, Top: y0, W: w, H: h, Stride: dst.Stride, Buf: dst.Pix}
}

// Rect returns an outline of the rectangle (x0, y0)-(x1, y1), wound like
// font contours.
func Rect(x0, y0, x1, y1 float64) *text.Outline {
	var o text.Outline
	o.MoveTo(x0, y0)
	o.LineTo(x1, y0)
	o.LineTo(x1, y1)
	o.LineTo(x0, y1)
	return &o
}
