package raster

import "math"

// Shift moves b by (dx, dy) pixels. The whole part changes the position,
// the fractional part is resampled bilinearly into a bitmap one pixel
// larger in each shifted direction.
func Shift(b *Bitmap, dx, dy float64) *Bitmap {
	if b.Empty() {
		return nil
	}
	ix, iy := math.Floor(dx), math.Floor(dy)
	fx, fy := dx-ix, dy-iy
	// Quantise to 1/64 px so equal requests produce equal bitmaps.
	wx := int(math.Round(fx * 64))
	wy := int(math.Round(fy * 64))
	if wx == 64 {
		wx, ix = 0, ix+1
	}
	if wy == 64 {
		wy, iy = 0, iy+1
	}

	var out *Bitmap
	if wx == 0 && wy == 0 {
		out = b.Clone()
	} else {
		ex, ey := 0, 0
		if wx > 0 {
			ex = 1
		}
		if wy > 0 {
			ey = 1
		}
		out = NewBitmap(b.Left, b.Top, b.W+ex, b.H+ey)
		for y := range out.H {
			for x := range out.W {
				p00 := int(b.At(b.Left+x, b.Top+y))
				p10 := int(b.At(b.Left+x-1, b.Top+y))
				p01 := int(b.At(b.Left+x, b.Top+y-1))
				p11 := int(b.At(b.Left+x-1, b.Top+y-1))
				v := p00*(64-wx)*(64-wy) + p10*wx*(64-wy) + p01*(64-wx)*wy + p11*wx*wy
				out.Buf[y*out.Stride+x] = byte((v + 2048) >> 12)
			}
		}
	}
	out.Translate(int(ix), int(iy))
	return out
}
