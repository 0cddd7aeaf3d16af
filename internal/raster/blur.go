package raster

import (
	"math"
	"sync"
)

// Temporary row/column buffers are reused across blurs.
var lanePool = sync.Pool{
	New: func() any {
		b := make([]uint32, 0, 1024)
		return &b
	},
}

func getLane(n int) *[]uint32 {
	p := lanePool.Get().(*[]uint32)
	if cap(*p) < n {
		*p = make([]uint32, n)
	}
	*p = (*p)[:n]
	return p
}

// boxSizes returns the widths of three box blurs whose composition
// approximates a Gaussian with the given sigma.
func boxSizes(sigma float64) [3]int {
	const n = 3
	ideal := math.Sqrt(12*sigma*sigma/n + 1)
	wl := int(math.Floor(ideal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2
	m := int(math.Round((12*sigma*sigma - n*float64(wl*wl) - 4*n*float64(wl) - 3*n) / (-4*float64(wl) - 4)))
	var sizes [3]int
	for i := range sizes {
		if i < m {
			sizes[i] = wl
		} else {
			sizes[i] = wu
		}
	}
	return sizes
}

// Blur applies a Gaussian approximation with standard deviations sx and
// sy in pixels. The result is padded so that no coverage is clipped.
func Blur(b *Bitmap, sx, sy float64) *Bitmap {
	if b.Empty() || (sx <= 0 && sy <= 0) {
		return b.Clone()
	}
	var rx, ry [3]int
	padX, padY := 0, 0
	if sx > 0 {
		for i, w := range boxSizes(sx) {
			rx[i] = (w - 1) / 2
			padX += rx[i]
		}
	}
	if sy > 0 {
		for i, w := range boxSizes(sy) {
			ry[i] = (w - 1) / 2
			padY += ry[i]
		}
	}
	out := b.Pad(padX, padY)
	if out.W*out.H > MaxPixels {
		return b.Clone()
	}
	for i := range 3 {
		if rx[i] > 0 {
			boxRows(out, rx[i])
		}
		if ry[i] > 0 {
			boxCols(out, ry[i])
		}
	}
	return out
}

// boxRows blurs every row of b with a box of radius r in place.
func boxRows(b *Bitmap, r int) {
	lane := getLane(b.W)
	defer lanePool.Put(lane)
	for y := range b.H {
		row := b.Buf[y*b.Stride : y*b.Stride+b.W]
		for x, v := range row {
			(*lane)[x] = uint32(v)
		}
		boxLane(*lane, r, func(i int, v byte) { row[i] = v })
	}
}

// boxCols blurs every column of b with a box of radius r in place.
func boxCols(b *Bitmap, r int) {
	lane := getLane(b.H)
	defer lanePool.Put(lane)
	for x := range b.W {
		for y := range b.H {
			(*lane)[y] = uint32(b.Buf[y*b.Stride+x])
		}
		boxLane(*lane, r, func(i int, v byte) { b.Buf[i*b.Stride+x] = v })
	}
}

// boxLane runs a sliding box sum over src, treating values outside as
// zero, and stores the rounded mean of each window through set.
func boxLane(src []uint32, r int, set func(int, byte)) {
	n := len(src)
	w := uint32(2*r + 1)
	var sum uint32
	for i := 0; i <= r && i < n; i++ {
		sum += src[i]
	}
	for i := range n {
		set(i, byte((sum+w/2)/w))
		if j := i + r + 1; j < n {
			sum += src[j]
		}
		if j := i - r; j >= 0 {
			sum -= src[j]
		}
	}
}

// BoxBlur3x3 applies n passes of the [1 2 1] x [1 2 1] kernel used for
// edge softening. Each pass grows the bitmap by one pixel per side.
func BoxBlur3x3(b *Bitmap, n int) *Bitmap {
	if b.Empty() || n <= 0 {
		return b.Clone()
	}
	out := b.Pad(n, n)
	lane := getLane(max(out.W, out.H))
	defer lanePool.Put(lane)
	for range n {
		for y := range out.H {
			row := out.Buf[y*out.Stride : y*out.Stride+out.W]
			for x, v := range row {
				(*lane)[x] = uint32(v)
			}
			tent(*lane, out.W, func(i int, v byte) { row[i] = v })
		}
		for x := range out.W {
			for y := range out.H {
				(*lane)[y] = uint32(out.Buf[y*out.Stride+x])
			}
			tent(*lane, out.H, func(i int, v byte) { out.Buf[i*out.Stride+x] = v })
		}
	}
	return out
}

func tent(src []uint32, n int, set func(int, byte)) {
	for i := range n {
		s := 2 * src[i]
		if i > 0 {
			s += src[i-1]
		}
		if i+1 < n {
			s += src[i+1]
		}
		set(i, byte((s+2)/4))
	}
}
