package layout

import (
	"math"

	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/text"
)

// ClipRect returns a rectangular clip in frame pixels.
func ClipRect(cl *style.Clip, fr *Frame) text.Rect {
	x0, y0 := fr.ToFrame(cl.X0, cl.Y0)
	x1, y1 := fr.ToFrame(cl.X1, cl.Y1)
	return text.Rect{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

// ClipOutline returns the outline of a vector clip in frame pixels. The
// clip scale divides coordinates by 2^(scale-1).
func ClipOutline(cl *style.Clip, fr *Frame) *text.Outline {
	k := math.Ldexp(1, -(max(cl.Scale, 1) - 1))
	o := drawingOutline(cl.Path, k*fr.ScaleX(), k*fr.ScaleY())
	vx, vy, _, _ := fr.video()
	return o.Translate(vx, vy)
}
