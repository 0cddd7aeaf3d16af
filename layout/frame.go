package layout

// Frame describes the output surface and the script coordinate system.
type Frame struct {
	// Width and Height are the frame size in pixels.
	Width, Height int
	// Margins around the video area, in pixels. Negative margins crop.
	MarginTop, MarginBottom, MarginLeft, MarginRight int
	// UseMargins lets unpositioned events use the margin area.
	UseMargins bool

	PlayResX, PlayResY int
	// PixelAspect is the horizontal glyph stretch; 0 means 1.
	PixelAspect float64

	// LineSpacing is extra space between lines, in frame pixels.
	LineSpacing float64
	// LinePosition lifts bottom-aligned unpositioned events, in percent
	// of the video height.
	LinePosition float64

	// ScaledBorder scales border, shadow and blur with the script
	// resolution.
	ScaledBorder bool
}

// video returns the video rectangle inside the frame.
func (f *Frame) video() (x, y, w, h float64) {
	x = float64(f.MarginLeft)
	y = float64(f.MarginTop)
	w = float64(f.Width - f.MarginLeft - f.MarginRight)
	h = float64(f.Height - f.MarginTop - f.MarginBottom)
	return x, y, w, h
}

func (f *Frame) playRes() (float64, float64) {
	x, y := f.PlayResX, f.PlayResY
	if x <= 0 && y <= 0 {
		x, y = 384, 288
	} else if y <= 0 {
		if x == 1280 {
			y = 1024
		} else {
			y = max(x*3/4, 1)
		}
	} else if x <= 0 {
		if y == 1024 {
			x = 1280
		} else {
			x = max(y*4/3, 1)
		}
	}
	return float64(x), float64(y)
}

// ScaleX returns frame pixels per horizontal script pixel.
func (f *Frame) ScaleX() float64 {
	_, _, w, _ := f.video()
	px, _ := f.playRes()
	return w / px
}

// ScaleY returns frame pixels per vertical script pixel.
func (f *Frame) ScaleY() float64 {
	_, _, _, h := f.video()
	_, py := f.playRes()
	return h / py
}

// Aspect returns the pixel aspect, defaulting to 1.
func (f *Frame) Aspect() float64 {
	if f.PixelAspect <= 0 {
		return 1
	}
	return f.PixelAspect
}

// BorderScale converts script border, shadow and blur sizes to frame
// pixels.
func (f *Frame) BorderScale() float64 {
	if f.ScaledBorder {
		return f.ScaleY()
	}
	return 1
}

// ToFrame maps a script coordinate to frame pixels.
func (f *Frame) ToFrame(x, y float64) (float64, float64) {
	vx, vy, _, _ := f.video()
	return vx + x*f.ScaleX(), vy + y*f.ScaleY()
}
