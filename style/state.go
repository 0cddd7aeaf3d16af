package style

import (
	"github.com/gogpu/ass/tags"
	"github.com/gogpu/ass/track"
)

// Colour slots.
const (
	Primary = iota
	Secondary
	Outline
	Back
)

// State is the effective style of a run with animated values already
// evaluated. Sizes are in script pixels.
type State struct {
	FontName  string
	FontSize  float64
	Bold      int
	Italic    bool
	Underline bool
	StrikeOut bool

	ScaleX  float64
	ScaleY  float64
	Spacing float64

	RotX, RotY, RotZ float64
	ShearX, ShearY   float64
	Encoding         int

	Colors [4]track.Color

	BorderStyle      int
	BorderX, BorderY float64
	ShadowX, ShadowY float64
	BlurEdges        float64
	Blur             float64

	// Drawing is the \p scale; 0 means text.
	Drawing  int
	Baseline float64
}

// Weight returns the font weight requested by Bold.
func (s *State) Weight() int {
	switch s.Bold {
	case 0:
		return 400
	case 1, -1:
		return 700
	}
	return s.Bold
}

// FromStyle initializes a state from a style record.
func FromStyle(st *track.Style) State {
	return State{
		FontName:    st.FontName,
		FontSize:    st.FontSize,
		Bold:        st.Bold,
		Italic:      st.Italic,
		Underline:   st.Underline,
		StrikeOut:   st.StrikeOut,
		ScaleX:      st.ScaleX,
		ScaleY:      st.ScaleY,
		Spacing:     st.Spacing,
		RotZ:        st.Angle,
		Encoding:    st.Encoding,
		Colors:      [4]track.Color{st.PrimaryColour, st.SecondaryColour, st.OutlineColour, st.BackColour},
		BorderStyle: st.BorderStyle,
		BorderX:     st.Outline,
		BorderY:     st.Outline,
		ShadowX:     st.Shadow,
		ShadowY:     st.Shadow,
		Blur:        st.Blur,
	}
}

const (
	maxBlur      = 100
	maxBlurEdges = 100
)

// apply executes one tag against s. k is the \t interpolation factor; 1
// applies the tag outright. base supplies values for reverting tags.
func (s *State) apply(c *tags.Command, k float64, base *track.Style) {
	lerp := func(dst *float64, v float64) { *dst = tags.Lerp(*dst, v, k) }
	arg := c.Arg(0, 0)
	switch c.Kind {
	case tags.Bold:
		switch {
		case c.Revert:
			s.Bold = base.Bold
		case arg == 1 || arg == 0 || arg >= 100:
			s.Bold = int(arg)
		default:
			s.Bold = base.Bold
		}
	case tags.Italic:
		s.Italic = flag(c, base.Italic)
	case tags.Underline:
		s.Underline = flag(c, base.Underline)
	case tags.StrikeOut:
		s.StrikeOut = flag(c, base.StrikeOut)
	case tags.FontName:
		if c.Revert {
			s.FontName = base.FontName
		} else {
			s.FontName = c.Str
		}
	case tags.FontSize:
		v := base.FontSize
		if !c.Revert {
			v = arg
			if c.Rel {
				v = s.FontSize * (1 + arg/10)
			}
		}
		if v <= 0 {
			v = base.FontSize
		}
		lerp(&s.FontSize, v)
	case tags.ScaleX:
		lerp(&s.ScaleX, percent(c, base.ScaleX))
	case tags.ScaleY:
		lerp(&s.ScaleY, percent(c, base.ScaleY))
	case tags.Scale:
		lerp(&s.ScaleX, percent(c, base.ScaleX))
		lerp(&s.ScaleY, percent(c, base.ScaleY))
	case tags.Spacing:
		lerp(&s.Spacing, value(c, base.Spacing))
	case tags.RotZ:
		lerp(&s.RotZ, value(c, base.Angle))
	case tags.RotX:
		lerp(&s.RotX, value(c, 0))
	case tags.RotY:
		lerp(&s.RotY, value(c, 0))
	case tags.ShearX:
		lerp(&s.ShearX, value(c, 0))
	case tags.ShearY:
		lerp(&s.ShearY, value(c, 0))
	case tags.Encoding:
		s.Encoding = int(value(c, float64(base.Encoding)))
	case tags.Color:
		i := c.Index - 1
		if i < 0 || i > 3 {
			return
		}
		target := c.Color
		if c.Revert {
			target = baseColor(base, i)
		}
		target = s.Colors[i].WithRGB(target)
		s.Colors[i] = tags.LerpColor(s.Colors[i], target, k)
	case tags.Alpha:
		for i := range s.Colors {
			if c.Index != 0 && c.Index-1 != i {
				continue
			}
			a := uint8(arg)
			if c.Revert {
				a = baseColor(base, i).A()
			}
			s.Colors[i] = s.Colors[i].WithAlpha(tags.LerpByte(s.Colors[i].A(), a, k))
		}
	case tags.Border:
		v := nonNegative(value(c, base.Outline))
		lerp(&s.BorderX, v)
		lerp(&s.BorderY, v)
	case tags.BorderX:
		lerp(&s.BorderX, nonNegative(value(c, base.Outline)))
	case tags.BorderY:
		lerp(&s.BorderY, nonNegative(value(c, base.Outline)))
	case tags.Shadow:
		v := nonNegative(value(c, base.Shadow))
		lerp(&s.ShadowX, v)
		lerp(&s.ShadowY, v)
	case tags.ShadowX:
		lerp(&s.ShadowX, value(c, base.Shadow))
	case tags.ShadowY:
		lerp(&s.ShadowY, value(c, base.Shadow))
	case tags.BlurEdges:
		lerp(&s.BlurEdges, clamp(value(c, 0), 0, maxBlurEdges))
	case tags.Blur:
		lerp(&s.Blur, clamp(value(c, base.Blur), 0, maxBlur))
	case tags.Drawing:
		s.Drawing = max(int(value(c, 0)), 0)
	case tags.Baseline:
		s.Baseline = value(c, 0)
	}
}

func baseColor(st *track.Style, i int) track.Color {
	switch i {
	case Primary:
		return st.PrimaryColour
	case Secondary:
		return st.SecondaryColour
	case Outline:
		return st.OutlineColour
	}
	return st.BackColour
}

func flag(c *tags.Command, def bool) bool {
	if c.Revert {
		return def
	}
	return c.Arg(0, 0) != 0
}

func value(c *tags.Command, def float64) float64 {
	if c.Revert || len(c.Args) == 0 {
		return def
	}
	return c.Args[0]
}

func percent(c *tags.Command, def float64) float64 {
	if c.Revert || len(c.Args) == 0 {
		return def
	}
	return nonNegative(c.Args[0] / 100)
}

func nonNegative(v float64) float64 { return max(v, 0) }

func clamp(v, lo, hi float64) float64 { return min(max(v, lo), hi) }
