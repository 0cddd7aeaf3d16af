package style

import "github.com/gogpu/ass/track"

// Override selects which groups of style fields the user override style
// replaces.
type Override uint32

const (
	// OverrideStyle is shorthand for FontName, FontSizeFields, Colors,
	// Border and Attributes.
	OverrideStyle Override = 1 << iota
	// OverrideSelectiveFontScale applies the global font scale only to
	// events that look like dialogue.
	OverrideSelectiveFontScale
	OverrideFontSizeFields
	OverrideFontName
	OverrideColors
	OverrideAttributes
	OverrideBorder
	OverrideAlignment
	OverrideMargins
	// OverrideFullStyle replaces the whole style, even on positioned
	// events.
	OverrideFullStyle
	OverrideJustify
	OverrideBlur

	// OverrideDefault disables selective overrides.
	OverrideDefault Override = 0
)

// userResY is the script height the user override style is authored for.
const userResY = 288.0

// Apply merges the user style into base according to bits. explicit marks
// events carrying positioning, clipping, drawing or rotation tags; only
// OverrideFullStyle touches those.
func Apply(base, user *track.Style, bits Override, explicit bool, playResY int) track.Style {
	out := *base
	if bits&OverrideFullStyle != 0 {
		out = *user
		out.Name = base.Name
		fillEmpty(&out, base)
	}
	if explicit {
		return out
	}
	if bits&OverrideStyle != 0 {
		bits |= OverrideFontName | OverrideFontSizeFields | OverrideColors |
			OverrideBorder | OverrideAttributes
	}
	scale := 1.0
	if playResY > 0 {
		scale = float64(playResY) / userResY
	}
	if bits&OverrideFontSizeFields != 0 {
		out.FontSize = user.FontSize * scale
		out.Spacing = user.Spacing * scale
		out.ScaleX = user.ScaleX
		out.ScaleY = user.ScaleY
	}
	if bits&OverrideFontName != 0 {
		out.FontName = user.FontName
		out.TreatFontNameAsPattern = user.TreatFontNameAsPattern
	}
	if bits&OverrideColors != 0 {
		out.PrimaryColour = user.PrimaryColour
		out.SecondaryColour = user.SecondaryColour
		out.OutlineColour = user.OutlineColour
		out.BackColour = user.BackColour
	}
	if bits&OverrideAttributes != 0 {
		out.Bold = user.Bold
		out.Italic = user.Italic
		out.Underline = user.Underline
		out.StrikeOut = user.StrikeOut
	}
	if bits&OverrideBorder != 0 {
		out.BorderStyle = user.BorderStyle
		out.Outline = user.Outline * scale
		out.Shadow = user.Shadow * scale
	}
	if bits&OverrideAlignment != 0 {
		out.Alignment = user.Alignment
	}
	if bits&OverrideJustify != 0 {
		out.Justify = user.Justify
	}
	if bits&OverrideMargins != 0 {
		out.MarginL = user.MarginL
		out.MarginR = user.MarginR
		out.MarginV = user.MarginV
	}
	if bits&OverrideBlur != 0 {
		out.Blur = user.Blur
	}
	fillEmpty(&out, base)
	return out
}

// fillEmpty restores fields an incomplete user style left unset.
func fillEmpty(s, base *track.Style) {
	if s.FontName == "" {
		s.FontName = base.FontName
	}
	if s.FontSize <= 0 {
		s.FontSize = base.FontSize
	}
	if s.ScaleX == 0 && s.ScaleY == 0 {
		s.ScaleX, s.ScaleY = base.ScaleX, base.ScaleY
	}
	if s.Alignment == 0 {
		s.Alignment = base.Alignment
	}
}
