package tags

// Kind identifies an override tag.
type Kind uint8

const (
	KindUnknown Kind = iota

	Bold      // \b: Args[0] weight, 0/1 or 100..900
	Italic    // \i
	Underline // \u
	StrikeOut // \s
	FontName  // \fn: Str
	FontSize  // \fs: Args[0], Rel for \fs+ and \fs-
	ScaleX    // \fscx: percent
	ScaleY    // \fscy: percent
	Scale     // \fsc: percent for both axes
	Spacing   // \fsp
	RotZ      // \frz, \fr: degrees
	RotX      // \frx
	RotY      // \fry
	ShearX    // \fax
	ShearY    // \fay
	Encoding  // \fe
	Color     // \c, \1c..\4c: Index 1..4, Color
	Alpha     // \alpha (Index 0), \1a..\4a: Args[0] 0..255
	Align     // \an, \a: Args[0] numpad alignment
	WrapStyle // \q
	Reset     // \r: Str style name, empty for the event's style
	Pos       // \pos(x,y)
	Move      // \move(x1,y1,x2,y2[,t1,t2])
	Origin    // \org(x,y)
	Fade      // \fad(in,out) with two Args, \fade(a1,a2,a3,t1,t2,t3,t4) with seven
	Transform // \t([t1,t2,][accel,]tags): Args t1,t2,accel; Sub
	Clip      // \clip: four Args for a rectangle, or Str drawing and Args[0] scale
	IClip     // \iclip: as Clip, inverted
	Karaoke   // \k, \K, \kf, \ko: Index is the KaraokeMode, Args[0] duration ms
	KaraokeT  // \kt: Args[0] absolute syllable start ms
	Border    // \bord
	BorderX   // \xbord
	BorderY   // \ybord
	Shadow    // \shad
	ShadowX   // \xshad
	ShadowY   // \yshad
	BlurEdges // \be
	Blur      // \blur
	Drawing   // \p: Args[0] drawing scale, 0 leaves drawing mode
	Baseline  // \pbo

	numKinds
)

// KaraokeMode distinguishes the karaoke effects.
type KaraokeMode int

const (
	KaraokeSwitch  KaraokeMode = iota // \k: fill switches at syllable start
	KaraokeFill                       // \K, \kf: fill sweeps left to right
	KaraokeOutline                    // \ko: outline appears at syllable start
)

var kindNames = [numKinds]string{
	KindUnknown: "?",
	Bold:        "b", Italic: "i", Underline: "u", StrikeOut: "s",
	FontName: "fn", FontSize: "fs", ScaleX: "fscx", ScaleY: "fscy", Scale: "fsc",
	Spacing: "fsp", RotZ: "frz", RotX: "frx", RotY: "fry", ShearX: "fax", ShearY: "fay",
	Encoding: "fe", Color: "c", Alpha: "alpha", Align: "an", WrapStyle: "q", Reset: "r",
	Pos: "pos", Move: "move", Origin: "org", Fade: "fade", Transform: "t",
	Clip: "clip", IClip: "iclip", Karaoke: "k", KaraokeT: "kt",
	Border: "bord", BorderX: "xbord", BorderY: "ybord",
	Shadow: "shad", ShadowX: "xshad", ShadowY: "yshad",
	BlurEdges: "be", Blur: "blur", Drawing: "p", Baseline: "pbo",
}

// String returns the canonical tag name without the backslash.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "?"
}

// Animatable reports whether \t may interpolate the tag.
func (k Kind) Animatable() bool {
	switch k {
	case FontSize, ScaleX, ScaleY, Scale, Spacing, RotZ, RotX, RotY, ShearX, ShearY,
		Color, Alpha, Border, BorderX, BorderY, Shadow, ShadowX, ShadowY,
		BlurEdges, Blur, Clip, IClip:
		return true
	}
	return false
}

// EventWide reports whether the tag affects the whole event rather than
// the text that follows it.
func (k Kind) EventWide() bool {
	switch k {
	case Align, WrapStyle, Pos, Move, Origin, Fade, Clip, IClip:
		return true
	}
	return false
}

// Explicit reports whether the tag marks an event as positioned or
// transformed rather than plain dialogue.
func (k Kind) Explicit() bool {
	switch k {
	case Pos, Move, Clip, IClip, Origin, Drawing, Baseline, RotZ, RotX, RotY:
		return true
	}
	return false
}
