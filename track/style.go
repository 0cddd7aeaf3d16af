package track

// Border styles.
const (
	BorderOutline    = 1 // outline plus drop shadow
	BorderOpaqueBox  = 3 // opaque box behind each line
	BorderOpaqueBox4 = 4 // one opaque box behind the whole event
)

// Justification values for Style.Justify.
const (
	JustifyAuto   = 0
	JustifyLeft   = 1
	JustifyCenter = 2
	JustifyRight  = 3
)

// Style is a named formatting template referenced by events.
//
// ScaleX and ScaleY are fractions (1 = 100%). Alignment uses numpad
// layout (1 bottom-left .. 9 top-right). Bold is a font weight, with 1
// meaning bold (700) and 0 regular.
type Style struct {
	Name     string
	FontName string
	FontSize float64

	PrimaryColour   Color
	SecondaryColour Color
	OutlineColour   Color
	BackColour      Color

	Bold      int
	Italic    bool
	Underline bool
	StrikeOut bool

	ScaleX  float64
	ScaleY  float64
	Spacing float64
	Angle   float64

	BorderStyle int
	Outline     float64
	Shadow      float64
	Alignment   int
	Justify     int

	MarginL  int
	MarginR  int
	MarginV  int
	Encoding int
	Blur     float64

	// TreatFontNameAsPattern is carried for parsers that set it; font
	// lookup always matches by family name.
	TreatFontNameAsPattern bool
}

// DefaultStyle returns the style VSFilter uses when a script defines none:
// 18pt Arial, white fill, black border 2, shadow 2, bottom center.
func DefaultStyle(name string) Style {
	return Style{
		Name:            name,
		FontName:        "Arial",
		FontSize:        18,
		PrimaryColour:   RGBA(0xFF, 0xFF, 0xFF, 0),
		SecondaryColour: RGBA(0xFF, 0x00, 0x00, 0),
		OutlineColour:   RGBA(0, 0, 0, 0),
		BackColour:      RGBA(0, 0, 0, 0x80),
		Bold:            1,
		ScaleX:          1,
		ScaleY:          1,
		BorderStyle:     BorderOutline,
		Outline:         2,
		Shadow:          2,
		Alignment:       2,
		MarginL:         20,
		MarginR:         20,
		MarginV:         20,
		Encoding:        1,
	}
}

// Weight maps Bold to a CSS-like font weight.
func (s *Style) Weight() int {
	switch s.Bold {
	case 0:
		return 400
	case 1, -1:
		return 700
	}
	return s.Bold
}
