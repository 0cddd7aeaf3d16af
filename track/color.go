package track

import (
	"strconv"
	"strings"
)

// Color is a packed 0xRRGGBBAA value. As in ASS scripts, the alpha byte is
// transparency: 0x00 is opaque and 0xFF fully transparent.
type Color uint32

// RGBA packs the components into a Color. a is transparency.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 24) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 16) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c >> 8) }

// A returns the transparency component.
func (c Color) A() uint8 { return uint8(c) }

// WithAlpha returns c with its transparency replaced.
func (c Color) WithAlpha(a uint8) Color { return c&^0xFF | Color(a) }

// WithRGB returns c with its color replaced and its transparency kept.
func (c Color) WithRGB(rgb Color) Color { return rgb&^0xFF | c&0xFF }

// ParseColor decodes an ASS color literal such as "&H00FFFFFF&",
// "&HFFFFFF", "H80" or a decimal number. The literal is read as
// 0xAABBGGRR and converted to RRGGBBAA. Malformed input yields 0 and
// false; trailing garbage after the hex digits is ignored.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "&")
	base := 10
	if len(s) > 0 && (s[0] == 'H' || s[0] == 'h') {
		s = s[1:]
		base = 16
	}
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		// Overlong literals saturate the way VSFilter does.
		v = 0xFFFFFFFF
	}
	abgr := uint32(v)
	return Color(abgr&0xFF<<24 | abgr>>8&0xFF<<16 | abgr>>16&0xFF<<8 | abgr>>24), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		return true
	}
	return false
}
