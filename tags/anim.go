package tags

import (
	"math"
	"strings"

	"github.com/gogpu/ass/track"
)

// Progress returns the interpolation factor of a \t command at time t
// (ms since event start). \t without times spans the whole event.
func Progress(c *Command, t, duration int64) float64 {
	t1, t2, accel := c.Arg(0, 0), c.Arg(1, 0), c.Arg(2, 1)
	if t1 == 0 && t2 == 0 {
		t2 = float64(duration)
	}
	dt := t2 - t1
	rel := float64(t) - t1
	switch {
	case rel <= 0:
		return 0
	case rel >= dt:
		return 1
	}
	return math.Pow(rel/dt, accel)
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b, k float64) float64 { return a + (b-a)*k }

// LerpByte interpolates one colour channel.
func LerpByte(a, b uint8, k float64) uint8 {
	return uint8(math.Round(Lerp(float64(a), float64(b), k)))
}

// LerpColor interpolates every channel of two colours.
func LerpColor(a, b track.Color, k float64) track.Color {
	return track.RGBA(
		LerpByte(a.R(), b.R(), k),
		LerpByte(a.G(), b.G(), k),
		LerpByte(a.B(), b.B(), k),
		LerpByte(a.A(), b.A(), k),
	)
}

// MoveAt evaluates a \move command at time t.
func MoveAt(c *Command, t, duration int64) (x, y float64) {
	x1, y1, x2, y2 := c.Args[0], c.Args[1], c.Args[2], c.Args[3]
	t1, t2 := c.Arg(4, 0), c.Arg(5, 0)
	if t1 <= 0 && t2 <= 0 {
		t1, t2 = 0, float64(duration)
	}
	var k float64
	switch tt := float64(t); {
	case tt <= t1:
		k = 0
	case tt >= t2:
		k = 1
	default:
		k = (tt - t1) / (t2 - t1)
	}
	return Lerp(x1, x2, k), Lerp(y1, y2, k)
}

// FadeAlpha evaluates \fad or \fade at time t and returns the
// transparency to combine with every colour of the event.
func FadeAlpha(c *Command, t, duration int64) uint8 {
	var a1, a2, a3, t1, t2, t3, t4 float64
	if len(c.Args) == 2 {
		a1, a2, a3 = 0xFF, 0, 0xFF
		t1, t2 = 0, c.Args[0]
		t3, t4 = float64(duration)-c.Args[1], float64(duration)
	} else {
		a1, a2, a3 = c.Args[0], c.Args[1], c.Args[2]
		t1, t2, t3, t4 = c.Args[3], c.Args[4], c.Args[5], c.Args[6]
	}
	now := float64(t)
	var a float64
	switch {
	case now < t1:
		a = a1
	case now < t2:
		a = Lerp(a1, a2, (now-t1)/(t2-t1))
	case now < t3:
		a = a2
	case now < t4:
		a = Lerp(a2, a3, (now-t3)/(t4-t3))
	default:
		a = a3
	}
	return uint8(math.Round(math.Max(0, math.Min(255, a))))
}

// MultAlpha combines two transparencies: the result is opaque only when
// both are.
func MultAlpha(a, b uint8) uint8 {
	return uint8(int(a) - (int(a)*int(b)+0x7F)/0xFF + int(b))
}

// Unescape resolves \N, \n and \h in literal text. \n is a line break
// only with wrap style 2 and a space otherwise.
func Unescape(s string, wrapStyle int) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	soft := " "
	if wrapStyle == 2 {
		soft = "\n"
	}
	return strings.NewReplacer(`\N`, "\n", `\n`, soft, `\h`, "\u00a0").Replace(s)
}
