package tags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/ass/track"
)

// Command is one decoded override tag.
type Command struct {
	Kind Kind
	// Index selects a colour or alpha slot (1 primary .. 4 back, 0 all
	// alpha slots) or carries the KaraokeMode.
	Index int
	Args  []float64
	Str   string
	Color track.Color
	// Rel marks \fs+ and \fs- where Args[0] is a signed step.
	Rel bool
	// Revert is set when the tag had no argument, which restores the
	// style's value.
	Revert bool
	// Sub holds the tags animated by \t.
	Sub []Command
}

// Arg returns Args[i] or def when absent.
func (c *Command) Arg(i int, def float64) float64 {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return def
}

// String renders the command back to override syntax, for diagnostics.
func (c Command) String() string {
	var b strings.Builder
	b.WriteByte('\\')
	switch c.Kind {
	case Color:
		fmt.Fprintf(&b, "%dc&H%02X%02X%02X&", c.Index, c.Color.B(), c.Color.G(), c.Color.R())
		return b.String()
	case Alpha:
		if c.Index == 0 {
			b.WriteString("alpha")
		} else {
			fmt.Fprintf(&b, "%da", c.Index)
		}
		fmt.Fprintf(&b, "&H%02X&", int(c.Arg(0, 0)))
		return b.String()
	}
	b.WriteString(c.Kind.String())
	if c.Str != "" && len(c.Args) == 0 && len(c.Sub) == 0 {
		b.WriteString(c.Str)
		return b.String()
	}
	if c.Kind == Transform || c.Kind.EventWide() && c.Kind != Align && c.Kind != WrapStyle {
		b.WriteByte('(')
		for i, a := range c.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		}
		if c.Str != "" {
			b.WriteByte(',')
			b.WriteString(c.Str)
		}
		for _, s := range c.Sub {
			b.WriteByte(',')
			b.WriteString(s.String())
		}
		b.WriteByte(')')
		return b.String()
	}
	if c.Rel && c.Arg(0, 0) >= 0 {
		b.WriteByte('+')
	}
	if len(c.Args) > 0 {
		b.WriteString(strconv.FormatFloat(c.Args[0], 'g', -1, 64))
	}
	return b.String()
}
