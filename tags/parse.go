package tags

import (
	"strconv"
	"strings"

	"github.com/gogpu/ass/track"
)

// Segment is an override group followed by the literal text up to the
// next group. The first segment of an event has no Tags when the text does
// not start with a group.
type Segment struct {
	Tags []Command
	Text string
}

// Parse splits event text into segments. Unknown tags are dropped, tags
// with unusable arguments are skipped, and an unterminated '{' is kept as
// literal text.
func Parse(text string) []Segment {
	var segs []Segment
	cur := Segment{}
	var lit strings.Builder
	flush := func() {
		cur.Text = lit.String()
		lit.Reset()
		if cur.Text != "" || cur.Tags != nil || len(segs) == 0 {
			segs = append(segs, cur)
		}
		cur = Segment{}
	}
	for len(text) > 0 {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			lit.WriteString(text)
			break
		}
		end := strings.IndexByte(text[open+1:], '}')
		if end < 0 {
			lit.WriteString(text)
			break
		}
		lit.WriteString(text[:open])
		group := text[open+1 : open+1+end]
		text = text[open+2+end:]
		cmds := parseGroup(group, false)
		if cmds == nil {
			// A group without tags is a comment.
			continue
		}
		flush()
		cur.Tags = cmds
	}
	flush()
	if len(segs) > 1 && segs[0].Text == "" && segs[0].Tags == nil {
		segs = segs[1:]
	}
	return segs
}

// ParseGroup decodes the inside of one override group.
func ParseGroup(group string) []Command {
	return parseGroup(group, false)
}

// names is ordered so that longer tags precede their prefixes.
var names = []struct {
	name string
	kind Kind
}{
	{"xbord", BorderX}, {"ybord", BorderY}, {"xshad", ShadowX}, {"yshad", ShadowY},
	{"iclip", IClip}, {"alpha", Alpha}, {"move", Move}, {"fade", Fade},
	{"fscx", ScaleX}, {"fscy", ScaleY}, {"bord", Border}, {"shad", Shadow},
	{"blur", Blur}, {"clip", Clip},
	{"fsc", Scale}, {"fsp", Spacing}, {"frx", RotX}, {"fry", RotY}, {"frz", RotZ},
	{"fax", ShearX}, {"fay", ShearY}, {"fad", Fade}, {"pos", Pos}, {"org", Origin},
	{"pbo", Baseline},
	{"fn", FontName}, {"fs", FontSize}, {"fr", RotZ}, {"fe", Encoding},
	{"an", Align}, {"be", BlurEdges}, {"kf", Karaoke}, {"ko", Karaoke}, {"kt", KaraokeT},
	{"1c", Color}, {"2c", Color}, {"3c", Color}, {"4c", Color},
	{"1a", Alpha}, {"2a", Alpha}, {"3a", Alpha}, {"4a", Alpha},
	{"b", Bold}, {"i", Italic}, {"u", Underline}, {"s", StrikeOut},
	{"c", Color}, {"a", Align}, {"q", WrapStyle}, {"r", Reset},
	{"t", Transform}, {"k", Karaoke}, {"K", Karaoke}, {"p", Drawing},
}

func lookup(s string) (string, Kind) {
	for _, n := range names {
		if strings.HasPrefix(s, n.name) {
			return n.name, n.kind
		}
	}
	return "", KindUnknown
}

func parseGroup(group string, inTransform bool) []Command {
	var cmds []Command
	for {
		bs := strings.IndexByte(group, '\\')
		if bs < 0 {
			return cmds
		}
		group = group[bs+1:]
		name, kind := lookup(group)
		if kind == KindUnknown {
			continue
		}
		rest := group[len(name):]
		var arg string
		var paren bool
		arg, paren, group = splitArg(rest, kind)
		cmd, ok := build(name, kind, arg, paren)
		if !ok {
			continue
		}
		if inTransform && !kind.Animatable() {
			continue
		}
		if cmds == nil {
			cmds = []Command{}
		}
		cmds = append(cmds, cmd)
	}
}

// splitArg separates a tag's argument from the remainder of the group.
// Parenthesized arguments run to the matching ')' or the end of the group;
// plain arguments run to the next backslash.
func splitArg(s string, kind Kind) (arg string, paren bool, rest string) {
	t := strings.TrimLeft(s, " \t")
	if strings.HasPrefix(t, "(") {
		depth := 0
		for i := 0; i < len(t); i++ {
			switch t[i] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return t[1:i], true, t[i+1:]
				}
			}
		}
		return t[1:], true, ""
	}
	if kind == FontName || kind == Reset {
		if i := strings.IndexByte(s, '\\'); i >= 0 {
			return strings.TrimSpace(s[:i]), false, s[i:]
		}
		return strings.TrimSpace(s), false, ""
	}
	if i := strings.IndexByte(t, '\\'); i >= 0 {
		return strings.TrimSpace(t[:i]), false, t[i:]
	}
	return strings.TrimSpace(t), false, ""
}

func build(name string, kind Kind, arg string, paren bool) (Command, bool) {
	c := Command{Kind: kind}
	switch kind {
	case Pos, Origin:
		a, ok := numbers(arg, paren)
		if !ok || len(a) != 2 {
			return c, false
		}
		c.Args = a
	case Move:
		a, ok := numbers(arg, paren)
		if !ok || (len(a) != 4 && len(a) != 6) {
			return c, false
		}
		if len(a) == 4 {
			a = append(a, 0, 0)
		}
		if a[4] > a[5] {
			a[4], a[5] = a[5], a[4]
		}
		c.Args = a
	case Fade:
		a, ok := numbers(arg, paren)
		if !ok {
			return c, false
		}
		if len(a) != 2 && len(a) != 7 {
			return c, false
		}
		c.Args = a
	case Transform:
		return buildTransform(arg, paren)
	case Clip, IClip:
		return buildClip(c, arg, paren)
	case FontName, Reset:
		c.Str = arg
		c.Revert = arg == ""
	case Color:
		c.Index = slot(name)
		if arg == "" {
			c.Revert = true
			break
		}
		col, ok := track.ParseColor(arg)
		if !ok {
			return c, false
		}
		c.Color = col
	case Alpha:
		c.Index = slot(name)
		if arg == "" {
			c.Revert = true
			break
		}
		a, ok := parseHexByte(arg)
		if !ok {
			return c, false
		}
		c.Args = []float64{float64(a)}
	case Karaoke:
		switch name {
		case "K", "kf":
			c.Index = int(KaraokeFill)
		case "ko":
			c.Index = int(KaraokeOutline)
		default:
			c.Index = int(KaraokeSwitch)
		}
		v, ok := number(arg)
		if !ok {
			v = 100
		}
		c.Args = []float64{v * 10}
	case KaraokeT:
		v, ok := number(arg)
		if !ok {
			return c, false
		}
		c.Args = []float64{v * 10}
	case FontSize:
		if arg == "" {
			c.Revert = true
			break
		}
		if arg[0] == '+' || arg[0] == '-' {
			c.Rel = true
		}
		v, ok := number(arg)
		if !ok {
			return c, false
		}
		c.Args = []float64{v}
	case Align:
		v, ok := number(arg)
		if !ok {
			c.Revert = true
			break
		}
		n := int(v)
		if name == "a" {
			n = legacyToNumpad(n)
		}
		if n < 1 || n > 9 {
			c.Revert = true
			break
		}
		c.Args = []float64{float64(n)}
	default:
		if arg == "" {
			c.Revert = true
			break
		}
		v, ok := number(arg)
		if !ok {
			c.Revert = true
			break
		}
		c.Args = []float64{v}
	}
	return c, true
}

func buildTransform(arg string, paren bool) (Command, bool) {
	c := Command{Kind: Transform}
	if !paren {
		return c, false
	}
	bs := strings.IndexByte(arg, '\\')
	if bs < 0 {
		return c, false
	}
	var a []float64
	for _, f := range strings.Split(arg[:bs], ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, ok := number(f)
		if !ok {
			return c, false
		}
		a = append(a, v)
	}
	switch len(a) {
	case 0:
		c.Args = []float64{0, 0, 1}
	case 1:
		c.Args = []float64{0, 0, a[0]}
	case 2:
		c.Args = []float64{a[0], a[1], 1}
	case 3:
		c.Args = a
	default:
		return c, false
	}
	c.Sub = parseGroup(arg[bs:], true)
	return c, true
}

func buildClip(c Command, arg string, paren bool) (Command, bool) {
	if !paren {
		return c, false
	}
	if a, ok := numbers(arg, true); ok && len(a) == 4 {
		c.Args = a
		return c, true
	}
	scale := 1.0
	drawing := arg
	if first, tail, found := strings.Cut(arg, ","); found {
		v, ok := number(strings.TrimSpace(first))
		if !ok {
			return c, false
		}
		scale = v
		drawing = tail
	}
	drawing = strings.TrimSpace(drawing)
	if drawing == "" {
		return c, false
	}
	c.Args = []float64{scale}
	c.Str = drawing
	return c, true
}

func slot(name string) int {
	if len(name) == 2 && name[0] >= '1' && name[0] <= '4' {
		return int(name[0] - '0')
	}
	if name == "c" {
		return 1
	}
	return 0
}

// legacyToNumpad converts SSA \a alignment (1-3 bottom, 5-7 top, 9-11
// middle) to numpad layout.
func legacyToNumpad(v int) int {
	if v < 1 || v > 11 {
		return 0
	}
	h := v & 3
	if h == 0 {
		return 0
	}
	switch v & 12 {
	case 4:
		return h + 6
	case 8:
		return h + 3
	case 0:
		return h
	}
	return 0
}

func numbers(arg string, paren bool) ([]float64, bool) {
	if !paren {
		return nil, false
	}
	parts := strings.Split(arg, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, ok := number(strings.TrimSpace(p))
		if !ok {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// number parses the longest numeric prefix of s, ignoring trailing
// garbage as VSFilter does.
func number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		e := end + 1
		if e < len(s) && (s[e] == '+' || s[e] == '-') {
			e++
		}
		if e < len(s) && s[e] >= '0' && s[e] <= '9' {
			for e < len(s) && s[e] >= '0' && s[e] <= '9' {
				e++
			}
			end = e
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseHexByte(s string) (uint8, bool) {
	s = strings.TrimLeft(strings.TrimSpace(s), "&")
	if len(s) > 0 && (s[0] == 'H' || s[0] == 'h') {
		s = s[1:]
	}
	end := 0
	for end < len(s) && isHex(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	if end > 8 {
		end = 8
	}
	v, err := strconv.ParseUint(s[:end], 16, 32)
	if err != nil {
		return 0, false
	}
	return uint8(v), true
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
