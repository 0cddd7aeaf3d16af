package tags

import (
	"slices"
	"testing"

	"github.com/gogpu/ass/track"
)

func TestParseSegments(t *testing.T) {
	segs := Parse(`Hello {\b1}bold{\b0} world`)
	if len(segs) != 3 {
		t.Fatalf("got %d segments; want 3: %+v", len(segs), segs)
	}
	want := []string{"Hello ", "bold", " world"}
	for i, s := range segs {
		if s.Text != want[i] {
			t.Errorf("segment %d text = %q; want %q", i, s.Text, want[i])
		}
	}
	if segs[0].Tags != nil {
		t.Errorf("first segment has tags: %v", segs[0].Tags)
	}
	if len(segs[1].Tags) != 1 || segs[1].Tags[0].Kind != Bold || segs[1].Tags[0].Arg(0, -1) != 1 {
		t.Errorf("segment 1 tags = %v", segs[1].Tags)
	}
}

func TestParseRobustness(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		texts []string
	}{
		{"empty", "", []string{""}},
		{"only tags", `{\pos(1,2)}`, []string{""}},
		{"comment group", `a{just a comment}b`, []string{"ab"}},
		{"unterminated", `a{\b1 b`, []string{`a{\b1 b`}},
		{"unknown tag", `{\zzz1}x`, []string{"x"}},
		{"malformed pos", `{\pos(1)\i1}x`, []string{"x"}},
		{"leading tags", `{\an8}top`, []string{"top"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Parse(tt.in)
			var texts []string
			for _, s := range segs {
				texts = append(texts, s.Text)
			}
			if !slices.Equal(texts, tt.texts) {
				t.Errorf("texts = %q; want %q", texts, tt.texts)
			}
		})
	}
}

func TestParseMalformedKeepsOtherTags(t *testing.T) {
	cmds := ParseGroup(`\pos(1)\i1\zzz\fs20`)
	kinds := make([]Kind, len(cmds))
	for i, c := range cmds {
		kinds[i] = c.Kind
	}
	if !slices.Equal(kinds, []Kind{Italic, FontSize}) {
		t.Errorf("kinds = %v; want [i fs]", kinds)
	}
}

func TestParseTagArguments(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		args []float64
		str  string
	}{
		{`\fs20`, FontSize, []float64{20}, ""},
		{`\fscx150`, ScaleX, []float64{150}, ""},
		{`\fsc50`, Scale, []float64{50}, ""},
		{`\fsp-2.5`, Spacing, []float64{-2.5}, ""},
		{`\fr45`, RotZ, []float64{45}, ""},
		{`\frx10`, RotX, []float64{10}, ""},
		{`\fnDejaVu Sans`, FontName, nil, "DejaVu Sans"},
		{`\pos(320, 240)`, Pos, []float64{320, 240}, ""},
		{`\move(0,0,100,50)`, Move, []float64{0, 0, 100, 50, 0, 0}, ""},
		{`\move(0,0,100,50,500,100)`, Move, []float64{0, 0, 100, 50, 100, 500}, ""},
		{`\org(1,2)`, Origin, []float64{1, 2}, ""},
		{`\fad(200,300)`, Fade, []float64{200, 300}, ""},
		{`\fade(255,0,255,0,100,900,1000)`, Fade, []float64{255, 0, 255, 0, 100, 900, 1000}, ""},
		{`\clip(1,2,3,4)`, Clip, []float64{1, 2, 3, 4}, ""},
		{`\iclip(m 0 0 l 10 0 10 10)`, IClip, []float64{1}, "m 0 0 l 10 0 10 10"},
		{`\clip(2,m 0 0 l 4 0 4 4)`, Clip, []float64{2}, "m 0 0 l 4 0 4 4"},
		{`\an7`, Align, []float64{7}, ""},
		{`\a6`, Align, []float64{8}, ""},
		{`\a10`, Align, []float64{5}, ""},
		{`\k50`, Karaoke, []float64{500}, ""},
		{`\kt20`, KaraokeT, []float64{200}, ""},
		{`\bord3`, Border, []float64{3}, ""},
		{`\xshad-1`, ShadowX, []float64{-1}, ""},
		{`\be1`, BlurEdges, []float64{1}, ""},
		{`\blur0.5`, Blur, []float64{0.5}, ""},
		{`\p1`, Drawing, []float64{1}, ""},
		{`\pbo-5`, Baseline, []float64{-5}, ""},
		{`\rSign`, Reset, nil, "Sign"},
		{`\q2`, WrapStyle, []float64{2}, ""},
		{`\fay0.1`, ShearY, []float64{0.1}, ""},
		{`\fe128`, Encoding, []float64{128}, ""},
	}
	for _, tt := range tests {
		cmds := ParseGroup(tt.in)
		if len(cmds) != 1 {
			t.Errorf("%s: got %d commands", tt.in, len(cmds))
			continue
		}
		c := cmds[0]
		if c.Kind != tt.kind || !slices.Equal(c.Args, tt.args) || c.Str != tt.str {
			t.Errorf("%s: got %v %v %q; want %v %v %q", tt.in, c.Kind, c.Args, c.Str, tt.kind, tt.args, tt.str)
		}
	}
}

func TestParseColorsAndAlpha(t *testing.T) {
	cmds := ParseGroup(`\c&H0000FF&\3c&HFF0000&\alpha&H80&\2a&HFF&\1c`)
	if len(cmds) != 5 {
		t.Fatalf("got %d commands", len(cmds))
	}
	if cmds[0].Index != 1 || cmds[0].Color != track.RGBA(0xFF, 0, 0, 0) {
		t.Errorf("\\c: index %d colour %08X", cmds[0].Index, uint32(cmds[0].Color))
	}
	if cmds[1].Index != 3 || cmds[1].Color != track.RGBA(0, 0, 0xFF, 0) {
		t.Errorf("\\3c: index %d colour %08X", cmds[1].Index, uint32(cmds[1].Color))
	}
	if cmds[2].Kind != Alpha || cmds[2].Index != 0 || cmds[2].Args[0] != 0x80 {
		t.Errorf("\\alpha = %+v", cmds[2])
	}
	if cmds[3].Index != 2 || cmds[3].Args[0] != 0xFF {
		t.Errorf("\\2a = %+v", cmds[3])
	}
	if !cmds[4].Revert {
		t.Error("bare \\1c should revert")
	}
}

func TestParseRelativeFontSize(t *testing.T) {
	cmds := ParseGroup(`\fs+2\fs-3\fs`)
	if !cmds[0].Rel || cmds[0].Args[0] != 2 {
		t.Errorf("\\fs+2 = %+v", cmds[0])
	}
	if !cmds[1].Rel || cmds[1].Args[0] != -3 {
		t.Errorf("\\fs-3 = %+v", cmds[1])
	}
	if !cmds[2].Revert {
		t.Errorf("\\fs = %+v; want revert", cmds[2])
	}
}

func TestParseKaraokeModes(t *testing.T) {
	cmds := ParseGroup(`\k10\K20\kf30\ko40`)
	want := []KaraokeMode{KaraokeSwitch, KaraokeFill, KaraokeFill, KaraokeOutline}
	for i, c := range cmds {
		if KaraokeMode(c.Index) != want[i] {
			t.Errorf("command %d mode = %d; want %d", i, c.Index, want[i])
		}
	}
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in   string
		args []float64
		sub  []Kind
	}{
		{`\t(\fs40)`, []float64{0, 0, 1}, []Kind{FontSize}},
		{`\t(2,\frz90)`, []float64{0, 0, 2}, []Kind{RotZ}},
		{`\t(100,500,\c&HFF&\bord4)`, []float64{100, 500, 1}, []Kind{Color, Border}},
		{`\t(0,1000,0.5,\clip(0,0,10,10))`, []float64{0, 1000, 0.5}, []Kind{Clip}},
		{`\t(0,100,\pos(1,1)\b1\fs9)`, []float64{0, 100, 1}, []Kind{FontSize}},
		{`\t(0,100,\t(\fs1)\blur3)`, []float64{0, 100, 1}, []Kind{Blur}},
	}
	for _, tt := range tests {
		cmds := ParseGroup(tt.in)
		if len(cmds) != 1 || cmds[0].Kind != Transform {
			t.Errorf("%s: got %v", tt.in, cmds)
			continue
		}
		c := cmds[0]
		if !slices.Equal(c.Args, tt.args) {
			t.Errorf("%s: args = %v; want %v", tt.in, c.Args, tt.args)
		}
		var sub []Kind
		for _, s := range c.Sub {
			sub = append(sub, s.Kind)
		}
		if !slices.Equal(sub, tt.sub) {
			t.Errorf("%s: sub = %v; want %v", tt.in, sub, tt.sub)
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		wrap int
		want string
	}{
		{`a\Nb`, 0, "a\nb"},
		{`a\nb`, 0, "a b"},
		{`a\nb`, 2, "a\nb"},
		{`a\hb`, 0, "a\u00a0b"},
		{`plain`, 0, "plain"},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in, tt.wrap); got != tt.want {
			t.Errorf("Unescape(%q, %d) = %q; want %q", tt.in, tt.wrap, got, tt.want)
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`\fs20`, `\fs20`},
		{`\pos(1,2)`, `\pos(1,2)`},
		{`\1c&H0000FF&`, `\1c&H0000FF&`},
		{`\alpha&H80&`, `\alpha&H80&`},
	}
	for _, tt := range tests {
		c := ParseGroup(tt.in)[0]
		if got := c.String(); got != tt.want {
			t.Errorf("String(%s) = %s; want %s", tt.in, got, tt.want)
		}
	}
}
