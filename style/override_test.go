package style

import (
	"testing"

	"github.com/gogpu/ass/tags"
	"github.com/gogpu/ass/track"
)

func userStyle() track.Style {
	u := track.DefaultStyle("User")
	u.FontName = "User Font"
	u.FontSize = 36
	u.PrimaryColour = track.RGBA(0xFF, 0xFF, 0, 0)
	u.Alignment = 8
	u.Outline = 4
	u.Blur = 2
	return u
}

func TestApplySelective(t *testing.T) {
	base := track.DefaultStyle("Default")
	user := userStyle()

	tests := []struct {
		name     string
		bits     Override
		explicit bool
		check    func(t *testing.T, s track.Style)
	}{
		{"default", OverrideDefault, false, func(t *testing.T, s track.Style) {
			if s.FontName != "Arial" {
				t.Errorf("FontName = %q", s.FontName)
			}
		}},
		{"font name", OverrideFontName, false, func(t *testing.T, s track.Style) {
			if s.FontName != "User Font" || s.FontSize != 18 {
				t.Errorf("got %q %v", s.FontName, s.FontSize)
			}
		}},
		{"size scaled to script", OverrideFontSizeFields, false, func(t *testing.T, s track.Style) {
			if s.FontSize != 36*576/288.0 {
				t.Errorf("FontSize = %v", s.FontSize)
			}
		}},
		{"style bundle", OverrideStyle, false, func(t *testing.T, s track.Style) {
			if s.FontName != "User Font" || s.PrimaryColour != user.PrimaryColour || s.Outline != 8 {
				t.Errorf("bundle not applied: %+v", s)
			}
			if s.Alignment != base.Alignment {
				t.Error("bundle must not touch alignment")
			}
		}},
		{"alignment", OverrideAlignment, false, func(t *testing.T, s track.Style) {
			if s.Alignment != 8 {
				t.Errorf("Alignment = %d", s.Alignment)
			}
		}},
		{"blur", OverrideBlur, false, func(t *testing.T, s track.Style) {
			if s.Blur != 2 {
				t.Errorf("Blur = %v", s.Blur)
			}
		}},
		{"explicit skips selective", OverrideStyle | OverrideAlignment, true, func(t *testing.T, s track.Style) {
			if s.FontName != "Arial" || s.Alignment != 2 {
				t.Errorf("explicit event overridden: %q %d", s.FontName, s.Alignment)
			}
		}},
		{"full style ignores explicit", OverrideFullStyle, true, func(t *testing.T, s track.Style) {
			if s.FontName != "User Font" || s.Name != "Default" {
				t.Errorf("full style: %q %q", s.FontName, s.Name)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Apply(&base, &user, tt.bits, tt.explicit, 576))
		})
	}
}

func TestExplicitHeuristic(t *testing.T) {
	tests := []struct {
		text   string
		effect string
		want   bool
	}{
		{`plain dialogue`, "", false},
		{`{\b1\i1\c&HFF&}styled`, "", false},
		{`{\pos(1,2)}sign`, "", true},
		{`{\move(1,2,3,4)}sign`, "", true},
		{`{\clip(0,0,1,1)}x`, "", true},
		{`{\org(1,1)}x`, "", true},
		{`{\frz10}x`, "", true},
		{`{\p1}m 0 0 l 1 1`, "", true},
		{`text`, "Banner;5", true},
		{`{\t(\frz10)}x`, "", false},
	}
	for _, tt := range tests {
		ev := &track.Event{Text: tt.text, Effect: tt.effect}
		if got := Explicit(ev, parse(tt.text)); got != tt.want {
			t.Errorf("Explicit(%q, %q) = %v; want %v", tt.text, tt.effect, got, tt.want)
		}
	}
}

func TestSelectiveFontScale(t *testing.T) {
	r := &Resolver{FontScale: 2, Bits: OverrideSelectiveFontScale}
	if res := resolve(t, r, "plain", 1000); res.FontScale != 2 {
		t.Errorf("dialogue FontScale = %v", res.FontScale)
	}
	if res := resolve(t, r, `{\pos(1,1)}sign`, 1000); res.FontScale != 1 {
		t.Errorf("positioned FontScale = %v; want 1", res.FontScale)
	}
	r.Bits = OverrideDefault
	if res := resolve(t, r, `{\pos(1,1)}sign`, 1000); res.FontScale != 2 {
		t.Errorf("non-selective FontScale = %v; want 2", res.FontScale)
	}
}

func parse(s string) []tags.Segment { return tags.Parse(s) }
