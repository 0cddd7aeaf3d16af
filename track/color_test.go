package track

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"&H00FFFFFF", RGBA(0xFF, 0xFF, 0xFF, 0), true},
		{"&H000000FF&", RGBA(0xFF, 0, 0, 0), true},
		{"&H80FF0000", RGBA(0, 0, 0xFF, 0x80), true},
		{"H00ff00", RGBA(0, 0xFF, 0, 0), true},
		{"&HFF0000&garbage", RGBA(0, 0, 0xFF, 0), true},
		{"255", RGBA(0xFF, 0, 0, 0), true},
		{"&Hzz", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseColor(%q) = %08X, %v; want %08X, %v", tt.in, uint32(got), ok, uint32(tt.want), tt.ok)
		}
	}
}

func TestColorAccessors(t *testing.T) {
	c := RGBA(1, 2, 3, 4)
	if c.R() != 1 || c.G() != 2 || c.B() != 3 || c.A() != 4 {
		t.Errorf("components of %08X wrong", uint32(c))
	}
	if got := c.WithAlpha(0xFF).A(); got != 0xFF {
		t.Errorf("WithAlpha: A = %d", got)
	}
	if got := c.WithRGB(RGBA(9, 9, 9, 0)); got != RGBA(9, 9, 9, 4) {
		t.Errorf("WithRGB = %08X", uint32(got))
	}
}
