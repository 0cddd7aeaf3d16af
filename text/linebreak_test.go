package text

import "testing"

func breakPositions(allowed []bool) []int {
	var out []int
	for i, ok := range allowed {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func TestSpaceBreaker(t *testing.T) {
	tests := []struct {
		text string
		want []int
	}{
		{"hello world", []int{6}},
		{"a  b", []int{3}},
		{"nospace", nil},
		{" lead", []int{1}},
		{"trail ", nil},
		{"a-b c", []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			allowed := SpaceBreaker{}.Breaks([]rune(tt.text))
			if len(allowed) != len([]rune(tt.text))+1 {
				t.Fatalf("len = %d", len(allowed))
			}
			got := breakPositions(allowed)
			if len(got) != len(tt.want) {
				t.Fatalf("breaks = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("breaks = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestUnicodeBreaker(t *testing.T) {
	allowed := UnicodeBreaker{}.Breaks([]rune("hello world"))
	if !allowed[6] {
		t.Error("no break before \"world\"")
	}
	for _, i := range []int{0, 1, 5, 11} {
		if allowed[i] {
			t.Errorf("unexpected break at %d", i)
		}
	}
	// Ideographs break between characters.
	cjk := UnicodeBreaker{}.Breaks([]rune("日本語"))
	if !cjk[1] || !cjk[2] {
		t.Errorf("CJK breaks = %v", cjk)
	}
}

func TestUAX14Breaker(t *testing.T) {
	text := []rune("hello world")
	allowed := NewUAX14Breaker().Breaks(text)
	if len(allowed) != len(text)+1 {
		t.Fatalf("len = %d", len(allowed))
	}
	for _, i := range []int{0, 1, 2, 3, 4, 11} {
		if allowed[i] {
			t.Errorf("unexpected break at %d", i)
		}
	}
}

func TestBreakerByName(t *testing.T) {
	if _, ok := BreakerByName("unicode").(UnicodeBreaker); !ok {
		t.Error("unicode")
	}
	if _, ok := BreakerByName("UAX14").(UAX14Breaker); !ok {
		t.Error("uax14")
	}
	if _, ok := BreakerByName("none").(HardBreaker); !ok {
		t.Error("none")
	}
	if got := breakPositions(HardBreaker{}.Breaks([]rune("a b"))); got != nil {
		t.Errorf("HardBreaker breaks = %v", got)
	}
	if _, ok := BreakerByName("").(SpaceBreaker); !ok {
		t.Error("default")
	}
}

func TestIsSpace(t *testing.T) {
	if !IsSpace(' ') || !IsSpace('\u200b') || IsSpace('\u00a0') || IsSpace('a') {
		t.Error("IsSpace misclassifies")
	}
	if !IsNewline('\n') || !IsNewline('\u2029') || IsNewline(' ') {
		t.Error("IsNewline misclassifies")
	}
}
