package text

import (
	"slices"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		opts    BidiOptions
		want    []uint8
		wantDir Direction
	}{
		{"latin", "abc", BidiOptions{}, []uint8{0, 0, 0}, DirectionLTR},
		{"hebrew auto", "אבג", BidiOptions{Auto: true}, []uint8{1, 1, 1}, DirectionRTL},
		{"hebrew forced ltr", "אבג", BidiOptions{}, []uint8{1, 1, 1}, DirectionLTR},
		{"mixed ltr", "ab אב", BidiOptions{}, []uint8{0, 0, 0, 1, 1}, DirectionLTR},
		{"latin in rtl", "אב ab", BidiOptions{Base: DirectionRTL}, []uint8{1, 1, 1, 2, 2}, DirectionRTL},
		{"neutral auto falls back", "123", BidiOptions{Auto: true, Base: DirectionRTL}, nil, DirectionRTL},
		{"empty", "", BidiOptions{}, []uint8{}, DirectionLTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, dir := Levels([]rune(tt.text), tt.opts)
			if dir != tt.wantDir {
				t.Errorf("direction = %v, want %v", dir, tt.wantDir)
			}
			if tt.want != nil && !slices.Equal(levels, tt.want) {
				t.Errorf("levels = %v, want %v", levels, tt.want)
			}
			if len(levels) != len([]rune(tt.text)) {
				t.Errorf("len(levels) = %d", len(levels))
			}
		})
	}
}

func TestVisualOrder(t *testing.T) {
	tests := []struct {
		levels []uint8
		want   []int
	}{
		{[]uint8{0, 0, 0}, []int{0, 1, 2}},
		{[]uint8{1, 1, 1}, []int{2, 1, 0}},
		{[]uint8{0, 0, 1, 1}, []int{0, 1, 3, 2}},
		{[]uint8{1, 1, 2, 2, 1}, []int{4, 2, 3, 1, 0}},
		{nil, []int{}},
	}
	for _, tt := range tests {
		if got := VisualOrder(tt.levels); !slices.Equal(got, tt.want) {
			t.Errorf("VisualOrder(%v) = %v, want %v", tt.levels, got, tt.want)
		}
	}
}
