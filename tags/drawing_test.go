package tags

import "testing"

func ops(cmds []PathCmd) []PathOp {
	out := make([]PathOp, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

func TestParseDrawing(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []PathOp
	}{
		{"square", "m 0 0 l 10 0 10 10 0 10", []PathOp{MoveTo, LineTo, LineTo, LineTo, ClosePath}},
		{"two contours", "m 0 0 l 1 0 1 1 m 5 5 l 6 5 6 6", []PathOp{MoveTo, LineTo, LineTo, ClosePath, MoveTo, LineTo, LineTo, ClosePath}},
		{"bezier", "m 0 0 b 1 0 2 1 2 2", []PathOp{MoveTo, CubicTo, ClosePath}},
		{"n keeps contour", "m 0 0 l 1 0 n 5 5 l 6 6", []PathOp{MoveTo, LineTo, MoveTo, LineTo, ClosePath}},
		{"truncated", "m 0 0 l 10", []PathOp{MoveTo, ClosePath}},
		{"garbage", "hello world", nil},
		{"spline", "m 0 0 s 10 0 10 10 0 10 c", []PathOp{MoveTo, LineTo, CubicTo, CubicTo, CubicTo, CubicTo, ClosePath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ops(ParseDrawing(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("ops = %v; want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ops = %v; want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParseDrawingCoordinates(t *testing.T) {
	cmds := ParseDrawing("m 1 2 l 3.5 -4")
	if cmds[0].Pts[0] != (Point{1, 2}) {
		t.Errorf("move = %v", cmds[0].Pts[0])
	}
	if cmds[1].Pts[0] != (Point{3.5, -4}) {
		t.Errorf("line = %v", cmds[1].Pts[0])
	}
}
