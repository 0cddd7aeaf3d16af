package ass

import "sort"

// span is the vertical extent [a, b) and horizontal extent [ha, hb) of
// an event that already has its place.
type span struct {
	a, b   int
	ha, hb int
}

// fixCollisions moves unpositioned events of the same layer apart
// vertically. Events are taken in drawing order; each keeps its place
// when it does not overlap the ones before it, and otherwise moves down
// (top aligned) or up (others) past them.
func fixCollisions(events []*eventImages) {
	for start := 0; start < len(events); {
		end := start
		for end < len(events) && events[end].layer == events[start].layer {
			end++
		}
		var used []span
		for _, e := range events[start:end] {
			if !e.collide || e.box.Empty() {
				continue
			}
			s := span{a: e.box.Min.Y, b: e.box.Max.Y, ha: e.box.Min.X, hb: e.box.Max.X}
			dir := -1
			if e.down {
				dir = 1
			}
			var shift int
			used, shift = fit(used, s, dir)
			if shift != 0 {
				e.shift(shift)
			}
		}
		start = end
	}
}

// fit returns the shift that places s clear of used, searching in
// direction dir, and used with the placed span added. used is kept
// sorted by a.
func fit(used []span, s span, dir int) ([]span, int) {
	shift := 0
	overlaps := func(u span) bool {
		return s.b+shift > u.a && s.a+shift < u.b && s.hb > u.ha && s.ha < u.hb
	}
	if dir > 0 {
		for _, u := range used {
			if overlaps(u) {
				shift = u.b - s.a
			}
		}
	} else {
		for i := len(used) - 1; i >= 0; i-- {
			if overlaps(used[i]) {
				shift = used[i].a - s.b
			}
		}
	}
	s.a += shift
	s.b += shift
	used = append(used, s)
	sort.Slice(used, func(i, j int) bool { return used[i].a < used[j].a })
	return used, shift
}
