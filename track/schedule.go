package track

import (
	"math"
	"sort"
)

// EndOf returns the time at which ev stops being displayed. For UntilNext
// events this is the start of the next later-starting event, or
// math.MaxInt64 when there is none.
func (t *Track) EndOf(ev *Event) int64 {
	if !ev.UntilNext {
		return ev.End
	}
	end := int64(math.MaxInt64)
	for _, o := range t.events {
		if o.Start > ev.Start && o.Start < end {
			end = o.Start
		}
	}
	return end
}

// Active returns the events with Start <= now < end, ordered by layer and
// then by insertion order.
func (t *Track) Active(now int64) []*Event {
	var out []*Event
	for _, ev := range t.events {
		if ev.Start <= now && now < t.EndOf(ev) {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}

// StepSub returns the time shift from now to the start of the event
// movement positions away from the one currently displayed: 0 is the
// current event, -1 the previous one, +2 the one after the next. It
// returns 0 when no such event exists.
func (t *Track) StepSub(now int64, movement int) int64 {
	if len(t.events) == 0 {
		return 0
	}
	direction := 0
	switch {
	case movement > 0:
		direction = 1
	case movement < 0:
		direction = -1
	}

	var best *Event
	target := now
	for {
		var closest *Event
		closestTime := now
		for _, ev := range t.events {
			switch {
			case direction < 0:
				end := t.EndOf(ev)
				if end < target && (closest == nil || end > closestTime) {
					closest, closestTime = ev, end
				}
			case direction > 0:
				if ev.Start > target && (closest == nil || ev.Start < closestTime) {
					closest, closestTime = ev, ev.Start
				}
			default:
				if ev.Start < target && (closest == nil || ev.Start >= closestTime) {
					closest, closestTime = ev, ev.Start
				}
			}
		}
		target = closestTime + int64(direction)
		movement -= direction
		if closest != nil {
			best = closest
		}
		if movement == 0 {
			break
		}
	}
	if best == nil {
		return 0
	}
	return best.Start - now
}

// ConfigurePrune sets the automatic pruning delay. After each render at
// time now, events that ended before now-delay are deleted. A delay of 0
// prunes every event no longer displayable; a negative delay disables
// automatic pruning, which is the default.
func (t *Track) ConfigurePrune(delay int64) {
	t.pruneDelay = delay
}

// PruneDelay returns the automatic pruning delay.
func (t *Track) PruneDelay() int64 { return t.pruneDelay }

// AfterRender applies automatic pruning for a render at now.
func (t *Track) AfterRender(now int64) {
	if t.pruneDelay < 0 {
		return
	}
	deadline := now - t.pruneDelay
	if t.pruneDeadline >= 0 && t.pruneDeadline >= deadline {
		return
	}
	t.Prune(deadline)
}

// Prune deletes every event whose end precedes deadline and returns the
// number removed. UntilNext events are removed once a later event has
// started before deadline.
func (t *Track) Prune(deadline int64) int {
	ends := make([]int64, len(t.events))
	for i, ev := range t.events {
		ends[i] = t.EndOf(ev)
	}
	before := len(t.events)
	next := int64(-1)
	kept := t.events[:0]
	for i, ev := range t.events {
		if ends[i] < deadline {
			t.forget(ev)
			continue
		}
		kept = append(kept, ev)
		if ends[i] != math.MaxInt64 && (next < 0 || ends[i] < next) {
			next = ends[i]
		}
	}
	clear(t.events[len(kept):])
	t.events = kept
	t.pruneDeadline = next
	return before - len(t.events)
}
