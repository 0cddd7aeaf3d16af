package track

import (
	"slices"
	"sync/atomic"
)

var generations atomic.Uint64

// Track owns the styles and events of one subtitle document.
//
// A Track must not be mutated while a render on it is in progress.
type Track struct {
	PlayResX int
	PlayResY int
	// LayoutResX and LayoutResY override the storage size used for
	// aspect-ratio correction when non-zero.
	LayoutResX int
	LayoutResY int

	WrapStyle             int
	ScaledBorderAndShadow bool
	Kerning               bool
	Language              string
	Title                 string

	// DefaultStyle is the style id a script parser assigns to events
	// naming a style the script does not define. The renderer never
	// substitutes it on its own.
	DefaultStyle int

	styles []*Style
	events []*Event
	nextID int
	seq    uint64
	gen    uint64

	checkReadOrder bool
	readOrders     map[int64]struct{}

	pruneDelay    int64
	pruneDeadline int64 // earliest end among events, or -1 when unknown

	features       Feature
	featuresLocked bool
	closed         bool
}

// New returns an empty track with duplicate suppression enabled and
// automatic pruning disabled.
func New() *Track {
	return &Track{
		ScaledBorderAndShadow: true,
		checkReadOrder:        true,
		readOrders:            make(map[int64]struct{}),
		pruneDelay:            -1,
		pruneDeadline:         -1,
		gen:                   generations.Add(1),
	}
}

// Generation identifies this track instance for cache keys. It changes on
// Close, so nothing derived from a closed track is reused.
func (t *Track) Generation() uint64 { return t.gen }

// Close releases the track's records. Later renders of it produce nothing.
func (t *Track) Close() {
	t.styles = nil
	t.events = nil
	t.readOrders = nil
	t.closed = true
	t.gen = generations.Add(1)
}

// Closed reports whether Close has been called.
func (t *Track) Closed() bool { return t.closed }

// AllocStyle appends a copy of s and returns its id.
func (t *Track) AllocStyle(s Style) int {
	st := s
	t.styles = append(t.styles, &st)
	return len(t.styles) - 1
}

// FreeStyle deletes the style with the given id. Events still referencing
// it render nothing.
func (t *Track) FreeStyle(id int) {
	if id >= 0 && id < len(t.styles) {
		t.styles[id] = nil
	}
}

// Style returns the style with the given id.
func (t *Track) Style(id int) (*Style, bool) {
	if id < 0 || id >= len(t.styles) || t.styles[id] == nil {
		return nil, false
	}
	return t.styles[id], true
}

// StyleByName returns the id of the last style with the given name. A
// leading '*' is ignored, as VSFilter does.
func (t *Track) StyleByName(name string) (int, bool) {
	if len(name) > 0 && name[0] == '*' {
		name = name[1:]
	}
	for i := len(t.styles) - 1; i >= 0; i-- {
		if s := t.styles[i]; s != nil && s.Name == name {
			return i, true
		}
	}
	return 0, false
}

// NumStyles returns the number of allocated style slots, including freed
// ones.
func (t *Track) NumStyles() int { return len(t.styles) }

// SetCheckReadOrder enables or disables duplicate suppression by ReadOrder.
// With it enabled the caller must not edit the event list by other means.
func (t *Track) SetCheckReadOrder(enabled bool) {
	t.checkReadOrder = enabled
}

// AddEvent stores a copy of e and returns its id. With duplicate
// suppression on, an event whose ReadOrder was already stored is dropped
// and AddEvent returns -1, false.
func (t *Track) AddEvent(e Event) (int, bool) {
	if t.closed {
		return -1, false
	}
	if t.checkReadOrder {
		if _, dup := t.readOrders[e.ReadOrder]; dup {
			return -1, false
		}
		t.readOrders[e.ReadOrder] = struct{}{}
	}
	ev := e
	ev.ID = t.nextID
	t.nextID++
	t.seq++
	ev.seq = t.seq
	t.events = append(t.events, &ev)
	// A new start can shorten UntilNext events, so bound by Start.
	if t.pruneDeadline >= 0 && ev.Start < t.pruneDeadline {
		t.pruneDeadline = ev.Start
	}
	return ev.ID, true
}

// Event returns the event with the given id.
func (t *Track) Event(id int) (*Event, bool) {
	for _, ev := range t.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return nil, false
}

// Events returns the events in insertion order. The slice must not be
// modified.
func (t *Track) Events() []*Event { return t.events }

// NumEvents returns the number of stored events.
func (t *Track) NumEvents() int { return len(t.events) }

// FreeEvent deletes the event with the given id and forgets its ReadOrder.
func (t *Track) FreeEvent(id int) bool {
	i := slices.IndexFunc(t.events, func(ev *Event) bool { return ev.ID == id })
	if i < 0 {
		return false
	}
	t.forget(t.events[i])
	t.events = slices.Delete(t.events, i, i+1)
	return true
}

// Flush deletes all events.
func (t *Track) Flush() {
	t.events = nil
	clear(t.readOrders)
	t.pruneDeadline = -1
}

func (t *Track) forget(ev *Event) {
	if t.checkReadOrder && t.readOrders != nil {
		delete(t.readOrders, ev.ReadOrder)
	}
}
