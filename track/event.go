package track

// Event is one timed subtitle entry.
type Event struct {
	// ID is assigned by AddEvent and is unique within the track.
	ID int
	// ReadOrder is the external sequence number used for duplicate
	// suppression.
	ReadOrder int64
	Layer     int

	Start int64
	End   int64
	// UntilNext makes the event last until the next later-starting event
	// begins, ignoring End.
	UntilNext bool

	Style   int
	Name    string
	MarginL int
	MarginR int
	MarginV int
	Effect  string
	Text    string

	seq uint64
}

// Duration returns End - Start for ordinary events.
func (e *Event) Duration() int64 { return e.End - e.Start }

// Seq returns the insertion sequence, which orders events of equal layer.
func (e *Event) Seq() uint64 { return e.seq }
