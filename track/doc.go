// Package track holds the styles and events of one subtitle document and
// answers scheduling queries over them.
//
// A Track is populated by an external script parser through AllocStyle and
// AddEvent. The renderer reads it through Active and, when automatic
// pruning is configured, calls AfterRender once a frame is complete.
//
//	tr := track.New()
//	sid := tr.AllocStyle(track.DefaultStyle("Default"))
//	tr.AddEvent(track.Event{Start: 1000, End: 2000, Style: sid, Text: "Hello"})
//	for _, ev := range tr.Active(1500) {
//		...
//	}
//
// Times are milliseconds.
package track
