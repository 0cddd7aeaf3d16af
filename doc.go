// Package ass renders ASS/SSA subtitle tracks into alpha bitmaps for
// compositing onto video frames.
//
// # Overview
//
// A Library holds the font registry and is shared by one or more
// Renderers. A Renderer turns a track.Track and a timestamp into a linked
// list of Image layers: single-colour alpha masks with a destination
// position, to be blended in order onto the frame.
//
// # Quick Start
//
//	lib := ass.NewLibrary()
//	r := ass.NewRenderer(lib)
//	r.SetFrameSize(1280, 720)
//
//	t := track.New()
//	t.AllocStyle(track.DefaultStyle("Default"))
//	t.AddEvent(track.Event{Start: 0, End: 5000, Text: `{\an8}Hello`})
//
//	img, change := r.RenderFrame(t, 1000)
//	for ; img != nil; img = img.Next {
//		// blend img.Bitmap with img.Color at (img.DstX, img.DstY)
//	}
//
// # Pipeline
//
// Every render call runs the event scheduler, resolves override tags and
// styles, lays the text out, rasterizes glyphs through a three level
// cache (outlines, glyph bitmaps, combined bitmaps) and composites the
// result into images: per event all shadows, then borders, then fills.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at the top-left of the frame
//   - X increases right
//   - Y increases down
//
// Script coordinates are mapped onto the video area, which is the frame
// minus the margins set with SetMargins.
package ass

// Version is the current version of the library.
const Version = "0.1.0"
