// Package fonts finds font faces for subtitle text.
//
// A Provider returns the faces it knows for a family name. MemoryProvider
// holds fonts added from memory or a fonts directory, SystemProvider looks
// families up among the installed system fonts with go-findfont. A
// Selector chains providers, then the configured default family and
// default font file, and finally the built-in Go Regular face, so that a
// face is always returned.
//
//	sel := fonts.NewSelector(mem, fonts.NewSystemProvider())
//	face := sel.Select(fonts.Request{Family: "Arial", Weight: 700})
//	fb := sel.ForRune(fonts.Request{Family: "Arial"}, 'ש')
package fonts
