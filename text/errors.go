package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrFaceIndex is returned when a collection has no face at the
	// requested index.
	ErrFaceIndex = errors.New("text: face index out of range")

	// ErrUnsupportedFontType is returned when a ParsedFont has no sfnt
	// backing for outline extraction.
	ErrUnsupportedFontType = errors.New("text: unsupported font type for outline extraction")

	// ErrClosed is returned when a closed FontSource is used.
	ErrClosed = errors.New("text: font source is closed")
)
