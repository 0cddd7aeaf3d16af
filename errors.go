package ass

import "errors"

var (
	// ErrInvalidConfig is returned for configuration documents that do not
	// decode or carry out-of-range values.
	ErrInvalidConfig = errors.New("ass: invalid config")

	// ErrNoFontData is returned by AddFont for empty font data.
	ErrNoFontData = errors.New("ass: empty font data")
)
