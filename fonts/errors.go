package fonts

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a provider has no face for a family.
var ErrNotFound = errors.New("fonts: family not found")

// LoadError reports a font file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fonts: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
