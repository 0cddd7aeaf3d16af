package track

import "errors"

var (
	// ErrUnknownFeature is returned by SetFeature for an unsupported feature.
	ErrUnknownFeature = errors.New("track: unknown feature")

	// ErrFeaturesLocked is returned by SetFeature once the track has been
	// rendered.
	ErrFeaturesLocked = errors.New("track: features are locked after the first render")

	// ErrBadOverride reports a malformed "[Style.]Param=Value" override.
	ErrBadOverride = errors.New("track: malformed style override")
)
