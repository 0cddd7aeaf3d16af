package track

// Feature is a per-track rendering extension that VSFilter does not have.
type Feature uint

const (
	// FeatureIncompatibleExtensions toggles every feature below at once.
	FeatureIncompatibleExtensions Feature = 1 << iota
	// FeatureBidiBrackets matches bracket pairs during bidi resolution.
	FeatureBidiBrackets
	// FeatureWholeTextLayout runs bidi and shaping over the whole event
	// text instead of per override-tag segment.
	FeatureWholeTextLayout
	// FeatureWrapUnicode breaks lines with the Unicode line breaking
	// algorithm instead of only at spaces.
	FeatureWrapUnicode
)

const incompatible = FeatureBidiBrackets | FeatureWholeTextLayout | FeatureWrapUnicode

// SetFeature enables or disables f. Features can only be changed before
// the track is first rendered.
func (t *Track) SetFeature(f Feature, enable bool) error {
	if t.featuresLocked {
		return ErrFeaturesLocked
	}
	var bits Feature
	switch f {
	case FeatureIncompatibleExtensions:
		bits = FeatureIncompatibleExtensions | incompatible
	case FeatureBidiBrackets, FeatureWholeTextLayout, FeatureWrapUnicode:
		bits = f
	default:
		return ErrUnknownFeature
	}
	if enable {
		t.features |= bits
	} else {
		t.features &^= bits
	}
	return nil
}

// Enabled reports whether f is on.
func (t *Track) Enabled(f Feature) bool { return t.features&f != 0 }

// LockFeatures freezes the feature set. The renderer calls it on the
// first render of the track.
func (t *Track) LockFeatures() { t.featuresLocked = true }

// FeaturesLocked reports whether SetFeature will be rejected.
func (t *Track) FeaturesLocked() bool { return t.featuresLocked }
