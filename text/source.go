package text

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// nextSourceID numbers FontSources so that caches can key on them.
var nextSourceID atomic.Uint64

// FontSource represents one loaded face of a font file.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	id     uint64
	index  int
	data   []byte
	parsed ParsedFont

	family   string
	fullName string
	psName   string
	weight   int
	italic   bool

	mu     sync.RWMutex
	closed bool
}

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	parserName string
	faceIndex  int
	copyData   bool
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName: defaultParserName,
		copyData:   true,
	}
}

// WithParser specifies the font parser backend registered with
// RegisterParser. The default is "ximage".
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithFaceIndex selects a face of a TTC/OTC collection.
func WithFaceIndex(i int) SourceOption {
	return func(c *sourceConfig) {
		c.faceIndex = i
	}
}

// WithSharedData makes the source keep the caller's slice instead of a
// copy. The caller must not modify it afterwards.
func WithSharedData() SourceOption {
	return func(c *sourceConfig) {
		c.copyData = false
	}
}

// NewFontSource creates a FontSource from font data (TTF, OTF, TTC or
// OTC). The data slice is copied unless WithSharedData is given.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data, config.faceIndex)
	if err != nil {
		return nil, err
	}

	if config.copyData {
		data = append([]byte(nil), data...)
	}

	s := &FontSource{
		id:     nextSourceID.Add(1),
		index:  config.faceIndex,
		data:   data,
		parsed: parsed,
	}
	s.addr = s
	s.family = extractFontName(parsed)
	s.fullName = parsed.FullName()
	s.psName = parsed.PostScriptName()
	s.weight, s.italic = styleFromSubfamily(parsed.Subfamily())
	if parsed.ItalicAngle() != 0 {
		s.italic = true
	}
	return s, nil
}

// NewFontSources creates one FontSource per face of a font file.
func NewFontSources(data []byte, opts ...SourceOption) ([]*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	n, err := getParser(config.parserName).NumFaces(data)
	if err != nil {
		return nil, err
	}

	shared := append([]byte(nil), data...)
	out := make([]*FontSource, 0, n)
	for i := range n {
		faceOpts := append(append([]SourceOption(nil), opts...), WithFaceIndex(i), WithSharedData())
		s, err := NewFontSource(shared, faceOpts...)
		if err != nil {
			return out, fmt.Errorf("text: face %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// NewFontSourceFromFile loads the first face of a font file.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return NewFontSource(data, append(opts, WithSharedData())...)
}

// ID returns a process-unique identifier for the source.
func (s *FontSource) ID() uint64 {
	s.copyCheck()
	return s.id
}

// Index returns the face index within the font file.
func (s *FontSource) Index() int {
	s.copyCheck()
	return s.index
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.family
}

// FullName returns the full face name ("Arial Bold").
func (s *FontSource) FullName() string {
	s.copyCheck()
	return s.fullName
}

// PostScriptName returns the PostScript name of the face.
func (s *FontSource) PostScriptName() string {
	s.copyCheck()
	return s.psName
}

// Weight returns the face weight (400 regular, 700 bold).
func (s *FontSource) Weight() int {
	s.copyCheck()
	return s.weight
}

// Italic reports whether the face is italic or oblique.
func (s *FontSource) Italic() bool {
	s.copyCheck()
	return s.italic
}

// Data returns the raw font file bytes. The caller must not modify them.
func (s *FontSource) Data() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Parsed returns the parsed font, or nil after Close.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// HasGlyph reports whether the face maps r to a glyph.
func (s *FontSource) HasGlyph(r rune) bool {
	p := s.Parsed()
	return p != nil && p.GlyphIndex(r) != 0
}

// Close releases the font data. Close is idempotent.
func (s *FontSource) Close() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.parsed = nil
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *FontSource) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}

// styleFromSubfamily guesses weight and slant from a style name such as
// "SemiBold Italic".
func styleFromSubfamily(sub string) (weight int, italic bool) {
	s := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(sub))
	italic = strings.Contains(s, "italic") || strings.Contains(s, "oblique")
	weight = 400
	for _, w := range subfamilyWeights {
		if strings.Contains(s, w.name) {
			return w.weight, italic
		}
	}
	return weight, italic
}

// Longer names come first so that "extrabold" is not read as "bold".
var subfamilyWeights = []struct {
	name   string
	weight int
}{
	{"extralight", 200},
	{"ultralight", 200},
	{"extrabold", 800},
	{"ultrabold", 800},
	{"semibold", 600},
	{"demibold", 600},
	{"hairline", 100},
	{"medium", 500},
	{"black", 900},
	{"heavy", 900},
	{"light", 300},
	{"thin", 100},
	{"bold", 700},
}
