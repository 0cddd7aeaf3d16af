package ass

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ass/fonts"
	"github.com/gogpu/ass/track"
)

// Library is the shared state of one or more renderers: registered fonts,
// the fonts directory, style overrides and the logger.
//
// Library is safe for concurrent use.
type Library struct {
	mu             sync.RWMutex
	memory         *fonts.MemoryProvider
	fontsDir       string
	extractFonts   bool
	styleOverrides []string

	logger atomic.Pointer[slog.Logger]
	// fontGen changes whenever the set of fonts changes, so renderers
	// know to rebuild their font selection and caches.
	fontGen atomic.Uint64
}

// NewLibrary creates a library with no fonts registered.
func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{memory: fonts.NewMemoryProvider()}
	l.logger.Store(newNopLogger())
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) bumpFonts() { l.fontGen.Add(1) }

// FontsGeneration identifies the current set of registered fonts.
func (l *Library) FontsGeneration() uint64 { return l.fontGen.Load() }

// SetFontsDir registers every font file in dir. It returns the number of
// faces loaded; files that fail to load are reported in the error and
// skipped.
func (l *Library) SetFontsDir(dir string) (int, error) {
	l.mu.Lock()
	l.fontsDir = dir
	l.mu.Unlock()
	if dir == "" {
		return 0, nil
	}
	n, err := l.memory.AddDir(dir)
	if n > 0 {
		l.bumpFonts()
	}
	if err != nil {
		l.Logger().Warn("fonts directory: some files failed to load", "dir", dir, "err", err)
	} else {
		l.Logger().Info("fonts directory loaded", "dir", dir, "faces", n)
	}
	return n, err
}

// FontsDir returns the directory set with SetFontsDir.
func (l *Library) FontsDir() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fontsDir
}

// AddFont registers a font file held in memory, such as a font embedded
// in a script. name is the file name the font was stored under.
func (l *Library) AddFont(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFontData, name)
	}
	if err := l.memory.AddFont(name, data); err != nil {
		return fmt.Errorf("ass: add font %s: %w", name, err)
	}
	l.bumpFonts()
	l.Logger().Info("font added", "name", name)
	return nil
}

// ClearFonts forgets every font added with AddFont or SetFontsDir.
func (l *Library) ClearFonts() {
	l.memory.Clear()
	l.bumpFonts()
}

// NumFonts returns the number of registered faces.
func (l *Library) NumFonts() int { return l.memory.Len() }

// SetExtractFonts controls whether parsers should register fonts
// embedded in scripts through AddFont.
func (l *Library) SetExtractFonts(extract bool) {
	l.mu.Lock()
	l.extractFonts = extract
	l.mu.Unlock()
}

// ExtractFonts reports the value set with SetExtractFonts.
func (l *Library) ExtractFonts() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.extractFonts
}

// SetStyleOverrides sets the "[Style.]Param=Value" overrides applied by
// ApplyStyleOverrides. A nil list clears them.
func (l *Library) SetStyleOverrides(overrides []string) {
	l.mu.Lock()
	l.styleOverrides = slices.Clone(overrides)
	l.mu.Unlock()
}

// StyleOverrides returns a copy of the current overrides.
func (l *Library) StyleOverrides() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.styleOverrides)
}

// ApplyStyleOverrides applies the library's style overrides to t. Parsers
// call it once the track's styles are loaded.
func (l *Library) ApplyStyleOverrides(t *track.Track) error {
	overrides := l.StyleOverrides()
	if t == nil || len(overrides) == 0 {
		return nil
	}
	return t.ProcessForceStyle(overrides)
}

// NewTrack creates an empty track.
func (l *Library) NewTrack() *track.Track {
	return track.New()
}
