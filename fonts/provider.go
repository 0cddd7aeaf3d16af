package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/ass/text"
)

// Provider returns the faces of a font family, or ErrNotFound.
type Provider interface {
	Faces(family string) ([]*text.FontSource, error)
}

// NormalizeFamily folds a family name for lookups: case, surrounding
// space and the '@' prefix of vertical fonts are ignored.
func NormalizeFamily(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "@")
	return strings.ToLower(strings.TrimSpace(name))
}

// IsFontFile reports whether a file name has a font extension.
func IsFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// MemoryProvider holds fonts registered by the application or found in a
// fonts directory. Each face is indexed under its family, full and
// PostScript names. MemoryProvider is safe for concurrent use.
type MemoryProvider struct {
	mu      sync.RWMutex
	byName  map[string][]*text.FontSource
	sources []*text.FontSource
}

// NewMemoryProvider creates an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{byName: make(map[string][]*text.FontSource)}
}

// AddFont registers every face of font data. name is the file name the
// font was embedded under; it is indexed too.
func (p *MemoryProvider) AddFont(name string, data []byte) error {
	faces, err := text.NewFontSources(data)
	if err != nil {
		return &LoadError{Path: name, Err: err}
	}
	p.add(name, faces)
	return nil
}

// AddSource registers an already loaded face.
func (p *MemoryProvider) AddSource(src *text.FontSource) {
	p.add("", []*text.FontSource{src})
}

func (p *MemoryProvider) add(fileName string, faces []*text.FontSource) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range faces {
		p.sources = append(p.sources, f)
		keys := []string{f.Name(), f.FullName(), f.PostScriptName()}
		if fileName != "" {
			keys = append(keys, strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
		}
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			k = NormalizeFamily(k)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			p.byName[k] = append(p.byName[k], f)
		}
	}
}

// AddDir loads every font file directly inside dir. Files that fail to
// load are skipped and reported together in the returned error.
func (p *MemoryProvider) AddDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("fonts: read fonts dir: %w", err)
	}
	var errs []error
	n := 0
	for _, e := range entries {
		if e.IsDir() || !IsFontFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- fonts dir is configured by the user
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Err: err})
			continue
		}
		if err := p.AddFont(path, data); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

// Faces implements Provider.
func (p *MemoryProvider) Faces(family string) ([]*text.FontSource, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	faces := p.byName[NormalizeFamily(family)]
	if len(faces) == 0 {
		return nil, ErrNotFound
	}
	return slices.Clone(faces), nil
}

// Sources returns every registered face in registration order.
func (p *MemoryProvider) Sources() []*text.FontSource {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.sources)
}

// Len returns the number of registered faces.
func (p *MemoryProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sources)
}

// Clear forgets all registered fonts.
func (p *MemoryProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.byName = make(map[string][]*text.FontSource)
	p.sources = nil
}
