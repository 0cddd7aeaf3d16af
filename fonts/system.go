package fonts

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"

	"github.com/gogpu/ass/cache"
	"github.com/gogpu/ass/text"
)

// SystemProvider finds faces among the installed system fonts with
// go-findfont. Lookups, including misses, are cached per family.
type SystemProvider struct {
	find   func(string) (string, error)
	list   func() []string
	logger *slog.Logger

	families *cache.ShardedCache[string, []*text.FontSource]
	files    *cache.ShardedCache[string, []*text.FontSource]
}

// SystemOption configures a SystemProvider.
type SystemOption func(*SystemProvider)

// WithFontFiles replaces the system font scan with a fixed file list.
// Find falls back to matching the same list by file name.
func WithFontFiles(paths ...string) SystemOption {
	return func(p *SystemProvider) {
		p.list = func() []string { return paths }
		p.find = func(name string) (string, error) {
			want := strings.ToLower(name)
			for _, path := range paths {
				base := strings.ToLower(filepath.Base(path))
				if strings.TrimSuffix(base, filepath.Ext(base)) == want || base == want {
					return path, nil
				}
			}
			return "", ErrNotFound
		}
	}
}

// WithSystemLogger sets the logger for font files that fail to load.
func WithSystemLogger(l *slog.Logger) SystemOption {
	return func(p *SystemProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewSystemProvider creates a SystemProvider.
func NewSystemProvider(opts ...SystemOption) *SystemProvider {
	p := &SystemProvider{
		find:     findfont.Find,
		list:     findfont.List,
		logger:   slog.New(slog.DiscardHandler),
		families: cache.NewSharded[string, []*text.FontSource](cache.DefaultShardCapacity, cache.StringHasher),
		files:    cache.NewSharded[string, []*text.FontSource](cache.DefaultShardCapacity, cache.StringHasher),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Faces implements Provider. It loads the file go-findfont matches for
// the family plus every system font file whose name starts with the
// family, and keeps the faces whose family name matches.
func (p *SystemProvider) Faces(family string) ([]*text.FontSource, error) {
	key := NormalizeFamily(family)
	if key == "" {
		return nil, ErrNotFound
	}
	faces, _ := p.families.GetOrCreate(key, func() ([]*text.FontSource, error) {
		return p.lookup(key), nil
	})
	if len(faces) == 0 {
		return nil, ErrNotFound
	}
	return faces, nil
}

func (p *SystemProvider) lookup(key string) []*text.FontSource {
	compact := strings.ReplaceAll(key, " ", "")
	var paths []string
	if path, err := p.find(key); err == nil && path != "" {
		paths = append(paths, path)
	}
	for _, path := range p.list() {
		base := strings.ToLower(filepath.Base(path))
		if IsFontFile(base) && strings.HasPrefix(strings.ReplaceAll(base, " ", ""), compact) {
			paths = append(paths, path)
		}
	}

	var matched, loaded []*text.FontSource
	seen := make(map[string]bool)
	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true
		for _, f := range p.load(path) {
			loaded = append(loaded, f)
			if NormalizeFamily(f.Name()) == key || NormalizeFamily(f.FullName()) == key ||
				NormalizeFamily(f.PostScriptName()) == key {
				matched = append(matched, f)
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}
	// go-findfont matched by file name only; trust it when the family
	// name inside the file differs, as with localized names.
	return loaded
}

func (p *SystemProvider) load(path string) []*text.FontSource {
	faces, _ := p.files.GetOrCreate(path, func() ([]*text.FontSource, error) {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the font scan
		if err != nil {
			p.logger.Warn("system font unreadable", "path", path, "err", err)
			return nil, nil
		}
		faces, err := text.NewFontSources(data)
		if err != nil {
			p.logger.Debug("system font skipped", "path", path, "err", err)
		}
		return faces, nil
	})
	return faces
}

// Reset drops every cached lookup.
func (p *SystemProvider) Reset() {
	p.families.Clear()
	p.files.Clear()
}
