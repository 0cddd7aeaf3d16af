package ass

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ass/text"
)

// Config is a renderer configuration document.
//
//	frame: {width: 1920, height: 1080}
//	shaping: complex
//	fonts:
//	  dir: ./fonts
//	  family: Go
//	  system: true
//	cache: {glyphs: 20000, bitmap_bytes: 268435456}
type Config struct {
	Frame        SizeConfig    `yaml:"frame"`
	Storage      SizeConfig    `yaml:"storage"`
	Margins      MarginsConfig `yaml:"margins"`
	UseMargins   bool          `yaml:"use_margins"`
	PixelAspect  float64       `yaml:"pixel_aspect"`
	FontScale    float64       `yaml:"font_scale"`
	Hinting      string        `yaml:"hinting"`
	Shaping      string        `yaml:"shaping"`
	LineSpacing  float64       `yaml:"line_spacing"`
	LinePosition float64       `yaml:"line_position"`
	// LineBreaker is auto, space, unicode or uax14.
	LineBreaker  string        `yaml:"line_breaker"`
	Fonts        FontsConfig   `yaml:"fonts"`
	Cache        CacheConfig   `yaml:"cache"`
	// StyleOverrides are "[Style.]Param=Value" entries for the library.
	StyleOverrides []string `yaml:"style_overrides,omitempty"`
}

// SizeConfig is a width and height in pixels.
type SizeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// MarginsConfig are frame margins in pixels.
type MarginsConfig struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// FontsConfig configures font lookup.
type FontsConfig struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"`
	Family  string `yaml:"family"`
	System  bool   `yaml:"system"`
}

// CacheConfig bounds the renderer caches; zero keeps the defaults.
type CacheConfig struct {
	Glyphs      int   `yaml:"glyphs"`
	BitmapBytes int64 `yaml:"bitmap_bytes"`
}

// DefaultConfig returns the configuration of a new renderer.
func DefaultConfig() Config {
	return Config{
		FontScale:   1,
		Hinting:     "none",
		Shaping:     "simple",
		LineBreaker: "auto",
	}
}

// LoadConfig reads a configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("ass: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration document. Fields missing from
// the document keep their DefaultConfig values; unknown fields are an
// error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Frame.Width < 0 || c.Frame.Height < 0:
		return fmt.Errorf("%w: negative frame size", ErrInvalidConfig)
	case c.Storage.Width < 0 || c.Storage.Height < 0:
		return fmt.Errorf("%w: negative storage size", ErrInvalidConfig)
	case c.PixelAspect < 0:
		return fmt.Errorf("%w: negative pixel aspect", ErrInvalidConfig)
	case c.FontScale < 0:
		return fmt.Errorf("%w: negative font scale", ErrInvalidConfig)
	case c.LinePosition < 0 || c.LinePosition > 100:
		return fmt.Errorf("%w: line position %v outside [0, 100]", ErrInvalidConfig, c.LinePosition)
	case c.Cache.Glyphs < 0 || c.Cache.BitmapBytes < 0:
		return fmt.Errorf("%w: negative cache limit", ErrInvalidConfig)
	}
	if _, err := parseHinting(c.Hinting); err != nil {
		return err
	}
	if _, err := parseShaping(c.Shaping); err != nil {
		return err
	}
	if _, err := parseBreaker(c.LineBreaker); err != nil {
		return err
	}
	return nil
}

func parseHinting(s string) (text.Hinting, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return text.HintingNone, nil
	case "light":
		return text.HintingLight, nil
	case "normal":
		return text.HintingNormal, nil
	case "native":
		return text.HintingNative, nil
	}
	return 0, fmt.Errorf("%w: unknown hinting %q", ErrInvalidConfig, s)
}

func parseShaping(s string) (ShapingLevel, error) {
	switch strings.ToLower(s) {
	case "", "simple":
		return ShapingSimple, nil
	case "complex":
		return ShapingComplex, nil
	}
	return 0, fmt.Errorf("%w: unknown shaping %q", ErrInvalidConfig, s)
}

func parseBreaker(s string) (text.LineBreaker, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return nil, nil
	case "space":
		return text.SpaceBreaker{}, nil
	case "unicode":
		return text.UnicodeBreaker{}, nil
	case "uax14":
		return text.UAX14Breaker{}, nil
	}
	return nil, fmt.Errorf("%w: unknown line breaker %q", ErrInvalidConfig, s)
}

func breakerName(b text.LineBreaker) string {
	switch b.(type) {
	case text.SpaceBreaker:
		return "space"
	case text.UnicodeBreaker:
		return "unicode"
	case text.UAX14Breaker:
		return "uax14"
	}
	return "auto"
}

// ApplyConfig applies cfg to the renderer and its library: settings,
// fonts directory and style overrides.
func (r *Renderer) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	hinting, _ := parseHinting(cfg.Hinting)
	shaping, _ := parseShaping(cfg.Shaping)
	breaker, _ := parseBreaker(cfg.LineBreaker)

	r.SetFrameSize(cfg.Frame.Width, cfg.Frame.Height)
	r.SetStorageSize(cfg.Storage.Width, cfg.Storage.Height)
	m := cfg.Margins
	r.SetMargins(m.Top, m.Bottom, m.Left, m.Right)
	r.SetUseMargins(cfg.UseMargins)
	r.SetPixelAspect(cfg.PixelAspect)
	r.SetFontScale(cfg.FontScale)
	r.SetHinting(hinting)
	r.SetShaper(shaping)
	r.SetLineSpacing(cfg.LineSpacing)
	r.SetLinePosition(cfg.LinePosition)
	r.SetLineBreaker(breaker)
	r.SetCacheLimits(cfg.Cache.Glyphs, cfg.Cache.BitmapBytes)

	if cfg.Fonts.Dir != "" && cfg.Fonts.Dir != r.lib.FontsDir() {
		if _, err := r.lib.SetFontsDir(cfg.Fonts.Dir); err != nil {
			return err
		}
	}
	r.SetFonts(cfg.Fonts.Default, cfg.Fonts.Family, cfg.Fonts.System)
	if cfg.StyleOverrides != nil {
		r.lib.SetStyleOverrides(cfg.StyleOverrides)
	}
	return nil
}

// Config returns the renderer's current settings as a Config.
func (r *Renderer) Config() Config {
	return Config{
		Frame:        SizeConfig{Width: r.frameW, Height: r.frameH},
		Storage:      SizeConfig{Width: r.storageW, Height: r.storageH},
		Margins:      MarginsConfig{Top: r.margins[0], Bottom: r.margins[1], Left: r.margins[2], Right: r.margins[3]},
		UseMargins:   r.useMargins,
		PixelAspect:  r.pixelAspect,
		FontScale:    r.fontScale,
		Hinting:      strings.ToLower(r.hinting.String()),
		Shaping:      r.shaping.String(),
		LineSpacing:  r.lineSpacing,
		LinePosition: r.linePosition,
		LineBreaker:  breakerName(r.breaker),
		Fonts: FontsConfig{
			Dir:     r.lib.FontsDir(),
			Default: r.defaultFont,
			Family:  r.defaultFamily,
			System:  r.useSystemFonts,
		},
		Cache:          CacheConfig{Glyphs: r.glyphMax, BitmapBytes: r.bitmapMax},
		StyleOverrides: r.lib.StyleOverrides(),
	}
}
