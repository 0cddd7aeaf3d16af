package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/ass"
	"github.com/gogpu/ass/track"
)

// scene is a small YAML description of a subtitle track.
type scene struct {
	PlayResX int          `yaml:"play_res_x"`
	PlayResY int          `yaml:"play_res_y"`
	Wrap     int          `yaml:"wrap_style"`
	Styles   []sceneStyle `yaml:"styles"`
	Events   []sceneEvent `yaml:"events"`
}

type sceneStyle struct {
	Name      string  `yaml:"name"`
	Font      string  `yaml:"font"`
	Size      float64 `yaml:"size"`
	Primary   string  `yaml:"primary"`
	Secondary string  `yaml:"secondary"`
	OutlineC  string  `yaml:"outline_colour"`
	Back      string  `yaml:"back"`
	Bold      bool    `yaml:"bold"`
	Italic    bool    `yaml:"italic"`
	Border    int     `yaml:"border_style"`
	Outline   float64 `yaml:"outline"`
	Shadow    float64 `yaml:"shadow"`
	Alignment int     `yaml:"alignment"`
	MarginV   int     `yaml:"margin_v"`
}

type sceneEvent struct {
	Start int64  `yaml:"start"`
	End   int64  `yaml:"end"`
	Layer int    `yaml:"layer"`
	Style string `yaml:"style"`
	Text  string `yaml:"text"`
}

const defaultScene = `
play_res_x: 640
play_res_y: 360
styles:
  - name: Default
    font: Go
    size: 36
    outline: 2
    shadow: 2
events:
  - {start: 0, end: 5000, text: "Hello from {\\b1}ass{\\b0}!"}
  - {start: 0, end: 5000, text: "{\\an8\\bord3\\3c&H802000&}Top line\\Nwith a break"}
  - {start: 0, end: 5000, text: "{\\pos(120,180)\\frz20\\blur2\\c&H00C0FF&}Rotated"}
  - {start: 0, end: 5000, text: "{\\pos(520,180)\\kf100}Kara{\\kf100}oke"}
  - {start: 0, end: 5000, text: "{\\pos(320,120)\\an5\\p1\\1c&H3050E0&\\bord0\\shad0}m 0 0 l 80 0 80 40 0 40"}
`

func loadScene(path string) (*scene, error) {
	data := []byte(defaultScene)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read scene: %w", err)
		}
	}
	var sc scene
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &sc, nil
}

// build creates a track from the scene, applying the library's style
// overrides.
func (sc *scene) build(lib *ass.Library) (*track.Track, error) {
	t := lib.NewTrack()
	t.PlayResX, t.PlayResY = sc.PlayResX, sc.PlayResY
	t.WrapStyle = sc.Wrap

	names := make(map[string]int)
	for _, s := range sc.Styles {
		st := track.DefaultStyle(s.Name)
		if s.Font != "" {
			st.FontName = s.Font
		}
		if s.Size > 0 {
			st.FontSize = s.Size
		}
		for _, c := range []struct {
			src string
			dst *track.Color
		}{
			{s.Primary, &st.PrimaryColour},
			{s.Secondary, &st.SecondaryColour},
			{s.OutlineC, &st.OutlineColour},
			{s.Back, &st.BackColour},
		} {
			if c.src == "" {
				continue
			}
			v, ok := track.ParseColor(c.src)
			if !ok {
				return nil, fmt.Errorf("style %s: bad colour %q", s.Name, c.src)
			}
			*c.dst = v
		}
		st.Bold = 0
		if s.Bold {
			st.Bold = 1
		}
		st.Italic = s.Italic
		if s.Border != 0 {
			st.BorderStyle = s.Border
		}
		st.Outline = s.Outline
		st.Shadow = s.Shadow
		if s.Alignment != 0 {
			st.Alignment = s.Alignment
		}
		if s.MarginV != 0 {
			st.MarginV = s.MarginV
		}
		names[s.Name] = t.AllocStyle(st)
	}
	if len(sc.Styles) == 0 {
		t.AllocStyle(track.DefaultStyle("Default"))
	}
	if err := lib.ApplyStyleOverrides(t); err != nil {
		return nil, err
	}

	for i, e := range sc.Events {
		ev := track.Event{
			ReadOrder: int64(i),
			Start:     e.Start,
			End:       e.End,
			Layer:     e.Layer,
			Text:      e.Text,
		}
		ev.Style = t.DefaultStyle
		if id, ok := names[e.Style]; ok {
			ev.Style = id
		}
		t.AddEvent(ev)
	}
	return t, nil
}
