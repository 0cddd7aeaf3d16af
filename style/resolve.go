package style

import (
	"log/slog"
	"strings"

	"github.com/gogpu/ass/tags"
	"github.com/gogpu/ass/track"
)

// ClipMode describes an event's clip.
type ClipMode uint8

const (
	ClipNone ClipMode = iota
	ClipRect
	ClipVector
)

// Clip is an event clip in script coordinates.
type Clip struct {
	Mode    ClipMode
	Inverse bool
	// X0, Y0, X1, Y1 bound a rectangular clip.
	X0, Y0, X1, Y1 float64
	// Path and Scale describe a vector clip.
	Path  []tags.PathCmd
	Scale int
}

// Karaoke is the timing of a run's karaoke syllable, in ms relative to
// the event start.
type Karaoke struct {
	Active   bool
	Mode     tags.KaraokeMode
	Start    float64
	Duration float64
}

// Run is a span of event text sharing one State.
type Run struct {
	Text  string
	State State
	// Segment is the index of the override group the run follows.
	Segment int
	Karaoke Karaoke
}

// Resolved is an event with its style fully resolved at one instant.
type Resolved struct {
	Event *track.Event
	// Style is the event's style after selective overrides.
	Style    track.Style
	Explicit bool
	// FontScale is the global font scale to apply to this event.
	FontScale float64

	Alignment int
	WrapStyle int
	Justify   int
	MarginL   int
	MarginR   int
	MarginV   int

	HasPos     bool
	Moving     bool
	PosX, PosY float64
	HasOrg     bool
	OrgX, OrgY float64

	// Fade is a transparency combined with every colour of the event.
	Fade uint8
	Clip Clip

	// Time is the query time relative to the event start.
	Time     int64
	Duration int64

	Runs []Run
}

// Resolver turns events into resolved runs.
type Resolver struct {
	// Bits selects the selective override groups.
	Bits Override
	// User is the selective override style.
	User track.Style
	// FontScale is the global font scale; 0 means 1.
	FontScale float64
	Logger    *slog.Logger
}

func (r *Resolver) log() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

// Explicit reports whether segs carry tags that mark the event as
// positioned rather than plain dialogue, or the event uses a scrolling
// effect. The check is a heuristic and can misclassify.
func Explicit(ev *track.Event, segs []tags.Segment) bool {
	if strings.HasPrefix(ev.Effect, "Banner;") || strings.HasPrefix(ev.Effect, "Scroll ") {
		return true
	}
	for _, s := range segs {
		for _, c := range s.Tags {
			if c.Kind.Explicit() {
				return true
			}
		}
	}
	return false
}

// Resolve evaluates ev at time now. It reports false when the event's
// style does not exist.
func (r *Resolver) Resolve(tr *track.Track, ev *track.Event, now int64) (*Resolved, bool) {
	base, ok := tr.Style(ev.Style)
	if !ok {
		r.log().Debug("style: event references missing style", "event", ev.ID, "style", ev.Style)
		return nil, false
	}
	segs := tags.Parse(ev.Text)
	explicit := Explicit(ev, segs)

	res := &Resolved{
		Event:     ev,
		Explicit:  explicit,
		FontScale: 1,
		WrapStyle: tr.WrapStyle,
		Time:      now - ev.Start,
		Duration:  tr.EndOf(ev) - ev.Start,
	}
	if ev.UntilNext && res.Duration > 1<<40 {
		res.Duration = res.Time + 1
	}
	if r.FontScale > 0 && (!explicit || r.Bits&OverrideSelectiveFontScale == 0) {
		res.FontScale = r.FontScale
	}
	res.Style = r.effective(base, explicit, tr.PlayResY)
	res.Alignment = res.Style.Alignment
	res.Justify = res.Style.Justify
	res.MarginL = pick(ev.MarginL, res.Style.MarginL)
	res.MarginR = pick(ev.MarginR, res.Style.MarginR)
	res.MarginV = pick(ev.MarginV, res.Style.MarginV)

	cur := &res.Style
	state := FromStyle(cur)
	var alignSet, posSet, orgSet, fadeSet bool
	var kara Karaoke
	karaNext := 0.0

	for si, seg := range segs {
		for i := range seg.Tags {
			c := &seg.Tags[i]
			switch c.Kind {
			case tags.Align:
				if !alignSet && !c.Revert {
					res.Alignment = int(c.Args[0])
					alignSet = true
				}
			case tags.WrapStyle:
				if !c.Revert {
					res.WrapStyle = int(c.Args[0])
				} else {
					res.WrapStyle = tr.WrapStyle
				}
			case tags.Pos:
				if !posSet {
					res.HasPos, posSet = true, true
					res.PosX, res.PosY = c.Args[0], c.Args[1]
				}
			case tags.Move:
				if !posSet {
					res.HasPos, res.Moving, posSet = true, true, true
					res.PosX, res.PosY = tags.MoveAt(c, res.Time, res.Duration)
				}
			case tags.Origin:
				if !orgSet {
					res.HasOrg, orgSet = true, true
					res.OrgX, res.OrgY = c.Args[0], c.Args[1]
				}
			case tags.Fade:
				if !fadeSet {
					res.Fade = tags.FadeAlpha(c, res.Time, res.Duration)
					fadeSet = true
				}
			case tags.Clip, tags.IClip:
				setClip(&res.Clip, c, 1)
			case tags.Reset:
				cur = &res.Style
				if c.Str != "" {
					if id, ok := tr.StyleByName(c.Str); ok {
						named, _ := tr.Style(id)
						st := r.effective(named, explicit, tr.PlayResY)
						cur = &st
					}
				}
				state = FromStyle(cur)
			case tags.Transform:
				k := tags.Progress(c, res.Time, res.Duration)
				for j := range c.Sub {
					sub := &c.Sub[j]
					if sub.Kind == tags.Clip || sub.Kind == tags.IClip {
						setClip(&res.Clip, sub, k)
						continue
					}
					state.apply(sub, k, cur)
				}
			case tags.Karaoke:
				kara = Karaoke{
					Active:   true,
					Mode:     tags.KaraokeMode(c.Index),
					Start:    karaNext,
					Duration: c.Args[0],
				}
				karaNext += c.Args[0]
			case tags.KaraokeT:
				karaNext = c.Args[0]
			default:
				state.apply(c, 1, cur)
			}
		}
		if seg.Text == "" {
			continue
		}
		res.Runs = append(res.Runs, Run{
			Text:    seg.Text,
			State:   state,
			Segment: si,
			Karaoke: kara,
		})
	}

	for i := range res.Runs {
		if res.Runs[i].State.Drawing == 0 {
			res.Runs[i].Text = tags.Unescape(res.Runs[i].Text, res.WrapStyle)
		}
	}
	if res.Fade != 0 {
		for i := range res.Runs {
			cs := &res.Runs[i].State.Colors
			for j := range cs {
				cs[j] = cs[j].WithAlpha(tags.MultAlpha(cs[j].A(), res.Fade))
			}
		}
	}
	return res, true
}

func (r *Resolver) effective(base *track.Style, explicit bool, playResY int) track.Style {
	if r.Bits == OverrideDefault {
		return *base
	}
	return Apply(base, &r.User, r.Bits, explicit, playResY)
}

// setClip applies a \clip or \iclip; k interpolates rectangle clips.
func setClip(cl *Clip, c *tags.Command, k float64) {
	inverse := c.Kind == tags.IClip
	if len(c.Args) == 4 {
		if k < 1 && cl.Mode == ClipRect {
			cl.X0 = tags.Lerp(cl.X0, c.Args[0], k)
			cl.Y0 = tags.Lerp(cl.Y0, c.Args[1], k)
			cl.X1 = tags.Lerp(cl.X1, c.Args[2], k)
			cl.Y1 = tags.Lerp(cl.Y1, c.Args[3], k)
			return
		}
		if k < 1 {
			return
		}
		x0, y0, x1, y1 := c.Args[0], c.Args[1], c.Args[2], c.Args[3]
		*cl = Clip{
			Mode:    ClipRect,
			Inverse: inverse,
			X0:      min(x0, x1), Y0: min(y0, y1),
			X1: max(x0, x1), Y1: max(y0, y1),
		}
		return
	}
	if c.Str == "" || k < 1 {
		return
	}
	*cl = Clip{
		Mode:    ClipVector,
		Inverse: inverse,
		Path:    tags.ParseDrawing(c.Str),
		Scale:   max(int(c.Arg(0, 1)), 1),
	}
}

func pick(eventMargin, styleMargin int) int {
	if eventMargin != 0 {
		return eventMargin
	}
	return styleMargin
}
