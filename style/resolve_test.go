package style

import (
	"math"
	"testing"

	"github.com/gogpu/ass/tags"
	"github.com/gogpu/ass/track"
)

func testTrack(text string) (*track.Track, *track.Event) {
	tr := track.New()
	tr.PlayResX, tr.PlayResY = 640, 480
	st := track.DefaultStyle("Default")
	st.FontSize = 40
	tr.AllocStyle(st)
	alt := track.DefaultStyle("Alt")
	alt.FontName = "Alt Font"
	tr.AllocStyle(alt)
	id, _ := tr.AddEvent(track.Event{Start: 1000, End: 3000, Text: text})
	ev, _ := tr.Event(id)
	return tr, ev
}

func resolve(t *testing.T, r *Resolver, text string, now int64) *Resolved {
	t.Helper()
	tr, ev := testTrack(text)
	res, ok := r.Resolve(tr, ev, now)
	if !ok {
		t.Fatalf("Resolve(%q) failed", text)
	}
	return res
}

func TestResolveRuns(t *testing.T) {
	res := resolve(t, &Resolver{}, `Hello {\b1\fs20}big{\r} plain\Nnext`, 1500)
	if len(res.Runs) != 3 {
		t.Fatalf("got %d runs; want 3", len(res.Runs))
	}
	if res.Runs[0].State.FontSize != 40 {
		t.Errorf("run 0 size = %v", res.Runs[0].State.FontSize)
	}
	if res.Runs[1].State.FontSize != 20 || res.Runs[1].State.Bold != 1 {
		t.Errorf("run 1 state = %+v", res.Runs[1].State)
	}
	if res.Runs[2].State.FontSize != 40 {
		t.Errorf("\\r did not reset: size = %v", res.Runs[2].State.FontSize)
	}
	if res.Runs[2].Text != " plain\nnext" {
		t.Errorf("run 2 text = %q", res.Runs[2].Text)
	}
}

func TestResolveMissingStyle(t *testing.T) {
	tr := track.New()
	id, _ := tr.AddEvent(track.Event{Style: 3, End: 10, Text: "x"})
	ev, _ := tr.Event(id)
	if _, ok := (&Resolver{}).Resolve(tr, ev, 0); ok {
		t.Error("Resolve succeeded without any style")
	}

	// The track default is not substituted for a missing style.
	tr.AllocStyle(track.DefaultStyle("Default"))
	if _, ok := (&Resolver{}).Resolve(tr, ev, 0); ok {
		t.Error("Resolve fell back to the default style")
	}
}

func TestResolveResetToNamedStyle(t *testing.T) {
	res := resolve(t, &Resolver{}, `a{\rAlt}b`, 1000)
	if got := res.Runs[1].State.FontName; got != "Alt Font" {
		t.Errorf("FontName after \\rAlt = %q", got)
	}
}

func TestResolveEventWideTags(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\an8\an2\pos(10,20)\pos(30,40)\org(5,6)\q2}a\nb`, 1500)
	if res.Alignment != 8 {
		t.Errorf("Alignment = %d; first \\an should win", res.Alignment)
	}
	if !res.HasPos || res.PosX != 10 || res.PosY != 20 {
		t.Errorf("Pos = %v %v,%v", res.HasPos, res.PosX, res.PosY)
	}
	if !res.HasOrg || res.OrgX != 5 {
		t.Errorf("Org = %v %v", res.HasOrg, res.OrgX)
	}
	if res.WrapStyle != 2 || res.Runs[0].Text != "a\nb" {
		t.Errorf("WrapStyle = %d text %q", res.WrapStyle, res.Runs[0].Text)
	}
	if !res.Explicit {
		t.Error("\\pos event not explicit")
	}
}

func TestResolveMove(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\move(0,0,200,100)}x`, 2000)
	if !res.Moving || res.PosX != 100 || res.PosY != 50 {
		t.Errorf("move at half = %v %v,%v", res.Moving, res.PosX, res.PosY)
	}
}

func TestResolveTransform(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\t(\fs80\frz90\1c&H0000FF&)}x`, 2000)
	st := res.Runs[0].State
	if math.Abs(st.FontSize-60) > 1e-9 {
		t.Errorf("FontSize = %v; want 60", st.FontSize)
	}
	if math.Abs(st.RotZ-45) > 1e-9 {
		t.Errorf("RotZ = %v; want 45", st.RotZ)
	}
	if r := st.Colors[Primary].R(); r != 0xFF {
		t.Errorf("red = %#x; white to red keeps 0xff", r)
	}
	if g := st.Colors[Primary].G(); g != 0x80 {
		t.Errorf("green = %#x; want 0x80", g)
	}
}

func TestResolveFade(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\fad(500,500)}x`, 1000)
	if res.Fade != 0xFF {
		t.Errorf("Fade at start = %#x", res.Fade)
	}
	if a := res.Runs[0].State.Colors[Primary].A(); a != 0xFF {
		t.Errorf("primary alpha = %#x; want transparent", a)
	}
	res = resolve(t, &Resolver{}, `{\fad(500,500)}x`, 2000)
	if res.Fade != 0 {
		t.Errorf("Fade mid = %#x", res.Fade)
	}
}

func TestResolveKaraoke(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\k50}ka{\kf100}ra{\ko20}o`, 1000)
	want := []Karaoke{
		{Active: true, Mode: tags.KaraokeSwitch, Start: 0, Duration: 500},
		{Active: true, Mode: tags.KaraokeFill, Start: 500, Duration: 1000},
		{Active: true, Mode: tags.KaraokeOutline, Start: 1500, Duration: 200},
	}
	for i, w := range want {
		if res.Runs[i].Karaoke != w {
			t.Errorf("run %d karaoke = %+v; want %+v", i, res.Runs[i].Karaoke, w)
		}
	}
}

func TestResolveClip(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\clip(100,50,10,5)}x`, 1000)
	c := res.Clip
	if c.Mode != ClipRect || c.X0 != 10 || c.Y0 != 5 || c.X1 != 100 || c.Y1 != 50 {
		t.Errorf("clip = %+v", c)
	}
	res = resolve(t, &Resolver{}, `{\iclip(m 0 0 l 1 0 1 1)}x`, 1000)
	if res.Clip.Mode != ClipVector || !res.Clip.Inverse || len(res.Clip.Path) == 0 {
		t.Errorf("vector clip = %+v", res.Clip)
	}
}

func TestResolveEmptyText(t *testing.T) {
	res := resolve(t, &Resolver{}, `{\b1}`, 1000)
	if len(res.Runs) != 0 {
		t.Errorf("got %d runs for tag-only text", len(res.Runs))
	}
}

func TestResolveEventMargins(t *testing.T) {
	tr, ev := testTrack("x")
	ev.MarginL = 99
	res, _ := (&Resolver{}).Resolve(tr, ev, 1000)
	if res.MarginL != 99 || res.MarginR != 20 {
		t.Errorf("margins = %d %d", res.MarginL, res.MarginR)
	}
}
