package ass

import (
	"image"
	"math"

	"github.com/gogpu/ass/internal/raster"
	"github.com/gogpu/ass/layout"
	"github.com/gogpu/ass/style"
	"github.com/gogpu/ass/tags"
	"github.com/gogpu/ass/text"
	"github.com/gogpu/ass/track"
)

// blurFWHM converts a \blur radius to a Gaussian sigma: the blur radius
// is taken as half the width at half maximum.
const blurFWHM = 2.355

// RenderFrame renders the events of t active at now (milliseconds) and
// returns the images in drawing order together with how the result
// differs from the previous call.
//
// Layers are drawn in increasing order, and within an event shadows come
// before borders and borders before fills. The returned images remain
// valid until the next call.
func (r *Renderer) RenderFrame(t *track.Track, now int64) (*Image, Change) {
	if r == nil {
		return nil, ChangeNone
	}
	if t == nil || t.Closed() {
		change := r.prev.compare(frameSnapshot{})
		r.prev = frameSnapshot{}
		return nil, change
	}
	r.ensure()
	// Evictions happen here, before anything of this frame is fetched.
	r.caches.trim()

	fr := r.frameFor(t)
	t.LockFeatures()
	opts := layout.Options{
		Frame:       fr,
		Kerning:     t.Kerning,
		Language:    t.Language,
		WholeText:   t.Enabled(track.FeatureWholeTextLayout),
		Brackets:    t.Enabled(track.FeatureBidiBrackets),
		WrapUnicode: t.Enabled(track.FeatureWrapUnicode),
	}
	resolver := style.Resolver{
		Bits:      r.overrideBits,
		User:      r.overrideStyle,
		FontScale: r.fontScale,
		Logger:    r.logger,
	}

	var events []*eventImages
	for _, ev := range t.Active(now) {
		res, ok := resolver.Resolve(t, ev, now)
		if !ok {
			continue
		}
		lev := r.engine.Layout(res, &opts)
		if lev.Empty() {
			continue
		}
		events = append(events, r.renderEvent(t, lev, &fr))
	}
	fixCollisions(events)
	head := link(events)

	snap := takeSnapshot(head)
	change := r.prev.compare(snap)
	r.prev = snap
	t.AfterRender(now)
	return head, change
}

// eventImages holds the images of one event until collisions are
// resolved.
type eventImages struct {
	layer int
	// collide marks unpositioned events, which avoid each other.
	collide bool
	// down moves the event downwards on collision (top alignment).
	down bool
	// box is the text block in frame pixels.
	box image.Rectangle
	// frame bounds the images after a collision shift.
	frame image.Rectangle

	shadows, borders, fills []*Image
}

// shift moves the event vertically and crops its images to the frame
// again, dropping those that leave it.
func (e *eventImages) shift(dy int) {
	for _, list := range []*[]*Image{&e.shadows, &e.borders, &e.fills} {
		kept := (*list)[:0]
		for _, img := range *list {
			img.DstY += dy
			if img.cropTo(e.frame) {
				kept = append(kept, img)
			}
		}
		*list = kept
	}
	e.box = e.box.Add(image.Pt(0, dy))
}

// link chains the images of all events into one list.
func link(events []*eventImages) *Image {
	var head, tail *Image
	add := func(img *Image) {
		if tail == nil {
			head = img
		} else {
			tail.Next = img
		}
		tail = img
	}
	for _, e := range events {
		for _, list := range [][]*Image{e.shadows, e.borders, e.fills} {
			for _, img := range list {
				img.Next = nil
				add(img)
			}
		}
	}
	return head
}

// part is a stretch of glyphs of one run on one line, rendered with one
// set of effects.
type part struct {
	run, line int
	glyphs    []int
}

func partsOf(ev *layout.Event) []*part {
	type key struct{ line, run int }
	index := make(map[key]*part)
	var parts []*part
	for i := range ev.Glyphs {
		g := &ev.Glyphs[i]
		k := key{g.Line, g.Run}
		p, ok := index[k]
		if !ok {
			p = &part{run: g.Run, line: g.Line}
			index[k] = p
			parts = append(parts, p)
		}
		p.glyphs = append(p.glyphs, i)
	}
	return parts
}

// effects are the frame pixel effect sizes of a run.
type effects struct {
	borderX, borderY float64
	shadowX, shadowY float64
	sigma            float64
	be               int
	box              bool
}

func effectsOf(st *style.State, ev *layout.Event) effects {
	bs := ev.BorderScale
	fx := effects{
		borderX: max(st.BorderX, 0) * bs * ev.Aspect,
		borderY: max(st.BorderY, 0) * bs,
		shadowX: st.ShadowX * bs * ev.Aspect,
		shadowY: st.ShadowY * bs,
		sigma:   2 * max(st.Blur, 0) * bs / blurFWHM,
		be:      int(math.Round(max(st.BlurEdges, 0))),
		box:     st.BorderStyle == track.BorderOpaqueBox,
	}
	if st.BorderStyle == track.BorderOpaqueBox4 {
		// The event box stands in for the shadow.
		fx.shadowX, fx.shadowY = 0, 0
	}
	return fx
}

func (r *Renderer) renderEvent(t *track.Track, ev *layout.Event, fr *layout.Frame) *eventImages {
	res := ev.Resolved
	out := &eventImages{
		layer:   res.Event.Layer,
		collide: !ev.Positioned,
		down:    res.Alignment >= 7,
		frame:   image.Rect(0, 0, fr.Width, fr.Height),
		box: image.Rect(
			int(math.Floor(ev.Box.MinX)), int(math.Floor(ev.Box.MinY)),
			int(math.Ceil(ev.Box.MaxX)), int(math.Ceil(ev.Box.MaxY))),
	}
	cl := clipFor(res, fr)
	if cl.hidden {
		return out
	}
	if res.Style.BorderStyle == track.BorderOpaqueBox4 {
		r.eventBox(t, out, ev, cl)
	}

	for _, p := range partsOf(ev) {
		run := &res.Runs[p.run]
		st := &run.State
		fx := effectsOf(st, ev)
		c, rx, ry, ok := r.composite(t, ev, p, fx)
		if !ok {
			continue
		}

		k := karaokeProgress(run.Karaoke, float64(res.Time))
		if !fx.box && run.Karaoke.Active && run.Karaoke.Mode == tags.KaraokeOutline && k == 0 {
			c.border = nil
		}
		// Opaque boxes take the outline colour like borders do.
		cl.emit(&out.shadows, c.shadow, rx, ry, st.Colors[3], ImageShadow, everything)
		cl.emit(&out.borders, c.border, rx, ry, st.Colors[2], ImageOutline, everything)

		primary, secondary := st.Colors[0], st.Colors[1]
		switch {
		case !run.Karaoke.Active || k >= 1:
			cl.emit(&out.fills, c.fill, rx, ry, primary, ImageCharacter, everything)
		case k <= 0:
			cl.emit(&out.fills, c.fill, rx, ry, secondary, ImageCharacter, everything)
		default:
			x0, x1 := penExtent(ev, p)
			split := int(math.Round(x0 + k*(x1-x0)))
			cl.emit(&out.fills, c.fill, rx, ry, primary, ImageCharacter,
				image.Rect(math.MinInt32, math.MinInt32, split, math.MaxInt32))
			cl.emit(&out.fills, c.fill, rx, ry, secondary, ImageCharacter,
				image.Rect(split, math.MinInt32, math.MaxInt32, math.MaxInt32))
		}
	}
	return out
}

// karaokeProgress returns how much of a syllable is highlighted at time
// now, in [0, 1]. \k and \ko switch at the syllable start, \kf sweeps
// over its duration.
func karaokeProgress(k style.Karaoke, now float64) float64 {
	switch {
	case !k.Active:
		return 1
	case now < k.Start:
		return 0
	case now >= k.Start+k.Duration:
		return 1
	case k.Mode == tags.KaraokeFill:
		return (now - k.Start) / k.Duration
	}
	return 1
}

// penExtent returns the horizontal frame extent of the pen positions of
// a part.
func penExtent(ev *layout.Event, p *part) (float64, float64) {
	x0, x1 := math.Inf(1), math.Inf(-1)
	for _, gi := range p.glyphs {
		g := &ev.Glyphs[gi]
		for _, a := range []float64{0, g.Advance} {
			x, _ := g.Matrix.Apply(a, 0)
			x0 = math.Min(x0, x)
			x1 = math.Max(x1, x)
		}
	}
	return x0, x1
}

// eventBox draws the single box of BorderStyle 4 events in the back
// colour.
func (r *Renderer) eventBox(t *track.Track, out *eventImages, ev *layout.Event, cl *clipArea) {
	res := ev.Resolved
	var first *layout.Glyph
	for i := range ev.Glyphs {
		if !ev.Glyphs[i].Skip {
			first = &ev.Glyphs[i]
			break
		}
	}
	if first == nil {
		return
	}
	st := &res.Runs[first.Run].State
	fx := effectsOf(st, ev)
	w := ev.Box.Width() + 2*fx.borderX
	h := ev.Box.Height() + 2*fx.borderY
	rect := raster.Rect(0, 0, w, h)
	// The run transform without the glyph's pen position.
	m := first.Matrix.Mul(text.TranslateMatrix(ev.Box.MinX-fx.borderX-first.X, ev.Box.MinY-fx.borderY-first.Y))
	ok := OutlineKey{Drawing: hashOutline(rect)}
	gb, bkey, ix, iy, err := r.glyphBitmap(ok, func() (*text.Outline, error) { return rect, nil }, m, 0, 0)
	if err != nil || gb.fill == nil {
		return
	}
	b := gb.fill
	if fx.sigma > 0 {
		key := CompositeKey{
			Track:  t.Generation(),
			Blur:   fixed64(fx.sigma),
			Box:    true,
			Glyphs: string(append(appendBitmapKey(nil, &bkey, 0, 0), 'e')),
		}
		c, _ := r.caches.composites.GetOrCreate(key, func() (composite, int64, error) {
			c := composite{shadow: raster.Blur(gb.fill, fx.sigma, fx.sigma)}
			return c, c.cost(), nil
		})
		b = c.shadow
	}
	cl.emit(&out.shadows, b, ix, iy, st.Colors[3], ImageShadow, everything)
}

// glyphBitmap returns the cached bitmaps of an outline under transform
// m, relative to the whole-pixel origin (ix, iy) of the glyph.
func (r *Renderer) glyphBitmap(ok OutlineKey, load func() (*text.Outline, error), m text.Matrix, bx, by float64) (glyphBitmaps, BitmapKey, int, int, error) {
	ox, oy := m.Apply(0, 0)
	ix, iy := int(math.Floor(ox)), int(math.Floor(oy))
	rel := text.TranslateMatrix(-float64(ix), -float64(iy)).Mul(m)
	if rel.Z0 > 0 && rel.Z0 != 1 {
		rel = scaleMatrix(rel, 1/rel.Z0)
	}
	key := BitmapKey{
		Outline: ok,
		Matrix:  quantizeMatrix(rel),
		BorderX: fixed64(bx),
		BorderY: fixed64(by),
	}
	gb, err := r.caches.bitmaps.GetOrCreate(key, func() (glyphBitmaps, int64, error) {
		o, err := r.caches.outlines.GetOrCreate(ok, func() (*text.Outline, int64, error) {
			o, err := load()
			return o, 1, err
		})
		if err != nil {
			return glyphBitmaps{}, 0, err
		}
		gb := rasterize(o, key.Matrix.matrix(), float64(key.BorderX)/64, float64(key.BorderY)/64)
		return gb, gb.cost(), nil
	})
	return gb, key, ix, iy, err
}

// rasterize fills o transformed by m and, for a positive border, the
// stroke ring around it merged with the fill.
func rasterize(o *text.Outline, m text.Matrix, bx, by float64) glyphBitmaps {
	to := o.Transform(m)
	gb := glyphBitmaps{fill: raster.Fill(to)}
	if (bx > 0 || by > 0) && !to.IsEmpty() {
		gb.border = raster.Union(raster.Fill(raster.Stroke(to, bx, by)), gb.fill)
	}
	return gb
}

func scaleMatrix(m text.Matrix, k float64) text.Matrix {
	return text.Matrix{
		XX: m.XX * k, XY: m.XY * k, X0: m.X0 * k,
		YX: m.YX * k, YY: m.YY * k, Y0: m.Y0 * k,
		ZX: m.ZX * k, ZY: m.ZY * k, Z0: m.Z0 * k,
	}
}

func fixed64(v float64) int32 { return int32(math.Round(v * 64)) }

// emboldenStrength is the synthetic bold growth per pixel of em size.
const (
	emboldenX = 1.0 / 32
	emboldenY = 1.0 / 64
)

// outlineOf returns the outline key of a glyph and a loader for its
// outline.
func (r *Renderer) outlineOf(g *layout.Glyph) (OutlineKey, func() (*text.Outline, error)) {
	if g.Drawing != nil {
		d := g.Drawing
		return OutlineKey{Drawing: hashOutline(d)}, func() (*text.Outline, error) { return d, nil }
	}
	src := g.Face.Source
	key := OutlineKey{
		Font:     src.ID(),
		Glyph:    g.GID,
		Size:     fixed64(g.Size),
		Hinting:  r.hinting,
		Embolden: g.Face.Embolden,
	}
	size, gid, hinting, bold := g.Size, g.GID, r.hinting, g.Face.Embolden
	return key, func() (*text.Outline, error) {
		o, err := r.extractor.Extract(src, gid, size, hinting)
		if err != nil {
			return nil, err
		}
		if bold {
			o = o.Embolden(size*emboldenX, size*emboldenY)
		}
		return o, nil
	}
}

// composite returns the combined bitmaps of a part, relative to the
// whole-pixel origin (rx, ry) of its first glyph.
func (r *Renderer) composite(t *track.Track, ev *layout.Event, p *part, fx effects) (composite, int, int, bool) {
	type ref struct {
		gb     glyphBitmaps
		ix, iy int
		box    bool
	}
	var refs []ref
	var buf []byte
	add := func(gb glyphBitmaps, key BitmapKey, ix, iy int, box bool) {
		if len(refs) > 0 {
			ix0, iy0 := refs[0].ix, refs[0].iy
			buf = appendBitmapKey(buf, &key, ix-ix0, iy-iy0)
		} else {
			buf = appendBitmapKey(buf, &key, 0, 0)
		}
		if box {
			buf = append(buf, 'b')
		}
		refs = append(refs, ref{gb: gb, ix: ix, iy: iy, box: box})
	}

	for _, gi := range p.glyphs {
		g := &ev.Glyphs[gi]
		if !g.Skip && (g.Drawing != nil || g.Face.Source != nil) {
			bx, by := fx.borderX, fx.borderY
			if fx.box {
				bx, by = 0, 0
			}
			ok, load := r.outlineOf(g)
			gb, key, ix, iy, err := r.glyphBitmap(ok, load, g.Transform(), bx, by)
			if err != nil {
				r.logger.Debug("glyph skipped", "rune", string(g.Rune), "glyph", g.GID, "err", err)
			} else {
				add(gb, key, ix, iy, false)
			}
		}
		if fx.box {
			rect := raster.Rect(-fx.borderX, -g.Ascent-fx.borderY, g.Advance+fx.borderX, g.Descent+fx.borderY)
			ok := OutlineKey{Drawing: hashOutline(rect)}
			gb, key, ix, iy, err := r.glyphBitmap(ok, func() (*text.Outline, error) { return rect, nil }, g.Matrix, 0, 0)
			if err == nil {
				add(gb, key, ix, iy, true)
			}
		}
	}
	if len(refs) == 0 {
		return composite{}, 0, 0, false
	}

	rx, ry := refs[0].ix, refs[0].iy
	hollow := !fx.box && fx.sigma == 0 && fx.be == 0
	key := CompositeKey{
		Track:     t.Generation(),
		Blur:      fixed64(fx.sigma),
		BlurEdges: int32(fx.be),
		Box:       fx.box,
		Hollow:    hollow,
		ShadowX:   fixed64(fx.shadowX),
		ShadowY:   fixed64(fx.shadowY),
		Glyphs:    string(buf),
	}
	c, _ := r.caches.composites.GetOrCreate(key, func() (composite, int64, error) {
		var c composite
		place := func(dst **raster.Bitmap, b *raster.Bitmap, dx, dy int) {
			if b.Empty() {
				return
			}
			view := *b
			view.Translate(dx, dy)
			*dst = raster.Union(*dst, &view)
		}
		for _, f := range refs {
			dx, dy := f.ix-rx, f.iy-ry
			if f.box {
				place(&c.border, f.gb.fill, dx, dy)
				continue
			}
			place(&c.fill, f.gb.fill, dx, dy)
			place(&c.border, f.gb.border, dx, dy)
		}

		target := &c.fill
		if c.border != nil {
			target = &c.border
		}
		if fx.be > 0 {
			*target = raster.BoxBlur3x3(*target, fx.be)
		}
		if fx.sigma > 0 {
			*target = raster.Blur(*target, fx.sigma, fx.sigma)
		}
		if fx.shadowX != 0 || fx.shadowY != 0 {
			src := c.fill
			if c.border != nil {
				src = c.border
			}
			c.shadow = raster.Shift(src, float64(key.ShadowX)/64, float64(key.ShadowY)/64)
		}
		if hollow && c.border != nil {
			raster.Subtract(c.border, c.fill)
		}
		return c, c.cost(), nil
	})
	return c, rx, ry, true
}
