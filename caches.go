package ass

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/gogpu/ass/cache"
	"github.com/gogpu/ass/internal/raster"
	"github.com/gogpu/ass/text"
)

// Default cache limits.
const (
	DefaultGlyphMax       = 10000
	DefaultBitmapMaxBytes = 128 << 20
	// DefaultCompositeMaxBytes bounds the combined bitmap cache.
	DefaultCompositeMaxBytes = 64 << 20
)

// OutlineKey identifies an untransformed glyph or drawing outline.
type OutlineKey struct {
	// Font is the font source id, 0 for drawings.
	Font  uint64
	Glyph text.GlyphID
	// Size is the size in 1/64 pixels per em.
	Size     int32
	Hinting  text.Hinting
	Embolden bool
	// Drawing hashes the outline of drawings, bars and boxes.
	Drawing uint64
}

// matrixKey is a transform quantized for use in keys.
type matrixKey [9]int64

// Quantization steps: linear terms 2^-16, translation 1/8 pixel,
// perspective terms 2^-30.
const (
	linearQ      = 1 << 16
	translationQ = 8
	perspectiveQ = 1 << 30
)

func quantizeMatrix(m text.Matrix) matrixKey {
	q := func(v, s float64) int64 { return int64(math.Round(v * s)) }
	return matrixKey{
		q(m.XX, linearQ), q(m.XY, linearQ), q(m.X0, translationQ),
		q(m.YX, linearQ), q(m.YY, linearQ), q(m.Y0, translationQ),
		q(m.ZX, perspectiveQ), q(m.ZY, perspectiveQ), q(m.Z0, linearQ),
	}
}

func (k matrixKey) matrix() text.Matrix {
	f := func(i int, s float64) float64 { return float64(k[i]) / s }
	return text.Matrix{
		XX: f(0, linearQ), XY: f(1, linearQ), X0: f(2, translationQ),
		YX: f(3, linearQ), YY: f(4, linearQ), Y0: f(5, translationQ),
		ZX: f(6, perspectiveQ), ZY: f(7, perspectiveQ), Z0: f(8, linearQ),
	}
}

// BitmapKey identifies a rasterized glyph: the outline, its transform
// relative to a whole-pixel origin, and the border size.
type BitmapKey struct {
	Outline OutlineKey
	Matrix  matrixKey
	// BorderX and BorderY are in 1/64 pixels.
	BorderX, BorderY int32
}

// CompositeKey identifies the combined bitmaps of a run of glyphs with
// their effects applied.
type CompositeKey struct {
	// Track is the generation of the track the glyphs came from.
	Track uint64
	// Blur is the Gaussian sigma in 1/64 pixels, BlurEdges the \be count.
	Blur      int32
	BlurEdges int32
	Box       bool
	Hollow    bool
	// ShadowX and ShadowY are the shadow offset in 1/64 pixels.
	ShadowX, ShadowY int32
	// Glyphs serializes the glyph bitmap keys and their offsets.
	Glyphs string
}

func appendBitmapKey(b []byte, k *BitmapKey, dx, dy int) []byte {
	o := &k.Outline
	b = binary.LittleEndian.AppendUint64(b, o.Font)
	b = binary.LittleEndian.AppendUint16(b, uint16(o.Glyph))
	b = binary.LittleEndian.AppendUint32(b, uint32(o.Size))
	b = append(b, byte(o.Hinting))
	if o.Embolden {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	b = binary.LittleEndian.AppendUint64(b, o.Drawing)
	for _, v := range k.Matrix {
		b = binary.AppendVarint(b, v)
	}
	b = binary.AppendVarint(b, int64(k.BorderX))
	b = binary.AppendVarint(b, int64(k.BorderY))
	b = binary.AppendVarint(b, int64(dx))
	b = binary.AppendVarint(b, int64(dy))
	return b
}

// hashOutline fingerprints a synthesized outline.
func hashOutline(o *text.Outline) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, s := range o.Segments {
		h.Write([]byte{byte(s.Op)})
		for i := range s.Op.NumPoints() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Points[i].X))
			h.Write(buf[:])
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(s.Points[i].Y))
			h.Write(buf[:])
		}
	}
	return h.Sum64() | 1
}

// glyphBitmaps is the value of the bitmap cache. Bitmaps are positioned
// relative to the glyph's whole-pixel origin.
type glyphBitmaps struct {
	fill   *raster.Bitmap
	border *raster.Bitmap
}

func (g glyphBitmaps) cost() int64 {
	return bitmapCost(g.fill) + bitmapCost(g.border)
}

// composite is the value of the composite cache.
type composite struct {
	fill, border, shadow *raster.Bitmap
}

func (c composite) cost() int64 {
	return bitmapCost(c.fill) + bitmapCost(c.border) + bitmapCost(c.shadow) + 64
}

func bitmapCost(b *raster.Bitmap) int64 {
	if b == nil {
		return 0
	}
	return int64(len(b.Buf)) + 48
}

// cacheSet is the renderer's cache hierarchy.
type cacheSet struct {
	outlines   *cache.LRU[OutlineKey, *text.Outline]
	bitmaps    *cache.LRU[BitmapKey, glyphBitmaps]
	composites *cache.LRU[CompositeKey, composite]
}

func newCacheSet(glyphMax int, bitmapMax int64) *cacheSet {
	if glyphMax <= 0 {
		glyphMax = DefaultGlyphMax
	}
	if bitmapMax <= 0 {
		bitmapMax = DefaultBitmapMaxBytes
	}
	return &cacheSet{
		outlines:   cache.NewLRU[OutlineKey, *text.Outline](glyphMax, 0),
		bitmaps:    cache.NewLRU[BitmapKey, glyphBitmaps](0, bitmapMax),
		composites: cache.NewLRU[CompositeKey, composite](0, DefaultCompositeMaxBytes),
	}
}

// trim enforces the limits. It runs between render calls only.
func (c *cacheSet) trim() {
	c.outlines.Trim()
	c.bitmaps.Trim()
	c.composites.Trim()
}

// CacheStats reports the activity of the three renderer caches.
type CacheStats struct {
	Outlines   cache.Stats
	Bitmaps    cache.Stats
	Composites cache.Stats
}
