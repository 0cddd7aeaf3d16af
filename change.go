package ass

import "bytes"

// Change tells how a frame differs from the one before it.
type Change int

const (
	// ChangeNone means the images are identical.
	ChangeNone Change = iota
	// ChangePosition means only image positions changed.
	ChangePosition
	// ChangeContent means bitmaps, colours or the image count changed.
	ChangeContent
)

// String returns the change level name.
func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangePosition:
		return "position"
	case ChangeContent:
		return "content"
	default:
		return "unknown"
	}
}

// imageState is what change detection remembers of an image. It keeps
// the bitmap slice, so a buffer cannot be freed and reused for different
// content while it is remembered.
type imageState struct {
	x, y   int
	w, h   int
	stride int
	color  uint32
	typ    ImageType
	data   []byte
}

type frameSnapshot struct {
	images []imageState
}

func takeSnapshot(head *Image) frameSnapshot {
	var s frameSnapshot
	for img := range head.All() {
		s.images = append(s.images, imageState{
			x: img.DstX, y: img.DstY,
			w: img.W, h: img.H,
			stride: img.Stride,
			color:  img.Color,
			typ:    img.Type,
			data:   img.Bitmap,
		})
	}
	return s
}

// compare reports the change from s to next. Bitmaps in different
// buffers are compared row by row, so recomputed but equal masks count
// as unchanged.
func (s frameSnapshot) compare(next frameSnapshot) Change {
	if len(s.images) != len(next.images) {
		return ChangeContent
	}
	change := ChangeNone
	for i := range s.images {
		a, b := &s.images[i], &next.images[i]
		if a.w != b.w || a.h != b.h || a.color != b.color || a.typ != b.typ || !sameContent(a, b) {
			return ChangeContent
		}
		if a.x != b.x || a.y != b.y {
			change = ChangePosition
		}
	}
	return change
}

// sameContent compares the visible rows of two images of equal size.
func sameContent(a, b *imageState) bool {
	if a.stride == b.stride && sameBuffer(a.data, b.data) {
		return true
	}
	for y := range a.h {
		ra := a.data[y*a.stride : y*a.stride+a.w]
		rb := b.data[y*b.stride : y*b.stride+b.w]
		if !bytes.Equal(ra, rb) {
			return false
		}
	}
	return true
}

func sameBuffer(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
