package signature

import (
	"fmt"
	"math"
)

// Point is a position on the capture canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is one continuous stroke; point order is the drawing order.
type Line struct {
	Points []Point `json:"points"`
}

func (l Line) clone() Line {
	return Line{Points: append([]Point(nil), l.Points...)}
}

// Size is a raster size in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

func (s Size) valid() bool { return s.Width > 0 && s.Height > 0 }

// Canonical sizes. Captured coordinates are always relative to
// ReferenceCanvas.
var (
	ReferenceCanvas = Size{Width: 1000, Height: 600}
	SizeFull        = ReferenceCanvas
	SizePreview     = Size{Width: 800, Height: 500}
	SizeThumbnail   = Size{Width: 200, Height: 120}
)

const aspectTolerance = 1e-3

// AspectMismatch reports whether rasterizing into s stretches strokes,
// i.e. whether s does not share the reference canvas aspect ratio.
func AspectMismatch(s Size) bool {
	if !s.valid() {
		return true
	}
	ref := float64(ReferenceCanvas.Width) / float64(ReferenceCanvas.Height)
	got := float64(s.Width) / float64(s.Height)
	return math.Abs(ref-got) > aspectTolerance
}

// Placement describes where a source image lands inside a target canvas.
type Placement struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// Fit scales src uniformly to fit inside dst and centres it:
// scale = min(W/w, H/h), offset = (dst - src*scale) / 2.
func Fit(src, dst Size) Placement {
	scale := math.Min(float64(dst.Width)/float64(src.Width), float64(dst.Height)/float64(src.Height))
	w := float64(src.Width) * scale
	h := float64(src.Height) * scale
	return Placement{
		Scale:   scale,
		OffsetX: (float64(dst.Width) - w) / 2,
		OffsetY: (float64(dst.Height) - h) / 2,
		Width:   w,
		Height:  h,
	}
}
