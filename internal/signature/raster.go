package signature

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"

	"github.com/RomaniOSDev/17PaperRoost/internal/logging"
)

const (
	DefaultStrokeWidth = 4.0

	// circle approximation with four cubic Béziers
	kappa = 0.5522847498

	zeroLengthThreshold = 1e-9
)

type options struct {
	width      float64
	stroke     color.Color
	background color.Color
}

// Option changes how Rasterize paints.
type Option func(*options)

// WithStrokeWidth sets the pen width in output pixels.
func WithStrokeWidth(w float64) Option {
	return func(o *options) { o.width = w }
}

func WithStrokeColor(c color.Color) Option {
	return func(o *options) { o.stroke = c }
}

func WithBackground(c color.Color) Option {
	return func(o *options) { o.background = c }
}

// Rasterizer paints lines into images and encodes them with its Codec.
type Rasterizer struct {
	codec  Codec
	logger logging.Logger
}

func NewRasterizer(logger logging.Logger) *Rasterizer {
	return NewRasterizerWithCodec(PNGCodec{}, logger)
}

func NewRasterizerWithCodec(codec Codec, logger logging.Logger) *Rasterizer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Rasterizer{codec: codec, logger: logger}
}

// HighQuality renders lines at SizeFull; this is the form stored with a
// contract.
func (r *Rasterizer) HighQuality(lines []Line) ([]byte, error) {
	return r.Rasterize(lines, SizeFull)
}

func (r *Rasterizer) Preview(lines []Line) ([]byte, error) {
	return r.Rasterize(lines, SizePreview)
}

func (r *Rasterizer) Thumbnail(lines []Line) ([]byte, error) {
	return r.Rasterize(lines, SizeThumbnail)
}

// Rasterize paints lines on a canvas of the given size and encodes it.
// Points are scaled from ReferenceCanvas on each axis independently, so a
// size with a different aspect ratio stretches the strokes. Lines are drawn
// in order as round-capped, round-joined polylines; empty lines are skipped.
func (r *Rasterizer) Rasterize(lines []Line, size Size, opts ...Option) ([]byte, error) {
	img, err := r.Paint(lines, size, opts...)
	if err != nil {
		return nil, err
	}

	data, err := r.codec.Encode(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// Paint is Rasterize without the encoding step.
func (r *Rasterizer) Paint(lines []Line, size Size, opts ...Option) (*image.RGBA, error) {
	if !size.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}

	o := options{width: DefaultStrokeWidth, stroke: color.Black, background: color.White}
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || math.IsNaN(o.width) {
		return nil, fmt.Errorf("%w: stroke width %v", ErrInvalidSize, o.width)
	}

	if AspectMismatch(size) {
		r.logger.Debug(context.Background(), "signature stretched to non-reference aspect ratio",
			"size", size.String(), "reference", ReferenceCanvas.String())
	}

	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(o.background), image.Point{}, draw.Src)

	sx := float64(size.Width) / float64(ReferenceCanvas.Width)
	sy := float64(size.Height) / float64(ReferenceCanvas.Height)

	z := vector.NewRasterizer(size.Width, size.Height)
	half := o.width / 2
	painted := false

	for _, line := range lines {
		if len(line.Points) == 0 {
			continue
		}

		prev := scale(line.Points[0], sx, sy)
		addDisc(z, prev, half)
		for _, p := range line.Points[1:] {
			cur := scale(p, sx, sy)
			addSegment(z, prev, cur, half)
			addDisc(z, cur, half)
			prev = cur
		}
		painted = true
	}

	if painted {
		z.Draw(dst, dst.Bounds(), image.NewUniform(o.stroke), image.Point{})
	}
	return dst, nil
}

func scale(p Point, sx, sy float64) vec.Vec2 {
	return vec.Vec2{X: p.X * sx, Y: p.Y * sy}
}

// addSegment adds the rectangle swept by a pen of radius half moving from
// a to b. Discs at both ends supply the round caps and joins. Every shape
// is emitted with the same winding so overlaps saturate instead of
// cancelling.
func addSegment(z *vector.Rasterizer, a, b vec.Vec2, half float64) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	n := vec.Vec2{X: -t.Y, Y: t.X}.Mul(half)

	p0 := a.Sub(n)
	p1 := b.Sub(n)
	p2 := b.Add(n)
	p3 := a.Add(n)

	z.MoveTo(float32(p0.X), float32(p0.Y))
	z.LineTo(float32(p1.X), float32(p1.Y))
	z.LineTo(float32(p2.X), float32(p2.Y))
	z.LineTo(float32(p3.X), float32(p3.Y))
	z.ClosePath()
}

func addDisc(z *vector.Rasterizer, c vec.Vec2, radius float64) {
	cx, cy, r := float32(c.X), float32(c.Y), float32(radius)
	kr := float32(kappa) * r

	z.MoveTo(cx, cy-r)
	z.CubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	z.CubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	z.CubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	z.CubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	z.ClosePath()
}
