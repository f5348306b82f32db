package signature

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Rerender draws a stored signature image onto a white canvas of the given
// size, scaled uniformly and centred (see Fit), and encodes the result.
func (r *Rasterizer) Rerender(src []byte, size Size) ([]byte, error) {
	if !size.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSize, size)
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	img, err := r.codec.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := RerenderImage(img, size)

	data, err := r.codec.Encode(dst)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

// RerenderImage is Rerender on decoded images.
func RerenderImage(img image.Image, size Size) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	b := img.Bounds()
	if b.Empty() {
		return dst
	}

	p := Fit(Size{Width: b.Dx(), Height: b.Dy()}, size)
	target := image.Rect(
		int(math.Round(p.OffsetX)),
		int(math.Round(p.OffsetY)),
		int(math.Round(p.OffsetX+p.Width)),
		int(math.Round(p.OffsetY+p.Height)),
	)
	draw.CatmullRom.Scale(dst, target, img, b, draw.Over, nil)
	return dst
}
