package signature

import (
	"bytes"
	"image"
	"image/png"
)

// Codec turns rasters into stored bytes and back.
type Codec interface {
	Encode(img image.Image) ([]byte, error)
	Decode(data []byte) (image.Image, error)
}

// PNGCodec is the default Codec. Its output is deterministic for a given
// image.
type PNGCodec struct {
	Level png.CompressionLevel
}

func (c PNGCodec) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: c.Level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (PNGCodec) Decode(data []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(data))
}
