package signature

import "errors"

var (
	ErrInvalidSize = errors.New("invalid raster size")
	ErrEncode      = errors.New("signature encoding failed")
	ErrDecode      = errors.New("signature decoding failed")
)
