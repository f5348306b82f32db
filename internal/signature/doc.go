// Package signature captures hand-drawn signatures and turns them into
// images.
//
// A Pad records pointer input as strokes (Lines of Points) on a 1000×600
// reference canvas. A Rasterizer paints committed lines onto a white
// canvas of one of the canonical sizes and encodes the result (PNG by
// default). Only the encoded image is ever stored; Rerender redraws a
// stored image at another size, keeping its aspect ratio and centring it.
//
// Typical use:
//
//	pad := signature.NewPad()
//	pad.BeginStroke(signature.Point{X: 10, Y: 20})
//	pad.ExtendStroke(signature.Point{X: 40, Y: 25})
//	pad.EndStroke()
//
//	png, err := signature.NewRasterizer(logger).HighQuality(pad.Lines())
package signature
