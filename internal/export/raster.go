// Package export turns a displayed QR rendering into the downloadable PNG
// artifact and hands it to a Saver.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrInvalidSVG is returned when the vector rendering has no drawable area.
var ErrInvalidSVG = errors.New("export: invalid svg")

// Rasterize draws svg scaled onto a size×size canvas. The canvas is painted
// opaque white first so areas the vector leaves uncovered stay white.
func Rasterize(svg []byte, size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("export: invalid raster size %d", size)
	}
	if len(svg) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSVG)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("export: parsing svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("%w: no viewBox", ErrInvalidSVG)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1)
	return img, nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encoding png: %w", err)
	}
	return nil
}
