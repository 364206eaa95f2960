// Package render turns coverages back into images for previews and file
// output. Nodata pixels render fully transparent.
package render

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/wudi/rasterkit/coverage"
)

// Image renders a coverage to an NRGBA image. Single-band coverages render
// as a linear grayscale stretch over the valid sample range; coverages with
// three or more data bands render the first three as RGB clamped to 0..255.
func Image(c *coverage.Coverage) (*image.NRGBA, error) {
	if c == nil {
		return nil, errors.New("nil coverage")
	}
	r := c.Raster
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))

	if r.DataBands() == 1 {
		lo, hi, any := validRange(c)
		scale := 0.0
		if any && hi > lo {
			scale = 255 / (hi - lo)
		}
		for row := 0; row < r.Height; row++ {
			for col := 0; col < r.Width; col++ {
				v := r.At(0, col, row)
				if r.IsNoData(0, v) || !opaque(c, col, row) {
					img.SetNRGBA(col, row, color.NRGBA{})
					continue
				}
				g := clamp255(v)
				if any && hi > lo {
					g = clamp255((v - lo) * scale)
				}
				img.SetNRGBA(col, row, color.NRGBA{R: g, G: g, B: g, A: 255})
			}
		}
		return img, nil
	}

	if r.DataBands() < 3 {
		return nil, errors.New("cannot render a two-band coverage")
	}
	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			if r.IsNoData(0, r.At(0, col, row)) || !opaque(c, col, row) {
				img.SetNRGBA(col, row, color.NRGBA{})
				continue
			}
			img.SetNRGBA(col, row, color.NRGBA{
				R: clamp255(r.At(0, col, row)),
				G: clamp255(r.At(1, col, row)),
				B: clamp255(r.At(2, col, row)),
				A: 255,
			})
		}
	}
	return img, nil
}

// Overview scales img so its longer edge is at most maxDim pixels,
// preserving aspect ratio. Images already small enough are returned as-is.
func Overview(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func opaque(c *coverage.Coverage, col, row int) bool {
	r := c.Raster
	if !r.AlphaBand {
		return true
	}
	return r.At(r.NumBands()-1, col, row) != 0
}

func validRange(c *coverage.Coverage) (lo, hi float64, any bool) {
	r := c.Raster
	for _, v := range r.Bands[0] {
		if r.IsNoData(0, v) {
			continue
		}
		if !any {
			lo, hi, any = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, any
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
