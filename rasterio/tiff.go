// Package rasterio reads and writes georeferenced rasters. Pixel data
// comes from baseline TIFF (or PNG) images; georeferencing comes from a
// sidecar world file. Decoded coverages carry float64 samples scaled to
// the source bit depth.
package rasterio

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/wudi/rasterkit/coverage"
	"github.com/wudi/rasterkit/geo"
	"github.com/wudi/rasterkit/grid"
	"github.com/wudi/rasterkit/raster"
)

// ReadOptions control how decoded images become coverages.
type ReadOptions struct {
	// Name labels the coverage; file-based readers default to the base
	// file name.
	Name string
	// CRS defaults to geo.WGS84.
	CRS geo.CRS
	// NoData is applied to every data band.
	NoData float64
	// Alpha keeps the image alpha channel as a trailing coverage mask
	// band. Without it color images decode to three bands.
	Alpha bool
}

// Read decodes TIFF pixel data and a world file into a coverage.
func Read(img io.Reader, worldFile io.Reader, opts ReadOptions) (*coverage.Coverage, error) {
	decoded, err := tiff.Decode(img)
	if err != nil {
		return nil, fmt.Errorf("decode tiff: %w", err)
	}
	transform, err := ReadWorldFile(worldFile)
	if err != nil {
		return nil, err
	}
	return fromImage(decoded, transform, opts)
}

// ReadFile opens a TIFF and its sibling world file (same path with a .tfw
// extension) and decodes them into a coverage.
func ReadFile(path string, opts ReadOptions) (*coverage.Coverage, error) {
	img, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	wfPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".tfw"
	wf, err := os.Open(wfPath)
	if err != nil {
		return nil, fmt.Errorf("world file for %s: %w", path, err)
	}
	defer wf.Close()

	if opts.Name == "" {
		opts.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return Read(img, wf, opts)
}

// fromImage converts decoded pixels to band-major float64 samples. Gray
// images become one band; everything else three (plus the alpha mask when
// requested). 16-bit channels are scaled down to the 0..255 range so nodata
// values behave the same across bit depths.
func fromImage(img image.Image, transform geo.Affine, opts ReadOptions) (*coverage.Coverage, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	gray := false
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		gray = true
	}

	bands := 3
	if gray {
		bands = 1
	}
	if opts.Alpha {
		bands++
	}
	r, err := raster.New(w, h, bands)
	if err != nil {
		return nil, err
	}
	r.AlphaBand = opts.Alpha
	for b := 0; b < r.DataBands(); b++ {
		r.NoData[b] = opts.NoData
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			cr, cg, cb, ca := img.At(bounds.Min.X+col, bounds.Min.Y+row).RGBA()
			if gray {
				r.Set(0, col, row, float64(cr>>8))
			} else {
				r.Set(0, col, row, float64(cr>>8))
				r.Set(1, col, row, float64(cg>>8))
				r.Set(2, col, row, float64(cb>>8))
			}
			if opts.Alpha {
				r.Set(bands-1, col, row, float64(ca>>8))
			}
		}
	}

	g, err := grid.New(transform, w, h)
	if err != nil {
		return nil, err
	}
	crs := opts.CRS
	if crs.IsZero() {
		crs = geo.WGS84
	}
	return coverage.New(opts.Name, r, g, crs)
}

// EncodeTIFF writes img as an uncompressed baseline TIFF.
func EncodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Uncompressed})
}

// EncodePNG writes img as a PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteImageFile writes img to path, choosing the codec from the
// extension (.png or .tif/.tiff).
func WriteImageFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return EncodePNG(f, img)
	case ".tif", ".tiff":
		return EncodeTIFF(f, img)
	}
	return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
}
