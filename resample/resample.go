// Package resample aligns coverages onto arbitrary grid geometries. It
// provides the point sampler the mosaic engine composites through and a
// caller-facing Warp that materializes a coverage on a new grid, optionally
// converting between the built-in CRS pair.
package resample

import (
	"context"
	"errors"
	"fmt"

	"github.com/wudi/rasterkit/coverage"
	"github.com/wudi/rasterkit/geo"
	"github.com/wudi/rasterkit/grid"
	"github.com/wudi/rasterkit/raster"
)

// Kernel selects the interpolation used when sampling between source
// pixels.
type Kernel int

const (
	// Nearest picks the sample of the pixel the position falls in.
	Nearest Kernel = iota
	// Bilinear blends the four surrounding pixel centers, ignoring nodata
	// neighbours.
	Bilinear
)

func (k Kernel) String() string {
	switch k {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	}
	return fmt.Sprintf("kernel(%d)", int(k))
}

// ParseKernel maps the CLI spelling of a kernel to its value.
func ParseKernel(s string) (Kernel, error) {
	switch s {
	case "nearest", "":
		return Nearest, nil
	case "bilinear":
		return Bilinear, nil
	}
	return 0, fmt.Errorf("unknown resampling kernel %q", s)
}

// Config drives Warp.
type Config struct {
	// Target is the output geometry. Zero value: keep the source grid
	// dimensions (reprojecting the envelope when CRS changes).
	Target grid.Geometry
	// CRS is the output system. Zero value: keep the source CRS.
	CRS geo.CRS
	// Kernel defaults to Nearest.
	Kernel Kernel
}

// Sampler evaluates a coverage at arbitrary CRS positions. The position
// system may differ from the source's when a transformer is supplied.
// A Sampler is safe for concurrent use: it only reads the source.
type Sampler struct {
	src      *coverage.Coverage
	inv      geo.Affine
	kernel   Kernel
	toSource geo.Transformer
}

// NewSampler builds a sampler over src. toSource converts query positions
// into the source CRS; pass nil when they already share a system.
func NewSampler(src *coverage.Coverage, kernel Kernel, toSource geo.Transformer) (*Sampler, error) {
	if src == nil {
		return nil, errors.New("nil source coverage")
	}
	inv, err := src.Grid.Transform.Invert()
	if err != nil {
		return nil, err
	}
	return &Sampler{src: src, inv: inv, kernel: kernel, toSource: toSource}, nil
}

// Sample evaluates every band at (x, y) into dst, which must hold
// NumBands() values. It reports false when the position misses the source
// footprint entirely; dst is untouched in that case.
func (s *Sampler) Sample(x, y float64, dst []float64) bool {
	if s.toSource != nil {
		x, y = s.toSource(x, y)
	}
	col, row := s.inv.Apply(x, y)
	switch s.kernel {
	case Bilinear:
		return s.bilinear(col, row, dst)
	default:
		return s.nearest(col, row, dst)
	}
}

func (s *Sampler) nearest(col, row float64, dst []float64) bool {
	r := s.src.Raster
	ci, ri := int(col), int(row)
	if col < 0 || row < 0 || ci >= r.Width || ri >= r.Height {
		return false
	}
	for b := range r.Bands {
		dst[b] = r.At(b, ci, ri)
	}
	return true
}

func (s *Sampler) bilinear(col, row float64, dst []float64) bool {
	r := s.src.Raster
	// Interpolate between pixel centers.
	fc, fr := col-0.5, row-0.5
	c0 := int(fc)
	r0 := int(fr)
	if fc < 0 {
		c0 = -1
	}
	if fr < 0 {
		r0 = -1
	}
	wx := fc - float64(c0)
	wy := fr - float64(r0)
	if c0 >= r.Width || r0 >= r.Height || c0 < -1 || r0 < -1 {
		return false
	}
	inside := false
	for b := range r.Bands {
		var sum, weight float64
		for dy := 0; dy <= 1; dy++ {
			for dx := 0; dx <= 1; dx++ {
				cc, rr := c0+dx, r0+dy
				if cc < 0 || rr < 0 || cc >= r.Width || rr >= r.Height {
					continue
				}
				inside = true
				v := r.At(b, cc, rr)
				if r.IsNoData(b, v) {
					continue
				}
				w := (1 - wx + float64(dx)*(2*wx-1)) * (1 - wy + float64(dy)*(2*wy-1))
				sum += w * v
				weight += w
			}
		}
		if weight > 0 {
			dst[b] = sum / weight
		} else {
			dst[b] = r.NoData[b]
		}
	}
	return inside
}

// Warp resamples src onto the configured grid geometry and CRS. Positions
// outside the source footprint become the source nodata value.
func Warp(ctx context.Context, src *coverage.Coverage, cfg Config) (*coverage.Coverage, error) {
	if src == nil {
		return nil, errors.New("nil source coverage")
	}
	dstCRS := cfg.CRS
	if dstCRS.IsZero() {
		dstCRS = src.CRS
	}
	toSource, err := geo.NewTransformer(dstCRS, src.CRS)
	if err != nil {
		return nil, err
	}

	target := cfg.Target
	if target == (grid.Geometry{}) {
		target, err = deriveTarget(src, dstCRS)
		if err != nil {
			return nil, err
		}
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	sampler, err := NewSampler(src, cfg.Kernel, toSource)
	if err != nil {
		return nil, err
	}
	out, err := raster.New(target.Width, target.Height, src.Raster.NumBands())
	if err != nil {
		return nil, err
	}
	copy(out.NoData, src.Raster.NoData)
	out.AlphaBand = src.Raster.AlphaBand

	buf := make([]float64, out.NumBands())
	for row := 0; row < target.Height; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for col := 0; col < target.Width; col++ {
			x, y := target.PixelToWorld(float64(col)+0.5, float64(row)+0.5)
			if sampler.Sample(x, y, buf) {
				for b := range buf {
					out.Set(b, col, row, buf[b])
				}
			} else {
				for b := range buf {
					out.Set(b, col, row, out.NoData[b])
				}
			}
		}
	}
	return coverage.New(src.Name, out, target, dstCRS)
}

// deriveTarget keeps the source pixel dimensions and maps the envelope into
// the destination CRS.
func deriveTarget(src *coverage.Coverage, dstCRS geo.CRS) (grid.Geometry, error) {
	if dstCRS.Equal(src.CRS) {
		return src.Grid, nil
	}
	forward, err := geo.NewTransformer(src.CRS, dstCRS)
	if err != nil {
		return grid.Geometry{}, err
	}
	env := src.Envelope()
	x0, y0 := forward(env.MinX, env.MinY)
	x1, y1 := forward(env.MaxX, env.MaxY)
	projected := geo.Envelope{MinX: x0, MinY: y0, MaxX: x0, MaxY: y0}.
		ExpandToInclude(x1, y1)
	return grid.FromEnvelope(projected,
		projected.Width()/float64(src.Grid.Width),
		projected.Height()/float64(src.Grid.Height))
}
