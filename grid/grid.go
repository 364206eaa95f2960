// Package grid models the geometry of a raster: its pixel dimensions and
// the affine transform placing the pixel grid in a coordinate reference
// system.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/wudi/rasterkit/geo"
)

var (
	// ErrInvalidGeometry reports a geometry whose extent or resolution is
	// not positive and finite.
	ErrInvalidGeometry = errors.New("invalid grid geometry")
)

// Geometry couples a grid-to-CRS affine transform with pixel dimensions.
// The zero value is not usable; construct through New or FromEnvelope.
type Geometry struct {
	Transform geo.Affine
	Width     int
	Height    int
}

// New builds a geometry and validates it.
func New(transform geo.Affine, width, height int) (Geometry, error) {
	g := Geometry{Transform: transform, Width: width, Height: height}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

// FromEnvelope derives the geometry covering env at the given pixel sizes.
// Dimensions are rounded outward so the full envelope is enclosed; the
// top-left corner of the grid is anchored at (MinX, MaxY).
func FromEnvelope(env geo.Envelope, resX, resY float64) (Geometry, error) {
	if !env.IsValid() {
		return Geometry{}, fmt.Errorf("%w: envelope %+v", ErrInvalidGeometry, env)
	}
	if !finitePositive(resX) || !finitePositive(resY) {
		return Geometry{}, fmt.Errorf("%w: resolution %g x %g", ErrInvalidGeometry, resX, resY)
	}
	w := int(math.Ceil(env.Width()/resX - 1e-9))
	h := int(math.Ceil(env.Height()/resY - 1e-9))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return New(geo.NorthUp(env.MinX, env.MaxY, resX, resY), w, h)
}

// Validate checks the extent and resolution invariants.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d pixels", ErrInvalidGeometry, g.Width, g.Height)
	}
	if !finitePositive(g.Transform.ScaleX()) || !finitePositive(g.Transform.ScaleY()) {
		return fmt.Errorf("%w: degenerate transform %+v", ErrInvalidGeometry, g.Transform)
	}
	if !g.Envelope().IsValid() {
		return fmt.Errorf("%w: degenerate envelope", ErrInvalidGeometry)
	}
	return nil
}

// Envelope is the CRS-space bounding rectangle of the full grid.
func (g Geometry) Envelope() geo.Envelope {
	x0, y0 := g.Transform.Apply(0, 0)
	x1, y1 := g.Transform.Apply(float64(g.Width), float64(g.Height))
	return geo.Envelope{
		MinX: math.Min(x0, x1),
		MinY: math.Min(y0, y1),
		MaxX: math.Max(x0, x1),
		MaxY: math.Max(y0, y1),
	}
}

// Resolution is the pixel width measured as envelope width over grid width.
func (g Geometry) Resolution() float64 {
	return g.Envelope().Width() / float64(g.Width)
}

// ResX is the pixel width in CRS units.
func (g Geometry) ResX() float64 { return g.Transform.ScaleX() }

// ResY is the pixel height in CRS units.
func (g Geometry) ResY() float64 { return g.Transform.ScaleY() }

// WorldToPixel maps a CRS position to fractional pixel coordinates.
func (g Geometry) WorldToPixel(x, y float64) (col, row float64, err error) {
	inv, err := g.Transform.Invert()
	if err != nil {
		return 0, 0, err
	}
	col, row = inv.Apply(x, y)
	return col, row, nil
}

// PixelToWorld maps fractional pixel coordinates to a CRS position.
func (g Geometry) PixelToWorld(col, row float64) (x, y float64) {
	return g.Transform.Apply(col, row)
}

// Equal reports whether two geometries describe the same grid.
func (g Geometry) Equal(o Geometry) bool {
	return g.Width == o.Width && g.Height == o.Height && g.Transform == o.Transform
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
