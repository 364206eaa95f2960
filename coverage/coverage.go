// Package coverage ties a raster to its georeferencing: a grid geometry and
// a coordinate reference system. Coverages are read-only once built and are
// safe to share across goroutines.
package coverage

import (
	"errors"
	"fmt"

	"github.com/wudi/rasterkit/geo"
	"github.com/wudi/rasterkit/grid"
	"github.com/wudi/rasterkit/raster"
)

// ErrOutsideCoverage is returned by Evaluate for positions outside the
// coverage envelope.
var ErrOutsideCoverage = errors.New("position outside coverage")

// Coverage is a georeferenced raster.
type Coverage struct {
	Name   string
	Raster *raster.Raster
	Grid   grid.Geometry
	CRS    geo.CRS
}

// New builds a coverage and checks that the raster and geometry agree on
// dimensions.
func New(name string, r *raster.Raster, g grid.Geometry, crs geo.CRS) (*Coverage, error) {
	if r == nil {
		return nil, errors.New("nil raster")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if r.Width != g.Width || r.Height != g.Height {
		return nil, fmt.Errorf("raster %dx%d does not match geometry %dx%d",
			r.Width, r.Height, g.Width, g.Height)
	}
	return &Coverage{Name: name, Raster: r, Grid: g, CRS: crs}, nil
}

// Envelope is the CRS-space bounding rectangle.
func (c *Coverage) Envelope() geo.Envelope { return c.Grid.Envelope() }

// Resolution is the pixel width, envelope width over grid width.
func (c *Coverage) Resolution() float64 { return c.Grid.Resolution() }

// Evaluate samples every band at the CRS position (x, y) using the pixel
// the position falls in. Returns ErrOutsideCoverage when the position is
// not on the grid.
func (c *Coverage) Evaluate(x, y float64) ([]float64, error) {
	col, row, err := c.Grid.WorldToPixel(x, y)
	if err != nil {
		return nil, err
	}
	ci, ri := int(col), int(row)
	if col < 0 || row < 0 || ci >= c.Grid.Width || ri >= c.Grid.Height {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrOutsideCoverage, x, y)
	}
	out := make([]float64, c.Raster.NumBands())
	for b := range out {
		out[b] = c.Raster.At(b, ci, ri)
	}
	return out, nil
}
