package geo

import (
	"errors"
	"math"
)

// Affine maps pixel coordinates (col, row) to CRS coordinates:
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
//
// For a north-up raster B and D are zero and E is negative, with (C, F)
// the coordinates of the outer corner of the top-left pixel.
type Affine struct {
	A, B, C, D, E, F float64
}

// NorthUp builds the usual axis-aligned transform from the top-left corner
// and the pixel sizes. resY is the positive pixel height; the stored E
// coefficient is its negation.
func NorthUp(minX, maxY, resX, resY float64) Affine {
	return Affine{A: resX, C: minX, E: -resY, F: maxY}
}

// Apply maps pixel coordinates to CRS coordinates.
func (t Affine) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// Invert returns the transform mapping CRS coordinates back to pixel
// coordinates. Fails on a singular transform.
func (t Affine) Invert() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-12 {
		return Affine{}, errors.New("singular affine transform")
	}
	return Affine{
		A: t.E / det,
		B: -t.B / det,
		C: (t.B*t.F - t.E*t.C) / det,
		D: -t.D / det,
		E: t.A / det,
		F: (t.D*t.C - t.A*t.F) / det,
	}, nil
}

// Translate returns the transform shifted by (cols, rows) pixels.
func (t Affine) Translate(cols, rows float64) Affine {
	x, y := t.Apply(cols, rows)
	out := t
	out.C, out.F = x, y
	return out
}

// ScaleX is the pixel width in CRS units.
func (t Affine) ScaleX() float64 { return math.Hypot(t.A, t.D) }

// ScaleY is the pixel height in CRS units.
func (t Affine) ScaleY() float64 { return math.Hypot(t.B, t.E) }

// IsRectilinear reports whether the transform has no rotation or shear.
func (t Affine) IsRectilinear() bool { return t.B == 0 && t.D == 0 }
