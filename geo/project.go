package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnsupportedTransform is returned when no coordinate operation exists
// between two CRS. Only the built-in geographic/pseudo-Mercator pair is
// supported; everything else needs an external reprojection step.
var ErrUnsupportedTransform = errors.New("no coordinate operation between the given CRS")

const sphereRadius = 6378137.0

// Transformer converts positions from one CRS to another.
type Transformer func(x, y float64) (float64, float64)

// NewTransformer returns a position transformer from one CRS to the other,
// or ErrUnsupportedTransform when the pair is not handled.
func NewTransformer(from, to CRS) (Transformer, error) {
	switch {
	case from.Equal(to):
		return func(x, y float64) (float64, float64) { return x, y }, nil
	case from.Equal(WGS84) && to.Equal(PseudoMercator):
		return mercatorForward, nil
	case from.Equal(PseudoMercator) && to.Equal(WGS84):
		return mercatorInverse, nil
	}
	return nil, fmt.Errorf("%w: %q -> %q", ErrUnsupportedTransform, from.Name, to.Name)
}

// mercatorForward maps lon/lat degrees to spherical Mercator metres.
func mercatorForward(lon, lat float64) (float64, float64) {
	x := sphereRadius * lon * math.Pi / 180
	y := sphereRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return x, y
}

// mercatorInverse maps spherical Mercator metres back to lon/lat degrees.
func mercatorInverse(x, y float64) (float64, float64) {
	lon := x / sphereRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(y/sphereRadius)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}
