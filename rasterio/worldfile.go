package rasterio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wudi/rasterkit/geo"
)

// ReadWorldFile parses an ESRI world file (.tfw, .pgw, ...): six lines
// holding the pixel sizes, rotation terms and the position of the center of
// the top-left pixel. The returned transform is corner-anchored, shifting
// the world-file coefficients by half a pixel.
func ReadWorldFile(r io.Reader) (geo.Affine, error) {
	var vals [6]float64
	scanner := bufio.NewScanner(r)
	for i := 0; i < 6; i++ {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return geo.Affine{}, err
			}
			return geo.Affine{}, fmt.Errorf("world file truncated at line %d", i+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return geo.Affine{}, fmt.Errorf("world file line %d: %w", i+1, err)
		}
		vals[i] = v
	}
	// Line order: A (x size), D (y rotation), B (x rotation), E (y size,
	// negative for north-up), C (center x of pixel 0,0), F (center y).
	t := geo.Affine{
		A: vals[0],
		D: vals[1],
		B: vals[2],
		E: vals[3],
		C: vals[4],
		F: vals[5],
	}
	t.C -= t.A/2 + t.B/2
	t.F -= t.D/2 + t.E/2
	return t, nil
}

// WriteWorldFile emits the six world-file lines for a corner-anchored
// transform.
func WriteWorldFile(w io.Writer, t geo.Affine) error {
	cx := t.C + t.A/2 + t.B/2
	cy := t.F + t.D/2 + t.E/2
	for _, v := range []float64{t.A, t.D, t.B, t.E, cx, cy} {
		if _, err := fmt.Fprintf(w, "%.10f\n", v); err != nil {
			return err
		}
	}
	return nil
}
