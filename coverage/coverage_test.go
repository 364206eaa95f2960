package coverage

import (
	"errors"
	"testing"

	"github.com/wudi/rasterkit/geo"
	"github.com/wudi/rasterkit/grid"
	"github.com/wudi/rasterkit/raster"
)

func testCoverage(t *testing.T) *Coverage {
	t.Helper()
	g, err := grid.New(geo.NorthUp(0, 10, 1, 1), 10, 10)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	r, err := raster.New(10, 10, 1)
	if err != nil {
		t.Fatalf("raster: %v", err)
	}
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			r.Set(0, col, row, float64(row*10+col))
		}
	}
	c, err := New("test", r, g, geo.WGS84)
	if err != nil {
		t.Fatalf("coverage: %v", err)
	}
	return c
}

func TestNewDimensionMismatch(t *testing.T) {
	g, _ := grid.New(geo.NorthUp(0, 10, 1, 1), 10, 10)
	r, _ := raster.New(5, 10, 1)
	if _, err := New("bad", r, g, geo.WGS84); err == nil {
		t.Fatalf("mismatched dimensions accepted")
	}
	if _, err := New("nil", nil, g, geo.WGS84); err == nil {
		t.Fatalf("nil raster accepted")
	}
}

func TestEvaluate(t *testing.T) {
	c := testCoverage(t)

	// (0.5, 9.5) is the center of the top-left pixel: col 0, row 0.
	vals, err := c.Evaluate(0.5, 9.5)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if vals[0] != 0 {
		t.Fatalf("top-left sample %g, want 0", vals[0])
	}

	// (9.5, 0.5) is the bottom-right pixel: col 9, row 9.
	vals, err = c.Evaluate(9.5, 0.5)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if vals[0] != 99 {
		t.Fatalf("bottom-right sample %g, want 99", vals[0])
	}
}

func TestEvaluateOutside(t *testing.T) {
	c := testCoverage(t)
	if _, err := c.Evaluate(-1, 5); !errors.Is(err, ErrOutsideCoverage) {
		t.Fatalf("got %v, want ErrOutsideCoverage", err)
	}
	if _, err := c.Evaluate(5, 11); !errors.Is(err, ErrOutsideCoverage) {
		t.Fatalf("got %v, want ErrOutsideCoverage", err)
	}
}

func TestEnvelopeAndResolution(t *testing.T) {
	c := testCoverage(t)
	env := c.Envelope()
	want := geo.Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	if env != want {
		t.Fatalf("envelope %+v, want %+v", env, want)
	}
	if c.Resolution() != 1 {
		t.Fatalf("resolution %g, want 1", c.Resolution())
	}
}
