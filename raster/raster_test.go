package raster

import (
	"math"
	"testing"
)

func TestNewRejectsBadDimensions(t *testing.T) {
	if _, err := New(0, 10, 1); err == nil {
		t.Fatalf("zero width accepted")
	}
	if _, err := New(10, 10, 0); err == nil {
		t.Fatalf("zero bands accepted")
	}
}

func TestSetAt(t *testing.T) {
	r, err := New(4, 3, 2)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	r.Set(1, 2, 1, 42)
	if got := r.At(1, 2, 1); got != 42 {
		t.Fatalf("At returned %g, want 42", got)
	}
	if got := r.At(0, 2, 1); got != 0 {
		t.Fatalf("other band disturbed: %g", got)
	}
}

func TestDataBands(t *testing.T) {
	r, _ := New(2, 2, 4)
	if r.DataBands() != 4 {
		t.Fatalf("DataBands without alpha: %d", r.DataBands())
	}
	r.AlphaBand = true
	if r.DataBands() != 3 {
		t.Fatalf("DataBands with alpha: %d", r.DataBands())
	}
	if r.NumBands() != 4 {
		t.Fatalf("NumBands with alpha: %d", r.NumBands())
	}
}

func TestIsNoData(t *testing.T) {
	r, _ := New(2, 2, 1)
	r.NoData[0] = -9999
	if !r.IsNoData(0, -9999) || r.IsNoData(0, 0) {
		t.Fatalf("sentinel comparison broken")
	}
	r.NoData[0] = math.NaN()
	if !r.IsNoData(0, math.NaN()) {
		t.Fatalf("NaN nodata must match NaN samples")
	}
	if r.IsNoData(0, 1) {
		t.Fatalf("NaN nodata matched a real value")
	}
}

func TestChecksumStable(t *testing.T) {
	r, _ := New(8, 8, 2)
	r.Set(0, 3, 4, 7)
	r.Set(1, 0, 0, -1)
	clone := r.Clone()
	if r.Checksum() != clone.Checksum() {
		t.Fatalf("identical grids must have identical checksums")
	}
	clone.Set(0, 0, 0, 1)
	if r.Checksum() == clone.Checksum() {
		t.Fatalf("differing grids must have differing checksums")
	}
}

func TestCloneIsDeep(t *testing.T) {
	r, _ := New(2, 2, 1)
	r.NoData[0] = 5
	c := r.Clone()
	c.Set(0, 0, 0, 9)
	c.NoData[0] = 7
	if r.At(0, 0, 0) != 0 || r.NoData[0] != 5 {
		t.Fatalf("clone shares storage with the original")
	}
}

func TestFill(t *testing.T) {
	r, _ := New(3, 3, 1)
	r.Fill(0, 2.5)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if r.At(0, col, row) != 2.5 {
				t.Fatalf("fill missed (%d, %d)", col, row)
			}
		}
	}
}
