package geo

import (
	"math"
	"testing"
)

func TestCRSEqualIgnoresFormatting(t *testing.T) {
	a := CRS{Name: "WGS 84", WKT: WGS84.WKT}
	spaced := CRS{Name: "WGS 84 (copy)", WKT: "GEOGCS[ \"WGS 84\",\n" + WGS84.WKT[len(`GEOGCS["WGS 84",`):]}
	if !a.Equal(WGS84) {
		t.Fatalf("identical WKT should compare equal")
	}
	if !spaced.Equal(WGS84) {
		t.Fatalf("whitespace outside quotes should not defeat equality")
	}
}

func TestCRSMismatch(t *testing.T) {
	if WGS84.Equal(PseudoMercator) {
		t.Fatalf("distinct projections must not compare equal")
	}
	// Quoted content is significant.
	tweaked := CRS{WKT: `GEOGCS["WGS  84"]`}
	if tweaked.Equal(CRS{WKT: `GEOGCS["WGS 84"]`}) {
		t.Fatalf("whitespace inside quotes must be significant")
	}
}

func TestAffineApply(t *testing.T) {
	tr := NorthUp(1000, 2000, 30, 30)
	x, y := tr.Apply(0, 0)
	if x != 1000 || y != 2000 {
		t.Fatalf("origin maps to (%g, %g), want (1000, 2000)", x, y)
	}
	x, y = tr.Apply(10, 20)
	if x != 1300 || y != 1400 {
		t.Fatalf("pixel (10,20) maps to (%g, %g), want (1300, 1400)", x, y)
	}
}

func TestAffineInvertRoundtrip(t *testing.T) {
	tr := Affine{A: 30, B: 2, C: 1000, D: -1, E: -30, F: 2000}
	inv, err := tr.Invert()
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	for _, p := range [][2]float64{{0, 0}, {10, 20}, {-5, 7.5}} {
		x, y := tr.Apply(p[0], p[1])
		col, row := inv.Apply(x, y)
		if math.Abs(col-p[0]) > 1e-9 || math.Abs(row-p[1]) > 1e-9 {
			t.Fatalf("roundtrip of (%g,%g) gave (%g,%g)", p[0], p[1], col, row)
		}
	}
}

func TestAffineInvertSingular(t *testing.T) {
	if _, err := (Affine{}).Invert(); err == nil {
		t.Fatalf("zero transform should not invert")
	}
}

func TestAffineTranslate(t *testing.T) {
	tr := NorthUp(0, 100, 10, 10)
	moved := tr.Translate(2, 3)
	x, y := moved.Apply(0, 0)
	if x != 20 || y != 70 {
		t.Fatalf("translated origin is (%g, %g), want (20, 70)", x, y)
	}
}

func TestEnvelopeUnion(t *testing.T) {
	a := Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	b := Envelope{MinX: 12, MinY: -2, MaxX: 22, MaxY: 8}
	u := a.Union(b)
	want := Envelope{MinX: 0, MinY: -2, MaxX: 22, MaxY: 10}
	if u != want {
		t.Fatalf("union %+v, want %+v", u, want)
	}
	if u.CenterX() != 11 || u.CenterY() != 4 {
		t.Fatalf("center (%g, %g), want (11, 4)", u.CenterX(), u.CenterY())
	}
}

func TestEnvelopeExpandToInclude(t *testing.T) {
	e := Envelope{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}.ExpandToInclude(11, 11)
	if e.MaxX != 11 || e.MaxY != 11 || e.MinX != 0 || e.MinY != 0 {
		t.Fatalf("expanded envelope %+v", e)
	}
}

func TestEnvelopeValidity(t *testing.T) {
	if !(Envelope{MaxX: 1, MaxY: 1}).IsValid() {
		t.Fatalf("unit envelope should be valid")
	}
	zeroWidth := Envelope{MinX: 5, MaxX: 5, MaxY: 1}
	if zeroWidth.IsValid() {
		t.Fatalf("zero-width envelope must be invalid")
	}
	nan := Envelope{MinX: math.NaN(), MaxX: 1, MaxY: 1}
	if nan.IsValid() {
		t.Fatalf("NaN envelope must be invalid")
	}
	inf := Envelope{MaxX: math.Inf(1), MaxY: 1}
	if inf.IsValid() {
		t.Fatalf("infinite envelope must be invalid")
	}
}

func TestMercatorRoundtrip(t *testing.T) {
	fwd, err := NewTransformer(WGS84, PseudoMercator)
	if err != nil {
		t.Fatalf("forward transformer: %v", err)
	}
	back, err := NewTransformer(PseudoMercator, WGS84)
	if err != nil {
		t.Fatalf("inverse transformer: %v", err)
	}
	for _, p := range [][2]float64{{0, 0}, {12.5, 41.9}, {-73.9, -40.6}} {
		x, y := fwd(p[0], p[1])
		lon, lat := back(x, y)
		if math.Abs(lon-p[0]) > 1e-9 || math.Abs(lat-p[1]) > 1e-9 {
			t.Fatalf("roundtrip of (%g,%g) gave (%g,%g)", p[0], p[1], lon, lat)
		}
	}
	// Known point: 180 degrees east is half the sphere circumference.
	x, _ := fwd(180, 0)
	if math.Abs(x-20037508.342789244) > 1e-3 {
		t.Fatalf("x at lon 180 is %g", x)
	}
}

func TestTransformerIdentity(t *testing.T) {
	id, err := NewTransformer(WGS84, WGS84)
	if err != nil {
		t.Fatalf("identity transformer: %v", err)
	}
	if x, y := id(3, 4); x != 3 || y != 4 {
		t.Fatalf("identity moved the point to (%g, %g)", x, y)
	}
}

func TestTransformerUnsupported(t *testing.T) {
	other := CRS{Name: "local", WKT: `LOCAL_CS["local"]`}
	if _, err := NewTransformer(WGS84, other); err == nil {
		t.Fatalf("expected an error for an unsupported CRS pair")
	}
}
