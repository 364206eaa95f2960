package geo

import (
	"strings"
)

// CRS describes a coordinate reference system by its well-known text
// definition. Two CRS are considered the same only when their normalized
// definitions are identical; nominally "close" projections (same datum,
// different parameters) never compare equal.
type CRS struct {
	Name string
	WKT  string
}

// WGS84 is the geographic CRS used by default for coverages read without an
// explicit system.
var WGS84 = CRS{
	Name: "WGS 84",
	WKT: `GEOGCS["WGS 84",DATUM["WGS_1984",SPHEROID["WGS 84",6378137,298.257223563,` +
		`AUTHORITY["EPSG","7030"]],AUTHORITY["EPSG","6326"]],PRIMEM["Greenwich",0,` +
		`AUTHORITY["EPSG","8901"]],UNIT["degree",0.01745329251994328,` +
		`AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4326"]]`,
}

// PseudoMercator is the spherical web-mapping projection (EPSG:3785).
var PseudoMercator = CRS{
	Name: "WGS 84 / Pseudo-Mercator",
	WKT: `PROJCS["WGS 84 / Pseudo-Mercator",GEOGCS["Popular Visualisation CRS",` +
		`DATUM["Popular_Visualisation_Datum",SPHEROID["Popular Visualisation Sphere",6378137,0,` +
		`AUTHORITY["EPSG","7059"]],TOWGS84[0,0,0,0,0,0,0],AUTHORITY["EPSG","6055"]],` +
		`PRIMEM["Greenwich",0,AUTHORITY["EPSG","8901"]],UNIT["degree",0.01745329251994328,` +
		`AUTHORITY["EPSG","9122"]],AUTHORITY["EPSG","4055"]],UNIT["metre",1,` +
		`AUTHORITY["EPSG","9001"]],PROJECTION["Mercator_1SP"],PARAMETER["central_meridian",0],` +
		`PARAMETER["scale_factor",1],PARAMETER["false_easting",0],` +
		`PARAMETER["false_northing",0],AUTHORITY["EPSG","3785"],AXIS["X",EAST],AXIS["Y",NORTH]]`,
}

// Equal reports whether two CRS share the identical definition. Whitespace
// between WKT tokens is not significant; everything else is.
func (c CRS) Equal(o CRS) bool {
	return normalizeWKT(c.WKT) == normalizeWKT(o.WKT)
}

// IsZero reports whether the CRS carries no definition at all.
func (c CRS) IsZero() bool { return c.WKT == "" && c.Name == "" }

// normalizeWKT strips whitespace outside of quoted strings so that
// formatting differences do not defeat the identity comparison.
func normalizeWKT(wkt string) string {
	var b strings.Builder
	b.Grow(len(wkt))
	inQuote := false
	for _, r := range wkt {
		if r == '"' {
			inQuote = !inQuote
		}
		if !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r') {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
