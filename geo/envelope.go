package geo

import "math"

// Envelope is an axis-aligned bounding rectangle in CRS units.
type Envelope struct {
	MinX, MinY, MaxX, MaxY float64
}

func (e Envelope) Width() float64   { return e.MaxX - e.MinX }
func (e Envelope) Height() float64  { return e.MaxY - e.MinY }
func (e Envelope) CenterX() float64 { return (e.MinX + e.MaxX) / 2 }
func (e Envelope) CenterY() float64 { return (e.MinY + e.MaxY) / 2 }

// Union returns the smallest envelope enclosing both e and o.
func (e Envelope) Union(o Envelope) Envelope {
	return Envelope{
		MinX: math.Min(e.MinX, o.MinX),
		MinY: math.Min(e.MinY, o.MinY),
		MaxX: math.Max(e.MaxX, o.MaxX),
		MaxY: math.Max(e.MaxY, o.MaxY),
	}
}

// ExpandToInclude grows the envelope so that the point (x, y) lies inside it.
func (e Envelope) ExpandToInclude(x, y float64) Envelope {
	return e.Union(Envelope{MinX: x, MinY: y, MaxX: x, MaxY: y})
}

// Contains reports whether the point (x, y) lies inside the envelope.
// Points on the boundary count as inside.
func (e Envelope) Contains(x, y float64) bool {
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// IsValid reports whether the envelope has positive, finite extent on both
// axes.
func (e Envelope) IsValid() bool {
	w, h := e.Width(), e.Height()
	if !isFinite(w) || !isFinite(h) {
		return false
	}
	return w > 0 && h > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
