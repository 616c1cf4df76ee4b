package models

// Point is a location projected onto the route plane. All containment tests
// run in this plane, never on raw degrees.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle in the route plane, defined by its origin
// (minimum corner) and size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside the rectangle. Points on the edge
// count as inside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}
