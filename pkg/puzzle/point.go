package puzzle

import (
	"fmt"
	"math"
)

// Point is a coordinate in puzzle-local units. The origin is the top-left
// corner of the puzzle, X grows along columns and Y grows along rows.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Add returns pt translated by o.
func (pt Point) Add(o Point) Point {
	return Point{X: pt.X + o.X, Y: pt.Y + o.Y}
}

// Sub returns the component-wise difference pt-o.
func (pt Point) Sub(o Point) Point {
	return Point{X: pt.X - o.X, Y: pt.Y - o.Y}
}

// Scale multiplies both coordinates by f.
func (pt Point) Scale(f float64) Point {
	return Point{X: pt.X * f, Y: pt.Y * f}
}

// Lerp linearly interpolates between pt and o.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point{
		X: pt.X + (o.X-pt.X)*t,
		Y: pt.Y + (o.Y-pt.Y)*t,
	}
}

// Reflect mirrors pt through the anchor point about.
func (pt Point) Reflect(about Point) Point {
	return Point{X: 2*about.X - pt.X, Y: 2*about.Y - pt.Y}
}

// Distance returns the Euclidean distance between pt and o.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(o.X-pt.X, o.Y-pt.Y)
}

// Dot returns the dot product of pt and o treated as vectors.
func (pt Point) Dot(o Point) float64 {
	return pt.X*o.X + pt.Y*o.Y
}

// IsFinite reports whether both coordinates are finite.
func (pt Point) IsFinite() bool {
	return !math.IsNaN(pt.X) && !math.IsNaN(pt.Y) && !math.IsInf(pt.X, 0) && !math.IsInf(pt.Y, 0)
}
