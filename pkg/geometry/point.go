// Package geometry provides the planar primitives the spiral generator is
// built on: points, polar conversion, turning direction and the squircle
// projection. All lengths are meters and all angles radians.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a board coordinate in meters. Board geometry is planar, so Z is
// normally zero; it exists so 2-D and 3-D points can be mixed freely.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Pt creates a planar point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f, Z: p.Z * f}
}

// Distance returns the Euclidean distance to q.
func (p Point) Distance(q Point) float64 {
	return r3.Norm(r3.Sub(p.Vec(), q.Vec()))
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return p.Add(q).Scale(0.5)
}

// ApproxEqual reports whether p and q are within tol of each other.
func (p Point) ApproxEqual(q Point, tol float64) bool {
	return p.Distance(q) <= tol
}

// IsFinite reports whether every coordinate of p is a finite number.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Vec converts p to a gonum vector.
func (p Point) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// FromVec converts a gonum vector to a Point.
func FromVec(v r3.Vec) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// Polar converts a planar offset to polar form. Theta is in (-π, π].
func Polar(x, y float64) (r, theta float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}
