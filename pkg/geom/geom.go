// Package geom holds the small value types shared by every stage of the
// enclosure pipeline: planar and spatial vectors in millimeters, and the
// error taxonomy for parameter, geometry and topology failures.
package geom

import "math"

// Vec2 is a point or direction in a 2D plane, millimeters.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 {
	return math.Hypot(v.X, v.Y)
}

// Vec3 is a point or direction in 3D space, millimeters.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// Size returns the per-axis extent of the box.
func (b Box3) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Eps is the numeric tolerance for dimension comparisons, in mm.
const Eps = 1e-6

// EqualWithin reports whether a and b differ by no more than tol.
func EqualWithin(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
