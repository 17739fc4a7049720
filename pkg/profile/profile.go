// Package profile builds the closed planar outlines the enclosure is made
// from: the chamfered-square octagon cross-section and rounded rectangles
// for openings and the push-to-talk button.
//
// Profiles are pure data. Corner rounding is carried as a per-vertex radius
// and realized by the geometry kernel, so two profiles with the same vertex
// count and arc structure can be lofted against each other.
package profile

import (
	"fmt"
	"math"

	"github.com/devais/enclosure/pkg/geom"
)

// Vertex is one corner of a planar profile. A non-zero Round replaces the
// sharp corner with an arc of that radius.
type Vertex struct {
	P     geom.Vec2
	Round float64
}

// Profile is a closed, non-self-intersecting loop of vertices. The loop is
// stored explicitly closed: the final vertex repeats the first. Winding is
// counter-clockwise (positive signed area) throughout the pipeline, because
// boolean subtraction depends on outer and inner loops agreeing.
type Profile struct {
	Name  string
	Verts []Vertex
}

// Corners returns the loop without the closing duplicate vertex.
func (p Profile) Corners() []Vertex {
	if len(p.Verts) < 2 {
		return p.Verts
	}
	return p.Verts[:len(p.Verts)-1]
}

// SignedArea computes the shoelace area over the corner points. Positive
// means counter-clockwise winding. Corner rounding is ignored; it does not
// change orientation.
func (p Profile) SignedArea() float64 {
	c := p.Corners()
	var sum float64
	for i := range c {
		j := (i + 1) % len(c)
		sum += c[i].P.X*c[j].P.Y - c[j].P.X*c[i].P.Y
	}
	return sum / 2
}

// Bounds returns the axis-aligned extent of the corner points.
func (p Profile) Bounds() (min, max geom.Vec2) {
	c := p.Corners()
	if len(c) == 0 {
		return
	}
	min, max = c[0].P, c[0].P
	for _, v := range c[1:] {
		min.X = math.Min(min.X, v.P.X)
		min.Y = math.Min(min.Y, v.P.Y)
		max.X = math.Max(max.X, v.P.X)
		max.Y = math.Max(max.Y, v.P.Y)
	}
	return min, max
}

// Validate checks the profile invariants: at least 3 corners, explicitly
// closed, no duplicate consecutive points.
func (p Profile) Validate() error {
	if len(p.Verts) < 4 { // 3 corners + closing vertex
		return &geom.GeometryError{Op: "profile-validate", Solid: p.Name,
			Message: fmt.Sprintf("need at least 3 corners, have %d", len(p.Verts)-1)}
	}
	first, last := p.Verts[0].P, p.Verts[len(p.Verts)-1].P
	if first != last {
		return &geom.GeometryError{Op: "profile-validate", Solid: p.Name, Message: "loop is not closed"}
	}
	for i := 1; i < len(p.Verts); i++ {
		if p.Verts[i].P == p.Verts[i-1].P {
			return &geom.GeometryError{Op: "profile-validate", Solid: p.Name,
				Message: fmt.Sprintf("duplicate consecutive point at index %d", i)}
		}
	}
	return nil
}

// SameTopology reports whether two profiles have identical corner counts
// and matching arc structure (rounded vs sharp at each position). Lofting
// requires this; the kernel interpolates corresponding corners.
func SameTopology(a, b Profile) bool {
	ca, cb := a.Corners(), b.Corners()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if (ca[i].Round > 0) != (cb[i].Round > 0) {
			return false
		}
	}
	return true
}

// Octagon builds the enclosure cross-section: a square of the given side
// chamfered at 45 degrees by dist on every corner, wound counter-clockwise
// starting from the bottom of the right long side. cornerRound smooths the
// eight corners where long and short sides meet (the vertical-edge fillet
// of the extruded shell).
func Octagon(name string, side, dist, cornerRound float64) (Profile, error) {
	if dist <= 0 || 2*dist >= side {
		return Profile{}, &geom.GeometryError{Op: "octagon-profile", Solid: name,
			Message: fmt.Sprintf("chamfer %.3f invalid for square side %.3f", dist, side)}
	}
	h := side / 2
	c := dist
	pts := []geom.Vec2{
		{X: h, Y: -(h - c)}, // bottom of right long side
		{X: h, Y: h - c},    // up the right side
		{X: h - c, Y: h},    // across the top
		{X: -(h - c), Y: h},
		{X: -h, Y: h - c}, // down the left side
		{X: -h, Y: -(h - c)},
		{X: -(h - c), Y: -h}, // across the bottom
		{X: h - c, Y: -h},
	}
	verts := make([]Vertex, 0, len(pts)+1)
	for _, pt := range pts {
		verts = append(verts, Vertex{P: pt, Round: cornerRound})
	}
	verts = append(verts, verts[0]) // close the loop
	p := Profile{Name: name, Verts: verts}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// RoundedRect builds a width x height rectangle centered on the origin with
// every corner replaced by an arc of the given radius, counter-clockwise.
// Overlapping arcs (2r exceeding the shorter dimension) are rejected before
// any kernel work.
func RoundedRect(name string, width, height, radius float64) (Profile, error) {
	if width <= 0 || height <= 0 {
		return Profile{}, &geom.GeometryError{Op: "rounded-rect-profile", Solid: name,
			Message: fmt.Sprintf("non-positive extent %.3f x %.3f", width, height)}
	}
	if radius < 0 || 2*radius > math.Min(width, height) {
		return Profile{}, &geom.GeometryError{Op: "rounded-rect-profile", Solid: name,
			Message: fmt.Sprintf("corner radius %.3f overlaps on %.3f x %.3f rect", radius, width, height)}
	}
	w, h := width/2, height/2
	verts := []Vertex{
		{P: geom.Vec2{X: w, Y: -h}, Round: radius},
		{P: geom.Vec2{X: w, Y: h}, Round: radius},
		{P: geom.Vec2{X: -w, Y: h}, Round: radius},
		{P: geom.Vec2{X: -w, Y: -h}, Round: radius},
	}
	verts = append(verts, verts[0])
	p := Profile{Name: name, Verts: verts}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
