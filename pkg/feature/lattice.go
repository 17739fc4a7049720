package feature

import (
	"math"

	"github.com/devais/enclosure/pkg/geom"
)

// Boundary is the containment test for lattice-scanned grid features. A
// point passes when an element of the given radius centered there stays
// fully inside the boundary.
type Boundary interface {
	Contains(p geom.Vec2, elemRadius float64) bool
	// Reach returns the half-extent of the scan window per axis.
	Reach() geom.Vec2
}

// Circle is the speaker grille boundary.
type Circle struct {
	Radius float64
}

func (c Circle) Contains(p geom.Vec2, elemRadius float64) bool {
	return p.Norm() <= c.Radius-elemRadius+geom.Eps
}

func (c Circle) Reach() geom.Vec2 {
	return geom.Vec2{X: c.Radius, Y: c.Radius}
}

// RoundedRect is the button texture boundary: a rectangle with circular
// corner arcs. Points in a corner zone must clear the arc; points along
// the straight edges use the plain half-extent bound.
type RoundedRect struct {
	Width, Height float64
	CornerRadius  float64
}

func (r RoundedRect) Contains(p geom.Vec2, elemRadius float64) bool {
	hw, hh := r.Width/2, r.Height/2
	if math.Abs(p.X) > hw-elemRadius+geom.Eps || math.Abs(p.Y) > hh-elemRadius+geom.Eps {
		return false
	}
	inCornerZone := math.Abs(p.X) > hw-r.CornerRadius && math.Abs(p.Y) > hh-r.CornerRadius
	if !inCornerZone {
		return true
	}
	cx := math.Copysign(hw-r.CornerRadius, p.X)
	cy := math.Copysign(hh-r.CornerRadius, p.Y)
	d := p.Sub(geom.Vec2{X: cx, Y: cy}).Norm()
	return d <= r.CornerRadius-elemRadius+geom.Eps
}

func (r RoundedRect) Reach() geom.Vec2 {
	return geom.Vec2{X: r.Width / 2, Y: r.Height / 2}
}

// LatticePoints enumerates a regular grid centered on the origin with the
// given spacing and keeps the points whose element fits the boundary.
// The scan is row-major (v outer, u inner, both ascending) so repeated
// runs place elements in identical order.
func LatticePoints(b Boundary, spacing, elemRadius float64) []geom.Vec2 {
	reach := b.Reach()
	nu := int(reach.X/spacing) + 1
	nv := int(reach.Y/spacing) + 1
	var pts []geom.Vec2
	for j := -nv; j <= nv; j++ {
		for i := -nu; i <= nu; i++ {
			p := geom.Vec2{X: float64(i) * spacing, Y: float64(j) * spacing}
			if b.Contains(p, elemRadius) {
				pts = append(pts, p)
			}
		}
	}
	return pts
}
