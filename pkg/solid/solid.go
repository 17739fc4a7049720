// Package solid wraps raw kernel handles with provenance labels and the
// pipeline's failure policy: fillet radii are validated against profile
// data before the kernel is asked, loft inputs are topology-checked, and
// boolean operations that come back degenerate get exactly one retry with
// a perturbed position before failing for good.
package solid

import (
	"fmt"
	"math"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/profile"
)

// retryJitter is the translation applied to the second operand when a
// boolean result is degenerate, before the single retry. Small enough to
// be invisible at print resolution.
const retryJitter = 1e-4

// Solid is a labelled kernel solid. The label records provenance through
// the pipeline ("shell", "shell-hollowed", "button-base") and appears in
// every geometry error involving the solid.
type Solid struct {
	Label  string
	Handle kernel.Solid

	// Prism provenance, kept until a transform invalidates it. Fillets
	// are validated against the source profile, not the kernel handle.
	prof   *profile.Profile
	height float64
}

// BoundingBox returns the axis-aligned bounding box.
func (s *Solid) BoundingBox() geom.Box3 {
	return s.Handle.BoundingBox()
}

// Builder issues kernel operations under the pipeline failure policy.
type Builder struct {
	k kernel.Kernel
}

// NewBuilder returns a Builder on the given kernel.
func NewBuilder(k kernel.Kernel) *Builder {
	return &Builder{k: k}
}

// Kernel exposes the underlying kernel for inspection queries.
func (b *Builder) Kernel() kernel.Kernel { return b.k }

// ExtrudeProfile constructs the profile and extrudes it along Z, centered
// on the origin. The result keeps prism provenance so it can be filleted.
func (b *Builder) ExtrudeProfile(label string, p profile.Profile, height float64) (*Solid, error) {
	if height <= 0 {
		return nil, &geom.GeometryError{Op: "extrude", Solid: label,
			Message: fmt.Sprintf("non-positive height %.3f", height)}
	}
	planar, err := b.k.ConstructProfile(p)
	if err != nil {
		return nil, &geom.GeometryError{Op: "construct-profile", Solid: label, Err: err}
	}
	h, err := b.k.Extrude(planar, height)
	if err != nil {
		return nil, &geom.GeometryError{Op: "extrude", Solid: label, Err: err}
	}
	return &Solid{Label: label, Handle: h, prof: &p, height: height}, nil
}

// LoftBetweenProfiles builds a ruled transition between two profiles of
// identical topology, bottom at z=-height/2 and top at z=+height/2.
// Mismatched corner counts or arc structure fail before any kernel work.
func (b *Builder) LoftBetweenProfiles(label string, bottom, top profile.Profile, height float64) (*Solid, error) {
	if !profile.SameTopology(bottom, top) {
		return nil, &geom.TopologyMismatchError{Op: "loft",
			Message: fmt.Sprintf("%s (%d corners) vs %s (%d corners) or differing arc structure",
				bottom.Name, len(bottom.Corners()), top.Name, len(top.Corners()))}
	}
	pb, err := b.k.ConstructProfile(bottom)
	if err != nil {
		return nil, &geom.GeometryError{Op: "construct-profile", Solid: label, Err: err}
	}
	pt, err := b.k.ConstructProfile(top)
	if err != nil {
		return nil, &geom.GeometryError{Op: "construct-profile", Solid: label, Err: err}
	}
	h, err := b.k.Loft(pb, pt, height)
	if err != nil {
		return nil, &geom.GeometryError{Op: "loft", Solid: label, Err: err}
	}
	return &Solid{Label: label, Handle: h}, nil
}

// Cylinder builds a z-axis cylinder centered on the origin.
func (b *Builder) Cylinder(label string, height, radius float64) (*Solid, error) {
	h, err := b.k.Cylinder(height, radius)
	if err != nil {
		return nil, &geom.GeometryError{Op: "cylinder", Solid: label, Err: err}
	}
	return &Solid{Label: label, Handle: h}, nil
}

// FilletEdges rounds the selected edge set. The radius ceiling is half
// the width of the narrowest face adjacent to the selection, computed
// from the prism's source profile; radii at exactly the ceiling pass,
// anything beyond fails with a geometry error before the kernel runs.
func (b *Builder) FilletEdges(s *Solid, sel kernel.EdgeSelector, radius float64) (*Solid, error) {
	if radius <= 0 {
		return nil, &geom.GeometryError{Op: "fillet", Solid: s.Label,
			Message: fmt.Sprintf("non-positive radius %.3f", radius)}
	}
	if s.prof == nil {
		return nil, &geom.TopologyMismatchError{Op: "fillet",
			Message: s.Label + " is not an untransformed prism; fillets apply only to extruded solids"}
	}
	if max := b.filletCeiling(s, sel); radius > max+geom.Eps {
		return nil, &geom.GeometryError{Op: "fillet", Solid: s.Label,
			Message: fmt.Sprintf("radius %.3f exceeds half the narrowest adjacent face (%.3f)", radius, max)}
	}
	h, err := b.k.Fillet(s.Handle, sel, radius)
	if err != nil {
		return nil, &geom.GeometryError{Op: "fillet", Solid: s.Label, Err: err}
	}
	return &Solid{Label: s.Label, Handle: h, prof: s.prof, height: s.height}, nil
}

// filletCeiling computes the largest legal fillet radius for the edge
// selection: half the shortest profile side for vertical edges, further
// capped by half the prism height for the rims.
func (b *Builder) filletCeiling(s *Solid, sel kernel.EdgeSelector) float64 {
	shortest := math.Inf(1)
	c := s.prof.Corners()
	for i := range c {
		j := (i + 1) % len(c)
		if l := c[j].P.Sub(c[i].P).Norm(); l < shortest {
			shortest = l
		}
	}
	max := shortest / 2
	if sel == kernel.EdgesTopBottom && s.height/2 < max {
		max = s.height / 2
	}
	return max
}

// Union merges two solids under the given label. A degenerate result is
// retried once with the second operand nudged by a sub-tolerance offset.
func (b *Builder) Union(label string, x, y *Solid) (*Solid, error) {
	return b.boolean(label, "boolean-union", x, y, b.k.Union)
}

// Subtract removes y from x under the given label, with the same single
// perturbed retry on a degenerate result.
func (b *Builder) Subtract(label string, x, y *Solid) (*Solid, error) {
	return b.boolean(label, "boolean-subtract", x, y, b.k.Subtract)
}

// Intersect keeps the overlap of x and y.
func (b *Builder) Intersect(label string, x, y *Solid) (*Solid, error) {
	return b.boolean(label, "boolean-intersect", x, y, b.k.Intersect)
}

func (b *Builder) boolean(label, op string, x, y *Solid, f func(a, bb kernel.Solid) kernel.Solid) (*Solid, error) {
	h := f(x.Handle, y.Handle)
	if b.k.Volume(h) > geom.Eps {
		return &Solid{Label: label, Handle: h}, nil
	}
	// One retry with the cutter nudged off any coincident-face alignment.
	nudged := b.k.Translate(y.Handle, geom.Vec3{X: retryJitter, Y: retryJitter, Z: retryJitter})
	h = f(x.Handle, nudged)
	if b.k.Volume(h) > geom.Eps {
		return &Solid{Label: label, Handle: h}, nil
	}
	return nil, &geom.GeometryError{Op: op, Solid: label,
		Message: fmt.Sprintf("degenerate result from %s and %s after perturbed retry", x.Label, y.Label)}
}

// Translate moves the solid. Prism provenance does not survive; fillet
// before positioning.
func (b *Builder) Translate(s *Solid, v geom.Vec3) *Solid {
	return &Solid{Label: s.Label, Handle: b.k.Translate(s.Handle, v)}
}

// Rotate applies X, then Y, then Z axis rotations in degrees.
func (b *Builder) Rotate(s *Solid, xDeg, yDeg, zDeg float64) *Solid {
	return &Solid{Label: s.Label, Handle: b.k.Rotate(s.Handle, xDeg, yDeg, zDeg)}
}

// Volume measures the solid through the kernel query.
func (b *Builder) Volume(s *Solid) float64 {
	return b.k.Volume(s.Handle)
}

// ConnectedComponents counts disjoint fragments.
func (b *Builder) ConnectedComponents(s *Solid) int {
	return b.k.ConnectedComponents(s.Handle)
}
