// Package kernel defines the abstract geometry kernel interface the
// enclosure pipeline is built on. Implementations (sdfx today) provide
// profile construction, extrusion, lofting, filleting, booleans and the
// inspection queries behind this interface, so the rest of the system
// never touches a concrete CAD library.
package kernel

import (
	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/profile"
)

// Planar is an opaque handle to a constructed 2D profile.
type Planar interface {
	// Profile returns the source outline the handle was built from.
	Profile() profile.Profile
}

// Solid is an opaque handle to a 3D solid. Solids are value-like: every
// operation returns a new handle and never mutates its inputs.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() geom.Box3
}

// EdgeSelector names a set of edges on a solid for filleting.
type EdgeSelector int

const (
	// EdgesVertical selects the side edges of a prism, parallel to the
	// extrusion axis (where octagon sides meet).
	EdgesVertical EdgeSelector = iota
	// EdgesTopBottom selects the rim edges at both ends of a prism.
	EdgesTopBottom
)

func (s EdgeSelector) String() string {
	switch s {
	case EdgesVertical:
		return "vertical-edges"
	case EdgesTopBottom:
		return "top-bottom-edges"
	default:
		return "unknown-edges"
	}
}

// Kernel is the geometry kernel capability set. Construction and fillet
// operations return errors when the backend rejects the inputs; boolean
// and transform operations are total but may yield degenerate solids,
// which callers detect through the volume query.
type Kernel interface {
	// Construction.
	ConstructProfile(p profile.Profile) (Planar, error)
	Extrude(p Planar, height float64) (Solid, error)
	Loft(bottom, top Planar, height float64) (Solid, error)
	Cylinder(height, radius float64) (Solid, error)

	// Fillet replaces the selected edge set with a constant-radius
	// rounded transition. Only prisms produced by Extrude can be
	// filleted; the backend rebuilds them from their source profile.
	Fillet(s Solid, sel EdgeSelector, radius float64) (Solid, error)

	// Booleans.
	Union(a, b Solid) Solid
	Subtract(a, b Solid) Solid
	Intersect(a, b Solid) Solid

	// Transforms.
	Translate(s Solid, v geom.Vec3) Solid
	Rotate(s Solid, xDeg, yDeg, zDeg float64) Solid

	// Inspection queries. Deterministic for a given solid.
	Volume(s Solid) float64
	ConnectedComponents(s Solid) int
	SectionEmpty(s Solid, z float64) bool

	// ToMesh tessellates the solid into a triangle mesh for export.
	ToMesh(s Solid) (*Mesh, error)
}
