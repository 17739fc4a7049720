// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
//
// Solids are signed distance fields. Fillets on prism edges are realized
// by rebuilding the extrusion from its source profile (corner smoothing
// for vertical edges, rounded extrusion for the rims), so the backend
// keeps construction provenance on every extruded solid. The inspection
// queries (volume, connected components, section emptiness) evaluate the
// field on fixed grids and are fully deterministic.
package sdfx

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/profile"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

const (
	// defaultMeshCells controls marching cubes tessellation resolution.
	defaultMeshCells = 200
	// smoothFacets is the arc resolution for smoothed polygon corners.
	smoothFacets = 16
	// volumeCells is the per-axis sampling resolution of the volume query.
	volumeCells = 64
	// componentCells is the per-axis resolution of the flood-fill grid.
	componentCells = 48
	// sectionCells is the per-axis resolution of a planar section sample.
	sectionCells = 64
)

// planar wraps an sdf.SDF2 with its source outline.
type planar struct {
	src profile.Profile
	s   sdf.SDF2
}

func (p *planar) Profile() profile.Profile { return p.src }

// prismInfo records how an extruded solid was built so fillets can
// rebuild it. Transforms and booleans drop the provenance: a combined
// solid is no longer a prism.
type prismInfo struct {
	src      profile.Profile
	height   float64
	rimRound float64 // rounding already applied to the top/bottom rims
}

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s     sdf.SDF3
	prism *prismInfo
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() geom.Box3 {
	bb := s.s.BoundingBox()
	return geom.Box3{
		Min: geom.Vec3{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z},
		Max: geom.Vec3{X: bb.Max.X, Y: bb.Max.Y, Z: bb.Max.Z},
	}
}

// Kernel implements kernel.Kernel using sdfx.
type Kernel struct {
	meshCells int
}

// New returns a new sdfx-backed kernel.
func New() *Kernel {
	return &Kernel{meshCells: defaultMeshCells}
}

// NewWithResolution returns a kernel with a custom marching cubes
// resolution, used to trade export fidelity for speed.
func NewWithResolution(meshCells int) *Kernel {
	if meshCells <= 0 {
		meshCells = defaultMeshCells
	}
	return &Kernel{meshCells: meshCells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// ConstructProfile builds a 2D field from a closed outline. Corner
// rounding is applied through the polygon builder's per-vertex smoothing.
func (k *Kernel) ConstructProfile(p profile.Profile) (kernel.Planar, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	pb := sdf.NewPolygon()
	for _, c := range p.Corners() {
		v := pb.Add(c.P.X, c.P.Y)
		if c.Round > 0 {
			v.Smooth(c.Round, smoothFacets)
		}
	}
	s2, err := sdf.Polygon2D(pb.Vertices())
	if err != nil {
		return nil, fmt.Errorf("sdfx: polygon %q: %w", p.Name, err)
	}
	return &planar{src: p, s: s2}, nil
}

// Extrude produces a prism centered on the origin, spanning z in
// [-height/2, height/2].
func (k *Kernel) Extrude(p kernel.Planar, height float64) (kernel.Solid, error) {
	if height <= 0 {
		return nil, fmt.Errorf("sdfx: extrude: non-positive height %g", height)
	}
	pl := p.(*planar)
	s3 := sdf.Extrude3D(pl.s, height)
	return &sdfxSolid{
		s:     s3,
		prism: &prismInfo{src: pl.src, height: height},
	}, nil
}

// Loft produces a solid whose cross-section interpolates linearly from
// the bottom profile to the top profile over the given height, centered
// on the origin like Extrude.
func (k *Kernel) Loft(bottom, top kernel.Planar, height float64) (kernel.Solid, error) {
	if height <= 0 {
		return nil, fmt.Errorf("sdfx: loft: non-positive height %g", height)
	}
	b := bottom.(*planar)
	t := top.(*planar)
	s3, err := sdf.Loft3D(b.s, t.s, height, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: loft %q -> %q: %w", b.src.Name, t.src.Name, err)
	}
	return wrap(s3), nil
}

// Cylinder produces a z-axis cylinder centered on the origin.
func (k *Kernel) Cylinder(height, radius float64) (kernel.Solid, error) {
	s3, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx: cylinder h=%g r=%g: %w", height, radius, err)
	}
	return wrap(s3), nil
}

// Fillet rebuilds an extruded prism with the selected edges rounded.
// Vertical edges become smoothed profile corners; the rims are rounded
// through a rounded extrusion. Non-prism solids cannot be filleted in an
// SDF representation and are rejected.
func (k *Kernel) Fillet(s kernel.Solid, sel kernel.EdgeSelector, radius float64) (kernel.Solid, error) {
	sol, ok := s.(*sdfxSolid)
	if !ok || sol.prism == nil {
		return nil, fmt.Errorf("sdfx: fillet: solid is not an extruded prism")
	}
	info := *sol.prism

	switch sel {
	case kernel.EdgesVertical:
		src := info.src
		verts := make([]profile.Vertex, len(src.Verts))
		copy(verts, src.Verts)
		for i := range verts {
			if verts[i].Round < radius {
				verts[i].Round = radius
			}
		}
		info.src = profile.Profile{Name: src.Name, Verts: verts}

	case kernel.EdgesTopBottom:
		if info.height < 2*radius {
			return nil, fmt.Errorf("sdfx: fillet: rim radius %g does not fit height %g", radius, info.height)
		}
		info.rimRound = radius

	default:
		return nil, fmt.Errorf("sdfx: fillet: unsupported selector %v", sel)
	}

	return k.rebuildPrism(info)
}

// rebuildPrism re-extrudes a prism from its recorded construction.
func (k *Kernel) rebuildPrism(info prismInfo) (kernel.Solid, error) {
	pl, err := k.ConstructProfile(info.src)
	if err != nil {
		return nil, err
	}
	p2 := pl.(*planar)
	var s3 sdf.SDF3
	if info.rimRound > 0 {
		s3, err = sdf.ExtrudeRounded3D(p2.s, info.height, info.rimRound)
		if err != nil {
			return nil, fmt.Errorf("sdfx: rounded extrude %q: %w", info.src.Name, err)
		}
	} else {
		s3 = sdf.Extrude3D(p2.s, info.height)
	}
	infoCopy := info
	return &sdfxSolid{s: s3, prism: &infoCopy}, nil
}

// Union returns the union of two solids.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Subtract returns the difference a - b.
func (k *Kernel) Subtract(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersect returns the intersection of two solids.
func (k *Kernel) Intersect(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by v.
func (k *Kernel) Translate(s kernel.Solid, v geom.Vec3) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: v.X, Y: v.Y, Z: v.Z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *Kernel) Rotate(s kernel.Solid, xDeg, yDeg, zDeg float64) kernel.Solid {
	xRad := xDeg * math.Pi / 180.0
	yRad := yDeg * math.Pi / 180.0
	zRad := zDeg * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Volume estimates the solid volume by sampling the field at cell centers
// of a fixed grid over the bounding box. The grid is a function of the
// bounding box alone, so repeated queries agree exactly.
func (k *Kernel) Volume(s kernel.Solid) float64 {
	s3 := unwrap(s)
	bb := s3.BoundingBox()
	dx := (bb.Max.X - bb.Min.X) / volumeCells
	dy := (bb.Max.Y - bb.Min.Y) / volumeCells
	dz := (bb.Max.Z - bb.Min.Z) / volumeCells
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	cellVol := dx * dy * dz
	var inside int
	for ix := 0; ix < volumeCells; ix++ {
		x := bb.Min.X + (float64(ix)+0.5)*dx
		for iy := 0; iy < volumeCells; iy++ {
			y := bb.Min.Y + (float64(iy)+0.5)*dy
			for iz := 0; iz < volumeCells; iz++ {
				z := bb.Min.Z + (float64(iz)+0.5)*dz
				if s3.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
					inside++
				}
			}
		}
	}
	return float64(inside) * cellVol
}

// ConnectedComponents counts disconnected fragments by flood-filling the
// inside voxels of a fixed sampling grid with 6-connectivity.
func (k *Kernel) ConnectedComponents(s kernel.Solid) int {
	s3 := unwrap(s)
	bb := s3.BoundingBox()
	n := componentCells
	dx := (bb.Max.X - bb.Min.X) / float64(n)
	dy := (bb.Max.Y - bb.Min.Y) / float64(n)
	dz := (bb.Max.Z - bb.Min.Z) / float64(n)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}

	idx := func(ix, iy, iz int) int { return (ix*n+iy)*n + iz }
	inside := make([]bool, n*n*n)
	for ix := 0; ix < n; ix++ {
		x := bb.Min.X + (float64(ix)+0.5)*dx
		for iy := 0; iy < n; iy++ {
			y := bb.Min.Y + (float64(iy)+0.5)*dy
			for iz := 0; iz < n; iz++ {
				z := bb.Min.Z + (float64(iz)+0.5)*dz
				inside[idx(ix, iy, iz)] = s3.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0
			}
		}
	}

	seen := make([]bool, n*n*n)
	components := 0
	var queue []int
	for start := 0; start < len(inside); start++ {
		if !inside[start] || seen[start] {
			continue
		}
		components++
		seen[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			ix, iy, iz := cur/(n*n), (cur/n)%n, cur%n
			for _, d := range [6][3]int{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}} {
				jx, jy, jz := ix+d[0], iy+d[1], iz+d[2]
				if jx < 0 || jy < 0 || jz < 0 || jx >= n || jy >= n || jz >= n {
					continue
				}
				j := idx(jx, jy, jz)
				if inside[j] && !seen[j] {
					seen[j] = true
					queue = append(queue, j)
				}
			}
		}
	}
	return components
}

// SectionEmpty reports whether the horizontal cross-section at height z
// contains no material, sampled on a fixed planar grid.
func (k *Kernel) SectionEmpty(s kernel.Solid, z float64) bool {
	s3 := unwrap(s)
	bb := s3.BoundingBox()
	if z < bb.Min.Z || z > bb.Max.Z {
		return true
	}
	dx := (bb.Max.X - bb.Min.X) / sectionCells
	dy := (bb.Max.Y - bb.Min.Y) / sectionCells
	if dx <= 0 || dy <= 0 {
		return true
	}
	for ix := 0; ix < sectionCells; ix++ {
		x := bb.Min.X + (float64(ix)+0.5)*dx
		for iy := 0; iy < sectionCells; iy++ {
			y := bb.Min.Y + (float64(iy)+0.5)*dy
			if s3.Evaluate(v3.Vec{X: x, Y: y, Z: z}) <= 0 {
				return false
			}
		}
	}
	return true
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	s3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(s3, renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("sdfx: tessellation produced no triangles")
	}

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
