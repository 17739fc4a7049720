// Package kerneltest provides an analytic in-memory kernel.Kernel for
// tests. Solids are bounding boxes with bookkept volume and component
// counts, so builder and orchestrator logic can be exercised without any
// distance-field evaluation.
package kerneltest

import (
	"fmt"
	"math"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/profile"
)

var _ kernel.Kernel = (*Fake)(nil)

// Fake implements kernel.Kernel with closed-form bookkeeping.
type Fake struct {
	// FlakyBooleans makes the next N boolean results degenerate
	// (zero volume), simulating the classic kernel failure mode.
	FlakyBooleans int

	// Ops records every operation name in call order.
	Ops []string
}

// New returns an empty fake kernel.
func New() *Fake {
	return &Fake{}
}

type fakePlanar struct {
	src profile.Profile
}

func (p *fakePlanar) Profile() profile.Profile { return p.src }

// Solid is the fake solid handle. Exported so tests can assert on it.
type Solid struct {
	Box        geom.Box3
	Vol        float64
	Comps      int
	EmptyZLo   float64 // z band reported empty by SectionEmpty
	EmptyZHi   float64
	hasGap     bool
	prism      *profile.Profile
	prismH     float64
	degenerate bool
}

// BoundingBox returns the axis-aligned bounding box.
func (s *Solid) BoundingBox() geom.Box3 { return s.Box }

// NewSolid builds a free-standing fake solid for direct test injection.
func NewSolid(box geom.Box3, vol float64, comps int) *Solid {
	return &Solid{Box: box, Vol: vol, Comps: comps}
}

// WithEmptyBand marks [zlo, zhi] as an empty cross-section band.
func (s *Solid) WithEmptyBand(zlo, zhi float64) *Solid {
	s.hasGap = true
	s.EmptyZLo = zlo
	s.EmptyZHi = zhi
	return s
}

func (f *Fake) record(op string) {
	f.Ops = append(f.Ops, op)
}

// ConstructProfile validates and wraps the outline.
func (f *Fake) ConstructProfile(p profile.Profile) (kernel.Planar, error) {
	f.record("profile:" + p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &fakePlanar{src: p}, nil
}

// Extrude produces a centered prism with exact area*height volume.
func (f *Fake) Extrude(p kernel.Planar, height float64) (kernel.Solid, error) {
	f.record("extrude")
	if height <= 0 {
		return nil, fmt.Errorf("kerneltest: extrude height %g", height)
	}
	src := p.Profile()
	min, max := src.Bounds()
	area := math.Abs(src.SignedArea())
	return &Solid{
		Box: geom.Box3{
			Min: geom.Vec3{X: min.X, Y: min.Y, Z: -height / 2},
			Max: geom.Vec3{X: max.X, Y: max.Y, Z: height / 2},
		},
		Vol:    area * height,
		Comps:  1,
		prism:  &src,
		prismH: height,
	}, nil
}

// Loft interpolates the two profile areas linearly.
func (f *Fake) Loft(bottom, top kernel.Planar, height float64) (kernel.Solid, error) {
	f.record("loft")
	if height <= 0 {
		return nil, fmt.Errorf("kerneltest: loft height %g", height)
	}
	bmin, bmax := bottom.Profile().Bounds()
	tmin, tmax := top.Profile().Bounds()
	min := geom.Vec2{X: math.Min(bmin.X, tmin.X), Y: math.Min(bmin.Y, tmin.Y)}
	max := geom.Vec2{X: math.Max(bmax.X, tmax.X), Y: math.Max(bmax.Y, tmax.Y)}
	area := (math.Abs(bottom.Profile().SignedArea()) + math.Abs(top.Profile().SignedArea())) / 2
	return &Solid{
		Box: geom.Box3{
			Min: geom.Vec3{X: min.X, Y: min.Y, Z: -height / 2},
			Max: geom.Vec3{X: max.X, Y: max.Y, Z: height / 2},
		},
		Vol:   area * height,
		Comps: 1,
	}, nil
}

// Cylinder produces a centered z-axis cylinder.
func (f *Fake) Cylinder(height, radius float64) (kernel.Solid, error) {
	f.record("cylinder")
	if height <= 0 || radius <= 0 {
		return nil, fmt.Errorf("kerneltest: cylinder h=%g r=%g", height, radius)
	}
	return &Solid{
		Box: geom.Box3{
			Min: geom.Vec3{X: -radius, Y: -radius, Z: -height / 2},
			Max: geom.Vec3{X: radius, Y: radius, Z: height / 2},
		},
		Vol:   math.Pi * radius * radius * height,
		Comps: 1,
	}, nil
}

// Fillet accepts prisms only, mirroring the sdfx backend contract.
// Geometry is unchanged; only the call is recorded.
func (f *Fake) Fillet(s kernel.Solid, sel kernel.EdgeSelector, radius float64) (kernel.Solid, error) {
	f.record("fillet:" + sel.String())
	sol := s.(*Solid)
	if sol.prism == nil {
		return nil, fmt.Errorf("kerneltest: fillet: not a prism")
	}
	out := *sol
	return &out, nil
}

func boxUnion(a, b geom.Box3) geom.Box3 {
	return geom.Box3{
		Min: geom.Vec3{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: geom.Vec3{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

func overlapVolume(a, b geom.Box3) float64 {
	dx := math.Min(a.Max.X, b.Max.X) - math.Max(a.Min.X, b.Min.X)
	dy := math.Min(a.Max.Y, b.Max.Y) - math.Max(a.Min.Y, b.Min.Y)
	dz := math.Min(a.Max.Z, b.Max.Z) - math.Max(a.Min.Z, b.Min.Z)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}

func boxesOverlap(a, b geom.Box3) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y &&
		a.Min.Z <= b.Max.Z && b.Min.Z <= a.Max.Z
}

func (f *Fake) boolean(op string, out *Solid) kernel.Solid {
	f.record(op)
	if f.FlakyBooleans > 0 {
		f.FlakyBooleans--
		out.Vol = 0
		out.degenerate = true
	}
	return out
}

// Union adds volumes; overlap is ignored. Touching boxes merge into a
// single component, disjoint boxes stay separate fragments.
func (f *Fake) Union(a, b kernel.Solid) kernel.Solid {
	sa, sb := a.(*Solid), b.(*Solid)
	comps := sa.Comps + sb.Comps
	if boxesOverlap(sa.Box, sb.Box) {
		comps = sa.Comps + sb.Comps - 1
		if comps < 1 {
			comps = 1
		}
	}
	return f.boolean("union", &Solid{
		Box:   boxUnion(sa.Box, sb.Box),
		Vol:   sa.Vol + sb.Vol,
		Comps: comps,
	})
}

// Subtract removes the cutter volume, capped by the overlap of the two
// bounding boxes. Cutting away everything yields a degenerate
// zero-volume result, which is exactly the case the builder must detect.
func (f *Fake) Subtract(a, b kernel.Solid) kernel.Solid {
	sa, sb := a.(*Solid), b.(*Solid)
	removal := math.Min(sb.Vol, overlapVolume(sa.Box, sb.Box))
	vol := sa.Vol - removal
	if vol < 0 {
		vol = 0
	}
	out := &Solid{Box: sa.Box, Vol: vol, Comps: sa.Comps}
	out.hasGap = sa.hasGap
	out.EmptyZLo = sa.EmptyZLo
	out.EmptyZHi = sa.EmptyZHi
	return f.boolean("subtract", out)
}

// Intersect clamps to the overlapping box.
func (f *Fake) Intersect(a, b kernel.Solid) kernel.Solid {
	sa, sb := a.(*Solid), b.(*Solid)
	box := geom.Box3{
		Min: geom.Vec3{X: math.Max(sa.Box.Min.X, sb.Box.Min.X), Y: math.Max(sa.Box.Min.Y, sb.Box.Min.Y), Z: math.Max(sa.Box.Min.Z, sb.Box.Min.Z)},
		Max: geom.Vec3{X: math.Min(sa.Box.Max.X, sb.Box.Max.X), Y: math.Min(sa.Box.Max.Y, sb.Box.Max.Y), Z: math.Min(sa.Box.Max.Z, sb.Box.Max.Z)},
	}
	vol := 0.0
	if box.Max.X > box.Min.X && box.Max.Y > box.Min.Y && box.Max.Z > box.Min.Z {
		vol = math.Min(sa.Vol, sb.Vol) / 2
	}
	return f.boolean("intersect", &Solid{Box: box, Vol: vol, Comps: 1})
}

// Translate shifts the bounding box.
func (f *Fake) Translate(s kernel.Solid, v geom.Vec3) kernel.Solid {
	f.record("translate")
	sol := *(s.(*Solid))
	sol.Box.Min = sol.Box.Min.Add(v)
	sol.Box.Max = sol.Box.Max.Add(v)
	sol.EmptyZLo += v.Z
	sol.EmptyZHi += v.Z
	sol.prism = nil
	return &sol
}

// Rotate rotates the bounding box corners and re-bounds them.
func (f *Fake) Rotate(s kernel.Solid, xDeg, yDeg, zDeg float64) kernel.Solid {
	f.record("rotate")
	sol := *(s.(*Solid))
	sol.prism = nil
	corners := [8]geom.Vec3{}
	i := 0
	for _, x := range []float64{sol.Box.Min.X, sol.Box.Max.X} {
		for _, y := range []float64{sol.Box.Min.Y, sol.Box.Max.Y} {
			for _, z := range []float64{sol.Box.Min.Z, sol.Box.Max.Z} {
				corners[i] = rotateVec(geom.Vec3{X: x, Y: y, Z: z}, xDeg, yDeg, zDeg)
				i++
			}
		}
	}
	min, max := corners[0], corners[0]
	for _, c := range corners[1:] {
		min = geom.Vec3{X: math.Min(min.X, c.X), Y: math.Min(min.Y, c.Y), Z: math.Min(min.Z, c.Z)}
		max = geom.Vec3{X: math.Max(max.X, c.X), Y: math.Max(max.Y, c.Y), Z: math.Max(max.Z, c.Z)}
	}
	sol.Box = geom.Box3{Min: min, Max: max}
	return &sol
}

func rotateVec(v geom.Vec3, xDeg, yDeg, zDeg float64) geom.Vec3 {
	rx, ry, rz := xDeg*math.Pi/180, yDeg*math.Pi/180, zDeg*math.Pi/180
	// X axis.
	y := v.Y*math.Cos(rx) - v.Z*math.Sin(rx)
	z := v.Y*math.Sin(rx) + v.Z*math.Cos(rx)
	v.Y, v.Z = y, z
	// Y axis.
	x := v.X*math.Cos(ry) + v.Z*math.Sin(ry)
	z = -v.X*math.Sin(ry) + v.Z*math.Cos(ry)
	v.X, v.Z = x, z
	// Z axis.
	x = v.X*math.Cos(rz) - v.Y*math.Sin(rz)
	y = v.X*math.Sin(rz) + v.Y*math.Cos(rz)
	v.X, v.Y = x, y
	return v
}

// Volume returns the bookkept volume.
func (f *Fake) Volume(s kernel.Solid) float64 {
	return s.(*Solid).Vol
}

// ConnectedComponents returns the bookkept fragment count.
func (f *Fake) ConnectedComponents(s kernel.Solid) int {
	return s.(*Solid).Comps
}

// SectionEmpty reports emptiness outside the box or inside a configured
// empty band.
func (f *Fake) SectionEmpty(s kernel.Solid, z float64) bool {
	sol := s.(*Solid)
	if z < sol.Box.Min.Z || z > sol.Box.Max.Z {
		return true
	}
	if sol.hasGap && z >= sol.EmptyZLo && z <= sol.EmptyZHi {
		return true
	}
	return false
}

// ToMesh returns a minimal single-triangle mesh.
func (f *Fake) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	f.record("tomesh")
	sol := s.(*Solid)
	if sol.degenerate {
		return nil, fmt.Errorf("kerneltest: degenerate solid has no mesh")
	}
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}, nil
}
