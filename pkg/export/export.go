// Package export serializes finished solids to interchange formats.
// STL (binary and ascii) is produced via the tessellated kernel mesh.
// Exact boundary-representation output is not possible from a distance
// field model; the format id exists and reports an unsupported error.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/hschendel/stl"

	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/solid"
)

// Format identifies an output file format.
type Format string

const (
	// FormatSTLBinary is the printing default.
	FormatSTLBinary Format = "stl-binary"
	// FormatSTLASCII is the human-readable STL variant.
	FormatSTLASCII Format = "stl-ascii"
	// FormatSTEP is reserved for exact CAD interchange. Unsupported.
	FormatSTEP Format = "step"
)

// Exporter writes parts through the kernel's tessellation.
type Exporter struct {
	k kernel.Kernel
}

// New returns an Exporter bound to the kernel.
func New(k kernel.Kernel) *Exporter {
	return &Exporter{k: k}
}

// Write tessellates the solid and writes <dir>/devais_<name>.stl,
// creating the directory if absent. It returns the written path.
// Unknown formats and writer failures are fatal and surfaced unmodified.
func (e *Exporter) Write(s *solid.Solid, name string, format Format, dir string) (string, error) {
	switch format {
	case FormatSTLBinary, FormatSTLASCII:
	case FormatSTEP:
		return "", fmt.Errorf("export: format %q requires exact boundary representation, which the kernel cannot produce", format)
	default:
		return "", fmt.Errorf("export: unknown format %q", format)
	}

	mesh, err := e.k.ToMesh(s.Handle)
	if err != nil {
		return "", fmt.Errorf("export: tessellate %s: %w", s.Label, err)
	}
	if mesh.IsEmpty() {
		return "", fmt.Errorf("export: %s tessellated to an empty mesh", s.Label)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create output dir: %w", err)
	}

	out := stl.Solid{
		Name:    name,
		IsAscii: format == FormatSTLASCII,
	}
	out.Triangles = make([]stl.Triangle, 0, mesh.TriangleCount())
	for t := 0; t < mesh.TriangleCount(); t++ {
		var tri stl.Triangle
		for v := 0; v < 3; v++ {
			i := mesh.Indices[3*t+v]
			tri.Vertices[v] = stl.Vec3{
				mesh.Vertices[3*i],
				mesh.Vertices[3*i+1],
				mesh.Vertices[3*i+2],
			}
		}
		tri.Normal = faceNormal(tri.Vertices)
		out.Triangles = append(out.Triangles, tri)
	}

	path := filepath.Join(dir, fmt.Sprintf("devais_%s.stl", name))
	if err := out.WriteFile(path); err != nil {
		return "", fmt.Errorf("export: write %s: %w", path, err)
	}
	return path, nil
}

// faceNormal computes the right-hand-rule triangle normal.
func faceNormal(v [3]stl.Vec3) stl.Vec3 {
	ax := float64(v[1][0] - v[0][0])
	ay := float64(v[1][1] - v[0][1])
	az := float64(v[1][2] - v[0][2])
	bx := float64(v[2][0] - v[0][0])
	by := float64(v[2][1] - v[0][1])
	bz := float64(v[2][2] - v[0][2])
	nx := ay*bz - az*by
	ny := az*bx - ax*bz
	nz := ax*by - ay*bx
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l == 0 {
		return stl.Vec3{}
	}
	return stl.Vec3{float32(nx / l), float32(ny / l), float32(nz / l)}
}
