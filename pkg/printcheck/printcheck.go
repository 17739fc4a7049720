// Package printcheck inspects finished solids for common 3D printing
// risks: disconnected fragments, implausible volume, and empty horizontal
// cross-sections inside the part. It is diagnostic only; reports never
// mutate geometry or block export.
package printcheck

import (
	"fmt"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/solid"
)

// maxLayerSamples caps the cross-section scan; taller parts get a
// coarser effective layer height instead of more samples.
const maxLayerSamples = 100

// Report is the per-part printability record. Produced once, read-only.
type Report struct {
	Part               string
	SingleSolid        bool
	Components         int
	BoundingBox        geom.Box3
	Volume             float64
	SampledLayers      int
	EmptyLayers        int
	EmptyLayerFraction float64
}

// Check measures the solid and samples horizontal cross-sections at the
// given layer height (0.2mm is the printing default). The first and last
// layers are skipped: the filleted rims legitimately taper to nothing.
func Check(k kernel.Kernel, s *solid.Solid, layerHeight float64) *Report {
	r := &Report{
		Part:        s.Label,
		BoundingBox: s.BoundingBox(),
		Volume:      k.Volume(s.Handle),
	}
	r.Components = k.ConnectedComponents(s.Handle)
	r.SingleSolid = r.Components == 1 && r.Volume > geom.Eps

	height := r.BoundingBox.Size().Z
	if layerHeight <= 0 || height <= 2*layerHeight {
		return r
	}
	n := int(height / layerHeight)
	if n > maxLayerSamples {
		n = maxLayerSamples
		layerHeight = height / float64(n)
	}
	for i := 1; i < n; i++ { // skip first and last layers
		z := r.BoundingBox.Min.Z + float64(i)*layerHeight
		r.SampledLayers++
		if k.SectionEmpty(s.Handle, z) {
			r.EmptyLayers++
		}
	}
	if r.SampledLayers > 0 {
		r.EmptyLayerFraction = float64(r.EmptyLayers) / float64(r.SampledLayers)
	}
	return r
}

// Warnings renders the report's risk findings as human-readable lines.
// An empty slice means the part looks printable.
func (r *Report) Warnings() []string {
	var w []string
	if r.Volume <= geom.Eps {
		w = append(w, fmt.Sprintf("%s: solid has no volume", r.Part))
	}
	if r.Components > 1 {
		w = append(w, fmt.Sprintf("%s: %d disconnected fragments will print as loose pieces", r.Part, r.Components))
	}
	if r.EmptyLayers > 0 {
		w = append(w, fmt.Sprintf("%s: %d of %d sampled layers are empty (%.0f%%); part may be split along its height",
			r.Part, r.EmptyLayers, r.SampledLayers, r.EmptyLayerFraction*100))
	}
	return w
}
