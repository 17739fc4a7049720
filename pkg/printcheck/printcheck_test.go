package printcheck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel/kerneltest"
	"github.com/devais/enclosure/pkg/solid"
)

func wrap(s *kerneltest.Solid, label string) *solid.Solid {
	return &solid.Solid{Label: label, Handle: s}
}

func TestCheckHealthySolid(t *testing.T) {
	fake := kerneltest.New()
	body := kerneltest.NewSolid(geom.Box3{
		Min: geom.Vec3{X: -20, Y: -20, Z: 0},
		Max: geom.Vec3{X: 20, Y: 20, Z: 150},
	}, 30000, 1)

	r := Check(fake, wrap(body, "shell"), 0.2)

	require.True(t, r.SingleSolid)
	require.Equal(t, 1, r.Components)
	require.InDelta(t, 30000, r.Volume, 1e-9)
	require.Equal(t, maxLayerSamples-1, r.SampledLayers)
	require.Zero(t, r.EmptyLayers)
	require.Empty(t, r.Warnings())
}

func TestCheckFragmentedSolid(t *testing.T) {
	fake := kerneltest.New()
	body := kerneltest.NewSolid(geom.Box3{
		Max: geom.Vec3{X: 10, Y: 10, Z: 50},
	}, 900, 2)

	r := Check(fake, wrap(body, "shell"), 0.2)

	require.False(t, r.SingleSolid)
	require.Equal(t, 2, r.Components)
	require.NotEmpty(t, r.Warnings())
}

func TestCheckEmptyLayerBand(t *testing.T) {
	fake := kerneltest.New()
	// Material everywhere except a band around mid-height: two stacked
	// pieces with an air gap, the classic split-part failure.
	body := kerneltest.NewSolid(geom.Box3{
		Max: geom.Vec3{X: 10, Y: 10, Z: 100},
	}, 8000, 1).WithEmptyBand(48, 52)

	r := Check(fake, wrap(body, "shell"), 1.0)

	require.Equal(t, 99, r.SampledLayers)
	require.Greater(t, r.EmptyLayers, 0)
	require.InDelta(t, float64(r.EmptyLayers)/float64(r.SampledLayers), r.EmptyLayerFraction, 1e-12)
	require.NotEmpty(t, r.Warnings())
}

func TestCheckSkipsDegenerateSampling(t *testing.T) {
	fake := kerneltest.New()
	thin := kerneltest.NewSolid(geom.Box3{
		Max: geom.Vec3{X: 10, Y: 10, Z: 0.3},
	}, 30, 1)

	r := Check(fake, wrap(thin, "washer"), 0.2)
	require.Zero(t, r.SampledLayers)
	require.True(t, r.SingleSolid)
}
