package params

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devais/enclosure/pkg/geom"
)

func TestScenarioLegacyChamfer(t *testing.T) {
	p := Default()
	p.WallThickness = 2.5
	p.Chamfer = 7.55

	s, err := New(p)
	require.NoError(t, err)

	require.InDelta(t, 24.9, s.LongSide, 0.01)
	require.InDelta(t, 10.68, s.ShortSide, 0.01)
	// Long to short holds the 7:3 proportion within 1%.
	require.InEpsilon(t, 7.0/3.0, s.LongSide/s.ShortSide, 0.01)
}

func TestRatio73SchemeIsExact(t *testing.T) {
	s, err := New(Default())
	require.NoError(t, err)

	require.InDelta(t, 7.547, s.ChamferDist, 0.001)
	require.InEpsilon(t, 7.0/3.0, s.LongSide/s.ShortSide, 1e-9)
}

func TestLegacySchemeScalesWithWidth(t *testing.T) {
	p := Default()
	p.ChamferScheme = ChamferLegacy

	s40, err := New(p)
	require.NoError(t, err)
	require.InDelta(t, 7.55, s40.ChamferDist, 1e-9)

	p.Width = 80
	s80, err := New(p)
	require.NoError(t, err)
	require.InDelta(t, 15.10, s80.ChamferDist, 1e-9)
}

func TestDegenerateHollowRejected(t *testing.T) {
	p := Default()
	p.WallThickness = p.Width/2 + 1

	_, err := New(p)
	var pe *geom.ParameterError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, "wall-thickness", pe.Param)
}

func TestWallExceedingChamferRejected(t *testing.T) {
	p := Default()
	p.WallThickness = 8 // beyond the ~7.55 corner cut

	_, err := New(p)
	var pe *geom.ParameterError
	require.ErrorAs(t, err, &pe)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Primary)
	}{
		{"zero width", func(p *Primary) { p.Width = 0 }},
		{"negative height", func(p *Primary) { p.Height = -1 }},
		{"zero wall", func(p *Primary) { p.WallThickness = 0 }},
		{"chamfer eats the square", func(p *Primary) { p.Chamfer = 25 }},
		{"edge fillet beyond material", func(p *Primary) { p.EdgeFilletRadius = 8 }},
		{"top fillet beyond half height", func(p *Primary) { p.TopFilletRadius = 80 }},
		{"button arcs overlap", func(p *Primary) { p.Height = 40 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Default()
			tc.mutate(&p)
			_, err := New(p)
			var pe *geom.ParameterError
			require.ErrorAs(t, err, &pe)
		})
	}
}

func TestDerivedChain(t *testing.T) {
	s, err := New(Default())
	require.NoError(t, err)

	require.InDelta(t, s.SquareSide-2*s.ChamferDist, s.LongSide, 1e-12)
	require.InDelta(t, s.ChamferDist*math.Sqrt2, s.ShortSide, 1e-12)
	require.InDelta(t, s.SquareSide-2*s.WallThickness, s.InnerSquare, 1e-12)
	require.InDelta(t, 0.8*s.LongSide, s.SpeakerDia, 1e-12)
	require.InDelta(t, s.Height-10, s.LEDZ, 1e-12)
	require.InDelta(t, s.LongSide, s.ButtonWidth, 1e-12)
	require.InDelta(t, 0.30*s.Height, s.ButtonHeight, 1e-12)
	require.InDelta(t, s.ButtonWidth-8, s.ButtonOuterWidth, 1e-12)
	require.InDelta(t, s.Height-0.15*s.Height-s.ButtonHeight/2, s.ButtonZCenter, 1e-12)
	require.InDelta(t, s.ButtonWidth+s.OpeningClearance, s.OpeningWidth, 1e-12)
	require.Equal(t, s.WallThickness, s.FrameWidth)
}

func TestNewIsDeterministic(t *testing.T) {
	a, err := New(Default())
	require.NoError(t, err)
	b, err := New(Default())
	require.NoError(t, err)
	require.Equal(t, *a, *b)
}

func TestWithOverrides(t *testing.T) {
	p, err := Default().WithOverrides(map[string]float64{
		"wall-thickness": 2.5,
		"height":         160,
		"split-shell":    1,
		"mounts":         0,
	})
	require.NoError(t, err)
	require.Equal(t, 2.5, p.WallThickness)
	require.Equal(t, 160.0, p.Height)
	require.True(t, p.SplitShell)
	require.False(t, p.Mounts)
}

func TestWithOverridesRejectsUnknownName(t *testing.T) {
	_, err := Default().WithOverrides(map[string]float64{"wall": 2})
	var pe *geom.ParameterError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "wall", pe.Param)
}
