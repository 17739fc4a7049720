package solid

import (
	"errors"
	"testing"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/kernel/kerneltest"
	"github.com/devais/enclosure/pkg/profile"
)

func mustRect(t *testing.T, name string, w, h, r float64) profile.Profile {
	t.Helper()
	p, err := profile.RoundedRect(name, w, h, r)
	if err != nil {
		t.Fatalf("RoundedRect(%s): %v", name, err)
	}
	return p
}

func TestExtrudeProfileKeepsVolume(t *testing.T) {
	fake := kerneltest.New()
	b := NewBuilder(fake)

	s, err := b.ExtrudeProfile("slab", mustRect(t, "slab", 20, 10, 0), 5)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}
	if got, want := b.Volume(s), 20.0*10*5; !geom.EqualWithin(got, want, 1e-9) {
		t.Errorf("volume = %g, want %g", got, want)
	}
	if s.Label != "slab" {
		t.Errorf("label = %q, want slab", s.Label)
	}
}

func TestFilletCeiling(t *testing.T) {
	// 20x10 rectangle extruded 30 tall: shortest side face is 10 wide,
	// so the vertical-edge ceiling is exactly 5.
	tests := []struct {
		name    string
		sel     kernel.EdgeSelector
		radius  float64
		wantErr bool
	}{
		{"vertical at ceiling", kernel.EdgesVertical, 5, false},
		{"vertical over ceiling", kernel.EdgesVertical, 5.01, true},
		{"rim under ceiling", kernel.EdgesTopBottom, 4, false},
		{"rim over ceiling", kernel.EdgesTopBottom, 5.01, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder(kerneltest.New())
			s, err := b.ExtrudeProfile("slab", mustRect(t, "slab", 20, 10, 0), 30)
			if err != nil {
				t.Fatalf("ExtrudeProfile: %v", err)
			}
			_, err = b.FilletEdges(s, tc.sel, tc.radius)
			if tc.wantErr {
				var ge *geom.GeometryError
				if !errors.As(err, &ge) {
					t.Fatalf("FilletEdges = %v, want GeometryError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FilletEdges: %v", err)
			}
		})
	}
}

func TestFilletRejectsTransformedSolid(t *testing.T) {
	b := NewBuilder(kerneltest.New())
	s, err := b.ExtrudeProfile("slab", mustRect(t, "slab", 20, 10, 0), 30)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}
	moved := b.Translate(s, geom.Vec3{Z: 15})
	var tme *geom.TopologyMismatchError
	if _, err := b.FilletEdges(moved, kernel.EdgesVertical, 2); !errors.As(err, &tme) {
		t.Fatalf("FilletEdges after Translate = %v, want TopologyMismatchError", err)
	}
}

func TestLoftTopologyMismatch(t *testing.T) {
	b := NewBuilder(kerneltest.New())
	oct, err := profile.Octagon("oct", 40, 7.55, 0)
	if err != nil {
		t.Fatalf("Octagon: %v", err)
	}
	rect := mustRect(t, "rect", 20, 10, 0)

	var tme *geom.TopologyMismatchError
	if _, err := b.LoftBetweenProfiles("bad", oct, rect, 4); !errors.As(err, &tme) {
		t.Fatalf("LoftBetweenProfiles = %v, want TopologyMismatchError", err)
	}

	// Matching topology lofts fine.
	inner := mustRect(t, "inner", 12, 6, 0)
	if _, err := b.LoftBetweenProfiles("bevel", rect, inner, 4); err != nil {
		t.Fatalf("LoftBetweenProfiles: %v", err)
	}
}

func TestSubtractRetriesOnceOnDegenerateResult(t *testing.T) {
	fake := kerneltest.New()
	b := NewBuilder(fake)

	body, err := b.ExtrudeProfile("body", mustRect(t, "body", 20, 10, 0), 30)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}
	cutter, err := b.Cylinder("hole", 30, 1)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}

	fake.FlakyBooleans = 1
	out, err := b.Subtract("body-drilled", body, cutter)
	if err != nil {
		t.Fatalf("Subtract with one flaky result: %v", err)
	}
	if b.Volume(out) <= 0 {
		t.Error("retried subtract produced zero volume")
	}
	subtracts := 0
	for _, op := range fake.Ops {
		if op == "subtract" {
			subtracts++
		}
	}
	if subtracts != 2 {
		t.Errorf("subtract issued %d times, want 2 (original + retry)", subtracts)
	}
}

func TestSubtractFailsAfterRetry(t *testing.T) {
	fake := kerneltest.New()
	b := NewBuilder(fake)

	body, err := b.ExtrudeProfile("body", mustRect(t, "body", 20, 10, 0), 30)
	if err != nil {
		t.Fatalf("ExtrudeProfile: %v", err)
	}
	cutter, err := b.Cylinder("hole", 30, 1)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}

	fake.FlakyBooleans = 2
	var ge *geom.GeometryError
	if _, err := b.Subtract("body-drilled", body, cutter); !errors.As(err, &ge) {
		t.Fatalf("Subtract = %v, want GeometryError", err)
	} else if ge.Op != "boolean-subtract" {
		t.Errorf("Op = %q, want boolean-subtract", ge.Op)
	}
}
