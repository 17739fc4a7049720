package feature

import (
	"testing"

	"github.com/devais/enclosure/pkg/geom"
)

func TestGrilleLatticeScenario(t *testing.T) {
	// Production grille: 19.92mm diameter, 2.5mm pitch, 0.75mm holes.
	b := Circle{Radius: 19.92 / 2}
	pts := LatticePoints(b, 2.5, 0.75)
	if len(pts) == 0 {
		t.Fatal("grille lattice is empty")
	}
	for _, p := range pts {
		if p.Norm()+0.75 > b.Radius+geom.Eps {
			t.Errorf("hole at (%.2f, %.2f) crosses the grille boundary", p.X, p.Y)
		}
	}

	// Same inputs, same points, same order.
	again := LatticePoints(b, 2.5, 0.75)
	if len(again) != len(pts) {
		t.Fatalf("rerun produced %d points, want %d", len(again), len(pts))
	}
	for i := range pts {
		if pts[i] != again[i] {
			t.Fatalf("point %d differs between runs: %v vs %v", i, pts[i], again[i])
		}
	}
}

func TestLatticeRowMajorOrder(t *testing.T) {
	pts := LatticePoints(Circle{Radius: 3}, 2, 0.5)
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X <= prev.X) {
			t.Fatalf("points %d..%d out of row-major order: %v then %v", i-1, i, prev, cur)
		}
	}
}

func TestRoundedRectCornerZone(t *testing.T) {
	// 20x10 with 4mm corners. A point deep in the corner zone fails the
	// arc test even though it passes the plain half-extent bound.
	b := RoundedRect{Width: 20, Height: 10, CornerRadius: 4}
	tests := []struct {
		name string
		p    geom.Vec2
		want bool
	}{
		{"center", geom.Vec2{}, true},
		{"straight edge zone", geom.Vec2{X: 9, Y: 0}, true},
		{"corner zone inside arc", geom.Vec2{X: 6.5, Y: 1.5}, true},
		{"corner zone outside arc", geom.Vec2{X: 9, Y: 4}, false},
		{"beyond half extent", geom.Vec2{X: 9.8, Y: 0}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p, 0.6); got != tc.want {
				t.Errorf("Contains(%v, 0.6) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}
