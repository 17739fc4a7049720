package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/devais/enclosure/pkg/geom"
)

func TestOctagonShape(t *testing.T) {
	p, err := Octagon("outer", 40, 7.55, 0)
	if err != nil {
		t.Fatalf("Octagon: %v", err)
	}

	// Chamfering a square doubles its corner count; the loop closes
	// explicitly on top of that.
	if got := len(p.Corners()); got != 8 {
		t.Errorf("corner count = %d, want 8", got)
	}
	if len(p.Verts) != 9 {
		t.Errorf("vertex count = %d, want 9 (closed loop)", len(p.Verts))
	}
	if p.Verts[0].P != p.Verts[8].P {
		t.Error("loop is not explicitly closed")
	}

	if area := p.SignedArea(); area <= 0 {
		t.Errorf("signed area = %g, want positive (counter-clockwise)", area)
	}
	// Exact octagon area: square minus the four chamfered corners.
	wantArea := 40.0*40.0 - 2*7.55*7.55
	if got := p.SignedArea(); !geom.EqualWithin(got, wantArea, 1e-9) {
		t.Errorf("area = %g, want %g", got, wantArea)
	}

	min, max := p.Bounds()
	if min.X != -20 || min.Y != -20 || max.X != 20 || max.Y != 20 {
		t.Errorf("bounds = %v..%v, want -20..20 both axes", min, max)
	}
}

func TestOctagonSideLengths(t *testing.T) {
	p, err := Octagon("outer", 40, 7.55, 0)
	if err != nil {
		t.Fatalf("Octagon: %v", err)
	}
	c := p.Corners()
	long, short := 40-2*7.55, 7.55*math.Sqrt2
	for i := range c {
		l := c[(i+1)%len(c)].P.Sub(c[i].P).Norm()
		if !geom.EqualWithin(l, long, 1e-9) && !geom.EqualWithin(l, short, 1e-9) {
			t.Errorf("side %d length %g is neither long (%g) nor short (%g)", i, l, long, short)
		}
	}
}

func TestOctagonInnerVariantKeepsWinding(t *testing.T) {
	outer, err := Octagon("outer", 40, 7.55, 0)
	if err != nil {
		t.Fatalf("outer: %v", err)
	}
	inner, err := Octagon("inner", 36.8, 5.95, 0)
	if err != nil {
		t.Fatalf("inner: %v", err)
	}
	if outer.SignedArea() <= 0 || inner.SignedArea() <= 0 {
		t.Error("outer and inner loops must both wind counter-clockwise")
	}
	if !SameTopology(outer, inner) {
		t.Error("offset octagons should share topology")
	}
}

func TestOctagonRejectsImpossibleChamfer(t *testing.T) {
	var ge *geom.GeometryError
	if _, err := Octagon("bad", 40, 20, 0); !errors.As(err, &ge) {
		t.Fatalf("chamfer consuming the square: %v, want GeometryError", err)
	}
	if _, err := Octagon("bad", 40, 0, 0); !errors.As(err, &ge) {
		t.Fatalf("zero chamfer: %v, want GeometryError", err)
	}
}

func TestRoundedRect(t *testing.T) {
	p, err := RoundedRect("usb", 9.5, 3.7, 1.6)
	if err != nil {
		t.Fatalf("RoundedRect: %v", err)
	}
	if got := len(p.Corners()); got != 4 {
		t.Errorf("corner count = %d, want 4", got)
	}
	for i, v := range p.Corners() {
		if v.Round != 1.6 {
			t.Errorf("corner %d radius = %g, want 1.6", i, v.Round)
		}
	}
	if p.SignedArea() <= 0 {
		t.Error("rounded rect winds clockwise")
	}
}

func TestRoundedRectRejectsOverlappingArcs(t *testing.T) {
	var ge *geom.GeometryError
	if _, err := RoundedRect("bad", 10, 3, 1.6); !errors.As(err, &ge) {
		t.Fatalf("overlapping arcs: %v, want GeometryError", err)
	}
	if _, err := RoundedRect("bad", 0, 3, 1); !errors.As(err, &ge) {
		t.Fatalf("zero width: %v, want GeometryError", err)
	}
}

func TestValidate(t *testing.T) {
	open := Profile{Name: "open", Verts: []Vertex{
		{P: geom.Vec2{X: 0, Y: 0}},
		{P: geom.Vec2{X: 1, Y: 0}},
		{P: geom.Vec2{X: 1, Y: 1}},
		{P: geom.Vec2{X: 0, Y: 1}},
	}}
	if open.Validate() == nil {
		t.Error("unclosed loop accepted")
	}

	dup := Profile{Name: "dup", Verts: []Vertex{
		{P: geom.Vec2{X: 0, Y: 0}},
		{P: geom.Vec2{X: 1, Y: 0}},
		{P: geom.Vec2{X: 1, Y: 0}},
		{P: geom.Vec2{X: 1, Y: 1}},
		{P: geom.Vec2{X: 0, Y: 0}},
	}}
	if dup.Validate() == nil {
		t.Error("duplicate consecutive point accepted")
	}

	tiny := Profile{Name: "tiny", Verts: []Vertex{
		{P: geom.Vec2{X: 0, Y: 0}},
		{P: geom.Vec2{X: 1, Y: 0}},
		{P: geom.Vec2{X: 0, Y: 0}},
	}}
	if tiny.Validate() == nil {
		t.Error("two-corner loop accepted")
	}
}

func TestSameTopology(t *testing.T) {
	oct, _ := Octagon("oct", 40, 7.55, 0)
	rect, _ := RoundedRect("rect", 10, 5, 1)
	sharp, _ := RoundedRect("sharp", 10, 5, 0)
	rounded, _ := RoundedRect("rounded", 8, 4, 0.5)

	if SameTopology(oct, rect) {
		t.Error("octagon and rectangle should not match")
	}
	if SameTopology(rect, sharp) {
		t.Error("rounded and sharp corners should not match")
	}
	if !SameTopology(rect, rounded) {
		t.Error("two rounded rects should match")
	}
}
