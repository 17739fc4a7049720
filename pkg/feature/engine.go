package feature

import (
	"fmt"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/params"
	"github.com/devais/enclosure/pkg/solid"
)

// Kind tags a feature variant in the catalog.
type Kind int

const (
	KindLEDArray Kind = iota
	KindSpeakerGrille
	KindMicPort
	KindPowerButton
	KindUSBPort
	KindButtonOpening
)

// Feature is one catalog entry: a tagged variant plus its target face.
// The engine resolves the variant's template and offset rule; the tag
// carries no geometry of its own.
type Feature struct {
	Kind Kind
	Name string
	Face Face
}

// FrontCatalog lists the front-face features in application order.
func FrontCatalog() []Feature {
	return []Feature{
		{Kind: KindLEDArray, Name: "led-array", Face: FaceFront},
		{Kind: KindSpeakerGrille, Name: "speaker-grille", Face: FaceFront},
		{Kind: KindMicPort, Name: "mic-port", Face: FaceFront},
	}
}

// SideCatalog lists the right-face features in application order. The
// push-to-talk opening comes last so its raised frame unions onto a
// fully cut wall.
func SideCatalog() []Feature {
	return []Feature{
		{Kind: KindPowerButton, Name: "power-button", Face: FaceRight},
		{Kind: KindUSBPort, Name: "usb-port", Face: FaceRight},
		{Kind: KindButtonOpening, Name: "button-opening", Face: FaceRight},
	}
}

// Engine materializes catalog features against a parameter set and a
// primitive builder.
type Engine struct {
	b  *solid.Builder
	ps *params.Set
}

// NewEngine returns an Engine bound to the builder and parameters.
func NewEngine(b *solid.Builder, ps *params.Set) *Engine {
	return &Engine{b: b, ps: ps}
}

// Apply cuts or unions one feature into the shell and returns the new
// shell. The input shell is never mutated.
func (e *Engine) Apply(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	var (
		out *solid.Solid
		err error
	)
	switch f.Kind {
	case KindLEDArray:
		out, err = e.applyLEDArray(shell, f)
	case KindSpeakerGrille:
		out, err = e.applySpeakerGrille(shell, f)
	case KindMicPort:
		out, err = e.applyMicPort(shell, f)
	case KindPowerButton:
		out, err = e.applyPowerButton(shell, f)
	case KindUSBPort:
		out, err = e.applyUSBPort(shell, f)
	case KindButtonOpening:
		out, err = e.applyButtonOpening(shell, f)
	default:
		return nil, &geom.ParameterError{Param: f.Name, Message: "unknown feature kind"}
	}
	if err != nil {
		return nil, fmt.Errorf("feature %s on %s face: %w", f.Name, f.Face, err)
	}
	return out, nil
}

// place orients a z-axis template onto the face and positions it at the
// frame offset, depth millimeters along the outward normal from the face
// surface. Templates are symmetric per axis, so only axis alignment
// matters, not direction.
func (e *Engine) place(s *solid.Solid, fr Frame, off geom.Vec2, depth float64) *solid.Solid {
	rz := 0.0
	if fr.Face == FaceLeft || fr.Face == FaceRight {
		rz = 90
	}
	s = e.b.Rotate(s, 90, 0, rz)
	pos := fr.World(off).Add(fr.Face.Normal().Scale(depth))
	return e.b.Translate(s, pos)
}

// cutterDepth is the through-wall cutter length: the wall plus 1mm so
// surface coincidence never leaves a membrane.
func (e *Engine) cutterDepth() float64 { return e.ps.WallThickness + 1 }

// throughCut centers a through-wall cutter on the wall midplane.
func (e *Engine) throughCut(shell, cutter *solid.Solid, fr Frame, off geom.Vec2, label string) (*solid.Solid, error) {
	placed := e.place(cutter, fr, off, -e.ps.WallThickness/2)
	return e.b.Subtract(label, shell, placed)
}

func (e *Engine) applyLEDArray(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	fr := FrameFor(f.Face, e.ps)
	v := fr.FromTop(e.ps.Height - e.ps.LEDZ)
	r := (e.ps.LEDDiameter + e.ps.PrintTolerance) / 2
	for i, u := range []float64{-e.ps.LEDSpacing, 0, e.ps.LEDSpacing} {
		off := geom.Vec2{X: u, Y: v}
		if err := fr.CheckOffset(f.Name, off); err != nil {
			return nil, err
		}
		hole, err := e.b.Cylinder(fmt.Sprintf("led-hole-%d", i), e.cutterDepth(), r)
		if err != nil {
			return nil, err
		}
		shell, err = e.throughCut(shell, hole, fr, off, "shell-after-"+f.Name)
		if err != nil {
			return nil, err
		}
	}
	return shell, nil
}

func (e *Engine) applySpeakerGrille(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	fr := FrameFor(f.Face, e.ps)
	center := geom.Vec2{Y: e.ps.SpeakerZ - e.ps.Height/2}
	if err := fr.CheckOffset(f.Name, center); err != nil {
		return nil, err
	}
	pts := LatticePoints(Circle{Radius: e.ps.SpeakerDia / 2}, e.ps.SpeakerSpacing, e.ps.SpeakerHoleR)
	for i, p := range pts {
		hole, err := e.b.Cylinder(fmt.Sprintf("grille-hole-%d", i), e.cutterDepth(), e.ps.SpeakerHoleR)
		if err != nil {
			return nil, err
		}
		shell, err = e.throughCut(shell, hole, fr, center.Add(p), "shell-after-"+f.Name)
		if err != nil {
			return nil, err
		}
	}
	return shell, nil
}

// applyMicPort cuts the acoustic hole through the wall, a board pocket
// behind the wall, and the narrow internal port linking the two, all on
// the mic axis.
func (e *Engine) applyMicPort(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	fr := FrameFor(f.Face, e.ps)
	off := geom.Vec2{Y: fr.FromBottom(e.ps.MicZ)}
	if err := fr.CheckOffset(f.Name, off); err != nil {
		return nil, err
	}

	hole, err := e.b.Cylinder("mic-acoustic-hole", e.cutterDepth(), e.ps.MicHoleDia/2)
	if err != nil {
		return nil, err
	}
	shell, err = e.throughCut(shell, hole, fr, off, "shell-after-mic-hole")
	if err != nil {
		return nil, err
	}

	pocketProfile, err := rectProfile("mic-pocket", e.ps.MicPocketLen, e.ps.MicPocketWid)
	if err != nil {
		return nil, err
	}
	pocket, err := e.b.ExtrudeProfile("mic-pocket", pocketProfile, e.ps.MicPocketDepth)
	if err != nil {
		return nil, err
	}
	// Pocket sits behind the wall with 1mm of standoff.
	pocketDepth := -(e.ps.WallThickness + 1 + e.ps.MicPocketDepth/2)
	placed := e.place(pocket, fr, off, pocketDepth)
	shell, err = e.b.Subtract("shell-after-mic-pocket", shell, placed)
	if err != nil {
		return nil, err
	}

	portLen := e.ps.MicClearance + 2
	port, err := e.b.Cylinder("mic-internal-port", portLen, e.ps.MicPortDia/2)
	if err != nil {
		return nil, err
	}
	placed = e.place(port, fr, off, -(e.ps.WallThickness + portLen/2))
	return e.b.Subtract("shell-after-"+f.Name, shell, placed)
}

func (e *Engine) applyPowerButton(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	fr := FrameFor(f.Face, e.ps)
	off := geom.Vec2{Y: fr.FromBottom(e.ps.PowerButtonZ)}
	if err := fr.CheckOffset(f.Name, off); err != nil {
		return nil, err
	}
	r := (e.ps.PowerButtonDia + e.ps.PrintTolerance) / 2

	hole, err := e.b.Cylinder("power-hole", e.cutterDepth(), r)
	if err != nil {
		return nil, err
	}
	shell, err = e.throughCut(shell, hole, fr, off, "shell-after-power-hole")
	if err != nil {
		return nil, err
	}

	// Raised concentric ring around the button, protruding from the
	// outer surface.
	ringH := e.ps.PowerRingWidth
	outer, err := e.b.Cylinder("power-ring-outer", ringH, r+e.ps.PowerRingWidth)
	if err != nil {
		return nil, err
	}
	inner, err := e.b.Cylinder("power-ring-inner", ringH+1, r)
	if err != nil {
		return nil, err
	}
	ring, err := e.b.Subtract("power-ring", outer, inner)
	if err != nil {
		return nil, err
	}
	placed := e.place(ring, fr, off, ringH/2)
	return e.b.Union("shell-after-"+f.Name, shell, placed)
}

func (e *Engine) applyUSBPort(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	fr := FrameFor(f.Face, e.ps)
	off := geom.Vec2{Y: fr.FromBottom(e.ps.USBZ)}
	if err := fr.CheckOffset(f.Name, off); err != nil {
		return nil, err
	}
	p, err := stadiumProfile("usb-port",
		e.ps.USBWidth+e.ps.PrintTolerance,
		e.ps.USBHeight+e.ps.PrintTolerance,
		e.ps.USBCornerRadius)
	if err != nil {
		return nil, err
	}
	cutter, err := e.b.ExtrudeProfile("usb-cutter", p, e.cutterDepth())
	if err != nil {
		return nil, err
	}
	return e.throughCut(shell, cutter, fr, off, "shell-after-"+f.Name)
}

// applyButtonOpening cuts the push-to-talk opening and unions the raised
// retaining frame around it. The opening is wider than the flat face and
// spills onto the chamfers; only its center offset is bounds-checked.
func (e *Engine) applyButtonOpening(shell *solid.Solid, f Feature) (*solid.Solid, error) {
	fr := FrameFor(f.Face, e.ps)
	off := geom.Vec2{Y: e.ps.ButtonZCenter - e.ps.Height/2}
	if err := fr.CheckOffset(f.Name, off); err != nil {
		return nil, err
	}

	openP, err := stadiumProfile("button-opening",
		e.ps.OpeningWidth, e.ps.OpeningHeight, e.ps.OpeningRadius)
	if err != nil {
		return nil, err
	}
	cutter, err := e.b.ExtrudeProfile("button-opening-cutter", openP, e.cutterDepth())
	if err != nil {
		return nil, err
	}
	shell, err = e.throughCut(shell, cutter, fr, off, "shell-after-button-cut")
	if err != nil {
		return nil, err
	}

	// The frame's inner cutout matches the opening so the union never
	// fills the hole back in; it spans from the inner surface outward.
	outerP, err := stadiumProfile("button-frame-outer",
		e.ps.OpeningWidth+2*e.ps.FrameWidth,
		e.ps.OpeningHeight+2*e.ps.FrameWidth,
		e.ps.OpeningRadius+e.ps.FrameWidth)
	if err != nil {
		return nil, err
	}
	frameOuter, err := e.b.ExtrudeProfile("button-frame-outer", outerP, e.ps.FrameHeight)
	if err != nil {
		return nil, err
	}
	frameInner, err := e.b.ExtrudeProfile("button-frame-inner", openP, e.ps.FrameHeight+1)
	if err != nil {
		return nil, err
	}
	frame, err := e.b.Subtract("button-frame", frameOuter, frameInner)
	if err != nil {
		return nil, err
	}
	// Frame center: from the inner wall surface out by FrameHeight/2.
	placed := e.place(frame, fr, off, e.ps.FrameHeight/2-e.ps.WallThickness)
	return e.b.Union("shell-after-"+f.Name, shell, placed)
}
