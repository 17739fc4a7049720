package feature

import (
	"fmt"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/solid"
)

// BuildButton constructs the push-to-talk button as a free-standing part
// in device coordinates, seated on the right face. It is a physically
// separate printed piece and is never unioned into the shell.
//
// The button stacks a flat rounded-rect base, a 45 degree lofted bevel
// whose corner radius shrinks proportionally with the width, and a grid
// of raised texture bumps on the outer surface.
func (e *Engine) BuildButton() (*solid.Solid, error) {
	ps := e.ps

	baseP, err := stadiumProfile("button-base",
		ps.ButtonWidth, ps.ButtonHeight, ps.ButtonCornerRadius)
	if err != nil {
		return nil, err
	}
	base, err := e.b.ExtrudeProfile("button-base", baseP, ps.ButtonBaseDepth)
	if err != nil {
		return nil, err
	}

	outerP, err := stadiumProfile("button-outer",
		ps.ButtonOuterWidth, ps.ButtonOuterHeight, ps.ButtonOuterRadius)
	if err != nil {
		return nil, err
	}
	bevel, err := e.b.LoftBetweenProfiles("button-bevel", baseP, outerP, ps.ButtonBevelDepth)
	if err != nil {
		return nil, err
	}
	bevel = e.b.Translate(bevel, geom.Vec3{Z: ps.ButtonBaseDepth/2 + ps.ButtonBevelDepth/2})

	button, err := e.b.Union("button-body", base, bevel)
	if err != nil {
		return nil, err
	}

	// Texture bumps on the outer face, row-major over the beveled
	// footprint so the pattern is identical run to run.
	outerTop := ps.ButtonBaseDepth/2 + ps.ButtonBevelDepth
	boundary := RoundedRect{
		Width:        ps.ButtonOuterWidth,
		Height:       ps.ButtonOuterHeight,
		CornerRadius: ps.ButtonOuterRadius,
	}
	for i, p := range LatticePoints(boundary, ps.BumpSpacing, ps.BumpRadius) {
		bump, err := e.b.Cylinder(fmt.Sprintf("button-bump-%d", i), ps.BumpHeight, ps.BumpRadius)
		if err != nil {
			return nil, err
		}
		bump = e.b.Translate(bump, geom.Vec3{X: p.X, Y: p.Y, Z: outerTop + ps.BumpHeight/2})
		button, err = e.b.Union("button-body", button, bump)
		if err != nil {
			return nil, err
		}
	}

	// Seat the part on the right face, protruding outward from the
	// shell surface through the opening.
	fr := FrameFor(FaceRight, e.ps)
	off := geom.Vec2{Y: ps.ButtonZCenter - ps.Height/2}
	if err := fr.CheckOffset("push-to-talk-button", off); err != nil {
		return nil, err
	}
	total := ps.ButtonBaseDepth + ps.ButtonBevelDepth
	placed := e.place(button, fr, off, total/2-ps.ButtonBaseDepth/2)
	placed.Label = "push-to-talk-button"
	return placed, nil
}
