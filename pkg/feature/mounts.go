package feature

import (
	"fmt"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/solid"
)

// ApplyMounts unions the controller-board standoff posts onto the inner
// back wall. Two posts straddle the device centerline at the mount
// height, protruding inward so a board screws down parallel to the back
// face.
func (e *Engine) ApplyMounts(shell *solid.Solid) (*solid.Solid, error) {
	fr := FrameFor(FaceBack, e.ps)
	v := e.ps.MountZ - e.ps.Height/2
	for i, u := range []float64{-e.ps.MountPostPitch / 2, e.ps.MountPostPitch / 2} {
		off := geom.Vec2{X: u, Y: v}
		if err := fr.CheckOffset("mount-posts", off); err != nil {
			return nil, err
		}
		post, err := e.b.Cylinder(fmt.Sprintf("mount-post-%d", i), e.ps.MountPostHeight, e.ps.MountPostDia/2)
		if err != nil {
			return nil, err
		}
		placed := e.place(post, fr, off, -(e.ps.WallThickness + e.ps.MountPostHeight/2))
		shell, err = e.b.Union("shell-after-mounts", shell, placed)
		if err != nil {
			return nil, err
		}
	}
	return shell, nil
}
