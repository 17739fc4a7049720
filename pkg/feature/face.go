// Package feature places device features (LED holes, speaker grille, mic
// port, power button, USB port, push-to-talk opening) on enclosure faces.
// Each feature resolves to a local frame on one of the four long-side
// faces, materializes a template solid there, and combines it with the
// running shell by subtraction (cuts) or union (raised details).
package feature

import (
	"fmt"

	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/params"
)

// Face identifies one of the octagon's four long-side faces. The device
// cross-section lies in XY with the axis along Z; Front looks toward +Y
// and Right toward +X.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceLeft
	FaceRight
)

func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	default:
		return "unknown-face"
	}
}

// Normal returns the outward face normal in world coordinates.
func (f Face) Normal() geom.Vec3 {
	switch f {
	case FaceFront:
		return geom.Vec3{Y: 1}
	case FaceBack:
		return geom.Vec3{Y: -1}
	case FaceLeft:
		return geom.Vec3{X: -1}
	default:
		return geom.Vec3{X: 1}
	}
}

// Frame is the local 2D coordinate system of a face: origin at the face
// centroid, u horizontal along the face, v up the device axis. World
// position of a frame point is Origin + U*u + V*v.
type Frame struct {
	Face    Face
	Origin  geom.Vec3
	HalfU   float64 // half the flat face width (long side / 2)
	HalfV   float64 // half the device height
}

// FrameFor resolves a face identifier against the parameter set. The
// shell spans z in [0, Height], so every centroid sits at Height/2.
func FrameFor(f Face, ps *params.Set) Frame {
	n := f.Normal()
	return Frame{
		Face:   f,
		Origin: geom.Vec3{X: n.X * ps.SquareSide / 2, Y: n.Y * ps.SquareSide / 2, Z: ps.Height / 2},
		HalfU:  ps.LongSide / 2,
		HalfV:  ps.Height / 2,
	}
}

// FromTop converts a "d millimeters from the top" reference to a frame v
// coordinate.
func (fr Frame) FromTop(d float64) float64 { return fr.HalfV - d }

// FromBottom converts a "d millimeters from the bottom" reference.
func (fr Frame) FromBottom(d float64) float64 { return d - fr.HalfV }

// CheckOffset validates that a feature's frame offset lands on the face.
// Violations are parameter errors: the feature definition asked for
// coordinates off the printed part.
func (fr Frame) CheckOffset(feature string, off geom.Vec2) error {
	if off.X < -fr.HalfU-geom.Eps || off.X > fr.HalfU+geom.Eps ||
		off.Y < -fr.HalfV-geom.Eps || off.Y > fr.HalfV+geom.Eps {
		return &geom.ParameterError{
			Param: feature,
			Message: fmt.Sprintf("offset (%.2f, %.2f) lies outside the %s face (±%.2f x ±%.2f)",
				off.X, off.Y, fr.Face, fr.HalfU, fr.HalfV),
		}
	}
	return nil
}

// World maps a frame offset to world coordinates on the face surface.
func (fr Frame) World(off geom.Vec2) geom.Vec3 {
	u := fr.uAxis()
	return fr.Origin.Add(u.Scale(off.X)).Add(geom.Vec3{Z: off.Y})
}

func (fr Frame) uAxis() geom.Vec3 {
	switch fr.Face {
	case FaceFront:
		return geom.Vec3{X: 1}
	case FaceBack:
		return geom.Vec3{X: -1}
	case FaceLeft:
		return geom.Vec3{Y: -1}
	default:
		return geom.Vec3{Y: 1}
	}
}
