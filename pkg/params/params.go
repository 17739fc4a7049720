// Package params defines the parameter model for the DevAIs enclosure:
// a small set of primary dimensions plus every derived geometry constant,
// computed once and immutable afterward. All values are millimeters.
//
// Derived values are pure functions of upstream parameters; the derivation
// chain is acyclic and evaluated in a fixed order inside New, so two calls
// with equal primaries produce bitwise-equal sets.
package params

import (
	"fmt"
	"math"

	"github.com/devais/enclosure/pkg/geom"
)

// ChamferScheme selects how the octagon corner-cut distance is derived.
// The source design history carries two schemes; which one is
// authoritative is a configuration choice, not a constant.
type ChamferScheme string

const (
	// ChamferRatio73 solves the chamfer distance algebraically so that
	// long:short side ratio is exactly 7:3. With long = side - 2c and
	// short = c*sqrt(2): c = 3*side / (6 + 7*sqrt(2)).
	ChamferRatio73 ChamferScheme = "ratio73"

	// ChamferLegacy keeps the historical fixed 7.55mm cut for a 40mm
	// square, scaled proportionally for other widths.
	ChamferLegacy ChamferScheme = "legacy"
)

const legacyChamfer = 7.55 / 40.0 // per mm of square side

// Primary holds the user-tunable inputs. Everything else derives from these.
type Primary struct {
	Width            float64       // flat-to-flat across opposite long sides
	Height           float64       // device length along the extrusion axis
	WallThickness    float64       // shell wall; 1.6 clears a USB-C plug
	ChamferScheme    ChamferScheme // octagon corner-cut derivation
	Chamfer          float64       // explicit chamfer distance; overrides scheme when > 0
	EdgeFilletRadius float64       // vertical edges where octagon sides meet
	TopFilletRadius  float64       // top/bottom rim rounding
	SplitShell       bool          // two-part shell instead of unibody
	Mounts           bool          // internal standoff posts for the controller board
}

// Default returns the production DevAIs primaries: 40mm octagonal x 150mm,
// 1.6mm wall, 7:3 chamfer scheme, 4mm fillets, unibody, no mounts.
func Default() Primary {
	return Primary{
		Width:            40,
		Height:           150,
		WallThickness:    1.6,
		ChamferScheme:    ChamferRatio73,
		EdgeFilletRadius: 4,
		TopFilletRadius:  4,
	}
}

// WithOverrides returns a copy of p with named numeric overrides applied.
// Override names follow the design-script vocabulary. Unknown names are
// rejected so a typo in a script cannot silently do nothing.
func (p Primary) WithOverrides(m map[string]float64) (Primary, error) {
	for name, v := range m {
		switch name {
		case "width":
			p.Width = v
		case "height":
			p.Height = v
		case "wall-thickness":
			p.WallThickness = v
		case "chamfer":
			p.Chamfer = v
		case "edge-fillet-radius":
			p.EdgeFilletRadius = v
		case "top-fillet-radius":
			p.TopFilletRadius = v
		case "split-shell":
			p.SplitShell = v != 0
		case "mounts":
			p.Mounts = v != 0
		default:
			return p, &geom.ParameterError{Param: name, Message: "unknown parameter override"}
		}
	}
	return p, nil
}

// Set is the full parameter table: primaries plus every derived constant.
// Created once per run by New; never mutated afterward. Recomputation
// means building a whole new Set.
type Set struct {
	Primary

	// Octagon cross-section.
	SquareSide   float64 // the square that is chamfered into the octagon
	ChamferDist  float64 // distance cut off each corner at 45 degrees
	LongSide     float64 // SquareSide - 2*ChamferDist
	ShortSide    float64 // ChamferDist * sqrt(2)
	InnerSquare  float64 // SquareSide - 2*WallThickness
	InnerChamfer float64 // ChamferDist - WallThickness

	// Front-face features.
	LEDDiameter    float64 // 3mm indicator LEDs
	LEDSpacing     float64 // center-to-center
	LEDZ           float64 // 10mm from top
	SpeakerDia     float64 // 80% of the long side
	SpeakerHoleR   float64
	SpeakerSpacing float64
	SpeakerZ       float64 // upper edge 10mm below the LED line
	MicHoleDia     float64 // front acoustic hole
	MicPortDia     float64 // internal port aligned with the mic
	MicPocketLen   float64 // breakout footprint + tolerance
	MicPocketWid   float64
	MicPocketDepth float64
	MicClearance   float64
	MicZ           float64 // 10mm from bottom

	// Right-face features.
	PowerButtonDia  float64
	PowerRingWidth  float64 // raised outer ring around the power button
	PowerButtonZ    float64
	USBWidth        float64
	USBHeight       float64
	USBCornerRadius float64
	USBZ            float64

	// Push-to-talk button (separate printed part).
	ButtonWidth        float64 // full long-side width
	ButtonHeight       float64 // 30% of device height
	ButtonBaseDepth    float64 // flat section before the bevel
	ButtonBevelDepth   float64 // 45-degree tapered section
	ButtonCornerRadius float64
	ButtonOuterWidth   float64 // after the 45-degree bevel eats both sides
	ButtonOuterHeight  float64
	ButtonOuterRadius  float64 // corner radius shrunk proportionally
	ButtonZCenter      float64 // centered 15%-45% down from the top
	BumpRadius         float64 // texture bumps on the button face
	BumpSpacing        float64
	BumpHeight         float64

	// Opening and raised frame in the shell for the button.
	OpeningClearance float64
	OpeningWidth     float64
	OpeningHeight    float64
	OpeningRadius    float64
	FrameWidth       float64 // frame wall, matches shell wall
	FrameHeight      float64 // raised above the outer surface
	FrameGap         float64 // clearance between frame and button

	// Mount posts (optional).
	MountPostDia    float64
	MountPostHeight float64
	MountPostPitch  float64
	MountZ          float64

	PrintTolerance float64
}

// New derives the complete parameter set from the primaries, validating
// that the requested geometry can physically exist. All impossibilities
// are reported as *geom.ParameterError before any profile or solid work.
func New(p Primary) (*Set, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, &geom.ParameterError{Param: "width/height", Message: "dimensions must be positive"}
	}
	if p.WallThickness <= 0 {
		return nil, &geom.ParameterError{Param: "wall-thickness", Message: "must be positive"}
	}

	s := &Set{Primary: p}
	s.SquareSide = p.Width

	switch {
	case p.Chamfer > 0:
		s.ChamferDist = p.Chamfer
	case p.ChamferScheme == ChamferLegacy:
		s.ChamferDist = legacyChamfer * s.SquareSide
	default:
		s.ChamferDist = 3 * s.SquareSide / (6 + 7*math.Sqrt2)
	}
	if 2*s.ChamferDist >= s.SquareSide {
		return nil, &geom.ParameterError{
			Param:   "chamfer",
			Message: fmt.Sprintf("corner cut %.2fmm leaves no long side on a %.2fmm square", s.ChamferDist, s.SquareSide),
		}
	}

	s.LongSide = s.SquareSide - 2*s.ChamferDist
	s.ShortSide = s.ChamferDist * math.Sqrt2

	// Degenerate hollow: the wall must leave a real cavity. Half the
	// smallest cross-section dimension is the hard ceiling.
	smallest := math.Min(s.SquareSide, s.Height)
	if p.WallThickness >= smallest/2 {
		return nil, &geom.ParameterError{
			Param:   "wall-thickness",
			Message: fmt.Sprintf("%.2fmm wall consumes the %.2fmm cross-section; inner cavity would be negative", p.WallThickness, smallest),
		}
	}
	if p.WallThickness >= s.ChamferDist {
		return nil, &geom.ParameterError{
			Param:   "wall-thickness",
			Message: fmt.Sprintf("%.2fmm wall exceeds the %.2fmm chamfer; inner octagon degenerates", p.WallThickness, s.ChamferDist),
		}
	}
	s.InnerSquare = s.SquareSide - 2*p.WallThickness
	s.InnerChamfer = s.ChamferDist - p.WallThickness

	// Fillets must fit the material they round.
	if maxFillet := math.Min(s.LongSide, s.ShortSide) / 2; p.EdgeFilletRadius > maxFillet {
		return nil, &geom.ParameterError{
			Param:   "edge-fillet-radius",
			Message: fmt.Sprintf("%.2fmm exceeds half the shortest octagon side (%.2fmm)", p.EdgeFilletRadius, maxFillet),
		}
	}
	if p.TopFilletRadius > s.Height/2 {
		return nil, &geom.ParameterError{Param: "top-fillet-radius", Message: "exceeds half the device height"}
	}

	s.PrintTolerance = 0.2

	// Front face.
	s.LEDDiameter = 3
	s.LEDSpacing = 8
	s.LEDZ = s.Height - 10
	s.SpeakerDia = 0.8 * s.LongSide
	s.SpeakerHoleR = 0.75
	s.SpeakerSpacing = 2.5
	s.SpeakerZ = s.LEDZ - 10 - s.SpeakerDia
	s.MicHoleDia = 1.5
	s.MicPortDia = 1.0
	s.MicPocketLen = 4.72 + 0.4
	s.MicPocketWid = 3.76 + 0.4
	s.MicPocketDepth = 2
	s.MicClearance = 2
	s.MicZ = 10

	// Right face.
	s.PowerButtonDia = 8
	s.PowerRingWidth = 1.0
	s.PowerButtonZ = 25
	s.USBWidth = 9.5
	s.USBHeight = 3.7
	s.USBCornerRadius = 1.6
	s.USBZ = 12

	// Push-to-talk button. The 45-degree bevel removes BevelDepth from
	// every side; the corner radius shrinks with the width ratio so the
	// loft interpolates matching arc structures.
	s.ButtonWidth = s.LongSide
	s.ButtonHeight = 0.30 * s.Height
	s.ButtonBaseDepth = 4
	s.ButtonBevelDepth = 4
	s.ButtonCornerRadius = 8
	s.ButtonOuterWidth = math.Max(s.ButtonWidth-2*s.ButtonBevelDepth, 1)
	s.ButtonOuterHeight = math.Max(s.ButtonHeight-2*s.ButtonBevelDepth, 1)
	s.ButtonOuterRadius = s.ButtonCornerRadius * (s.ButtonOuterWidth / s.ButtonWidth)
	s.ButtonZCenter = s.Height - 0.15*s.Height - s.ButtonHeight/2
	s.BumpRadius = 0.6
	s.BumpSpacing = 2.5
	s.BumpHeight = 0.5

	s.OpeningClearance = 0.5
	s.OpeningWidth = s.ButtonWidth + s.OpeningClearance
	s.OpeningHeight = s.ButtonHeight + s.OpeningClearance
	s.OpeningRadius = s.ButtonCornerRadius + s.OpeningClearance/2
	s.FrameWidth = p.WallThickness
	s.FrameHeight = 2 * p.WallThickness
	s.FrameGap = 0.25

	s.MountPostDia = 4
	s.MountPostHeight = 5
	s.MountPostPitch = 14
	s.MountZ = 75

	if 2*s.ButtonCornerRadius > math.Min(s.ButtonWidth, s.ButtonHeight) {
		return nil, &geom.ParameterError{
			Param:   "button-corner-radius",
			Message: "corner arcs overlap on the push-to-talk button profile",
		}
	}

	return s, nil
}
