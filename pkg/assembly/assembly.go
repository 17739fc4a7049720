// Package assembly sequences the full enclosure build: raw shell,
// hollowing, per-face feature application, optional mounts, and the
// final part split. Stages run strictly in order; the first error aborts
// the run with stage context and nothing is exported.
package assembly

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/devais/enclosure/pkg/feature"
	"github.com/devais/enclosure/pkg/geom"
	"github.com/devais/enclosure/pkg/kernel"
	"github.com/devais/enclosure/pkg/params"
	"github.com/devais/enclosure/pkg/profile"
	"github.com/devais/enclosure/pkg/solid"
)

// Stage names one step of the build pipeline.
type Stage int

const (
	StageRawShell Stage = iota
	StageHollowedShell
	StageFrontFeatures
	StageSideFeatures
	StageMounts
	StageFinal
)

func (s Stage) String() string {
	switch s {
	case StageRawShell:
		return "raw-shell"
	case StageHollowedShell:
		return "hollowed-shell"
	case StageFrontFeatures:
		return "front-features"
	case StageSideFeatures:
		return "side-features"
	case StageMounts:
		return "mounts"
	case StageFinal:
		return "final"
	default:
		return "unknown-stage"
	}
}

// Part is one printable output solid.
type Part struct {
	Name  string
	Solid *solid.Solid
}

// Result holds the finished parts: one or two shell pieces depending on
// the split-shell toggle, plus the free-standing push-to-talk button.
type Result struct {
	Shell  []Part
	Button Part
}

// Orchestrator runs the staged build against a builder and parameter set.
type Orchestrator struct {
	b   *solid.Builder
	ps  *params.Set
	eng *feature.Engine
	log *zap.Logger
}

// New returns an Orchestrator. A nil logger disables logging.
func New(b *solid.Builder, ps *params.Set, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{b: b, ps: ps, eng: feature.NewEngine(b, ps), log: log}
}

// Run executes every stage in order and returns the finished parts.
func (o *Orchestrator) Run() (*Result, error) {
	shell, err := o.rawShell()
	if err != nil {
		return nil, o.stageErr(StageRawShell, err)
	}
	o.logStage(StageRawShell, shell)

	shell, err = o.hollow(shell)
	if err != nil {
		return nil, o.stageErr(StageHollowedShell, err)
	}
	o.logStage(StageHollowedShell, shell)

	for _, f := range feature.FrontCatalog() {
		if shell, err = o.eng.Apply(shell, f); err != nil {
			return nil, o.stageErr(StageFrontFeatures, err)
		}
	}
	o.logStage(StageFrontFeatures, shell)

	for _, f := range feature.SideCatalog() {
		if shell, err = o.eng.Apply(shell, f); err != nil {
			return nil, o.stageErr(StageSideFeatures, err)
		}
	}
	o.logStage(StageSideFeatures, shell)

	if o.ps.Mounts {
		if shell, err = o.eng.ApplyMounts(shell); err != nil {
			return nil, o.stageErr(StageMounts, err)
		}
		o.logStage(StageMounts, shell)
	}

	button, err := o.eng.BuildButton()
	if err != nil {
		return nil, o.stageErr(StageFinal, err)
	}

	res := &Result{Button: Part{Name: "button", Solid: button}}
	if o.ps.SplitShell {
		front, back, err := o.split(shell)
		if err != nil {
			return nil, o.stageErr(StageFinal, err)
		}
		res.Shell = []Part{
			{Name: "shell_front", Solid: front},
			{Name: "shell_back", Solid: back},
		}
	} else {
		res.Shell = []Part{{Name: "shell", Solid: shell}}
	}
	o.log.Info("assembly complete",
		zap.Int("shell_parts", len(res.Shell)),
		zap.Bool("split_shell", o.ps.SplitShell),
		zap.Bool("mounts", o.ps.Mounts))
	return res, nil
}

// rawShell extrudes the outer octagon and rounds its edges. Fillets run
// before positioning because they rebuild the prism from its profile.
func (o *Orchestrator) rawShell() (*solid.Solid, error) {
	outer, err := profile.Octagon("shell-outer", o.ps.SquareSide, o.ps.ChamferDist, 0)
	if err != nil {
		return nil, err
	}
	s, err := o.b.ExtrudeProfile("shell", outer, o.ps.Height)
	if err != nil {
		return nil, err
	}
	if o.ps.EdgeFilletRadius > 0 {
		if s, err = o.b.FilletEdges(s, kernel.EdgesVertical, o.ps.EdgeFilletRadius); err != nil {
			return nil, err
		}
	}
	if o.ps.TopFilletRadius > 0 {
		if s, err = o.b.FilletEdges(s, kernel.EdgesTopBottom, o.ps.TopFilletRadius); err != nil {
			return nil, err
		}
	}
	return o.b.Translate(s, geom.Vec3{Z: o.ps.Height / 2}), nil
}

// hollow cuts the inner octagon straight through, leaving the wall.
func (o *Orchestrator) hollow(shell *solid.Solid) (*solid.Solid, error) {
	inner, err := profile.Octagon("shell-inner", o.ps.InnerSquare, o.ps.InnerChamfer, 0)
	if err != nil {
		return nil, err
	}
	cutter, err := o.b.ExtrudeProfile("shell-cavity", inner, o.ps.Height+2)
	if err != nil {
		return nil, err
	}
	cutter = o.b.Translate(cutter, geom.Vec3{Z: o.ps.Height / 2})
	return o.b.Subtract("shell-hollowed", shell, cutter)
}

// split intersects the shell with front and back half-spaces, yielding a
// two-part shell that prints without support.
func (o *Orchestrator) split(shell *solid.Solid) (front, back *solid.Solid, err error) {
	w := o.ps.SquareSide + 10
	h := o.ps.Height + 10
	halfP, err := profile.RoundedRect("split-half", w, w/2, 0)
	if err != nil {
		return nil, nil, err
	}
	halfSpace := func(label string, dir float64) (*solid.Solid, error) {
		s, err := o.b.ExtrudeProfile(label, halfP, h)
		if err != nil {
			return nil, err
		}
		return o.b.Translate(s, geom.Vec3{Y: dir * w / 4, Z: o.ps.Height / 2}), nil
	}
	fs, err := halfSpace("front-half-space", 1)
	if err != nil {
		return nil, nil, err
	}
	if front, err = o.b.Intersect("shell-front", shell, fs); err != nil {
		return nil, nil, err
	}
	bs, err := halfSpace("back-half-space", -1)
	if err != nil {
		return nil, nil, err
	}
	if back, err = o.b.Intersect("shell-back", shell, bs); err != nil {
		return nil, nil, err
	}
	return front, back, nil
}

func (o *Orchestrator) stageErr(stage Stage, err error) error {
	return fmt.Errorf("stage %s: %w", stage, err)
}

func (o *Orchestrator) logStage(stage Stage, s *solid.Solid) {
	box := s.BoundingBox()
	o.log.Info("stage complete",
		zap.Stringer("stage", stage),
		zap.String("solid", s.Label),
		zap.Float64("volume_mm3", o.b.Volume(s)),
		zap.Float64s("bbox_size", []float64{box.Size().X, box.Size().Y, box.Size().Z}))
}
