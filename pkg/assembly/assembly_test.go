package assembly

import (
	"strings"
	"testing"

	"github.com/devais/enclosure/pkg/kernel/kerneltest"
	"github.com/devais/enclosure/pkg/params"
	"github.com/devais/enclosure/pkg/solid"
)

func run(t *testing.T, p params.Primary) (*Result, *solid.Builder) {
	t.Helper()
	ps, err := params.New(p)
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	b := solid.NewBuilder(kerneltest.New())
	res, err := New(b, ps, nil).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res, b
}

func TestRunProducesShellAndButton(t *testing.T) {
	res, b := run(t, params.Default())

	if len(res.Shell) != 1 || res.Shell[0].Name != "shell" {
		t.Fatalf("shell parts = %+v, want single unibody shell", res.Shell)
	}
	if res.Button.Solid == nil || res.Button.Name != "button" {
		t.Fatalf("button part missing: %+v", res.Button)
	}

	shell := res.Shell[0].Solid
	if vol := b.Volume(shell); vol <= 0 {
		t.Errorf("shell volume = %g", vol)
	}
	if got := b.ConnectedComponents(shell); got != 1 {
		t.Errorf("shell fragments = %d, want 1", got)
	}

	// The hollowed shell holds far less material than the solid prism.
	box := shell.BoundingBox()
	prismVol := box.Size().X * box.Size().Y * box.Size().Z
	if b.Volume(shell) > prismVol/2 {
		t.Errorf("shell volume %g suggests the cavity was never cut (prism %g)", b.Volume(shell), prismVol)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	resA, bA := run(t, params.Default())
	resB, bB := run(t, params.Default())

	volA, volB := bA.Volume(resA.Shell[0].Solid), bB.Volume(resB.Shell[0].Solid)
	if volA != volB {
		t.Errorf("shell volumes differ: %g vs %g", volA, volB)
	}
	boxA, boxB := resA.Shell[0].Solid.BoundingBox(), resB.Shell[0].Solid.BoundingBox()
	if boxA != boxB {
		t.Errorf("shell boxes differ: %+v vs %+v", boxA, boxB)
	}
}

func TestRunSplitShell(t *testing.T) {
	p := params.Default()
	p.SplitShell = true
	res, b := run(t, p)

	if len(res.Shell) != 2 {
		t.Fatalf("split run produced %d shell parts, want 2", len(res.Shell))
	}
	names := []string{res.Shell[0].Name, res.Shell[1].Name}
	if names[0] != "shell_front" || names[1] != "shell_back" {
		t.Errorf("part names = %v", names)
	}
	for _, part := range res.Shell {
		if b.Volume(part.Solid) <= 0 {
			t.Errorf("part %s has no volume", part.Name)
		}
	}
}

func TestRunWithMounts(t *testing.T) {
	p := params.Default()
	p.Mounts = true
	resPlain, bPlain := run(t, params.Default())
	resMounts, bMounts := run(t, p)

	if bMounts.Volume(resMounts.Shell[0].Solid) <= bPlain.Volume(resPlain.Shell[0].Solid) {
		t.Error("mount posts added no material")
	}
}

func TestRunFailsWithStageContext(t *testing.T) {
	ps, err := params.New(params.Default())
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	fake := kerneltest.New()
	// Every boolean degenerate: hollowing fails after its retry.
	fake.FlakyBooleans = 1 << 10
	b := solid.NewBuilder(fake)

	_, err = New(b, ps, nil).Run()
	if err == nil {
		t.Fatal("Run succeeded with a broken kernel")
	}
	if !strings.Contains(err.Error(), "hollowed-shell") {
		t.Errorf("error %q does not name the failing stage", err)
	}
}
