package engine

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestEvaluateOverrides(t *testing.T) {
	e := NewEngine()
	src := `
; thicker walls for the rugged variant
(param "wall-thickness" 2.5)
(param "height" 160)
(param "split-shell" true)
`
	overrides, evalErrs, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	want := map[string]float64{"wall-thickness": 2.5, "height": 160, "split-shell": 1}
	if len(overrides) != len(want) {
		t.Fatalf("overrides = %v, want %v", overrides, want)
	}
	for k, v := range want {
		if overrides[k] != v {
			t.Errorf("override %q = %g, want %g", k, overrides[k], v)
		}
	}
}

func TestEvaluateEmptySource(t *testing.T) {
	overrides, evalErrs, err := NewEngine().Evaluate("   \n  ")
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("empty source: %v / %v", evalErrs, err)
	}
	if len(overrides) != 0 {
		t.Errorf("empty source produced overrides: %v", overrides)
	}
}

func TestEvaluateLaterValueWins(t *testing.T) {
	overrides, _, err := NewEngine().Evaluate(`(param "width" 40) (param "width" 44)`)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if overrides["width"] != 44 {
		t.Errorf("width = %g, want 44 (later value)", overrides["width"])
	}
}

func TestEvaluateBadArguments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing value", `(param "width")`},
		{"non-numeric value", `(param "width" "wide")`},
		{"non-string name", `(param 40 40)`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			overrides, evalErrs, err := NewEngine().Evaluate(tc.src)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if len(evalErrs) == 0 {
				t.Fatalf("bad script accepted, overrides = %v", overrides)
			}
		})
	}
}

func TestEvaluateParseErrorReportsLine(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate("(param \"width\" 40)\n(param \"height\"")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("unterminated form accepted")
	}
	if evalErrs[0].Error() == "" {
		t.Error("empty error message")
	}
}

func TestWaitWithTimeout(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(1)
	ch := make(chan evalResult) // never sends

	_, _, err := waitWithTimeout(ch, 1, &mu, &gen, 20*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("err = %v, want timeout", err)
	}
}

func TestWaitWithTimeoutDiscardsStale(t *testing.T) {
	var mu sync.Mutex
	gen := uint64(2)
	ch := make(chan evalResult, 1)
	ch <- evalResult{}

	_, _, err := waitWithTimeout(ch, 1, &mu, &gen, time.Second)
	if err == nil || !strings.Contains(err.Error(), "superseded") {
		t.Fatalf("err = %v, want superseded", err)
	}
}
