package geom

import "fmt"

// The pipeline distinguishes three failure kinds:
//
//   - ParameterError: the requested dimensions are geometrically impossible.
//     Raised before any kernel call, never retried.
//   - GeometryError: the kernel rejected an operation or returned a
//     degenerate result. Boolean operations get exactly one retry with a
//     perturbed tolerance; everything else is fatal immediately.
//   - TopologyMismatchError: loft or fillet inputs have incompatible
//     structure. Fatal, never retried; indicates a design bug.
//
// All three propagate through the orchestrator unmodified. No stage
// substitutes a fallback shape.

// ParameterError reports a derived dimension that cannot exist physically.
type ParameterError struct {
	Param   string // offending parameter or feature name
	Message string
}

func (e *ParameterError) Error() string {
	if e.Param == "" {
		return "parameter error: " + e.Message
	}
	return fmt.Sprintf("parameter error: %s: %s", e.Param, e.Message)
}

// GeometryError reports a kernel rejection or degenerate kernel result.
type GeometryError struct {
	Op      string // operation label, e.g. "boolean-subtract"
	Solid   string // provenance label of the solid involved
	Message string
	Err     error // underlying kernel error, if any
}

func (e *GeometryError) Error() string {
	s := fmt.Sprintf("geometry error: %s", e.Op)
	if e.Solid != "" {
		s += " on " + e.Solid
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *GeometryError) Unwrap() error { return e.Err }

// TopologyMismatchError reports structurally incompatible loft or fillet
// inputs, e.g. differing corner counts between two profiles.
type TopologyMismatchError struct {
	Op      string
	Message string
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("topology mismatch: %s: %s", e.Op, e.Message)
}
