// Package errs defines the typed failure vocabulary shared by every layer
// of the core, from the geometry kernel up through the root package's
// public API. It is a leaf package (no internal dependencies) precisely so
// that barrier, ncp, solver, and rigidbody can raise and identify these
// errors without importing the root package back.
package errs

import "fmt"

// ErrKind classifies the structural failures the core can raise. Ordinary
// "no collision" outcomes are never errors — they are plain booleans
// returned by the predicates in ccd and numeric — only degeneracy,
// unimplemented code paths, solver non-convergence, empty root-finder
// exhaustion, and malformed input are surfaced this way.
type ErrKind int

const (
	// DegenerateEdge: an edge direction's length fell below tolerance while
	// evaluating the interference volume. Fatal for the current step.
	DegenerateEdge ErrKind = iota
	// NotImplemented: a code path intentionally left unfinished (the MOSEK
	// LCP backend, the multi-precision barrier branch). Must always be
	// explicit, never silently approximated.
	NotImplemented
	// ConvergenceFailure: an inner solver exceeded max_iterations without
	// meeting tolerance. The outer loop receives the best-so-far result.
	ConvergenceFailure
	// IntervalEmpty: the certified root finder exhausted its stack with no
	// enclosure satisfying both the distance root and the inside predicate.
	IntervalEmpty
	// InvalidInput: malformed scene data (edges referencing missing
	// vertices, mismatched dimensions). Rejected at the I/O boundary.
	InvalidInput
)

func (k ErrKind) String() string {
	switch k {
	case DegenerateEdge:
		return "DegenerateEdge"
	case NotImplemented:
		return "NotImplemented"
	case ConvergenceFailure:
		return "ConvergenceFailure"
	case IntervalEmpty:
		return "IntervalEmpty"
	case InvalidInput:
		return "InvalidInput"
	default:
		return "Unknown"
	}
}

// Error is the typed failure returned at every package boundary in this
// module.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs a typed Error with an optional wrapped cause.
func New(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
