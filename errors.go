// Package rigidccd assembles the continuous-collision-detection and
// barrier-constrained-optimization core: broad phase, narrow-phase TOI,
// impact bookkeeping, barrier/volume evaluation, and the NCP/barrier-Newton
// solvers that consume them.
package rigidccd

import "github.com/ccdkit/rigidccd/errs"

// ErrKind, Error and friends are aliased from the leaf errs package so
// every subsystem (barrier, ncp, solver, rigidbody) can raise and identify
// the same typed failures this root package's public API returns, without
// those subsystems importing the root package back.
type ErrKind = errs.ErrKind

const (
	DegenerateEdge     = errs.DegenerateEdge
	NotImplemented     = errs.NotImplemented
	ConvergenceFailure = errs.ConvergenceFailure
	IntervalEmpty      = errs.IntervalEmpty
	InvalidInput       = errs.InvalidInput
)

type Error = errs.Error

// NewError constructs a typed Error with an optional wrapped cause.
func NewError(kind ErrKind, msg string, cause error) *Error {
	return errs.New(kind, msg, cause)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrKind) bool {
	return errs.IsKind(err, kind)
}
