package pose

import (
	"errors"
	"fmt"
	"math"

	"github.com/ccdkit/rigidccd/numeric"
)

// AngleWrapWarnThreshold is the rotation-delta magnitude (radians) beyond
// which linear interpolation of the rotation parameter becomes ambiguous
// about which way the body actually turned. The reference integrator has a
// commented-out check against a threshold like this and never reached a
// conclusion about its correctness (spec.md Open Questions); rather than
// silently normalizing — which would pick a winding direction that may not
// match what the integrator intended — Interpolate surfaces it as a
// warning the caller can choose to act on or ignore.
const AngleWrapWarnThreshold = math.Pi

// ErrAngleWrapSuspect is wrapped into the error Interpolate returns when
// the rotation delta exceeds AngleWrapWarnThreshold.
var ErrAngleWrapSuspect = errors.New("pose: rotation delta exceeds angle-wrap warn threshold")

// Trajectory2 is a 2D body's pose over one integration step, from t0 to
// t1, evaluated at float64 — the integrator deals in concrete poses, not
// certified enclosures; Interval/Dual evaluation of the same screwing
// trajectory happens by calling Lerp2 directly with the scalar type the
// narrow-phase solver needs.
type Trajectory2 struct {
	T0, T1 Pose2[numeric.F64]
}

// Interpolate returns the pose at parameter t in [0,1] and, when the
// rotation delta's magnitude exceeds AngleWrapWarnThreshold, a non-nil
// error wrapping ErrAngleWrapSuspect. The returned pose is always valid —
// the error is advisory, not a failure to compute.
func (tr Trajectory2) Interpolate(t float64) (Pose2[numeric.F64], error) {
	p := Lerp2(tr.T0, tr.T1, numeric.F64(t))
	delta := math.Abs(float64(tr.T1.Angle - tr.T0.Angle))
	if delta > AngleWrapWarnThreshold {
		return p, fmt.Errorf("%w: delta=%.4f rad over the step", ErrAngleWrapSuspect, delta)
	}
	return p, nil
}

// Trajectory3 is the 3D analogue of Trajectory2.
type Trajectory3 struct {
	T0, T1 Pose3[numeric.F64]
}

func (tr Trajectory3) Interpolate(t float64) (Pose3[numeric.F64], error) {
	p := Lerp3(tr.T0, tr.T1, numeric.F64(t))
	d := tr.T1.AxisAngle.Sub(tr.T0.AxisAngle)
	delta := math.Sqrt(float64(d.Dot(d)))
	if delta > AngleWrapWarnThreshold {
		return p, fmt.Errorf("%w: delta=%.4f rad over the step", ErrAngleWrapSuspect, delta)
	}
	return p, nil
}
