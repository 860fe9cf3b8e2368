package pose

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

// NDof3 is the number of local degrees of freedom of a 3D rigid body:
// three translation components plus a three-component rotation vector
// (axis-angle, i.e. the so(3) exponential-map coordinates).
const NDof3 = 6

// Pose3 is a 3D rigid-body pose: a translation and a rotation vector
// (axis * angle, the minimal 3-parameter local rotation coordinates),
// generic over the scalar type.
//
// The rotation is stored as a vector rather than a unit-axis/angle pair or
// a quaternion because Add/Scale must act as plain vector-space
// operations on it (the optimizer's Newton step and linesearch treat the
// whole pose as a flat ndof-vector) — a unit axis does not stay unit under
// addition, and a quaternion is 4 numbers for 3 degrees of freedom.
type Pose3[S numeric.Scalar[S]] struct {
	Translation geometry.Vec3[S]
	AxisAngle   geometry.Vec3[S]
}

func (p Pose3[S]) Add(delta Pose3[S]) Pose3[S] {
	return Pose3[S]{
		Translation: p.Translation.Add(delta.Translation),
		AxisAngle:   p.AxisAngle.Add(delta.AxisAngle),
	}
}

func (p Pose3[S]) Sub(other Pose3[S]) Pose3[S] {
	return Pose3[S]{
		Translation: p.Translation.Sub(other.Translation),
		AxisAngle:   p.AxisAngle.Sub(other.AxisAngle),
	}
}

func (p Pose3[S]) Scale(s S) Pose3[S] {
	return Pose3[S]{
		Translation: p.Translation.Scale(s),
		AxisAngle:   p.AxisAngle.Scale(s),
	}
}

// ConstructRotationMatrix builds the rotation matrix for AxisAngle via
// Rodrigues' formula, R = I + sinc(theta)*K + versinc(theta)*K^2 where
// K = [AxisAngle]x and theta = |AxisAngle|.
//
// sinc(theta) = sin(theta)/theta and versinc(theta) = (1-cos(theta))/theta^2
// are evaluated as truncated power series in theta^2 rather than by
// dividing sin(theta)/theta directly: both are entire (division-free)
// functions of theta^2, so the series is exact at theta=0 — where the
// axis is undefined — and needs no branch, no Sqrt, and no Div, all of
// which keeps it usable uniformly across F64, Interval, and the dual
// numbers. Truncated at the theta^24 term, so the truncation error stays
// below 1e-15 for |theta| <= pi.
func (p Pose3[S]) ConstructRotationMatrix() geometry.Mat3[S] {
	w := p.AxisAngle
	theta2 := w.Dot(w)

	sinc := hornerSeries(theta2, 1, -1.0/6, 1.0/120, -1.0/5040, 1.0/362880,
		-1.0/39916800, 1.0/6227020800, -1.0/1307674368000, 1.0/355687428096000,
		-1.0/121645100408832000, 1.0/51090942171709440000,
		-1.0/25852016738884976640000, 1.0/15511210043330985984000000)
	versinc := hornerSeries(theta2, 0.5, -1.0/24, 1.0/720, -1.0/40320, 1.0/3628800,
		-1.0/479001600, 1.0/87178291200, -1.0/20922789888000, 1.0/6402373705728000,
		-1.0/2432902008176640000, 1.0/1124000727777607680000,
		-1.0/620448401733239439360000, 1.0/403291461126605635584000000)

	k := geometry.CrossMatrix3(w)
	k2 := k.Mul(k)

	id := geometry.Identity3(theta2)
	return id.AddScaled(sinc, k).AddScaled(versinc, k2)
}

// hornerSeries evaluates coeffs[0] + x*(coeffs[1] + x*(coeffs[2] + ...))
// at x, generic over the scalar type.
func hornerSeries[S numeric.Scalar[S]](x S, coeffs ...float64) S {
	acc := x.FromFloat64(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = x.FromFloat64(coeffs[i]).Add(x.Mul(acc))
	}
	return acc
}

// WorldPoint maps a body-local point to world space under this pose.
func (p Pose3[S]) WorldPoint(local geometry.Vec3[S]) geometry.Vec3[S] {
	return p.ConstructRotationMatrix().MulVec(local).Add(p.Translation)
}

// Lerp3 linearly interpolates the flat 6-dof vector component-wise at
// parameter t, the 3D screwing-trajectory parameterization.
func Lerp3[S numeric.Scalar[S]](a, b Pose3[S], t S) Pose3[S] {
	return Pose3[S]{
		Translation: geometry.Lerp3(a.Translation, b.Translation, t),
		AxisAngle:   geometry.Lerp3(a.AxisAngle, b.AxisAngle, t),
	}
}
