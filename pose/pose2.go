// Package pose holds the rigid-body pose representation — translation plus
// rotation, generic over numeric.Scalar — and the screwing-trajectory
// interpolation the narrow-phase CCD solvers evaluate at arbitrary
// parameter t. A Pose2/Pose3 doubles as the local degrees-of-freedom
// vector the optimizer steps: Add/Scale act component-wise on the flat
// (translation, rotation-parameter) tuple, exactly the operations
// construct_rotation_matrix's caller in spec.md §3 names explicitly.
package pose

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

// NDof2 is the number of local degrees of freedom of a 2D rigid body:
// two translation components plus one scalar rotation angle.
const NDof2 = 3

// Pose2 is a 2D rigid-body pose: a translation and a scalar rotation
// angle, generic over the scalar type so the same code path serves the
// float64 fast path, the certified interval root finder, and autodiff.
type Pose2[S numeric.Scalar[S]] struct {
	Translation geometry.Vec2[S]
	Angle       S
}

// Add treats the pose as a flat 3-vector (tx, ty, angle) and adds
// component-wise — the operation the barrier-Newton solver uses to apply
// a Newton step delta to the current dof vector.
func (p Pose2[S]) Add(delta Pose2[S]) Pose2[S] {
	return Pose2[S]{
		Translation: p.Translation.Add(delta.Translation),
		Angle:       p.Angle.Add(delta.Angle),
	}
}

func (p Pose2[S]) Sub(other Pose2[S]) Pose2[S] {
	return Pose2[S]{
		Translation: p.Translation.Sub(other.Translation),
		Angle:       p.Angle.Sub(other.Angle),
	}
}

// Scale multiplies every dof component by s, e.g. for a backtracking
// linesearch step-size halving.
func (p Pose2[S]) Scale(s S) Pose2[S] {
	return Pose2[S]{
		Translation: p.Translation.Scale(s),
		Angle:       p.Angle.Mul(s),
	}
}

// ConstructRotationMatrix returns the 2x2 rotation matrix for Angle.
func (p Pose2[S]) ConstructRotationMatrix() geometry.Mat2[S] {
	c, s := p.Angle.Cos(), p.Angle.Sin()
	return geometry.Mat2[S]{M: [2][2]S{
		{c, s.Neg()},
		{s, c},
	}}
}

// WorldPoint maps a body-local point to world space under this pose.
func (p Pose2[S]) WorldPoint(local geometry.Vec2[S]) geometry.Vec2[S] {
	return p.ConstructRotationMatrix().MulVec(local).Add(p.Translation)
}

// Lerp2 linearly interpolates the flat dof vector (translation and angle
// both lerped component-wise) at parameter t — the "screwing trajectory"
// parameterization spec.md §3 requires: pose(t) = interpolate(pose_t0,
// pose_t1, t), generic in scalar so the certified root finder can evaluate
// it at Interval and autodiff can differentiate through it at Dual1/Dual2.
func Lerp2[S numeric.Scalar[S]](a, b Pose2[S], t S) Pose2[S] {
	return Pose2[S]{
		Translation: geometry.Lerp2(a.Translation, b.Translation, t),
		Angle:       a.Angle.Add(b.Angle.Sub(a.Angle).Mul(t)),
	}
}
