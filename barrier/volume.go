// Package barrier implements the interference-volume and distance-barrier
// functions the outer Newton solver minimizes, both generic over
// numeric.Scalar so the same formula runs at float64 speed for evaluation
// or through Dual1/Dual2 for the autodiff contract the gradient/Hessian
// helpers in autodiff.go expose.
package barrier

import (
	"github.com/ccdkit/rigidccd/errs"
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

// SpaceTimeVolume computes the interference volume for an edge whose
// certified time of impact is tau, whose direction at tau is edgeDir, whose
// relative velocity over the step is velocity, and whose barrier scale is
// eps:
//
//	V = (1-tau) * sqrt(eps^2 * ||edgeDir||^2 + (velocity . edgeDir_perp)^2)
//
// epsEdge is the degeneracy threshold on ||edgeDir|| (spec.md §4.6); below
// it the edge direction is too close to zero to define a meaningful
// perpendicular, and a DegenerateEdge error aborts the current evaluation.
func SpaceTimeVolume[S numeric.Scalar[S]](
	tau S,
	edgeDir, velocity geometry.Vec2[S],
	eps S,
	epsEdge float64,
) (S, error) {
	edgeLenSq := edgeDir.SquaredNorm()
	if edgeLenSq.Float64() < epsEdge*epsEdge {
		var zero S
		return zero, errs.New(errs.DegenerateEdge, "edge direction length below epsEdge in SpaceTimeVolume", nil)
	}

	perp := edgeDir.Perp()
	crossTerm := velocity.Dot(perp)

	epsSq := eps.Mul(eps)
	underSqrt := epsSq.Mul(edgeLenSq).Add(crossTerm.Mul(crossTerm))

	one := tau.FromFloat64(1)
	return one.Sub(tau).Mul(underSqrt.Sqrt()), nil
}

// SpaceTimeVolume3 is the 3D analogue, using the edge-direction-relative
// perpendicular component of velocity measured through the cross product
// rather than Vec2.Perp (there is no unique 2D perpendicular in 3D, but
// ||cross(velocity, edgeDir)|| / ||edgeDir|| is the same "how much of the
// velocity is not along the edge" quantity the 2D formula isolates via the
// perp dot product, up to the ||edgeDir|| normalization folded into the
// formula's own epsSq*edgeLenSq term).
func SpaceTimeVolume3[S numeric.Scalar[S]](
	tau S,
	edgeDir, velocity geometry.Vec3[S],
	eps S,
	epsEdge float64,
) (S, error) {
	edgeLenSq := edgeDir.SquaredNorm()
	if edgeLenSq.Float64() < epsEdge*epsEdge {
		var zero S
		return zero, errs.New(errs.DegenerateEdge, "edge direction length below epsEdge in SpaceTimeVolume3", nil)
	}

	crossVec := velocity.Cross(edgeDir)
	crossTermSq := crossVec.SquaredNorm()

	epsSq := eps.Mul(eps)
	underSqrt := epsSq.Mul(edgeLenSq).Add(crossTermSq)

	one := tau.FromFloat64(1)
	return one.Sub(tau).Mul(underSqrt.Sqrt()), nil
}
