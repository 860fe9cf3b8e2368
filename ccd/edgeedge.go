package ccd

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

func toInterval3(p geometry.Vec3[numeric.F64]) geometry.Vec3[numeric.Interval] {
	return geometry.Vec3[numeric.Interval]{
		X: numeric.FromFloat64(float64(p.X)),
		Y: numeric.FromFloat64(float64(p.Y)),
		Z: numeric.FromFloat64(float64(p.Z)),
	}
}

// IntervalTrajectory3 lifts an F64 linear trajectory p0+t*u into the
// Interval-typed trajectory the root finder evaluates.
func IntervalTrajectory3(p0, u geometry.Vec3[numeric.F64]) PointTrajectory3[numeric.Interval] {
	return LinearTrajectory3(toInterval3(p0), toInterval3(u))
}

// EdgeEdgeResult is the outcome of a 3D edge-edge TOI query.
type EdgeEdgeResult struct {
	Hit    bool
	Toi    float64
	ParamA float64 // point estimate of the parametric position on edge A at Toi
	ParamB float64 // point estimate of the parametric position on edge B at Toi
}

// EdgeEdgeTimeOfImpact computes the certified earliest time of impact
// between two moving edges in 3D (spec.md §4.4, EE 3D row). The
// zero-crossing of the scalar triple product of the two edge directions
// and their separation is certified through the interval root finder; the
// "intersection lies inside both segments" containment predicate is
// evaluated at the interval's float64 midpoint via
// geometry.ClosestParamsSegmentSegment3D, since there is no certified
// interval formulation of segment-segment closest-point parameters in
// this module — the TOI itself stays certified, only the containment
// check is a point estimate, consistent with the tol-width enclosure
// already localizing t tightly by the time containment is checked.
func EdgeEdgeTimeOfImpact(
	edgeA0, edgeA1, edgeB0, edgeB1 PointTrajectory3[numeric.Interval],
	edgeA0F, edgeA1F, edgeB0F, edgeB1F PointTrajectory3[numeric.F64],
	tol float64,
) EdgeEdgeResult {
	f := func(t numeric.Interval) numeric.Interval {
		da := edgeA1(t).Sub(edgeA0(t))
		db := edgeB1(t).Sub(edgeB0(t))
		return geometry.SignedVolumeLineLine3D(edgeA0(t), da, edgeB0(t), db)
	}
	inside := func(t numeric.Interval) bool {
		tf := numeric.F64(t.Float64())
		a0, a1 := edgeA0F(tf), edgeA1F(tf)
		b0, b1 := edgeB0F(tf), edgeB1F(tf)
		s, u := geometry.ClosestParamsSegmentSegment3D(a0, a1.Sub(a0), b0, b1.Sub(b0))
		const eps = 1e-6
		return s >= -eps && s <= 1+eps && u >= -eps && u <= 1+eps
	}

	result := numeric.IntervalRootFinder(f, inside, numeric.FromBounds(0, 1), tol)
	if !result.Hit {
		return EdgeEdgeResult{Hit: false}
	}

	toi := result.Enclosure.Lo
	tf := numeric.F64(toi)
	a0, a1 := edgeA0F(tf), edgeA1F(tf)
	b0, b1 := edgeB0F(tf), edgeB1F(tf)
	s, u := geometry.ClosestParamsSegmentSegment3D(a0, a1.Sub(a0), b0, b1.Sub(b0))
	return EdgeEdgeResult{Hit: true, Toi: toi, ParamA: s, ParamB: u}
}
