package ccd

import (
	"math"

	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

// toInterval2 lifts a float64 point into the degenerate interval [v,v] on
// each component, the standard way of feeding a concrete trajectory into
// the certified root finder.
func toInterval2(p geometry.Vec2[numeric.F64]) geometry.Vec2[numeric.Interval] {
	return geometry.Vec2[numeric.Interval]{
		X: numeric.FromFloat64(float64(p.X)),
		Y: numeric.FromFloat64(float64(p.Y)),
	}
}

// IntervalTrajectory2 lifts an F64 linear trajectory p0+t*u into the
// Interval-typed trajectory the root finder evaluates.
func IntervalTrajectory2(p0, u geometry.Vec2[numeric.F64]) PointTrajectory2[numeric.Interval] {
	return LinearTrajectory2(toInterval2(p0), toInterval2(u))
}

// EdgeVertexResult is the outcome of a 2D edge-vertex TOI query.
type EdgeVertexResult struct {
	Hit   bool
	Toi   float64 // lower bound of the certified enclosure, per spec.md §4.2
	Alpha float64 // point estimate of the parametric position on the edge at Toi
}

// EdgeVertexTimeOfImpact computes the certified earliest time of impact
// between a moving point and a moving edge over t in [0,1], using the
// signed-area zero-crossing as the distance root and alpha-in-[0,1] as the
// containment predicate (spec.md §4.4, EV 2D row).
func EdgeVertexTimeOfImpact(
	edgeA, edgeB, vertex PointTrajectory2[numeric.Interval],
	tol float64,
) EdgeVertexResult {
	f := func(t numeric.Interval) numeric.Interval {
		return geometry.SignedAreaPointLine2D(vertex(t), edgeA(t), edgeB(t))
	}
	inside := func(t numeric.Interval) bool {
		alpha := geometry.ProjectParam2D(vertex(t), edgeA(t), edgeB(t))
		return geometry.AlphaInUnitInterval(alpha, numeric.FromFloat64(0), numeric.FromFloat64(1))
	}

	result := numeric.IntervalRootFinder(f, inside, numeric.FromBounds(0, 1), tol)
	if !result.Hit {
		return EdgeVertexResult{Hit: false}
	}

	toi := result.Enclosure.Lo
	tPoint := numeric.FromFloat64(toi)
	alpha := geometry.ProjectParam2D(vertex(tPoint), edgeA(tPoint), edgeB(tPoint))
	return EdgeVertexResult{Hit: true, Toi: toi, Alpha: alpha.Float64()}
}

// EdgeVertexTOIQuadratic is the closed-form fast path for the common case
// of constant-velocity (pure-translation, no rotation) motion: each point
// moves as p(t) = p0 + t*u, so the signed area f(t) is a quadratic in t
// and its roots are given directly by the quadratic formula. spec.md §4.4
// requires this to agree with the interval solver to tol; it exists
// because the 2D EV case is the one path the reference implementation
// special-cases for its autodiff fast path, and because it makes the
// concrete scenarios of spec.md §8 checkable without going through
// interval bisection.
func EdgeVertexTOIQuadratic(
	edgeA0, edgeB0, vertex0 geometry.Vec2[numeric.F64],
	ua, ub, uv geometry.Vec2[numeric.F64],
	tol float64,
) EdgeVertexResult {
	// f(t) = cross(edgeDir(t), vertex(t) - edgeA(t))
	// edgeDir(t)   = (edgeB0-edgeA0) + t*(ub-ua)              =: d0 + t*d1
	// rel(t)       = (vertex0-edgeA0) + t*(uv-ua)             =: r0 + t*r1
	// f(t)         = cross(d0,r0) + t*(cross(d0,r1)+cross(d1,r0)) + t^2*cross(d1,r1)
	d0 := edgeB0.Sub(edgeA0)
	d1 := ub.Sub(ua)
	r0 := vertex0.Sub(edgeA0)
	r1 := uv.Sub(ua)

	c0 := float64(d0.Cross(r0))
	c1 := float64(d0.Cross(r1) + d1.Cross(r0))
	c2 := float64(d1.Cross(r1))

	roots := solveQuadraticRootsInUnitInterval(c2, c1, c0)
	for _, t := range roots {
		edgeAt := edgeA0.Add(ua.Scale(numeric.F64(t)))
		edgeBt := edgeB0.Add(ub.Scale(numeric.F64(t)))
		vertexAt := vertex0.Add(uv.Scale(numeric.F64(t)))
		alpha := geometry.ProjectParam2D(vertexAt, edgeAt, edgeBt)
		a := float64(alpha)
		if a >= -tol && a <= 1+tol {
			return EdgeVertexResult{Hit: true, Toi: t, Alpha: a}
		}
	}
	return EdgeVertexResult{Hit: false}
}

// solveQuadraticRootsInUnitInterval returns the real roots of
// c2*t^2 + c1*t + c0 in [0,1], ascending. Degenerates to the linear case
// when c2 is negligible.
func solveQuadraticRootsInUnitInterval(c2, c1, c0 float64) []float64 {
	const linearEps = 1e-14
	var roots []float64

	clip := func(t float64) {
		if t >= 0 && t <= 1 {
			roots = append(roots, t)
		}
	}

	if math.Abs(c2) < linearEps {
		if math.Abs(c1) < linearEps {
			return nil
		}
		clip(-c0 / c1)
	} else {
		disc := c1*c1 - 4*c2*c0
		if disc < 0 {
			return nil
		}
		sq := math.Sqrt(disc)
		clip((-c1 - sq) / (2 * c2))
		clip((-c1 + sq) / (2 * c2))
	}

	if len(roots) == 2 && roots[0] > roots[1] {
		roots[0], roots[1] = roots[1], roots[0]
	}
	return roots
}
