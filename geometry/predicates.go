package geometry

import "github.com/ccdkit/rigidccd/numeric"

// SignedAreaPointLine2D returns a quantity proportional to the signed
// distance from point to the infinite line through (edgeA, edgeB): the
// cross product of the edge direction and the vector to point. It is zero
// exactly when point lies on the line, which is all the certified root
// finder needs — scaling by the (always-positive, away from a degenerate
// edge) edge length does not move the zero crossing.
func SignedAreaPointLine2D[S numeric.Scalar[S]](point, edgeA, edgeB Vec2[S]) S {
	dir := edgeB.Sub(edgeA)
	return dir.Cross(point.Sub(edgeA))
}

// ProjectParam2D returns alpha such that lerp(edgeA, edgeB, alpha) is the
// orthogonal projection of point onto the line through (edgeA, edgeB).
// Undefined (division by a near-zero length) when the edge is degenerate —
// callers must check edge length first.
func ProjectParam2D[S numeric.Scalar[S]](point, edgeA, edgeB Vec2[S]) S {
	dir := edgeB.Sub(edgeA)
	return point.Sub(edgeA).Dot(dir).Div(dir.Dot(dir))
}

// AlphaInUnitInterval reports whether alpha is not certainly outside [0,1].
// Ties (the tri-valued Cmp returning "unknown") are treated as *inside* so a
// point sitting exactly on a segment endpoint is not spuriously rejected;
// the narrow-phase solvers only call this once the interval width is
// already below tol, so "unknown" here means "very close to the boundary",
// not "don't know".
func AlphaInUnitInterval[S numeric.Scalar[S]](alpha S, zero, one S) bool {
	return alpha.Cmp(zero) >= 0 && alpha.Cmp(one) <= 0
}

// SignedVolumePointPlane3D returns a quantity proportional to the signed
// distance from point to the plane of triangle (v0, v1, v2): the scalar
// triple product of the two edge vectors and the vector to point. Zero
// exactly when point lies in the plane.
func SignedVolumePointPlane3D[S numeric.Scalar[S]](point, v0, v1, v2 Vec3[S]) S {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	return normal.Dot(point.Sub(v0))
}

// Barycentric3D returns the barycentric coordinates (u,v,w) of point's
// projection onto the plane of triangle (v0,v1,v2), with u+v+w = 1 and
// point == u*v0 + v*v1 + w*v2 when point lies exactly in the plane.
// Undefined (division by a near-zero area) for a degenerate triangle.
func Barycentric3D[S numeric.Scalar[S]](point, v0, v1, v2 Vec3[S]) (u, v, w S) {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	denom := normal.Dot(normal)

	u = v1.Sub(point).Cross(v2.Sub(point)).Dot(normal).Div(denom)
	v = v2.Sub(point).Cross(v0.Sub(point)).Dot(normal).Div(denom)
	w = v0.Sub(point).Cross(v1.Sub(point)).Dot(normal).Div(denom)
	return
}

// BarycentricNonNegative reports whether none of u, v, w is certainly < 0,
// i.e. point's planar projection lies inside (or on the boundary of) the
// triangle. As with AlphaInUnitInterval, "unknown" from Cmp is treated as
// satisfying the predicate since this is only evaluated once the
// root-finder's interval is already within tol of the boundary.
func BarycentricNonNegative[S numeric.Scalar[S]](u, v, w, zero S) bool {
	return u.Cmp(zero) >= 0 && v.Cmp(zero) >= 0 && w.Cmp(zero) >= 0
}

// SignedVolumeLineLine3D returns a quantity proportional to the signed
// distance between the infinite lines through (a0, a0+da) and (b0, b0+db):
// the scalar triple product of the two directions and the vector between
// origins. Zero exactly when the lines intersect (or are coplanar and
// parallel).
func SignedVolumeLineLine3D[S numeric.Scalar[S]](a0, da, b0, db Vec3[S]) S {
	n := da.Cross(db)
	return n.Dot(b0.Sub(a0))
}

// ClosestParamsSegmentSegment3D returns the parameters (s, t) in the
// closest-point-on-each-infinite-line sense between segment A (a0, a0+da)
// and segment B (b0, b0+db), following the standard closest-point
// construction (Ericson, "Real-Time Collision Detection" §5.1.9). It is
// evaluated at numeric.F64 (a point estimate) purely to drive the "inside
// both segments" containment predicate, not to certify the TOI itself —
// the TOI root comes from SignedVolumeLineLine3D through the certified
// root finder. The parameters are not clamped to [0,1] (so a caller can
// tell whether the closest points fall inside both segments), except when
// one segment is degenerate (a point): the other segment's parameter is
// then clamped to [0,1].
func ClosestParamsSegmentSegment3D(a0, da, b0, db Vec3[numeric.F64]) (s, t float64) {
	r := a0.Sub(b0)
	A := da.Dot(da).Float64()
	E := db.Dot(db).Float64()
	F := db.Dot(r).Float64()

	const eps = 1e-12
	if A <= eps && E <= eps {
		return 0, 0
	}
	if A <= eps {
		return 0, clamp01(F / E)
	}
	C := da.Dot(r).Float64()
	if E <= eps {
		return clamp01(-C / A), 0
	}

	B := da.Dot(db).Float64()
	denom := A*E - B*B
	if denom > eps {
		s = (B*F - C*E) / denom
	} else {
		s = 0
	}
	t = (B*s + F) / E
	return s, t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
