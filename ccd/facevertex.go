package ccd

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

// FaceVertexResult is the outcome of a 3D face-vertex TOI query.
type FaceVertexResult struct {
	Hit     bool
	Toi     float64
	U, V, W float64 // barycentric coordinates at Toi
}

// FaceVertexTimeOfImpact computes the certified earliest time of impact
// between a moving point and a moving triangle in 3D (spec.md §4.4, FV 3D
// row). Both the point-plane signed distance root and the
// barycentric-non-negative containment predicate are fully certified —
// Barycentric3D is generic over numeric.Scalar and evaluates directly on
// the same Interval the root finder is already bisecting.
func FaceVertexTimeOfImpact(
	v0, v1, v2, vertex PointTrajectory3[numeric.Interval],
	tol float64,
) FaceVertexResult {
	f := func(t numeric.Interval) numeric.Interval {
		return geometry.SignedVolumePointPlane3D(vertex(t), v0(t), v1(t), v2(t))
	}
	zero := numeric.FromFloat64(0)
	inside := func(t numeric.Interval) bool {
		u, v, w := geometry.Barycentric3D(vertex(t), v0(t), v1(t), v2(t))
		return geometry.BarycentricNonNegative(u, v, w, zero)
	}

	result := numeric.IntervalRootFinder(f, inside, numeric.FromBounds(0, 1), tol)
	if !result.Hit {
		return FaceVertexResult{Hit: false}
	}

	toi := result.Enclosure.Lo
	tPoint := numeric.FromFloat64(toi)
	u, v, w := geometry.Barycentric3D(vertex(tPoint), v0(tPoint), v1(tPoint), v2(tPoint))
	return FaceVertexResult{Hit: true, Toi: toi, U: u.Float64(), V: v.Float64(), W: w.Float64()}
}
