// Package broadphase narrows the all-pairs collision problem down to a
// candidate set cheap enough for the narrow-phase CCD solvers to certify.
// It mirrors the teacher's uniform hash grid, generalized from single-shape
// self-pairing to cross-pairing between the distinct entity kinds (vertex,
// edge, face) the narrow phase needs: edge-vertex, edge-edge, face-vertex.
// The grid itself works in plain float64 coordinates — it only needs to be
// cheap and conservative, never certified; that burden belongs entirely to
// the ccd package's interval solvers downstream.
package broadphase

// AABB3 is an axis-aligned bounding box in 3D. 2D boxes hold Z at [0,0] so
// the same grid code serves both dimensions without duplication.
type AABB3 struct {
	Min, Max [3]float64
}

func (b AABB3) Overlaps(o AABB3) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

func (b AABB3) Union(o AABB3) AABB3 {
	out := b
	for i := 0; i < 3; i++ {
		if o.Min[i] < out.Min[i] {
			out.Min[i] = o.Min[i]
		}
		if o.Max[i] > out.Max[i] {
			out.Max[i] = o.Max[i]
		}
	}
	return out
}

// Inflate grows the box by radius on every side — used to cover the
// distance-barrier's activation radius epsilon so candidates are not missed
// for near-misses the narrow phase still needs to evaluate.
func (b AABB3) Inflate(radius float64) AABB3 {
	return AABB3{
		Min: [3]float64{b.Min[0] - radius, b.Min[1] - radius, b.Min[2] - radius},
		Max: [3]float64{b.Max[0] + radius, b.Max[1] + radius, b.Max[2] + radius},
	}
}

func pointBox2(p [2]float64) AABB3 {
	return AABB3{Min: [3]float64{p[0], p[1], 0}, Max: [3]float64{p[0], p[1], 0}}
}

func pointBox3(p [3]float64) AABB3 {
	return AABB3{Min: p, Max: p}
}

// SweptBox2 is the AABB swept by a point moving from p0 to p1 over the step.
func SweptBox2(p0, p1 [2]float64) AABB3 {
	return pointBox2(p0).Union(pointBox2(p1))
}

// SweptBox3 is the 3D analogue of SweptBox2.
func SweptBox3(p0, p1 [3]float64) AABB3 {
	return pointBox3(p0).Union(pointBox3(p1))
}
