package broadphase

import "math"

// DetectionMethod selects how candidates are generated: an exhaustive
// all-pairs scan (BruteForce, used by tests and small scenes to cross-check
// the grid) or the hash grid (HashGrid, the one a real step should use).
type DetectionMethod int

const (
	BruteForce DetectionMethod = iota
	HashGrid
)

// EdgeVertexCandidate pairs an edge index with a vertex index that does not
// belong to that edge.
type EdgeVertexCandidate struct {
	Edge, Vertex int
}

// EdgeEdgeCandidate pairs two distinct edges sharing no endpoint.
type EdgeEdgeCandidate struct {
	EdgeA, EdgeB int
}

// FaceVertexCandidate pairs a face index with a vertex index not on that
// face.
type FaceVertexCandidate struct {
	Face, Vertex int
}

// meanEdgeLength sizes the grid cell to the average edge length, the
// teacher's rule of thumb for keeping a handful of items per cell rather
// than a fixed constant that would be wrong for a differently scaled scene.
func meanEdgeLength(edgeBoxes []AABB3) float64 {
	if len(edgeBoxes) == 0 {
		return 1
	}
	total := 0.0
	for _, b := range edgeBoxes {
		dx := b.Max[0] - b.Min[0]
		dy := b.Max[1] - b.Min[1]
		dz := b.Max[2] - b.Min[2]
		total += math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	mean := total / float64(len(edgeBoxes))
	if mean <= 0 {
		return 1
	}
	return mean
}

// DetectEdgeVertexCandidates2D finds (edge, vertex) pairs whose swept
// bounding boxes overlap once inflated by inflate (typically the distance
// barrier's epsilon), excluding a vertex that is itself an endpoint of the
// edge. vertices[i] and displacements[i] give each vertex's position at
// t=0 and its step displacement; edges holds vertex-index pairs.
func DetectEdgeVertexCandidates2D(
	vertices, displacements [][2]float64,
	edges [][2]int,
	inflate float64,
	method DetectionMethod,
) []EdgeVertexCandidate {
	vertexBoxes := make([]AABB3, len(vertices))
	for i, p0 := range vertices {
		p1 := [2]float64{p0[0] + displacements[i][0], p0[1] + displacements[i][1]}
		vertexBoxes[i] = SweptBox2(p0, p1).Inflate(inflate)
	}
	edgeBoxes := make([]AABB3, len(edges))
	for i, e := range edges {
		edgeBoxes[i] = vertexBoxes[e[0]].Union(vertexBoxes[e[1]]).Inflate(inflate)
	}

	onEdge := func(edgeIdx, vertexIdx int) bool {
		e := edges[edgeIdx]
		return e[0] == vertexIdx || e[1] == vertexIdx
	}

	var out []EdgeVertexCandidate
	if method == BruteForce {
		for e := range edges {
			for v := range vertices {
				if onEdge(e, v) {
					continue
				}
				if edgeBoxes[e].Overlaps(vertexBoxes[v]) {
					out = append(out, EdgeVertexCandidate{Edge: e, Vertex: v})
				}
			}
		}
		return out
	}

	cellSize := meanEdgeLength(edgeBoxes)
	grid := NewSpatialGrid(cellSize, len(edges))
	for _, b := range edgeBoxes {
		grid.Insert(b)
	}
	for v, vBox := range vertexBoxes {
		for _, e := range grid.QueryCandidates(vBox) {
			if onEdge(e, v) {
				continue
			}
			if edgeBoxes[e].Overlaps(vBox) {
				out = append(out, EdgeVertexCandidate{Edge: e, Vertex: v})
			}
		}
	}
	return dedupEdgeVertex(out)
}

// DetectEdgeEdgeCandidates3D finds (edgeA, edgeB) pairs with no shared
// endpoint whose swept boxes overlap once inflated.
func DetectEdgeEdgeCandidates3D(
	vertices, displacements [][3]float64,
	edges [][2]int,
	inflate float64,
	method DetectionMethod,
) []EdgeEdgeCandidate {
	vertexBoxes := make([]AABB3, len(vertices))
	for i, p0 := range vertices {
		p1 := [3]float64{p0[0] + displacements[i][0], p0[1] + displacements[i][1], p0[2] + displacements[i][2]}
		vertexBoxes[i] = SweptBox3(p0, p1)
	}
	edgeBoxes := make([]AABB3, len(edges))
	for i, e := range edges {
		edgeBoxes[i] = vertexBoxes[e[0]].Union(vertexBoxes[e[1]]).Inflate(inflate)
	}

	sharesEndpoint := func(a, b int) bool {
		ea, eb := edges[a], edges[b]
		return ea[0] == eb[0] || ea[0] == eb[1] || ea[1] == eb[0] || ea[1] == eb[1]
	}

	var out []EdgeEdgeCandidate
	if method == BruteForce {
		for a := range edges {
			for b := a + 1; b < len(edges); b++ {
				if sharesEndpoint(a, b) {
					continue
				}
				if edgeBoxes[a].Overlaps(edgeBoxes[b]) {
					out = append(out, EdgeEdgeCandidate{EdgeA: a, EdgeB: b})
				}
			}
		}
		return out
	}

	cellSize := meanEdgeLength(edgeBoxes)
	grid := NewSpatialGrid(cellSize, len(edges))
	for _, b := range edgeBoxes {
		grid.Insert(b)
	}
	for a := range edges {
		for _, b := range grid.QueryCandidates(edgeBoxes[a]) {
			if b <= a || sharesEndpoint(a, b) {
				continue
			}
			if edgeBoxes[a].Overlaps(edgeBoxes[b]) {
				out = append(out, EdgeEdgeCandidate{EdgeA: a, EdgeB: b})
			}
		}
	}
	return dedupEdgeEdge(out)
}

// DetectFaceVertexCandidates3D finds (face, vertex) pairs where vertex is
// not one of the face's three corners and the swept boxes overlap once
// inflated.
func DetectFaceVertexCandidates3D(
	vertices, displacements [][3]float64,
	faces [][3]int,
	inflate float64,
	method DetectionMethod,
) []FaceVertexCandidate {
	vertexBoxes := make([]AABB3, len(vertices))
	for i, p0 := range vertices {
		p1 := [3]float64{p0[0] + displacements[i][0], p0[1] + displacements[i][1], p0[2] + displacements[i][2]}
		vertexBoxes[i] = SweptBox3(p0, p1)
	}
	faceBoxes := make([]AABB3, len(faces))
	for i, f := range faces {
		box := vertexBoxes[f[0]].Union(vertexBoxes[f[1]])
		box = box.Union(vertexBoxes[f[2]])
		faceBoxes[i] = box.Inflate(inflate)
	}

	onFace := func(faceIdx, vertexIdx int) bool {
		f := faces[faceIdx]
		return f[0] == vertexIdx || f[1] == vertexIdx || f[2] == vertexIdx
	}

	var out []FaceVertexCandidate
	if method == BruteForce {
		for f := range faces {
			for v := range vertices {
				if onFace(f, v) {
					continue
				}
				if faceBoxes[f].Overlaps(vertexBoxes[v]) {
					out = append(out, FaceVertexCandidate{Face: f, Vertex: v})
				}
			}
		}
		return out
	}

	cellSize := meanEdgeLength(faceBoxes)
	grid := NewSpatialGrid(cellSize, len(faces))
	for _, b := range faceBoxes {
		grid.Insert(b)
	}
	for v, vBox := range vertexBoxes {
		for _, f := range grid.QueryCandidates(vBox) {
			if onFace(f, v) {
				continue
			}
			if faceBoxes[f].Overlaps(vBox) {
				out = append(out, FaceVertexCandidate{Face: f, Vertex: v})
			}
		}
	}
	return dedupFaceVertex(out)
}

// dedupEdgeVertex removes duplicate candidates. The grid's own QueryCandidates
// dedup already prevents duplicates from a single vertex's scan, but a
// belt-and-suspenders pass here keeps the contract ("de-duplicated, not
// time-sorted") true regardless of how candidates were produced upstream.
func dedupEdgeVertex(in []EdgeVertexCandidate) []EdgeVertexCandidate {
	seen := make(map[EdgeVertexCandidate]bool, len(in))
	out := in[:0]
	for _, c := range in {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func dedupEdgeEdge(in []EdgeEdgeCandidate) []EdgeEdgeCandidate {
	seen := make(map[EdgeEdgeCandidate]bool, len(in))
	out := in[:0]
	for _, c := range in {
		if c.EdgeA > c.EdgeB {
			c.EdgeA, c.EdgeB = c.EdgeB, c.EdgeA
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func dedupFaceVertex(in []FaceVertexCandidate) []FaceVertexCandidate {
	seen := make(map[FaceVertexCandidate]bool, len(in))
	out := in[:0]
	for _, c := range in {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
