package broadphase

import (
	"sort"
	"testing"
)

func TestEdgeVertexCandidates2DExcludesOwnEndpoints(t *testing.T) {
	vertices := [][2]float64{{-1, 0}, {1, 0}, {0, 1}}
	displacements := [][2]float64{{0, 0}, {0, 0}, {0, -2}}
	edges := [][2]int{{0, 1}}

	brute := DetectEdgeVertexCandidates2D(vertices, displacements, edges, 0.1, BruteForce)
	grid := DetectEdgeVertexCandidates2D(vertices, displacements, edges, 0.1, HashGrid)

	if len(brute) != 1 || brute[0] != (EdgeVertexCandidate{Edge: 0, Vertex: 2}) {
		t.Fatalf("brute-force candidates = %v, want [{0 2}]", brute)
	}
	if !sameEVSet(brute, grid) {
		t.Errorf("grid candidates %v disagree with brute-force %v", grid, brute)
	}
}

func TestEdgeVertexCandidates2DNoneWhenFarApart(t *testing.T) {
	vertices := [][2]float64{{-1, 0}, {1, 0}, {0, 100}}
	displacements := [][2]float64{{0, 0}, {0, 0}, {0, 0}}
	edges := [][2]int{{0, 1}}

	brute := DetectEdgeVertexCandidates2D(vertices, displacements, edges, 0.1, BruteForce)
	grid := DetectEdgeVertexCandidates2D(vertices, displacements, edges, 0.1, HashGrid)

	if len(brute) != 0 || len(grid) != 0 {
		t.Errorf("expected no candidates for a far vertex, brute=%v grid=%v", brute, grid)
	}
}

func TestEdgeEdgeCandidates3DExcludesSharedEndpoints(t *testing.T) {
	// Edge 0: (0,1). Edge 1: (1,2) shares vertex 1 with edge 0 — excluded.
	// Edge 2 is a separate segment overlapping edge 0's swept box.
	vertices := [][3]float64{
		{-1, 0, 0}, {1, 0, 0}, {2, 0, 0},
		{-1, 0.02, 0}, {1, 0.02, 0},
	}
	displacements := [][3]float64{
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},
	}
	edges := [][2]int{{0, 1}, {1, 2}, {3, 4}}

	brute := DetectEdgeEdgeCandidates3D(vertices, displacements, edges, 0.1, BruteForce)
	grid := DetectEdgeEdgeCandidates3D(vertices, displacements, edges, 0.1, HashGrid)

	for _, c := range brute {
		if c.EdgeA == 0 && c.EdgeB == 1 || c.EdgeA == 1 && c.EdgeB == 0 {
			t.Errorf("edges sharing vertex 1 must not appear as a candidate: %v", c)
		}
	}
	want := EdgeEdgeCandidate{EdgeA: 0, EdgeB: 2}
	found := false
	for _, c := range brute {
		if c == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected candidate %v among %v", want, brute)
	}
	if !sameEESet(brute, grid) {
		t.Errorf("grid candidates %v disagree with brute-force %v", grid, brute)
	}
}

func TestFaceVertexCandidates3DExcludesOwnCorners(t *testing.T) {
	vertices := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, // face 0
		{0.2, 0.2, 1}, // vertex 3, approaching from above
	}
	displacements := [][3]float64{
		{0, 0, 0}, {0, 0, 0}, {0, 0, 0},
		{0, 0, -2},
	}
	faces := [][3]int{{0, 1, 2}}

	brute := DetectFaceVertexCandidates3D(vertices, displacements, faces, 0.1, BruteForce)
	grid := DetectFaceVertexCandidates3D(vertices, displacements, faces, 0.1, HashGrid)

	if len(brute) != 1 || brute[0] != (FaceVertexCandidate{Face: 0, Vertex: 3}) {
		t.Fatalf("brute-force candidates = %v, want [{0 3}]", brute)
	}
	if !sameFVSet(brute, grid) {
		t.Errorf("grid candidates %v disagree with brute-force %v", grid, brute)
	}
}

func sameEVSet(a, b []EdgeVertexCandidate) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := append([]EdgeVertexCandidate{}, a...), append([]EdgeVertexCandidate{}, b...)
	less := func(s []EdgeVertexCandidate) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Edge != s[j].Edge {
				return s[i].Edge < s[j].Edge
			}
			return s[i].Vertex < s[j].Vertex
		}
	}
	sort.Slice(sa, less(sa))
	sort.Slice(sb, less(sb))
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func sameEESet(a, b []EdgeEdgeCandidate) bool {
	if len(a) != len(b) {
		return false
	}
	norm := func(in []EdgeEdgeCandidate) []EdgeEdgeCandidate {
		out := append([]EdgeEdgeCandidate{}, in...)
		for i := range out {
			if out[i].EdgeA > out[i].EdgeB {
				out[i].EdgeA, out[i].EdgeB = out[i].EdgeB, out[i].EdgeA
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].EdgeA != out[j].EdgeA {
				return out[i].EdgeA < out[j].EdgeA
			}
			return out[i].EdgeB < out[j].EdgeB
		})
		return out
	}
	sa, sb := norm(a), norm(b)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

func sameFVSet(a, b []FaceVertexCandidate) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := append([]FaceVertexCandidate{}, a...), append([]FaceVertexCandidate{}, b...)
	less := func(s []FaceVertexCandidate) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Face != s[j].Face {
				return s[i].Face < s[j].Face
			}
			return s[i].Vertex < s[j].Vertex
		}
	}
	sort.Slice(sa, less(sa))
	sort.Slice(sb, less(sb))
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
