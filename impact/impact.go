// Package impact canonicalizes and prunes the time-of-impact results the
// ccd package produces: sorting edge-vertex impacts into time order,
// lifting them into edge-edge impacts against the vertex's own incident
// edges, and recording each edge's earliest recorded impact in a map the
// barrier kernel consumes directly.
package impact

import "sort"

// EdgeVertexImpact is a certified collision between a moving vertex and a
// moving edge, at parametric position Alpha along the edge.
type EdgeVertexImpact struct {
	Toi         float64
	EdgeIndex   int
	VertexIndex int
	Alpha       float64
}

// EdgeEdgeImpact is an edge-vertex impact lifted against one of the struck
// vertex's own incident edges, expressing the same collision instant as an
// edge-edge event so the barrier kernel can treat every impact uniformly.
type EdgeEdgeImpact struct {
	Toi    float64
	EdgeA  int
	AlphaA float64
	EdgeB  int
	AlphaB float64
}

// FaceVertexImpact is a certified collision between a moving vertex and a
// moving triangle, at barycentric position (U,V,1-U-V).
type FaceVertexImpact struct {
	Toi    float64
	Face   int
	Vertex int
	U, V   float64
}

// SortEdgeVertexImpacts orders impacts ascending by Toi, breaking ties by
// (EdgeIndex, VertexIndex) as spec requires — impact detection is otherwise
// order-independent, so a stable tiebreak keeps results deterministic
// across broad-phase candidate orderings.
func SortEdgeVertexImpacts(impacts []EdgeVertexImpact) {
	sort.Slice(impacts, func(i, j int) bool {
		a, b := impacts[i], impacts[j]
		if a.Toi != b.Toi {
			return a.Toi < b.Toi
		}
		if a.EdgeIndex != b.EdgeIndex {
			return a.EdgeIndex < b.EdgeIndex
		}
		return a.VertexIndex < b.VertexIndex
	})
}

// SortFaceVertexImpacts is the 3D analogue of SortEdgeVertexImpacts, tying
// on (Face, Vertex).
func SortFaceVertexImpacts(impacts []FaceVertexImpact) {
	sort.Slice(impacts, func(i, j int) bool {
		a, b := impacts[i], impacts[j]
		if a.Toi != b.Toi {
			return a.Toi < b.Toi
		}
		if a.Face != b.Face {
			return a.Face < b.Face
		}
		return a.Vertex < b.Vertex
	})
}

// VertexIncidence maps a vertex index to the indices of the edges having it
// as an endpoint, built once per step from the edge set.
func VertexIncidence(edges [][2]int) map[int][]int {
	incidence := make(map[int][]int)
	for edgeIdx, e := range edges {
		incidence[e[0]] = append(incidence[e[0]], edgeIdx)
		incidence[e[1]] = append(incidence[e[1]], edgeIdx)
	}
	return incidence
}

// AlphaAtFunc computes the struck vertex's own edge e' parametric position
// at the impact time, needed because an edge-vertex impact only carries the
// parametric position along the *struck* edge; lifting to an edge-edge
// impact needs the position along the *incident* edge too.
type AlphaAtFunc func(toi float64, edge int) float64

// LiftToEdgeEdge expands every edge-vertex impact into one edge-edge impact
// per edge incident to the struck vertex (spec's "lift" step): the vertex's
// own edge becomes edgeB in the lifted record, with alphaB taken from the
// vertex's position along it, alphaB ∈ {0,1} if the vertex is itself an
// endpoint of exactly one incident edge (a loose end), or its fractional
// position if the vertex is shared by multiple edges at a junction.
func LiftToEdgeEdge(impacts []EdgeVertexImpact, incidentEdges map[int][]int, alphaAt AlphaAtFunc) []EdgeEdgeImpact {
	var out []EdgeEdgeImpact
	for _, ev := range impacts {
		for _, e2 := range incidentEdges[ev.VertexIndex] {
			if e2 == ev.EdgeIndex {
				continue
			}
			out = append(out, EdgeEdgeImpact{
				Toi:    ev.Toi,
				EdgeA:  ev.EdgeIndex,
				AlphaA: ev.Alpha,
				EdgeB:  e2,
				AlphaB: alphaAt(ev.Toi, e2),
			})
		}
	}
	return out
}

// EdgeImpactMap records, for every edge, the index into eeImpacts of its
// earliest recorded edge-edge impact, or -1 if the edge has none. Invariant
// (spec.md §4.5): map[e] >= 0 implies eeImpacts[map[e]] names e as EdgeA or
// EdgeB. eeImpacts must already be sorted ascending by Toi (the first
// matching record encountered per edge is therefore the earliest).
func EdgeImpactMap(numEdges int, eeImpacts []EdgeEdgeImpact) []int {
	m := make([]int, numEdges)
	for i := range m {
		m[i] = -1
	}
	for idx, ee := range eeImpacts {
		if m[ee.EdgeA] == -1 {
			m[ee.EdgeA] = idx
		}
		if m[ee.EdgeB] == -1 {
			m[ee.EdgeB] = idx
		}
	}
	return m
}
