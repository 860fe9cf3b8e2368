// Package scene is this module's only on-disk boundary: JSON scene
// documents, solver settings, and step results, plus the three step-scoped
// views (Geometry, Trajectory, Results) the root World type assembles
// itself from. encoding/json is stdlib — no JSON library appears in any
// retrieved example repo's go.mod, so this is a justified stdlib-only
// component (see DESIGN.md).
package scene

// SceneDocument is the on-disk representation of one scene: a vertex/edge
// (and optionally face) mesh plus per-vertex displacements and, for rigid
// bodies, the dof vector that reproduces them. Edge and face indices are
// declared as [][]int rather than [][]float64 so encoding/json never
// coerces them through a float64 round trip.
type SceneDocument struct {
	Vertices      [][]float64        `json:"vertices"`
	Edges         [][]int            `json:"edges"`
	Faces         [][]int            `json:"faces,omitempty"`
	Displacements [][]float64        `json:"displacements,omitempty"`
	RigidBodies   *RigidBodyDocument `json:"rigid_bodies,omitempty"`
}

// RigidBodyDocument carries the dof-vector representation of a scene whose
// vertices are driven by rigid bodies rather than free per-vertex
// displacements: one sigma row per body.
type RigidBodyDocument struct {
	Sigma    [][]float64 `json:"sigma"`
	SigmaDot [][]float64 `json:"sigma_dot,omitempty"`
}
