package scene

// StateExport is the per-step result summary a caller can serialize
// alongside a scene. MinDistance is a pointer so a step with no candidate
// pairs at all round-trips as JSON null rather than a misleading 0.
type StateExport struct {
	MinDistance          *float64 `json:"min_distance"`
	NumActiveConstraints int      `json:"num_active_constraints"`
	Iterations           int      `json:"iterations"`
	Converged            bool     `json:"converged"`
}
