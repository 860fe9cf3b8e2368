package scene

// DistanceBarrierSettings configures barrier.DistanceBarrier's activation
// radius and the degenerate-edge guard in barrier.SpaceTimeVolume.
type DistanceBarrierSettings struct {
	Epsilon     float64 `json:"epsilon"`
	EpsilonEdge float64 `json:"epsilon_edge"`
}

// BarrierSolverSettings configures solver.BarrierNewtonSolver.
type BarrierSolverSettings struct {
	MaxIterations           int     `json:"max_iterations"`
	ConvergenceTolerance    float64 `json:"convergence_tolerance"`
	InitialBarrierStiffness float64 `json:"initial_barrier_stiffness"`
	BarrierDecayRate        float64 `json:"barrier_decay_rate"`
}

// RigidBodyProblemSettings configures the rigidbody.Assembler a
// RigidBodyDocument scene is loaded against.
type RigidBodyProblemSettings struct {
	NumBodies int   `json:"num_bodies"`
	FixedDof  []int `json:"fixed_dof,omitempty"`
}

// Settings is the top-level on-disk problem configuration, the only
// external config surface this module exposes — tunables that aren't
// scene geometry itself live here rather than as command-line flags or
// environment variables, matching spec.md's JSON-only external interface.
type Settings struct {
	DistanceBarrierConstraint DistanceBarrierSettings  `json:"distance_barrier_constraint"`
	BarrierSolver             BarrierSolverSettings    `json:"barrier_solver"`
	RigidBodyProblem          RigidBodyProblemSettings `json:"rigid_body_problem"`
}

// DefaultSettings returns the tunables a caller gets when no Settings
// document is supplied.
func DefaultSettings() Settings {
	return Settings{
		DistanceBarrierConstraint: DistanceBarrierSettings{Epsilon: 0.01, EpsilonEdge: 1e-9},
		BarrierSolver: BarrierSolverSettings{
			MaxIterations:           50,
			ConvergenceTolerance:    1e-6,
			InitialBarrierStiffness: 1.0,
			BarrierDecayRate:        0.5,
		},
	}
}
