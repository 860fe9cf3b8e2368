// Package ccd implements the narrow-phase continuous-collision-detection
// solvers: edge-vertex (2D), edge-edge (3D), and face-vertex (3D) time of
// impact, each built on the same template — a screwing trajectory fed
// through the certified interval root finder plus a geometric "inside"
// containment predicate.
package ccd

import (
	"github.com/ccdkit/rigidccd/geometry"
	"github.com/ccdkit/rigidccd/numeric"
)

// PointTrajectory2 is a single point's position as a function of the
// step parameter t, generic over scalar type. The rigidbody assembler
// supplies these by composing pose.Lerp2 with pose.Pose2.WorldPoint; test
// scenarios and the closed-form fast path supply plain linear motion
// p0 + t*U directly.
type PointTrajectory2[S numeric.Scalar[S]] func(t S) geometry.Vec2[S]

// PointTrajectory3 is the 3D analogue of PointTrajectory2.
type PointTrajectory3[S numeric.Scalar[S]] func(t S) geometry.Vec3[S]

// LinearTrajectory2 returns the PointTrajectory2 for simple translation at
// constant displacement U over the step: p(t) = p0 + t*U.
func LinearTrajectory2[S numeric.Scalar[S]](p0, u geometry.Vec2[S]) PointTrajectory2[S] {
	return func(t S) geometry.Vec2[S] {
		return p0.Add(u.Scale(t))
	}
}

// LinearTrajectory3 is the 3D analogue of LinearTrajectory2.
func LinearTrajectory3[S numeric.Scalar[S]](p0, u geometry.Vec3[S]) PointTrajectory3[S] {
	return func(t S) geometry.Vec3[S] {
		return p0.Add(u.Scale(t))
	}
}
