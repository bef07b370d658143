// Package dynamo holds the primitives shared by every layer of the
// gravity simulator:
//
//   - the domain errors returned by body construction and scenario setup
//   - finiteness helpers for [r2.Vec], the 2D vector used for positions,
//     velocities, accelerations and forces
//
// Errors are sentinels; callers discriminate with [errors.Is]. The
// scenario data errors ([ErrPositionLengthMismatch],
// [ErrVelocityLengthMismatch]) also match [ErrInvalidScenarioData].
package dynamo
