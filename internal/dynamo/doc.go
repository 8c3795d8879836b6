// Package dynamo provides the core data types of the ball simulation.
//
// The package defines the passive entities and the small interfaces the
// other packages plug into:
//
//   - [Ball]: position, velocity, radius and color of one ball
//   - [Balls]: the ordered, fixed-size population of a session
//   - [Bounds]: the drawable surface extent
//   - [Metric], [Observer]: per-tick hooks used by the simulation loop
//   - [Configurable]: runtime-editable tunables
//
// # Example
//
//	balls := dynamo.Balls{{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 0.5, Y: 0.5}, Radius: 20, Color: dynamo.Red}}
//	physics.Step(balls, dynamo.DefaultBounds(), physics.DefaultTuning())
//
// # Thread Safety
//
// Balls is NOT safe for concurrent use. A session owns its population and
// every mutation (physics, input, color edits) must run on the session's
// single logical thread.
package dynamo
