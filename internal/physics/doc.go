// Package physics advances the ball population by one frame.
//
// A tick is one display refresh, not a wall-clock interval:
//
//   - [Integrate]: explicit Euler, position += velocity
//   - [Contain]: wall bounce on the advanced position, velocity inverted
//     and scaled by [Tuning.Restitution]
//   - [ResolveOverlaps]: per-pair velocity correction where only the ball
//     being processed reacts to its partner
//
// [Step] runs the three in sequence order for every ball. There is no
// mass, no momentum bookkeeping and no energy conservation; damping only
// keeps the picture stable.
//
// [Tuning] implements [dynamo.Configurable] so hosts can tweak the
// coefficients live:
//
//	tn := physics.DefaultTuning()
//	_ = tn.SetParam("restitution", 0.8)
//	physics.Step(balls, bounds, tn)
package physics
