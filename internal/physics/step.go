package physics

import "github.com/san-kum/ballsim/internal/dynamo"

// Step advances every ball by one tick, in sequence order, mutating balls
// in place. For each ball it integrates, applies wall containment on the
// advanced position, then resolves overlaps against every other ball.
// Balls earlier in the sequence have already moved this tick when later
// ones are compared against them.
func Step(balls dynamo.Balls, bounds dynamo.Bounds, tn Tuning) {
	for i := range balls {
		Integrate(&balls[i])
		Contain(&balls[i], bounds, tn.Restitution)
		ResolveOverlaps(balls, i, tn)
	}
}

// Next returns the state after one tick without touching balls.
func Next(balls dynamo.Balls, bounds dynamo.Bounds, tn Tuning) dynamo.Balls {
	next := balls.Clone()
	Step(next, bounds, tn)
	return next
}

// Integrate applies one explicit Euler tick: one frame, not wall-clock time.
func Integrate(b *dynamo.Ball) {
	b.Pos = b.Pos.Add(b.Vel)
}

// Contain bounces a ball whose extent already crosses a wall. The velocity
// component is inverted and scaled by restitution. The position is left
// alone, so a ball may sit past the wall for a tick before the bounce
// carries it back.
func Contain(b *dynamo.Ball, bounds dynamo.Bounds, restitution float64) {
	if b.Pos.X-b.Radius < 0 || b.Pos.X+b.Radius > bounds.Width {
		b.Vel.X *= -restitution
	}
	if b.Pos.Y-b.Radius < 0 || b.Pos.Y+b.Radius > bounds.Height {
		b.Vel.Y *= -restitution
	}
}
