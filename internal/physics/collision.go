package physics

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// ResolveOverlaps corrects the velocity of balls[i] against every other
// ball it overlaps. Only balls[i] reacts: the correction is the push the
// other ball would need to reach contact distance, applied to self with
// the opposite sign. The partner is handled when its own index comes up.
//
// Damping is applied once per overlapping partner, so a ball wedged
// between several others slows down faster.
func ResolveOverlaps(balls dynamo.Balls, i int, tn Tuning) {
	self := &balls[i]
	for j := range balls {
		if j == i {
			continue
		}
		other := balls[j]

		dx := other.Pos.X - self.Pos.X
		dy := other.Pos.Y - self.Pos.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		minDist := self.Radius + other.Radius
		if dist >= minDist {
			continue
		}

		angle := 0.0
		if dist > 0 {
			angle = math.Atan2(dy, dx)
		}
		target := dynamo.Vec2{
			X: self.Pos.X + math.Cos(angle)*minDist,
			Y: self.Pos.Y + math.Sin(angle)*minDist,
		}
		push := target.Sub(other.Pos).Scale(tn.Stiffness)

		self.Vel = self.Vel.Sub(push).Scale(tn.Damping)
	}
}

// OverlappingPairs counts unordered pairs whose circles intersect.
func OverlappingPairs(balls dynamo.Balls) int {
	n := 0
	for i := range balls {
		for j := i + 1; j < len(balls); j++ {
			if balls[i].Overlaps(balls[j]) {
				n++
			}
		}
	}
	return n
}

// KineticEnergy is the sum of 0.5*|v|^2 with every ball at unit mass.
func KineticEnergy(balls dynamo.Balls) float64 {
	e := 0.0
	for _, b := range balls {
		e += 0.5 * (b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y)
	}
	return e
}
