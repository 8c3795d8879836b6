// Package input turns surface-local pointer coordinates into effects on the
// ball population: selection hit-tests and hover repulsion.
package input

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	DefaultInfluenceRadius = 100.0
	DefaultGain            = 0.003
)

type Mapper struct {
	Bounds          dynamo.Bounds
	InfluenceRadius float64
	Gain            float64
}

func NewMapper(bounds dynamo.Bounds) *Mapper {
	return &Mapper{
		Bounds:          bounds,
		InfluenceRadius: DefaultInfluenceRadius,
		Gain:            DefaultGain,
	}
}

// HitTest returns the index of the first ball whose center lies within
// its radius of p.
func (m *Mapper) HitTest(balls dynamo.Balls, p dynamo.Vec2) (int, bool) {
	return HitTest(balls, p)
}

func HitTest(balls dynamo.Balls, p dynamo.Vec2) (int, bool) {
	for i, b := range balls {
		dx := b.Pos.X - p.X
		dy := b.Pos.Y - p.Y
		if math.Sqrt(dx*dx+dy*dy) <= b.Radius {
			return i, true
		}
	}
	return -1, false
}

// Repel pushes balls near the pointer away from it. The kick is the raw
// pointer-to-center delta times Gain, with no falloff, so it does not
// weaken as the ball gets farther inside the influence radius. Every
// ball, touched or not, then gets the predictive wall check.
func (m *Mapper) Repel(balls dynamo.Balls, p dynamo.Vec2) {
	for i := range balls {
		b := &balls[i]
		dx := p.X - b.Pos.X
		dy := p.Y - b.Pos.Y
		if math.Sqrt(dx*dx+dy*dy) < m.InfluenceRadius {
			b.Vel.X -= dx * m.Gain
			b.Vel.Y -= dy * m.Gain
		}
		ContainPredicted(b, m.Bounds)
	}
}

// ContainPredicted flips a velocity component when the next move would put
// the center outside [radius, size-radius]. Unlike physics.Contain it looks
// ahead, does not damp, and runs only from pointer movement.
func ContainPredicted(b *dynamo.Ball, bounds dynamo.Bounds) {
	nx := b.Pos.X + b.Vel.X
	if nx < b.Radius || nx > bounds.Width-b.Radius {
		b.Vel.X = -b.Vel.X
	}
	ny := b.Pos.Y + b.Vel.Y
	if ny < b.Radius || ny > bounds.Height-b.Radius {
		b.Vel.Y = -b.Vel.Y
	}
}
