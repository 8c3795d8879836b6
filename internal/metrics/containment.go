package metrics

import (
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
)

// Containment is the fraction of ticks where every ball extent stayed
// inside the surface. Overshoot of a tick before a bounce counts as a miss.
type Containment struct {
	name       string
	bounds     dynamo.Bounds
	violations int
	samples    int
}

func NewContainment(bounds dynamo.Bounds) *Containment {
	return &Containment{
		name:   "containment",
		bounds: bounds,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(balls dynamo.Balls, tick int) {
	c.samples++
	for _, b := range balls {
		if b.Pos.X-b.Radius < 0 || b.Pos.X+b.Radius > c.bounds.Width ||
			b.Pos.Y-b.Radius < 0 || b.Pos.Y+b.Radius > c.bounds.Height {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Overlaps is the mean number of intersecting pairs per tick.
type Overlaps struct {
	name    string
	total   int
	samples int
}

func NewOverlaps() *Overlaps {
	return &Overlaps{name: "overlaps"}
}

func (o *Overlaps) Name() string { return o.name }

func (o *Overlaps) Observe(balls dynamo.Balls, tick int) {
	o.total += physics.OverlappingPairs(balls)
	o.samples++
}

func (o *Overlaps) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return float64(o.total) / float64(o.samples)
}

func (o *Overlaps) Reset() {
	o.total = 0
	o.samples = 0
}

// Defaults returns the metric set every session records.
func Defaults(bounds dynamo.Bounds) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(),
		NewEnergyDecay(),
		NewMaxSpeed(),
		NewContainment(bounds),
		NewOverlaps(),
	}
}
