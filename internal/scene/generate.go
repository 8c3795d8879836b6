// Package scene builds initial ball populations.
package scene

import (
	"math"

	perlin "github.com/aquilax/go-perlin"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
	noiseScale = 0.01
)

// Spec describes a generated population.
type Spec struct {
	Count     int     `yaml:"count"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	MaxSpeed  float64 `yaml:"max_speed"`
	Seed      int64   `yaml:"seed"`
}

// Default returns the three balls of the classic table.
func Default() dynamo.Balls {
	return dynamo.Balls{
		{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 0.5, Y: 0.5}, Radius: 20, Color: dynamo.Red},
		{Pos: dynamo.Vec2{X: 200, Y: 200}, Vel: dynamo.Vec2{X: 0.3, Y: -0.3}, Radius: 30, Color: dynamo.Blue},
		{Pos: dynamo.Vec2{X: 300, Y: 300}, Vel: dynamo.Vec2{X: -0.2, Y: 0.2}, Radius: 25, Color: dynamo.Green},
	}
}

// Generate lays spec.Count balls on a grid of non-overlapping cells and
// draws their velocities from a perlin flow field. The same spec and
// bounds always give the same population. Balls that do not fit the
// surface are dropped.
func Generate(spec Spec, bounds dynamo.Bounds) dynamo.Balls {
	if spec.Count <= 0 {
		return dynamo.Balls{}
	}
	minR, maxR := spec.MinRadius, spec.MaxRadius
	if minR <= 0 {
		minR = 10
	}
	if maxR < minR {
		maxR = minR
	}

	cell := 2*maxR + 2
	cols := int(bounds.Width / cell)
	rows := int(bounds.Height / cell)
	if cols <= 0 || rows <= 0 {
		return dynamo.Balls{}
	}

	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, spec.Seed)
	palette := []dynamo.Color{dynamo.Red, dynamo.Green, dynamo.Blue}

	n := spec.Count
	if n > cols*rows {
		n = cols * rows
	}
	balls := make(dynamo.Balls, 0, n)
	for i := 0; i < n; i++ {
		cx := (float64(i%cols) + 0.5) * cell
		cy := (float64(i/cols) + 0.5) * cell

		// Map noise in [-1,1] to a heading and a size.
		heading := noise.Noise2D(cx*noiseScale, cy*noiseScale) * 2 * math.Pi
		size := (noise.Noise2D(cy*noiseScale+100, cx*noiseScale+100) + 1) / 2

		radius := minR + clamp01(size)*(maxR-minR)
		speed := spec.MaxSpeed * clamp01(size)
		balls = append(balls, dynamo.Ball{
			Pos:    dynamo.Vec2{X: cx, Y: cy},
			Vel:    dynamo.Vec2{X: math.Cos(heading) * speed, Y: math.Sin(heading) * speed},
			Radius: radius,
			Color:  palette[i%len(palette)],
		})
	}
	return balls
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
