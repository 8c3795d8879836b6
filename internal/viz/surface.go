package viz

import (
	"math"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Surface paints balls onto a Canvas. Surface space is scaled uniformly so
// circles stay round, braille dots being roughly square.
type Surface struct {
	canvas *Canvas
	bounds dynamo.Bounds
	scale  float64
}

// NewSurface sizes a canvas of the given row count to fit bounds.
func NewSurface(bounds dynamo.Bounds, rows int) *Surface {
	bounds = bounds.OrDefault()
	if rows < 1 {
		rows = 1
	}
	scale := float64(rows*4) / bounds.Height
	cols := int(math.Ceil(bounds.Width * float64(rows*4) / bounds.Height / 2))
	if cols < 1 {
		cols = 1
	}
	return &Surface{
		canvas: NewCanvas(cols, rows),
		bounds: bounds,
		scale:  scale,
	}
}

func (s *Surface) Canvas() *Canvas { return s.canvas }

func (s *Surface) Size() (float64, float64) { return s.bounds.Width, s.bounds.Height }

func (s *Surface) Clear() { s.canvas.Clear() }

func (s *Surface) FillCircle(center dynamo.Vec2, radius float64, color dynamo.Color) {
	s.canvas.FillDisc(center.X*s.scale, center.Y*s.scale, radius*s.scale, color)
}

// ToSurface maps a canvas cell to the surface point at its center.
func (s *Surface) ToSurface(col, row int) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (float64(col)*2 + 1) / s.scale,
		Y: (float64(row)*4 + 2) / s.scale,
	}
}

// ToCell maps a surface point to the canvas cell containing it.
func (s *Surface) ToCell(p dynamo.Vec2) (col, row int) {
	return int(math.Floor(p.X * s.scale / 2)), int(math.Floor(p.Y * s.scale / 4))
}
