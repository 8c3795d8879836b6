// Package render paints a ball population onto a drawing surface.
package render

import "github.com/san-kum/ballsim/internal/dynamo"

// Surface is the minimal drawing context a host provides. Coordinates are
// surface space, the same space the physics runs in.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillCircle(center dynamo.Vec2, radius float64, color dynamo.Color)
}

// Frame clears s and draws every ball as a filled circle. A nil surface is
// a skipped frame, not an error. Balls are only read.
func Frame(s Surface, balls dynamo.Balls) bool {
	if s == nil {
		return false
	}
	s.Clear()
	for _, b := range balls {
		s.FillCircle(b.Pos, b.Radius, b.Color)
	}
	return true
}

// Recorder is a Surface that keeps the draw calls of the last frame.
type Recorder struct {
	Width, Height float64
	Clears        int
	Circles       []Circle
}

type Circle struct {
	Center dynamo.Vec2
	Radius float64
	Color  dynamo.Color
}

func NewRecorder(bounds dynamo.Bounds) *Recorder {
	return &Recorder{Width: bounds.Width, Height: bounds.Height}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Clears++
	r.Circles = r.Circles[:0]
}

func (r *Recorder) FillCircle(center dynamo.Vec2, radius float64, color dynamo.Color) {
	r.Circles = append(r.Circles, Circle{Center: center, Radius: radius, Color: color})
}
