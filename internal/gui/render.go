package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Table palette.
var (
	colFelt      = rl.NewColor(14, 46, 34, 255)
	colTrace     = rl.NewColor(196, 220, 200, 255)
	colHighlight = rl.NewColor(250, 250, 240, 255)
	colText      = rl.NewColor(168, 190, 174, 255)
	colDim       = rl.NewColor(72, 104, 86, 255)
)

var ballColors = map[dynamo.Color]rl.Color{
	dynamo.Red:   rl.NewColor(230, 57, 70, 255),
	dynamo.Green: rl.NewColor(82, 183, 136, 255),
	dynamo.Blue:  rl.NewColor(69, 123, 157, 255),
}

// BallColor maps a ball color to its window color. Unknown names draw grey.
func BallColor(c dynamo.Color) rl.Color {
	if col, ok := ballColors[c]; ok {
		return col
	}
	return rl.Gray
}

// Surface draws into the current raylib frame. The window is sized to the
// session bounds, so surface space is window pixels. Calls are only valid
// between BeginDrawing and EndDrawing.
type Surface struct {
	width, height float64
}

func NewSurface(bounds dynamo.Bounds) *Surface {
	return &Surface{width: bounds.Width, height: bounds.Height}
}

func (s *Surface) Size() (float64, float64) { return s.width, s.height }

func (s *Surface) Clear() { rl.ClearBackground(colFelt) }

func (s *Surface) FillCircle(center dynamo.Vec2, radius float64, color dynamo.Color) {
	rl.DrawCircleV(vec(center), float32(radius), BallColor(color))
}

func vec(p dynamo.Vec2) rl.Vector2 { return rl.NewVector2(float32(p.X), float32(p.Y)) }
