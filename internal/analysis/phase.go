package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/ballsim/internal/storage"
)

// Field selects one scalar of a ball per frame.
type Field string

const (
	FieldX     Field = "x"
	FieldY     Field = "y"
	FieldVX    Field = "vx"
	FieldVY    Field = "vy"
	FieldSpeed Field = "speed"
)

// Series extracts field of one ball across frames.
func Series(frames []storage.Frame, ball int, field Field) ([]float64, error) {
	out := make([]float64, 0, len(frames))
	for _, fr := range frames {
		if ball < 0 || ball >= len(fr.Balls) {
			return nil, fmt.Errorf("ball %d at tick %d: out of range", ball, fr.Tick)
		}
		b := fr.Balls[ball]
		switch field {
		case FieldX:
			out = append(out, b.Pos.X)
		case FieldY:
			out = append(out, b.Pos.Y)
		case FieldVX:
			out = append(out, b.Vel.X)
		case FieldVY:
			out = append(out, b.Vel.Y)
		case FieldSpeed:
			out = append(out, b.Speed())
		default:
			return nil, fmt.Errorf("unknown field %q", field)
		}
	}
	return out, nil
}

type Point struct{ X, Y float64 }

// PhasePortrait2D is a set of points in a plane spanned by two fields.
// With ScreenY the vertical axis grows downwards, as surface space does.
type PhasePortrait2D struct {
	XField, YField Field
	ScreenY        bool
	Points         []Point
}

// BallPortrait builds the portrait of one ball in the xField/yField plane.
// The x/y pair is drawn in screen orientation.
func BallPortrait(frames []storage.Frame, ball int, xField, yField Field) (*PhasePortrait2D, error) {
	xs, err := Series(frames, ball, xField)
	if err != nil {
		return nil, err
	}
	ys, err := Series(frames, ball, yField)
	if err != nil {
		return nil, err
	}
	p := &PhasePortrait2D{
		XField:  xField,
		YField:  yField,
		ScreenY: xField == FieldX && yField == FieldY,
		Points:  make([]Point, len(xs)),
	}
	for i := range xs {
		p.Points[i] = Point{X: xs[i], Y: ys[i]}
	}
	return p, nil
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	row := func(y float64) int {
		r := int((y - minY) / rangeY * float64(height-1))
		if portrait.ScreenY {
			return r
		}
		return height - 1 - r
	}
	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			canvas[r][c] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := 0; r < height; r++ {
			if c >= 0 && c < width && canvas[r][c] == ' ' {
				canvas[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := 0; c < width; c++ {
			if r >= 0 && r < height && canvas[r][c] == ' ' {
				canvas[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range canvas {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
