package selection

import "github.com/san-kum/ballsim/internal/dynamo"

// Button is one color entry of the menu, in surface space.
type Button struct {
	X, Y, W, H float64
	Color      dynamo.Color
}

func (b Button) Contains(p dynamo.Vec2) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Layout places the menu as a row of w×h buttons whose top-left corner is
// the anchor. The row is shifted back inside bounds when it would spill.
func (o Overlay) Layout(w, h float64, bounds dynamo.Bounds) []Button {
	total := w * float64(len(o.Colors))
	x, y := o.Anchor.X, o.Anchor.Y
	if x+total > bounds.Width {
		x = bounds.Width - total
	}
	if y+h > bounds.Height {
		y = bounds.Height - h
	}
	x, y = max(x, 0), max(y, 0)

	buttons := make([]Button, len(o.Colors))
	for i, c := range o.Colors {
		buttons[i] = Button{X: x + float64(i)*w, Y: y, W: w, H: h, Color: c}
	}
	return buttons
}

// HitButton returns the color of the first button containing p.
func HitButton(buttons []Button, p dynamo.Vec2) (dynamo.Color, bool) {
	for _, b := range buttons {
		if b.Contains(p) {
			return b.Color, true
		}
	}
	return "", false
}
