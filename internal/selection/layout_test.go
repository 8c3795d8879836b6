package selection

import (
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
)

func TestLayout(t *testing.T) {
	c := New()
	c.Select(0, dynamo.Vec2{X: 100, Y: 50})
	ov, _ := c.Overlay()

	buttons := ov.Layout(60, 24, dynamo.DefaultBounds())
	if len(buttons) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(buttons))
	}
	for i, b := range buttons {
		if b.X != 100+float64(i)*60 || b.Y != 50 {
			t.Errorf("button %d at (%v,%v)", i, b.X, b.Y)
		}
		if b.Color != Palette[i] {
			t.Errorf("button %d is %s, want %s", i, b.Color, Palette[i])
		}
	}
}

func TestLayout_ClampsToBounds(t *testing.T) {
	ov := Overlay{Anchor: dynamo.Vec2{X: 790, Y: 595}, Colors: Palette}
	buttons := ov.Layout(60, 24, dynamo.DefaultBounds())
	last := buttons[len(buttons)-1]
	if last.X+last.W != 800 {
		t.Errorf("expected row to end at 800, got %v", last.X+last.W)
	}
	if last.Y+last.H != 600 {
		t.Errorf("expected row bottom at 600, got %v", last.Y+last.H)
	}
}

func TestHitButton(t *testing.T) {
	ov := Overlay{Anchor: dynamo.Vec2{X: 0, Y: 0}, Colors: Palette}
	buttons := ov.Layout(60, 24, dynamo.DefaultBounds())

	tests := []struct {
		p    dynamo.Vec2
		want dynamo.Color
		hit  bool
	}{
		{dynamo.Vec2{X: 10, Y: 10}, dynamo.Red, true},
		{dynamo.Vec2{X: 90, Y: 10}, dynamo.Green, true},
		{dynamo.Vec2{X: 170, Y: 20}, dynamo.Blue, true},
		{dynamo.Vec2{X: 190, Y: 10}, "", false},
		{dynamo.Vec2{X: 10, Y: 30}, "", false},
	}
	for _, tt := range tests {
		got, ok := HitButton(buttons, tt.p)
		if ok != tt.hit || got != tt.want {
			t.Errorf("HitButton(%v) = %q %v, want %q %v", tt.p, got, ok, tt.want, tt.hit)
		}
	}
}
