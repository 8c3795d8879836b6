package scene

import (
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
)

func TestDefault(t *testing.T) {
	balls := Default()
	if len(balls) != 3 {
		t.Fatalf("expected 3 balls, got %d", len(balls))
	}
	if balls[1].Pos != (dynamo.Vec2{X: 200, Y: 200}) || balls[1].Radius != 30 || balls[1].Color != dynamo.Blue {
		t.Errorf("unexpected second ball %+v", balls[1])
	}
	if err := balls.Validate(); err != nil {
		t.Error(err)
	}
}

func TestGenerate(t *testing.T) {
	spec := Spec{Count: 20, MinRadius: 8, MaxRadius: 16, MaxSpeed: 2, Seed: 42}
	bounds := dynamo.DefaultBounds()

	balls := Generate(spec, bounds)
	if len(balls) != 20 {
		t.Fatalf("expected 20 balls, got %d", len(balls))
	}
	if err := balls.Validate(); err != nil {
		t.Fatal(err)
	}
	if n := physics.OverlappingPairs(balls); n != 0 {
		t.Errorf("generated population overlaps: %d pairs", n)
	}
	for i, b := range balls {
		if b.Radius < 8 || b.Radius > 16 {
			t.Errorf("ball %d radius %v outside [8,16]", i, b.Radius)
		}
		if b.Speed() > 2+1e-9 {
			t.Errorf("ball %d speed %v above max", i, b.Speed())
		}
		if b.Pos.X-b.Radius < 0 || b.Pos.X+b.Radius > bounds.Width ||
			b.Pos.Y-b.Radius < 0 || b.Pos.Y+b.Radius > bounds.Height {
			t.Errorf("ball %d starts outside the surface", i)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	spec := Spec{Count: 10, MinRadius: 10, MaxRadius: 20, MaxSpeed: 1, Seed: 7}
	a := Generate(spec, dynamo.DefaultBounds())
	b := Generate(spec, dynamo.DefaultBounds())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("ball %d differs between runs", i)
		}
	}
}

func TestGenerate_Capacity(t *testing.T) {
	balls := Generate(Spec{Count: 1000, MinRadius: 50, MaxRadius: 50}, dynamo.Bounds{Width: 208, Height: 104})
	// cell = 102: 2 columns, 1 row.
	if len(balls) != 2 {
		t.Errorf("expected population capped at 2, got %d", len(balls))
	}
	if got := Generate(Spec{}, dynamo.DefaultBounds()); len(got) != 0 {
		t.Errorf("zero count should give no balls, got %d", len(got))
	}
}
