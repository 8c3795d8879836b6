package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/render"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, dynamo.Red)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Colors[0][0] != dynamo.Red {
		t.Errorf("expected red cell, got %q", c.Colors[0][0])
	}
	c.Set(3, 3, dynamo.Blue)
	if c.Grid[0][1] != 0x2800|0x80 {
		t.Errorf("expected dot 8 in second cell, got %U", c.Grid[0][1])
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("expected blank after unset, got %U", c.Grid[0][0])
	}
}

func TestCanvasOutOfRange(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0, dynamo.Red)
	c.Set(4, 0, dynamo.Red)
	c.Set(0, 8, dynamo.Red)
	c.Label(5, 5, 'x', dynamo.Red)
	if c.String() != strings.Repeat(string(rune(brailleBlank))+string(rune(brailleBlank))+"\n", 2) {
		t.Errorf("out of range writes changed the canvas:\n%s", c.String())
	}
}

func TestCanvasLabelBlocksDots(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Label(0, 0, '●', dynamo.Green)
	c.Set(0, 0, dynamo.Red)
	if c.Grid[0][0] != '●' || c.Colors[0][0] != dynamo.Green {
		t.Errorf("label overwritten: %q %q", c.Grid[0][0], c.Colors[0][0])
	}
	c.Clear()
	if c.Grid[0][0] != brailleBlank || c.Colors[0][0] != "" {
		t.Error("clear left the label")
	}
}

func TestCanvasRenderUncolored(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 0, "")
	if got := c.Render(ThemeMinimal); got != c.String() {
		t.Errorf("uncolored render differs from String:\n%q\n%q", got, c.String())
	}
}

func TestSurfaceSize(t *testing.T) {
	s := NewSurface(dynamo.DefaultBounds(), 24)
	if s.Canvas().Width != 64 || s.Canvas().Height != 24 {
		t.Errorf("expected 64x24 canvas, got %dx%d", s.Canvas().Width, s.Canvas().Height)
	}
	w, h := s.Size()
	if w != 800 || h != 600 {
		t.Errorf("expected surface size 800x600, got %vx%v", w, h)
	}
}

func TestSurfaceCellRoundTrip(t *testing.T) {
	s := NewSurface(dynamo.DefaultBounds(), 24)
	for _, cell := range [][2]int{{0, 0}, {8, 4}, {63, 23}, {31, 12}} {
		col, row := s.ToCell(s.ToSurface(cell[0], cell[1]))
		if col != cell[0] || row != cell[1] {
			t.Errorf("cell %v maps back to (%d,%d)", cell, col, row)
		}
	}
}

func TestSurfaceFrame(t *testing.T) {
	s := NewSurface(dynamo.DefaultBounds(), 24)
	balls := dynamo.Balls{{Pos: dynamo.Vec2{X: 400, Y: 300}, Radius: 20, Color: dynamo.Red}}
	if !render.Frame(s, balls) {
		t.Fatal("frame skipped")
	}
	c := s.Canvas()
	if c.Grid[12][32] == brailleBlank {
		t.Error("expected dots at the ball center")
	}
	if c.Colors[12][32] != dynamo.Red {
		t.Errorf("expected red at center, got %q", c.Colors[12][32])
	}
	if c.Grid[0][0] != brailleBlank {
		t.Error("expected corner to stay empty")
	}

	render.Frame(s, dynamo.Balls{})
	if c.Grid[12][32] != brailleBlank {
		t.Error("expected clear between frames")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("cyberpunk").Name; got != "retro" {
		t.Errorf("expected retro, got %s", got)
	}
	if got := NextTheme("sunset").Name; got != "cyberpunk" {
		t.Errorf("expected wrap to cyberpunk, got %s", got)
	}
	if got := GetTheme("missing").Name; got != "cyberpunk" {
		t.Errorf("expected fallback, got %s", got)
	}
	if ThemeMinimal.BallColor(dynamo.Blue) != ThemeMinimal.Blue {
		t.Error("blue not mapped")
	}
}
