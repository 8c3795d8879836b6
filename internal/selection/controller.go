// Package selection tracks which ball the color menu is editing.
package selection

import (
	"github.com/san-kum/ballsim/internal/dynamo"
)

// Palette is the fixed set of colors the menu offers.
var Palette = []dynamo.Color{dynamo.Red, dynamo.Green, dynamo.Blue}

// Overlay is what a host needs to draw the color menu.
type Overlay struct {
	Anchor dynamo.Vec2
	Colors []dynamo.Color
}

// Controller holds at most one selected ball index. The zero value has
// nothing selected.
type Controller struct {
	index    int
	selected bool
	anchor   dynamo.Vec2
}

func New() *Controller {
	return &Controller{}
}

// Select marks index as selected and anchors the menu at the press point.
// A new selection replaces the previous one.
func (c *Controller) Select(index int, anchor dynamo.Vec2) {
	c.index = index
	c.selected = true
	c.anchor = anchor
}

func (c *Controller) Selected() (int, bool) {
	if !c.selected {
		return -1, false
	}
	return c.index, true
}

func (c *Controller) Overlay() (Overlay, bool) {
	if !c.selected {
		return Overlay{}, false
	}
	colors := make([]dynamo.Color, len(Palette))
	copy(colors, Palette)
	return Overlay{Anchor: c.anchor, Colors: colors}, true
}

// Commit recolors the selected ball and closes the menu. It reports
// whether a color was applied.
func (c *Controller) Commit(balls dynamo.Balls, color dynamo.Color) bool {
	if !c.selected {
		return false
	}
	defer c.Dismiss()
	if c.index < 0 || c.index >= len(balls) {
		return false
	}
	balls[c.index].Color = color
	return true
}

// Dismiss closes the menu without changing any color.
func (c *Controller) Dismiss() {
	c.selected = false
	c.index = -1
}

// PaletteIndex returns the palette slot for a 1-based menu key.
func PaletteIndex(n int) (dynamo.Color, bool) {
	if n < 1 || n > len(Palette) {
		return "", false
	}
	return Palette[n-1], true
}
