package dynamo

import (
	"fmt"
	"math"
)

const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Vec2 is a point or displacement in surface space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) Dist(o Vec2) float64 { return o.Sub(v).Len() }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Color is a cosmetic tag. Any CSS-like name is accepted; the palette
// offered for editing is fixed.
type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)

type Ball struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Color  Color
}

func (b Ball) Speed() float64 { return b.Vel.Len() }

// Overlaps reports whether the two circles intersect.
func (b Ball) Overlaps(o Ball) bool {
	return b.Pos.Dist(o.Pos) < b.Radius+o.Radius
}

// Balls is the ordered ball population of a session. Index is identity:
// selection and collision both address balls by position in the slice.
type Balls []Ball

func (bs Balls) Clone() Balls {
	c := make(Balls, len(bs))
	copy(c, bs)
	return c
}

func (bs Balls) Validate() error {
	for i, b := range bs {
		if !(b.Radius > 0) {
			return fmt.Errorf("ball %d: radius %v: %w", i, b.Radius, ErrInvalidRadius)
		}
	}
	return nil
}

func (bs Balls) IsValid() bool {
	for _, b := range bs {
		if !b.Pos.IsValid() || !b.Vel.IsValid() {
			return false
		}
	}
	return true
}

// Bounds is the drawable surface extent, captured once per session.
type Bounds struct {
	Width, Height float64
}

func DefaultBounds() Bounds {
	return Bounds{Width: DefaultWidth, Height: DefaultHeight}
}

// OrDefault substitutes the default size for an unset axis.
func (b Bounds) OrDefault() Bounds {
	if b.Width <= 0 {
		b.Width = DefaultWidth
	}
	if b.Height <= 0 {
		b.Height = DefaultHeight
	}
	return b
}

func (b Bounds) Validate() error {
	if !(b.Width > 0) || !(b.Height > 0) {
		return fmt.Errorf("%vx%v: %w", b.Width, b.Height, ErrInvalidBounds)
	}
	return nil
}

func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.Width && p.Y >= 0 && p.Y <= b.Height
}

// Configurable is implemented by tunables that can be edited by name at runtime.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Metric accumulates a scalar over the ticks of a session.
type Metric interface {
	Name() string
	Observe(balls Balls, tick int)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnStep(balls Balls, tick int)
}
