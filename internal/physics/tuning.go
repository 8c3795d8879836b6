package physics

import (
	"fmt"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// Tuning holds the fixed coefficients of the step. The zero value is not
// useful; start from DefaultTuning.
type Tuning struct {
	// Restitution scales the inverted velocity component on a wall bounce.
	Restitution float64
	// Stiffness scales the overlap correction fed back into velocity.
	Stiffness float64
	// Damping multiplies velocity once per overlapping partner.
	Damping float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Restitution: 0.9,
		Stiffness:   0.1,
		Damping:     0.9,
	}
}

func (t *Tuning) GetParams() map[string]float64 {
	return map[string]float64{
		"restitution": t.Restitution,
		"stiffness":   t.Stiffness,
		"damping":     t.Damping,
	}
}

func (t *Tuning) SetParam(name string, value float64) error {
	switch name {
	case "restitution":
		t.Restitution = value
	case "stiffness":
		t.Stiffness = value
	case "damping":
		t.Damping = value
	default:
		return fmt.Errorf("%s: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}

var _ dynamo.Configurable = (*Tuning)(nil)
