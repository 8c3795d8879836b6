package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrNoSurface indicates the drawing surface is not available yet.
	ErrNoSurface = errors.New("dynamo: no drawing surface")

	// ErrInvalidRadius indicates a ball with a non-positive radius.
	ErrInvalidRadius = errors.New("dynamo: radius must be positive")

	// ErrInvalidBounds indicates a surface with a non-positive extent.
	ErrInvalidBounds = errors.New("dynamo: surface bounds must be positive")

	// ErrInvalidState indicates a ball whose position or velocity is NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid ball state (NaN or Inf detected)")

	// ErrIndexOutOfRange indicates a ball index outside the population.
	ErrIndexOutOfRange = errors.New("dynamo: ball index out of range")

	// ErrUnknownParam indicates a tunable parameter name that does not exist.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrStopped indicates the loop was torn down.
	ErrStopped = errors.New("dynamo: simulation loop stopped")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Tick    int
	Balls   Balls
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
