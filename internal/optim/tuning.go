package optim

import (
	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/experiment"
)

// TuningExperiments returns a builder that runs base for ticks with the
// grid point's values applied to the physics tuning.
func TuningExperiments(base *config.Config, name string, ticks int, log *zap.Logger) Builder {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		tn := cfg.Tuning()
		for k, v := range params {
			if err := tn.SetParam(k, v); err != nil {
				return nil, err
			}
		}
		cfg.Physics = config.PhysicsConfig{
			Restitution: tn.Restitution,
			Stiffness:   tn.Stiffness,
			Damping:     tn.Damping,
		}
		e := experiment.New(experiment.Config{Name: name, Ticks: ticks, Sim: &cfg}, log)
		if err := e.Setup(); err != nil {
			return nil, err
		}
		return e, nil
	}
}
