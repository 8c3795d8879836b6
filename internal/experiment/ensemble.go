package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/storage"
)

// Ensemble runs the same experiment over consecutive scene seeds, one
// goroutine per run. Each run owns its own session.
type Ensemble struct {
	base      Config
	numRuns   int
	seedStart int64
	log       *zap.Logger
}

func NewEnsemble(base Config, numRuns int, seedStart int64, log *zap.Logger) *Ensemble {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart, log: log}
}

// Run returns the runs in seed order. The first failure cancels the
// remaining runs and is returned.
func (e *Ensemble) Run(ctx context.Context) ([]*storage.Run, error) {
	results := make([]*storage.Run, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			simCfg := config.DefaultConfig()
			if e.base.Sim != nil {
				c := *e.base.Sim
				simCfg = &c
			}
			simCfg.Scene.Seed = e.seedStart + int64(i)

			cfg := e.base
			cfg.Sim = simCfg
			cfg.Name = fmt.Sprintf("%s_seed%d", e.base.Name, simCfg.Scene.Seed)

			exp := New(cfg, e.log)
			if err := exp.Setup(); err != nil {
				return fmt.Errorf("%s: %w", cfg.Name, err)
			}
			run, err := exp.Run(ctx)
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.Name, err)
			}
			results[i] = run
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
