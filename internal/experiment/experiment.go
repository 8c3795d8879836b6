package experiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/storage"
)

// ctx is checked between chunks of this many ticks.
const chunk = 100

type Config struct {
	Name  string
	Ticks int
	Every int // record a frame every Every ticks, 0 for final frame only
	Sim   *config.Config
}

// Experiment is one headless run of a configured session.
type Experiment struct {
	cfg      Config
	session  *sim.Session
	recorder *storage.FrameRecorder
	log      *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Experiment {
	if log == nil {
		log = zap.NewNop()
	}
	return &Experiment{cfg: cfg, log: log}
}

func (e *Experiment) Setup() error {
	if e.cfg.Ticks < 0 {
		return fmt.Errorf("negative tick count %d", e.cfg.Ticks)
	}
	simCfg := e.cfg.Sim
	if simCfg == nil {
		simCfg = config.DefaultConfig()
	}
	s, err := sim.NewFromConfig(simCfg, e.log)
	if err != nil {
		return err
	}
	every := e.cfg.Every
	if every <= 0 {
		every = max(e.cfg.Ticks, 1)
	}
	e.recorder = storage.NewFrameRecorder(every)
	s.AddObserver(e.recorder)
	e.session = s
	return nil
}

// Run advances the session and returns the recorded run. The starting
// population is always the first frame.
func (e *Experiment) Run(ctx context.Context) (*storage.Run, error) {
	if e.session == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	s := e.session
	frames := []storage.Frame{{Tick: s.Tick(), Balls: s.Snapshot()}}

	for done := 0; done < e.cfg.Ticks; {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		n := min(chunk, e.cfg.Ticks-done)
		if err := s.Advance(n); err != nil {
			return nil, fmt.Errorf("%s: %w", e.cfg.Name, err)
		}
		done += n
	}
	frames = append(frames, e.recorder.Frames...)

	e.log.Info("experiment finished",
		zap.String("name", e.cfg.Name),
		zap.Int("ticks", s.Tick()),
		zap.Int("frames", len(frames)))

	return &storage.Run{
		Name:    e.cfg.Name,
		Bounds:  s.Bounds(),
		Tuning:  s.Tuning().GetParams(),
		Ticks:   s.Tick(),
		Frames:  frames,
		Metrics: s.Metrics(),
	}, nil
}

// Session returns the underlying session for adding observers.
func (e *Experiment) Session() *sim.Session {
	return e.session
}
