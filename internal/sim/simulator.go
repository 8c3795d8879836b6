package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/input"
	"github.com/san-kum/ballsim/internal/metrics"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/render"
	"github.com/san-kum/ballsim/internal/selection"
)

type Options struct {
	Bounds dynamo.Bounds
	Balls  dynamo.Balls
	Tuning physics.Tuning
	Mapper *input.Mapper
	Logger *zap.Logger
}

// Session owns one ball population for its whole lifetime. It is not safe
// for concurrent use: hosts call it from a single goroutine, or through a
// Loop which serializes access for them.
type Session struct {
	balls     dynamo.Balls
	initial   dynamo.Balls
	bounds    dynamo.Bounds
	tuning    physics.Tuning
	mapper    *input.Mapper
	sel       *selection.Controller
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	tick      int
	log       *zap.Logger
}

func New(opts Options) (*Session, error) {
	bounds := opts.Bounds.OrDefault()
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Balls.Validate(); err != nil {
		return nil, err
	}

	mapper := opts.Mapper
	if mapper == nil {
		mapper = input.NewMapper(bounds)
	}
	mapper.Bounds = bounds

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Session{
		balls:     opts.Balls.Clone(),
		initial:   opts.Balls.Clone(),
		bounds:    bounds,
		tuning:    opts.Tuning,
		mapper:    mapper,
		sel:       selection.New(),
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       log,
	}
	log.Info("session started",
		zap.Int("balls", len(s.balls)),
		zap.Float64("width", bounds.Width),
		zap.Float64("height", bounds.Height))
	return s, nil
}

// NewFromConfig builds a session with the default metric set attached.
func NewFromConfig(cfg *config.Config, log *zap.Logger) (*Session, error) {
	s, err := New(Options{
		Bounds: cfg.Bounds(),
		Balls:  cfg.InitBalls(),
		Tuning: cfg.Tuning(),
		Mapper: cfg.Mapper(),
		Logger: log,
	})
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	for _, m := range metrics.Defaults(s.bounds) {
		s.AddMetric(m)
	}
	return s, nil
}

func (s *Session) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Balls returns the live population. Callers must not keep it across
// ticks or hand it to another goroutine; use Snapshot for that.
func (s *Session) Balls() dynamo.Balls    { return s.balls }
func (s *Session) Snapshot() dynamo.Balls { return s.balls.Clone() }
func (s *Session) Bounds() dynamo.Bounds  { return s.bounds }
func (s *Session) Tick() int              { return s.tick }

// Tuning is returned by pointer so hosts can edit it through SetParam.
func (s *Session) Tuning() *physics.Tuning { return &s.tuning }

// Frame runs one physics tick and paints the result. Without a surface
// the whole frame is skipped, physics included.
func (s *Session) Frame(surface render.Surface) bool {
	if surface == nil {
		s.log.Debug("frame skipped, no surface", zap.Int("tick", s.tick))
		return false
	}
	s.step()
	render.Frame(surface, s.balls)
	return true
}

// Advance runs n ticks with no rendering.
func (s *Session) Advance(n int) error {
	for i := 0; i < n; i++ {
		s.step()
		if !s.balls.IsValid() {
			return &dynamo.SimulationError{Tick: s.tick, Balls: s.Snapshot(), Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}

func (s *Session) step() {
	physics.Step(s.balls, s.bounds, s.tuning)
	s.tick++
	for _, m := range s.metrics {
		m.Observe(s.balls, s.tick)
	}
	for _, o := range s.observers {
		o.OnStep(s.balls, s.tick)
	}
}

// PointerDown selects the first ball under p and anchors the color menu
// there. It reports whether a ball was hit.
func (s *Session) PointerDown(p dynamo.Vec2) bool {
	i, ok := s.mapper.HitTest(s.balls, p)
	if !ok {
		return false
	}
	s.sel.Select(i, p)
	s.log.Debug("ball selected", zap.Int("index", i), zap.Float64("x", p.X), zap.Float64("y", p.Y))
	return true
}

func (s *Session) PointerMove(p dynamo.Vec2) {
	s.mapper.Repel(s.balls, p)
}

func (s *Session) CommitColor(c dynamo.Color) bool {
	i, _ := s.sel.Selected()
	if !s.sel.Commit(s.balls, c) {
		return false
	}
	s.log.Info("color committed", zap.Int("index", i), zap.String("color", string(c)))
	return true
}

func (s *Session) Dismiss() { s.sel.Dismiss() }

func (s *Session) Selected() (int, bool) { return s.sel.Selected() }

func (s *Session) Overlay() (selection.Overlay, bool) { return s.sel.Overlay() }

// Reset restores the starting population and clears metrics.
func (s *Session) Reset() {
	copy(s.balls, s.initial)
	s.tick = 0
	s.sel.Dismiss()
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Session) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
