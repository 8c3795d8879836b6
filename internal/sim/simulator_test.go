package sim

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/render"
	"github.com/san-kum/ballsim/internal/scene"
)

func newTestSession(t *testing.T, balls dynamo.Balls) *Session {
	t.Helper()
	s, err := New(Options{
		Bounds: dynamo.DefaultBounds(),
		Balls:  balls,
		Tuning: physics.DefaultTuning(),
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Options{Balls: dynamo.Balls{{Radius: -1}}})
	if !errors.Is(err, dynamo.ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius, got %v", err)
	}
}

func TestNew_DefaultBounds(t *testing.T) {
	s, err := New(Options{Balls: scene.Default(), Tuning: physics.DefaultTuning()})
	if err != nil {
		t.Fatal(err)
	}
	if s.Bounds() != dynamo.DefaultBounds() {
		t.Errorf("expected 800x600, got %v", s.Bounds())
	}
}

func TestNew_CopiesInput(t *testing.T) {
	balls := scene.Default()
	s := newTestSession(t, balls)
	balls[0].Color = "purple"
	if s.Balls()[0].Color != dynamo.Red {
		t.Error("session shares the caller's slice")
	}
}

func TestFrame(t *testing.T) {
	s := newTestSession(t, scene.Default())
	rec := render.NewRecorder(s.Bounds())

	if !s.Frame(rec) {
		t.Fatal("frame skipped")
	}
	if s.Tick() != 1 {
		t.Errorf("expected tick 1, got %d", s.Tick())
	}
	if len(rec.Circles) != 3 {
		t.Fatalf("expected 3 circles, got %d", len(rec.Circles))
	}
	// Rendered after physics: first ball has moved by its velocity.
	if rec.Circles[0].Center != (dynamo.Vec2{X: 100.5, Y: 100.5}) {
		t.Errorf("expected advanced position, got %v", rec.Circles[0].Center)
	}
}

func TestFrame_NoSurfaceSkips(t *testing.T) {
	s := newTestSession(t, scene.Default())
	before := s.Snapshot()

	if s.Frame(nil) {
		t.Error("frame without surface should report skipped")
	}
	if s.Tick() != 0 {
		t.Errorf("tick advanced to %d on a skipped frame", s.Tick())
	}
	for i, b := range s.Balls() {
		if b != before[i] {
			t.Errorf("ball %d changed on a skipped frame", i)
		}
	}
}

func TestEndToEnd_Containment(t *testing.T) {
	cfg := config.DefaultConfig()
	s, err := NewFromConfig(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	rec := render.NewRecorder(s.Bounds())

	for tick := 0; tick < 3000; tick++ {
		s.Frame(rec)
		for i, b := range s.Balls() {
			if b.Pos.X < 0 || b.Pos.X > 800 || b.Pos.Y < 0 || b.Pos.Y > 600 {
				t.Fatalf("tick %d: ball %d left the surface at %v", tick, i, b.Pos)
			}
		}
	}

	m := s.Metrics()
	for _, name := range []string{"energy", "max_speed", "containment", "overlaps", "energy_decay"} {
		if _, ok := m[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
	if m["containment"] <= 0 {
		t.Errorf("containment ratio should be positive, got %f", m["containment"])
	}
}

func TestNoDriftWithDistantPointer(t *testing.T) {
	cfg, err := config.GetPreset("calm")
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewFromConfig(cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	before := s.Snapshot()

	for i := 0; i < 200; i++ {
		s.PointerMove(dynamo.Vec2{X: 790, Y: 590})
		if err := s.Advance(1); err != nil {
			t.Fatal(err)
		}
	}
	for i, b := range s.Balls() {
		if b.Pos != before[i].Pos {
			t.Errorf("ball %d drifted from %v to %v", i, before[i].Pos, b.Pos)
		}
	}
}

func TestPointerDownAndCommit(t *testing.T) {
	s := newTestSession(t, scene.Default())

	if s.PointerDown(dynamo.Vec2{X: 700, Y: 500}) {
		t.Error("miss reported as hit")
	}
	if s.CommitColor(dynamo.Green) {
		t.Error("commit without selection should fail")
	}
	for i, b := range scene.Default() {
		if s.Balls()[i].Color != b.Color {
			t.Errorf("ball %d recolored without selection", i)
		}
	}

	if !s.PointerDown(dynamo.Vec2{X: 200, Y: 200}) {
		t.Fatal("center press did not select")
	}
	ov, ok := s.Overlay()
	if !ok || ov.Anchor != (dynamo.Vec2{X: 200, Y: 200}) {
		t.Errorf("unexpected overlay %+v %v", ov, ok)
	}
	if !s.CommitColor(dynamo.Green) {
		t.Fatal("commit failed")
	}
	if s.Balls()[1].Color != dynamo.Green {
		t.Errorf("expected green, got %s", s.Balls()[1].Color)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection not cleared")
	}
}

func TestPointerMove_Repels(t *testing.T) {
	s := newTestSession(t, dynamo.Balls{{Pos: dynamo.Vec2{X: 400, Y: 300}, Radius: 20}})
	s.PointerMove(dynamo.Vec2{X: 450, Y: 300})

	if v := s.Balls()[0].Vel; math.Abs(v.X+0.15) > 1e-12 || v.Y != 0 {
		t.Errorf("expected vel (-0.15, 0), got %v", v)
	}
}

func TestApply(t *testing.T) {
	s := newTestSession(t, scene.Default())

	s.Apply(Event{Kind: EventPointerDown, Pos: dynamo.Vec2{X: 300, Y: 300}})
	if i, ok := s.Selected(); !ok || i != 2 {
		t.Fatalf("expected ball 2 selected, got %d %v", i, ok)
	}
	s.Apply(Event{Kind: EventDismiss})
	if _, ok := s.Selected(); ok {
		t.Error("dismiss did not clear selection")
	}
	s.Apply(Event{Kind: EventPointerDown, Pos: dynamo.Vec2{X: 100, Y: 100}})
	s.Apply(Event{Kind: EventCommit, Color: dynamo.Blue})
	if s.Balls()[0].Color != dynamo.Blue {
		t.Errorf("expected blue, got %s", s.Balls()[0].Color)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t, scene.Default())
	s.AddMetric(newCountMetric())
	if err := s.Advance(50); err != nil {
		t.Fatal(err)
	}
	s.PointerDown(dynamo.Vec2{X: 300, Y: 300})

	s.Reset()

	if s.Tick() != 0 {
		t.Errorf("tick not reset: %d", s.Tick())
	}
	for i, b := range scene.Default() {
		if s.Balls()[i] != b {
			t.Errorf("ball %d not restored", i)
		}
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection survived reset")
	}
	if s.Metrics()["count"] != 0 {
		t.Error("metrics not reset")
	}
}

func TestAdvance_InvalidState(t *testing.T) {
	s := newTestSession(t, dynamo.Balls{{Pos: dynamo.Vec2{X: 400, Y: 300}, Vel: dynamo.Vec2{X: math.NaN()}, Radius: 10}})

	err := s.Advance(3)
	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if simErr.Tick != 1 || !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("unexpected error %+v", simErr)
	}
}

type countMetric struct{ n int }

func newCountMetric() *countMetric { return &countMetric{} }

func (c *countMetric) Name() string                      { return "count" }
func (c *countMetric) Observe(balls dynamo.Balls, _ int) { c.n++ }
func (c *countMetric) Value() float64                    { return float64(c.n) }
func (c *countMetric) Reset()                            { c.n = 0 }

type tickObserver struct{ ticks []int }

func (o *tickObserver) OnStep(balls dynamo.Balls, tick int) { o.ticks = append(o.ticks, tick) }

func TestObserversAndMetrics(t *testing.T) {
	s := newTestSession(t, scene.Default())
	m := newCountMetric()
	o := &tickObserver{}
	s.AddMetric(m)
	s.AddObserver(o)

	if err := s.Advance(10); err != nil {
		t.Fatal(err)
	}
	if m.n != 10 {
		t.Errorf("expected 10 observations, got %d", m.n)
	}
	if len(o.ticks) != 10 || o.ticks[0] != 1 || o.ticks[9] != 10 {
		t.Errorf("unexpected observer ticks %v", o.ticks)
	}
}
