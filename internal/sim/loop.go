package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/render"
)

type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventCommit
	EventDismiss
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "down"
	case EventPointerMove:
		return "move"
	case EventCommit:
		return "commit"
	case EventDismiss:
		return "dismiss"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a pointer or menu action in surface-local coordinates.
type Event struct {
	Kind  EventKind
	Pos   dynamo.Vec2
	Color dynamo.Color
}

// Apply feeds ev to the session.
func (s *Session) Apply(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		s.PointerDown(ev.Pos)
	case EventPointerMove:
		s.PointerMove(ev.Pos)
	case EventCommit:
		s.CommitColor(ev.Color)
	case EventDismiss:
		s.Dismiss()
	}
}

// Loop drives a session from one goroutine. Frames come from a ticker and
// input arrives over a channel, so physics, input and rendering never run
// at the same time and the ball slice needs no lock.
type Loop struct {
	session *Session
	fps     int
	calls   chan func(*Session)
	done    chan struct{}
	log     *zap.Logger
}

func NewLoop(s *Session, fps int) *Loop {
	if fps <= 0 {
		fps = 60
	}
	return &Loop{
		session: s,
		fps:     fps,
		calls:   make(chan func(*Session)),
		done:    make(chan struct{}),
		log:     s.log,
	}
}

// Run ticks until ctx is done. A missing surface prevents the loop from
// starting at all. Run is called at most once; after it returns, Do and
// Post fail with ErrStopped.
func (l *Loop) Run(ctx context.Context, surface render.Surface) error {
	if surface == nil {
		return dynamo.ErrNoSurface
	}
	defer close(l.done)

	if w, h := surface.Size(); w != l.session.bounds.Width || h != l.session.bounds.Height {
		l.log.Warn("surface size differs from session bounds",
			zap.Float64("surface_width", w), zap.Float64("surface_height", h),
			zap.Float64("width", l.session.bounds.Width), zap.Float64("height", l.session.bounds.Height))
	}

	ticker := time.NewTicker(time.Second / time.Duration(l.fps))
	defer ticker.Stop()

	l.log.Info("loop started", zap.Int("fps", l.fps))
	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", zap.Int("tick", l.session.tick))
			return fmt.Errorf("%w: %w", dynamo.ErrStopped, ctx.Err())
		case fn := <-l.calls:
			fn(l.session)
		case <-ticker.C:
			l.session.Frame(surface)
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func(*Session)) error {
	done := make(chan struct{})
	wrapped := func(s *Session) {
		defer close(done)
		fn(s)
	}
	select {
	case l.calls <- wrapped:
	case <-l.done:
		return dynamo.ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-l.done:
		// Run finishes a received call before it can return.
		select {
		case <-done:
			return nil
		default:
			return dynamo.ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post delivers an input event to the loop.
func (l *Loop) Post(ctx context.Context, ev Event) error {
	return l.Do(ctx, func(s *Session) { s.Apply(ev) })
}

// Snapshot copies the population on the loop goroutine.
func (l *Loop) Snapshot(ctx context.Context) (dynamo.Balls, error) {
	var out dynamo.Balls
	err := l.Do(ctx, func(s *Session) { out = s.Snapshot() })
	return out, err
}
