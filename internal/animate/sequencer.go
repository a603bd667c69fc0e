// Package animate replays a finished search as timed frames.
//
// A replay has two phases: the visitation replay reveals SearchResult.Steps
// one node at a time, then the path replay highlights the edges of
// SearchResult.Path one at a time. A Sequencer runs at most one replay;
// starting a new one cancels the one in flight.
package animate

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"searchviz/internal/model"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the default Sleeper, backed by a timer.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Hooks observe a Sequencer. Nil hooks are skipped.
type Hooks struct {
	// OnFrame is called after a frame was rendered.
	OnFrame func(frame model.Frame)
	// OnFinish is called once per run with its terminal state.
	OnFinish func(id uuid.UUID, state State)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithPacing overrides DefaultPacing.
func WithPacing(p Pacing) Option {
	return func(s *Sequencer) { s.pacing = p }
}

// WithSleeper replaces the timer-based Sleep, mostly for tests.
func WithSleeper(fn Sleeper) Option {
	return func(s *Sequencer) {
		if fn != nil {
			s.sleep = fn
		}
	}
}

// WithLogger sets the logger for run lifecycle events.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Sequencer) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHooks registers frame and finish callbacks.
func WithHooks(h Hooks) Option {
	return func(s *Sequencer) { s.hooks = h }
}

// Sequencer drives replays at the configured pacing.
type Sequencer struct {
	pacing Pacing
	sleep  Sleeper
	log    *logrus.Logger
	hooks  Hooks

	mu      sync.Mutex
	current *Run
}

// NewSequencer returns a Sequencer with DefaultPacing.
func NewSequencer(opts ...Option) *Sequencer {
	s := &Sequencer{
		pacing: DefaultPacing(),
		sleep:  Sleep,
		log:    discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pacing returns the configured pacing.
func (s *Sequencer) Pacing() Pacing { return s.pacing }

// ReplayVisitation renders one frame per step and returns when the last
// delay has elapsed, or with ctx.Err() when cancelled.
func (s *Sequencer) ReplayVisitation(ctx context.Context, steps []model.Node, r Renderer) error {
	return s.play(ctx, VisitationFrames(steps), s.pacing.visitDelay, s.direct(r))
}

// ReplayPath renders one frame per path edge. A path of fewer than two
// nodes renders nothing.
func (s *Sequencer) ReplayPath(ctx context.Context, path []model.Node, r Renderer) error {
	return s.play(ctx, PathFrames(path), s.pacing.pathDelay, s.direct(r))
}

func (s *Sequencer) direct(r Renderer) func(model.Frame) bool {
	return func(f model.Frame) bool {
		r.Render(f)
		s.observe(f)
		return true
	}
}

func (s *Sequencer) observe(f model.Frame) {
	if s.hooks.OnFrame != nil {
		s.hooks.OnFrame(f)
	}
}

// play emits frames in order, pausing delay(n) after the n-th frame.
func (s *Sequencer) play(ctx context.Context, frames []model.Frame, delay func(int) time.Duration, emit func(model.Frame) bool) error {
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !emit(f) {
			return context.Canceled
		}
		if err := s.sleep(ctx, delay(i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Start cancels the current run, if any, and replays res in the background.
// The visitation replay always completes before the path replay begins.
func (s *Sequencer) Start(ctx context.Context, res model.SearchResult, r Renderer) *Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.current.Cancel()
	}
	run := newRun(ctx)
	s.current = run
	go s.drive(run, res, r)
	return run
}

// Cancel stops the current run. It is a no-op when nothing is playing.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.Cancel()
	}
}

// Current returns the most recently started run, or nil.
func (s *Sequencer) Current() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Sequencer) drive(run *Run, res model.SearchResult, r Renderer) {
	defer close(run.done)
	defer run.cancel()

	entry := s.log.WithFields(logrus.Fields{
		"run_id":    run.ID.String(),
		"algorithm": res.Algorithm,
		"steps":     len(res.Steps),
		"path":      len(res.Path),
	})
	entry.Debug("animation started")

	err := s.phase(run, VisitationReplay, VisitationFrames(res.Steps), s.pacing.visitDelay, r)
	if err == nil {
		err = s.phase(run, PathReplay, PathFrames(res.Path), s.pacing.pathDelay, r)
	}

	state := run.finish(err)
	entry.WithField("state", state.String()).Debug("animation finished")
	if s.hooks.OnFinish != nil {
		s.hooks.OnFinish(run.ID, state)
	}
}

func (s *Sequencer) phase(run *Run, st State, frames []model.Frame, delay func(int) time.Duration, r Renderer) error {
	if !run.enter(st) {
		return context.Canceled
	}
	return s.play(run.ctx, frames, delay, func(f model.Frame) bool {
		if !run.emit(f, r) {
			return false
		}
		s.observe(f)
		return true
	})
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}
