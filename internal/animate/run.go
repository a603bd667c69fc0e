package animate

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"searchviz/internal/model"
)

// State is the lifecycle state of a Run.
type State int

const (
	Idle State = iota
	VisitationReplay
	PathReplay
	Done
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case VisitationReplay:
		return "visitation"
	case PathReplay:
		return "path"
	case Done:
		return "done"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether no more frames can follow.
func (s State) Terminal() bool {
	return s == Done || s == Cancelled
}

// Run is one replay started by Sequencer.Start. Its ID is stamped on every
// frame it emits.
type Run struct {
	ID uuid.UUID

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// mu is held while a frame is being rendered, so Cancel returns only
	// after any in-progress Render has finished.
	mu    sync.Mutex
	state State
	frame int
}

func newRun(parent context.Context) *Run {
	ctx, cancel := context.WithCancel(parent)
	return &Run{
		ID:     uuid.New(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		frame:  -1,
	}
}

// State returns the current state.
func (r *Run) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// FrameIndex is the index of the last frame rendered in the current phase,
// -1 before the first one.
func (r *Run) FrameIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Done is closed when the run reaches Done or Cancelled.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run is finished and returns its final state.
func (r *Run) Wait() State {
	<-r.done
	return r.State()
}

// Cancel moves the run to Cancelled. No frame is rendered after Cancel
// returns. Cancelling a finished run does nothing.
func (r *Run) Cancel() {
	r.mu.Lock()
	if !r.state.Terminal() {
		r.state = Cancelled
	}
	r.mu.Unlock()
	r.cancel()
}

// enter switches to a replay phase unless the run was cancelled.
func (r *Run) enter(s State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Cancelled {
		return false
	}
	r.state = s
	r.frame = -1
	return true
}

// emit renders f under the run lock unless the run was cancelled.
func (r *Run) emit(f model.Frame, out Renderer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Cancelled || r.ctx.Err() != nil {
		return false
	}
	f.Run = r.ID.String()
	r.frame = f.Index
	out.Render(f)
	return true
}

// finish records the terminal state from the replay error.
func (r *Run) finish(err error) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil || r.state == Cancelled {
		r.state = Cancelled
	} else {
		r.state = Done
	}
	return r.state
}
