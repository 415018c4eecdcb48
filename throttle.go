package damper

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Throttler invokes a target at most once per window.
//
// The first call in a window runs the target synchronously on the caller's
// goroutine; calls arriving before the window elapses are dropped. Dropped
// calls are not queued and never run later.
type Throttler[R, A any] struct {
	target    Func[R, A]
	window    time.Duration
	name      string
	ctx       context.Context
	clock     clockz.Clock
	scheduler Scheduler
	metrics   MetricsProvider

	mu    sync.Mutex
	ready bool
}

// NewThrottler creates a Throttler with the given window. The window is
// handed to the scheduler as is.
func NewThrottler[R, A any](target Func[R, A], window time.Duration, opts ...Option) *Throttler[R, A] {
	cfg := newConfig(opts)
	return &Throttler[R, A]{
		target:    target,
		window:    window,
		name:      cfg.name,
		ctx:       cfg.ctx,
		clock:     cfg.clock,
		scheduler: cfg.scheduler,
		metrics:   cfg.metrics,
		ready:     true,
	}
}

// Throttle returns the call function of a new Throttler.
func Throttle[R, A any](target Func[R, A], window time.Duration, opts ...Option) func(recv R, args ...A) error {
	return NewThrottler(target, window, opts...).Call
}

// Call invokes the target if the throttler is ready and returns the target's
// error. A dropped call returns nil.
func (t *Throttler[R, A]) Call(recv R, args ...A) error {
	_, err := t.TryCall(recv, args...)
	return err
}

// TryCall is like Call but also reports whether the target ran.
func (t *Throttler[R, A]) TryCall(recv R, args ...A) (bool, error) {
	t.mu.Lock()
	if !t.ready {
		t.mu.Unlock()
		capitan.Emit(t.ctx, ThrottleDropped,
			KeyName.Field(t.name),
			KeyArgs.Field(len(args)),
		)
		t.metrics.OnDropped(t.name)
		return false, nil
	}
	t.ready = false
	// The reset is armed before the target runs so that a failing or
	// panicking target cannot leave the throttler closed.
	t.scheduler.ScheduleAfter(t.window, t.reset)
	t.mu.Unlock()

	capitan.Emit(t.ctx, ThrottleFired,
		KeyName.Field(t.name),
		KeyWindow.Field(t.window),
		KeyArgs.Field(len(args)),
	)

	start := t.clock.Now()
	err := t.target(recv, args...)
	if err != nil {
		t.metrics.OnFailure(t.name, t.clock.Since(start))
		capitan.Emit(t.ctx, TargetFailed,
			KeyName.Field(t.name),
			KeyError.Field(err.Error()),
		)
		return true, err
	}
	t.metrics.OnInvoked(t.name, t.clock.Since(start))
	return true, nil
}

// Ready reports whether the next call would invoke the target.
func (t *Throttler[R, A]) Ready() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ready
}

// State returns StateIdle when ready, StateCooling while the window is open.
func (t *Throttler[R, A]) State() State {
	if t.Ready() {
		return StateIdle
	}
	return StateCooling
}

func (t *Throttler[R, A]) reset() {
	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()

	capitan.Emit(t.ctx, ThrottleReset, KeyName.Field(t.name))
}
