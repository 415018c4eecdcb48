package damper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// ErrNothingPending is returned by Flush when no invocation is scheduled.
var ErrNothingPending = errors.New("damper: nothing pending")

// Debouncer defers a target until calls stop arriving for a quiet period.
//
// Each Call cancels the invocation scheduled by the previous one and
// schedules a new one, so a burst of calls results in a single invocation
// with the receiver and arguments of the last call. Instances share no state.
type Debouncer[R, A any] struct {
	target    Func[R, A]
	delay     time.Duration
	name      string
	ctx       context.Context
	clock     clockz.Clock
	scheduler Scheduler
	metrics   MetricsProvider

	mu      sync.Mutex
	seq     uint64
	handle  Handle
	pending *invocation[R, A]

	lastError    atomic.Pointer[error]
	errorHistory *errorRing
}

// NewDebouncer creates a Debouncer that invokes target once delay has
// elapsed without further calls. The delay is handed to the scheduler as is.
func NewDebouncer[R, A any](target Func[R, A], delay time.Duration, opts ...Option) *Debouncer[R, A] {
	cfg := newConfig(opts)
	return &Debouncer[R, A]{
		target:       target,
		delay:        delay,
		name:         cfg.name,
		ctx:          cfg.ctx,
		clock:        cfg.clock,
		scheduler:    cfg.scheduler,
		metrics:      cfg.metrics,
		errorHistory: newErrorRing(cfg.errorHistory),
	}
}

// Debounce returns the call function of a new Debouncer.
func Debounce[R, A any](target Func[R, A], delay time.Duration, opts ...Option) func(recv R, args ...A) {
	return NewDebouncer(target, delay, opts...).Call
}

// Call records recv and args as the latest call and restarts the quiet
// period. It never blocks on the target.
func (d *Debouncer[R, A]) Call(recv R, args ...A) {
	inv := capture(recv, args)

	d.mu.Lock()
	canceled := d.cancelLocked()
	d.seq++
	seq := d.seq
	d.pending = inv
	d.handle = d.scheduler.ScheduleAfter(d.delay, func() { d.fire(seq) })
	d.mu.Unlock()

	if canceled {
		d.emitCanceled()
	}
	capitan.Emit(d.ctx, DebounceScheduled,
		KeyName.Field(d.name),
		KeyDelay.Field(d.delay),
		KeyArgs.Field(len(args)),
	)
	d.metrics.OnScheduled(d.name)
}

// Cancel drops the pending invocation, if any. It reports whether one was
// dropped.
func (d *Debouncer[R, A]) Cancel() bool {
	d.mu.Lock()
	canceled := d.cancelLocked()
	d.pending = nil
	d.mu.Unlock()

	if canceled {
		d.emitCanceled()
	}
	return canceled
}

// Flush runs the pending invocation immediately instead of waiting for the
// quiet period, and returns the target's error. It returns ErrNothingPending
// when nothing is scheduled.
func (d *Debouncer[R, A]) Flush() error {
	d.mu.Lock()
	inv := d.pending
	if inv == nil {
		d.mu.Unlock()
		return ErrNothingPending
	}
	d.cancelLocked()
	d.pending = nil
	d.mu.Unlock()

	return d.invoke(inv)
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[R, A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// State returns StatePending while an invocation is scheduled, StateIdle otherwise.
func (d *Debouncer[R, A]) State() State {
	if d.Pending() {
		return StatePending
	}
	return StateIdle
}

// LastError returns the error of the most recent failed invocation, or nil.
func (d *Debouncer[R, A]) LastError() error {
	ptr := d.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent target errors, oldest first.
// Returns nil unless WithErrorHistory was set.
func (d *Debouncer[R, A]) ErrorHistory() []error {
	return d.errorHistory.all()
}

// cancelLocked cancels the outstanding timer. Callers must hold d.mu.
func (d *Debouncer[R, A]) cancelLocked() bool {
	if d.pending == nil {
		return false
	}
	d.scheduler.Cancel(d.handle)
	// A timer that already fired but has not taken the lock yet sees a
	// newer seq and returns without invoking.
	d.seq++
	return true
}

// fire runs on the scheduler when the quiet period of call seq elapses.
func (d *Debouncer[R, A]) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	inv := d.pending
	d.pending = nil
	d.mu.Unlock()

	_ = d.invoke(inv) //nolint:errcheck // Errors stored via setError
}

func (d *Debouncer[R, A]) invoke(inv *invocation[R, A]) error {
	capitan.Emit(d.ctx, DebounceFired,
		KeyName.Field(d.name),
		KeyArgs.Field(len(inv.args)),
	)

	start := d.clock.Now()
	err := inv.run(d.target)
	if err != nil {
		d.setError(err)
		d.metrics.OnFailure(d.name, d.clock.Since(start))
		capitan.Emit(d.ctx, TargetFailed,
			KeyName.Field(d.name),
			KeyError.Field(err.Error()),
		)
		return err
	}
	d.metrics.OnInvoked(d.name, d.clock.Since(start))
	return nil
}

func (d *Debouncer[R, A]) emitCanceled() {
	capitan.Emit(d.ctx, DebounceCanceled, KeyName.Field(d.name))
	d.metrics.OnCanceled(d.name)
}

func (d *Debouncer[R, A]) setError(err error) {
	e := err
	d.lastError.Store(&e)
	d.errorHistory.push(err)
}
