// Package testing provides test utilities for code built on damper wrappers.
package testing

import (
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/damper"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return condition()
}

// Invocation is one recorded call of a target.
type Invocation[R, A any] struct {
	Recv R
	Args []A
}

// Recorder is a target that records every invocation it receives.
type Recorder[R, A any] struct {
	mu    sync.Mutex
	calls []Invocation[R, A]
	err   error
	panic any
}

// NewRecorder creates an empty Recorder.
func NewRecorder[R, A any]() *Recorder[R, A] {
	return &Recorder[R, A]{}
}

// FailWith makes subsequent invocations return err after being recorded.
func (r *Recorder[R, A]) FailWith(err error) *Recorder[R, A] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// PanicWith makes subsequent invocations panic with v after being recorded.
func (r *Recorder[R, A]) PanicWith(v any) *Recorder[R, A] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panic = v
	return r
}

// Func returns the recording target.
func (r *Recorder[R, A]) Func() damper.Func[R, A] {
	return func(recv R, args ...A) error {
		r.mu.Lock()
		r.calls = append(r.calls, Invocation[R, A]{Recv: recv, Args: slices.Clone(args)})
		err, p := r.err, r.panic
		r.mu.Unlock()

		if p != nil {
			panic(p)
		}
		return err
	}
}

// Count returns the number of recorded invocations.
func (r *Recorder[R, A]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Last returns the most recent invocation and true, or false if there is none.
func (r *Recorder[R, A]) Last() (Invocation[R, A], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Invocation[R, A]{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// All returns a copy of every recorded invocation, oldest first.
func (r *Recorder[R, A]) All() []Invocation[R, A] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Scheduled is one ScheduleAfter call seen by a RecordingScheduler.
type Scheduled struct {
	Handle damper.Handle
	Delay  time.Duration
	At     time.Duration
}

// RecordingScheduler is a VirtualScheduler that records every schedule and
// cancel request, so tests can assert on how a wrapper drives its timers.
type RecordingScheduler struct {
	*damper.VirtualScheduler

	mu        sync.Mutex
	scheduled []Scheduled
	canceled  []damper.Handle
}

// NewRecordingScheduler creates a RecordingScheduler at virtual time zero.
func NewRecordingScheduler() *RecordingScheduler {
	return &RecordingScheduler{VirtualScheduler: damper.NewVirtualScheduler()}
}

// ScheduleAfter records the request and schedules fn on the virtual clock.
func (s *RecordingScheduler) ScheduleAfter(d time.Duration, fn func()) damper.Handle {
	now := s.Now()
	h := s.VirtualScheduler.ScheduleAfter(d, fn)

	s.mu.Lock()
	s.scheduled = append(s.scheduled, Scheduled{Handle: h, Delay: d, At: now})
	s.mu.Unlock()
	return h
}

// Cancel records the request and cancels h on the virtual clock.
func (s *RecordingScheduler) Cancel(h damper.Handle) bool {
	s.mu.Lock()
	s.canceled = append(s.canceled, h)
	s.mu.Unlock()
	return s.VirtualScheduler.Cancel(h)
}

// ScheduledCalls returns every recorded ScheduleAfter call, oldest first.
func (s *RecordingScheduler) ScheduledCalls() []Scheduled {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.scheduled)
}

// Canceled returns every handle passed to Cancel, oldest first.
func (s *RecordingScheduler) Canceled() []damper.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.canceled)
}

// WasCanceled reports whether Cancel was requested for h.
func (s *RecordingScheduler) WasCanceled(h damper.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.canceled, h)
}

var _ damper.Scheduler = (*RecordingScheduler)(nil)
