package damper

import (
	"sync"
	"time"

	"github.com/zoobzio/clockz"
)

// Handle identifies a callback registered with a Scheduler.
type Handle uint64

// Scheduler runs callbacks after a delay.
//
// Implementations must fire callbacks in the order their delays expire and
// must guarantee that a callback whose Cancel returned true never runs.
// Delays are not validated; a non-positive delay fires as soon as possible.
type Scheduler interface {
	// ScheduleAfter registers fn to run once d has elapsed.
	ScheduleAfter(d time.Duration, fn func()) Handle

	// Cancel removes a callback that has not fired yet. It reports whether
	// the callback was removed; unknown or already fired handles return false.
	Cancel(h Handle) bool
}

// ClockScheduler is a Scheduler backed by a clockz.Clock. Each scheduled
// callback waits on its own timer in a separate goroutine.
type ClockScheduler struct {
	clock clockz.Clock

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*scheduled
}

type scheduled struct {
	timer clockz.Timer
	stop  chan struct{}
}

// NewClockScheduler creates a ClockScheduler on the given clock.
// A nil clock selects clockz.RealClock.
func NewClockScheduler(clock clockz.Clock) *ClockScheduler {
	if clock == nil {
		clock = clockz.RealClock
	}
	return &ClockScheduler{
		clock:  clock,
		timers: make(map[Handle]*scheduled),
	}
}

// ScheduleAfter implements Scheduler.
func (s *ClockScheduler) ScheduleAfter(d time.Duration, fn func()) Handle {
	e := &scheduled{
		timer: s.clock.NewTimer(d),
		stop:  make(chan struct{}),
	}

	s.mu.Lock()
	s.next++
	h := s.next
	s.timers[h] = e
	s.mu.Unlock()

	go s.run(h, e, fn)
	return h
}

// Cancel implements Scheduler.
func (s *ClockScheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	e, ok := s.timers[h]
	if ok {
		delete(s.timers, h)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	e.timer.Stop()
	close(e.stop)
	return true
}

// Pending returns the number of callbacks that have not fired or been canceled.
func (s *ClockScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ClockScheduler) run(h Handle, e *scheduled, fn func()) {
	select {
	case <-e.timer.C():
	case <-e.stop:
		return
	}

	// Whoever removes the entry owns it: Cancel or this goroutine, never both.
	s.mu.Lock()
	_, live := s.timers[h]
	delete(s.timers, h)
	s.mu.Unlock()

	if live {
		fn()
	}
}

var _ Scheduler = (*ClockScheduler)(nil)
