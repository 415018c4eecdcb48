package damper

import (
	"container/heap"
	"sync"
	"time"
)

// VirtualScheduler is a single-threaded Scheduler driven by hand.
//
// Time only moves when Advance or AdvanceTo is called; due callbacks then run
// synchronously on the caller's goroutine, earliest first, ties in the order
// they were scheduled. Callbacks may schedule or cancel further callbacks.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	next  Handle
	seq   uint64
	queue timerQueue
	index map[Handle]*virtualTimer
}

type virtualTimer struct {
	handle Handle
	at     time.Duration
	seq    uint64
	fn     func()
	pos    int
}

// NewVirtualScheduler creates a VirtualScheduler at virtual time zero.
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{index: make(map[Handle]*virtualTimer)}
}

// ScheduleAfter implements Scheduler.
func (s *VirtualScheduler) ScheduleAfter(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.seq++
	t := &virtualTimer{handle: s.next, at: s.now + d, seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	s.index[t.handle] = t
	return t.handle
}

// Cancel implements Scheduler.
func (s *VirtualScheduler) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.index[h]
	if !ok {
		return false
	}
	heap.Remove(&s.queue, t.pos)
	delete(s.index, h)
	return true
}

// Now returns the elapsed virtual time.
func (s *VirtualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of callbacks waiting to fire.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.index)
}

// Advance moves virtual time forward by d, firing every callback that
// becomes due. It returns the number of callbacks fired.
func (s *VirtualScheduler) Advance(d time.Duration) int {
	return s.AdvanceTo(s.Now() + d)
}

// AdvanceTo moves virtual time to t, firing every callback due at or before
// t. Time never moves backwards; a t in the past only fires overdue callbacks.
func (s *VirtualScheduler) AdvanceTo(t time.Duration) int {
	fired := 0
	for {
		s.mu.Lock()
		if len(s.queue) == 0 || s.queue[0].at > t {
			if t > s.now {
				s.now = t
			}
			s.mu.Unlock()
			return fired
		}
		next := heap.Pop(&s.queue).(*virtualTimer)
		delete(s.index, next.handle)
		if next.at > s.now {
			s.now = next.at
		}
		s.mu.Unlock()

		next.fn()
		fired++
	}
}

var _ Scheduler = (*VirtualScheduler)(nil)

// timerQueue orders virtual timers by due time, then schedule order.
type timerQueue []*virtualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].pos = i
	q[j].pos = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*virtualTimer)
	t.pos = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
