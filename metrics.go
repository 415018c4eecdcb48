package damper

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key wrapper events.
// The name argument is the wrapper name set with WithName.
type MetricsProvider interface {
	// OnScheduled is called when a Debouncer schedules an invocation.
	OnScheduled(name string)

	// OnCanceled is called when a pending Debouncer invocation is canceled,
	// either by a newer call or explicitly.
	OnCanceled(name string)

	// OnInvoked is called after the target returned without error.
	OnInvoked(name string, duration time.Duration)

	// OnDropped is called when a Throttler drops a call.
	OnDropped(name string)

	// OnFailure is called after the target returned an error.
	OnFailure(name string, duration time.Duration)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnScheduled(_ string)                {}
func (NoOpMetricsProvider) OnCanceled(_ string)                 {}
func (NoOpMetricsProvider) OnInvoked(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnDropped(_ string)                  {}
func (NoOpMetricsProvider) OnFailure(_ string, _ time.Duration) {}
