package damper

import "github.com/zoobzio/capitan"

// Debounce signals.
var (
	// DebounceScheduled is emitted when a call schedules a deferred invocation.
	DebounceScheduled = capitan.NewSignal(
		"damper.debounce.scheduled",
		"Debounced invocation scheduled",
	)

	// DebounceCanceled is emitted when a pending invocation is superseded or canceled.
	DebounceCanceled = capitan.NewSignal(
		"damper.debounce.canceled",
		"Pending debounced invocation canceled",
	)

	// DebounceFired is emitted when the quiet period elapses and the target runs.
	DebounceFired = capitan.NewSignal(
		"damper.debounce.fired",
		"Debounced target invoked",
	)
)

// Throttle signals.
var (
	// ThrottleFired is emitted when a call opens a window and the target runs.
	ThrottleFired = capitan.NewSignal(
		"damper.throttle.fired",
		"Throttled target invoked",
	)

	// ThrottleDropped is emitted when a call arrives while the window is open.
	ThrottleDropped = capitan.NewSignal(
		"damper.throttle.dropped",
		"Throttled call dropped",
	)

	// ThrottleReset is emitted when the window elapses and the throttler is ready again.
	ThrottleReset = capitan.NewSignal(
		"damper.throttle.reset",
		"Throttle window elapsed",
	)
)

// TargetFailed is emitted when a wrapped target returns an error.
var TargetFailed = capitan.NewSignal(
	"damper.target.failed",
	"Wrapped target returned an error",
)
