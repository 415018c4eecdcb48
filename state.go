package damper

// State represents the current state of a wrapper.
type State int32

const (
	// StateIdle indicates nothing is scheduled: a Debouncer has no pending
	// invocation, a Throttler is ready to fire.
	StateIdle State = iota

	// StatePending indicates a Debouncer has an invocation scheduled.
	StatePending

	// StateCooling indicates a Throttler fired and its window is still open.
	// Calls made in this state are dropped.
	StateCooling
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateCooling:
		return "cooling"
	default:
		return "unknown"
	}
}
