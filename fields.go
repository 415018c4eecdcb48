package damper

import "github.com/zoobzio/capitan"

// Field keys for wrapper events.
var (
	// KeyName is the configured name of the wrapper.
	KeyName = capitan.NewStringKey("name")

	// KeyDelay is the quiet period of a Debouncer.
	KeyDelay = capitan.NewDurationKey("delay")

	// KeyWindow is the window length of a Throttler.
	KeyWindow = capitan.NewDurationKey("window")

	// KeyError is the error message when a target fails.
	KeyError = capitan.NewStringKey("error")

	// KeyArgs is the number of positional arguments of the call.
	KeyArgs = capitan.NewIntKey("args")
)
