package cli

import (
	"context"
	"io"

	"github.com/zoobzio/capitan"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zoobzio/damper"
)

func newLogger(w io.Writer, verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// hookSignals logs wrapper signals at debug level and returns a function
// that removes the listeners again.
func hookSignals(log *zap.Logger) func() {
	debug := func(msg string) capitan.EventCallback {
		return func(_ context.Context, e *capitan.Event) {
			name, _ := damper.KeyName.From(e)
			log.Debug(msg, zap.String("name", name))
		}
	}

	listeners := []*capitan.Listener{
		capitan.Hook(damper.DebounceScheduled, debug("Debounce scheduled")),
		capitan.Hook(damper.DebounceCanceled, debug("Debounce canceled")),
		capitan.Hook(damper.DebounceFired, debug("Debounce fired")),
		capitan.Hook(damper.ThrottleFired, debug("Throttle fired")),
		capitan.Hook(damper.ThrottleDropped, debug("Throttle dropped")),
		capitan.Hook(damper.ThrottleReset, debug("Throttle reset")),
		capitan.Hook(damper.TargetFailed, func(_ context.Context, e *capitan.Event) {
			name, _ := damper.KeyName.From(e)
			msg, _ := damper.KeyError.From(e)
			log.Warn("Target failed", zap.String("name", name), zap.String("error", msg))
		}),
	}

	return func() {
		for _, l := range listeners {
			l.Close()
		}
	}
}
