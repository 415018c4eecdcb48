package damper

import (
	"context"
	"fmt"
)

// Watcher observes a source of repeated triggers and emits raw bytes on a
// channel, one value per trigger.
type Watcher interface {
	// Watch begins observing the source and returns a channel that emits
	// raw bytes when the source fires. The channel is closed when the context
	// is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// Feed forwards every value emitted by w to fn until the watcher's channel
// closes or ctx is canceled. It blocks for the lifetime of the watch and
// only returns an error when the watcher cannot be started.
//
// fn is typically the Call method of a Debouncer or Throttler:
//
//	deb := damper.NewDebouncer(reload, 200*time.Millisecond)
//	err := damper.Feed(ctx, damper.NewFileWatcher("app.yaml"), func(b []byte) {
//	    deb.Call(path, b)
//	})
func Feed(ctx context.Context, w Watcher, fn func([]byte)) error {
	ch, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-ch:
			if !ok {
				return nil
			}
			fn(raw)
		}
	}
}
