package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoobzio/damper"
)

// stdinSource selects line-by-line triggers from standard input.
const stdinSource = "-"

func newWatchCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file|->",
		Short: "Apply a policy to file saves or stdin lines",
		Long: `Watch a file and run the policy once per burst of writes, so an editor
save storm is reported as a single change. With "-" every line read from
standard input is a trigger.

A pending debounced trigger is flushed when the watch ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd, args[0])
		},
	}

	cmd.Flags().String("mode", string(damper.ModeDebounce), "policy mode (debounce or throttle)")
	cmd.Flags().String("interval", "200ms", "policy interval, e.g. 200ms or 200 (milliseconds)")
	_ = a.v.BindPFlag("watch.mode", cmd.Flags().Lookup("mode"))
	_ = a.v.BindPFlag("watch.interval", cmd.Flags().Lookup("interval"))
	return cmd
}

func (a *app) watch(cmd *cobra.Command, source string) error {
	interval, err := damper.ParseDuration(a.v.GetString("watch.interval"))
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}
	policy := damper.Policy{
		Name:     source,
		Mode:     damper.Mode(a.v.GetString("watch.mode")),
		Interval: interval,
	}
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}

	ctx := cmd.Context()
	var w damper.Watcher
	if source == stdinSource {
		w = damper.NewChannelWatcher(readLines(ctx, cmd.InOrStdin()))
	} else {
		w = damper.NewFileWatcher(source)
	}

	out := &lockedWriter{w: cmd.OutOrStdout()}
	count := 0
	target := func(src string, payload ...[]byte) error {
		out.mu.Lock()
		defer out.mu.Unlock()
		count++
		fmt.Fprintf(out.w, "#%d %s\n", count, describe(src, payload))
		return nil
	}

	opts := []damper.Option{damper.WithName(source), damper.WithContext(ctx)}
	var call func([]byte)
	flush := func() {}
	switch policy.Mode {
	case damper.ModeThrottle:
		th := damper.NewThrottler(target, interval.Std(), opts...)
		call = func(b []byte) { _ = th.Call(source, b) } //nolint:errcheck // target never fails
	default:
		deb := damper.NewDebouncer(target, interval.Std(), opts...)
		call = func(b []byte) { deb.Call(source, b) }
		flush = func() {
			if err := deb.Flush(); err != nil && !errors.Is(err, damper.ErrNothingPending) {
				a.log.Warn("Flush failed", zap.Error(err))
			}
		}
	}

	a.log.Info("Watching",
		zap.String("source", source),
		zap.String("mode", string(policy.Mode)),
		zap.Stringer("interval", interval),
	)
	if err := damper.Feed(ctx, w, call); err != nil {
		return err
	}
	flush()
	return nil
}

func describe(source string, payload [][]byte) string {
	if len(payload) == 0 {
		return source
	}
	if source == stdinSource {
		return string(payload[0])
	}
	return fmt.Sprintf("%s changed (%d bytes)", source, len(payload[0]))
}

// readLines emits every line of r until EOF or ctx ends.
func readLines(ctx context.Context, r io.Reader) <-chan []byte {
	ch := make(chan []byte)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			select {
			case ch <- []byte(line):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}
