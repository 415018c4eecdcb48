/*
Package damper wraps callbacks with debounce and throttle policies.

A wrapped callback is a Func: it receives an explicit receiver (the value the
call is made against) and a list of positional arguments. Both wrappers
forward exactly the receiver and arguments of the call that triggered an
invocation, so a target never observes values from any other call site.

# Debounce

A Debouncer defers its target until a quiet period has elapsed. Every call
cancels the pending invocation and schedules a new one; the latest call wins,
receiver included:

	d := damper.NewDebouncer(func(form *Form, args ...string) error {
	    return form.Search(args[0])
	}, 300*time.Millisecond)

	d.Call(form, "g")
	d.Call(form, "go")  // only this one reaches Search, 300ms from now

Calls return immediately. Errors returned by the target surface through
LastError, ErrorHistory and the TargetFailed signal.

# Throttle

A Throttler invokes its target at most once per window, on the leading edge.
Calls arriving while the window is open are dropped, not queued:

	t := damper.NewThrottler(func(w *Window, _ ...int) error {
	    return w.Relayout()
	}, 300*time.Millisecond)

	fired, err := t.TryCall(win)

The window always re-opens after it elapses, whether or not the target
failed.

# Scheduling

Both wrappers delegate timing to a Scheduler. The default ClockScheduler runs
on a clockz.Clock; pass WithClock(clockz.NewFakeClock()) for deterministic
tests, or WithScheduler(damper.NewVirtualScheduler()) to drive virtual time
by hand.

# Policies

A Policy describes a wrapper declaratively and can be loaded from YAML or
JSON:

	policy, err := damper.ParsePolicy([]byte("mode: debounce\ninterval: 300ms"), damper.YAMLCodec{})
	call, err := damper.Wrap(policy, target)

# Observability

Wrappers emit capitan signals (see signals.go) and report to an optional
MetricsProvider.
*/
package damper
