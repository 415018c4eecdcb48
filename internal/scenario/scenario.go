// Package scenario replays a timeline of calls against a policy on virtual
// time and reports what the target saw.
package scenario

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/zoobzio/damper"
)

var validate = validator.New()

// ErrSimulatedFailure is returned by the target for calls marked fail.
var ErrSimulatedFailure = errors.New("simulated failure")

// Call is one entry of the timeline.
type Call struct {
	At       damper.Duration `yaml:"at" json:"at" validate:"gte=0"`
	Receiver string          `yaml:"receiver" json:"receiver"`
	Args     []string        `yaml:"args" json:"args"`
	Fail     bool            `yaml:"fail" json:"fail"`
}

// Scenario is a policy plus the calls to replay against it.
type Scenario struct {
	Policy damper.Policy   `yaml:"policy" json:"policy"`
	Calls  []Call          `yaml:"calls" json:"calls" validate:"dive"`
	Until  damper.Duration `yaml:"until" json:"until" validate:"gte=0"`
}

// Validate checks the scenario and its policy.
func (s Scenario) Validate() error {
	return validate.Struct(s)
}

// Load decodes and validates a scenario.
func Load(data []byte, codec damper.Codec) (Scenario, error) {
	var s Scenario
	if err := codec.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("unmarshal failed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("validation failed: %w", err)
	}
	return s, nil
}

// Invocation is one run of the target.
type Invocation struct {
	At       time.Duration
	Receiver string
	Args     []string
	Err      error
}

// Result summarizes a run.
type Result struct {
	Policy      damper.Policy
	Invocations []Invocation
	Calls       int
	// Dropped counts calls a throttle window swallowed.
	Dropped int
	// Superseded counts debounced calls replaced by a later one.
	Superseded int
	Failures   int
	End        time.Duration
}

type runConfig struct {
	ctx     context.Context
	metrics damper.MetricsProvider
}

// Option configures Run.
type Option func(*runConfig)

// WithContext sets the context carried into emitted signals.
func WithContext(ctx context.Context) Option {
	return func(c *runConfig) {
		c.ctx = ctx
	}
}

// WithMetrics forwards wrapper metrics to p as well as to the result tally.
func WithMetrics(p damper.MetricsProvider) Option {
	return func(c *runConfig) {
		c.metrics = p
	}
}

// Run replays s. Calls are applied in order of At; calls sharing an instant
// keep their file order. Time then advances to Until, or one interval past
// the last call if that is later, so trailing debounced work fires.
func Run(s Scenario, opts ...Option) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, fmt.Errorf("validation failed: %w", err)
	}

	cfg := runConfig{ctx: context.Background(), metrics: damper.NoOpMetricsProvider{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	calls := slices.Clone(s.Calls)
	slices.SortStableFunc(calls, func(a, b Call) int {
		return cmp.Compare(a.At, b.At)
	})

	res := Result{Policy: s.Policy, Calls: len(calls)}
	sched := damper.NewVirtualScheduler()
	tally := &tally{next: cfg.metrics}

	// The failing flag travels with the receiver so a coalesced call
	// fails only if the surviving call was marked.
	type recv struct {
		name string
		fail bool
	}
	target := func(r recv, args ...string) error {
		var err error
		if r.fail {
			err = ErrSimulatedFailure
		}
		res.Invocations = append(res.Invocations, Invocation{
			At:       sched.Now(),
			Receiver: r.name,
			Args:     args,
			Err:      err,
		})
		return err
	}

	call, err := damper.Wrap(s.Policy, damper.Func[recv, string](target),
		damper.WithScheduler(sched),
		damper.WithMetrics(tally),
		damper.WithContext(cfg.ctx),
	)
	if err != nil {
		return Result{}, err
	}

	var last time.Duration
	for _, c := range calls {
		sched.AdvanceTo(c.At.Std())
		_ = call(recv{name: c.Receiver, fail: c.Fail}, c.Args...) //nolint:errcheck // Failures tallied via metrics
		last = c.At.Std()
	}

	end := s.Until.Std()
	if len(calls) > 0 {
		end = max(end, last+max(s.Policy.Interval.Std(), 0))
	}
	sched.AdvanceTo(end)

	res.End = sched.Now()
	res.Dropped = tally.dropped
	res.Superseded = tally.canceled
	res.Failures = tally.failures
	return res, nil
}

// tally counts wrapper events. Run drives everything from one goroutine.
type tally struct {
	next     damper.MetricsProvider
	dropped  int
	canceled int
	failures int
}

func (t *tally) OnScheduled(name string) {
	t.next.OnScheduled(name)
}

func (t *tally) OnCanceled(name string) {
	t.canceled++
	t.next.OnCanceled(name)
}

func (t *tally) OnInvoked(name string, d time.Duration) {
	t.next.OnInvoked(name, d)
}

func (t *tally) OnDropped(name string) {
	t.dropped++
	t.next.OnDropped(name)
}

func (t *tally) OnFailure(name string, d time.Duration) {
	t.failures++
	t.next.OnFailure(name, d)
}
