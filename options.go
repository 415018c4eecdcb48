package damper

import (
	"context"

	"github.com/zoobzio/clockz"
)

// config holds the settings shared by Debouncer and Throttler.
type config struct {
	name         string
	ctx          context.Context
	clock        clockz.Clock
	scheduler    Scheduler
	metrics      MetricsProvider
	errorHistory int
}

// Option configures a Debouncer or Throttler.
type Option func(*config)

// WithName labels the wrapper in signals and metrics.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithContext sets the context carried into emitted signals.
// Default: context.Background().
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithClock sets the clock used for timing and, unless WithScheduler is also
// given, for the default ClockScheduler.
// Use this with clockz.FakeClock for deterministic timing tests.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithScheduler replaces the scheduler that runs deferred work.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithMetrics sets a metrics provider for observability integration.
func WithMetrics(provider MetricsProvider) Option {
	return func(c *config) {
		c.metrics = provider
	}
}

// WithErrorHistory retains up to n recent target errors, see ErrorHistory.
// Use 0 (default) to only retain the most recent error via LastError.
func WithErrorHistory(n int) Option {
	return func(c *config) {
		c.errorHistory = n
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{
		ctx:     context.Background(),
		clock:   clockz.RealClock,
		metrics: NoOpMetricsProvider{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.clock == nil {
		cfg.clock = clockz.RealClock
	}
	if cfg.scheduler == nil {
		cfg.scheduler = NewClockScheduler(cfg.clock)
	}
	if cfg.metrics == nil {
		cfg.metrics = NoOpMetricsProvider{}
	}
	if cfg.ctx == nil {
		cfg.ctx = context.Background()
	}
	return cfg
}
