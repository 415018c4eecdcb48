// Package prommetrics exposes damper wrapper activity as Prometheus metrics.
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zoobzio/damper"
)

const metricsLabelName = "name"

// Collector is a damper.MetricsProvider backed by Prometheus collectors.
// Every series is labeled with the wrapper name.
type Collector struct {
	Scheduled   *prometheus.CounterVec
	Canceled    *prometheus.CounterVec
	Invocations *prometheus.CounterVec
	Dropped     *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
}

var _ damper.MetricsProvider = (*Collector)(nil)

// NewCollector creates a new instance of Collector.
func NewCollector(namespace string) *Collector {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{metricsLabelName})
	}

	return &Collector{
		Scheduled:   counter("debounce_scheduled_total", "Number of debounced invocations scheduled."),
		Canceled:    counter("debounce_canceled_total", "Number of pending debounced invocations canceled."),
		Invocations: counter("invocations_total", "Number of target invocations that returned without error."),
		Dropped:     counter("throttle_dropped_total", "Number of calls dropped by a throttle window."),
		Failures:    counter("failures_total", "Number of target invocations that returned an error."),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Time spent in the target, successful or not.",
			Buckets:   prometheus.DefBuckets,
		}, []string{metricsLabelName}),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{c.Scheduled, c.Canceled, c.Invocations, c.Dropped, c.Failures, c.Duration}
}

// Register registers all metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range c.collectors() {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister does registration of the collector in the default Prometheus registry and panics if any error occurs.
func (c *Collector) MustRegister() {
	prometheus.MustRegister(c.collectors()...)
}

// Unregister cancels registration of the collector in the default Prometheus registry.
func (c *Collector) Unregister() {
	for _, col := range c.collectors() {
		prometheus.Unregister(col)
	}
}

func (c *Collector) OnScheduled(name string) {
	c.Scheduled.WithLabelValues(name).Inc()
}

func (c *Collector) OnCanceled(name string) {
	c.Canceled.WithLabelValues(name).Inc()
}

func (c *Collector) OnInvoked(name string, d time.Duration) {
	c.Invocations.WithLabelValues(name).Inc()
	c.Duration.WithLabelValues(name).Observe(d.Seconds())
}

func (c *Collector) OnDropped(name string) {
	c.Dropped.WithLabelValues(name).Inc()
}

func (c *Collector) OnFailure(name string, d time.Duration) {
	c.Failures.WithLabelValues(name).Inc()
	c.Duration.WithLabelValues(name).Observe(d.Seconds())
}
