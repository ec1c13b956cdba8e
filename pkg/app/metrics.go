package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-drift/weave/pkg/timer"
	"github.com/go-drift/weave/pkg/widget"
)

// metrics holds the Prometheus collectors of one app.
type metrics struct {
	registry   prometheus.Registerer
	collectors []prometheus.Collector

	passes       prometheus.Counter
	slowPasses   prometheus.Counter
	passDuration prometheus.Histogram
	events       prometheus.Counter
	panics       prometheus.Counter
}

func newMetrics(registry prometheus.Registerer, namespace, appName string, timers *timer.Service) *metrics {
	m := &metrics{registry: registry}
	factory := promauto.With(registry)
	labels := prometheus.Labels{"app": appName}

	counter := func(name, help string) prometheus.Counter {
		c := factory.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
		m.collectors = append(m.collectors, c)
		return c
	}
	gauge := func(subsystem, name, help string, f func() float64) {
		m.collectors = append(m.collectors, factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, f))
	}
	counterFunc := func(subsystem, name, help string, f func() float64) {
		m.collectors = append(m.collectors, factory.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		}, f))
	}

	m.passes = counter("passes_total", "Total number of app update passes")
	m.slowPasses = counter("slow_passes_total", "Update passes slower than the slow pass threshold")
	m.events = counter("events_total", "Total number of event updates delivered")
	m.panics = counter("pass_panics_total", "Update passes aborted by a panic")
	m.passDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   namespace,
		Name:        "pass_duration_seconds",
		Help:        "App update pass duration in seconds",
		ConstLabels: labels,
		Buckets:     prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	m.collectors = append(m.collectors, m.passDuration)

	stat := func(f func(timer.Stats) int) func() float64 {
		return func() float64 { return float64(f(timers.Stats())) }
	}
	gauge("timer", "deadline_vars", "Live deadline variables",
		stat(func(s timer.Stats) int { return s.Deadlines }))
	gauge("timer", "waiters", "Pending deadline waiters",
		stat(func(s timer.Stats) int { return s.Waiters }))
	gauge("timer", "interval_vars", "Live interval timer variables",
		stat(func(s timer.Stats) int { return s.Timers }))
	gauge("timer", "deadline_handlers", "Pending deadline handlers",
		stat(func(s timer.Stats) int { return s.DeadlineHandlers }))
	gauge("timer", "interval_handlers", "Live interval handlers",
		stat(func(s timer.Stats) int { return s.TimerHandlers }))
	counterFunc("timer", "handlers_fired_total", "Timer handler executions",
		func() float64 { return float64(timers.Stats().Fired) })

	cache := func(f func(widget.CacheStats) uint64) func() float64 {
		return func() float64 { return float64(f(widget.ReadCacheStats())) }
	}
	counterFunc("layout", "measure_cache_hits_total", "Widget measure cache hits",
		cache(func(s widget.CacheStats) uint64 { return s.MeasureHits }))
	counterFunc("layout", "measure_cache_misses_total", "Widget measure cache misses",
		cache(func(s widget.CacheStats) uint64 { return s.MeasureMisses }))
	counterFunc("layout", "cache_hits_total", "Widget layout cache hits",
		cache(func(s widget.CacheStats) uint64 { return s.LayoutHits }))
	counterFunc("layout", "cache_misses_total", "Widget layout cache misses",
		cache(func(s widget.CacheStats) uint64 { return s.LayoutMisses }))

	return m
}

// unregister removes every collector of the app from its registry.
func (m *metrics) unregister() {
	for _, c := range m.collectors {
		m.registry.Unregister(c)
	}
	m.collectors = nil
}
