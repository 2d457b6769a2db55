// Package metrics exposes batch computation counters through Prometheus.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/unsei/internal/engine"
	"github.com/roach88/unsei/internal/ir"
)

// Registry holds the unsei collectors on a private prometheus.Registry.
// It implements engine.Observer.
type Registry struct {
	reg *prometheus.Registry

	Computations    *prometheus.CounterVec
	TzolkinFallback prometheus.Counter
	ComputeDuration prometheus.Histogram
	Errors          *prometheus.CounterVec
	LeapMonths      prometheus.Counter
}

var _ engine.Observer = (*Registry)(nil)

// NewRegistry creates and registers all collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),

		Computations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsei_computations_total",
				Help: "Total number of dates computed by result",
			},
			[]string{"result"},
		),

		TzolkinFallback: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "unsei_tzolkin_fallback_total",
				Help: "Dates whose Tzolkin year constant came from the approximate formula",
			},
		),

		ComputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "unsei_compute_duration_seconds",
				Help:    "Duration of a single date computation in seconds",
				Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
			},
		),

		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsei_errors_total",
				Help: "Total number of failed computations by error code",
			},
			[]string{"code"},
		),

		LeapMonths: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "unsei_leap_month_dates_total",
				Help: "Dates that fell in a lunisolar leap month",
			},
		),
	}

	r.reg.MustRegister(
		r.Computations,
		r.TzolkinFallback,
		r.ComputeDuration,
		r.Errors,
		r.LeapMonths,
	)
	return r
}

// Computed records a successful computation.
func (r *Registry) Computed(res ir.FortuneResult, elapsed time.Duration) {
	r.Computations.WithLabelValues("ok").Inc()
	r.ComputeDuration.Observe(elapsed.Seconds())
	if !res.Tzolkin.FromTable {
		r.TzolkinFallback.Inc()
	}
	if res.Lunar.IsLeapMonth {
		r.LeapMonths.Inc()
	}
}

// Failed records a failed computation under its engine error code.
func (r *Registry) Failed(_ ir.CalendarDate, err error) {
	r.Computations.WithLabelValues("error").Inc()
	r.Errors.WithLabelValues(string(engine.CodeOf(err))).Inc()
}

// Gatherer returns the underlying registry for exposition.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
