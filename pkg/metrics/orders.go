package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records metadata for order submissions forwarded to the
// intake API.
type OrderMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewOrderMetrics registers the order submission metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_submission_duration_seconds",
		Help:    "Duration of order submissions to the intake API in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"zone"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submission_success",
		Help: "Successful order submissions.",
	}, []string{"zone"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submission_failure",
		Help: "Failed order submissions.",
	}, []string{"zone"})
	reg.MustRegister(duration, success, failure)
	return &OrderMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for submissions in the given zone.
func (o *OrderMetrics) ObserveDuration(zone string, duration time.Duration) {
	if o == nil || o.duration == nil {
		return
	}
	o.duration.WithLabelValues(normalizeLabel(zone)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given zone.
func (o *OrderMetrics) IncSuccess(zone string) {
	if o == nil || o.success == nil {
		return
	}
	o.success.WithLabelValues(normalizeLabel(zone)).Inc()
}

// IncFailure increments the failure counter for the given zone.
func (o *OrderMetrics) IncFailure(zone string) {
	if o == nil || o.failure == nil {
		return
	}
	o.failure.WithLabelValues(normalizeLabel(zone)).Inc()
}

func normalizeLabel(zone string) string {
	if zone == "" {
		return "unknown"
	}
	return zone
}
