package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records counters for checkout submissions by mode and outcome.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	accepted *prometheus.CounterVec
	denied   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_accepted_total",
		Help: "Checkout submissions that produced a receipt.",
	}, []string{"mode"})
	denied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_denied_total",
		Help: "Checkout submissions rejected by the purchase gate.",
	}, []string{"mode", "reason"})
	reg.MustRegister(duration, accepted, denied)
	return &CheckoutMetrics{
		duration: duration,
		accepted: accepted,
		denied:   denied,
	}
}

// ObserveDuration records the submission duration for the given mode.
func (c *CheckoutMetrics) ObserveDuration(mode string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(mode)).Observe(duration.Seconds())
}

// IncAccepted increments the accepted counter for the given mode.
func (c *CheckoutMetrics) IncAccepted(mode string) {
	if c == nil || c.accepted == nil {
		return
	}
	c.accepted.WithLabelValues(normalizeLabel(mode)).Inc()
}

// IncDenied increments the denied counter for the given mode and gate reason.
func (c *CheckoutMetrics) IncDenied(mode, reason string) {
	if c == nil || c.denied == nil {
		return
	}
	c.denied.WithLabelValues(normalizeLabel(mode), normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
