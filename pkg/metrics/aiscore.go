package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes reported by the AI scoring client.
const (
	AIScoreOutcomeScored   = "scored"
	AIScoreOutcomeSkipped  = "skipped"
	AIScoreOutcomeDisabled = "disabled"
	AIScoreOutcomeFailed   = "failed"
)

// AIScoreMetrics tracks calls to the external image scorer.
type AIScoreMetrics struct {
	duration prometheus.Histogram
	outcomes *prometheus.CounterVec
}

// NewAIScoreMetrics registers the scoring metrics on the provided registerer.
func NewAIScoreMetrics(reg prometheus.Registerer) *AIScoreMetrics {
	if reg == nil {
		return &AIScoreMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aiscore_request_duration_seconds",
		Help:    "Latency of calls to the AI scoring service.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 20},
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "aiscore_requests_total",
		Help: "AI scoring attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(duration, outcomes)
	return &AIScoreMetrics{duration: duration, outcomes: outcomes}
}

// ObserveDuration records the latency of a call that reached the network.
func (m *AIScoreMetrics) ObserveDuration(elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
}

// IncOutcome counts a scoring attempt.
func (m *AIScoreMetrics) IncOutcome(outcome string) {
	if m == nil || m.outcomes == nil {
		return
	}
	m.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}
