package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector handles metrics collection and reporting for the
// action-intent engine.
type MetricsCollector struct {
	registry *prometheus.Registry

	turnsTotal           *prometheus.CounterVec
	confidence           *prometheus.HistogramVec
	recommendationsTotal *prometheus.CounterVec
	outcomesTotal        *prometheus.CounterVec
	turnLatency          prometheus.Histogram
}

// NewMetricsCollector creates a collector with its own registry.
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	turnsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_turns_total",
			Help: "Chat turns processed, by classified intent and scorer decision",
		},
		[]string{"intent", "decision"},
	)

	confidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "action_confidence",
			Help:    "Adjusted confidence of proposed actions",
			Buckets: prometheus.LinearBuckets(0, 0.1, 10),
		},
		[]string{"intent"},
	)

	recommendationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Upsell suggestions surfaced, by suggestion type",
		},
		[]string{"type"},
	)

	outcomesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_outcomes_total",
			Help: "Resolved action outcomes reported by the executor",
		},
		[]string{"result"},
	)

	turnLatency := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "turn_processing_seconds",
			Help:    "End-to-end engine time per chat turn",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	for _, collector := range []prometheus.Collector{
		turnsTotal, confidence, recommendationsTotal, outcomesTotal, turnLatency,
	} {
		registry.MustRegister(collector)
	}

	return &MetricsCollector{
		registry:             registry,
		turnsTotal:           turnsTotal,
		confidence:           confidence,
		recommendationsTotal: recommendationsTotal,
		outcomesTotal:        outcomesTotal,
		turnLatency:          turnLatency,
	}
}

// Registry exposes the backing registry for the metrics endpoint.
func (mc *MetricsCollector) Registry() *prometheus.Registry {
	return mc.registry
}

// RecordTurn records one classified and scored chat turn.
func (mc *MetricsCollector) RecordTurn(intent, decision string, adjustedConfidence float64, seconds float64) {
	mc.turnsTotal.WithLabelValues(intent, decision).Inc()
	mc.confidence.WithLabelValues(intent).Observe(adjustedConfidence)
	mc.turnLatency.Observe(seconds)
}

// RecordRecommendation counts one surfaced suggestion.
func (mc *MetricsCollector) RecordRecommendation(suggestionType string) {
	mc.recommendationsTotal.WithLabelValues(suggestionType).Inc()
}

// RecordOutcome counts a resolved action outcome.
func (mc *MetricsCollector) RecordOutcome(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	mc.outcomesTotal.WithLabelValues(result).Inc()
}
