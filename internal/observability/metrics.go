package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports pipeline telemetry to Prometheus. A nil *Metrics is a
// valid no-op recorder, so callers never need to branch on instrumentation.
type Metrics struct {
	extractions       *prometheus.CounterVec
	mockFallbacks     *prometheus.CounterVec
	llmRequests       *prometheus.CounterVec
	llmDuration       *prometheus.HistogramVec
	plansGenerated    prometheus.Counter
	planDuration      prometheus.Histogram
	activeExtractions prometheus.Gauge
}

// NewMetrics registers the tripcraft collectors against reg. Passing nil
// uses the default registerer. Re-registration reuses existing collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "tripcraft"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Content extraction attempts by platform and outcome.",
		}, []string{"platform", "outcome"}),
		mockFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_mock_fallbacks_total",
			Help:      "Extractions that fell back to canned payloads after a scrape failure.",
		}, []string{"platform"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM completion requests by model and outcome.",
		}, []string{"model", "outcome"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Latency of LLM completion requests.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"model"}),
		plansGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_generated_total",
			Help:      "Travel plans successfully generated.",
		}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_generation_duration_seconds",
			Help:      "End to end latency of travel plan generation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		activeExtractions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_extractions",
			Help:      "Extractions currently in flight.",
		}),
	}

	collectors := []prometheus.Collector{
		m.extractions, m.mockFallbacks, m.llmRequests, m.llmDuration,
		m.plansGenerated, m.planDuration, m.activeExtractions,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// ExtractionSucceeded counts a completed extraction for the platform.
func (m *Metrics) ExtractionSucceeded(platform string) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(platform, "success").Inc()
}

// ExtractionFailed counts an extraction that exhausted retries.
func (m *Metrics) ExtractionFailed(platform string) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(platform, "failure").Inc()
}

// MockFallback counts a scrape failure that was masked by a canned payload.
func (m *Metrics) MockFallback(platform string) {
	if m == nil {
		return
	}
	m.mockFallbacks.WithLabelValues(platform).Inc()
}

// ExtractionStarted and ExtractionFinished bracket in-flight extractions.
func (m *Metrics) ExtractionStarted() {
	if m == nil {
		return
	}
	m.activeExtractions.Inc()
}

func (m *Metrics) ExtractionFinished() {
	if m == nil {
		return
	}
	m.activeExtractions.Dec()
}

// RecordLLMRequest tracks one completion round trip.
func (m *Metrics) RecordLLMRequest(model string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.llmRequests.WithLabelValues(model, outcome).Inc()
	m.llmDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordPlanGenerated tracks a successful plan generation.
func (m *Metrics) RecordPlanGenerated(duration time.Duration) {
	if m == nil {
		return
	}
	m.plansGenerated.Inc()
	m.planDuration.Observe(duration.Seconds())
}
