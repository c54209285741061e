package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type ProviderStagePrometheusMetrics struct {
	stageDurationHist *prometheus.HistogramVec
	stageOutcomeCount *prometheus.CounterVec
}

func newProviderStagePrometheusMetrics(reg prometheus.Registerer) *ProviderStagePrometheusMetrics {
	stageDurationHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_provider_stage_duration_seconds",
			Help:    "Duration of each provider orchestration stage in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider", "stage"},
	)

	stageOutcomeCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_provider_stage_outcomes_total",
			Help: "Provider stage outcomes by status (completed, skipped, failed).",
		},
		[]string{"provider", "stage", "status"},
	)

	reg.MustRegister(stageDurationHist, stageOutcomeCount)

	return &ProviderStagePrometheusMetrics{
		stageDurationHist: stageDurationHist,
		stageOutcomeCount: stageOutcomeCount,
	}
}

func (m *ProviderStagePrometheusMetrics) Record(duration time.Duration, provider, stage, status string) {
	if m == nil {
		return
	}

	m.stageDurationHist.WithLabelValues(provider, stage).Observe(duration.Seconds())
	m.stageOutcomeCount.WithLabelValues(provider, stage, status).Inc()
}
