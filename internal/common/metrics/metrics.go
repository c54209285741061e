package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics interface {
	PrometheusRegisterer() prometheus.Registerer
	GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics
	GetProviderStagePrometheus() *ProviderStagePrometheusMetrics
}

type metrics struct {
	reg                  prometheus.Registerer
	httpClientMetrics    *HTTPClientPrometheusMetrics
	providerStageMetrics *ProviderStagePrometheusMetrics
}

func New() Metrics {
	reg := prometheus.DefaultRegisterer
	return &metrics{
		reg:                  reg,
		httpClientMetrics:    newHTTPClientPrometheusMetrics(reg),
		providerStageMetrics: newProviderStagePrometheusMetrics(reg),
	}
}

func (m *metrics) PrometheusRegisterer() prometheus.Registerer {
	return m.reg
}

func (m *metrics) GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics {
	return m.httpClientMetrics
}

func (m *metrics) GetProviderStagePrometheus() *ProviderStagePrometheusMetrics {
	return m.providerStageMetrics
}
