package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "iris"

// Prometheus holds the collectors exported by the service.
type Prometheus struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors without registering them.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Calls to the prediction service by endpoint and outcome.",
			}, []string{"endpoint", "outcome"}),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_seconds",
				Help:      "Latency of calls to the prediction service.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"endpoint"}),
	}
}

// Handler exposes the registered collectors.
func Handler() http.Handler {
	return promhttp.Handler()
}
