package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome classifies a call to the prediction service.
type Outcome string

const (
	OK        Outcome = "ok"
	HTTPError Outcome = "http_error"
	Transport Outcome = "transport_error"
	Decode    Outcome = "decode_error"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
	counts:     make(map[string]map[Outcome]int),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Requests, Observer.prometheus.Latency)
}

// Metrics records calls both to prometheus and to an in-process tally.
type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
	counts     map[string]map[Outcome]int
}

// Observe records a single call to the given endpoint.
func (m *Metrics) Observe(endpoint string, outcome Outcome, duration time.Duration) {
	m.prometheus.Requests.WithLabelValues(endpoint, string(outcome)).Inc()
	m.prometheus.Latency.WithLabelValues(endpoint).Observe(duration.Seconds())
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.counts[endpoint]; !ok {
		m.counts[endpoint] = make(map[Outcome]int)
	}
	m.counts[endpoint][outcome]++
}

// Count returns the number of calls observed for the endpoint and outcome.
func (m *Metrics) Count(endpoint string, outcome Outcome) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.counts[endpoint][outcome]
}
