package relay

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	operationAnalyze = "analyze"
	operationHealth  = "health"

	outcomeSuccess = "success"
)

// Metrics records upstream call outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the relay collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scout",
			Subsystem: "relay",
			Name:      "requests_total",
			Help:      "Upstream calls made by the relay, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scout",
			Subsystem: "relay",
			Name:      "request_duration_seconds",
			Help:      "Upstream call latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(operation, outcomeOf(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	if re, ok := AsError(err); ok {
		return string(re.Kind)
	}
	return "error"
}
