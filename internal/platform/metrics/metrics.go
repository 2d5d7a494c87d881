package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process level Prometheus metrics.
type Metrics struct {
	TriggersJoined *prometheus.CounterVec
}

// New creates and registers process level metrics.
func New() *Metrics {
	return &Metrics{
		TriggersJoined: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "keyproof_triggers_joined_total",
			Help: "Sweep triggers that joined an in-flight run of the same driver instead of starting a new one",
		}, []string{"driver"}),
	}
}

// IncrementTriggersJoined records a trigger suppressed by single-flight.
func (m *Metrics) IncrementTriggersJoined(driver string) {
	if m != nil {
		m.TriggersJoined.WithLabelValues(driver).Inc()
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
