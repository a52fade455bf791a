package loader

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records load outcomes and latency.
type Metrics struct {
	loads    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers the loader collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fieldtasks",
			Subsystem: "loader",
			Name:      "loads_total",
			Help:      "Aggregate loads by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fieldtasks",
			Subsystem: "loader",
			Name:      "load_duration_seconds",
			Help:      "Time spent loading one aggregate.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.loads, m.duration)
	return m
}

func (m *Metrics) observe(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.loads.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "storage_error"
	}
}
