package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation results recorded in metrics.
const (
	resultOK   = "ok"
	resultFail = "fail"
)

// Metrics counts and times entity service operations. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the service metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wms",
			Subsystem: "service",
			Name:      "operations_total",
			Help:      "Entity service operations by outcome.",
		}, []string{"entity", "operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wms",
			Subsystem: "service",
			Name:      "operation_duration_seconds",
			Help:      "Entity service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "operation"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

func (m *Metrics) observe(entity, operation string, start time.Time, ok bool) {
	if m == nil {
		return
	}
	result := resultOK
	if !ok {
		result = resultFail
	}
	m.operations.WithLabelValues(entity, operation, result).Inc()
	m.duration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}
