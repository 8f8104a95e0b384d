package batchverify

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels of the records counter.
const (
	labelValid   = "valid"
	labelInvalid = "invalid"
)

// Metrics holds the Prometheus collectors updated by a Client.
type Metrics struct {
	records  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the batch verification collectors and registers them
// with reg.  Registering twice on the same registry reuses the collectors
// that are already there.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecckit",
		Subsystem: "batchverify",
		Name:      "records_total",
		Help:      "Signatures checked, by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ecckit",
		Subsystem: "batchverify",
		Name:      "batch_duration_seconds",
		Help:      "Wall time spent verifying one batch.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	m := &Metrics{records: records, duration: duration}
	if err := register(reg, records, func(existing prometheus.Collector) {
		m.records = existing.(*prometheus.CounterVec)
	}); err != nil {
		return nil, err
	}
	if err := register(reg, duration, func(existing prometheus.Collector) {
		m.duration = existing.(prometheus.Histogram)
	}); err != nil {
		return nil, err
	}
	return m, nil
}

func register(reg prometheus.Registerer, c prometheus.Collector, reuse func(prometheus.Collector)) error {
	err := reg.Register(c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		reuse(are.ExistingCollector)
		return nil
	}
	return err
}

func (m *Metrics) observe(valid bool) {
	if m == nil {
		return
	}
	if valid {
		m.records.WithLabelValues(labelValid).Inc()
	} else {
		m.records.WithLabelValues(labelInvalid).Inc()
	}
}
