package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/classify"
	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/metrics"
)

// serviceMetrics implements classify.ServiceMetrics using Prometheus.
type serviceMetrics struct {
	lookupDuration prometheus.Histogram
	lookupsTotal   *prometheus.CounterVec
	workersSpawned prometheus.Counter
	workersActive  prometheus.Gauge
}

// NewServiceMetrics creates a Prometheus implementation of classify.ServiceMetrics.
func NewServiceMetrics(reg prometheus.Registerer) classify.ServiceMetrics {
	m := &serviceMetrics{
		lookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "alnum_classify_lookup_duration_seconds",
			Help:    "Lookup round-trip time in seconds",
			Buckets: defaultBuckets,
		}),

		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alnum_classify_lookups_total",
			Help: "Total number of lookups served",
		}, []string{"success"}),

		workersSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alnum_classify_workers_spawned_total",
			Help: "Total number of workers spawned",
		}),

		workersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "alnum_classify_workers_active",
			Help: "Current number of live workers",
		}),
	}

	reg.MustRegister(
		m.lookupDuration,
		m.lookupsTotal,
		m.workersSpawned,
		m.workersActive,
	)

	return m
}

func (m *serviceMetrics) LookupDuration() metrics.Timer {
	return newTimer(m.lookupDuration)
}

func (m *serviceMetrics) LookupCompleted(success bool) {
	m.lookupsTotal.WithLabelValues(boolToStr(success)).Inc()
}

func (m *serviceMetrics) WorkerSpawned() {
	m.workersSpawned.Inc()
}

func (m *serviceMetrics) WorkersActive(count int) {
	m.workersActive.Set(float64(count))
}

var _ classify.ServiceMetrics = (*serviceMetrics)(nil)
