package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/actor"
	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/metrics"
)

// workerMetrics implements actor.WorkerMetrics using Prometheus.
type workerMetrics struct {
	requestDuration prometheus.Histogram
	requestsTotal   *prometheus.CounterVec
	mailboxDepth    *prometheus.GaugeVec
}

// NewWorkerMetrics creates a Prometheus implementation of actor.WorkerMetrics.
func NewWorkerMetrics(reg prometheus.Registerer) actor.WorkerMetrics {
	m := &workerMetrics{
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "alnum_worker_request_duration_seconds",
			Help:    "Request handling time in seconds",
			Buckets: defaultBuckets,
		}),

		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alnum_worker_requests_total",
			Help: "Total number of requests handled by workers",
		}, []string{"outcome"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "alnum_worker_mailbox_depth",
			Help: "Current mailbox queue depth",
		}, []string{"worker_id"}),
	}

	reg.MustRegister(
		m.requestDuration,
		m.requestsTotal,
		m.mailboxDepth,
	)

	return m
}

func (m *workerMetrics) RequestDuration() metrics.Timer {
	return newTimer(m.requestDuration)
}

func (m *workerMetrics) RequestCompleted(outcome string) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

func (m *workerMetrics) MailboxDepth(workerID string, depth int) {
	m.mailboxDepth.WithLabelValues(workerID).Set(float64(depth))
}

var _ actor.WorkerMetrics = (*workerMetrics)(nil)
