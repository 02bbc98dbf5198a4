// Package prometheus provides Prometheus implementations of the worker and
// service metrics interfaces.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jeffrey-a-meunier/gsi-code-challenge/core/metrics"
)

// timer wraps a Prometheus observer to implement the Timer interface.
type timer struct {
	o     prometheus.Observer
	start time.Time
}

func newTimer(o prometheus.Observer) metrics.Timer {
	return &timer{o: o, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.o.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1,
}

// AllMetrics bundles the Prometheus implementations for both layers.
type AllMetrics struct {
	Worker  *workerMetrics
	Service *serviceMetrics
}

// NewAllMetrics registers and returns metrics for workers and the lookup
// service on reg.
func NewAllMetrics(reg prometheus.Registerer) *AllMetrics {
	return &AllMetrics{
		Worker:  NewWorkerMetrics(reg).(*workerMetrics),
		Service: NewServiceMetrics(reg).(*serviceMetrics),
	}
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
