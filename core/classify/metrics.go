package classify

import "github.com/jeffrey-a-meunier/gsi-code-challenge/core/metrics"

// ServiceMetrics receives instrumentation events from the lookup service.
// All methods must be safe for concurrent use.
type ServiceMetrics interface {
	// LookupDuration times one request/reply round trip.
	LookupDuration() metrics.Timer
	// LookupCompleted counts a finished lookup.
	LookupCompleted(success bool)
	// WorkerSpawned counts one lazily created worker.
	WorkerSpawned()
	// WorkersActive reports the current number of live workers.
	WorkersActive(count int)
}

type nopServiceMetrics struct{}

func (nopServiceMetrics) LookupDuration() metrics.Timer { return metrics.NopTimer() }
func (nopServiceMetrics) LookupCompleted(bool)          {}
func (nopServiceMetrics) WorkerSpawned()                {}
func (nopServiceMetrics) WorkersActive(int)             {}

// NopServiceMetrics returns a ServiceMetrics that records nothing.
func NopServiceMetrics() ServiceMetrics { return nopServiceMetrics{} }
