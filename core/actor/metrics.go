package actor

import "github.com/jeffrey-a-meunier/gsi-code-challenge/core/metrics"

// Request outcomes as recorded by WorkerMetrics.RequestCompleted.
const (
	OutcomeOK        = "ok"
	OutcomeWrongKey  = "wrong_key"
	OutcomeWrongKind = "wrong_kind"
)

// WorkerMetrics receives instrumentation events from workers.
// All methods must be safe for concurrent use.
type WorkerMetrics interface {
	// RequestDuration times the handling of one request.
	RequestDuration() metrics.Timer
	// RequestCompleted counts a handled request by outcome.
	RequestCompleted(outcome string)
	// MailboxDepth reports the current depth of a worker's mailbox.
	MailboxDepth(workerID string, depth int)
}

type nopWorkerMetrics struct{}

func (nopWorkerMetrics) RequestDuration() metrics.Timer { return metrics.NopTimer() }
func (nopWorkerMetrics) RequestCompleted(string)        {}
func (nopWorkerMetrics) MailboxDepth(string, int)       {}

// NopWorkerMetrics returns a WorkerMetrics that records nothing.
func NopWorkerMetrics() WorkerMetrics { return nopWorkerMetrics{} }
