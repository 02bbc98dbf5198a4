// Package metrics defines the minimal instrumentation vocabulary shared by
// the core packages, keeping them decoupled from any metrics backend.
// adapters/prometheus provides the real implementation; the nop variants
// here are used when no backend is configured.
package metrics

// Timer measures the duration of one operation. Create it when the
// operation starts and call ObserveDuration when it completes:
//
//	defer m.LookupDuration().ObserveDuration()
type Timer interface {
	ObserveDuration()
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopTimer returns a Timer that records nothing.
func NopTimer() Timer { return nopTimer{} }
