// Package metrics holds the backend-neutral instruments the core packages
// report through. Adapters (see adapters/prometheus) implement them; the core
// never imports a metrics backend directly.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes:
//
//	defer m.RunDuration().ObserveDuration()
type Timer interface {
	ObserveDuration()
}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopTimer returns a Timer that records nothing.
func NopTimer() Timer { return nopTimer{} }
