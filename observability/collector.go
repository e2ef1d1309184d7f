// Package observability provides metrics collection for routing outcomes
package observability

// Collector defines the interface for collecting routing metrics
type Collector interface {
	// RecordOutcome records how an attempt ended (presented, no_match,
	// generation_failed, ...) for the scheme or host it was routed under.
	RecordOutcome(outcome, discriminator string)

	// RecordDeferral records an attempt parked at stage. replaced is true
	// when a previously parked attempt was dropped.
	RecordDeferral(stage string, replaced bool)

	// RecordRegistration records a route sequence registered for a scheme
	// or host.
	RecordRegistration(class, discriminator string, patterns int)
}

// NoOpCollector is a no-op implementation of Collector
type NoOpCollector struct{}

func (n *NoOpCollector) RecordOutcome(outcome, discriminator string)                  {}
func (n *NoOpCollector) RecordDeferral(stage string, replaced bool)                   {}
func (n *NoOpCollector) RecordRegistration(class, discriminator string, patterns int) {}
