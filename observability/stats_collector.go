package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector is a lightweight in-memory collector that keeps counters
// only, so memory stays bounded by the number of distinct outcomes and
// discriminators.
type StatsCollector struct {
	// Atomic counters for high-frequency metrics
	attemptCount  int64
	deferralCount int64

	mu        sync.RWMutex
	routing   RoutingStats
	deferrals DeferralStats
	registry  RegistryStats
}

// RoutingStats holds aggregated attempt outcomes
type RoutingStats struct {
	TotalAttempts           int64            `json:"total_attempts"`
	Outcomes                map[string]int64 `json:"outcomes"`
	OutcomesByDiscriminator map[string]int64 `json:"outcomes_by_discriminator"`
	LastUpdated             time.Time        `json:"last_updated"`
}

// DeferralStats holds deferred route statistics
type DeferralStats struct {
	TotalDeferrals int64            `json:"total_deferrals"`
	ByStage        map[string]int64 `json:"by_stage"`
	Dropped        int64            `json:"dropped"`
	LastUpdated    time.Time        `json:"last_updated"`
}

// RegistryStats holds the current route table shape
type RegistryStats struct {
	Registrations int64          `json:"registrations"`
	Patterns      map[string]int `json:"patterns"`
	LastUpdated   time.Time      `json:"last_updated"`
}

// NewStatsCollector creates a new in-memory collector
func NewStatsCollector() *StatsCollector {
	c := &StatsCollector{}
	c.Reset()
	return c
}

// RecordOutcome records the end of an attempt
func (c *StatsCollector) RecordOutcome(outcome, discriminator string) {
	atomic.AddInt64(&c.attemptCount, 1)

	c.mu.Lock()
	c.routing.TotalAttempts = atomic.LoadInt64(&c.attemptCount)
	c.routing.Outcomes[outcome]++
	if discriminator != "" {
		c.routing.OutcomesByDiscriminator[discriminator+"/"+outcome]++
	}
	c.routing.LastUpdated = time.Now()
	c.mu.Unlock()
}

// RecordDeferral records a parked attempt
func (c *StatsCollector) RecordDeferral(stage string, replaced bool) {
	atomic.AddInt64(&c.deferralCount, 1)

	c.mu.Lock()
	c.deferrals.TotalDeferrals = atomic.LoadInt64(&c.deferralCount)
	c.deferrals.ByStage[stage]++
	if replaced {
		c.deferrals.Dropped++
	}
	c.deferrals.LastUpdated = time.Now()
	c.mu.Unlock()
}

// RecordRegistration records a registered route sequence. The pattern count
// replaces the previous one for the discriminator, like the registration
// itself.
func (c *StatsCollector) RecordRegistration(class, discriminator string, patterns int) {
	c.mu.Lock()
	c.registry.Registrations++
	c.registry.Patterns[class+"/"+discriminator] = patterns
	c.registry.LastUpdated = time.Now()
	c.mu.Unlock()
}

// GetStats returns current statistics snapshot
func (c *StatsCollector) GetStats() map[string]any {
	return map[string]any{
		"routing":   c.GetRoutingStats(),
		"deferrals": c.GetDeferralStats(),
		"registry":  c.GetRegistryStats(),
		"timestamp": time.Now().Unix(),
	}
}

// GetRoutingStats returns a copy of the outcome statistics
func (c *StatsCollector) GetRoutingStats() RoutingStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.routing
	s.Outcomes = copyCounts(c.routing.Outcomes)
	s.OutcomesByDiscriminator = copyCounts(c.routing.OutcomesByDiscriminator)
	return s
}

// GetDeferralStats returns a copy of the deferral statistics
func (c *StatsCollector) GetDeferralStats() DeferralStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.deferrals
	s.ByStage = copyCounts(c.deferrals.ByStage)
	return s
}

// GetRegistryStats returns a copy of the registry statistics
func (c *StatsCollector) GetRegistryStats() RegistryStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.registry
	s.Patterns = make(map[string]int, len(c.registry.Patterns))
	for k, v := range c.registry.Patterns {
		s.Patterns[k] = v
	}
	return s
}

// Reset clears all statistics (useful for testing)
func (c *StatsCollector) Reset() {
	atomic.StoreInt64(&c.attemptCount, 0)
	atomic.StoreInt64(&c.deferralCount, 0)

	c.mu.Lock()
	c.routing = RoutingStats{
		Outcomes:                make(map[string]int64),
		OutcomesByDiscriminator: make(map[string]int64),
	}
	c.deferrals = DeferralStats{
		ByStage: make(map[string]int64),
	}
	c.registry = RegistryStats{
		Patterns: make(map[string]int),
	}
	c.mu.Unlock()
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
