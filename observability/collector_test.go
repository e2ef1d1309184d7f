package observability

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCollector(t *testing.T) {
	collector := NewStatsCollector()

	t.Run("RecordOutcome", func(t *testing.T) {
		collector.RecordOutcome("presented", "myapp")
		collector.RecordOutcome("no_match", "myapp")
		collector.RecordOutcome("no_match", "")

		stats := collector.GetRoutingStats()
		assert.Equal(t, int64(3), stats.TotalAttempts)
		assert.Equal(t, int64(1), stats.Outcomes["presented"])
		assert.Equal(t, int64(2), stats.Outcomes["no_match"])
		assert.Equal(t, int64(1), stats.OutcomesByDiscriminator["myapp/no_match"])
		assert.Len(t, stats.OutcomesByDiscriminator, 2)
	})

	t.Run("RecordDeferral", func(t *testing.T) {
		collector.Reset()

		collector.RecordDeferral("generation", false)
		collector.RecordDeferral("presentation", true)

		stats := collector.GetDeferralStats()
		assert.Equal(t, int64(2), stats.TotalDeferrals)
		assert.Equal(t, int64(1), stats.ByStage["generation"])
		assert.Equal(t, int64(1), stats.Dropped)
	})

	t.Run("RecordRegistration replaces counts", func(t *testing.T) {
		collector.Reset()

		collector.RecordRegistration("native_scheme", "myapp", 3)
		collector.RecordRegistration("native_scheme", "myapp", 1)

		stats := collector.GetRegistryStats()
		assert.Equal(t, int64(2), stats.Registrations)
		assert.Equal(t, 1, stats.Patterns["native_scheme/myapp"])
	})

	t.Run("GetStats", func(t *testing.T) {
		collector.Reset()
		collector.RecordOutcome("presented", "myapp")

		stats := collector.GetStats()
		assert.Contains(t, stats, "routing")
		assert.Contains(t, stats, "deferrals")
		assert.Contains(t, stats, "registry")
		assert.Contains(t, stats, "timestamp")
	})

	t.Run("snapshots are copies", func(t *testing.T) {
		collector.Reset()
		collector.RecordOutcome("presented", "myapp")

		stats := collector.GetRoutingStats()
		stats.Outcomes["presented"] = 100
		assert.Equal(t, int64(1), collector.GetRoutingStats().Outcomes["presented"])
	})
}

func TestStatsCollector_Concurrent(t *testing.T) {
	collector := NewStatsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.RecordOutcome("presented", "myapp")
			collector.RecordDeferral("generation", false)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), collector.GetRoutingStats().TotalAttempts)
	assert.Equal(t, int64(50), collector.GetDeferralStats().TotalDeferrals)
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	collector.RecordOutcome("presented", "myapp")
	collector.RecordOutcome("presented", "myapp")
	collector.RecordDeferral("generation", true)
	collector.RecordRegistration("link_host", "example.com", 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.outcomes.WithLabelValues("presented", "myapp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.deferrals.WithLabelValues("generation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.dropped))
	assert.Equal(t, 4.0, testutil.ToFloat64(collector.patterns.WithLabelValues("link_host", "example.com")))

	// Registering twice on the same registry fails.
	_, err = NewPrometheusCollector(reg)
	assert.Error(t, err)
}

func TestNoOpCollector(t *testing.T) {
	var c Collector = &NoOpCollector{}
	assert.NotPanics(t, func() {
		c.RecordOutcome("presented", "myapp")
		c.RecordDeferral("generation", true)
		c.RecordRegistration("native_scheme", "myapp", 1)
	})
}
