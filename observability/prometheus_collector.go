package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "linkroute"

// PrometheusCollector exports routing metrics to Prometheus.
type PrometheusCollector struct {
	outcomes  *prometheus.CounterVec
	deferrals *prometheus.CounterVec
	dropped   prometheus.Counter
	patterns  *prometheus.GaugeVec
}

// NewPrometheusCollector creates the routing metrics and registers them on
// reg. A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "route_outcomes_total",
				Help:      "Total number of routing attempts by outcome",
			},
			[]string{"outcome", "discriminator"},
		),
		deferrals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deferred_routes_total",
				Help:      "Total number of deferred routing attempts by stage",
			},
			[]string{"stage"},
		),
		dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deferred_routes_dropped_total",
				Help:      "Deferred attempts dropped because another attempt was deferred",
			},
		),
		patterns: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "registered_patterns",
				Help:      "Number of patterns registered per scheme or host",
			},
			[]string{"class", "discriminator"},
		),
	}

	for _, m := range []prometheus.Collector{c.outcomes, c.deferrals, c.dropped, c.patterns} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordOutcome increments the outcome counter
func (c *PrometheusCollector) RecordOutcome(outcome, discriminator string) {
	c.outcomes.WithLabelValues(outcome, discriminator).Inc()
}

// RecordDeferral increments the deferral counters
func (c *PrometheusCollector) RecordDeferral(stage string, replaced bool) {
	c.deferrals.WithLabelValues(stage).Inc()
	if replaced {
		c.dropped.Inc()
	}
}

// RecordRegistration sets the pattern gauge of the discriminator
func (c *PrometheusCollector) RecordRegistration(class, discriminator string, patterns int) {
	c.patterns.WithLabelValues(class, discriminator).Set(float64(patterns))
}
