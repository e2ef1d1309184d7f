package dispatch

import (
	"github.com/google/uuid"
	"github.com/yshengliao/linkroute/observability"
	"github.com/yshengliao/linkroute/route"
	"go.uber.org/zap"
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDefaultPresentation sets the presentation used for generated actions
// that do not bind one themselves.
func WithDefaultPresentation(p route.Presentation) Option {
	return func(e *Engine) {
		e.defaultPresentation = p
	}
}

// WithCollector sets the metrics collector. Defaults to a no-op collector.
func WithCollector(c observability.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.collector = c
		}
	}
}

// WithLinkSchemes sets the schemes routed by host instead of by scheme.
func WithLinkSchemes(schemes ...string) Option {
	return func(e *Engine) {
		if len(schemes) > 0 {
			e.linkSchemes = schemes
		}
	}
}

// WithIDGenerator sets how attempt ids are generated. Defaults to UUID v4.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// generateAttemptID generates a new attempt ID using UUID v4
func generateAttemptID() string {
	return uuid.New().String()
}
