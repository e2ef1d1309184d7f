package fixture

import (
	"time"

	"github.com/yshengliao/linkroute/config"
)

// TestConfig returns a test configuration with sensible defaults
func TestConfig(routeMap string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Logger.Level = "error" // Reduce noise in tests
	cfg.Router.RouteMap = routeMap
	cfg.Router.WatchDebounce = 20 * time.Millisecond
	cfg.Metrics.Backend = "stats"
	return cfg
}

// StatsConfigYAML is a config file enabling the in-memory stats backend
const StatsConfigYAML = `
logger:
  level: error
metrics:
  backend: stats
`
