// Package config provides configuration management for the linkroute tools
package config

import (
	"time"

	"github.com/yshengliao/linkroute/pkg/validation"
)

// Config represents the application configuration structure
type Config struct {
	Logger  LoggerConfig  `yaml:"logger" env:"LOGGER"`
	Router  RouterConfig  `yaml:"router" env:"ROUTER"`
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level            string   `yaml:"level" env:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Encoding         string   `yaml:"encoding" env:"ENCODING" default:"json" validate:"oneof=json console"`
	OutputPaths      []string `yaml:"output_paths" env:"OUTPUT_PATHS" default:"stderr" validate:"required,min=1"`
	ErrorOutputPaths []string `yaml:"error_output_paths" env:"ERROR_OUTPUT_PATHS" default:"stderr"`
}

// RouterConfig holds route map and classification settings
type RouterConfig struct {
	RouteMap      string        `yaml:"route_map" env:"ROUTE_MAP"`
	Watch         bool          `yaml:"watch" env:"WATCH" default:"false"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"WATCH_DEBOUNCE" default:"200ms" validate:"min=0"`
	LinkSchemes   []string      `yaml:"link_schemes" env:"LINK_SCHEMES" default:"http,https" validate:"required,min=1,dive,discriminator"`
}

// MetricsConfig selects where routing outcomes are recorded
type MetricsConfig struct {
	Backend string `yaml:"backend" env:"BACKEND" default:"none" validate:"oneof=none stats prometheus"`
	Address string `yaml:"address" env:"ADDRESS" default:":9090" validate:"required"`
}

// Loader interface for configuration loading
type Loader interface {
	Load(cfg *Config) error
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:            "info",
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		},
		Router: RouterConfig{
			WatchDebounce: 200 * time.Millisecond,
			LinkSchemes:   []string{"http", "https"},
		},
		Metrics: MetricsConfig{
			Backend: "none",
			Address: ":9090",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validation.NewValidator().Validate(c); err != nil {
		return validation.AsConfigurationError(err, "invalid configuration")
	}
	return nil
}
