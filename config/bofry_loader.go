package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	bofryconfig "github.com/Bofry/config"
)

// DefaultEnvPrefix prefixes every environment variable read by BofryLoader.
const DefaultEnvPrefix = "LINKROUTE_"

// BofryLoader is a configuration loader using Bofry/config library. Sources
// are applied in order, later ones winning:
// - defaults
// - YAML file
// - .env file
// - environment variables
// - command line arguments (--router-watch=true), when enabled
type BofryLoader struct {
	yamlFile       string
	dotEnvFile     string
	envPrefix      string
	useCommandArgs bool
	args           []string
}

// NewBofryLoader creates a new Bofry configuration loader
func NewBofryLoader() *BofryLoader {
	return &BofryLoader{
		envPrefix: DefaultEnvPrefix,
	}
}

// WithCommandArguments enables parsing command line arguments. Without
// args os.Args[1:] is used.
func (l *BofryLoader) WithCommandArguments(args ...string) *BofryLoader {
	l.useCommandArgs = true
	l.args = args
	return l
}

// WithYAMLFile sets the YAML configuration file path
func (l *BofryLoader) WithYAMLFile(path string) *BofryLoader {
	l.yamlFile = path
	return l
}

// WithDotEnvFile sets the .env file path
func (l *BofryLoader) WithDotEnvFile(path string) *BofryLoader {
	l.dotEnvFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix
func (l *BofryLoader) WithEnvPrefix(prefix string) *BofryLoader {
	l.envPrefix = prefix
	return l
}

// Load loads configuration from various sources
func (l *BofryLoader) Load(cfg *Config) error {
	*cfg = *DefaultConfig()

	if l.useCommandArgs {
		l.applyCommandArgs()
	}

	// Bofry/config panics on errors, so we need to recover
	var loadErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					loadErr = err
				} else {
					loadErr = fmt.Errorf("configuration loading panic: %v", r)
				}
			}
		}()

		configService := bofryconfig.NewConfigurationService(cfg)

		// Missing files are skipped; Bofry panics on them
		if l.yamlFile != "" {
			if _, err := os.Stat(l.yamlFile); err == nil {
				configService.LoadYamlFile(l.yamlFile)
			} else if !os.IsNotExist(err) {
				loadErr = fmt.Errorf("failed to check YAML file: %w", err)
				return
			}
		}

		if l.dotEnvFile != "" {
			if _, err := os.Stat(l.dotEnvFile); err == nil {
				configService.LoadDotEnvFile(l.dotEnvFile)
			} else if !os.IsNotExist(err) {
				loadErr = fmt.Errorf("failed to check .env file: %w", err)
				return
			}
		}

		configService.LoadEnvironmentVariables(strings.TrimSuffix(l.envPrefix, "_"))
	}()

	if loadErr != nil {
		return loadErr
	}

	// Bofry does not walk nested sections for env vars
	if err := (envLoader{prefix: l.envPrefix}).load(cfg); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	return cfg.Validate()
}

// applyCommandArgs parses command line arguments in the form --name=value
// and sets them as environment variables using the configured prefix.
func (l *BofryLoader) applyCommandArgs() {
	args := l.args
	if args == nil {
		args = os.Args[1:]
	}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		kv := strings.SplitN(arg[2:], "=", 2)
		if len(kv) != 2 {
			continue
		}
		name := strings.ToUpper(strings.ReplaceAll(kv[0], "-", "_"))
		os.Setenv(l.envPrefix+name, kv[1])
	}
}

// Load reads configuration from yamlFile, a .env file next to it and the
// environment.
func Load(yamlFile string) (*Config, error) {
	dotEnvFile := ""
	if yamlFile != "" {
		possible := filepath.Join(filepath.Dir(yamlFile), ".env")
		if _, err := os.Stat(possible); err == nil {
			dotEnvFile = possible
		}
	}

	cfg := &Config{}
	err := NewBofryLoader().
		WithYAMLFile(yamlFile).
		WithDotEnvFile(dotEnvFile).
		Load(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
