package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yshengliao/linkroute/config"
	"go.uber.org/zap"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	routesPath string
}

func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "linkroute",
		Short: "linkroute - route map tooling",
		Long: `linkroute checks route maps, shows how identifiers match them and
dispatches identifiers through a console presenter.

Route maps list native schemes (myapp://...) and link hosts
(https://example.com/...) with ordered patterns bound to named generators.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "linkroute.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&opts.routesPath, "routes", "r", "", "route map file (overrides router.route_map)")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newMatchCmd(opts))
	rootCmd.AddCommand(newRouteCmd(opts))

	return rootCmd
}

// load reads the configuration and applies flag overrides
func (o *rootOptions) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.routesPath != "" {
		cfg.Router.RouteMap = o.routesPath
	}
	if cfg.Router.RouteMap == "" {
		return nil, nil, fmt.Errorf("no route map: pass --routes or set router.route_map")
	}

	logger, err := config.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
