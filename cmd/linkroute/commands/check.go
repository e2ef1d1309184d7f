package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yshengliao/linkroute/routemap"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate and compile a route map",
		Long:  "Parse a route map, validate it and compile every pattern without dispatching anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.routesPath = args[0]
			}
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, m, err := buildEngine(cfg, newConsoleObserver(io.Discard), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ %s: %d routes in %d scheme groups and %d host groups\n",
				m.Source(), m.RouteCount(), len(m.Schemes), len(m.Hosts))
			printGroups(out, "scheme", m.Schemes)
			printGroups(out, "host", m.Hosts)
			fmt.Fprintf(out, "generators: %s\n", strings.Join(m.GeneratorNames(), ", "))
			return nil
		},
	}
}

func printGroups(out io.Writer, kind string, groups []routemap.Group) {
	for _, g := range groups {
		fmt.Fprintf(out, "  %s %s\n", kind, strings.Join(g.Names, ", "))
		for _, r := range g.Routes {
			fmt.Fprintf(out, "    %-32s → %s\n", r.Pattern, r.Generator)
		}
	}
}
