package commands

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/yshengliao/linkroute/route"
)

func newMatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <url>...",
		Short: "Show which route an identifier matches",
		Long:  "Look up identifiers in the route map and print the matching pattern and parameters without running anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			engine, _, err := buildEngine(cfg, newConsoleObserver(io.Discard), logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			missed := 0
			for _, raw := range args {
				u, err := url.Parse(raw)
				if err != nil {
					fmt.Fprintf(out, "❌ %s: %v\n", raw, err)
					missed++
					continue
				}

				m, ok := engine.Lookup(u)
				if !ok {
					fmt.Fprintf(out, "❓ %s: no match\n", raw)
					missed++
					continue
				}

				data := route.NewURLData(u, m.Params, nil)
				fmt.Fprintln(out, raw)
				fmt.Fprintf(out, "  class:     %s\n", m.Class)
				fmt.Fprintf(out, "  key:       %s\n", m.Discriminator)
				fmt.Fprintf(out, "  pattern:   %s\n", m.Pattern)
				fmt.Fprintf(out, "  generator: %s\n", route.GeneratorName(m.Pattern.Generator()))
				fmt.Fprintf(out, "  params:    %s\n", formatParams(data.Params()))
			}

			if missed > 0 {
				return fmt.Errorf("%d of %d identifiers did not match", missed, len(args))
			}
			return nil
		},
	}
}
