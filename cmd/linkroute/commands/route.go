package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/yshengliao/linkroute/dispatch"
	"github.com/yshengliao/linkroute/observability"
	"github.com/yshengliao/linkroute/routemap"
	"go.uber.org/zap"
)

func newRouteCmd(opts *rootOptions) *cobra.Command {
	var watch, hold bool

	cmd := &cobra.Command{
		Use:   "route [url...]",
		Short: "Dispatch identifiers through a console presenter",
		Long: `Dispatch identifiers through the route map and print what would be presented.

Without arguments identifiers are read from stdin, one per line. These
commands are understood as well:

  :hold    defer routing until :ready
  :ready   stop holding and resume the deferred identifier
  :clear   drop the deferred identifier
  :stats   print routing counters (stats metrics backend)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cmd.Flags().Changed("watch") {
				cfg.Router.Watch = watch
			}

			collector, reg, err := newCollector(cfg.Metrics)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			observer := newConsoleObserver(out)
			observer.hold = hold
			engine, m, err := buildEngine(cfg, observer, logger,
				dispatch.WithCollector(collector),
				dispatch.WithDefaultPresentation(consolePresentation(out)))
			if err != nil {
				return err
			}

			if reg != nil {
				srv := serveMetrics(cfg.Metrics.Address, reg, logger)
				defer srv.Close()
			}

			s := &session{
				out:       out,
				engine:    engine,
				observer:  observer,
				collector: collector,
				current:   m,
				logger:    logger,
			}

			if len(args) > 0 {
				for _, raw := range args {
					s.handle(raw)
				}
				s.printStats()
				return nil
			}

			var watcher *routemap.Watcher
			if cfg.Router.Watch {
				watcher, err = routemap.NewWatcher(cfg.Router.RouteMap,
					routemap.WithDebounce(cfg.Router.WatchDebounce),
					routemap.WithWatcherLogger(logger))
				if err != nil {
					return fmt.Errorf("failed to watch route map: %w", err)
				}
				defer watcher.Close()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.run(ctx, cmd.InOrStdin(), watcher)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the route map when it changes")
	cmd.Flags().BoolVar(&hold, "hold", false, "start holding: identifiers are deferred until :ready")

	return cmd
}

// session owns the engine for the lifetime of a route command. Every engine
// call happens on the goroutine running the session.
type session struct {
	out       io.Writer
	engine    *dispatch.Engine
	observer  *consoleObserver
	collector observability.Collector
	current   *routemap.Map
	logger    *zap.Logger
}

func (s *session) run(ctx context.Context, in io.Reader, watcher *routemap.Watcher) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	var (
		updates <-chan *routemap.Map
		errs    <-chan error
	)
	if watcher != nil {
		updates = watcher.Updates()
		errs = watcher.Errors()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				s.printStats()
				return nil
			}
			s.handle(line)

		case m, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			s.reload(m)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(s.out, "⚠️  route map not reloaded: %v\n", err)
		}
	}
}

func (s *session) handle(line string) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
	case ":hold":
		s.observer.hold = true
	case ":ready":
		s.observer.hold = false
		s.engine.HandleDeferredRoute()
	case ":clear":
		s.engine.ClearDeferredRoute()
	case ":stats":
		s.printStats()
	default:
		u, err := url.Parse(line)
		if err != nil {
			fmt.Fprintf(s.out, "❌ %s: %v\n", line, err)
			return
		}
		s.engine.Dispatch(u, nil)
	}
}

func (s *session) reload(m *routemap.Map) {
	if err := m.Reapply(s.engine, echoGenerators(m.GeneratorNames()), s.current); err != nil {
		fmt.Fprintf(s.out, "⚠️  route map not applied: %v\n", err)
		return
	}
	s.current = m
	fmt.Fprintf(s.out, "🔄 route map reloaded: %d routes\n", m.RouteCount())
}

func (s *session) printStats() {
	stats, ok := s.collector.(*observability.StatsCollector)
	if !ok {
		return
	}
	outcomes := stats.GetRoutingStats().Outcomes
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%d", k, outcomes[k]))
	}
	pairs = append(pairs, fmt.Sprintf("deferred=%d", stats.GetDeferralStats().TotalDeferrals))
	fmt.Fprintf(s.out, "📊 %s\n", strings.Join(pairs, " "))
}

// serveMetrics exposes reg on /metrics until the returned server is closed
func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Serving metrics", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
