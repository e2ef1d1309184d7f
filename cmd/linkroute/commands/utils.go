package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/yshengliao/linkroute/config"
	"github.com/yshengliao/linkroute/dispatch"
	"github.com/yshengliao/linkroute/observability"
	"github.com/yshengliao/linkroute/route"
	"github.com/yshengliao/linkroute/routemap"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// screen is the unit the console presents: the generator that built it and
// the parameters it received
type screen struct {
	Title  string
	Params map[string]string
}

func (s screen) String() string {
	if len(s.Params) == 0 {
		return s.Title
	}
	return fmt.Sprintf("%s {%s}", s.Title, formatParams(s.Params))
}

// echoGenerators binds every name to a generator presenting a screen titled
// after it
func echoGenerators(names []string) routemap.Generators {
	title := cases.Title(language.English)
	gens := make(routemap.Generators, len(names))
	for _, name := range names {
		label := title.String(strings.NewReplacer("_", " ", "-", " ").Replace(name))
		gens[name] = route.GeneratorFunc(func(data *route.URLData) *route.Action {
			return route.NewUnitAction(screen{Title: label, Params: data.Params()})
		})
	}
	return gens
}

func formatParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, " ")
}

// newCollector builds the collector for the configured metrics backend. The
// registry is only set for the prometheus backend.
func newCollector(cfg config.MetricsConfig) (observability.Collector, *prometheus.Registry, error) {
	switch cfg.Backend {
	case "stats":
		return observability.NewStatsCollector(), nil, nil
	case "prometheus":
		reg := prometheus.NewRegistry()
		c, err := observability.NewPrometheusCollector(reg)
		if err != nil {
			return nil, nil, err
		}
		return c, reg, nil
	default:
		return &observability.NoOpCollector{}, nil, nil
	}
}

// buildEngine loads the route map and registers it on a new engine
func buildEngine(cfg *config.Config, observer dispatch.Observer, logger *zap.Logger, opts ...dispatch.Option) (*dispatch.Engine, *routemap.Map, error) {
	m, err := routemap.Load(cfg.Router.RouteMap)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]dispatch.Option{
		dispatch.WithLogger(logger),
		dispatch.WithLinkSchemes(cfg.Router.LinkSchemes...),
	}, opts...)
	engine, err := dispatch.New(observer, opts...)
	if err != nil {
		return nil, nil, err
	}

	if err := m.Apply(engine, echoGenerators(m.GeneratorNames())); err != nil {
		return nil, nil, err
	}
	return engine, m, nil
}
