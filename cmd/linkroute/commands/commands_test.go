package commands

import (
	"bytes"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yshengliao/linkroute/dispatch"
	"github.com/yshengliao/linkroute/internal/testutil/fixture"
	"github.com/yshengliao/linkroute/observability"
	"github.com/yshengliao/linkroute/route"
	"go.uber.org/zap/zaptest"
)

// runCmd executes the root command and returns what it printed
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func setup(t *testing.T, configYAML string) (configPath, routesPath string) {
	t.Helper()
	routesPath = fixture.WriteFile(t, "routes.yaml", fixture.RouteMapYAML)
	configPath = filepath.Join(t.TempDir(), "linkroute.yaml")
	if configYAML != "" {
		configPath = fixture.WriteFile(t, "linkroute.yaml", configYAML)
	}
	return configPath, routesPath
}

func TestCheck(t *testing.T) {
	configPath, routesPath := setup(t, "")

	out, err := runCmd(t, "", "check", routesPath, "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, "3 routes in 1 scheme groups and 1 host groups")
	assert.Contains(t, out, "generators: list, profile, venue")
	assert.Contains(t, out, "/profile/:userId")
}

func TestCheck_InvalidMap(t *testing.T) {
	configPath, _ := setup(t, "")
	bad := fixture.WriteFile(t, "bad.yaml", "schemes:\n  - names: [myapp]\n    routes:\n      - pattern: /a/:id/:id\n        generator: x\n")

	_, err := runCmd(t, "", "check", bad, "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid route pattern")
}

func TestCheck_NoRouteMap(t *testing.T) {
	configPath, _ := setup(t, "")

	_, err := runCmd(t, "", "check", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route map")
}

func TestMatch(t *testing.T) {
	configPath, routesPath := setup(t, "")

	out, err := runCmd(t, "", "match", "myapp://profile/42?tab=info", "--config", configPath, "--routes", routesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "class:     native_scheme")
	assert.Contains(t, out, "pattern:   /profile/:userId")
	assert.Contains(t, out, "generator: profile")
	assert.Contains(t, out, "params:    tab=info userId=42")

	out, err = runCmd(t, "", "match", "https://example.com/nothing", "--config", configPath, "-r", routesPath)
	require.Error(t, err)
	assert.Contains(t, out, "no match")
	assert.Contains(t, err.Error(), "1 of 1 identifiers did not match")
}

func TestRoute_Arguments(t *testing.T) {
	configPath, routesPath := setup(t, fixture.StatsConfigYAML)

	out, err := runCmd(t, "", "route", "myapp://profile/42", "https://example.com/venues/abc", "myapp://missing",
		"--config", configPath, "--routes", routesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile {userId=42} from console")
	assert.Contains(t, out, "Venue {venueId=abc} from console")
	assert.Contains(t, out, "no route for myapp://missing")
	assert.Contains(t, out, "📊 no_match=1 presented=2 deferred=0")
}

func TestRoute_StdinHoldAndReady(t *testing.T) {
	configPath, routesPath := setup(t, fixture.StatsConfigYAML)
	stdin := strings.Join([]string{
		":hold",
		"myapp://profile/1",
		"myapp://profile/2",
		":ready",
		":ready",
	}, "\n")

	out, err := runCmd(t, stdin, "route", "--config", configPath, "--routes", routesPath)
	require.NoError(t, err)

	assert.Contains(t, out, "holding myapp://profile/1")
	assert.Contains(t, out, "holding myapp://profile/2")
	assert.NotContains(t, out, "Profile {userId=1}")
	assert.Equal(t, 1, strings.Count(out, "Profile {userId=2}"))
	assert.Contains(t, out, "presented=1")
	assert.Contains(t, out, "deferred=2")
}

func TestRoute_HoldFlagAndClear(t *testing.T) {
	configPath, routesPath := setup(t, "")
	stdin := "myapp://list/a\n:clear\n:ready\n"

	out, err := runCmd(t, stdin, "route", "--hold", "--config", configPath, "--routes", routesPath)
	require.NoError(t, err)
	assert.Contains(t, out, "holding myapp://list/a")
	assert.NotContains(t, out, "➡️")
}

func screenTitle(t *testing.T, a *route.Action) string {
	t.Helper()
	require.NotNil(t, a)
	content, ok := a.Content().(route.UnitContent)
	require.True(t, ok)
	sc, ok := content.Unit.(screen)
	require.True(t, ok)
	return sc.Title
}

func TestEchoGenerators_Titles(t *testing.T) {
	gens := echoGenerators([]string{"user_profile", "venue-detail"})
	require.Len(t, gens, 2)

	assert.Equal(t, "User Profile", screenTitle(t, gens["user_profile"].Generate(nil)))
	assert.Equal(t, "Venue Detail", screenTitle(t, gens["venue-detail"].Generate(nil)))
}

func TestNewCollector(t *testing.T) {
	c, reg, err := newCollector(fixture.TestConfig("").Metrics)
	require.NoError(t, err)
	assert.IsType(t, &observability.StatsCollector{}, c)
	assert.Nil(t, reg)

	cfg := fixture.TestConfig("")
	cfg.Metrics.Backend = "prometheus"
	c, reg, err = newCollector(cfg.Metrics)
	require.NoError(t, err)
	assert.IsType(t, &observability.PrometheusCollector{}, c)
	require.NotNil(t, reg)

	cfg.Metrics.Backend = "none"
	c, _, err = newCollector(cfg.Metrics)
	require.NoError(t, err)
	assert.IsType(t, &observability.NoOpCollector{}, c)
}

func TestBuildEngine(t *testing.T) {
	cfg := fixture.TestConfig(fixture.WriteFile(t, "routes.toml", fixture.RouteMapTOML))
	stats := observability.NewStatsCollector()
	var out bytes.Buffer

	engine, m, err := buildEngine(cfg, newConsoleObserver(&out), zaptest.NewLogger(t),
		dispatch.WithCollector(stats),
		dispatch.WithDefaultPresentation(consolePresentation(&out)))
	require.NoError(t, err)
	assert.Equal(t, 3, m.RouteCount())

	u, err := url.Parse("https://www.example.com/venues/abc")
	require.NoError(t, err)
	engine.Dispatch(u, nil)

	assert.Contains(t, out.String(), "Venue {venueId=abc} from console")
	registry := stats.GetRegistryStats()
	assert.Equal(t, int64(3), registry.Registrations)
	assert.Equal(t, 2, registry.Patterns["native_scheme/myapp"])
	assert.Equal(t, 1, registry.Patterns["link_host/www.example.com"])
}
