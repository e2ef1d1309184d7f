// Package fixture provides sample route maps and configuration for tests
package fixture

import (
	"os"
	"path/filepath"
	"testing"
)

// RouteMapYAML registers myapp:// profile and list screens and venue links
// on example.com and www.example.com.
const RouteMapYAML = `
schemes:
  - names: [myapp]
    routes:
      - pattern: /profile/:userId
        generator: profile
      - pattern: /list/*
        generator: list
hosts:
  - names: [example.com, www.example.com]
    routes:
      - pattern: /venues/:venueId
        generator: venue
`

// RouteMapTOML is RouteMapYAML in TOML.
const RouteMapTOML = `
[[schemes]]
names = ["myapp"]

  [[schemes.routes]]
  pattern = "/profile/:userId"
  generator = "profile"

  [[schemes.routes]]
  pattern = "/list/*"
  generator = "list"

[[hosts]]
names = ["example.com", "www.example.com"]

  [[hosts.routes]]
  pattern = "/venues/:venueId"
  generator = "venue"
`

// WriteFile writes content to name inside a fresh temporary directory and
// returns the file path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}
