// Package routemap loads declarative route maps from YAML or TOML files and
// registers them on a dispatch engine.
//
// A route map lists groups of native schemes and link hosts. Every group
// carries an ordered list of patterns, each bound to a generator by name:
//
//	schemes:
//	  - names: [myapp]
//	    routes:
//	      - pattern: /profile/:userId
//	        generator: profile
//	hosts:
//	  - names: [example.com, www.example.com]
//	    routes:
//	      - pattern: /venues/:venueId
//	        generator: venue
package routemap

import (
	"sort"

	"github.com/yshengliao/linkroute/pkg/validation"
)

// Route binds a pattern to a named generator
type Route struct {
	Pattern   string `yaml:"pattern" toml:"pattern" validate:"required,routepattern"`
	Generator string `yaml:"generator" toml:"generator" validate:"required"`
}

// Group is a set of schemes or hosts sharing one ordered route list
type Group struct {
	Names  []string `yaml:"names" toml:"names" validate:"required,min=1,dive,discriminator"`
	Routes []Route  `yaml:"routes" toml:"routes" validate:"dive"`
}

// Map is a parsed route map
type Map struct {
	Schemes []Group `yaml:"schemes" toml:"schemes" validate:"dive"`
	Hosts   []Group `yaml:"hosts" toml:"hosts" validate:"dive"`

	source string
}

// Source returns the file or name the map was parsed from.
func (m *Map) Source() string {
	return m.source
}

// Validate checks names, patterns and generator references.
func (m *Map) Validate() error {
	if err := validation.NewValidator().Validate(m); err != nil {
		return validation.AsConfigurationError(err, "invalid route map").WithDetail("source", m.source)
	}
	return nil
}

// GeneratorNames returns the distinct generator names referenced by the
// map, sorted.
func (m *Map) GeneratorNames() []string {
	seen := make(map[string]struct{})
	for _, groups := range [][]Group{m.Schemes, m.Hosts} {
		for _, g := range groups {
			for _, r := range g.Routes {
				seen[r.Generator] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RouteCount returns the number of routes across all groups.
func (m *Map) RouteCount() int {
	n := 0
	for _, groups := range [][]Group{m.Schemes, m.Hosts} {
		for _, g := range groups {
			n += len(g.Routes)
		}
	}
	return n
}
