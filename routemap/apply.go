package routemap

import (
	"github.com/yshengliao/linkroute/dispatch"
	rerrors "github.com/yshengliao/linkroute/errors"
	"github.com/yshengliao/linkroute/route"
	"github.com/yshengliao/linkroute/router"
)

// Generators resolves generator names used in route maps.
type Generators map[string]route.Generator

// Registrar receives resolved route groups. *dispatch.Engine implements it.
type Registrar interface {
	RegisterNativeSchemes(schemes []string, routes []dispatch.Route) error
	RegisterLinkHosts(hosts []string, routes []dispatch.Route) error
}

// resolved is a group ready for registration
type resolved struct {
	class  router.Class
	names  []string
	routes []dispatch.Route
}

// Apply validates m, resolves every generator name and registers the groups
// on r in file order. Nothing is registered unless every route resolves
// and compiles.
func (m *Map) Apply(r Registrar, gens Generators) error {
	return m.apply(r, gens, nil)
}

// Reapply is Apply for a reloaded map. Schemes and hosts present in prev
// but gone from m are registered with no routes, so they stop matching.
func (m *Map) Reapply(r Registrar, gens Generators, prev *Map) error {
	return m.apply(r, gens, prev)
}

func (m *Map) apply(r Registrar, gens Generators, prev *Map) error {
	if err := m.Validate(); err != nil {
		return err
	}

	groups, err := m.resolve(gens)
	if err != nil {
		return err
	}
	if prev != nil {
		groups = append(groups, m.dropped(prev)...)
	}

	for _, g := range groups {
		var err error
		switch g.class {
		case router.NativeScheme:
			err = r.RegisterNativeSchemes(g.names, g.routes)
		case router.LinkHost:
			err = r.RegisterLinkHosts(g.names, g.routes)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) resolve(gens Generators) ([]resolved, error) {
	var out []resolved
	for _, set := range []struct {
		class  router.Class
		groups []Group
	}{
		{router.NativeScheme, m.Schemes},
		{router.LinkHost, m.Hosts},
	} {
		for _, g := range set.groups {
			routes := make([]dispatch.Route, 0, len(g.Routes))
			for _, rt := range g.Routes {
				gen, ok := gens[rt.Generator]
				if !ok || gen == nil {
					return nil, rerrors.NewConfigurationError(rerrors.CodeUnknownGenerator, "", rerrors.ErrUnknownGenerator).
						WithDetail("generator", rt.Generator).
						WithDetail("pattern", rt.Pattern).
						WithDetail("source", m.source)
				}
				if _, err := router.Compile(rt.Pattern, gen); err != nil {
					return nil, err
				}
				routes = append(routes, dispatch.Route{
					Pattern:   rt.Pattern,
					Generator: route.Named(rt.Generator, gen),
				})
			}
			out = append(out, resolved{class: set.class, names: g.Names, routes: routes})
		}
	}
	return out, nil
}

// dropped lists the discriminators registered by prev that m no longer has
func (m *Map) dropped(prev *Map) []resolved {
	var out []resolved
	for _, set := range []struct {
		class     router.Class
		now, then []Group
	}{
		{router.NativeScheme, m.Schemes, prev.Schemes},
		{router.LinkHost, m.Hosts, prev.Hosts},
	} {
		current := make(map[string]struct{})
		for _, g := range set.now {
			for _, n := range g.Names {
				current[router.Normalize(n)] = struct{}{}
			}
		}
		var gone []string
		for _, g := range set.then {
			for _, n := range g.Names {
				if _, ok := current[router.Normalize(n)]; !ok {
					gone = append(gone, n)
				}
			}
		}
		if len(gone) > 0 {
			out = append(out, resolved{class: set.class, names: gone})
		}
	}
	return out
}
