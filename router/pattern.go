// Package router compiles route patterns and keeps them in ordered tables
// keyed by dispatch class and discriminator (scheme or host).
package router

import (
	"strings"

	rerrors "github.com/yshengliao/linkroute/errors"
	"github.com/yshengliao/linkroute/route"
)

const (
	paramMarker    = ':'
	wildcardMarker = '*'
)

type segmentKind uint8

const (
	literal segmentKind = iota
	param
	wildcard
)

// segment is one compiled path segment
type segment struct {
	kind  segmentKind
	value string // literal text or parameter name
}

// Pattern is a compiled route pattern bound to a generator. Patterns are
// immutable.
type Pattern struct {
	raw       string
	segments  []segment
	generator route.Generator
}

// Compile parses raw into a pattern. Segments are separated by '/'; a
// segment starting with ':' binds one path segment to the named parameter,
// a final segment starting with '*' matches the rest of the path.
func Compile(raw string, g route.Generator) (*Pattern, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, invalidPattern(raw, rerrors.ErrEmptyPattern)
	}

	parts := splitPath(raw)
	p := &Pattern{
		raw:       raw,
		segments:  make([]segment, 0, len(parts)),
		generator: g,
	}
	seen := make(map[string]struct{})

	for i, part := range parts {
		switch part[0] {
		case wildcardMarker:
			if i+1 < len(parts) {
				if parts[i+1][0] == wildcardMarker {
					return nil, invalidPattern(raw, rerrors.ErrConsecutiveWildcards)
				}
				return nil, invalidPattern(raw, rerrors.ErrWildcardNotTrailing)
			}
			p.segments = append(p.segments, segment{kind: wildcard})

		case paramMarker:
			name := part[1:]
			if name == "" {
				return nil, invalidPattern(raw, rerrors.ErrUnnamedParam)
			}
			if _, dup := seen[name]; dup {
				return nil, invalidPattern(raw, rerrors.ErrDuplicateParam).WithDetail("param", name)
			}
			seen[name] = struct{}{}
			p.segments = append(p.segments, segment{kind: param, value: name})

		default:
			p.segments = append(p.segments, segment{kind: literal, value: part})
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Use it for patterns
// known at compile time.
func MustCompile(raw string, g route.Generator) *Pattern {
	p, err := Compile(raw, g)
	if err != nil {
		panic(err)
	}
	return p
}

func invalidPattern(raw string, cause error) *rerrors.ConfigurationError {
	return rerrors.NewConfigurationError(rerrors.CodeInvalidPattern, "", cause).
		WithDetail("pattern", raw)
}

// String returns the pattern as it was written.
func (p *Pattern) String() string {
	return p.raw
}

// Generator returns the generator bound to the pattern.
func (p *Pattern) Generator() route.Generator {
	return p.generator
}

// ParamNames returns the named parameters in template order.
func (p *Pattern) ParamNames() []string {
	var names []string
	for _, s := range p.segments {
		if s.kind == param {
			names = append(names, s.value)
		}
	}
	return names
}

// HasWildcard reports whether the pattern ends in a wildcard.
func (p *Pattern) HasWildcard() bool {
	n := len(p.segments)
	return n > 0 && p.segments[n-1].kind == wildcard
}

// Match matches the pattern against path segments and returns the bound
// parameters.
func (p *Pattern) Match(segments []string) (map[string]string, bool) {
	params := make(map[string]string)

	for i, s := range p.segments {
		switch s.kind {
		case wildcard:
			// Compile guarantees the wildcard is last; it takes whatever is left.
			return params, true
		case literal:
			if i >= len(segments) || segments[i] != s.value {
				return nil, false
			}
		case param:
			if i >= len(segments) || segments[i] == "" {
				return nil, false
			}
			params[s.value] = segments[i]
		}
	}

	if len(segments) != len(p.segments) {
		return nil, false
	}
	return params, true
}

// splitPath splits a path on '/' dropping empty segments
func splitPath(path string) []string {
	raw := strings.Split(path, "/")
	out := raw[:0]
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
