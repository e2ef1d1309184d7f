package router

import (
	"net/url"
)

// DefaultLinkSchemes are the schemes routed by host rather than by scheme.
var DefaultLinkSchemes = []string{"http", "https"}

// Target is where an identifier should be looked up.
type Target struct {
	Class         Class
	Discriminator string
	Segments      []string
}

// Classifier decides the dispatch class of identifiers.
type Classifier struct {
	linkSchemes map[string]struct{}
}

// NewClassifier creates a classifier routing the given schemes by host.
// With no schemes DefaultLinkSchemes is used.
func NewClassifier(linkSchemes ...string) *Classifier {
	if len(linkSchemes) == 0 {
		linkSchemes = DefaultLinkSchemes
	}
	c := &Classifier{linkSchemes: make(map[string]struct{}, len(linkSchemes))}
	for _, s := range linkSchemes {
		c.linkSchemes[Normalize(s)] = struct{}{}
	}
	return c
}

// IsLinkScheme reports whether scheme routes by host
func (c *Classifier) IsLinkScheme(scheme string) bool {
	_, ok := c.linkSchemes[Normalize(scheme)]
	return ok
}

// Classify resolves the class, discriminator and path segments of u.
//
// Link identifiers use the host (without port) as discriminator and the
// path as segments. Native identifiers use the scheme as discriminator; the
// host, when present, is the first path segment, so myapp://profile/42
// yields ["profile", "42"].
func (c *Classifier) Classify(u *url.URL) (Target, bool) {
	if u == nil || u.Scheme == "" {
		return Target{}, false
	}

	if c.IsLinkScheme(u.Scheme) {
		host := Normalize(u.Hostname())
		if host == "" {
			return Target{}, false
		}
		return Target{
			Class:         LinkHost,
			Discriminator: host,
			Segments:      pathSegments(u.EscapedPath()),
		}, true
	}

	var segments []string
	if u.Opaque != "" {
		segments = pathSegments(u.Opaque)
	} else {
		if u.Host != "" {
			segments = append(segments, u.Host)
		}
		segments = append(segments, pathSegments(u.EscapedPath())...)
	}
	return Target{
		Class:         NativeScheme,
		Discriminator: Normalize(u.Scheme),
		Segments:      segments,
	}, true
}

// pathSegments splits an escaped path and unescapes each segment so an
// encoded slash stays inside its segment.
func pathSegments(escaped string) []string {
	parts := splitPath(escaped)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s, err := url.PathUnescape(p); err == nil {
			p = s
		}
		out = append(out, p)
	}
	return out
}

// Discriminator returns the scheme or host u would be routed under.
func (c *Classifier) Discriminator(u *url.URL) (Class, string, bool) {
	t, ok := c.Classify(u)
	if !ok {
		return 0, "", false
	}
	return t.Class, t.Discriminator, true
}
