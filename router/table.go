package router

import (
	"sort"
	"strings"
)

// Class is the namespace an identifier is dispatched in.
type Class uint8

const (
	// NativeScheme routes by URL scheme (myapp://...).
	NativeScheme Class = iota
	// LinkHost routes by host for web links (https://example.com/...).
	LinkHost
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case NativeScheme:
		return "native_scheme"
	case LinkHost:
		return "link_host"
	default:
		return "unknown"
	}
}

// Match is the result of a successful lookup.
type Match struct {
	Class         Class
	Discriminator string
	Pattern       *Pattern
	Params        map[string]string
}

// Table holds ordered pattern sequences per class and discriminator.
//
// Table is not safe for concurrent use; its owner serializes registration
// and lookups.
type Table struct {
	classes map[Class]map[string][]*Pattern
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		classes: map[Class]map[string][]*Pattern{
			NativeScheme: make(map[string][]*Pattern),
			LinkHost:     make(map[string][]*Pattern),
		},
	}
}

// Normalize folds a scheme or host to the form tables are keyed by.
func Normalize(discriminator string) string {
	return strings.ToLower(strings.TrimSpace(discriminator))
}

// Register replaces the pattern sequence of every discriminator with
// patterns. Order is precedence: the first matching pattern wins.
func (t *Table) Register(class Class, discriminators []string, patterns []*Pattern) {
	seq := make([]*Pattern, len(patterns))
	copy(seq, patterns)

	byDisc := t.classes[class]
	if byDisc == nil {
		byDisc = make(map[string][]*Pattern)
		t.classes[class] = byDisc
	}
	for _, d := range discriminators {
		byDisc[Normalize(d)] = seq
	}
}

// Match returns the first pattern registered for discriminator that matches
// segments in full.
func (t *Table) Match(class Class, discriminator string, segments []string) (Match, bool) {
	key := Normalize(discriminator)
	for _, p := range t.classes[class][key] {
		if params, ok := p.Match(segments); ok {
			return Match{
				Class:         class,
				Discriminator: key,
				Pattern:       p,
				Params:        params,
			}, true
		}
	}
	return Match{}, false
}

// IsRegistered reports whether a sequence was ever registered for
// discriminator.
func (t *Table) IsRegistered(class Class, discriminator string) bool {
	_, ok := t.classes[class][Normalize(discriminator)]
	return ok
}

// Patterns returns a copy of the sequence registered for discriminator.
func (t *Table) Patterns(class Class, discriminator string) []*Pattern {
	seq := t.classes[class][Normalize(discriminator)]
	out := make([]*Pattern, len(seq))
	copy(out, seq)
	return out
}

// Discriminators returns the registered discriminators of class, sorted.
func (t *Table) Discriminators(class Class) []string {
	out := make([]string, 0, len(t.classes[class]))
	for d := range t.classes[class] {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
