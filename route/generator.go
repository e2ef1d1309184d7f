package route

import "fmt"

// Generator turns URL data into an action. Returning nil cancels the
// routing attempt.
type Generator interface {
	Generate(data *URLData) *Action
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(data *URLData) *Action

// Generate calls f(data).
func (f GeneratorFunc) Generate(data *URLData) *Action {
	return f(data)
}

type namedGenerator struct {
	name string
	Generator
}

func (n namedGenerator) String() string {
	return n.name
}

// Named wraps g so that logs and route listings can refer to it by name.
func Named(name string, g Generator) Generator {
	return namedGenerator{name: name, Generator: g}
}

// GeneratorName returns the name given to g by Named, or its type name.
func GeneratorName(g Generator) string {
	if g == nil {
		return ""
	}
	if s, ok := g.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", g)
}
