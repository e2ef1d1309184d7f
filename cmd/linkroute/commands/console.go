package commands

import (
	"fmt"
	"io"
	"net/url"

	"github.com/yshengliao/linkroute/dispatch"
	"github.com/yshengliao/linkroute/route"
)

const consoleOrigin = "console"

// consoleObserver approves everything and reports to a writer. While
// holding, routing is deferred at generation.
type consoleObserver struct {
	out  io.Writer
	hold bool
}

var (
	_ dispatch.Observer             = (*consoleObserver)(nil)
	_ dispatch.CancellationObserver = (*consoleObserver)(nil)
)

func newConsoleObserver(out io.Writer) *consoleObserver {
	return &consoleObserver{out: out}
}

func (o *consoleObserver) ShouldGenerate(g route.Generator, data *route.URLData) dispatch.Control {
	if o.hold {
		fmt.Fprintf(o.out, "⏸  holding %s (type :ready to resume)\n", data)
		return dispatch.Defer
	}
	return dispatch.Allow
}

func (o *consoleObserver) ShouldPresent(action *route.Action) dispatch.Control {
	return dispatch.Allow
}

func (o *consoleObserver) PresentingOrigin(action *route.Action) route.Origin {
	return consoleOrigin
}

func (o *consoleObserver) WillPresent(action *route.Action, done func()) {
	done()
}

func (o *consoleObserver) DidPresent(action *route.Action) {}

func (o *consoleObserver) NoMatch(u *url.URL, payload any) {
	fmt.Fprintf(o.out, "❓ no route for %s\n", u)
}

func (o *consoleObserver) GenerationFailed(g route.Generator, data *route.URLData) {
	fmt.Fprintf(o.out, "❌ %s built nothing for %s\n", route.GeneratorName(g), data)
}

func (o *consoleObserver) RoutingCancelled(stage dispatch.Stage, data *route.URLData, action *route.Action) {
	fmt.Fprintf(o.out, "🚫 cancelled %s at %s\n", data, stage)
}

// consolePresentation prints what would be presented
func consolePresentation(out io.Writer) route.Presentation {
	return func(unit route.Unit, origin route.Origin, data *route.URLData) {
		fmt.Fprintf(out, "➡️  %v from %v (%s)\n", unit, origin, data)
	}
}
