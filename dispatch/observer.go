package dispatch

import (
	"net/url"

	"github.com/yshengliao/linkroute/route"
)

// Observer receives callbacks during routing and controls its progress.
// An engine cannot be built without one.
type Observer interface {
	// ShouldGenerate is asked before the generator runs.
	ShouldGenerate(g route.Generator, data *route.URLData) Control

	// ShouldPresent is asked after the action was generated and before it
	// is presented.
	ShouldPresent(action *route.Action) Control

	// PresentingOrigin returns what the action is presented from. It must
	// not return nil once ShouldPresent allowed the action.
	PresentingOrigin(action *route.Action) route.Origin

	// WillPresent is called right before presenting. The action is only
	// presented once done is called; not calling it drops the attempt.
	WillPresent(action *route.Action, done func())

	// DidPresent is called after the action was presented.
	DidPresent(action *route.Action)

	// NoMatch is called when no registered pattern matched u.
	NoMatch(u *url.URL, payload any)

	// GenerationFailed is called when the generator returned no action.
	GenerationFailed(g route.Generator, data *route.URLData)
}

// CancellationObserver is implemented by observers that want to hear about
// attempts they cancelled.
type CancellationObserver interface {
	RoutingCancelled(stage Stage, data *route.URLData, action *route.Action)
}

// TransitionObserver is implemented by observers that follow every state
// change of every attempt.
type TransitionObserver interface {
	StateChanged(attemptID string, state State)
}
