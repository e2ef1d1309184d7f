// Package mock provides test doubles for routing collaborators
package mock

import (
	"net/url"
	"sync"

	"github.com/yshengliao/linkroute/dispatch"
	"github.com/yshengliao/linkroute/route"
)

// Observer records every callback of a dispatch engine and answers control
// questions from scripted queues.
type Observer struct {
	mu sync.Mutex

	// GenerateControls and PresentControls are consumed in order; once
	// empty, DefaultControl is returned.
	GenerateControls []dispatch.Control
	PresentControls  []dispatch.Control
	DefaultControl   dispatch.Control

	// Origin is returned from PresentingOrigin.
	Origin route.Origin

	// AutoComplete calls the completion callback inside WillPresent.
	// Otherwise callbacks are queued in Pending.
	AutoComplete bool

	Events          []string
	Pending         []func()
	NoMatches       []*url.URL
	Failed          []*route.URLData
	GenerateAsked   []*route.URLData
	PresentAsked    []*route.Action
	Presented       []*route.Action
	CancelledStages []dispatch.Stage
	States          map[string][]dispatch.State
}

// NewObserver creates an observer that allows everything, presents from
// "root" and completes presentations immediately.
func NewObserver() *Observer {
	return &Observer{
		DefaultControl: dispatch.Allow,
		Origin:         "root",
		AutoComplete:   true,
		States:         make(map[string][]dispatch.State),
	}
}

func (o *Observer) record(event string) {
	o.Events = append(o.Events, event)
}

func next(queue *[]dispatch.Control, def dispatch.Control) dispatch.Control {
	if len(*queue) == 0 {
		return def
	}
	c := (*queue)[0]
	*queue = (*queue)[1:]
	return c
}

func (o *Observer) ShouldGenerate(g route.Generator, data *route.URLData) dispatch.Control {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("should_generate")
	o.GenerateAsked = append(o.GenerateAsked, data)
	return next(&o.GenerateControls, o.DefaultControl)
}

func (o *Observer) ShouldPresent(action *route.Action) dispatch.Control {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("should_present")
	o.PresentAsked = append(o.PresentAsked, action)
	return next(&o.PresentControls, o.DefaultControl)
}

func (o *Observer) PresentingOrigin(action *route.Action) route.Origin {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("presenting_origin")
	return o.Origin
}

func (o *Observer) WillPresent(action *route.Action, done func()) {
	o.mu.Lock()
	o.record("will_present")
	auto := o.AutoComplete
	if !auto {
		o.Pending = append(o.Pending, done)
	}
	o.mu.Unlock()

	if auto {
		done()
	}
}

func (o *Observer) DidPresent(action *route.Action) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("did_present")
	o.Presented = append(o.Presented, action)
}

func (o *Observer) NoMatch(u *url.URL, payload any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("no_match")
	o.NoMatches = append(o.NoMatches, u)
}

func (o *Observer) GenerationFailed(g route.Generator, data *route.URLData) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("generation_failed")
	o.Failed = append(o.Failed, data)
}

func (o *Observer) RoutingCancelled(stage dispatch.Stage, data *route.URLData, action *route.Action) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.record("cancelled_at_" + stage.String())
	o.CancelledStages = append(o.CancelledStages, stage)
}

func (o *Observer) StateChanged(attemptID string, state dispatch.State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.States[attemptID] = append(o.States[attemptID], state)
}

// CompleteNext runs the oldest queued completion callback. It reports false
// when none is queued.
func (o *Observer) CompleteNext() bool {
	o.mu.Lock()
	if len(o.Pending) == 0 {
		o.mu.Unlock()
		return false
	}
	done := o.Pending[0]
	o.Pending = o.Pending[1:]
	o.mu.Unlock()

	done()
	return true
}

// EventLog returns a copy of the recorded events
func (o *Observer) EventLog() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.Events))
	copy(out, o.Events)
	return out
}

// Reset forgets recorded calls, keeping the configuration
func (o *Observer) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = nil
	o.Pending = nil
	o.NoMatches = nil
	o.Failed = nil
	o.GenerateAsked = nil
	o.PresentAsked = nil
	o.Presented = nil
	o.CancelledStages = nil
	o.States = make(map[string][]dispatch.State)
}
