// Package dispatch routes identifiers to actions: it matches them against
// the registered patterns, runs the bound generator and presents the result,
// letting an Observer allow, cancel or defer each step.
//
// An Engine has a single owner. Registration, dispatch and the deferred
// route methods must be called from one goroutine (or otherwise
// serialized). The only asynchronous step is the completion callback handed
// to Observer.WillPresent.
package dispatch

import (
	"net/url"
	"sync/atomic"

	rerrors "github.com/yshengliao/linkroute/errors"
	"github.com/yshengliao/linkroute/observability"
	"github.com/yshengliao/linkroute/route"
	"github.com/yshengliao/linkroute/router"
	"go.uber.org/zap"
)

// Route pairs a pattern string with the generator it routes to.
type Route struct {
	Pattern   string
	Generator route.Generator
}

// Engine matches identifiers and drives routing attempts.
type Engine struct {
	table               *router.Table
	classifier          *router.Classifier
	observer            Observer
	defaultPresentation route.Presentation
	deferred            deferredSlot

	linkSchemes []string
	logger      *zap.Logger
	collector   observability.Collector
	newID       func() string
}

// New creates an engine reporting to observer.
func New(observer Observer, opts ...Option) (*Engine, error) {
	if observer == nil {
		return nil, rerrors.NewConfigurationError(rerrors.CodeConfigurationError, "", rerrors.ErrMissingObserver)
	}

	e := &Engine{
		table:     router.NewTable(),
		observer:  observer,
		logger:    zap.NewNop(),
		collector: &observability.NoOpCollector{},
		newID:     generateAttemptID,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.classifier = router.NewClassifier(e.linkSchemes...)

	return e, nil
}

// SetDefaultPresentation replaces the default presentation.
func (e *Engine) SetDefaultPresentation(p route.Presentation) {
	e.defaultPresentation = p
}

// DefaultPresentation returns the default presentation.
func (e *Engine) DefaultPresentation() route.Presentation {
	return e.defaultPresentation
}

// RegisterNativeSchemes registers routes for identifiers with the given
// schemes (myapp://...). Any routes previously registered for one of the
// schemes are replaced.
func (e *Engine) RegisterNativeSchemes(schemes []string, routes []Route) error {
	return e.register(router.NativeScheme, schemes, routes)
}

// RegisterLinkHosts registers routes for web links to the given hosts.
// Any routes previously registered for one of the hosts are replaced.
func (e *Engine) RegisterLinkHosts(hosts []string, routes []Route) error {
	return e.register(router.LinkHost, hosts, routes)
}

func (e *Engine) register(class router.Class, discriminators []string, routes []Route) error {
	if len(discriminators) == 0 {
		return rerrors.NewConfigurationError(rerrors.CodeMissingRequiredField, "", rerrors.ErrNoDiscriminators).
			WithDetail("class", class.String())
	}

	// Compile everything before touching the table so a bad route leaves
	// the previous registration in place.
	patterns := make([]*router.Pattern, 0, len(routes))
	for _, r := range routes {
		if r.Generator == nil {
			return rerrors.NewConfigurationError(rerrors.CodeMissingRequiredField, "", rerrors.ErrMissingGenerator).
				WithDetail("pattern", r.Pattern)
		}
		p, err := router.Compile(r.Pattern, r.Generator)
		if err != nil {
			return err
		}
		patterns = append(patterns, p)
	}

	e.table.Register(class, discriminators, patterns)
	for _, d := range discriminators {
		e.collector.RecordRegistration(class.String(), d, len(patterns))
	}
	e.logger.Info("Routes registered",
		zap.String("class", class.String()),
		zap.Strings("discriminators", discriminators),
		zap.Int("patterns", len(patterns)))
	return nil
}

// IsRegistered reports whether the scheme (native identifiers) or host
// (links) of u has registered routes. It does not tell whether u matches
// one of them.
func (e *Engine) IsRegistered(u *url.URL) bool {
	class, disc, ok := e.classifier.Discriminator(u)
	return ok && e.table.IsRegistered(class, disc)
}

// Lookup returns the pattern u is routed to, without running anything.
func (e *Engine) Lookup(u *url.URL) (router.Match, bool) {
	target, ok := e.classifier.Classify(u)
	if !ok {
		return router.Match{}, false
	}
	return e.table.Match(target.Class, target.Discriminator, target.Segments)
}

// Patterns returns the patterns registered for a scheme or host.
func (e *Engine) Patterns(class router.Class, discriminator string) []*router.Pattern {
	return e.table.Patterns(class, discriminator)
}

// GenerateAction matches u and runs the generator. The observer is not
// consulted, the default presentation is not applied and nothing is
// presented.
func (e *Engine) GenerateAction(u *url.URL, payload any) (*route.Action, bool) {
	m, ok := e.Lookup(u)
	if !ok {
		return nil, false
	}
	data := route.NewURLData(u, m.Params, payload)
	action := m.Pattern.Generator().Generate(data)
	if action == nil {
		return nil, false
	}
	action.SetURLData(data)
	return action, true
}

// Dispatch routes u through the registered patterns. Outcomes are reported
// to the observer.
func (e *Engine) Dispatch(u *url.URL, payload any) {
	a := e.newAttempt(u, payload)
	a.transition(ResolvingGenerator)

	target, ok := e.classifier.Classify(u)
	if ok {
		a.discriminator = target.Discriminator
	}
	m, ok := e.Lookup(u)
	if !ok {
		e.finish(a, NoMatch)
		e.observer.NoMatch(u, payload)
		return
	}

	a.generator = m.Pattern.Generator()
	a.pattern = m.Pattern.String()
	a.data = route.NewURLData(u, m.Params, payload)
	e.requestGeneration(a)
}

// DispatchWith routes u with generator g instead of matching it against the
// registered patterns. Only query parameters end up in the URL data.
func (e *Engine) DispatchWith(u *url.URL, payload any, g route.Generator) {
	if g == nil {
		e.Dispatch(u, payload)
		return
	}
	a := e.newAttempt(u, payload)
	if _, disc, ok := e.classifier.Discriminator(u); ok {
		a.discriminator = disc
	}
	a.generator = g
	a.data = route.NewURLData(u, nil, payload)
	e.requestGeneration(a)
}

// DispatchAction presents an action built by the caller, going through the
// presentation approval and readiness steps. A non-nil presentation
// overrides the action's own.
func (e *Engine) DispatchAction(action *route.Action, presentation route.Presentation) {
	if action == nil {
		return
	}
	a := e.newAttempt(action.URLData().URL(), action.URLData().Payload())
	a.data = action.URLData()
	a.action = action
	a.presentation = presentation
	e.requestPresentation(a)
}

// HasDeferredRoute reports whether an attempt is parked.
func (e *Engine) HasDeferredRoute() bool {
	_, ok := e.deferred.peek()
	return ok
}

// DeferredRoute returns a copy of the parked attempt, if any.
func (e *Engine) DeferredRoute() (DeferredAttempt, bool) {
	d, ok := e.deferred.peek()
	if !ok {
		return DeferredAttempt{}, false
	}
	return *d, true
}

// ClearDeferredRoute drops the parked attempt, if any.
func (e *Engine) ClearDeferredRoute() {
	if d, ok := e.deferred.peek(); ok {
		e.logger.Debug("Deferred route cleared", zap.String("attempt_id", d.ID))
	}
	e.deferred.clear()
}

// HandleDeferredRoute resumes the parked attempt from the stage it was
// deferred at, asking the observer again. The observer may defer it again.
func (e *Engine) HandleDeferredRoute() {
	d, ok := e.deferred.take()
	if !ok {
		return
	}

	a := &attempt{
		id:            d.ID,
		url:           d.URL,
		data:          d.Data,
		generator:     d.Generator,
		action:        d.Action,
		discriminator: d.discriminator,
		pattern:       d.pattern,
		presentation:  d.presentation,
		state:         Deferred,
		engine:        e,
	}
	if d.Data != nil {
		a.payload = d.Data.Payload()
	}
	e.logger.Info("Resuming deferred route",
		zap.String("attempt_id", a.id),
		zap.String("stage", d.Stage.String()),
		zap.String("url", urlString(a.url)))

	switch d.Stage {
	case AtGeneration:
		e.requestGeneration(a)
	case AtPresentation:
		e.requestPresentation(a)
	}
}

func (e *Engine) requestGeneration(a *attempt) {
	a.transition(AwaitingGenerationApproval)

	switch e.observer.ShouldGenerate(a.generator, a.data) {
	case Allow:
		e.generate(a)
	case Defer:
		e.park(a, AtGeneration)
	default:
		e.finish(a, GenerationCancelled)
		e.notifyCancelled(AtGeneration, a)
	}
}

func (e *Engine) generate(a *attempt) {
	a.transition(Generating)

	action := a.generator.Generate(a.data)
	if action == nil {
		e.finish(a, GenerationFailed)
		e.observer.GenerationFailed(a.generator, a.data)
		return
	}

	action.SetURLData(a.data)
	if action.Presentation() == nil && e.defaultPresentation != nil {
		action.SetPresentation(e.defaultPresentation)
	}
	a.action = action
	e.requestPresentation(a)
}

func (e *Engine) requestPresentation(a *attempt) {
	a.transition(AwaitingPresentationApproval)

	switch e.observer.ShouldPresent(a.action) {
	case Allow:
		e.present(a)
	case Defer:
		e.park(a, AtPresentation)
	default:
		e.finish(a, PresentationCancelled)
		e.notifyCancelled(AtPresentation, a)
	}
}

func (e *Engine) present(a *attempt) {
	origin := e.observer.PresentingOrigin(a.action)
	if origin == nil {
		panic(rerrors.NewContractViolation("", rerrors.ErrMissingOrigin).
			WithDetail("attempt_id", a.id).
			WithDetail("url", urlString(a.url)))
	}

	presentation := a.presentation
	if presentation == nil {
		presentation = a.action.Presentation()
	}
	if presentation == nil {
		presentation = e.defaultPresentation
	}
	if presentation == nil {
		panic(rerrors.NewContractViolation("", rerrors.ErrMissingPresentation).
			WithDetail("attempt_id", a.id).
			WithDetail("url", urlString(a.url)))
	}

	a.transition(AwaitingPresentationReadiness)

	var fired atomic.Bool
	e.observer.WillPresent(a.action, func() {
		if !fired.CompareAndSwap(false, true) {
			a.logger().Warn("Presentation completion called more than once")
			return
		}
		if err := a.action.PresentWith(origin, presentation); err != nil {
			a.logger().Error("Presentation failed", zap.Error(err))
		}
		e.finish(a, Presented)
		e.observer.DidPresent(a.action)
	})
}

// park captures a in the deferred slot, dropping any attempt parked before.
func (e *Engine) park(a *attempt, stage Stage) {
	replaced := e.deferred.capture(&DeferredAttempt{
		ID:            a.id,
		Stage:         stage,
		URL:           a.url,
		Data:          a.data,
		Generator:     a.generator,
		Action:        a.action,
		discriminator: a.discriminator,
		pattern:       a.pattern,
		presentation:  a.presentation,
	})
	if replaced != nil && replaced.ID != a.id {
		a.logger().Info("Deferred route replaced",
			zap.String("dropped_attempt_id", replaced.ID),
			zap.String("dropped_url", urlString(replaced.URL)))
	}

	e.collector.RecordDeferral(stage.String(), replaced != nil && replaced.ID != a.id)
	a.logger().Info("Route deferred", zap.String("stage", stage.String()))
	a.transition(Deferred)
}

func (e *Engine) finish(a *attempt, state State) {
	a.transition(state)
	e.collector.RecordOutcome(state.String(), a.discriminator)

	switch state {
	case Presented:
		a.logger().Info("Route presented")
	case NoMatch, GenerationFailed:
		a.logger().Warn("Route failed", zap.String("outcome", state.String()))
	default:
		a.logger().Info("Route cancelled", zap.String("outcome", state.String()))
	}
}

func (e *Engine) notifyCancelled(stage Stage, a *attempt) {
	if co, ok := e.observer.(CancellationObserver); ok {
		co.RoutingCancelled(stage, a.data, a.action)
	}
}

func (e *Engine) newAttempt(u *url.URL, payload any) *attempt {
	return &attempt{
		id:      e.newID(),
		url:     u,
		payload: payload,
		state:   Idle,
		engine:  e,
	}
}

// attempt carries one routing attempt through the pipeline
type attempt struct {
	id            string
	url           *url.URL
	payload       any
	data          *route.URLData
	generator     route.Generator
	action        *route.Action
	discriminator string
	pattern       string
	presentation  route.Presentation
	state         State
	engine        *Engine
}

func (a *attempt) logger() *zap.Logger {
	fields := []zap.Field{
		zap.String("attempt_id", a.id),
		zap.String("url", urlString(a.url)),
	}
	if a.discriminator != "" {
		fields = append(fields, zap.String("discriminator", a.discriminator))
	}
	if a.pattern != "" {
		fields = append(fields, zap.String("pattern", a.pattern))
	}
	return a.engine.logger.With(fields...)
}

func (a *attempt) transition(s State) {
	a.state = s
	if ce := a.engine.logger.Check(zap.DebugLevel, "Route state"); ce != nil {
		ce.Write(zap.String("attempt_id", a.id), zap.String("state", s.String()))
	}
	if to, ok := a.engine.observer.(TransitionObserver); ok {
		to.StateChanged(a.id, s)
	}
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
