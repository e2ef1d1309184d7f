package route

import (
	"fmt"

	rerrors "github.com/yshengliao/linkroute/errors"
)

// Origin is the object a presentation starts from (the current screen,
// window or navigation stack). It is opaque to the router.
type Origin any

// Unit is a presentable value (a screen, a view, a document).
type Unit any

// Presentation performs the actual presentation of unit from origin.
type Presentation func(unit Unit, origin Origin, data *URLData)

// Factory lazily builds a unit at presentation time.
type Factory interface {
	Build(data *URLData) Unit
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(data *URLData) Unit

// Build calls f(data).
func (f FactoryFunc) Build(data *URLData) Unit {
	return f(data)
}

// Func is an arbitrary side effect run instead of presenting a unit. It
// receives the presentation the presenter wants to use so it can present
// units of its own.
type Func func(origin Origin, action *Action, presentation Presentation)

// Content is what an action does when presented. It is one of UnitContent,
// FactoryContent or FuncContent.
type Content interface {
	isContent()
}

// UnitContent presents an already built unit.
type UnitContent struct {
	Unit Unit
}

// FactoryContent builds a new unit when presented.
type FactoryContent struct {
	Factory Factory
}

// FuncContent runs a function when presented.
type FuncContent struct {
	Func Func
}

func (UnitContent) isContent()    {}
func (FactoryContent) isContent() {}
func (FuncContent) isContent()    {}

// Action describes what happens when a routed identifier is presented.
type Action struct {
	content      Content
	urlData      *URLData
	presentation Presentation
}

// ActionOption configures an Action.
type ActionOption func(*Action)

// WithPresentation binds a default presentation to the action.
func WithPresentation(p Presentation) ActionOption {
	return func(a *Action) {
		a.presentation = p
	}
}

// WithURLData attaches the URL data that produced the action.
func WithURLData(d *URLData) ActionOption {
	return func(a *Action) {
		a.urlData = d
	}
}

func newAction(c Content, opts []ActionOption) *Action {
	a := &Action{content: c}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewUnitAction creates an action wrapping an existing unit.
func NewUnitAction(unit Unit, opts ...ActionOption) *Action {
	return newAction(UnitContent{Unit: unit}, opts)
}

// NewFactoryAction creates an action that builds its unit when presented.
func NewFactoryAction(f Factory, opts ...ActionOption) *Action {
	return newAction(FactoryContent{Factory: f}, opts)
}

// NewFuncAction creates an action that runs fn when presented.
func NewFuncAction(fn Func, opts ...ActionOption) *Action {
	return newAction(FuncContent{Func: fn}, opts)
}

// Content returns the action's content variant.
func (a *Action) Content() Content {
	return a.content
}

// URLData returns the data the action was generated from, if any.
func (a *Action) URLData() *URLData {
	return a.urlData
}

// SetURLData replaces the data the action was generated from.
func (a *Action) SetURLData(d *URLData) {
	a.urlData = d
}

// Presentation returns the action's bound default presentation.
func (a *Action) Presentation() Presentation {
	return a.presentation
}

// SetPresentation replaces the action's default presentation.
func (a *Action) SetPresentation(p Presentation) {
	a.presentation = p
}

// Present presents the action from origin with its bound presentation.
func (a *Action) Present(origin Origin) error {
	return a.PresentWith(origin, a.presentation)
}

// PresentWith presents the action from origin with p. The content is
// resolved here: factories are built, functions are run.
func (a *Action) PresentWith(origin Origin, p Presentation) error {
	if p == nil {
		return rerrors.ErrMissingPresentation
	}
	switch c := a.content.(type) {
	case UnitContent:
		p(c.Unit, origin, a.urlData)
	case FactoryContent:
		p(c.Factory.Build(a.urlData), origin, a.urlData)
	case FuncContent:
		c.Func(origin, a, p)
	default:
		return fmt.Errorf("unsupported action content %T", a.content)
	}
	return nil
}

// Kind returns a short name of the content variant.
func (a *Action) Kind() string {
	switch a.content.(type) {
	case UnitContent:
		return "unit"
	case FactoryContent:
		return "factory"
	case FuncContent:
		return "func"
	default:
		return "unknown"
	}
}
