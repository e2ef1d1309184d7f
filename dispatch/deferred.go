package dispatch

import (
	"net/url"

	"github.com/yshengliao/linkroute/route"
)

// DeferredAttempt is a routing attempt parked by an observer, with the
// inputs needed to resume it from Stage.
type DeferredAttempt struct {
	ID        string
	Stage     Stage
	URL       *url.URL
	Data      *route.URLData
	Generator route.Generator
	Action    *route.Action

	discriminator string
	pattern       string
	presentation  route.Presentation // override for directly dispatched actions
}

// deferredSlot holds at most one deferred attempt. Capturing replaces
// whatever was held before.
type deferredSlot struct {
	held *DeferredAttempt
}

func (s *deferredSlot) capture(d *DeferredAttempt) (replaced *DeferredAttempt) {
	replaced = s.held
	s.held = d
	return replaced
}

func (s *deferredSlot) take() (*DeferredAttempt, bool) {
	d := s.held
	s.held = nil
	return d, d != nil
}

func (s *deferredSlot) peek() (*DeferredAttempt, bool) {
	return s.held, s.held != nil
}

func (s *deferredSlot) clear() {
	s.held = nil
}
