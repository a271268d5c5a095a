// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router delivers the input events of a surface to its
gesture recognizers.

Every registered handler observes every event, in registration
order. A Router also owns the clock of the surface: it is a
timer.Scheduler whose time follows the timestamps of the queued
pointer events, so deferred callbacks fire in chronological order
with respect to input.

A Router is not safe for concurrent use. It is meant to be driven
from the goroutine that runs the surface's event loop.
*/
package router

import (
	"time"

	"gioui.org/x/multitouch/internal/log"
	"gioui.org/x/multitouch/io/event"
	"gioui.org/x/multitouch/io/pointer"
	"gioui.org/x/multitouch/io/timer"
)

// Handler consumes events. It has the same method as
// gesture.EventController.
type Handler interface {
	HandleEvent(e event.Event) bool
}

// Router routes events to handlers.
type Router struct {
	handlers []Handler
	timers   timer.Queue
}

// Add registers handlers.
func (r *Router) Add(handlers ...Handler) {
	r.handlers = append(r.handlers, handlers...)
}

// Len returns the number of registered handlers.
func (r *Router) Len() int {
	return len(r.handlers)
}

// Queue events to be routed. Before a pointer event is delivered,
// the clock advances to its timestamp and due callbacks run. Queue
// reports whether any handler consumed any of the events.
func (r *Router) Queue(events ...event.Event) bool {
	handled := false
	for _, e := range events {
		if pe, ok := e.(pointer.Event); ok {
			r.Advance(pe.Time)
		}
		for _, h := range r.handlers {
			if h.HandleEvent(e) {
				handled = true
			}
		}
	}
	return handled
}

// Advance moves the clock to now and runs the callbacks due by then.
func (r *Router) Advance(now time.Duration) {
	if n := r.timers.Advance(now); n > 0 {
		log.Logger().WithField("now", r.timers.Now()).Debugf("ran %d deferred callbacks", n)
	}
}

// AfterFunc implements timer.Scheduler.
func (r *Router) AfterFunc(d time.Duration, f func()) timer.Timer {
	return r.timers.AfterFunc(d, f)
}

// Now returns the current time of the surface clock.
func (r *Router) Now() time.Duration {
	return r.timers.Now()
}

// WakeupTime returns the time the surface needs to be advanced to
// for its next deferred callback.
func (r *Router) WakeupTime() (time.Duration, bool) {
	return r.timers.Next()
}
