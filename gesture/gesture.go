// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture implements multi-touch gesture recognizers.

Gestures accept raw pointer Events for a surface and detect higher
level actions such as long presses, swipes, rotations and zooms.
Every recognizer sees the whole event stream; recognizers attached to
the same surface never suppress each other.

Notifications are queued in the order they happen and are drained
with Events. The surrounding event loop is expected to drain after
every batch of input and after every timer advance.
*/
package gesture

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/internal/log"
	"gioui.org/x/multitouch/io/event"
	"gioui.org/x/multitouch/io/pointer"
)

// EventController consumes input events. HandleEvent reports whether
// the event was consumed; controllers that merely observe the stream
// report false.
type EventController interface {
	HandleEvent(e event.Event) bool
}

// ControllerFunc adapts a function to EventController.
type ControllerFunc func(e event.Event) bool

func (f ControllerFunc) HandleEvent(e event.Event) bool {
	return f(e)
}

// Recognizer customizes the transitions of a Gesture.
type Recognizer interface {
	// Check is an additional recognition predicate. It is only
	// called while the number of tracked points matches the
	// gesture requirement and the gesture is inactive. An active
	// gesture ends when the number of points changes.
	Check(g *Gesture) bool
	// Begin is called after the gesture becomes active.
	Begin(g *Gesture)
	// Update is called for every update of an active gesture.
	Update(g *Gesture, seq pointer.Sequence)
	// End is called after the gesture becomes inactive.
	End(g *Gesture)
}

// DefaultRecognizer accepts every gesture and ignores transitions.
// Embed it to override a subset of Recognizer.
type DefaultRecognizer struct{}

// Gesture tracks the active contacts of a surface and reports when
// the configured number of them is down.
type Gesture struct {
	name string
	// n is the number of points required.
	n          int
	rec        Recognizer
	points     []trackedPoint
	recognized bool
	events     []event.Event
}

type trackedPoint struct {
	seq  pointer.Sequence
	pos  f64.Point
	time time.Duration
}

// BeginEvent is queued when a gesture becomes active.
type BeginEvent struct{}

// EndEvent is queued when a gesture becomes inactive.
type EndEvent struct{}

// UpdateEvent is queued when a contact of an active gesture moves
// or lifts.
type UpdateEvent struct {
	Sequence pointer.Sequence
}

// SetLogger installs the logger used by all recognizers. They log
// state transitions at debug level. A nil logger disables logging,
// which is the default.
func SetLogger(l logrus.FieldLogger) {
	log.Set(l)
}

// New returns a gesture that is active while exactly points contacts
// are down and r accepts them. A nil r accepts every gesture.
func New(points int, r Recognizer) *Gesture {
	g := new(Gesture)
	g.init("gesture", points, r)
	return g
}

func (g *Gesture) init(name string, points int, r Recognizer) {
	if points < 1 {
		panic("gesture: required points must be positive")
	}
	if r == nil {
		r = DefaultRecognizer{}
	}
	g.name = name
	g.n = points
	g.rec = r
}

// HandleEvent implements EventController. It never consumes events.
func (g *Gesture) HandleEvent(e event.Event) bool {
	pe, ok := e.(pointer.Event)
	if !ok || !pe.Position.Finite() {
		return false
	}
	switch pe.Kind {
	case pointer.Press:
		g.updatePoint(pe, true)
		g.checkRecognized()
	case pointer.Release:
		if g.updatePoint(pe, false) {
			if g.recognized {
				g.update(pe.Sequence)
				g.setRecognized(false)
			}
			g.removePoint(pe.Sequence)
		}
	case pointer.Move:
		if g.updatePoint(pe, false) {
			g.checkRecognized()
			if g.recognized {
				g.update(pe.Sequence)
			}
		}
	}
	return false
}

// Events returns and clears the queued notifications.
func (g *Gesture) Events() []event.Event {
	evts := g.events
	g.events = nil
	return evts
}

// Emit queues a notification. Recognizers use it to report their
// own events.
func (g *Gesture) Emit(e event.Event) {
	g.events = append(g.events, e)
}

// Points returns the number of contacts the gesture requires.
func (g *Gesture) Points() int {
	return g.n
}

// Active reports whether the gesture is recognized.
func (g *Gesture) Active() bool {
	return g.recognized
}

// Sequences returns the tracked contacts in the order they were
// first pressed.
func (g *Gesture) Sequences() []pointer.Sequence {
	seqs := make([]pointer.Sequence, len(g.points))
	for i, p := range g.points {
		seqs[i] = p.seq
	}
	return seqs
}

// Point returns the last position of seq, if it is tracked.
func (g *Gesture) Point(seq pointer.Sequence) (f64.Point, bool) {
	p := g.lookup(seq)
	if p == nil {
		return f64.Point{}, false
	}
	return p.pos, true
}

// LastUpdateTime returns the time of the last event for seq, if it
// is tracked.
func (g *Gesture) LastUpdateTime(seq pointer.Sequence) (time.Duration, bool) {
	p := g.lookup(seq)
	if p == nil {
		return 0, false
	}
	return p.time, true
}

// BoundingBox returns the smallest rectangle containing every
// tracked point.
func (g *Gesture) BoundingBox() (f64.Rectangle, bool) {
	if len(g.points) == 0 {
		return f64.Rectangle{}, false
	}
	first := g.points[0].pos
	r := f64.Rectangle{Min: first, Max: first}
	for _, p := range g.points[1:] {
		r = r.Union(f64.Rectangle{Min: p.pos, Max: p.pos})
	}
	return r, true
}

func (g *Gesture) lookup(seq pointer.Sequence) *trackedPoint {
	i := slices.IndexFunc(g.points, func(p trackedPoint) bool {
		return p.seq == seq
	})
	if i == -1 {
		return nil
	}
	return &g.points[i]
}

// updatePoint records the position and time of e. Unless add is set,
// only already tracked sequences are updated.
func (g *Gesture) updatePoint(e pointer.Event, add bool) bool {
	p := g.lookup(e.Sequence)
	if p == nil {
		if !add {
			return false
		}
		g.points = append(g.points, trackedPoint{seq: e.Sequence})
		p = &g.points[len(g.points)-1]
	}
	p.pos = e.Position
	p.time = e.Time
	return true
}

func (g *Gesture) removePoint(seq pointer.Sequence) {
	g.points = slices.DeleteFunc(g.points, func(p trackedPoint) bool {
		return p.seq == seq
	})
}

func (g *Gesture) checkRecognized() {
	n := len(g.points)
	switch {
	case g.recognized && n != g.n:
		g.setRecognized(false)
	case !g.recognized && n == g.n && g.rec.Check(g):
		g.setRecognized(true)
	}
}

func (g *Gesture) setRecognized(recognized bool) {
	if g.recognized == recognized {
		return
	}
	g.recognized = recognized
	l := log.Logger().WithFields(logrus.Fields{
		"gesture": g.name,
		"points":  len(g.points),
	})
	if recognized {
		l.Debug("begin")
		g.Emit(BeginEvent{})
		g.rec.Begin(g)
	} else {
		l.Debug("end")
		g.Emit(EndEvent{})
		g.rec.End(g)
	}
}

func (g *Gesture) update(seq pointer.Sequence) {
	g.Emit(UpdateEvent{Sequence: seq})
	g.rec.Update(g, seq)
}

func (DefaultRecognizer) Check(*Gesture) bool                { return true }
func (DefaultRecognizer) Begin(*Gesture)                     {}
func (DefaultRecognizer) Update(*Gesture, pointer.Sequence) {}
func (DefaultRecognizer) End(*Gesture)                       {}

func (BeginEvent) ImplementsEvent()  {}
func (EndEvent) ImplementsEvent()    {}
func (UpdateEvent) ImplementsEvent() {}
