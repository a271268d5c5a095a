// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/io/event"
	"gioui.org/x/multitouch/io/pointer"
)

func pointerEvent(kind pointer.Kind, seq pointer.Sequence, ms int, x, y float64) pointer.Event {
	return pointer.Event{
		Kind:     kind,
		Source:   pointer.Touch,
		Sequence: seq,
		Time:     time.Duration(ms) * time.Millisecond,
		Position: f64.Pt(x, y),
	}
}

func press(seq pointer.Sequence, ms int, x, y float64) pointer.Event {
	return pointerEvent(pointer.Press, seq, ms, x, y)
}

func move(seq pointer.Sequence, ms int, x, y float64) pointer.Event {
	return pointerEvent(pointer.Move, seq, ms, x, y)
}

func release(seq pointer.Sequence, ms int, x, y float64) pointer.Event {
	return pointerEvent(pointer.Release, seq, ms, x, y)
}

func feed(t *testing.T, c EventController, events ...event.Event) {
	t.Helper()
	for _, e := range events {
		if c.HandleEvent(e) {
			t.Fatalf("gesture consumed %v", e)
		}
	}
}

// names maps notifications to short names for comparison.
func names(events []event.Event) []string {
	var res []string
	for _, e := range events {
		var n string
		switch e.(type) {
		case BeginEvent:
			n = "begin"
		case EndEvent:
			n = "end"
		case UpdateEvent:
			n = "update"
		case PressedEvent:
			n = "pressed"
		case SwipeEvent:
			n = "swipe"
		case AngleEvent:
			n = "angle"
		case ScaleEvent:
			n = "scale"
		default:
			n = "unknown"
		}
		res = append(res, n)
	}
	return res
}

func assertNames(t *testing.T, events []event.Event, want ...string) {
	t.Helper()
	got := names(events)
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got notifications %v, want %v", got, want)
	}
}

type keyEvent struct{}

func (keyEvent) ImplementsEvent() {}

func TestGestureBelowRequiredPoints(t *testing.T) {
	g := New(2, nil)
	feed(t, g,
		press(1, 0, 10, 10),
		move(1, 10, 20, 20),
		release(1, 20, 20, 20),
		press(2, 30, 0, 0),
		move(2, 40, 5, 5),
		release(2, 50, 5, 5),
	)
	assertNames(t, g.Events())
	if g.Active() {
		t.Error("gesture active with a single point")
	}
}

func TestGestureTwoPoints(t *testing.T) {
	g := New(2, nil)
	feed(t, g, press(1, 0, 0, 0))
	assertNames(t, g.Events())
	feed(t, g, press(2, 10, 10, 10))
	assertNames(t, g.Events(), "begin")
	if !g.Active() {
		t.Fatal("gesture inactive with two points")
	}
	feed(t, g, move(1, 20, 1, 1))
	evts := g.Events()
	assertNames(t, evts, "update")
	if u := evts[0].(UpdateEvent); u.Sequence != 1 {
		t.Errorf("update for sequence %d, want 1", u.Sequence)
	}
	// Releasing one finger ends the gesture immediately.
	feed(t, g, release(2, 30, 12, 12))
	evts = g.Events()
	assertNames(t, evts, "update", "end")
	if u := evts[0].(UpdateEvent); u.Sequence != 2 {
		t.Errorf("update for sequence %d, want 2", u.Sequence)
	}
	if g.Active() {
		t.Error("gesture active after release")
	}
	if got, want := g.Sequences(), []pointer.Sequence{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sequences() = %v, want %v", got, want)
	}
}

func TestGestureTooManyPoints(t *testing.T) {
	g := New(2, nil)
	feed(t, g, press(1, 0, 0, 0), press(2, 0, 1, 1))
	assertNames(t, g.Events(), "begin")
	feed(t, g, press(3, 0, 2, 2))
	assertNames(t, g.Events(), "end")
	// Releasing an inactive contact doesn't re-check.
	feed(t, g, release(3, 10, 2, 2))
	assertNames(t, g.Events())
	if g.Active() {
		t.Error("release re-activated the gesture")
	}
	// The next update does.
	feed(t, g, move(1, 20, 3, 3))
	assertNames(t, g.Events(), "begin", "update")
}

type countingRecognizer struct {
	DefaultRecognizer
	checks int
	points []int
	accept bool
}

func (r *countingRecognizer) Check(g *Gesture) bool {
	r.checks++
	r.points = append(r.points, len(g.Sequences()))
	return r.accept
}

func TestGestureCheckOrdering(t *testing.T) {
	r := &countingRecognizer{accept: false}
	g := New(2, r)
	feed(t, g,
		press(1, 0, 0, 0),
		move(1, 10, 1, 1),
		press(2, 20, 5, 5),
		press(3, 30, 6, 6),
		move(3, 40, 7, 7),
	)
	// Only the press of the second contact matched the point count.
	if r.checks != 1 {
		t.Errorf("Check called %d times, want 1", r.checks)
	}
	for _, n := range r.points {
		if n != 2 {
			t.Errorf("Check called with %d points", n)
		}
	}
	assertNames(t, g.Events())

	r.accept = true
	feed(t, g, release(3, 50, 7, 7), move(1, 60, 2, 2))
	assertNames(t, g.Events(), "begin", "update")
}

func TestGestureCheckOnlyGatesActivation(t *testing.T) {
	r := &countingRecognizer{accept: true}
	g := New(1, r)
	feed(t, g, press(1, 0, 0, 0))
	assertNames(t, g.Events(), "begin")
	r.accept = false
	// A matching point count keeps the gesture active.
	feed(t, g, move(1, 10, 1, 1), move(1, 20, 2, 2))
	assertNames(t, g.Events(), "update", "update")
	if !g.Active() {
		t.Error("gesture ended while the point count matched")
	}
	if r.checks != 1 {
		t.Errorf("Check called %d times on an active gesture, want 1", r.checks)
	}
	feed(t, g, release(1, 30, 2, 2))
	assertNames(t, g.Events(), "update", "end")
}

func TestGestureIgnoredEvents(t *testing.T) {
	g := New(1, nil)
	feed(t, g,
		keyEvent{},
		pointer.Event{Kind: pointer.Press, Position: f64.Pt(math.NaN(), 0)},
		pointer.Event{Kind: pointer.Scroll, Position: f64.Pt(1, 1)},
		pointer.Event{Kind: pointer.Cancel},
		pointer.Event{Kind: pointer.Enter},
	)
	assertNames(t, g.Events())
	if len(g.Sequences()) != 0 {
		t.Errorf("ignored events tracked %v", g.Sequences())
	}
	// Moves and releases of untracked contacts are ignored.
	feed(t, g, move(4, 0, 1, 1), release(4, 0, 1, 1))
	assertNames(t, g.Events())
}

func TestGestureMouseSequence(t *testing.T) {
	g := New(1, nil)
	mouse := func(kind pointer.Kind, ms int, x, y float64) pointer.Event {
		e := pointerEvent(kind, pointer.NoSequence, ms, x, y)
		e.Source = pointer.Mouse
		return e
	}
	// A second button press on the same pointer updates the
	// implicit sequence.
	feed(t, g, mouse(pointer.Press, 0, 1, 1), mouse(pointer.Press, 5, 2, 2))
	assertNames(t, g.Events(), "begin")
	if p, _ := g.Point(pointer.NoSequence); p != f64.Pt(2, 2) {
		t.Errorf("implicit sequence at %v, want {2 2}", p)
	}
	feed(t, g, mouse(pointer.Release, 10, 3, 3))
	assertNames(t, g.Events(), "update", "end")
}

func TestGestureQueries(t *testing.T) {
	g := New(3, nil)
	if _, ok := g.BoundingBox(); ok {
		t.Error("bounding box without points")
	}
	feed(t, g,
		press(7, 5, 10, 40),
		press(3, 6, 30, -5),
		move(7, 12, 0, 20),
	)
	if got, want := g.Sequences(), []pointer.Sequence{7, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sequences() = %v, want %v", got, want)
	}
	if p, ok := g.Point(7); !ok || p != f64.Pt(0, 20) {
		t.Errorf("Point(7) = %v, %v; want {0 20}, true", p, ok)
	}
	if tm, ok := g.LastUpdateTime(7); !ok || tm != 12*time.Millisecond {
		t.Errorf("LastUpdateTime(7) = %v, %v; want 12ms, true", tm, ok)
	}
	if _, ok := g.Point(9); ok {
		t.Error("Point of unknown sequence found")
	}
	if _, ok := g.LastUpdateTime(9); ok {
		t.Error("LastUpdateTime of unknown sequence found")
	}
	want := f64.Rectangle{Min: f64.Pt(0, -5), Max: f64.Pt(30, 20)}
	if r, ok := g.BoundingBox(); !ok || r != want {
		t.Errorf("BoundingBox() = %v, %v; want %v, true", r, ok, want)
	}
	if g.Points() != 3 {
		t.Errorf("Points() = %d, want 3", g.Points())
	}
}

func TestGestureReleaseUpdatesPoint(t *testing.T) {
	var seen []f64.Point
	r := &updateRecorder{seen: &seen}
	g := New(1, r)
	feed(t, g, press(1, 0, 0, 0), release(1, 10, 4, 5))
	if want := []f64.Point{f64.Pt(4, 5)}; !reflect.DeepEqual(seen, want) {
		t.Errorf("update saw %v, want %v", seen, want)
	}
}

type updateRecorder struct {
	DefaultRecognizer
	seen *[]f64.Point
}

func (r *updateRecorder) Update(g *Gesture, seq pointer.Sequence) {
	p, _ := g.Point(seq)
	*r.seen = append(*r.seen, p)
}

func TestGestureEndIdempotent(t *testing.T) {
	g := New(1, nil)
	feed(t, g, press(1, 0, 0, 0), release(1, 10, 0, 0), release(1, 20, 0, 0))
	assertNames(t, g.Events(), "begin", "update", "end")
}

func TestGestureBalancedTransitions(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := New(2, nil)
	down := map[pointer.Sequence]bool{}
	outstanding := 0
	for i := 0; i < 2000; i++ {
		seq := pointer.Sequence(rng.Intn(4))
		var e pointer.Event
		switch {
		case !down[seq]:
			e = press(seq, i, rng.Float64()*100, rng.Float64()*100)
			down[seq] = true
		case rng.Intn(3) == 0:
			e = release(seq, i, rng.Float64()*100, rng.Float64()*100)
			delete(down, seq)
		default:
			e = move(seq, i, rng.Float64()*100, rng.Float64()*100)
		}
		feed(t, g, e)
		for _, n := range names(g.Events()) {
			switch n {
			case "begin":
				outstanding++
			case "end":
				outstanding--
			}
		}
		if outstanding < 0 || outstanding > 1 {
			t.Fatalf("step %d: %d outstanding begins", i, outstanding)
		}
		if g.Active() != (outstanding == 1) {
			t.Fatalf("step %d: Active() = %v with %d outstanding begins", i, g.Active(), outstanding)
		}
		if g.Active() && len(g.Sequences()) != 2 {
			t.Fatalf("step %d: active with %d points", i, len(g.Sequences()))
		}
	}
}

func TestNewPanicsOnZeroPoints(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0, nil) did not panic")
		}
	}()
	New(0, nil)
}

func TestControllerFunc(t *testing.T) {
	var got []event.Event
	c := ControllerFunc(func(e event.Event) bool {
		got = append(got, e)
		return true
	})
	if !c.HandleEvent(keyEvent{}) {
		t.Error("ControllerFunc result not forwarded")
	}
	if len(got) != 1 {
		t.Errorf("ControllerFunc saw %d events", len(got))
	}
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
