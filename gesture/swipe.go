// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"golang.org/x/exp/slices"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/internal/log"
	"gioui.org/x/multitouch/io/pointer"
)

// SwipeWindow is the span of recent motion that determines the
// velocity of a swipe.
const SwipeWindow = 150 * time.Millisecond

// Swipe detects single contact swipes and reports their
// velocity when the contact lifts.
type Swipe struct {
	Gesture
	history []sample
}

// SwipeEvent is queued when a swipe ends. Velocity is in pixels
// per second.
type SwipeEvent struct {
	Velocity f64.Point
}

type sample struct {
	time time.Duration
	pos  f64.Point
}

type swipeRecognizer struct {
	DefaultRecognizer
	s *Swipe
}

// NewSwipe returns a swipe recognizer.
func NewSwipe() *Swipe {
	s := new(Swipe)
	s.Gesture.init("swipe", 1, swipeRecognizer{s: s})
	return s
}

// Velocity estimates the current velocity from the samples of the
// active swipe.
func (s *Swipe) Velocity() f64.Point {
	if len(s.history) == 0 {
		return f64.Point{}
	}
	first, last := s.history[0], s.history[len(s.history)-1]
	dt := last.time - first.time
	if dt <= 0 {
		return f64.Point{}
	}
	ms := float64(dt) / float64(time.Millisecond)
	return last.pos.Sub(first.pos).Mul(1000 / ms)
}

func (s *Swipe) record(g *Gesture, seq pointer.Sequence) {
	t, ok := g.LastUpdateTime(seq)
	if !ok {
		return
	}
	p, _ := g.Point(seq)
	s.history = append(s.history, sample{time: t, pos: p})
	s.trim(t)
}

// trim drops the samples older than SwipeWindow before now, except
// for the newest of them. Keeping it preserves the segment crossing
// the window edge.
func (s *Swipe) trim(now time.Duration) {
	cutoff := now - SwipeWindow
	i := slices.IndexFunc(s.history, func(sm sample) bool {
		return sm.time >= cutoff
	})
	if i == -1 {
		i = len(s.history)
	}
	if i > 1 {
		s.history = slices.Delete(s.history, 0, i-1)
	}
}

func (r swipeRecognizer) Begin(g *Gesture) {
	r.s.history = r.s.history[:0]
	r.s.record(g, g.Sequences()[0])
}

func (r swipeRecognizer) Update(g *Gesture, seq pointer.Sequence) {
	r.s.record(g, seq)
}

func (r swipeRecognizer) End(g *Gesture) {
	s := r.s
	if seqs := g.Sequences(); len(seqs) > 0 {
		if t, ok := g.LastUpdateTime(seqs[0]); ok {
			s.trim(t)
		}
	}
	v := s.Velocity()
	s.history = s.history[:0]
	log.Logger().WithField("gesture", g.name).Debugf("swipe %.1f,%.1f", v.X, v.Y)
	g.Emit(SwipeEvent{Velocity: v})
}

func (SwipeEvent) ImplementsEvent() {}
