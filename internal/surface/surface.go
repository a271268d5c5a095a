// SPDX-License-Identifier: Unlicense OR MIT

// Package surface runs the gesture recognizers of one input surface
// and turns their notifications into records for display or
// transport.
package surface

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/gesture"
	"gioui.org/x/multitouch/internal/config"
	"gioui.org/x/multitouch/internal/script"
	"gioui.org/x/multitouch/io/event"
	"gioui.org/x/multitouch/io/router"
)

// Surface is a set of recognizers sharing one event stream and one
// clock. It is not safe for concurrent use.
type Surface struct {
	log    logrus.FieldLogger
	router router.Router

	swipe     *gesture.Swipe
	longPress *gesture.LongPress
	rotate    *gesture.Rotate
	zoom      *gesture.Zoom
	queues    []queue

	longPressed bool
	swipeVec    f64.Point
}

type queue struct {
	name   string
	events func() []event.Event
}

// Record is a gesture notification. Fields that don't apply to the
// notification type are nil.
type Record struct {
	Time     time.Duration `json:"-"`
	Ms       float64       `json:"t_ms"`
	Gesture  string        `json:"gesture"`
	Type     string        `json:"type"`
	Sequence *uint32       `json:"seq,omitempty"`
	// X and Y are the position of a long press, or the velocity
	// of a swipe.
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	// Angle and Delta are the angle of a rotation and its change
	// since the rotation began.
	Angle *float64 `json:"angle,omitempty"`
	Delta *float64 `json:"delta,omitempty"`
	// Distance and Scale are the contact distance of a zoom and
	// its ratio to the initial distance.
	Distance *float64 `json:"distance,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
}

// State is what a view of the surface draws.
type State struct {
	// LongPressed is set from a long press trigger to the end of
	// that press.
	LongPressed bool `json:"long_pressed"`
	// Swipe is the velocity of the last swipe, scaled to a tenth.
	Swipe f64.Point `json:"swipe"`
	// Transformed is set while a rotation or zoom is under way.
	Transformed bool    `json:"transformed"`
	Angle       float64 `json:"angle"`
	Scale       float64 `json:"scale"`
}

// New creates a surface with the gestures enabled by cfg.
func New(cfg *config.Config, log logrus.FieldLogger) *Surface {
	if log == nil {
		log = logrus.New()
	}
	s := &Surface{log: log}
	for _, name := range config.AllGestures {
		if !cfg.Enabled(name) {
			continue
		}
		var (
			c      gesture.EventController
			events func() []event.Event
		)
		switch name {
		case config.Swipe:
			s.swipe = gesture.NewSwipe()
			c, events = s.swipe, s.swipe.Events
		case config.LongPress:
			s.longPress = gesture.NewLongPress(&s.router, cfg.LongPressDelay())
			s.longPress.Threshold = cfg.LongPress.Threshold
			c, events = s.longPress, s.longPress.Events
		case config.Rotate:
			s.rotate = gesture.NewRotate()
			c, events = s.rotate, s.rotate.Events
		case config.Zoom:
			s.zoom = gesture.NewZoom()
			c, events = s.zoom, s.zoom.Events
		}
		s.router.Add(c)
		s.queues = append(s.queues, queue{name: name, events: events})
	}
	return s
}

// Queue delivers events and returns the resulting records.
func (s *Surface) Queue(events ...event.Event) []Record {
	var recs []Record
	for _, e := range events {
		s.router.Queue(e)
		recs = s.drain(recs)
	}
	return recs
}

// Advance moves the clock forward to now and returns the records of
// the timers that fired.
func (s *Surface) Advance(now time.Duration) []Record {
	s.router.Advance(now)
	return s.drain(nil)
}

// Now returns the surface clock.
func (s *Surface) Now() time.Duration {
	return s.router.Now()
}

// WakeupTime returns when the surface must next be advanced.
func (s *Surface) WakeupTime() (time.Duration, bool) {
	return s.router.WakeupTime()
}

// Play runs a script and returns its records.
func (s *Surface) Play(sc *script.Script) ([]Record, error) {
	acts, err := sc.Actions()
	if err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	var recs []Record
	for _, a := range acts {
		if a.Event != nil {
			recs = append(recs, s.Queue(*a.Event)...)
		} else {
			recs = append(recs, s.Advance(s.Now()+a.Advance)...)
		}
	}
	return recs, nil
}

// State returns a snapshot for drawing.
func (s *Surface) State() State {
	st := State{
		LongPressed: s.longPressed,
		Swipe:       s.swipeVec,
		Scale:       1,
	}
	if s.rotate != nil {
		if a, ok := s.rotate.AngleDelta(); ok {
			st.Angle = a
			st.Transformed = true
		}
	}
	if s.zoom != nil {
		if sc, ok := s.zoom.ScaleDelta(); ok {
			st.Scale = sc
			st.Transformed = true
		}
	}
	return st
}

// LongPressState reports the state of the long press recognizer.
func (s *Surface) LongPressState() (gesture.LongPressState, bool) {
	if s.longPress == nil {
		return gesture.StateIdle, false
	}
	return s.longPress.State(), true
}

// Close stops pending timers.
func (s *Surface) Close() {
	if s.longPress != nil {
		s.longPress.Close()
	}
}

func (s *Surface) drain(recs []Record) []Record {
	now := s.router.Now()
	for _, q := range s.queues {
		for _, e := range q.events() {
			r := Record{
				Time:    now,
				Ms:      float64(now) / float64(time.Millisecond),
				Gesture: q.name,
			}
			switch e := e.(type) {
			case gesture.BeginEvent:
				r.Type = "begin"
			case gesture.EndEvent:
				r.Type = "end"
				if q.name == config.LongPress {
					s.longPressed = false
				}
			case gesture.UpdateEvent:
				r.Type = "update"
				seq := uint32(e.Sequence)
				r.Sequence = &seq
			case gesture.PressedEvent:
				r.Type = "pressed"
				r.X, r.Y = ptr(e.Position.X), ptr(e.Position.Y)
				s.longPressed = true
			case gesture.SwipeEvent:
				r.Type = "swipe"
				r.X, r.Y = ptr(e.Velocity.X), ptr(e.Velocity.Y)
				s.swipeVec = e.Velocity.Mul(0.1)
			case gesture.AngleEvent:
				r.Type = "angle"
				r.Angle, r.Delta = ptr(e.Angle), ptr(e.Delta)
			case gesture.ScaleEvent:
				r.Type = "scale"
				r.Distance, r.Scale = ptr(e.Distance), ptr(e.Scale)
			default:
				s.log.WithField("gesture", q.name).Warnf("unexpected notification %T", e)
				continue
			}
			s.log.WithFields(logrus.Fields{
				"gesture": r.Gesture,
				"t_ms":    r.Ms,
			}).Debug(r.Type)
			recs = append(recs, r)
		}
	}
	return recs
}

func ptr(v float64) *float64 {
	return &v
}
