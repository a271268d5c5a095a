// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"math"
	"time"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/internal/log"
	"gioui.org/x/multitouch/io/pointer"
	"gioui.org/x/multitouch/io/timer"
)

const (
	// DefaultTriggerDelay is the hold time of a long press.
	DefaultTriggerDelay = 600 * time.Millisecond
	// DefaultThreshold is the distance in pixels a long press may
	// drift along either axis.
	DefaultThreshold = 32
)

// LongPress detects a single contact held still for a delay.
type LongPress struct {
	Gesture
	// Threshold is the distance in pixels the contact may move
	// along either axis before the press is cancelled.
	Threshold float64

	sched   timer.Scheduler
	delay   time.Duration
	initial f64.Point
	timer   timer.Timer
	// cancelled is set when the contact drifts too far, and holds
	// until the gesture ends.
	cancelled bool
	triggered bool
}

// LongPressState is the state of the current long press.
type LongPressState uint8

// PressedEvent is queued when a long press triggers.
type PressedEvent struct {
	Position f64.Point
}

const (
	// StateIdle is reported when no press is in progress.
	StateIdle LongPressState = iota
	// StateArmed is reported while the trigger delay runs.
	StateArmed
	// StateCancelled is reported when the contact moved too far.
	StateCancelled
	// StateTriggered is reported once the press was held long enough.
	StateTriggered
)

type longPressRecognizer struct {
	lp *LongPress
}

// NewLongPress returns a long press recognizer that schedules its
// trigger on s. A non-positive delay selects DefaultTriggerDelay.
func NewLongPress(s timer.Scheduler, delay time.Duration) *LongPress {
	if s == nil {
		panic("gesture: nil scheduler")
	}
	if delay <= 0 {
		delay = DefaultTriggerDelay
	}
	lp := &LongPress{
		Threshold: DefaultThreshold,
		sched:     s,
		delay:     delay,
	}
	lp.Gesture.init("long-press", 1, longPressRecognizer{lp: lp})
	return lp
}

// Delay returns the trigger delay.
func (lp *LongPress) Delay() time.Duration {
	return lp.delay
}

// State reports the long press state.
func (lp *LongPress) State() LongPressState {
	switch {
	case lp.triggered:
		return StateTriggered
	case lp.cancelled:
		return StateCancelled
	case lp.timer != nil:
		return StateArmed
	default:
		return StateIdle
	}
}

// Close stops any pending trigger.
func (lp *LongPress) Close() {
	lp.stop()
}

func (lp *LongPress) stop() {
	if lp.timer != nil {
		lp.timer.Stop()
		lp.timer = nil
	}
}

func (lp *LongPress) trigger() {
	lp.timer = nil
	seqs := lp.Sequences()
	if len(seqs) == 0 {
		return
	}
	pos, _ := lp.Point(seqs[0])
	lp.triggered = true
	log.Logger().WithField("gesture", lp.name).Debug("pressed")
	lp.Emit(PressedEvent{Position: pos})
}

func (r longPressRecognizer) Check(*Gesture) bool {
	return !r.lp.cancelled
}

func (r longPressRecognizer) Begin(g *Gesture) {
	lp := r.lp
	seqs := g.Sequences()
	lp.initial, _ = g.Point(seqs[0])
	lp.stop()
	lp.timer = lp.sched.AfterFunc(lp.delay, lp.trigger)
}

func (r longPressRecognizer) Update(g *Gesture, seq pointer.Sequence) {
	lp := r.lp
	p, ok := g.Point(seq)
	if !ok {
		return
	}
	if math.Abs(lp.initial.X-p.X) > lp.Threshold ||
		math.Abs(lp.initial.Y-p.Y) > lp.Threshold {
		lp.stop()
		lp.cancelled = true
	}
}

func (r longPressRecognizer) End(*Gesture) {
	r.lp.stop()
	r.lp.cancelled = false
	r.lp.triggered = false
}

func (s LongPressState) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StateArmed:
		return "StateArmed"
	case StateCancelled:
		return "StateCancelled"
	case StateTriggered:
		return "StateTriggered"
	default:
		panic("invalid LongPressState")
	}
}

func (PressedEvent) ImplementsEvent() {}
