// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"math"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/io/pointer"
)

// Rotate detects two contact rotations.
type Rotate struct {
	Gesture
	baseline
}

// AngleEvent is queued for every update of an active rotation.
// Angles are in radians.
type AngleEvent struct {
	// Angle is the current angle of the line between the contacts,
	// in [0, 2π).
	Angle float64
	// Delta is Angle minus the angle when the rotation started.
	Delta float64
}

// baseline is the reference value of a two contact gesture. It is
// captured from the first sample of the episode where the contacts
// don't coincide.
type baseline struct {
	ref   float64
	valid bool
}

type rotateRecognizer struct {
	DefaultRecognizer
	r *Rotate
}

// NewRotate returns a rotation recognizer.
func NewRotate() *Rotate {
	r := new(Rotate)
	r.Gesture.init("rotate", 2, rotateRecognizer{r: r})
	return r
}

// Angle returns the current angle of an active rotation.
func (r *Rotate) Angle() (float64, bool) {
	p1, p2, ok := pair(&r.Gesture)
	if !ok {
		return 0, false
	}
	d := p1.Sub(p2)
	if d.X == 0 && d.Y == 0 {
		return 0, false
	}
	a := math.Atan2(d.X, d.Y)
	// Invert the angle and constrain it to [0, 2π).
	return math.Mod(2*math.Pi-a, 2*math.Pi), true
}

// AngleDelta returns the angle difference since the rotation
// started.
func (r *Rotate) AngleDelta() (float64, bool) {
	a, ok := r.Angle()
	if !ok || !r.valid {
		return 0, false
	}
	return a - r.ref, true
}

func (r rotateRecognizer) Begin(g *Gesture) {
	r.r.capture(r.r.Angle())
}

func (r rotateRecognizer) Update(g *Gesture, seq pointer.Sequence) {
	a, ok := r.r.Angle()
	if !ok {
		return
	}
	r.r.capture(a, true)
	g.Emit(AngleEvent{Angle: a, Delta: a - r.r.ref})
}

func (r rotateRecognizer) End(*Gesture) {
	r.r.valid = false
}

func (b *baseline) capture(v float64, ok bool) {
	if ok && !b.valid {
		b.ref = v
		b.valid = true
	}
}

// pair returns the first two contacts of an active gesture.
func pair(g *Gesture) (f64.Point, f64.Point, bool) {
	if !g.Active() || len(g.points) < 2 {
		return f64.Point{}, f64.Point{}, false
	}
	return g.points[0].pos, g.points[1].pos, true
}

func (AngleEvent) ImplementsEvent() {}
