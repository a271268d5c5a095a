// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/x/multitouch/io/pointer"
)

// Zoom detects two contact pinch and spread gestures.
type Zoom struct {
	Gesture
	baseline
}

// ScaleEvent is queued for every update of an active zoom.
type ScaleEvent struct {
	// Distance is the current distance between the contacts.
	Distance float64
	// Scale is Distance relative to the distance when the zoom
	// started.
	Scale float64
}

type zoomRecognizer struct {
	DefaultRecognizer
	z *Zoom
}

// NewZoom returns a zoom recognizer.
func NewZoom() *Zoom {
	z := new(Zoom)
	z.Gesture.init("zoom", 2, zoomRecognizer{z: z})
	return z
}

// Distance returns the current distance between the contacts of an
// active zoom. Coincident contacts have no usable distance.
func (z *Zoom) Distance() (float64, bool) {
	p1, p2, ok := pair(&z.Gesture)
	if !ok {
		return 0, false
	}
	d := p1.Dist(p2)
	if d == 0 {
		return 0, false
	}
	return d, true
}

// ScaleDelta returns the scale since the zoom started.
func (z *Zoom) ScaleDelta() (float64, bool) {
	d, ok := z.Distance()
	if !ok || !z.valid {
		return 0, false
	}
	return d / z.ref, true
}

func (r zoomRecognizer) Begin(*Gesture) {
	r.z.capture(r.z.Distance())
}

func (r zoomRecognizer) Update(g *Gesture, seq pointer.Sequence) {
	d, ok := r.z.Distance()
	if !ok {
		return
	}
	r.z.capture(d, true)
	g.Emit(ScaleEvent{Distance: d, Scale: d / r.z.ref})
}

func (r zoomRecognizer) End(*Gesture) {
	r.z.valid = false
}

func (ScaleEvent) ImplementsEvent() {}
