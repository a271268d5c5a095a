// SPDX-License-Identifier: Unlicense OR MIT

/*
Package pointer describes the raw pointer and touch events consumed by
gesture recognizers.

Each contact is identified by a Sequence that stays stable from its
Press to its Release. Mouse events use NoSequence, the implicit
sequence shared by all buttons of a single pointer.
*/
package pointer

import (
	"strings"
	"time"

	"gioui.org/x/multitouch/f64"
)

// Event is a pointer event.
type Event struct {
	Kind   Kind
	Source Source
	// Sequence identifies the contact that generated the event
	// and can be used to track it from Press to Release.
	Sequence Sequence
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
	// Buttons are the set of pressed mouse buttons for this event.
	Buttons Buttons
	// Position is the coordinates of the event in the local coordinate
	// system of the receiving surface.
	Position f64.Point
}

// Sequence is the opaque identity of a contact.
type Sequence uint32

// NoSequence is the implicit sequence of single pointer devices.
const NoSequence Sequence = 0

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

// Buttons is a set of mouse buttons
type Buttons uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by the system.
	Cancel Kind = 1 << iota
	// Press of a pointer or the start of a touch.
	Press
	// Release of a pointer or the end of a touch.
	Release
	// Move of a pointer or an update of a touch.
	Move
	// Pointer enters the surface.
	Enter
	// Pointer leaves the surface.
	Leave
	// Scroll of a pointer.
	Scroll
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

// ParseKind returns the Kind named s, as returned by Kind.String
// for single kinds.
func ParseKind(s string) (Kind, bool) {
	for k := Kind(1); k <= Scroll; k <<= 1 {
		if k.string() == s {
			return k, true
		}
	}
	return 0, false
}

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Scroll:
		return "Scroll"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
