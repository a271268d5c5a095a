// SPDX-License-Identifier: Unlicense OR MIT

// Package tui is a terminal rendition of the gestures demo. Mouse
// input drives a gesture surface and the view draws the last swipe,
// long presses, and the rotated and scaled square of an ongoing
// two finger gesture.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	geom "gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/internal/surface"
	"gioui.org/x/multitouch/io/event"
	"gioui.org/x/multitouch/io/pointer"
)

// tickInterval is how often the surface clock advances without input.
const tickInterval = 16 * time.Millisecond

const maxLog = 5

type tickMsg time.Time

// Model is the bubbletea model of the demo.
type Model struct {
	surf  *surface.Surface
	start time.Time
	now   func() time.Time

	width, height int
	// mirror synthesizes a second contact reflected through the
	// center, which makes rotations and zooms possible with a mouse.
	// It can only be toggled while no button is down.
	mirror bool
	down   bool
	log    []string
}

// New returns a model driving s.
func New(s *surface.Surface) Model {
	return Model{
		surf:   s,
		now:    time.Now,
		start:  time.Now(),
		width:  80,
		height: 24,
	}
}

// Run starts the demo and blocks until the user quits.
func Run(s *surface.Surface) error {
	p := tea.NewProgram(New(s), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "m":
			if !m.down {
				m.mirror = !m.mirror
			}
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.MouseMsg:
		var evts []event.Event
		for _, e := range m.pointerEvents(msg) {
			switch e.Kind {
			case pointer.Press:
				m.down = true
			case pointer.Release:
				m.down = false
			}
			evts = append(evts, e)
		}
		m.record(m.surf.Queue(evts...))
	case tickMsg:
		m.record(m.surf.Advance(m.elapsed()))
		return m, tick()
	}
	return m, nil
}

func (m Model) elapsed() time.Duration {
	return m.now().Sub(m.start)
}

func (m Model) canvasSize() (int, int) {
	return m.width, max(m.height-4, 1)
}

// pointerEvents converts a mouse message to the events of one or,
// when mirroring, two contacts.
func (m Model) pointerEvents(msg tea.MouseMsg) []pointer.Event {
	var kind pointer.Kind
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		kind = pointer.Press
	case tea.MouseActionRelease:
		kind = pointer.Release
	case tea.MouseActionMotion:
		kind = pointer.Move
	default:
		return nil
	}
	// Subtract the title line.
	pos := geom.Pt(
		(float64(msg.X)+.5)*cellW,
		(float64(msg.Y-1)+.5)*cellH,
	)
	e := pointer.Event{
		Kind:     kind,
		Source:   pointer.Mouse,
		Time:     m.elapsed(),
		Position: pos,
	}
	if kind == pointer.Press {
		e.Buttons = pointer.ButtonPrimary
	}
	if !m.mirror {
		return []pointer.Event{e}
	}
	w, h := m.canvasSize()
	c := newCanvas(w, h).center()
	e.Source = pointer.Touch
	e.Sequence = 1
	e2 := e
	e2.Sequence = 2
	e2.Position = c.Mul(2).Sub(pos)
	return []pointer.Event{e, e2}
}

func (m *Model) record(recs []surface.Record) {
	for _, r := range recs {
		line := fmt.Sprintf("%8.1fms %-10s %s", r.Ms, r.Gesture, r.Type)
		switch {
		case r.X != nil && r.Y != nil:
			line += fmt.Sprintf(" (%.1f, %.1f)", *r.X, *r.Y)
		case r.Delta != nil:
			line += fmt.Sprintf(" %.3f rad", *r.Delta)
		case r.Scale != nil:
			line += fmt.Sprintf(" x%.3f", *r.Scale)
		}
		m.log = append(m.log, line)
	}
	if n := len(m.log); n > maxLog {
		m.log = append(m.log[:0], m.log[n-maxLog:]...)
	}
}

func (m Model) View() string {
	w, h := m.canvasSize()
	c := newCanvas(w, h)
	st := m.surf.State()
	center := c.center()

	if st.Swipe != (geom.Point{}) {
		c.line(center, center.Add(st.Swipe), '•', &swipeStyle)
	}
	if st.Transformed {
		mat := mul(translate(center), mul(rotate(st.Angle), scale(st.Scale)))
		square := []geom.Point{
			geom.Pt(-100, -100), geom.Pt(100, -100),
			geom.Pt(100, 100), geom.Pt(-100, 100),
		}
		c.polygon(mat, square, '█', &squareStyle)
	}
	if st.LongPressed {
		c.circle(center, 50, 'o', &pressStyle)
	}

	mirror := "off"
	if m.mirror {
		mirror = "on"
	}
	lp := "disabled"
	if s, ok := m.surf.LongPressState(); ok {
		lp = s.String()
	}
	status := fmt.Sprintf("long press %s  swipe (%.0f, %.0f)  angle %.2f  scale %.2f  mirror %s",
		lp, st.Swipe.X, st.Swipe.Y, st.Angle, st.Scale, mirror)
	last := ""
	if n := len(m.log); n > 0 {
		last = m.log[n-1]
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("gestures")+"  "+mutedStyle.Render("drag to swipe, hold to long press, m to mirror, q to quit"),
		c.String(),
		statusStyle.Render(status),
		mutedStyle.Render(last),
	)
}
