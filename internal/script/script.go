// SPDX-License-Identifier: Unlicense OR MIT

// Package script decodes recorded pointer input for replay.
//
// A script is a YAML document with a list of steps. A step either
// delivers a pointer event at an absolute time
//
//	- {at_ms: 120, kind: move, seq: 1, x: 40, y: 12}
//
// or advances the clock without input, which lets pending timers fire:
//
//	- {advance_ms: 700}
package script

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/io/pointer"
)

type Script struct {
	Name string `yaml:"name"`
	// Source is the default pointer source of the steps, "touch"
	// unless set.
	Source string `yaml:"source"`
	Steps  []Step `yaml:"steps"`
}

type Step struct {
	AtMs      float64  `yaml:"at_ms"`
	Kind      string   `yaml:"kind"`
	Seq       uint32   `yaml:"seq"`
	X         float64  `yaml:"x"`
	Y         float64  `yaml:"y"`
	Source    string   `yaml:"source"`
	AdvanceMs *float64 `yaml:"advance_ms"`
}

// Action is a decoded step. Exactly one of Event and Advance is set.
type Action struct {
	Event   *pointer.Event
	Advance time.Duration
}

var ErrEmpty = errors.New("script has no steps")

// Load reads and decodes the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script document.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, ErrEmpty
	}
	if _, err := s.Actions(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Actions converts the steps to events and clock advances. Event
// times must not decrease.
func (s *Script) Actions() ([]Action, error) {
	defSrc, err := parseSource(s.Source)
	if err != nil {
		return nil, err
	}
	var (
		acts []Action
		last time.Duration
	)
	for i, st := range s.Steps {
		if st.AdvanceMs != nil {
			if st.Kind != "" {
				return nil, fmt.Errorf("step %d: advance_ms and kind are exclusive", i)
			}
			if *st.AdvanceMs < 0 {
				return nil, fmt.Errorf("step %d: negative advance_ms %v", i, *st.AdvanceMs)
			}
			acts = append(acts, Action{Advance: millis(*st.AdvanceMs)})
			continue
		}
		e, err := st.event(defSrc)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		if e.Time < last {
			return nil, fmt.Errorf("step %d: time %v before %v", i, e.Time, last)
		}
		last = e.Time
		acts = append(acts, Action{Event: &e})
	}
	return acts, nil
}

func (st Step) event(defSrc pointer.Source) (pointer.Event, error) {
	if st.Kind == "" {
		return pointer.Event{}, errors.New("missing kind")
	}
	kind, ok := pointer.ParseKind(strings.ToUpper(st.Kind[:1]) + strings.ToLower(st.Kind[1:]))
	if !ok {
		return pointer.Event{}, fmt.Errorf("unknown kind %q", st.Kind)
	}
	src := defSrc
	if st.Source != "" {
		var err error
		if src, err = parseSource(st.Source); err != nil {
			return pointer.Event{}, err
		}
	}
	if st.AtMs < 0 {
		return pointer.Event{}, fmt.Errorf("negative at_ms %v", st.AtMs)
	}
	e := pointer.Event{
		Kind:     kind,
		Source:   src,
		Sequence: pointer.Sequence(st.Seq),
		Time:     millis(st.AtMs),
		Position: f64.Pt(st.X, st.Y),
	}
	if src == pointer.Mouse {
		e.Sequence = pointer.NoSequence
		if kind == pointer.Press {
			e.Buttons = pointer.ButtonPrimary
		}
	}
	return e, nil
}

func parseSource(s string) (pointer.Source, error) {
	switch strings.ToLower(s) {
	case "", "touch":
		return pointer.Touch, nil
	case "mouse":
		return pointer.Mouse, nil
	default:
		return 0, fmt.Errorf("unknown source %q", s)
	}
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
