// SPDX-License-Identifier: Unlicense OR MIT

package surface

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/gesture"
	"gioui.org/x/multitouch/internal/config"
	"gioui.org/x/multitouch/internal/script"
	"gioui.org/x/multitouch/io/pointer"
)

func play(t *testing.T, s *Surface, doc string) []Record {
	t.Helper()
	sc, err := script.Parse([]byte(doc))
	require.NoError(t, err)
	recs, err := s.Play(sc)
	require.NoError(t, err)
	return recs
}

type kind struct{ gesture, typ string }

func kinds(recs []Record) []kind {
	var res []kind
	for _, r := range recs {
		res = append(res, kind{r.Gesture, r.Type})
	}
	return res
}

func only(recs []Record, name string) []Record {
	var res []Record
	for _, r := range recs {
		if r.Gesture == name {
			res = append(res, r)
		}
	}
	return res
}

func TestSurfaceFlick(t *testing.T) {
	s := New(config.Default(), nil)
	defer s.Close()
	recs := play(t, s, `
steps:
  - {at_ms: 0, kind: press, seq: 1, x: 0, y: 0}
  - {at_ms: 100, kind: move, seq: 1, x: 100, y: 50}
  - {at_ms: 100, kind: release, seq: 1, x: 100, y: 50}
  - {advance_ms: 700}
`)
	assert.Equal(t, []kind{
		{"swipe", "begin"}, {"long-press", "begin"},
		{"swipe", "update"}, {"long-press", "update"},
		{"swipe", "update"}, {"swipe", "end"}, {"swipe", "swipe"},
		{"long-press", "update"}, {"long-press", "end"},
	}, kinds(recs))

	swipe := recs[6]
	assert.Equal(t, ptr(1000), swipe.X)
	assert.Equal(t, ptr(500), swipe.Y)
	assert.Equal(t, 100*time.Millisecond, swipe.Time)

	st := s.State()
	assert.Equal(t, f64.Pt(100, 50), st.Swipe)
	assert.False(t, st.LongPressed)
	assert.False(t, st.Transformed)
	assert.Equal(t, 1.0, st.Scale)
	assert.Equal(t, 800*time.Millisecond, s.Now())
}

func TestSurfaceLongPress(t *testing.T) {
	s := New(config.Default(), nil)
	defer s.Close()
	recs := play(t, s, `
steps:
  - {at_ms: 0, kind: press, seq: 1, x: 10, y: 10}
  - {at_ms: 20, kind: move, seq: 1, x: 14, y: 8}
`)
	lp, ok := s.LongPressState()
	require.True(t, ok)
	assert.Equal(t, gesture.StateArmed, lp)
	wake, ok := s.WakeupTime()
	require.True(t, ok)
	assert.Equal(t, 500*time.Millisecond, wake)
	assert.Equal(t, []kind{{"long-press", "begin"}, {"long-press", "update"}}, kinds(only(recs, "long-press")))

	recs = s.Advance(wake)
	require.Len(t, recs, 1)
	assert.Equal(t, "pressed", recs[0].Type)
	assert.Equal(t, ptr(14), recs[0].X)
	assert.Equal(t, ptr(8), recs[0].Y)
	assert.True(t, s.State().LongPressed)

	recs = s.Queue(pointer.Event{
		Kind:     pointer.Release,
		Source:   pointer.Touch,
		Sequence: 1,
		Time:     700 * time.Millisecond,
		Position: f64.Pt(14, 8),
	})
	assert.Equal(t, []kind{{"long-press", "update"}, {"long-press", "end"}}, kinds(only(recs, "long-press")))
	assert.False(t, s.State().LongPressed)
	_, ok = s.WakeupTime()
	assert.False(t, ok)
}

func TestSurfaceRotateZoom(t *testing.T) {
	s := New(config.Default(), nil)
	defer s.Close()
	recs := play(t, s, `
steps:
  - {at_ms: 0, kind: press, seq: 1, x: 0, y: 0}
  - {at_ms: 10, kind: press, seq: 2, x: 100, y: 0}
  - {at_ms: 20, kind: move, seq: 2, x: 0, y: 100}
`)
	assert.Equal(t, []kind{{"swipe", "begin"}, {"swipe", "end"}, {"swipe", "swipe"}}, kinds(only(recs, "swipe")))
	assert.Equal(t, []kind{{"long-press", "begin"}, {"long-press", "end"}}, kinds(only(recs, "long-press")))

	angles := only(recs, "rotate")
	assert.Equal(t, []kind{{"rotate", "begin"}, {"rotate", "update"}, {"rotate", "angle"}}, kinds(angles))
	require.NotNil(t, angles[2].Angle)
	require.NotNil(t, angles[2].Delta)
	assert.InDelta(t, math.Pi, *angles[2].Angle, 1e-9)
	assert.InDelta(t, math.Pi/2, *angles[2].Delta, 1e-9)
	assert.Nil(t, angles[2].Scale)

	st := s.State()
	assert.True(t, st.Transformed)
	assert.InDelta(t, math.Pi/2, st.Angle, 1e-9)
	assert.InDelta(t, 1, st.Scale, 1e-9)

	recs = s.Queue(pointer.Event{
		Kind:     pointer.Move,
		Source:   pointer.Touch,
		Sequence: 2,
		Time:     30 * time.Millisecond,
		Position: f64.Pt(0, 200),
	})
	scales := only(recs, "zoom")
	require.Len(t, scales, 2)
	assert.Equal(t, "scale", scales[1].Type)
	require.NotNil(t, scales[1].Distance)
	require.NotNil(t, scales[1].Scale)
	assert.InDelta(t, 200, *scales[1].Distance, 1e-9)
	assert.InDelta(t, 2, *scales[1].Scale, 1e-9)
	assert.Nil(t, scales[1].Delta)
	assert.InDelta(t, 2, s.State().Scale, 1e-9)
}

func TestSurfaceEnabled(t *testing.T) {
	cfg, err := config.Parse("[gestures]\nenabled = [\"zoom\"]\n")
	require.NoError(t, err)
	s := New(cfg, nil)
	defer s.Close()
	recs := play(t, s, `
steps:
  - {at_ms: 0, kind: press, seq: 1, x: 0, y: 0}
  - {at_ms: 0, kind: press, seq: 2, x: 3, y: 4}
  - {at_ms: 5, kind: release, seq: 2, x: 3, y: 4}
`)
	assert.Equal(t, []kind{{"zoom", "begin"}, {"zoom", "update"}, {"zoom", "scale"}, {"zoom", "end"}}, kinds(recs))
	_, ok := s.LongPressState()
	assert.False(t, ok)
	_, ok = s.WakeupTime()
	assert.False(t, ok)
}

func TestRecordJSON(t *testing.T) {
	seq := uint32(0)
	data, err := json.Marshal(Record{
		Time:     1500 * time.Microsecond,
		Ms:       1.5,
		Gesture:  "swipe",
		Type:     "update",
		Sequence: &seq,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t_ms":1.5,"gesture":"swipe","type":"update","seq":0}`, string(data))
}

func TestRecordZeroValues(t *testing.T) {
	cfg, err := config.Parse("[gestures]\nenabled = [\"swipe\", \"long-press\"]\n")
	require.NoError(t, err)
	s := New(cfg, nil)
	defer s.Close()
	recs := play(t, s, `
steps:
  - {at_ms: 0, kind: press, seq: 1, x: 0, y: 0}
  - {advance_ms: 600}
  - {at_ms: 700, kind: release, seq: 1, x: 0, y: 0}
  - {at_ms: 800, kind: press, seq: 2, x: 0, y: 0}
  - {at_ms: 900, kind: move, seq: 2, x: 0, y: 30}
  - {at_ms: 900, kind: release, seq: 2, x: 0, y: 30}
`)
	var pressed, swipe []byte
	for _, r := range recs {
		data, err := json.Marshal(r)
		require.NoError(t, err)
		switch r.Type {
		case "pressed":
			pressed = data
		case "swipe":
			swipe = data
		}
	}
	assert.JSONEq(t, `{"t_ms":600,"gesture":"long-press","type":"pressed","x":0,"y":0}`, string(pressed))
	// A vertical swipe has a zero horizontal velocity.
	assert.JSONEq(t, `{"t_ms":900,"gesture":"swipe","type":"swipe","x":0,"y":300}`, string(swipe))
}
