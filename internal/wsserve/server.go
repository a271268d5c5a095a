// SPDX-License-Identifier: Unlicense OR MIT

// Package wsserve streams gesture recognition over WebSocket.
//
// Clients send pointer events as JSON text messages:
//
//	{"kind": "press", "seq": 1, "t_ms": 1021.5, "x": 10, "y": 20}
//
// and receive a JSON message for every gesture notification, in the
// Record format of package surface. Each connection has its own
// surface, driven by a single goroutine.
package wsserve

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"gioui.org/x/multitouch/f64"
	"gioui.org/x/multitouch/internal/config"
	"gioui.org/x/multitouch/internal/surface"
	"gioui.org/x/multitouch/io/pointer"
)

// Message is a client pointer event. Time is in milliseconds on the
// client's clock.
type Message struct {
	Kind   string  `json:"kind"`
	Source string  `json:"source,omitempty"`
	Seq    uint32  `json:"seq"`
	Ms     float64 `json:"t_ms"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Error is sent for messages that can't be decoded.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Server struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	upgrader websocket.Upgrader
}

func New(cfg *config.Config, log logrus.FieldLogger) *Server {
	s := &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if cfg.Server.AllowAnyOrigin {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	} else {
		s.upgrader.CheckOrigin = isSameOrigin
	}
	return s
}

// Handler returns the HTTP handler serving /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func isSameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return originURL.Host == r.Host
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	c := &session{
		conn: conn,
		log:  s.log.WithField("conn", uuid.NewString()),
	}
	c.surf = surface.New(s.cfg, c.log)
	defer c.surf.Close()
	c.log.Info("connected")
	c.run(r.Context())
	c.log.Info("disconnected")
}

// session is the state of one connection. Only the goroutine in run
// touches the surface and writes to the connection.
type session struct {
	conn *websocket.Conn
	log  logrus.FieldLogger
	surf *surface.Surface

	// The client clock at the last message, and when it arrived.
	client time.Duration
	wall   time.Time
}

type inbound struct {
	msg Message
	err error
}

func (c *session) run(ctx context.Context) {
	msgs := make(chan inbound)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			var in inbound
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				c.log.WithError(err).Debug("read failed")
				close(msgs)
				return
			}
			if err := json.Unmarshal(data, &in.msg); err != nil {
				in.err = fmt.Errorf("invalid message: %w", err)
			}
			select {
			case msgs <- in:
			case <-done:
				return
			}
		}
	}()

	wake := time.NewTimer(time.Hour)
	wake.Stop()
	defer wake.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-msgs:
			if !ok {
				return
			}
			if in.err != nil {
				if err := c.conn.WriteJSON(Error{Type: "error", Message: in.err.Error()}); err != nil {
					return
				}
				continue
			}
			e, err := in.msg.event()
			if err != nil {
				if err := c.conn.WriteJSON(Error{Type: "error", Message: err.Error()}); err != nil {
					return
				}
				continue
			}
			if e.Time < c.surf.Now() {
				e.Time = c.surf.Now()
			}
			c.client, c.wall = e.Time, time.Now()
			if !c.send(c.surf.Queue(e)) {
				return
			}
		case <-wake.C:
			if !c.send(c.surf.Advance(c.clientNow())) {
				return
			}
		}
		c.schedule(wake)
	}
}

// clientNow estimates the client clock from the last message.
func (c *session) clientNow() time.Duration {
	if c.wall.IsZero() {
		return c.surf.Now()
	}
	return c.client + time.Since(c.wall)
}

func (c *session) schedule(wake *time.Timer) {
	if !wake.Stop() {
		select {
		case <-wake.C:
		default:
		}
	}
	at, ok := c.surf.WakeupTime()
	if !ok {
		return
	}
	d := at - c.clientNow()
	if d < 0 {
		d = 0
	}
	wake.Reset(d)
}

func (c *session) send(recs []surface.Record) bool {
	for _, r := range recs {
		if err := c.conn.WriteJSON(r); err != nil {
			c.log.WithError(err).Debug("write failed")
			return false
		}
	}
	return true
}

func (m Message) event() (pointer.Event, error) {
	if m.Kind == "" {
		return pointer.Event{}, errors.New("missing kind")
	}
	kind, ok := pointer.ParseKind(strings.ToUpper(m.Kind[:1]) + strings.ToLower(m.Kind[1:]))
	if !ok {
		return pointer.Event{}, fmt.Errorf("unknown kind %q", m.Kind)
	}
	e := pointer.Event{
		Kind:     kind,
		Source:   pointer.Touch,
		Sequence: pointer.Sequence(m.Seq),
		Time:     time.Duration(m.Ms * float64(time.Millisecond)),
		Position: f64.Pt(m.X, m.Y),
	}
	switch strings.ToLower(m.Source) {
	case "", "touch":
	case "mouse":
		e.Source = pointer.Mouse
		e.Sequence = pointer.NoSequence
	default:
		return pointer.Event{}, fmt.Errorf("unknown source %q", m.Source)
	}
	return e, nil
}
