// Package webui streams clock display frames to rendering clients over
// WebSocket. The server pushes a frame whenever the displayed second or
// the display mode changes; it draws nothing itself, leaving layout and
// styling to the connected renderer.
package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nholloway/clockface/face"
	"github.com/nholloway/clockface/logger"
	"github.com/nholloway/clockface/sampler"
	"github.com/nholloway/clockface/timeutil"
)

// Frame is one display update pushed to renderers.
type Frame struct {
	Time     time.Time   `json:"time"`
	Digital  string      `json:"digital"`
	Discrete bool        `json:"discrete"`
	Hands    face.Angles `json:"hands"`
}

// Layout is the static numeral layout served on /face. Numerals[i]
// holds the anchor for hour i+1.
type Layout struct {
	Size     float64        `json:"size"`
	Radius   float64        `json:"radius"`
	Center   face.Point     `json:"center"`
	Numerals [12]face.Point `json:"numerals"`
}

// Server exposes the clock state to WebSocket renderers.
type Server struct {
	cfg     Config
	sampler *sampler.Sampler
	face    face.Face
	logger  logger.Logger

	upgrader websocket.Upgrader
	mux      *http.ServeMux

	mu      sync.Mutex
	clients map[*client]struct{}

	httpServer *http.Server
	listener   net.Listener
	removeTime func()
	removeMode func()
	done       chan struct{}
}

// Params holds configuration for creating a Server.
type Params struct {
	Config  Config
	Sampler *sampler.Sampler
	Face    face.Face
	Logger  logger.Logger
}

// New creates a Server. The sampler is required; a zero Face falls back
// to the default dial.
func New(p Params) (*Server, error) {
	if p.Sampler == nil {
		return nil, errors.New("webui: sampler is required")
	}
	p.Config.Defaults()

	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	f := p.Face
	if f.Size <= 0 || f.Radius <= 0 {
		f = face.Default()
	}

	s := &Server{
		cfg:     p.Config,
		sampler: p.Sampler,
		face:    f,
		logger:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/face", s.handleFace)
	s.httpServer = &http.Server{Addr: p.Config.Addr, Handler: s.mux}
	return s, nil
}

// Start begins listening and subscribes to the sampler.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("webui listen: %w", err)
	}
	s.listener = ln

	s.removeTime = s.sampler.WatchTime(func(_, _ time.Time) { s.broadcast() })
	s.removeMode = s.sampler.WatchDiscrete(func(_, _ bool) { s.broadcast() })

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.ErrorW("webui server", "error", err)
		}
	}()

	s.logger.InfoW("webui listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound listen address, useful when Addr was ":0".
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.cfg.Addr
	}
	return s.listener.Addr().String()
}

// Stop unsubscribes from the sampler, disconnects all renderers and
// shuts down the HTTP server.
func (s *Server) Stop() error {
	if s.removeTime != nil {
		s.removeTime()
	}
	if s.removeMode != nil {
		s.removeMode()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	for c := range s.clients {
		c.close()
	}
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	if s.done != nil {
		<-s.done
	}
	return err
}

func (s *Server) handleFace(w http.ResponseWriter, r *http.Request) {
	label := face.Extent{
		W: queryFloat(r, "label_w"),
		H: queryFloat(r, "label_h"),
	}

	layout := Layout{
		Size:     s.face.Size,
		Radius:   s.face.Radius,
		Center:   s.face.Center(),
		Numerals: s.face.Anchors(label),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(layout); err != nil {
		s.logger.WarnW("encode layout", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnW("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan Frame, s.cfg.SendBuffer),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	// Seed the renderer with the current state before any change fires.
	c.send <- s.frame()

	go s.writePump(c)
	go s.readPump(c)
}

func (s *Server) frame() Frame {
	t := s.sampler.DisplayedTime()
	return Frame{
		Time:     t,
		Digital:  timeutil.DigitalString(t),
		Discrete: s.sampler.Discrete(),
		Hands:    face.HandAngles(t),
	}
}

func (s *Server) broadcast() {
	frame := s.frame()

	s.mu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		select {
		case c.send <- frame:
		default:
			// A renderer that cannot keep up with one frame per second
			// is disconnected rather than buffered without bound.
			s.logger.WarnW("dropping slow renderer", "remote", c.conn.RemoteAddr().String())
			s.drop(c)
		}
	}
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
}

func (s *Server) writePump(c *client) {
	ping := time.NewTicker(s.cfg.PingPeriod)
	defer ping.Stop()
	defer s.drop(c)

	for {
		select {
		case <-c.done:
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) readPump(c *client) {
	defer s.drop(c)

	_ = c.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	// Renderers send nothing; the read loop exists to process pongs and
	// detect disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

type client struct {
	conn *websocket.Conn
	send chan Frame
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func queryFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil {
		return 0
	}
	return v
}
