// Package feed streams combat events to observer clients over websocket.
// The animation and sound layers of the game subscribe here to react to
// attack state changes; it also serves spectator tooling.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/akorchagin/mobd/internal/combat"
)

const (
	writeTimeout    = 5 * time.Second
	clientQueueSize = 64
	eventQueueSize  = 1024
)

// Server accepts websocket observers on /events and fans combat events out
// to them. Slow consumers lose frames rather than stalling the simulation.
type Server struct {
	addr     string
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	events  chan combat.Event
	dropped atomic.Uint64
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a feed server bound to addr.
func NewServer(addr string) *Server {
	return &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		events:  make(chan combat.Event, eventQueueSize),
	}
}

// HandleEvent implements combat.Sink. Never blocks the tick goroutine: when
// the broadcast queue is full the event is dropped and counted.
func (s *Server) HandleEvent(event combat.Event) {
	select {
	case s.events <- event:
	default:
		s.dropped.Add(1)
	}
}

// Dropped returns the number of events lost to a full broadcast queue.
func (s *Server) Dropped() uint64 { return s.dropped.Load() }

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", s.handleEvents)

	httpServer := &http.Server{Addr: s.addr, Handler: mux}

	go s.broadcastLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	slog.Info("event feed listening", "addr", s.addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-s.events:
			frame, err := json.Marshal(event)
			if err != nil {
				slog.Error("marshaling feed event", "error", err)
				continue
			}
			s.mu.Lock()
			for c := range s.clients {
				select {
				case c.send <- frame:
				default:
					// Slow consumer: skip this frame for this client.
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan []byte, clientQueueSize)}
	s.register(c)
	defer s.unregister(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Writer goroutine.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case frame, ok := <-c.send:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// Reader loop: observers send nothing meaningful; reads only detect
	// disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
			return
		}
	}
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	count := len(s.clients)
	s.mu.Unlock()
	slog.Debug("feed observer connected", "observers", count)
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	count := len(s.clients)
	s.mu.Unlock()
	slog.Debug("feed observer disconnected", "observers", count)
}
