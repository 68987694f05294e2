// Package observer serves a read-only websocket feed of one farm, so others
// can watch a session without a terminal. Each client receives a frame on
// connect and then one frame per broadcast interval.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-farm/internal/farm"
)

// Source is the farm being watched.
type Source interface {
	ID() string
	Snapshot() farm.Snapshot
}

// Options configures a Server. Zero values select defaults.
type Options struct {
	Interval time.Duration // Broadcast period, default 200ms
	Logger   *log.Logger
}

const clientBuffer = 8

// Server fans frames out to websocket clients.
type Server struct {
	source   Source
	logger   *log.Logger
	interval time.Duration
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu      sync.Mutex
	clients map[uint64]chan []byte
	events  []farm.Event
}

// NewServer creates a feed for src.
func NewServer(src Source, opts Options) *Server {
	if opts.Interval <= 0 {
		opts.Interval = 200 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Server{
		source:   src,
		logger:   opts.Logger,
		interval: opts.Interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[uint64]chan []byte),
	}
}

// HandleEvent queues world events for the next frame. It lets the server
// subscribe to a session.
func (s *Server) HandleEvent(_ string, e farm.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}
	s.events = append(s.events, e)
}

// Clients returns the number of connected spectators.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Handler serves GET /snapshot (one JSON frame) and /ws (the feed).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleSnapshot(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(BuildFrame(s.source.ID(), s.source.Snapshot(), nil))
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	first, err := json.Marshal(BuildFrame(s.source.ID(), s.source.Snapshot(), nil))
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, first); err != nil {
		return
	}

	id, out := s.register()
	defer s.unregister(id)
	s.logger.Info("spectator joined", "id", id, "remote", r.RemoteAddr)
	defer s.logger.Info("spectator left", "id", id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	writeErr := make(chan error, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// The feed is read-only; reading only detects the client going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))

	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
}

func (s *Server) register() (uint64, chan []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, clientBuffer)
	s.mu.Lock()
	s.clients[id] = ch
	s.mu.Unlock()
	return id, ch
}

func (s *Server) unregister(id uint64) {
	s.mu.Lock()
	delete(s.clients, id)
	s.mu.Unlock()
}

// Broadcast sends the current frame, with queued events, to every client.
// Slow clients lose their oldest pending frame.
func (s *Server) Broadcast() {
	s.mu.Lock()
	if len(s.clients) == 0 {
		s.events = nil
		s.mu.Unlock()
		return
	}
	events := s.events
	s.events = nil
	s.mu.Unlock()

	b, err := json.Marshal(BuildFrame(s.source.ID(), s.source.Snapshot(), events))
	if err != nil {
		s.logger.Error("encode frame", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.clients {
		select {
		case ch <- b:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- b:
			default:
			}
		}
	}
}

// Run broadcasts every interval until ctx is done.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Broadcast()
		}
	}
}

// ListenAndServe serves the feed on addr and broadcasts until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("observer listening", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("observer: %w", err)
	}
	return nil
}
