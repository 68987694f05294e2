// Package session serializes access to one farm. The loop goroutine ticks
// it, the input goroutine sends commands and renderers read snapshots, all
// under one mutex. Events drained from the world are fanned out to listeners
// outside the lock.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-farm/internal/farm"
	"github.com/vovakirdan/tui-farm/internal/loop"
)

// Listener receives every world event of a session.
type Listener interface {
	HandleEvent(sessionID string, e farm.Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(sessionID string, e farm.Event)

// HandleEvent calls f.
func (f ListenerFunc) HandleEvent(sessionID string, e farm.Event) { f(sessionID, e) }

// maxPending bounds the presentation event buffer when nobody drains it.
const maxPending = 64

// Options configures a Session. Zero values select defaults.
type Options struct {
	ID        string // Defaults to a random UUID
	Player    string // Display name, stored with harvest records
	Pause     *loop.PauseFlag
	Logger    *log.Logger
	Listeners []Listener
	Now       func() time.Time
}

// Session owns a World for its lifetime.
type Session struct {
	id      string
	player  string
	started time.Time
	pause   *loop.PauseFlag
	logger  *log.Logger

	mu        sync.Mutex
	world     *farm.World
	pending   []farm.Event
	harvested map[string]int

	lmu       sync.RWMutex
	listeners []Listener
}

// New wraps world in a session.
func New(world *farm.World, opts Options) *Session {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Pause == nil {
		opts.Pause = &loop.PauseFlag{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Session{
		id:        opts.ID,
		player:    opts.Player,
		started:   opts.Now(),
		pause:     opts.Pause,
		logger:    opts.Logger.With("session", opts.ID),
		world:     world,
		harvested: make(map[string]int),
		listeners: append([]Listener(nil), opts.Listeners...),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Player returns the display name of the farmer.
func (s *Session) Player() string { return s.player }

// Started returns when the session was created.
func (s *Session) Started() time.Time { return s.started }

// Pause returns the pause flag shared with the loop.
func (s *Session) Pause() *loop.PauseFlag { return s.pause }

// Subscribe adds a listener for events emitted from now on.
func (s *Session) Subscribe(l Listener) {
	s.lmu.Lock()
	s.listeners = append(s.listeners, l)
	s.lmu.Unlock()
}

// Update advances the world by one tick. It satisfies loop.Updater.
func (s *Session) Update() {
	s.mu.Lock()
	s.world.Update()
	events := s.collect()
	s.mu.Unlock()

	s.dispatch(events)
}

// Move steps the player. Ignored while paused.
func (s *Session) Move(dir farm.Direction) bool {
	if s.pause.Paused() {
		return false
	}
	s.mu.Lock()
	ok := s.world.MovePlayer(dir)
	s.mu.Unlock()
	return ok
}

// InteractStart presses the interact key. Ignored while paused.
func (s *Session) InteractStart() {
	if s.pause.Paused() {
		return
	}
	s.mu.Lock()
	s.world.InteractStart()
	events := s.collect()
	s.mu.Unlock()

	s.dispatch(events)
}

// InteractEnd releases the interact key. Releasing is always allowed so a
// hold that spans a pause does not stick.
func (s *Session) InteractEnd() {
	s.mu.Lock()
	s.world.InteractEnd()
	s.mu.Unlock()
}

// SelectTool selects a hotbar slot. Ignored while paused.
func (s *Session) SelectTool(index int) {
	if s.pause.Paused() {
		return
	}
	s.mu.Lock()
	s.world.SelectTool(index)
	s.mu.Unlock()
}

// Snapshot returns a copy of the world state.
func (s *Session) Snapshot() farm.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Snapshot()
}

// TakeEvents returns the events emitted since the last call, oldest first.
// Only the newest events are kept when nobody drains the buffer.
func (s *Session) TakeEvents() []farm.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// Harvested returns the items collected in this session.
func (s *Session) Harvested() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.harvested))
	for k, v := range s.harvested {
		out[k] = v
	}
	return out
}

// collect drains world events into the presentation buffer. Caller holds mu.
func (s *Session) collect() []farm.Event {
	events := s.world.DrainEvents()
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if e.Kind == farm.EventPickup {
			s.harvested[e.Item] += e.Amount
		}
	}
	s.pending = append(s.pending, events...)
	if over := len(s.pending) - maxPending; over > 0 {
		s.pending = append(s.pending[:0:0], s.pending[over:]...)
	}
	return events
}

func (s *Session) dispatch(events []farm.Event) {
	if len(events) == 0 {
		return
	}
	s.lmu.RLock()
	listeners := s.listeners
	s.lmu.RUnlock()

	for _, e := range events {
		switch e.Kind {
		case farm.EventPickup:
			s.logger.Debug("harvest", "item", e.Item, "amount", e.Amount, "x", e.X, "y", e.Y, "day", e.Day)
		case farm.EventNewDay:
			s.logger.Info("new day", "day", e.Day)
		}
		for _, l := range listeners {
			l.HandleEvent(s.id, e)
		}
	}
}
