package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-farm/internal/farm"
)

// recorderQueue is how many harvests may wait for the writer goroutine.
const recorderQueue = 256

// Recorder writes pickup events to the ledger. Events arrive on the
// simulation goroutine, so inserts happen on a writer goroutine of their own.
// Write failures are logged and otherwise ignored so a broken database never
// stops the farm.
type Recorder struct {
	store  *Store
	logger *log.Logger
	now    func() time.Time

	mu     sync.RWMutex // guards closed against sends on queue
	closed bool
	queue  chan Harvest
	done   chan struct{}
}

// NewRecorder creates a recorder and starts its writer. A nil store records
// nothing.
func NewRecorder(store *Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Recorder{
		store:  store,
		logger: logger,
		now:    time.Now,
		queue:  make(chan Harvest, recorderQueue),
		done:   make(chan struct{}),
	}
	if store == nil {
		close(r.done)
		return r
	}
	go r.write()
	return r
}

// HandleEvent queues pickups and ignores every other event. It never blocks:
// when the queue is full the harvest is logged and skipped.
func (r *Recorder) HandleEvent(sessionID string, e farm.Event) {
	if r.store == nil || e.Kind != farm.EventPickup {
		return
	}
	h := Harvest{
		SessionID: sessionID,
		Item:      e.Item,
		Amount:    e.Amount,
		X:         e.X,
		Y:         e.Y,
		Day:       e.Day,
		CreatedAt: r.now(),
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- h:
	default:
		r.logger.Warn("ledger queue full, harvest not recorded", "session", sessionID, "item", e.Item)
	}
}

func (r *Recorder) write() {
	defer close(r.done)
	for h := range r.queue {
		if _, err := r.store.RecordHarvest(h); err != nil {
			r.logger.Warn("could not record harvest", "session", h.SessionID, "item", h.Item, "error", err)
		}
	}
}

// Close stops accepting events and waits, bounded by ctx, until queued
// harvests are written. It is safe to call more than once.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("storage: recorder close: %w", ctx.Err())
	}
}
