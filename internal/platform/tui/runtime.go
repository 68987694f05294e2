package tui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-farm/internal/config"
	"github.com/vovakirdan/tui-farm/internal/farm"
	"github.com/vovakirdan/tui-farm/internal/loop"
	"github.com/vovakirdan/tui-farm/internal/registry"
	"github.com/vovakirdan/tui-farm/internal/session"
	"github.com/vovakirdan/tui-farm/internal/storage"
)

// FarmOptions configures one running farm.
type FarmOptions struct {
	Config    config.FarmConfig
	Tools     *registry.Registry // Built from Config when nil
	Player    string
	TickRate  int            // Overrides the configured tick rate when > 0
	Store     *storage.Store // Optional harvest ledger
	Logger    *log.Logger
	Listeners []session.Listener
}

// Farm is one world with its session, loop and frame signal.
type Farm struct {
	Session *session.Session
	Loop    *loop.Loop
	Frames  *loop.FrameSignal

	store    *storage.Store
	recorder *storage.Recorder // nil without a store
	logger   *log.Logger
	done     chan struct{}
	stopOnce sync.Once
}

// NewFarm builds a farm. The loop does not run until Start.
func NewFarm(opts FarmOptions) (*Farm, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	tools := opts.Tools
	if tools == nil {
		var err error
		tools, err = registry.FromConfig(opts.Config)
		if err != nil {
			return nil, fmt.Errorf("tui: %w", err)
		}
	}

	world, err := farm.NewWorld(opts.Config.FarmWorld(tools.Tools()))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	rc := opts.Config.Runtime()
	if opts.TickRate > 0 {
		rc.TickRate = opts.TickRate
	}

	pause := &loop.PauseFlag{}
	frames := loop.NewFrameSignal()
	sess := session.New(world, session.Options{
		Player:    opts.Player,
		Pause:     pause,
		Logger:    opts.Logger,
		Listeners: opts.Listeners,
	})
	var rec *storage.Recorder
	if opts.Store != nil {
		rec = storage.NewRecorder(opts.Store, opts.Logger)
		sess.Subscribe(rec)
	}

	lp := loop.New(sess, loop.Options{
		TickRate:   rc.TickRate,
		MaxCatchUp: rc.MaxCatchUp,
		Pause:      pause,
		Render:     frames,
		Logger:     opts.Logger.With("session", sess.ID()),
	})

	return &Farm{
		Session:  sess,
		Loop:     lp,
		Frames:   frames,
		store:    opts.Store,
		recorder: rec,
		logger:   opts.Logger,
		done:     make(chan struct{}),
	}, nil
}

// Start opens the ledger entry and starts ticking.
func (f *Farm) Start() {
	if f.store != nil {
		if err := f.store.BeginSession(f.Session.ID(), f.Session.Player(), f.Session.Started()); err != nil {
			f.logger.Warn("could not record session start", "session", f.Session.ID(), "error", err)
		}
	}
	f.Loop.Start()
}

// Done is closed when the farm stops.
func (f *Farm) Done() <-chan struct{} { return f.done }

// Stop halts the loop, bounded by ctx, and closes the ledger entry.
// It is safe to call more than once.
func (f *Farm) Stop(ctx context.Context) error {
	var err error
	f.stopOnce.Do(func() {
		close(f.done)
		err = f.Loop.Stop(ctx)

		snap := f.Session.Snapshot()
		if f.recorder != nil {
			if recErr := f.recorder.Close(ctx); recErr != nil {
				f.logger.Warn("ledger writes still pending", "session", f.Session.ID(), "error", recErr)
			}
		}
		if f.store != nil {
			if endErr := f.store.EndSession(f.Session.ID(), time.Now(), snap.Day.Day, snap.Tick); endErr != nil {
				f.logger.Warn("could not record session end", "session", f.Session.ID(), "error", endErr)
			}
		}
		f.logger.Info("farm stopped", "session", f.Session.ID(), "day", snap.Day.Day, "ticks", snap.Tick)
	})
	return err
}
