// Package loop runs a fixed-rate simulation on its own goroutine.
//
// Wall time accumulates as tick debt and every whole tick interval of debt
// runs one Update. A wake-up runs at most MaxCatchUp updates; debt beyond
// that carries over to later wake-ups, so a stall is repaid gradually rather
// than in one burst. Every wake-up ends with one render request, so frames
// may be skipped but ticks are not.
package loop

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Updater advances the simulation by one tick.
type Updater interface {
	Update()
}

// RenderRequester is told when a new frame is worth drawing.
// Implementations must not block.
type RenderRequester interface {
	RequestRender()
}

// Options configures a Loop. Zero values select defaults.
type Options struct {
	TickRate   int // Ticks per second, default 60
	MaxCatchUp int // Updates per wake-up, default 5
	Pause      *PauseFlag
	Render     RenderRequester
	Logger     *log.Logger
	Now        func() time.Time
}

// Loop drives an Updater at a fixed tick rate.
type Loop struct {
	updater    Updater
	render     RenderRequester
	pause      *PauseFlag
	logger     *log.Logger
	now        func() time.Time
	interval   time.Duration
	maxCatchUp int

	// owned by the running goroutine (or the caller of Advance in tests)
	last time.Time
	debt time.Duration

	ticks  atomic.Uint64
	behind atomic.Int64

	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// New creates a stopped loop around u.
func New(u Updater, opts Options) *Loop {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.MaxCatchUp <= 0 {
		opts.MaxCatchUp = 5
	}
	if opts.Pause == nil {
		opts.Pause = &PauseFlag{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Loop{
		updater:    u,
		render:     opts.Render,
		pause:      opts.Pause,
		logger:     opts.Logger,
		now:        opts.Now,
		interval:   time.Second / time.Duration(opts.TickRate),
		maxCatchUp: opts.MaxCatchUp,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Interval returns the duration of one tick.
func (l *Loop) Interval() time.Duration { return l.interval }

// Ticks returns how many updates have run.
func (l *Loop) Ticks() uint64 { return l.ticks.Load() }

// Behind returns how many whole ticks of debt the last wake-up deferred.
func (l *Loop) Behind() int { return int(l.behind.Load()) }

// Pause returns the pause flag shared with the loop.
func (l *Loop) Pause() *PauseFlag { return l.pause }

// Start spawns the loop goroutine. Calling it again has no effect.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		l.started.Store(true)
		l.logger.Info("loop started", "tick_rate", int64(time.Second/l.interval), "max_catch_up", l.maxCatchUp)
		go l.run()
	})
}

// Stop signals the goroutine to exit and waits for it until ctx is done.
// A loop that was never started stops immediately.
func (l *Loop) Stop(ctx context.Context) error {
	l.stopOnce.Do(func() { close(l.quit) })
	if !l.started.Load() {
		return nil
	}

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("loop: stop: %w", ctx.Err())
	}
}

func (l *Loop) run() {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.Advance(l.now())
	for {
		select {
		case <-l.quit:
			l.logger.Info("loop stopped", "ticks", l.ticks.Load(), "behind", l.behind.Load())
			return
		case <-ticker.C:
			l.Advance(l.now())
		}
	}
}

// Advance pays off the debt accumulated up to now and requests one render.
// It returns the number of updates run. While paused the debt is consumed
// without updating. The first call only sets the reference time.
func (l *Loop) Advance(now time.Time) int {
	if l.last.IsZero() {
		l.last = now
		l.requestRender()
		return 0
	}

	if elapsed := now.Sub(l.last); elapsed > 0 {
		l.debt += elapsed
	}
	l.last = now

	if l.pause.Paused() {
		// Paused time is not simulation time.
		l.debt %= l.interval
		l.behind.Store(0)
		l.requestRender()
		return 0
	}

	ran := 0
	for ran < l.maxCatchUp && l.debt >= l.interval {
		l.debt -= l.interval
		l.updater.Update()
		l.ticks.Add(1)
		ran++
	}

	behind := int64(l.debt / l.interval)
	if behind > 0 && l.behind.Load() == 0 {
		l.logger.Warn("falling behind, deferring tick debt", "ticks", behind, "max_catch_up", l.maxCatchUp)
	}
	l.behind.Store(behind)

	l.requestRender()
	return ran
}

func (l *Loop) requestRender() {
	if l.render != nil {
		l.render.RequestRender()
	}
}
