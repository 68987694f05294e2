package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type counter struct{ n atomic.Int64 }

func (c *counter) Update() { c.n.Add(1) }

type renderCount struct{ n int }

func (r *renderCount) RequestRender() { r.n++ }

func newTestLoop(u Updater, opts Options) (*Loop, time.Time) {
	if opts.TickRate == 0 {
		opts.TickRate = 10 // 100ms per tick
	}
	l := New(u, opts)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.Advance(t0)
	return l, t0
}

func TestAdvanceRunsWholeIntervals(t *testing.T) {
	c := &counter{}
	l, t0 := newTestLoop(c, Options{})

	tests := []struct {
		at       time.Duration
		expected int
	}{
		{50 * time.Millisecond, 0},
		{250 * time.Millisecond, 2},
		{300 * time.Millisecond, 1},
		{300 * time.Millisecond, 0},
		{1000 * time.Millisecond, 5},
	}

	for _, tc := range tests {
		if got := l.Advance(t0.Add(tc.at)); got != tc.expected {
			t.Errorf("Advance(+%v) = %d, expected %d", tc.at, got, tc.expected)
		}
	}
	if c.n.Load() != 8 || l.Ticks() != 8 {
		t.Errorf("updates = %d, Ticks() = %d, expected 8", c.n.Load(), l.Ticks())
	}
}

func TestAdvanceCapsCatchUp(t *testing.T) {
	c := &counter{}
	l, t0 := newTestLoop(c, Options{MaxCatchUp: 3})

	if got := l.Advance(t0.Add(time.Second)); got != 3 {
		t.Errorf("Advance(+1s) = %d, expected 3", got)
	}
	if l.Behind() != 7 {
		t.Errorf("Behind() = %d, expected 7", l.Behind())
	}

	// Deferred debt is repaid over the following wake-ups.
	tests := []struct {
		at       time.Duration
		expected int
		behind   int
	}{
		{1000 * time.Millisecond, 3, 4},
		{1050 * time.Millisecond, 3, 1},
		{1100 * time.Millisecond, 2, 0},
		{1150 * time.Millisecond, 0, 0},
		{1200 * time.Millisecond, 1, 0},
	}
	for _, tc := range tests {
		if got := l.Advance(t0.Add(tc.at)); got != tc.expected {
			t.Errorf("Advance(+%v) = %d, expected %d", tc.at, got, tc.expected)
		}
		if l.Behind() != tc.behind {
			t.Errorf("Behind() after +%v = %d, expected %d", tc.at, l.Behind(), tc.behind)
		}
	}
	if c.n.Load() != 12 {
		t.Errorf("updates = %d, expected 12 (no tick skipped)", c.n.Load())
	}
}

func TestAdvanceDefaultCapRepaysStall(t *testing.T) {
	c := &counter{}
	l, t0 := newTestLoop(c, Options{})

	l.Advance(t0.Add(time.Second))
	for i := 1; i <= 20; i++ {
		l.Advance(t0.Add(time.Second + time.Duration(i)*time.Millisecond))
	}
	if c.n.Load() != 10 {
		t.Errorf("updates = %d, expected 10", c.n.Load())
	}
	if l.Behind() != 0 {
		t.Errorf("Behind() = %d, expected 0", l.Behind())
	}
}

func TestAdvancePaused(t *testing.T) {
	c := &counter{}
	pause := &PauseFlag{}
	r := &renderCount{}
	l, t0 := newTestLoop(c, Options{Pause: pause, Render: r})

	pause.Set(true)
	if got := l.Advance(t0.Add(400 * time.Millisecond)); got != 0 {
		t.Errorf("Advance while paused = %d, expected 0", got)
	}
	if r.n != 2 {
		t.Errorf("render requests = %d, expected 2 (paused loop keeps rendering)", r.n)
	}

	pause.Set(false)
	if got := l.Advance(t0.Add(500 * time.Millisecond)); got != 1 {
		t.Errorf("Advance after resume = %d, expected 1 (no burst)", got)
	}
	if c.n.Load() != 1 {
		t.Errorf("updates = %d, expected 1", c.n.Load())
	}
}

func TestAdvanceIgnoresClockGoingBack(t *testing.T) {
	c := &counter{}
	l, t0 := newTestLoop(c, Options{})

	l.Advance(t0.Add(-time.Second))
	if got := l.Advance(t0.Add(-900 * time.Millisecond)); got != 1 {
		t.Errorf("Advance after clock step back = %d, expected 1", got)
	}
}

func TestRenderRequestedOncePerWake(t *testing.T) {
	r := &renderCount{}
	l, t0 := newTestLoop(&counter{}, Options{Render: r})

	l.Advance(t0.Add(450 * time.Millisecond))
	if r.n != 2 {
		t.Errorf("render requests = %d, expected 2 (initial + one wake)", r.n)
	}
}

func TestFrameSignalCoalesces(t *testing.T) {
	f := NewFrameSignal()
	f.RequestRender()
	f.RequestRender()
	f.RequestRender()

	select {
	case <-f.C():
	default:
		t.Fatal("expected a pending frame")
	}
	select {
	case <-f.C():
		t.Error("requests should coalesce into one frame")
	default:
	}
}

func TestStartStop(t *testing.T) {
	c := &counter{}
	l := New(c, Options{TickRate: 1000})
	l.Start()
	l.Start()

	deadline := time.Now().Add(2 * time.Second)
	for c.n.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("loop never ticked")
		}
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Stop(ctx); err != nil {
		t.Fatalf("Stop() = %v, expected nil", err)
	}

	after := c.n.Load()
	time.Sleep(20 * time.Millisecond)
	if c.n.Load() != after {
		t.Error("loop kept ticking after Stop")
	}
	if err := l.Stop(ctx); err != nil {
		t.Errorf("second Stop() = %v, expected nil", err)
	}
}

type blockingUpdater struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingUpdater) Update() {
	b.once.Do(func() { close(b.entered) })
	<-b.release
}

func TestStopBounded(t *testing.T) {
	b := &blockingUpdater{entered: make(chan struct{}), release: make(chan struct{})}
	l := New(b, Options{TickRate: 1000})
	l.Start()

	select {
	case <-b.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("update never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := l.Stop(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Stop() = %v, expected deadline exceeded", err)
	}
	if err.Error() != "loop: stop: context deadline exceeded" {
		t.Errorf("Stop() error = %q", err)
	}

	close(b.release)
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	if err := l.Stop(ctx2); err != nil {
		t.Errorf("Stop() after release = %v, expected nil", err)
	}
}

func TestStopNeverStarted(t *testing.T) {
	l := New(&counter{}, Options{})
	if err := l.Stop(context.Background()); err != nil {
		t.Errorf("Stop() = %v, expected nil", err)
	}
}

func TestPauseFlagToggle(t *testing.T) {
	var p PauseFlag
	if p.Paused() {
		t.Error("zero PauseFlag should be running")
	}
	if !p.Toggle() || !p.Paused() {
		t.Error("Toggle() should pause")
	}
	if p.Toggle() || p.Paused() {
		t.Error("second Toggle() should resume")
	}
}
