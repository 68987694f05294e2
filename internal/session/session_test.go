package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-farm/internal/farm"
	"github.com/vovakirdan/tui-farm/internal/loop"
)

func newTestSession(t *testing.T, mutate func(*farm.Config), opts Options) (*Session, *farm.World) {
	t.Helper()
	cfg := farm.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := farm.NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return New(w, opts), w
}

// plantRipe puts fully grown wheat under the player.
func plantRipe(w *farm.World) {
	dirt := farm.NewDirtTile()
	crop := farm.NewCrop(farm.DefaultCropSpec(farm.CropWheat))
	for !crop.IsFullyGrown() {
		crop.Advance()
	}
	dirt.Plant(crop)
	x, y := w.Player().Position()
	w.SetTile(x, y, dirt)
}

type recorder struct {
	mu     sync.Mutex
	ids    []string
	events []farm.Event
}

func (r *recorder) HandleEvent(id string, e farm.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	r.events = append(r.events, e)
}

func TestSessionDefaults(t *testing.T) {
	s, _ := newTestSession(t, nil, Options{Player: "ann"})

	if _, err := uuid.Parse(s.ID()); err != nil {
		t.Errorf("ID() = %q, expected a UUID: %v", s.ID(), err)
	}
	if s.Player() != "ann" {
		t.Errorf("Player() = %q, expected ann", s.Player())
	}
	if s.Pause() == nil || s.Pause().Paused() {
		t.Error("session should start with a running pause flag")
	}
	if s.Started().IsZero() {
		t.Error("Started() should be set")
	}
}

func TestHarvestFansOut(t *testing.T) {
	rec := &recorder{}
	s, w := newTestSession(t, nil, Options{ID: "farm-1", Listeners: []Listener{rec}})
	plantRipe(w)

	s.InteractStart()
	s.InteractEnd()

	if len(rec.events) != 1 || rec.events[0].Kind != farm.EventPickup {
		t.Fatalf("listener events = %+v, expected one pickup", rec.events)
	}
	if rec.ids[0] != "farm-1" {
		t.Errorf("listener session id = %q, expected farm-1", rec.ids[0])
	}
	if got := s.Harvested()["wheat"]; got != 3 {
		t.Errorf("Harvested()[wheat] = %d, expected 3", got)
	}

	pending := s.TakeEvents()
	if len(pending) != 1 || pending[0].Amount != 3 {
		t.Errorf("TakeEvents() = %+v, expected the pickup", pending)
	}
	if s.TakeEvents() != nil {
		t.Error("second TakeEvents() should be empty")
	}
}

func TestSubscribeAndFunc(t *testing.T) {
	s, _ := newTestSession(t, func(c *farm.Config) {
		c.DayLength = 1
		c.NightLength = 1
	}, Options{})

	days := 0
	s.Subscribe(ListenerFunc(func(_ string, e farm.Event) {
		if e.Kind == farm.EventNewDay {
			days++
		}
		s.Snapshot() // listeners run outside the lock
	}))

	for i := 0; i < 6; i++ {
		s.Update()
	}
	if days != 3 {
		t.Errorf("new day events = %d, expected 3", days)
	}
}

func TestCommandsIgnoredWhilePaused(t *testing.T) {
	pause := &loop.PauseFlag{}
	s, w := newTestSession(t, nil, Options{Pause: pause})

	pause.Set(true)
	if s.Move(farm.DirRight) {
		t.Error("Move() while paused should be ignored")
	}
	s.SelectTool(0)
	if w.Player().SelectedIndex() != farm.NoTool {
		t.Error("SelectTool() while paused should be ignored")
	}
	s.InteractStart()
	if w.Player().Holding() {
		t.Error("InteractStart() while paused should be ignored")
	}

	pause.Set(false)
	if !s.Move(farm.DirRight) {
		t.Error("Move() after resume should succeed")
	}
}

func TestInteractEndReleasesWhilePaused(t *testing.T) {
	pause := &loop.PauseFlag{}
	s, w := newTestSession(t, nil, Options{Pause: pause})

	s.SelectTool(0)
	s.InteractStart()
	if w.Player().Action() != farm.ActionHoeing {
		t.Fatal("hoe press should start hoeing")
	}

	pause.Set(true)
	s.InteractEnd()
	if w.Player().Holding() || w.Player().Action() != farm.ActionIdle {
		t.Error("InteractEnd() should release even while paused")
	}
}

func TestPendingEventsBounded(t *testing.T) {
	s, _ := newTestSession(t, func(c *farm.Config) {
		c.DayLength = 1
		c.NightLength = 1
	}, Options{})

	for i := 0; i < 200; i++ {
		s.Update()
	}

	pending := s.TakeEvents()
	if len(pending) != maxPending {
		t.Fatalf("len(TakeEvents()) = %d, expected %d", len(pending), maxPending)
	}
	if last := pending[len(pending)-1]; last.Day != 101 {
		t.Errorf("newest event day = %d, expected 101", last.Day)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s, _ := newTestSession(t, nil, Options{})

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.Update()
		}
	}()
	go func() {
		defer wg.Done()
		dirs := []farm.Direction{farm.DirRight, farm.DirDown, farm.DirLeft, farm.DirUp}
		for i := 0; i < 500; i++ {
			s.Move(dirs[i%len(dirs)])
			s.SelectTool(i % 4)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			snap := s.Snapshot()
			if len(snap.Tiles) != snap.Width*snap.Height {
				t.Error("snapshot tiles do not match its size")
				return
			}
		}
	}()
	wg.Wait()

	if got := s.Snapshot().Tick; got != 500 {
		t.Errorf("Tick = %d, expected 500", got)
	}
}
