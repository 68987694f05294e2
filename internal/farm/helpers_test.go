package farm

import "testing"

const (
	slotHoe    = 0
	slotWheat  = 1
	slotTomato = 2
)

func newTestWorld(t *testing.T, mutate func(*Config)) *World {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	return w
}

// settle runs updates until the player finishes its current walk.
func settle(t *testing.T, w *World) {
	t.Helper()
	for i := 0; w.Player().Action() == ActionWalking; i++ {
		if i > 1000 {
			t.Fatal("player never finished walking")
		}
		w.Update()
	}
}

func runTicks(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Update()
	}
}

func dayTicks(w *World) int {
	return w.DayCycle().DayLength() + w.DayCycle().NightLength()
}
