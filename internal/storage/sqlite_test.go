package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-farm/internal/farm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ledger.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Reopening runs the migrations again without error.
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	store.Close()
}

func TestSessionLifecycle(t *testing.T) {
	store := openTestStore(t)
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	if err := store.BeginSession("s1", "ann", start); err != nil {
		t.Fatalf("BeginSession() failed: %v", err)
	}
	if err := store.BeginSession("s1", "ann", start); err == nil {
		t.Error("BeginSession() with a duplicate id should fail")
	}

	sum, err := store.Session("s1")
	if err != nil || sum == nil {
		t.Fatalf("Session() = %v, %v", sum, err)
	}
	if sum.Player != "ann" || !sum.StartedAt.Equal(start) || !sum.EndedAt.IsZero() {
		t.Errorf("running session = %+v", sum)
	}

	end := start.Add(10 * time.Minute)
	if err := store.EndSession("s1", end, 3, 2400); err != nil {
		t.Fatalf("EndSession() failed: %v", err)
	}
	sum, _ = store.Session("s1")
	if !sum.EndedAt.Equal(end) || sum.Days != 3 || sum.Ticks != 2400 {
		t.Errorf("ended session = %+v", sum)
	}

	if err := store.EndSession("missing", end, 1, 1); err == nil {
		t.Error("EndSession() of an unknown session should fail")
	}
	if sum, err := store.Session("missing"); sum != nil || err != nil {
		t.Errorf("Session(missing) = %v, %v, expected nil, nil", sum, err)
	}
}

func TestHarvestLedger(t *testing.T) {
	store := openTestStore(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_ = store.BeginSession("s1", "ann", at)
	_ = store.BeginSession("s2", "bob", at.Add(time.Hour))

	records := []Harvest{
		{SessionID: "s1", Item: "wheat", Amount: 3, X: 2, Y: 1, Day: 4, CreatedAt: at},
		{SessionID: "s1", Item: "tomato", Amount: 2, X: 3, Y: 1, Day: 6, CreatedAt: at.Add(time.Minute)},
		{SessionID: "s2", Item: "wheat", Amount: 1, X: 5, Y: 5, Day: 2, CreatedAt: at.Add(2 * time.Minute)},
	}
	for _, h := range records {
		if _, err := store.RecordHarvest(h); err != nil {
			t.Fatalf("RecordHarvest() failed: %v", err)
		}
	}

	got, err := store.SessionHarvests("s1")
	if err != nil {
		t.Fatalf("SessionHarvests() failed: %v", err)
	}
	if len(got) != 2 || got[0].Item != "wheat" || got[1].Item != "tomato" {
		t.Fatalf("SessionHarvests(s1) = %+v", got)
	}
	if got[0].X != 2 || got[0].Y != 1 || got[0].Day != 4 || !got[0].CreatedAt.Equal(at) {
		t.Errorf("first harvest = %+v", got[0])
	}

	recent, err := store.RecentHarvests(2)
	if err != nil {
		t.Fatalf("RecentHarvests() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].SessionID != "s2" {
		t.Errorf("RecentHarvests(2) = %+v, expected newest first", recent)
	}

	totals, err := store.ItemTotals()
	if err != nil {
		t.Fatalf("ItemTotals() failed: %v", err)
	}
	expected := []ItemStats{
		{Item: "wheat", Harvests: 2, Total: 4, Best: 3},
		{Item: "tomato", Harvests: 1, Total: 2, Best: 2},
	}
	if len(totals) != len(expected) {
		t.Fatalf("ItemTotals() = %+v", totals)
	}
	for i, e := range expected {
		g := totals[i]
		if g.Item != e.Item || g.Harvests != e.Harvests || g.Total != e.Total || g.Best != e.Best {
			t.Errorf("totals[%d] = %+v, expected %+v", i, g, e)
		}
	}
	if !totals[0].LastHarvested.Equal(at.Add(2 * time.Minute)) {
		t.Errorf("wheat last harvested = %v", totals[0].LastHarvested)
	}

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 2 || sessions[0].ID != "s2" {
		t.Fatalf("RecentSessions() = %+v, expected newest first", sessions)
	}
	if sessions[1].Harvests != 2 || sessions[1].Items != 5 {
		t.Errorf("s1 summary = %+v, expected 2 harvests, 5 items", sessions[1])
	}
}

func TestSessionWithoutHarvests(t *testing.T) {
	store := openTestStore(t)
	_ = store.BeginSession("empty", "", time.Now())

	sum, err := store.Session("empty")
	if err != nil || sum == nil {
		t.Fatalf("Session() = %v, %v", sum, err)
	}
	if sum.Harvests != 0 || sum.Items != 0 {
		t.Errorf("empty session = %+v", sum)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	_ = store.BeginSession("s1", "", time.Now())
	_, _ = store.RecordHarvest(Harvest{SessionID: "s1", Item: "wheat", Amount: 3})

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if h, _ := store.RecentHarvests(10); len(h) != 0 {
		t.Errorf("harvests after Clear = %d", len(h))
	}
	if s, _ := store.RecentSessions(10); len(s) != 0 {
		t.Errorf("sessions after Clear = %d", len(s))
	}
}

func TestRecorder(t *testing.T) {
	store := openTestStore(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(store, nil)
	r.now = func() time.Time { return at }

	r.HandleEvent("s1", farm.Event{Kind: farm.EventTilled, X: 1, Y: 1})
	r.HandleEvent("s1", farm.Event{Kind: farm.EventNewDay, Day: 2})
	r.HandleEvent("s1", farm.Event{Kind: farm.EventPickup, X: 4, Y: 2, Item: "tomato", Amount: 2, Day: 7})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Close(ctx); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	// Events after Close are ignored, and Close can be repeated.
	r.HandleEvent("s1", farm.Event{Kind: farm.EventPickup, Item: "wheat", Amount: 1})
	if err := r.Close(ctx); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}

	got, err := store.SessionHarvests("s1")
	if err != nil {
		t.Fatalf("SessionHarvests() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("recorded %d harvests, expected only the pickup", len(got))
	}
	h := got[0]
	if h.Item != "tomato" || h.Amount != 2 || h.X != 4 || h.Y != 2 || h.Day != 7 || !h.CreatedAt.Equal(at) {
		t.Errorf("recorded harvest = %+v", h)
	}

	// A recorder without a store is a no-op.
	noop := NewRecorder(nil, nil)
	noop.HandleEvent("s1", farm.Event{Kind: farm.EventPickup, Item: "wheat", Amount: 3})
	if err := noop.Close(ctx); err != nil {
		t.Errorf("Close() without store failed: %v", err)
	}
}
