package farm

import "testing"

func TestMoveAccepted(t *testing.T) {
	w := newTestWorld(t, nil)

	if !w.MovePlayer(DirRight) {
		t.Fatal("MovePlayer(right) from (1,1) should succeed")
	}
	p := w.Player()
	x, y := p.Position()
	if x != 2 || y != 1 {
		t.Errorf("Position() = (%d,%d), expected (2,1)", x, y)
	}
	if p.Direction() != DirRight {
		t.Errorf("Direction() = %v, expected right", p.Direction())
	}
	if p.Action() != ActionWalking {
		t.Errorf("Action() = %v, expected walking", p.Action())
	}
	rx, _ := p.RenderPosition()
	if rx != 1 {
		t.Errorf("render X = %f, expected 1 before any tick", rx)
	}
}

func TestMoveBoundary(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
	}{
		{"into water above", DirUp},
		{"into water left", DirLeft},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			if w.MovePlayer(tc.dir) {
				t.Error("move onto water should be rejected")
			}
			x, y := w.Player().Position()
			if x != 1 || y != 1 {
				t.Errorf("Position() = (%d,%d), expected (1,1)", x, y)
			}
			if w.Player().Direction() != DirDown {
				t.Error("rejected move must not change direction")
			}
			if w.Player().Action() != ActionIdle {
				t.Error("rejected move must not change action")
			}
		})
	}
}

func TestMoveOutOfBounds(t *testing.T) {
	// Without a water border the grid edge itself must stop the player.
	w := newTestWorld(t, nil)
	for x := 0; x < w.Width(); x++ {
		w.SetTile(x, 0, NewGrassTile())
	}
	w.Player().x, w.Player().y = 3, 0
	w.Player().renderX, w.Player().renderY = 3, 0

	if w.MovePlayer(DirUp) {
		t.Error("move outside the grid should be rejected")
	}
	x, y := w.Player().Position()
	if x != 3 || y != 0 {
		t.Errorf("Position() = (%d,%d), expected (3,0)", x, y)
	}
}

func TestMoveRejectedWhileBusy(t *testing.T) {
	w := newTestWorld(t, nil)

	w.MovePlayer(DirRight)
	if w.MovePlayer(DirDown) {
		t.Error("move while walking should be rejected")
	}
	settle(t, w)

	w.SelectTool(slotHoe)
	w.InteractStart()
	if w.MovePlayer(DirDown) {
		t.Error("move while hoeing should be rejected")
	}
	w.InteractEnd()
	if !w.MovePlayer(DirDown) {
		t.Error("move after releasing the hoe should succeed")
	}
}

func TestWalkReturnsToIdle(t *testing.T) {
	w := newTestWorld(t, nil)
	w.MovePlayer(DirDown)

	sawMidway := false
	for i := 0; i < 100 && w.Player().Action() == ActionWalking; i++ {
		w.Update()
		_, ry := w.Player().RenderPosition()
		if ry > 1 && ry < 2 {
			sawMidway = true
		}
	}

	p := w.Player()
	if p.Action() != ActionIdle {
		t.Fatalf("Action() = %v, expected idle", p.Action())
	}
	if !sawMidway {
		t.Error("render position should pass through intermediate values")
	}
	rx, ry := p.RenderPosition()
	if rx != 1 || ry != 2 {
		t.Errorf("RenderPosition() = (%f,%f), expected (1,2)", rx, ry)
	}
	if p.Frame() != 0 {
		t.Errorf("Frame() = %d, expected 0 when idle", p.Frame())
	}
}

func TestSelectTool(t *testing.T) {
	w := newTestWorld(t, nil)
	p := w.Player()

	if p.SelectedIndex() != NoTool {
		t.Errorf("initial SelectedIndex() = %d, expected %d", p.SelectedIndex(), NoTool)
	}

	w.SelectTool(slotWheat)
	tool, ok := p.SelectedTool()
	if !ok || !tool.IsSeed() || tool.Crop.Kind != CropWheat {
		t.Errorf("SelectedTool() = %+v, %v, expected wheat seeds", tool, ok)
	}

	for _, idx := range []int{-5, 3, 99} {
		w.SelectTool(slotHoe)
		w.SelectTool(idx)
		if p.SelectedIndex() != NoTool {
			t.Errorf("SelectTool(%d) left index %d, expected deselect", idx, p.SelectedIndex())
		}
		if _, ok := p.SelectedTool(); ok {
			t.Errorf("SelectTool(%d) should leave the hand empty", idx)
		}
	}
}

func TestSelectToolCancelsHoeing(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SelectTool(slotHoe)
	w.InteractStart()
	runTicks(w, 30)

	w.SelectTool(slotHoe)
	if w.Player().Action() != ActionHoeing {
		t.Error("re-selecting the same slot should not cancel hoeing")
	}

	w.SelectTool(slotWheat)
	if w.Player().Action() != ActionIdle {
		t.Errorf("Action() = %v, expected idle after switching tools", w.Player().Action())
	}
	if w.Player().HoldTicks() != 0 {
		t.Errorf("HoldTicks() = %d, expected reset to 0", w.Player().HoldTicks())
	}
}

func TestPlayerToolsAreCopied(t *testing.T) {
	cfg := DefaultConfig()
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	cfg.Tools[0] = NewSeedTool("", DefaultCropSpec(CropTomato))

	if tool := w.Player().Tools()[0]; !tool.IsHoe() {
		t.Error("player tools must not alias the config slice")
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
	}
	for _, tc := range tests {
		dx, dy := tc.dir.Delta()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%v.Delta() = (%d,%d), expected (%d,%d)", tc.dir, dx, dy, tc.dx, tc.dy)
		}
	}
}
