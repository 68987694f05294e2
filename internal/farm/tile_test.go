package farm

import "testing"

func TestTileWalkability(t *testing.T) {
	tests := []struct {
		tile     Tile
		kind     TileKind
		walkable bool
	}{
		{NewGrassTile(), TileGrass, true},
		{NewDirtTile(), TileDirt, true},
		{NewWaterTile(), TileWater, false},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if tc.tile.Kind() != tc.kind {
				t.Errorf("Kind() = %v, expected %v", tc.tile.Kind(), tc.kind)
			}
			if tc.tile.Walkable() != tc.walkable {
				t.Errorf("Walkable() = %v, expected %v", tc.tile.Walkable(), tc.walkable)
			}
		})
	}
}

func TestPlantingOnEmptyDirt(t *testing.T) {
	for _, slot := range []int{slotWheat, slotTomato} {
		w := newTestWorld(t, nil)
		w.SetTile(1, 1, NewDirtTile())
		w.SelectTool(slot)

		w.InteractStart()
		w.InteractEnd()

		dirt := w.Tile(1, 1).(*DirtTile)
		if !dirt.HasCrop() {
			t.Fatalf("slot %d: expected a crop after planting", slot)
		}
		if dirt.Crop().Stage() != 0 {
			t.Errorf("slot %d: Stage() = %d, expected 0", slot, dirt.Crop().Stage())
		}
		tool, _ := w.Player().SelectedTool()
		if dirt.Crop().Kind() != tool.Crop.Kind {
			t.Errorf("slot %d: planted %v, expected %v", slot, dirt.Crop().Kind(), tool.Crop.Kind)
		}
	}
}

func TestPlantingDoesNotReplaceCrop(t *testing.T) {
	w := newTestWorld(t, nil)
	dirt := NewDirtTile()
	w.SetTile(1, 1, dirt)

	w.SelectTool(slotWheat)
	w.InteractStart()
	w.InteractEnd()
	first := dirt.Crop()

	w.SelectTool(slotTomato)
	w.InteractStart()
	w.InteractEnd()

	if dirt.Crop() != first {
		t.Error("Interacting with a seed on a planted tile must not replace the crop")
	}
}

func TestPlantingAfterHarvest(t *testing.T) {
	w := newTestWorld(t, nil)
	dirt := NewDirtTile()
	w.SetTile(1, 1, dirt)

	grown := NewCrop(DefaultCropSpec(CropTomato))
	for i := 0; i < 5; i++ {
		grown.Advance()
	}
	dirt.Plant(grown)

	w.InteractStart() // empty hand harvests
	w.InteractEnd()
	if dirt.HasCrop() {
		t.Fatal("harvest should clear the crop")
	}

	w.SelectTool(slotWheat)
	w.InteractStart()
	if !dirt.HasCrop() || dirt.Crop().Stage() != 0 {
		t.Error("replanting a harvested tile should give a stage 0 crop")
	}
}

func TestHarvestRoundTrip(t *testing.T) {
	w := newTestWorld(t, nil)
	dirt := NewDirtTile()
	w.SetTile(1, 1, dirt)

	crop := NewCrop(DefaultCropSpec(CropWheat))
	for !crop.IsFullyGrown() {
		crop.Advance()
	}
	dirt.Plant(crop)
	expected := crop.HarvestYield()

	w.InteractStart()

	if got := w.Player().Inventory().Count("wheat"); got != expected {
		t.Errorf("inventory wheat = %d, expected %d", got, expected)
	}
	if dirt.HasCrop() {
		t.Error("tile should be crop-less after harvest")
	}
	if w.Tile(1, 1).Kind() != TileDirt {
		t.Error("harvested tile should stay dirt")
	}

	events := w.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventPickup {
		t.Fatalf("events = %+v, expected one pickup", events)
	}
	e := events[0]
	if e.X != 1 || e.Y != 1 || e.Item != "wheat" || e.Amount != expected || e.Sprite != "crops/wheat_stage_5" {
		t.Errorf("pickup event = %+v", e)
	}
}

func TestHarvestUnripeIsNoop(t *testing.T) {
	w := newTestWorld(t, nil)
	dirt := NewDirtTile()
	w.SetTile(1, 1, dirt)

	crop := NewCrop(DefaultCropSpec(CropWheat))
	crop.Advance()
	dirt.Plant(crop)

	w.InteractStart()

	if len(w.Player().Inventory().Items()) != 0 {
		t.Errorf("inventory = %v, expected empty", w.Player().Inventory().Items())
	}
	if dirt.Crop() != crop || crop.Stage() != 1 {
		t.Error("unripe crop should be left untouched")
	}
	if len(w.DrainEvents()) != 0 {
		t.Error("no events expected for a no-op interaction")
	}
}

func TestScrapHarvest(t *testing.T) {
	w := newTestWorld(t, func(c *Config) { c.Rules.ScrapHarvest = true })
	dirt := NewDirtTile()
	w.SetTile(1, 1, dirt)
	dirt.Plant(NewCrop(DefaultCropSpec(CropWheat)))

	w.InteractStart()

	if got := w.Player().Inventory().Count("wheat"); got != 1 {
		t.Errorf("scrap harvest gave %d wheat, expected 1", got)
	}
	if dirt.HasCrop() {
		t.Error("scrap harvest should clear the crop")
	}
}

func TestTillingGate(t *testing.T) {
	tests := []struct {
		name      string
		tool      int
		holdTicks int
		tilled    bool
	}{
		{"hoe below threshold", slotHoe, 59, false},
		{"hoe at threshold", slotHoe, 60, true},
		{"hoe past threshold", slotHoe, 90, true},
		{"seed at threshold", slotWheat, 60, false},
		{"hand at threshold", NoTool, 60, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			w.SelectTool(tc.tool)
			p := w.Player()
			p.holding = true
			p.holdTicks = tc.holdTicks

			w.Tile(1, 1).OnInteract(w, p, 1, 1)

			got := w.Tile(1, 1).Kind() == TileDirt
			if got != tc.tilled {
				t.Errorf("tilled = %v, expected %v", got, tc.tilled)
			}
		})
	}
}

func TestHoldTillsAtThreshold(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SelectTool(slotHoe)
	w.InteractStart()

	if w.Player().Action() != ActionHoeing {
		t.Errorf("Action() = %v, expected hoeing", w.Player().Action())
	}

	runTicks(w, 59)
	if w.Tile(1, 1).Kind() != TileGrass {
		t.Fatal("grass tilled before the hold threshold")
	}

	w.Update()
	if w.Tile(1, 1).Kind() != TileDirt {
		t.Fatal("grass not tilled at the hold threshold")
	}

	events := w.DrainEvents()
	if len(events) != 1 || events[0].Kind != EventTilled {
		t.Errorf("events = %+v, expected one tilled event", events)
	}

	// Holding on past the threshold must not re-trigger anything.
	runTicks(w, 120)
	if len(w.DrainEvents()) != 0 {
		t.Error("unexpected events after tilling")
	}
}

func TestReleaseBeforeThresholdDoesNotTill(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SelectTool(slotHoe)
	w.InteractStart()
	runTicks(w, 30)
	w.InteractEnd()

	if w.Player().Action() != ActionIdle {
		t.Errorf("Action() = %v, expected idle after release", w.Player().Action())
	}

	w.InteractStart()
	runTicks(w, 30)
	if w.Tile(1, 1).Kind() != TileGrass {
		t.Error("two short holds must not add up to a till")
	}
}

func TestHoldStartedWithoutHoeNeverTills(t *testing.T) {
	w := newTestWorld(t, nil)
	w.InteractStart()
	w.SelectTool(slotHoe)

	if w.Player().Action() == ActionHoeing {
		t.Fatal("picking up the hoe mid-hold should not start hoeing")
	}
	if !w.MovePlayer(DirRight) {
		t.Fatal("MovePlayer(right) rejected, player should not be busy")
	}
	settle(t, w)
	runTicks(w, 60)

	if got := w.Tile(2, 1).Kind(); got != TileGrass {
		t.Errorf("tile (2,1) = %v, expected grass", got)
	}
	if w.Player().HoldTicks() != 0 {
		t.Errorf("HoldTicks() = %d, expected 0", w.Player().HoldTicks())
	}
}

func TestHoeHoldDoesNotHarvest(t *testing.T) {
	w := newTestWorld(t, nil)
	dirt := NewDirtTile()
	w.SetTile(1, 1, dirt)
	dirt.Plant(NewCrop(DefaultCropSpec(CropWheat)))

	w.SelectTool(slotHoe)
	w.InteractStart()
	for !dirt.Crop().IsFullyGrown() {
		dirt.Crop().Advance()
	}
	runTicks(w, 60)

	if !dirt.HasCrop() {
		t.Fatal("hoe hold harvested the crop")
	}
	for _, e := range w.DrainEvents() {
		if e.Kind == EventPickup {
			t.Errorf("unexpected pickup event %+v", e)
		}
	}

	// A fresh tap still harvests.
	w.InteractEnd()
	w.InteractStart()
	if dirt.HasCrop() {
		t.Error("tap did not harvest the ripe crop")
	}
}

func TestWaterInteractIsNoop(t *testing.T) {
	w := newTestWorld(t, nil)
	p := w.Player()
	p.holdTicks = 1000
	w.SelectTool(slotHoe)

	w.Tile(0, 0).OnInteract(w, p, 0, 0)

	if w.Tile(0, 0).Kind() != TileWater {
		t.Error("water must not change on interaction")
	}
}
