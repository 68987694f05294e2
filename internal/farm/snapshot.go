package farm

// TileView is a read-only description of a tile for renderers.
type TileView struct {
	Kind      TileKind
	Walkable  bool
	HasCrop   bool
	CropKind  CropKind
	CropStage int
	CropMax   int
	Ripe      bool
}

// PlayerView is a read-only copy of the player state.
type PlayerView struct {
	X, Y         int
	RenderX      float64
	RenderY      float64
	Direction    Direction
	Action       Action
	Frame        int
	Inventory    map[string]int
	Tools        []Tool
	Selected     int
	Holding      bool
	HoldTicks    int
	HoldProgress float64 // hoe hold toward the till threshold, in [0,1]
}

// DayView is a read-only copy of the day cycle state.
type DayView struct {
	Day         int
	Tick        int
	DayLength   int
	NightLength int
	NightAlpha  float64
	Night       bool
}

// Snapshot captures everything a renderer needs for one frame.
type Snapshot struct {
	Tick   uint64
	Width  int
	Height int
	Tiles  []TileView // row-major, Width*Height
	Player PlayerView
	Day    DayView
}

// At returns the tile view at (x, y) or the zero value when out of bounds.
func (s Snapshot) At(x, y int) TileView {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return TileView{}
	}
	return s.Tiles[y*s.Width+x]
}

// ViewTile describes a tile.
func ViewTile(t Tile) TileView {
	v := TileView{Kind: t.Kind(), Walkable: t.Walkable()}
	switch tt := t.(type) {
	case *DirtTile:
		if c := tt.Crop(); c != nil {
			v.HasCrop = true
			v.CropKind = c.Kind()
			v.CropStage = c.Stage()
			v.CropMax = c.MaxStage()
			v.Ripe = c.IsFullyGrown()
		}
	case *GrassTile, *WaterTile:
	}
	return v
}

// TileView returns the view of the tile at (x, y); ok is false out of bounds.
func (w *World) TileView(x, y int) (TileView, bool) {
	t := w.Tile(x, y)
	if t == nil {
		return TileView{}, false
	}
	return ViewTile(t), true
}

// PlayerView returns a copy of the player state.
func (w *World) PlayerView() PlayerView {
	p := w.player
	v := PlayerView{
		X:         p.x,
		Y:         p.y,
		RenderX:   p.renderX,
		RenderY:   p.renderY,
		Direction: p.dir,
		Action:    p.action,
		Frame:     p.frame,
		Inventory: p.inventory.Items(),
		Tools:     p.Tools(),
		Selected:  p.selected,
		Holding:   p.holding,
		HoldTicks: p.holdTicks,
	}
	if p.holding && p.hasHoe() {
		if w.rules.TillTimeTicks <= 0 {
			v.HoldProgress = 1
		} else {
			v.HoldProgress = min(1, float64(p.holdTicks)/float64(w.rules.TillTimeTicks))
		}
	}
	return v
}

// DayView returns a copy of the day cycle state.
func (w *World) DayView() DayView {
	d := w.days
	return DayView{
		Day:         d.Day(),
		Tick:        d.CurrentTick(),
		DayLength:   d.DayLength(),
		NightLength: d.NightLength(),
		NightAlpha:  d.NightAlpha(),
		Night:       d.IsNight(),
	}
}

// Snapshot copies the full world state.
func (w *World) Snapshot() Snapshot {
	tiles := make([]TileView, len(w.tiles))
	for i, t := range w.tiles {
		tiles[i] = ViewTile(t)
	}
	return Snapshot{
		Tick:   w.ticks,
		Width:  w.width,
		Height: w.height,
		Tiles:  tiles,
		Player: w.PlayerView(),
		Day:    w.DayView(),
	}
}
