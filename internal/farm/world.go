package farm

import "fmt"

// Rules are the tunable interaction and animation constants.
type Rules struct {
	TillTimeTicks int     // hoe hold needed to till grass (inclusive)
	WalkSpeed     float64 // render cells moved per tick
	FrameTicks    int     // ticks per animation frame
	WalkFrames    int     // frames per walk/hoe cycle
	ScrapHarvest  bool    // allow harvesting unripe crops for their unripe yield
}

// DefaultRules returns the standard rules: one second of hoe hold at 60 TPS.
func DefaultRules() Rules {
	return Rules{
		TillTimeTicks: 60,
		WalkSpeed:     0.125,
		FrameTicks:    4,
		WalkFrames:    4,
	}
}

func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.TillTimeTicks < 0 {
		r.TillTimeTicks = 0
	}
	if r.WalkSpeed <= 0 {
		r.WalkSpeed = d.WalkSpeed
	}
	if r.FrameTicks < 1 {
		r.FrameTicks = d.FrameTicks
	}
	if r.WalkFrames < 1 {
		r.WalkFrames = d.WalkFrames
	}
	return r
}

// Config describes how to build a World.
type Config struct {
	Width, Height int
	DayLength     int
	NightLength   int
	NightFade     int
	StartX        int
	StartY        int
	Rules         Rules
	Tools         []Tool
}

// DefaultConfig returns a 16x12 farm with a hoe and two seed tools.
func DefaultConfig() Config {
	return Config{
		Width:       16,
		Height:      12,
		DayLength:   800,
		NightLength: 400,
		NightFade:   DefaultNightFade,
		StartX:      1,
		StartY:      1,
		Rules:       DefaultRules(),
		Tools: []Tool{
			NewHoe("Hoe"),
			NewSeedTool("Wheat Seeds", DefaultCropSpec(CropWheat)),
			NewSeedTool("Tomato Seeds", DefaultCropSpec(CropTomato)),
		},
	}
}

// World owns the tile grid, the player and the day cycle.
// It is not safe for concurrent use; callers serialize access.
type World struct {
	width, height int
	tiles         []Tile // row-major
	player        *Player
	days          *DayCycle
	rules         Rules
	ticks         uint64
	events        []Event
}

// NewWorld builds a bordered world: water around the edge, grass inside.
func NewWorld(cfg Config) (*World, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("farm: invalid world size %dx%d", cfg.Width, cfg.Height)
	}

	w := &World{
		width:  cfg.Width,
		height: cfg.Height,
		tiles:  make([]Tile, cfg.Width*cfg.Height),
		days:   NewDayCycle(cfg.DayLength, cfg.NightLength, cfg.NightFade),
		rules:  cfg.Rules.normalized(),
	}

	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			if x == 0 || y == 0 || x == w.width-1 || y == w.height-1 {
				w.tiles[w.index(x, y)] = NewWaterTile()
			} else {
				w.tiles[w.index(x, y)] = NewGrassTile()
			}
		}
	}

	start := w.Tile(cfg.StartX, cfg.StartY)
	if start == nil || !start.Walkable() {
		return nil, fmt.Errorf("farm: start (%d,%d) is not a walkable cell", cfg.StartX, cfg.StartY)
	}
	w.player = newPlayer(cfg.StartX, cfg.StartY, cfg.Tools)

	return w, nil
}

func (w *World) index(x, y int) int { return y*w.width + x }

// InBounds reports whether (x, y) is a grid cell.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.width && y < w.height
}

// Width returns the grid width in tiles.
func (w *World) Width() int { return w.width }

// Height returns the grid height in tiles.
func (w *World) Height() int { return w.height }

// Tile returns the tile at (x, y), or nil when out of bounds.
func (w *World) Tile(x, y int) Tile {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.tiles[w.index(x, y)]
}

// SetTile replaces the tile at (x, y). Out-of-bounds coordinates and nil
// tiles are ignored.
func (w *World) SetTile(x, y int, t Tile) {
	if t == nil || !w.InBounds(x, y) {
		return
	}
	w.tiles[w.index(x, y)] = t
}

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// DayCycle returns the day/night cycle.
func (w *World) DayCycle() *DayCycle { return w.days }

// Rules returns the active rules.
func (w *World) Rules() Rules { return w.rules }

// Ticks returns the number of updates applied since construction.
func (w *World) Ticks() uint64 { return w.ticks }

// Update advances the simulation by one tick.
func (w *World) Update() {
	w.ticks++
	w.days.Tick()
	if w.days.CurrentTick() == 0 {
		w.onNewDay()
	}

	if w.player.tick(w.rules) {
		w.tillHere()
	}
}

// onNewDay grows every planted crop exactly once.
func (w *World) onNewDay() {
	for _, t := range w.tiles {
		if dirt, ok := t.(*DirtTile); ok && dirt.HasCrop() {
			dirt.advanceDay()
		}
	}
	w.emit(Event{Kind: EventNewDay})
}

// MovePlayer steps the player one cell. The move is rejected while the
// player is busy, or when the target is out of bounds or not walkable.
func (w *World) MovePlayer(dir Direction) bool {
	p := w.player
	if p.Busy() {
		return false
	}
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return false
	}
	nx, ny := p.x+dx, p.y+dy
	target := w.Tile(nx, ny)
	if target == nil || !target.Walkable() {
		return false
	}

	p.walkTo(nx, ny, dir)
	target.OnStep(w, p, nx, ny)
	return true
}

// InteractStart begins holding the interact key and interacts immediately.
func (w *World) InteractStart() {
	w.player.startInteract()
	w.interactHere()
}

// InteractEnd releases the interact key.
func (w *World) InteractEnd() {
	w.player.stopInteract()
}

// SelectTool selects a hotbar slot; out-of-range indices select the hand.
func (w *World) SelectTool(index int) {
	w.player.selectTool(index)
}

func (w *World) interactHere() {
	x, y := w.player.Position()
	if t := w.Tile(x, y); t != nil {
		t.OnInteract(w, w.player, x, y)
	}
}

// tillHere fires when a hoe hold reaches the threshold. Only grass reacts;
// crops that ripened during the hold still need a separate tap.
func (w *World) tillHere() {
	x, y := w.player.Position()
	if g, ok := w.Tile(x, y).(*GrassTile); ok {
		g.OnInteract(w, w.player, x, y)
	}
}

func (w *World) emit(e Event) {
	e.Day = w.days.Day()
	w.events = append(w.events, e)
}

// DrainEvents returns queued events and clears the queue.
func (w *World) DrainEvents() []Event {
	if len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}
