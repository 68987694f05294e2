package farm

// TileKind identifies a tile variant.
type TileKind int

const (
	TileGrass TileKind = iota
	TileDirt
	TileWater
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileGrass:
		return "grass"
	case TileDirt:
		return "dirt"
	case TileWater:
		return "water"
	default:
		return "unknown"
	}
}

// Tile is one cell of the world grid. The variant set is closed: only
// *GrassTile, *DirtTile and *WaterTile implement it.
type Tile interface {
	Kind() TileKind
	Walkable() bool

	// OnInteract runs when the player interacts while standing on the tile.
	OnInteract(w *World, p *Player, x, y int)

	// OnStep runs after the player successfully moves onto the tile.
	OnStep(w *World, p *Player, x, y int)

	sealed()
}

// GrassTile is walkable grass that a hoe can till into dirt.
type GrassTile struct{}

// NewGrassTile creates a grass tile.
func NewGrassTile() *GrassTile { return &GrassTile{} }

func (*GrassTile) Kind() TileKind { return TileGrass }
func (*GrassTile) Walkable() bool { return true }
func (*GrassTile) OnStep(_ *World, _ *Player, _, _ int) {}
func (*GrassTile) sealed() {}

// OnInteract tills the grass once the hoe has been held long enough.
func (*GrassTile) OnInteract(w *World, p *Player, x, y int) {
	tool, ok := p.SelectedTool()
	if !ok || !tool.IsHoe() {
		return
	}
	if p.HoldTicks() < w.rules.TillTimeTicks {
		return
	}
	w.SetTile(x, y, NewDirtTile())
	w.emit(Event{Kind: EventTilled, X: x, Y: y})
}

// DirtTile is tilled soil. It may hold one crop.
type DirtTile struct {
	crop *Crop
}

// NewDirtTile creates crop-less dirt.
func NewDirtTile() *DirtTile { return &DirtTile{} }

func (*DirtTile) Kind() TileKind { return TileDirt }
func (*DirtTile) Walkable() bool { return true }
func (*DirtTile) OnStep(_ *World, _ *Player, _, _ int) {}
func (*DirtTile) sealed() {}

// HasCrop reports whether a crop is planted.
func (d *DirtTile) HasCrop() bool { return d.crop != nil }

// Crop returns the planted crop or nil.
func (d *DirtTile) Crop() *Crop { return d.crop }

// Plant places c on the tile, replacing any existing crop.
func (d *DirtTile) Plant(c *Crop) { d.crop = c }

// RemoveCrop clears the tile.
func (d *DirtTile) RemoveCrop() { d.crop = nil }

// advanceDay grows the planted crop by one day.
func (d *DirtTile) advanceDay() {
	if d.crop != nil {
		d.crop.Advance()
	}
}

// OnInteract plants from a seed tool on empty soil, or harvests a grown crop.
func (d *DirtTile) OnInteract(w *World, p *Player, x, y int) {
	tool, hasTool := p.SelectedTool()

	if d.crop == nil {
		if hasTool && tool.IsSeed() {
			d.crop = NewCrop(tool.Crop)
			w.emit(Event{Kind: EventPlanted, X: x, Y: y, Item: d.crop.ItemName()})
		}
		return
	}

	if !d.crop.IsFullyGrown() && !w.rules.ScrapHarvest {
		return
	}

	amount := d.crop.HarvestYield()
	item := d.crop.ItemName()
	p.Inventory().Add(item, amount)
	w.emit(Event{
		Kind:   EventPickup,
		X:      x,
		Y:      y,
		Item:   item,
		Sprite: d.crop.SpriteKey(),
		Amount: amount,
	})
	d.RemoveCrop()
}

// WaterTile is impassable and inert.
type WaterTile struct{}

// NewWaterTile creates a water tile.
func NewWaterTile() *WaterTile { return &WaterTile{} }

func (*WaterTile) Kind() TileKind { return TileWater }
func (*WaterTile) Walkable() bool { return false }
func (*WaterTile) OnInteract(_ *World, _ *Player, _, _ int) {}
func (*WaterTile) OnStep(_ *World, _ *Player, _, _ int) {}
func (*WaterTile) sealed() {}
