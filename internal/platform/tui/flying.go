package tui

import (
	"github.com/vovakirdan/tui-farm/internal/core"
	"github.com/vovakirdan/tui-farm/internal/farm"
)

// Pickup animation tuning, applied once per drawn frame.
const (
	flyProgressStep = 0.05
	flyLerp         = 0.2
)

// flyingItem is a harvested item drifting from its tile to the inventory.
type flyingItem struct {
	glyph    rune
	color    core.Color
	x, y     float64
	tx, ty   float64
	progress float64
}

// spawnPickups starts one flying item per pickup event.
func spawnPickups(items []flyingItem, l layout, inv map[string]int, events []farm.Event) []flyingItem {
	for _, e := range events {
		if e.Kind != farm.EventPickup {
			continue
		}
		glyph, color := itemGlyph(e.Item)
		x, y := l.tileToScreen(float64(e.X), float64(e.Y))
		tx, ty := l.inventoryRow(inv, e.Item)
		items = append(items, flyingItem{
			glyph: glyph,
			color: color,
			x:     x,
			y:     y,
			tx:    float64(tx),
			ty:    float64(ty),
		})
	}
	return items
}

// step moves the item one frame closer and reports whether it is still flying.
func (f *flyingItem) step() bool {
	f.progress += flyProgressStep
	f.x = core.Lerp(f.x, f.tx, flyLerp)
	f.y = core.Lerp(f.y, f.ty, flyLerp)
	return f.progress < 1
}

// stepFlying advances every item and drops the ones that arrived.
func stepFlying(items []flyingItem) []flyingItem {
	alive := items[:0]
	for i := range items {
		if items[i].step() {
			alive = append(alive, items[i])
		}
	}
	return alive
}
