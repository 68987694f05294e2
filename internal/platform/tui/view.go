package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-farm/internal/core"
	"github.com/vovakirdan/tui-farm/internal/farm"
)

// Farm screen layout constants
const (
	tileW      = 2  // Screen columns per tile
	panelWidth = 26 // Width of the side panel including its border
	progressW  = 12 // Cells of the hoe progress bar
)

// layout places the farm and the side panel on the screen.
type layout struct {
	frame core.Rect // Box around the grid
	grid  core.Rect // Tile area, tileW columns per tile
	panel core.Rect
}

func newLayout(worldW, worldH int) layout {
	frame := core.NewRect(0, 1, worldW*tileW+2, worldH+2)
	return layout{
		frame: frame,
		grid:  frame.Inset(1),
		panel: core.NewRect(frame.Right()+1, 1, panelWidth, max(frame.H, 18)),
	}
}

// minSize is the smallest screen the layout fits on.
func (l layout) minSize() (w, h int) {
	return l.panel.Right(), l.panel.Bottom() + 1
}

// tileToScreen returns the screen cell of the left half of tile (x, y).
func (l layout) tileToScreen(x, y float64) (float64, float64) {
	return float64(l.grid.X) + x*tileW, float64(l.grid.Y) + y
}

// inventoryRow returns the panel row that lists item, or the inventory
// header when the item is not listed yet.
func (l layout) inventoryRow(inv map[string]int, item string) (x, y int) {
	x = l.panel.X + 2
	y = l.panel.Y + 2
	for i, name := range sortedItems(inv) {
		if name == item {
			return x, y + i
		}
	}
	return x, l.panel.Y + 1
}

// controlBindings lists the farm controls shown in the help overlay.
func controlBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("w", "a", "s", "d"), key.WithHelp("wasd/arrows", "move")),
		key.NewBinding(key.WithKeys(" ", "e"), key.WithHelp("space/e", "use tool")),
		key.NewBinding(key.WithKeys(" ", "e"), key.WithHelp("  (hold)", "till with the hoe")),
		key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "select tool")),
		key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "empty hand")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "harvest ledger")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "close help")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// drawFarm renders a snapshot with its HUD into s.
func drawFarm(s *core.Screen, snap farm.Snapshot, flying []flyingItem, showHelp bool) {
	s.Clear()
	l := newLayout(snap.Width, snap.Height)
	if w, h := l.minSize(); s.Width() < w || s.Height() < h {
		s.DrawTextCentered(s.Height()/2, fmt.Sprintf("Terminal too small (need %dx%d)", w, h), core.ColorText)
		return
	}

	drawStatus(s, snap)
	s.DrawBox(l.frame, core.ColorBorder)
	drawTiles(s, l, snap)
	drawPlayer(s, l, snap.Player)
	drawPanel(s, l, snap.Player)

	for _, f := range flying {
		s.SetCell(core.Round(f.x), core.Round(f.y), core.Cell{Rune: f.glyph, Color: f.color})
	}

	s.DrawText(0, l.frame.Bottom(), "enter: controls  l: ledger  q: quit", core.ColorMuted)

	if showHelp {
		drawHelp(s)
	}
}

func drawStatus(s *core.Screen, snap farm.Snapshot) {
	phase := "day"
	if snap.Day.Night {
		phase = "night"
	}
	s.DrawText(0, 0, "TUI FARM", core.ColorAccent)
	s.DrawText(10, 0, fmt.Sprintf("Day %d  %s  %s", snap.Day.Day, clockText(snap.Day), phase), core.ColorText)
}

func drawTiles(s *core.Screen, l layout, snap farm.Snapshot) {
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			cells := tileCells(snap.At(x, y))
			sx := l.grid.X + x*tileW
			for i, c := range cells {
				s.SetCell(sx+i, l.grid.Y+y, c)
			}
		}
	}
}

// tileCells returns the glyphs of one tile.
func tileCells(v farm.TileView) [tileW]core.Cell {
	var glyph rune
	var color core.Color
	switch v.Kind {
	case farm.TileWater:
		glyph, color = '~', core.ColorWater
	case farm.TileDirt:
		glyph, color = ':', core.ColorDirt
		if v.HasCrop {
			glyph, color = cropGlyph(v)
		}
	default:
		glyph, color = ',', core.ColorGrass
	}
	return [tileW]core.Cell{{Rune: glyph, Color: color}, {Rune: glyph, Color: color}}
}

func cropGlyph(v farm.TileView) (rune, core.Color) {
	if v.Ripe {
		return itemGlyph(farm.ItemName(v.CropKind))
	}
	switch {
	case v.CropStage == 0:
		return '.', core.ColorSprout
	case v.CropStage*2 < v.CropMax:
		return 'i', core.ColorSprout
	default:
		return 'Y', core.ColorSprout
	}
}

// itemGlyph returns the glyph and color used for an inventory item.
func itemGlyph(item string) (rune, core.Color) {
	switch item {
	case farm.ItemName(farm.CropWheat):
		return 'W', core.ColorWheat
	case farm.ItemName(farm.CropTomato):
		return 'T', core.ColorTomato
	default:
		return '*', core.ColorAccent
	}
}

var (
	facing   = map[farm.Direction]rune{farm.DirDown: 'v', farm.DirLeft: '<', farm.DirRight: '>', farm.DirUp: '^'}
	hoeSwing = []rune{'/', '-', '\\', '|'}
)

func drawPlayer(s *core.Screen, l layout, p farm.PlayerView) {
	x, y := l.tileToScreen(p.RenderX, p.RenderY)
	second := facing[p.Direction]
	if p.Action == farm.ActionHoeing {
		second = hoeSwing[p.Frame%len(hoeSwing)]
	}
	sx, sy := core.Round(x), core.Round(y)
	s.SetCell(sx, sy, core.Cell{Rune: '@', Color: core.ColorPlayer})
	s.SetCell(sx+1, sy, core.Cell{Rune: second, Color: core.ColorPlayer})
}

func drawPanel(s *core.Screen, l layout, p farm.PlayerView) {
	s.DrawBox(l.panel, core.ColorBorder)
	x := l.panel.X + 2
	y := l.panel.Y + 1

	s.DrawText(x, y, "Inventory", core.ColorAccent)
	y++
	items := sortedItems(p.Inventory)
	if len(items) == 0 {
		s.DrawText(x, y, "(empty)", core.ColorMuted)
		y++
	}
	for _, name := range items {
		glyph, color := itemGlyph(name)
		s.SetCell(x, y, core.Cell{Rune: glyph, Color: color})
		s.DrawText(x+2, y, fmt.Sprintf("%-12s x%d", name, p.Inventory[name]), core.ColorText)
		y++
	}

	s.DrawHLine(l.panel.X+1, y, l.panel.W-2, core.Cell{Rune: '─', Color: core.ColorBorder})
	y++
	s.DrawText(x, y, "Tools", core.ColorAccent)
	y++
	drawSlot(s, x, y, "0", "hand", p.Selected == farm.NoTool)
	for i, t := range p.Tools {
		y++
		drawSlot(s, x, y, fmt.Sprint(i+1), t.Name, p.Selected == i)
	}

	y += 2
	if p.Holding && p.Action == farm.ActionHoeing {
		s.DrawText(x, y, "Tilling", core.ColorText)
		s.DrawText(x, y+1, progressBar(p.HoldProgress, progressW), core.ColorProgress)
	}
}

func drawSlot(s *core.Screen, x, y int, keyName, name string, selected bool) {
	if selected {
		s.DrawText(x, y, fmt.Sprintf("> %s %s", keyName, name), core.ColorAccent)
		return
	}
	s.DrawText(x, y, fmt.Sprintf("  %s %s", keyName, name), core.ColorText)
}

// progressBar renders p in [0,1] as a bar of width cells.
func progressBar(p float64, width int) string {
	filled := core.Clamp(core.Round(core.ClampF(p, 0, 1)*float64(width)), 0, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func drawHelp(s *core.Screen) {
	bindings := controlBindings()
	cx, cy := core.NewRect(0, 0, s.Width(), s.Height()).Center()
	box := core.NewRect(0, 0, 40, len(bindings)+4)
	box.X = max(0, cx-box.W/2)
	box.Y = max(0, cy-box.H/2)

	s.DrawRect(box, core.Cell{Rune: ' ', Color: core.ColorText})
	s.DrawBox(box, core.ColorBorder)
	s.DrawText(box.X+2, box.Y+1, "CONTROLS (paused)", core.ColorAccent)
	for i, b := range bindings {
		h := b.Help()
		s.DrawText(box.X+2, box.Y+2+i, fmt.Sprintf("%-13s %s", h.Key, h.Desc), core.ColorText)
	}
}

// clockText maps the day cycle onto a wall clock: daylight runs from 06:00
// to 20:00 and night from 20:00 to 06:00.
func clockText(d farm.DayView) string {
	var minutes int
	if d.Tick < d.DayLength {
		minutes = 6*60 + d.Tick*14*60/max(1, d.DayLength)
	} else {
		minutes = 20*60 + (d.Tick-d.DayLength)*10*60/max(1, d.NightLength)
	}
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func sortedItems(inv map[string]int) []string {
	names := make([]string, 0, len(inv))
	for name, n := range inv {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
