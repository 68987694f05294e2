package farm

import "math"

// Direction is one of the four cardinal facings.
type Direction int

const (
	DirDown Direction = iota
	DirLeft
	DirRight
	DirUp
)

// Delta returns the grid offset of a single step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}

// Action is the player's animation/behaviour state.
type Action int

const (
	ActionIdle Action = iota
	ActionWalking
	ActionHoeing
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionWalking:
		return "walking"
	case ActionHoeing:
		return "hoeing"
	default:
		return "unknown"
	}
}

// NoTool is the selected index when the player is empty-handed.
const NoTool = -1

// renderEpsilon is the distance at which the render position snaps to the cell.
const renderEpsilon = 0.01

// Player is the farmer. All mutation goes through World so movement is
// always validated against the grid.
type Player struct {
	x, y             int
	renderX, renderY float64
	dir              Direction
	action           Action
	frame            int
	frameTicks       int

	inventory *Inventory
	tools     []Tool
	selected  int

	holding   bool
	holdTicks int
}

func newPlayer(x, y int, tools []Tool) *Player {
	owned := make([]Tool, len(tools))
	copy(owned, tools)
	return &Player{
		x:         x,
		y:         y,
		renderX:   float64(x),
		renderY:   float64(y),
		dir:       DirDown,
		action:    ActionIdle,
		inventory: NewInventory(),
		tools:     owned,
		selected:  NoTool,
	}
}

// Position returns the logical grid cell.
func (p *Player) Position() (x, y int) { return p.x, p.y }

// RenderPosition returns the interpolated drawing position in cell units.
func (p *Player) RenderPosition() (x, y float64) { return p.renderX, p.renderY }

// Direction returns the facing direction.
func (p *Player) Direction() Direction { return p.dir }

// Action returns the current action state.
func (p *Player) Action() Action { return p.action }

// Frame returns the animation frame index for the current action.
func (p *Player) Frame() int { return p.frame }

// Inventory returns the player's inventory.
func (p *Player) Inventory() *Inventory { return p.inventory }

// Tools returns a copy of the tool hotbar.
func (p *Player) Tools() []Tool {
	out := make([]Tool, len(p.tools))
	copy(out, p.tools)
	return out
}

// SelectedIndex returns the selected hotbar slot or NoTool.
func (p *Player) SelectedIndex() int { return p.selected }

// SelectedTool returns the tool in hand, if any.
func (p *Player) SelectedTool() (Tool, bool) {
	if p.selected < 0 || p.selected >= len(p.tools) {
		return Tool{}, false
	}
	return p.tools[p.selected], true
}

// Holding reports whether the interact key is held down.
func (p *Player) Holding() bool { return p.holding }

// HoldTicks returns how many ticks the interact key has been held.
func (p *Player) HoldTicks() int { return p.holdTicks }

// Busy reports whether an action is in progress that blocks movement.
func (p *Player) Busy() bool {
	return p.action == ActionWalking || p.action == ActionHoeing
}

func (p *Player) hasHoe() bool {
	t, ok := p.SelectedTool()
	return ok && t.IsHoe()
}

// selectTool switches the hotbar slot. Out-of-range indices select the hand.
func (p *Player) selectTool(index int) {
	if index < 0 || index >= len(p.tools) {
		index = NoTool
	}
	if index == p.selected {
		return
	}
	p.selected = index
	p.holdTicks = 0
	if p.action == ActionHoeing {
		p.setAction(ActionIdle)
	}
}

func (p *Player) startInteract() {
	p.holding = true
	p.holdTicks = 0
	if p.hasHoe() {
		p.setAction(ActionHoeing)
	}
}

func (p *Player) stopInteract() {
	p.holding = false
	p.holdTicks = 0
	if p.action == ActionHoeing {
		p.setAction(ActionIdle)
	}
}

func (p *Player) walkTo(x, y int, dir Direction) {
	p.x, p.y = x, y
	p.dir = dir
	p.setAction(ActionWalking)
}

func (p *Player) setAction(a Action) {
	p.action = a
	p.frame = 0
	p.frameTicks = 0
}

// tick advances animation and the hold timer by one simulation tick.
// The hold timer only runs while hoeing, so a hold that began with another
// tool never tills. It returns true on the tick the hold reaches the till
// threshold.
func (p *Player) tick(r Rules) (holdReady bool) {
	if p.holding && p.action == ActionHoeing {
		p.holdTicks++
		holdReady = p.holdTicks == r.TillTimeTicks
	}

	p.renderX = approach(p.renderX, float64(p.x), r.WalkSpeed)
	p.renderY = approach(p.renderY, float64(p.y), r.WalkSpeed)

	switch p.action {
	case ActionWalking:
		p.advanceFrame(r)
		if p.converged() && p.frame == 0 {
			p.setAction(ActionIdle)
		}
	case ActionHoeing:
		p.advanceFrame(r)
	default:
		p.frame = 0
		p.frameTicks = 0
	}
	return holdReady
}

func (p *Player) advanceFrame(r Rules) {
	frames := max(1, r.WalkFrames)
	p.frameTicks++
	if p.frameTicks >= max(1, r.FrameTicks) {
		p.frameTicks = 0
		p.frame = (p.frame + 1) % frames
	}
}

func (p *Player) converged() bool {
	return math.Abs(p.renderX-float64(p.x)) < renderEpsilon &&
		math.Abs(p.renderY-float64(p.y)) < renderEpsilon
}

// approach moves cur toward target by at most step, snapping when close.
func approach(cur, target, step float64) float64 {
	d := target - cur
	if math.Abs(d) <= math.Max(step, renderEpsilon) {
		return target
	}
	if d > 0 {
		return cur + step
	}
	return cur - step
}
