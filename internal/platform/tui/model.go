package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-farm/internal/core"
	"github.com/vovakirdan/tui-farm/internal/farm"
	"github.com/vovakirdan/tui-farm/internal/storage"
)

// stopTimeout bounds how long quitting waits for the loop goroutine.
const stopTimeout = 2 * time.Second

// Model is the Bubble Tea model for playing one farm.
type Model struct {
	farm      *Farm
	store     *storage.Store
	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	hold      *HoldDetector
	now       func() time.Time
	snap      farm.Snapshot
	flying    []flyingItem
	ledger    *LedgerModel // Non-nil while the ledger is open
	showHelp  bool
	quitting  bool
}

// NewModel creates a model around a started farm. store may be nil.
func NewModel(f *Farm, store *storage.Store, cfg core.RuntimeConfig) Model {
	return Model{
		farm:      f,
		store:     store,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		hold:      NewHoldDetector(DefaultReleaseTimeout),
		now:       time.Now,
		snap:      f.Session.Snapshot(),
	}
}

// Init starts waiting for frames.
func (m Model) Init() tea.Cmd {
	return waitFrame(m.farm.Frames, m.farm.Done())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ledger != nil {
		return m.updateLedger(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	if action != core.ActionInteract && action != core.ActionNone {
		// Terminals stop repeating a held key once another key is pressed.
		m.releaseInteract()
	}

	sess := m.farm.Session
	switch {
	case action == core.ActionQuit:
		return m.quit()

	case action == core.ActionToggleHelp:
		m.showHelp = !m.showHelp
		sess.Pause().Set(m.showHelp)

	case action == core.ActionLedger:
		return m.openLedger()

	case m.showHelp:
		// Gameplay keys are ignored while the overlay is up.

	case action.IsMove():
		sess.Move(moveDirection(action))

	case action == core.ActionInteract:
		if m.hold.Press(m.now()) {
			sess.InteractStart()
		}

	default:
		if slot, ok := action.Slot(); ok {
			if slot == m.snap.Player.Selected {
				slot = farm.NoTool
			}
			sess.SelectTool(slot)
			m.snap = sess.Snapshot()
		}
	}

	return m, nil
}

// moveDirection maps a move action to a facing.
func moveDirection(a core.Action) farm.Direction {
	switch a {
	case core.ActionMoveUp:
		return farm.DirUp
	case core.ActionMoveLeft:
		return farm.DirLeft
	case core.ActionMoveRight:
		return farm.DirRight
	default:
		return farm.DirDown
	}
}

// releaseInteract ends an inferred hold of the interact key.
func (m Model) releaseInteract() {
	if m.hold.Release() {
		m.farm.Session.InteractEnd()
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleFrame refreshes the snapshot after the loop ticked.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	sess := m.farm.Session
	if m.hold.Expired(m.now()) {
		sess.InteractEnd()
	}

	m.snap = sess.Snapshot()
	l := newLayout(m.snap.Width, m.snap.Height)
	m.flying = spawnPickups(m.flying, l, m.snap.Player.Inventory, sess.TakeEvents())
	m.flying = stepFlying(m.flying)

	return m, waitFrame(m.farm.Frames, m.farm.Done())
}

// openLedger pauses the farm and shows the harvest ledger.
func (m Model) openLedger() (tea.Model, tea.Cmd) {
	m.farm.Session.Pause().Set(true)
	ledger := NewLedgerModel(m.store, m.config.ScreenW, m.config.ScreenH)
	m.ledger = &ledger
	return m, ledger.Init()
}

// updateLedger routes messages to the open ledger. Frames keep flowing so
// the wait command stays armed.
func (m Model) updateLedger(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(FrameMsg); ok {
		return m, waitFrame(m.farm.Frames, m.farm.Done())
	}
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.screen.Resize(wsm.Width, wsm.Height)
	}

	next, cmd := m.ledger.Update(msg)
	if lm, ok := next.(LedgerModel); ok {
		m.ledger = &lm
	}

	switch {
	case m.ledger.IsQuitting():
		m.ledger = nil
		return m.quit()
	case m.ledger.IsGoingBack():
		m.ledger = nil
		m.farm.Session.Pause().Set(m.showHelp)
		return m, nil
	}
	return m, cmd
}

// quit stops the farm and exits the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	//nolint:errcheck // Stop logs what it could not finish
	m.farm.Stop(ctx)
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	drawFarm(m.screen, m.snap, m.flying, m.showHelp)

	dir := filepath.Join(os.Getenv("HOME"), ".farm", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("farm_day%d_%s.txt", m.snap.Day.Day, timestamp))

	//nolint:errcheck // Best-effort save, the farm continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// Snapshot returns the state last drawn.
func (m Model) Snapshot() farm.Snapshot { return m.snap }

// IsQuitting reports whether the user asked to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.ledger != nil {
		return m.ledger.View()
	}

	drawFarm(m.screen, m.snap, m.flying, m.showHelp)
	return RenderScreen(m.screen, m.snap.Day.NightAlpha)
}

// Run plays a farm in the terminal until the user quits.
func Run(f *Farm, store *storage.Store, cfg core.RuntimeConfig) error {
	f.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		//nolint:errcheck // Already stopped when the user quit
		f.Stop(ctx)
	}()

	p := tea.NewProgram(
		NewModel(f, store, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
