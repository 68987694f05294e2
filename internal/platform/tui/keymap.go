package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-farm/internal/core"
)

// DefaultReleaseTimeout is how long the interact key may stay silent before
// it counts as released. Terminals report only presses, and key repeat
// usually starts after 250-500ms.
const DefaultReleaseTimeout = 600 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to farm actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action (may be ActionNone).
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "w", "up":
		return core.ActionMoveUp
	case "s", "down":
		return core.ActionMoveDown
	case "a", "left":
		return core.ActionMoveLeft
	case "d", "right":
		return core.ActionMoveRight
	case " ", "space", "e":
		return core.ActionInteract
	case "0", "`":
		return core.ActionSlotHand
	case "1":
		return core.ActionSlot1
	case "2":
		return core.ActionSlot2
	case "3":
		return core.ActionSlot3
	case "4":
		return core.ActionSlot4
	case "enter", "?":
		return core.ActionToggleHelp
	case "l":
		return core.ActionLedger
	}

	return core.ActionNone
}

// HoldDetector infers press and release of a key from the stream of key
// repeats a terminal delivers. The first press starts a hold; the hold ends
// when no repeat arrived for the release timeout.
type HoldDetector struct {
	timeout time.Duration
	held    bool
	last    time.Time
}

// NewHoldDetector creates a detector. A non-positive timeout selects
// DefaultReleaseTimeout.
func NewHoldDetector(timeout time.Duration) *HoldDetector {
	if timeout <= 0 {
		timeout = DefaultReleaseTimeout
	}
	return &HoldDetector{timeout: timeout}
}

// Press records a key press and reports whether it started a new hold.
func (h *HoldDetector) Press(now time.Time) bool {
	h.last = now
	if h.held {
		return false
	}
	h.held = true
	return true
}

// Expired reports whether a hold just ended because the key went quiet.
// It returns true once per hold.
func (h *HoldDetector) Expired(now time.Time) bool {
	if !h.held || now.Sub(h.last) < h.timeout {
		return false
	}
	h.held = false
	return true
}

// Release ends the hold immediately and reports whether one was active.
func (h *HoldDetector) Release() bool {
	if !h.held {
		return false
	}
	h.held = false
	return true
}

// Held reports whether the key is considered down.
func (h *HoldDetector) Held() bool { return h.held }
