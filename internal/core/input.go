package core

// Action represents a semantic farm command, abstracted from physical keys.
type Action int

const (
	ActionNone       Action = iota
	ActionMoveUp            // W, Up arrow
	ActionMoveDown          // S, Down arrow
	ActionMoveLeft          // A, Left arrow
	ActionMoveRight         // D, Right arrow
	ActionInteract          // Space, E - hold to till
	ActionSlotHand          // 0 - empty hand
	ActionSlot1             // 1..4 - hotbar slots
	ActionSlot2
	ActionSlot3
	ActionSlot4
	ActionToggleHelp // Enter - controls overlay, pauses the farm
	ActionLedger     // L - harvest ledger
	ActionQuit       // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionInteract:
		return "Interact"
	case ActionSlotHand:
		return "SlotHand"
	case ActionSlot1, ActionSlot2, ActionSlot3, ActionSlot4:
		return "Slot" + string(rune('1'+a-ActionSlot1))
	case ActionToggleHelp:
		return "ToggleHelp"
	case ActionLedger:
		return "Ledger"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action steps the player.
func (a Action) IsMove() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}

// Slot returns the zero-based hotbar index an action selects. The hand maps
// to -1. ok is false for actions that do not select a slot.
func (a Action) Slot() (index int, ok bool) {
	switch {
	case a == ActionSlotHand:
		return -1, true
	case a >= ActionSlot1 && a <= ActionSlot4:
		return int(a - ActionSlot1), true
	default:
		return 0, false
	}
}
