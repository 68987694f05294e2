package farm

// EventKind identifies what happened in the world.
type EventKind int

const (
	EventPickup  EventKind = iota // a crop was harvested into the inventory
	EventTilled                   // grass became dirt
	EventPlanted                  // a seed was planted
	EventNewDay                   // the day counter rolled over
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPickup:
		return "pickup"
	case EventTilled:
		return "tilled"
	case EventPlanted:
		return "planted"
	case EventNewDay:
		return "new_day"
	default:
		return "unknown"
	}
}

// Event is a notification for presentation and bookkeeping layers.
// Events are queued during a tick or command and drained by the caller.
type Event struct {
	Kind   EventKind
	X, Y   int    // source tile
	Item   string // item name for pickups and plantings
	Sprite string // sprite key of the harvested item
	Amount int    // items added to the inventory
	Day    int    // day number when the event was queued
}
