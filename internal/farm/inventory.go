package farm

import (
	"sync"
)

// Inventory is a counted item store owned by the player.
// It is safe for concurrent use: the simulation goroutine mutates it while
// renderers read counts.
type Inventory struct {
	mu    sync.RWMutex
	items map[string]int
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]int)}
}

// Add increases the count of item by n. Non-positive amounts are ignored.
func (inv *Inventory) Add(item string, n int) {
	if n <= 0 {
		return
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.items[item] += n
}

// Remove takes n units of item. It returns false and changes nothing when
// fewer than n units are held.
func (inv *Inventory) Remove(item string, n int) bool {
	if n < 0 {
		return false
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	curr := inv.items[item]
	if curr < n {
		return false
	}
	if curr == n {
		delete(inv.items, item)
	} else {
		inv.items[item] = curr - n
	}
	return true
}

// Count returns how many units of item are held (0 if absent).
func (inv *Inventory) Count(item string) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.items[item]
}

// Items returns a copy of the inventory contents.
func (inv *Inventory) Items() map[string]int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	out := make(map[string]int, len(inv.items))
	for k, v := range inv.items {
		out[k] = v
	}
	return out
}
