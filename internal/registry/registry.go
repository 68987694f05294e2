// Package registry holds the hotbar: the ordered tool slots a farm is built
// with. It is filled once at startup from configuration and then shared, read
// only, by every farm the process runs.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-farm/internal/config"
	"github.com/vovakirdan/tui-farm/internal/farm"
)

// Slot is one registered tool and where it sits on the hotbar.
type Slot struct {
	Index int    // Zero-based hotbar index
	Key   string // Key that selects the slot ("1".."4")
	Tool  farm.Tool
}

// Registry is an ordered set of uniquely named tools.
type Registry struct {
	mu     sync.RWMutex
	slots  []Slot
	byName map[string]int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// FromConfig builds a registry from the configured tool list, in order.
func FromConfig(cfg config.FarmConfig) (*Registry, error) {
	r := New()
	for _, tc := range cfg.Tools {
		var tool farm.Tool
		switch tc.Kind {
		case config.ToolKindHoe:
			tool = farm.NewHoe(tc.Name)
		case config.ToolKindSeed:
			spec, err := cfg.CropSpec(tc.Crop)
			if err != nil {
				return nil, fmt.Errorf("registry: tool %q: %w", tc.Name, err)
			}
			tool = farm.NewSeedTool(tc.Name, spec)
		default:
			return nil, fmt.Errorf("registry: tool %q has unknown kind %q", tc.Name, tc.Kind)
		}
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a tool to the next free slot.
// Names are unique ignoring case, and the hotbar holds at most
// config.MaxToolSlots tools.
func (r *Registry) Register(t farm.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := normalize(t.Name)
	if key == "" {
		return fmt.Errorf("registry: tool name is empty")
	}
	if _, exists := r.byName[key]; exists {
		return fmt.Errorf("registry: tool %q already registered", t.Name)
	}
	if len(r.slots) >= config.MaxToolSlots {
		return fmt.Errorf("registry: hotbar is full (%d slots), cannot add %q", config.MaxToolSlots, t.Name)
	}
	if t.IsSeed() && t.Crop.MaxStage < 1 {
		return fmt.Errorf("registry: seed tool %q has no crop", t.Name)
	}

	idx := len(r.slots)
	r.slots = append(r.slots, Slot{
		Index: idx,
		Key:   fmt.Sprintf("%d", idx+1),
		Tool:  t,
	})
	r.byName[key] = idx
	return nil
}

// Lookup finds a tool by name, ignoring case.
func (r *Registry) Lookup(name string) (Slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byName[normalize(name)]
	if !ok {
		return Slot{}, false
	}
	return r.slots[idx], true
}

// List returns every slot in hotbar order.
func (r *Registry) List() []Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Tools returns the hotbar tools in order, ready for farm.Config.
func (r *Registry) Tools() []farm.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]farm.Tool, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.Tool
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
