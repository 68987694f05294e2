package loop

import "sync/atomic"

// PauseFlag is a pause switch shared between the loop and whoever feeds
// commands into the simulation. The zero value is running.
type PauseFlag struct {
	v atomic.Bool
}

// Paused reports whether the simulation is paused.
func (p *PauseFlag) Paused() bool { return p.v.Load() }

// Set pauses or resumes.
func (p *PauseFlag) Set(paused bool) { p.v.Store(paused) }

// Toggle flips the flag and returns the new state.
func (p *PauseFlag) Toggle() bool {
	for {
		old := p.v.Load()
		if p.v.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
