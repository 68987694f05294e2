// Package tui is the Bubble Tea front end of the farm. It decodes keys into
// session commands, draws snapshots with lipgloss and hosts farms over SSH.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-farm/internal/loop"
)

// FrameMsg is sent when the loop has produced a frame worth drawing.
type FrameMsg struct{}

// waitFrame returns a command that blocks until the loop requests a render
// or done is closed. The model re-arms it after every frame so at most one
// wait is in flight.
func waitFrame(frames *loop.FrameSignal, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-frames.C():
			return FrameMsg{}
		case <-done:
			return nil
		}
	}
}
