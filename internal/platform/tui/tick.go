// Package tui provides the Bubble Tea integration for the gridpath tools.
// It handles the terminal UI loop, input mapping, and search visualization.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger an autoplay search step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the given interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
