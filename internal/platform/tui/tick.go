// Package tui is the Bubble Tea shell around the escape room engine.
// It maps terminal input to engine events and draws engine snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per clock tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that fires after one tick interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
