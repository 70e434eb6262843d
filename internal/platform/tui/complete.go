package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/escape/internal/game"
)

// enterComplete prepares the level complete screen. A new best time opens
// the holder prompt.
func (m *Model) enterComplete() tea.Cmd {
	m.holder.Reset()
	m.notice = ""
	m.showHelp = false
	if _, ok := m.engine.Pending(); !ok {
		m.holder.Blur()
		return nil
	}
	return tea.Batch(m.holder.Focus(), textinput.Blink)
}

// updateHolder feeds the prompt until a valid name is submitted.
func (m Model) updateHolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.holder.Value())
		err := m.engine.SubmitHolder(name)
		switch {
		case err == nil:
			m.holder.Blur()
			m.notice = "Record saved."
		case errors.Is(err, game.ErrInvalidHolder):
			m.notice = fmt.Sprintf("Enter 1 to %d characters with no spaces.", m.holder.CharLimit)
			m.holder.Reset()
		default:
			m.notice = err.Error()
			m.logger.Error("could not save record", "error", err)
			m.holder.Blur()
		}
		return m, nil
	case tea.KeyEsc:
		m.holder.Blur()
		m.notice = "Record not saved."
		return m, nil
	}

	var cmd tea.Cmd
	m.holder, cmd = m.holder.Update(msg)
	return m, cmd
}

func (m Model) updateComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.engine.Abandon()
		m.notice = ""
	case key.Matches(msg, m.keys.Select, m.keys.Interact):
		snap := m.engine.Snapshot()
		if snap.LevelID >= snap.LevelCount {
			m.show(game.ScreenCredits)
			return m, nil
		}
		if err := m.engine.NextLevel(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.notice = ""
	}
	return m, nil
}

func (m Model) viewComplete() string {
	t := m.scene.Theme
	snap := m.engine.Snapshot()

	var b strings.Builder
	b.WriteString(t.PanelTitle.Render(fmt.Sprintf("LEVEL %d COMPLETE", snap.LevelID)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Time: %ss\n", game.FormatTenths(snap.Elapsed))

	if snap.LevelID > 0 && snap.LevelID <= len(snap.Levels) {
		if lv := snap.Levels[snap.LevelID-1]; lv.HasRecord {
			fmt.Fprintf(&b, "Record: %ss by %s\n", game.FormatTenths(lv.Record.Tenths), lv.Record.Holder)
		}
	}

	b.WriteString("\n")
	switch {
	case m.holder.Focused():
		b.WriteString("New record! Enter your name:\n")
		b.WriteString(m.holder.View())
		b.WriteString("\n\nenter: save   esc: skip")
	case snap.LevelID >= snap.LevelCount:
		b.WriteString("That was the last room.\n\nenter: credits   esc: main menu")
	default:
		b.WriteString("enter: next level   esc: main menu")
	}

	return "\n\n" + centerText(t.Panel.Render(b.String()), m.width)
}
