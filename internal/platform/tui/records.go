package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/escape/internal/game"
)

// recordsTableHeight caps the visible rows of the records table.
const recordsTableHeight = 12

// newRecordsTable builds the records table. Locked levels hide their record.
func newRecordsTable(levels []game.LevelView, theme Theme) table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 7},
		{Title: "Time", Width: 10},
		{Title: "Holder", Width: 8},
		{Title: "Status", Width: 10},
	}

	rows := make([]table.Row, 0, len(levels))
	for _, lv := range levels {
		row := table.Row{fmt.Sprintf("%d", lv.ID), "-", "-", "unlocked"}
		switch {
		case !lv.Unlocked:
			row[3] = "locked"
		case lv.HasRecord:
			row[1] = game.FormatTenths(lv.Record.Tenths) + "s"
			row[2] = lv.Record.Holder
		}
		rows = append(rows, row)
	}

	height := len(rows) + 1
	if height > recordsTableHeight {
		height = recordsTableHeight
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m Model) updateRecords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back, m.keys.Select) {
		m.show(game.ScreenMainMenu)
		return m, nil
	}
	var cmd tea.Cmd
	m.records, cmd = m.records.Update(msg)
	return m, cmd
}

func (m Model) viewRecords() string {
	t := m.scene.Theme
	title := centerText(t.MenuTitle.Render("RECORDS"), m.width)
	if len(m.records.Rows()) == 0 {
		empty := t.MenuDescription.Italic(true).Padding(2, 4).Render("No levels found.")
		return "\n" + title + "\n\n" + centerText(empty, m.width)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.records.View())
	return "\n" + title + "\n\n" + centerText(box, m.width)
}
