package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/escape/internal/game"
)

// MenuItem is one entry of the main menu.
type MenuItem struct {
	Title  string
	Screen game.Screen
	Quit   bool
}

// MainMenu lists the main menu entries in display order.
var MainMenu = []MenuItem{
	{Title: "Play", Screen: game.ScreenLevelSelect},
	{Title: "Instructions", Screen: game.ScreenInstructions},
	{Title: "Records", Screen: game.ScreenRecords},
	{Title: "Settings", Screen: game.ScreenSettings},
	{Title: "Credits", Screen: game.ScreenCredits},
	{Title: "Quit", Quit: true},
}

// instructions are the pages of the how-to-play pager.
var instructions = []string{
	"Move using the arrow keys or WASD.",
	"For a brief description, hover over an object with your mouse.\nThe description appears in the box at the bottom right.",
	"Click on an object to interact with it.\nYou can pick up some objects by clicking on them,\nor by standing on them and pressing the space bar.",
	"Use an item by clicking on it in the inventory,\nthen click on the object or area to use it on.\nClick the item again to put it back.",
	"Have fun and Escape!",
}

// settings entries
const (
	settingUnlockAll = iota
	settingTheme
	settingBack
	settingCount
)

func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	cursor += delta
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func (m Model) updateMainMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = moveCursor(m.menuCursor, -1, len(MainMenu))
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = moveCursor(m.menuCursor, 1, len(MainMenu))
	case key.Matches(msg, m.keys.Select, m.keys.Interact):
		item := MainMenu[m.menuCursor]
		if item.Quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.show(item.Screen)
	}
	return m, nil
}

func (m Model) viewMainMenu() string {
	t := m.scene.Theme
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("E S C A P E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(t.MenuDescription.Render("Find a way out of every room"), m.width))
	b.WriteString("\n\n")

	for i, item := range MainMenu {
		line := "  " + item.Title
		style := t.MenuItemNormal
		if i == m.menuCursor {
			line = "> " + item.Title
			style = t.MenuItemActive
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) updateLevelSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.engine.LevelCount()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.show(game.ScreenMainMenu)
	case key.Matches(msg, m.keys.Up):
		m.levelCursor = moveCursor(m.levelCursor, -1, n)
	case key.Matches(msg, m.keys.Down):
		m.levelCursor = moveCursor(m.levelCursor, 1, n)
	case key.Matches(msg, m.keys.Select, m.keys.Interact):
		if n > 0 {
			m.startLevel(m.levelCursor + 1)
		}
	}
	return m, nil
}

// startLevel begins play or explains why it could not.
func (m *Model) startLevel(id int) {
	err := m.engine.StartLevel(id)
	switch {
	case err == nil:
		m.notice = ""
		m.showHelp = false
		m.levelCursor = id - 1
	case errors.Is(err, game.ErrLockedLevel):
		m.notice = fmt.Sprintf("Level %d is locked. Complete level %d first.", id, id-1)
	case errors.Is(err, game.ErrLevelLoad):
		m.notice = fmt.Sprintf("Level %d could not be loaded: %v", id, err)
	default:
		m.notice = err.Error()
	}
}

func (m Model) viewLevelSelect() string {
	t := m.scene.Theme
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	levels := m.engine.Snapshot().Levels
	if len(levels) == 0 {
		b.WriteString(centerText(t.MenuDescription.Render("No levels found."), m.width))
		return b.String()
	}
	for i, lv := range levels {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%sLevel %-3d %s", cursor, lv.ID, levelStatus(lv))
		style := t.MenuItemNormal
		switch {
		case !lv.Unlocked:
			style = t.MenuItemLocked
		case i == m.levelCursor:
			style = t.MenuItemActive
		}
		if !lv.Unlocked && i == m.levelCursor {
			style = style.Underline(true)
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func levelStatus(lv game.LevelView) string {
	switch {
	case !lv.Unlocked:
		return "locked"
	case lv.HasRecord:
		return fmt.Sprintf("best %ss by %s", game.FormatTenths(lv.Record.Tenths), lv.Record.Holder)
	}
	return "no record"
}

func (m Model) updateInstructions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.show(game.ScreenMainMenu)
	case key.Matches(msg, m.keys.Left, m.keys.Up):
		m.page = moveCursor(m.page, -1, len(instructions))
	case key.Matches(msg, m.keys.Right, m.keys.Down, m.keys.Select, m.keys.Interact):
		if m.page == len(instructions)-1 && key.Matches(msg, m.keys.Select) {
			m.show(game.ScreenMainMenu)
			return m, nil
		}
		m.page = moveCursor(m.page, 1, len(instructions))
	}
	return m, nil
}

func (m Model) viewInstructions() string {
	t := m.scene.Theme
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("INSTRUCTIONS"), m.width))
	b.WriteString("\n\n")
	for _, line := range strings.Split(instructions[m.page], "\n") {
		b.WriteString(centerText(t.MenuItemNormal.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	pager := fmt.Sprintf("page %d/%d   ←/→ to turn", m.page+1, len(instructions))
	b.WriteString(centerText(t.MenuDescription.Render(pager), m.width))
	return b.String()
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.show(game.ScreenMainMenu)
	case key.Matches(msg, m.keys.Up):
		m.settingsCursor = moveCursor(m.settingsCursor, -1, settingCount)
	case key.Matches(msg, m.keys.Down):
		m.settingsCursor = moveCursor(m.settingsCursor, 1, settingCount)
	case key.Matches(msg, m.keys.Select, m.keys.Interact):
		switch m.settingsCursor {
		case settingUnlockAll:
			if err := m.engine.UnlockAll(); err != nil {
				m.notice = err.Error()
				m.logger.Warn("unlock all failed", "error", err)
				break
			}
			m.notice = "All levels unlocked."
		case settingTheme:
			themes := Themes()
			m.themeIndex = (m.themeIndex + 1) % len(themes)
			m.scene.Theme = themes[m.themeIndex]
			m.notice = "Theme: " + m.scene.Theme.Name
		case settingBack:
			m.show(game.ScreenMainMenu)
		}
	}
	return m, nil
}

func (m Model) viewSettings() string {
	t := m.scene.Theme
	labels := [settingCount]string{
		settingUnlockAll: "Unlock all levels",
		settingTheme:     "Theme: " + t.Name,
		settingBack:      "Back",
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")
	for i, label := range labels {
		line := "  " + label
		style := t.MenuItemNormal
		if i == m.settingsCursor {
			line = "> " + label
			style = t.MenuItemActive
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewCredits() string {
	t := m.scene.Theme
	lines := []string{
		"A point-and-click escape room for the terminal.",
		"",
		"Built with Bubble Tea, Bubbles and Lip Gloss.",
		"Records kept in SQLite.",
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("CREDITS"), m.width))
	b.WriteString("\n\n")
	for _, line := range lines {
		b.WriteString(centerText(t.MenuItemNormal.Render(line), m.width))
		b.WriteString("\n")
	}
	return b.String()
}
