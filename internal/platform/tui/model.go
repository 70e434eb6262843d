package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
)

// statusRows is the number of terminal rows above the scene.
const statusRows = 1

// Options configures the shell.
type Options struct {
	Rules  game.Rules
	Config core.RuntimeConfig
	Theme  Theme
	Logger *log.Logger

	// ScreenshotDir receives ctrl+s captures; empty disables them.
	ScreenshotDir string
}

// Model is the Bubble Tea model driving one engine.
// It is the only goroutine that touches the engine.
type Model struct {
	engine *game.Engine
	scene  Scene
	screen *core.Screen
	keys   KeyMap
	help   help.Model
	logger *log.Logger
	shots  string

	menuCursor     int
	levelCursor    int
	settingsCursor int
	themeIndex     int
	page           int
	records        table.Model
	holder         textinput.Model
	notice         string
	showHelp       bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a model around engine. The engine may already be playing.
func NewModel(engine *game.Engine, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Theme.Name == "" {
		opts.Theme = DefaultTheme()
	}
	if opts.Config.CellW <= 0 || opts.Config.CellH <= 0 {
		def := core.DefaultConfig()
		opts.Config.CellW, opts.Config.CellH = def.CellW, def.CellH
	}
	if opts.Config.TickInterval <= 0 {
		opts.Config.TickInterval = core.DefaultConfig().TickInterval
	}

	scene := Scene{Rules: opts.Rules, Config: opts.Config, Theme: opts.Theme}
	w, h := scene.Size()

	holder := textinput.New()
	holder.Placeholder = "name"
	holder.CharLimit = opts.Rules.MaxHolderLen
	holder.Width = opts.Rules.MaxHolderLen + 1

	m := Model{
		engine: engine,
		scene:  scene,
		screen: core.NewScreen(w, h),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: opts.Logger,
		shots:  opts.ScreenshotDir,
		holder: holder,
		width:  opts.Config.ScreenW,
		height: opts.Config.ScreenH,
	}
	for i, t := range Themes() {
		if t.Name == opts.Theme.Name {
			m.themeIndex = i
		}
	}
	m.records = newRecordsTable(engine.Snapshot().Levels, m.scene.Theme)
	return m
}

// Init starts the clock.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.scene.Config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.engine.Dispatch(core.Tick())
		return m, tickCmd(m.scene.Config.TickInterval)
	}

	if m.engine.Screen() == game.ScreenLevelComplete && m.holder.Focused() {
		var cmd tea.Cmd
		m.holder, cmd = m.holder.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The holder prompt takes every key, q included.
	if m.engine.Screen() == game.ScreenLevelComplete && m.holder.Focused() {
		return m.updateHolder(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.engine.Screen() {
	case game.ScreenPlaying:
		return m.updatePlaying(msg)
	case game.ScreenLevelComplete:
		return m.updateComplete(msg)
	case game.ScreenMainMenu:
		return m.updateMainMenu(msg)
	case game.ScreenLevelSelect:
		return m.updateLevelSelect(msg)
	case game.ScreenInstructions:
		return m.updateInstructions(msg)
	case game.ScreenRecords:
		return m.updateRecords(msg)
	case game.ScreenSettings:
		return m.updateSettings(msg)
	case game.ScreenCredits:
		if key.Matches(msg, m.keys.Back, m.keys.Select) {
			m.show(game.ScreenMainMenu)
		}
	}
	return m, nil
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		if m.engine.Paused() {
			m.engine.Resume()
		} else {
			m.engine.Pause()
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.engine.Abandon()
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.Snapshot):
		m.saveScreenshot()
		return m, nil
	}

	if k, ok := m.keys.MapKey(msg); ok {
		m.engine.Dispatch(core.KeyPress(k))
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.engine.Screen() != game.ScreenPlaying {
		return m, nil
	}
	row := msg.Y - statusRows
	if row < 0 || msg.X < 0 {
		return m, nil
	}
	p := m.scene.Config.ToWorld(msg.X, row)

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.engine.Dispatch(core.PointerMove(p.X, p.Y))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.engine.Dispatch(core.PointerDown(p.X, p.Y)) == game.OutcomeCompleted {
			cmd := m.enterComplete()
			return m, cmd
		}
	}
	return m, nil
}

// saveScreenshot writes the current scene as plain text.
func (m *Model) saveScreenshot() {
	if m.shots == "" {
		return
	}
	m.scene.Draw(m.screen, m.engine.Snapshot())
	if err := os.MkdirAll(m.shots, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.shots, "error", err)
		return
	}
	name := fmt.Sprintf("level%d_%s.txt", m.engine.Snapshot().LevelID, time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shots, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// show switches to a menu screen and refreshes what that screen lists.
func (m *Model) show(screen game.Screen) {
	if err := m.engine.Show(screen); err != nil {
		m.logger.Error("cannot show screen", "screen", screen, "error", err)
		return
	}
	m.notice = ""
	switch screen {
	case game.ScreenRecords:
		m.records = newRecordsTable(m.engine.Snapshot().Levels, m.scene.Theme)
	case game.ScreenInstructions:
		m.page = 0
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.engine.Screen() {
	case game.ScreenPlaying:
		return m.viewPlaying()
	case game.ScreenLevelComplete:
		body = m.viewComplete()
	case game.ScreenMainMenu:
		body = m.viewMainMenu()
	case game.ScreenLevelSelect:
		body = m.viewLevelSelect()
	case game.ScreenInstructions:
		body = m.viewInstructions()
	case game.ScreenRecords:
		body = m.viewRecords()
	case game.ScreenSettings:
		body = m.viewSettings()
	case game.ScreenCredits:
		body = m.viewCredits()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(centerText(m.scene.Theme.Notice.Render(m.notice), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(m.scene.Theme.Help.Render(m.help.View(MenuHelp{m.keys})), m.width))
	return b.String()
}

func (m Model) viewPlaying() string {
	snap := m.engine.Snapshot()
	m.scene.Draw(m.screen, snap)

	status := fmt.Sprintf(" Level %d   %s s ", snap.LevelID, game.FormatTenths(snap.Elapsed))
	style := m.scene.Theme.Status
	if snap.Paused {
		status += "  PAUSED (p to resume) "
		style = m.scene.Theme.StatusPaused
	}
	if pad := m.screen.Width() - len([]rune(status)); pad > 0 {
		status += strings.Repeat(" ", pad)
	}

	var b strings.Builder
	b.WriteString(style.Render(status))
	b.WriteString("\n")
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.showHelp {
		m.help.ShowAll = true
	}
	b.WriteString(m.scene.Theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program around engine.
func Run(engine *game.Engine, opts Options) error {
	p := tea.NewProgram(
		NewModel(engine, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
