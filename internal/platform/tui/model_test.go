package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/records"
)

// testSource serves the same two-object room for every level.
type testSource struct{ count int }

func (s testSource) Count() int { return s.count }

func (s testSource) Load(id int) (game.Descriptor, error) {
	return game.Descriptor{
		ID:          id,
		Description: "A test room.",
		Start:       core.Point{X: 450, Y: 300},
		Terminal:    game.NoIndex,
		Objects: []game.ObjectSpec{
			{
				Name: "Key", Hover: "A key.", Click: "A key.", Use: "A key.",
				Rect: core.NewRect(470, 320, 30, 20),
				Host: game.NoIndex, Hidden: game.NoIndex, Required: game.NotUsable,
				Pickupable: true,
			},
			{
				Name: "Door", Hover: "A door.", Click: "A door.", Use: "It opens.",
				Rect: core.NewRect(600, 300, 40, 100),
				Host: game.NoIndex, Hidden: game.NoIndex, Required: 0,
			},
		},
	}, nil
}

func newTestModel(t *testing.T, levels int) (Model, *game.Engine, *records.Keeper) {
	t.Helper()
	keeper := records.Open(nil, levels, nil)
	rules := game.DefaultRules()
	engine := game.NewEngine(testSource{count: levels}, keeper, rules, nil)
	cfg := core.DefaultConfig()
	cfg.TickInterval = time.Millisecond
	m := NewModel(engine, Options{Rules: rules, Config: cfg})
	return m, engine, keeper
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// clickAt presses the left button over the cell holding world point (x, y).
func clickAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x / 10, Y: y/25 + statusRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func hoverAt(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x / 10, Y: y/25 + statusRows, Action: tea.MouseActionMotion}
}

func TestMainMenuNavigation(t *testing.T) {
	tests := []struct {
		name  string
		downs int
		want  game.Screen
	}{
		{"play", 0, game.ScreenLevelSelect},
		{"instructions", 1, game.ScreenInstructions},
		{"records", 2, game.ScreenRecords},
		{"settings", 3, game.ScreenSettings},
		{"credits", 4, game.ScreenCredits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, engine, _ := newTestModel(t, 2)
			for range tt.downs {
				m = send(m, keyMsg(tea.KeyDown))
			}
			m = send(m, keyMsg(tea.KeyEnter))
			if engine.Screen() != tt.want {
				t.Errorf("Screen() = %v, expected %v", engine.Screen(), tt.want)
			}
			m = send(m, keyMsg(tea.KeyEsc))
			if engine.Screen() != game.ScreenMainMenu {
				t.Errorf("after esc Screen() = %v, expected %v", engine.Screen(), game.ScreenMainMenu)
			}
		})
	}
}

func TestMenuQuit(t *testing.T) {
	m, _, _ := newTestModel(t, 1)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command, expected tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q command produced %T, expected tea.QuitMsg", cmd())
	}
}

func TestLockedLevelShowsNotice(t *testing.T) {
	m, engine, _ := newTestModel(t, 2)
	m = send(m, keyMsg(tea.KeyEnter), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))

	if engine.Screen() != game.ScreenLevelSelect {
		t.Errorf("Screen() = %v, expected %v", engine.Screen(), game.ScreenLevelSelect)
	}
	if !strings.Contains(m.notice, "locked") {
		t.Errorf("notice = %q, expected a locked message", m.notice)
	}
	if !strings.Contains(m.View(), "locked") {
		t.Error("View() does not mention the locked level")
	}
}

func startPlaying(t *testing.T, m Model, engine *game.Engine) Model {
	t.Helper()
	m = send(m, keyMsg(tea.KeyEnter), keyMsg(tea.KeyEnter))
	if engine.Screen() != game.ScreenPlaying {
		t.Fatalf("Screen() = %v, expected %v", engine.Screen(), game.ScreenPlaying)
	}
	return m
}

func TestPlayingKeysMoveCharacter(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		dx, dy int
	}{
		{"arrow right", keyMsg(tea.KeyRight), 10, 0},
		{"arrow up", keyMsg(tea.KeyUp), 0, -10},
		{"a", runes("a"), -10, 0},
		{"s", runes("s"), 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, engine, _ := newTestModel(t, 1)
			m = startPlaying(t, m, engine)
			before := engine.Session().Character().Pos
			send(m, tt.msg)
			after := engine.Session().Character().Pos
			if after.X-before.X != tt.dx || after.Y-before.Y != tt.dy {
				t.Errorf("moved by (%d,%d), expected (%d,%d)", after.X-before.X, after.Y-before.Y, tt.dx, tt.dy)
			}
		})
	}
}

func TestPauseStopsClock(t *testing.T) {
	m, engine, _ := newTestModel(t, 1)
	m = startPlaying(t, m, engine)

	m = send(m, TickMsg(time.Now()), TickMsg(time.Now()))
	if got := engine.Session().Elapsed(); got != 2 {
		t.Fatalf("Elapsed() = %d, expected 2", got)
	}

	m = send(m, runes("p"), TickMsg(time.Now()), runes("d"))
	if !engine.Paused() {
		t.Fatal("Paused() = false after p, expected true")
	}
	if got := engine.Session().Elapsed(); got != 2 {
		t.Errorf("Elapsed() while paused = %d, expected 2", got)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("View() does not show the pause state")
	}

	send(m, runes("p"), TickMsg(time.Now()))
	if got := engine.Session().Elapsed(); got != 3 {
		t.Errorf("Elapsed() after resume = %d, expected 3", got)
	}
}

func TestHoverUpdatesCaption(t *testing.T) {
	m, engine, _ := newTestModel(t, 1)
	m = startPlaying(t, m, engine)
	m = send(m, hoverAt(620, 350))

	snap := engine.Snapshot()
	if snap.FocusName != "Door" || snap.FocusText != "A door." {
		t.Errorf("caption = (%q, %q), expected (%q, %q)", snap.FocusName, snap.FocusText, "Door", "A door.")
	}
	if !strings.Contains(m.View(), "A door.") {
		t.Error("View() does not show the hovered description")
	}
}

func finishLevel(t *testing.T, m Model, engine *game.Engine) Model {
	t.Helper()
	m = startPlaying(t, m, engine)
	m = send(m, clickAt(485, 330), clickAt(65, 560))
	next, cmd := m.Update(clickAt(620, 350))
	m = next.(Model)
	if engine.Screen() != game.ScreenLevelComplete {
		t.Fatalf("Screen() = %v, expected %v", engine.Screen(), game.ScreenLevelComplete)
	}
	if cmd == nil {
		t.Error("completion with a new record returned no command, expected the prompt to focus")
	}
	return m
}

func TestHolderPrompt(t *testing.T) {
	m, engine, keeper := newTestModel(t, 2)
	m = send(m, TickMsg(time.Now()))
	m = finishLevel(t, m, engine)

	if !m.holder.Focused() {
		t.Fatal("holder prompt not focused after a new record")
	}

	m = send(m, keyMsg(tea.KeyEnter))
	if !strings.Contains(m.notice, "characters") {
		t.Errorf("notice after empty name = %q, expected re-prompt", m.notice)
	}
	// q goes to the prompt, not to quit.
	m = send(m, runes("q"), runes("Z"))
	if m.quitting {
		t.Fatal("typing q in the prompt quit the program")
	}
	m = send(m, keyMsg(tea.KeyEnter))

	rec, ok := keeper.Record(1)
	if !ok || rec.Holder != "qZ" {
		t.Errorf("Record(1) = %+v, %v, expected holder %q", rec, ok, "qZ")
	}
	if m.holder.Focused() {
		t.Error("holder prompt still focused after saving")
	}
	if !keeper.IsUnlocked(2) {
		t.Error("IsUnlocked(2) = false after completing level 1, expected true")
	}

	send(m, keyMsg(tea.KeyEnter))
	if engine.Screen() != game.ScreenPlaying || engine.Snapshot().LevelID != 2 {
		t.Errorf("after enter: screen %v level %d, expected level 2 in play", engine.Screen(), engine.Snapshot().LevelID)
	}
}

func TestHolderCharLimit(t *testing.T) {
	m, engine, keeper := newTestModel(t, 1)
	m = finishLevel(t, m, engine)
	m = send(m, runes("ABCDEFG"), keyMsg(tea.KeyEnter))

	rec, ok := keeper.Record(1)
	if !ok || rec.Holder != "ABCDE" {
		t.Errorf("Record(1) = %+v, %v, expected holder %q", rec, ok, "ABCDE")
	}
	if !strings.Contains(m.View(), "last room") {
		t.Error("View() on the final level does not offer the credits")
	}
	send(m, keyMsg(tea.KeyEnter))
	if engine.Screen() != game.ScreenCredits {
		t.Errorf("Screen() = %v, expected %v", engine.Screen(), game.ScreenCredits)
	}
}

func TestEscAbandonsLevel(t *testing.T) {
	m, engine, _ := newTestModel(t, 1)
	m = startPlaying(t, m, engine)
	send(m, keyMsg(tea.KeyEsc))
	if engine.Screen() != game.ScreenMainMenu || engine.Session() != nil {
		t.Errorf("after esc: screen %v session %v, expected main menu and no session", engine.Screen(), engine.Session())
	}
}

func TestSettingsUnlockAll(t *testing.T) {
	m, _, keeper := newTestModel(t, 3)
	m = send(m, keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	m = send(m, keyMsg(tea.KeyEnter))

	for id := 1; id <= 3; id++ {
		if !keeper.IsUnlocked(id) {
			t.Errorf("IsUnlocked(%d) = false after unlock all, expected true", id)
		}
	}
	if m.notice != "All levels unlocked." {
		t.Errorf("notice = %q, expected %q", m.notice, "All levels unlocked.")
	}

	m = send(m, keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	if m.scene.Theme.Name != "monochrome" {
		t.Errorf("theme = %q after toggle, expected %q", m.scene.Theme.Name, "monochrome")
	}
}

func TestInstructionsPager(t *testing.T) {
	m, engine, _ := newTestModel(t, 1)
	m = send(m, keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))

	for page := 1; page < len(instructions); page++ {
		m = send(m, keyMsg(tea.KeyRight))
		if m.page != page {
			t.Fatalf("page = %d, expected %d", m.page, page)
		}
	}
	m = send(m, keyMsg(tea.KeyRight))
	if m.page != len(instructions)-1 {
		t.Errorf("page = %d past the end, expected %d", m.page, len(instructions)-1)
	}
	if !strings.Contains(m.View(), "Have fun and Escape!") {
		t.Error("last page missing its text")
	}
	send(m, keyMsg(tea.KeyEnter))
	if engine.Screen() != game.ScreenMainMenu {
		t.Errorf("Screen() = %v after the last page, expected %v", engine.Screen(), game.ScreenMainMenu)
	}
}

func TestRecordsTable(t *testing.T) {
	m, engine, keeper := newTestModel(t, 2)
	if err := keeper.UpdateRecord(1, game.Record{Tenths: 423, Holder: "ABC"}); err != nil {
		t.Fatalf("UpdateRecord() error = %v", err)
	}
	m = send(m, keyMsg(tea.KeyDown), keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	if engine.Screen() != game.ScreenRecords {
		t.Fatalf("Screen() = %v, expected %v", engine.Screen(), game.ScreenRecords)
	}

	rows := m.records.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, expected 2", len(rows))
	}
	if rows[0][1] != "42.3s" || rows[0][2] != "ABC" {
		t.Errorf("row 1 = %v, expected 42.3s by ABC", rows[0])
	}
	if rows[1][3] != "locked" {
		t.Errorf("row 2 status = %q, expected %q", rows[1][3], "locked")
	}
}

func TestMouseIgnoredOutsidePlay(t *testing.T) {
	m, engine, _ := newTestModel(t, 1)
	send(m, clickAt(620, 350))
	if engine.Screen() != game.ScreenMainMenu {
		t.Errorf("Screen() = %v, expected %v", engine.Screen(), game.ScreenMainMenu)
	}
}
