package game

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/escape/internal/core"
)

// LevelSource supplies decoded level descriptors by 1-based id.
type LevelSource interface {
	Count() int
	Load(id int) (Descriptor, error)
}

// RecordKeeper stores best times and unlock flags. Level 1 is always unlocked.
type RecordKeeper interface {
	Record(levelID int) (Record, bool)
	UpdateRecord(levelID int, r Record) error
	IsUnlocked(levelID int) bool
	Unlock(levelID int) error
	UnlockAll() error
}

// CompletionRecorder is an optional RecordKeeper extension that logs every finished run.
type CompletionRecorder interface {
	LogCompletion(levelID, tenths int) error
}

// PendingRecord is a new best time waiting for its holder name.
type PendingRecord struct {
	LevelID int
	Tenths  int
}

// Engine owns the screen state, the active session and the record keeper.
// All events must be delivered from a single goroutine.
type Engine struct {
	rules   Rules
	source  LevelSource
	keeper  RecordKeeper
	logger  *log.Logger
	screen  Screen
	session *Session
	paused  bool
	pending *PendingRecord
}

// NewEngine creates an engine showing the main menu. A nil logger discards output.
func NewEngine(source LevelSource, keeper RecordKeeper, rules Rules, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		rules:  rules,
		source: source,
		keeper: keeper,
		logger: logger,
		screen: ScreenMainMenu,
	}
}

// Screen returns the current screen.
func (e *Engine) Screen() Screen { return e.screen }

// Session returns the active session, or nil.
func (e *Engine) Session() *Session { return e.session }

// Paused reports whether play is suspended.
func (e *Engine) Paused() bool { return e.paused }

// Pending returns the record awaiting a holder, if any.
func (e *Engine) Pending() (PendingRecord, bool) {
	if e.pending == nil {
		return PendingRecord{}, false
	}
	return *e.pending, true
}

// LevelCount returns the number of levels in the catalog.
func (e *Engine) LevelCount() int { return e.source.Count() }

// Keeper returns the record keeper.
func (e *Engine) Keeper() RecordKeeper { return e.keeper }

// StartLevel loads level id and begins play. Locked levels and load failures
// leave the engine unchanged.
func (e *Engine) StartLevel(id int) error {
	if id < 1 || id > e.source.Count() {
		return fmt.Errorf("level %d: %w", id, ErrUnknownLevel)
	}
	if !e.keeper.IsUnlocked(id) {
		return fmt.Errorf("level %d: %w", id, ErrLockedLevel)
	}

	desc, err := e.source.Load(id)
	if err != nil {
		lle := AsLevelLoadError(id, err)
		e.logger.Warn("level failed to load", "level", id, "error", lle)
		return lle
	}
	desc.ID = id
	lvl, err := NewLevel(desc)
	if err == nil {
		err = ValidateStart(desc, e.rules.CharacterSize)
	}
	if err != nil {
		e.logger.Warn("level failed validation", "level", id, "error", err)
		return err
	}

	e.session = NewSession(lvl, e.rules)
	e.paused = false
	e.pending = nil
	e.screen = ScreenPlaying
	e.logger.Info("level started", "level", id, "objects", len(lvl.Objects))
	return nil
}

// Dispatch applies one input event. Events outside active play are ignored.
func (e *Engine) Dispatch(ev core.Event) Outcome {
	if e.screen != ScreenPlaying || e.session == nil || e.paused {
		return OutcomeIgnored
	}
	s := e.session

	switch ev.Kind {
	case core.EventTick:
		s.Tick()
		return OutcomeTick
	case core.EventPointerMove:
		return s.Hover(ev.X, ev.Y)
	case core.EventPointerDown:
		out := s.Click(ev.X, ev.Y)
		e.logger.Debug("click", "x", ev.X, "y", ev.Y, "outcome", out)
		if out == OutcomeCompleted {
			e.complete()
		}
		return out
	case core.EventKeyDown:
		if ev.Key == core.KeyInteract {
			if s.PickUpHere() > 0 {
				return OutcomePickedUp
			}
			return OutcomeNone
		}
		dir, ok := DirectionFromKey(ev.Key)
		if !ok {
			return OutcomeIgnored
		}
		if s.Move(dir) {
			return OutcomeMoved
		}
		return OutcomeBlocked
	}
	return OutcomeIgnored
}

// complete freezes the clock, clears the inventory and settles records and unlocks.
func (e *Engine) complete() {
	s := e.session
	id := s.level.ID
	s.inventory.Clear()
	s.focus = Focus{}
	e.screen = ScreenLevelComplete

	rec, ok := e.keeper.Record(id)
	if !ok || s.elapsed < rec.Tenths {
		e.pending = &PendingRecord{LevelID: id, Tenths: s.elapsed}
	}
	e.logger.Info("level complete", "level", id, "time", FormatTenths(s.elapsed), "new_record", e.pending != nil)

	if cr, ok := e.keeper.(CompletionRecorder); ok {
		if err := cr.LogCompletion(id, s.elapsed); err != nil {
			e.logger.Warn("could not log completion", "level", id, "error", err)
		}
	}
	if id < e.source.Count() {
		if err := e.keeper.Unlock(id + 1); err != nil {
			e.logger.Warn("could not persist unlock", "level", id+1, "error", err)
		}
	}
}

// SubmitHolder stores the pending record under name. An invalid name keeps the
// record pending so the caller can ask again.
func (e *Engine) SubmitHolder(name string) error {
	if e.pending == nil {
		return ErrNoPendingRecord
	}
	if err := ValidateHolder(name, e.rules.MaxHolderLen); err != nil {
		return err
	}
	p := *e.pending
	if err := e.keeper.UpdateRecord(p.LevelID, Record{Tenths: p.Tenths, Holder: name}); err != nil {
		return fmt.Errorf("game: cannot update record: %w", err)
	}
	e.pending = nil
	e.logger.Info("record updated", "level", p.LevelID, "time", FormatTenths(p.Tenths), "holder", name)
	return nil
}

// NextLevel starts the level after the one just completed. A pending record
// that was never submitted is dropped.
func (e *Engine) NextLevel() error {
	if e.screen != ScreenLevelComplete || e.session == nil {
		return ErrNoSession
	}
	next := e.session.level.ID + 1
	if next > e.source.Count() {
		return fmt.Errorf("no level after %d: %w", next-1, ErrUnknownLevel)
	}
	return e.StartLevel(next)
}

// Pause suspends ticks and input during play.
func (e *Engine) Pause() {
	if e.screen == ScreenPlaying {
		e.paused = true
	}
}

// Resume continues a paused level.
func (e *Engine) Resume() {
	e.paused = false
}

// Abandon discards the current level and returns to the main menu.
func (e *Engine) Abandon() {
	if e.session != nil {
		e.logger.Info("level abandoned", "level", e.session.level.ID)
	}
	e.session = nil
	e.pending = nil
	e.paused = false
	e.screen = ScreenMainMenu
}

// Show switches to a menu screen, discarding any level in progress.
func (e *Engine) Show(screen Screen) error {
	if screen == ScreenPlaying || screen == ScreenLevelComplete {
		return fmt.Errorf("game: screen %s is entered through the level lifecycle", screen)
	}
	e.session = nil
	e.pending = nil
	e.paused = false
	e.screen = screen
	return nil
}

// UnlockAll unlocks every level.
func (e *Engine) UnlockAll() error {
	if err := e.keeper.UnlockAll(); err != nil {
		return fmt.Errorf("game: cannot unlock levels: %w", err)
	}
	return nil
}

// ValidateHolder accepts 1 to maxLen characters with no whitespace.
func ValidateHolder(name string, maxLen int) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return fmt.Errorf("%w: name is empty", ErrInvalidHolder)
	}
	if n > maxLen {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidHolder, name, maxLen)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidHolder, name)
		}
	}
	return nil
}

