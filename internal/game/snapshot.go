package game

import "github.com/vovakirdan/escape/internal/core"

// ObjectView is the render state of one background or interactive object.
type ObjectView struct {
	Index      int
	Name       string
	Rect       core.Rect
	Visible    bool
	State      State // Visual index for interactive objects
	Desc       DescKind
	Image      string
	Pickupable bool
	Background bool
}

// InventoryView is one inventory entry as drawn.
type InventoryView struct {
	ObjectIndex int
	Name        string
	Slot        core.Rect
	Image       string
	Selected    bool
}

// CharacterView is the character as drawn.
type CharacterView struct {
	Rect   core.Rect
	Reach  core.Rect
	Facing Direction
	Angle  int
}

// LevelView is the per-level progress shown on the select and records screens.
type LevelView struct {
	ID        int
	Unlocked  bool
	Record    Record
	HasRecord bool
}

// Snapshot is a value copy of everything the presentation layer draws.
type Snapshot struct {
	Screen           Screen
	Paused           bool
	LevelID          int
	LevelDescription string
	Background       string
	Elapsed          int // Tenths of a second
	Character        CharacterView
	Backgrounds      []ObjectView
	Objects          []ObjectView
	Inventory        []InventoryView
	FocusName        string
	FocusText        string
	Message          Message
	PendingRecord    bool
	PendingTenths    int
	Levels           []LevelView
	LevelCount       int
}

// Snapshot captures the current engine state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Screen:     e.screen,
		Paused:     e.paused,
		LevelCount: e.source.Count(),
	}

	for id := 1; id <= snap.LevelCount; id++ {
		rec, ok := e.keeper.Record(id)
		snap.Levels = append(snap.Levels, LevelView{
			ID:        id,
			Unlocked:  e.keeper.IsUnlocked(id),
			Record:    rec,
			HasRecord: ok,
		})
	}

	if e.pending != nil {
		snap.PendingRecord = true
		snap.PendingTenths = e.pending.Tenths
	}

	s := e.session
	if s == nil {
		return snap
	}

	lvl := s.level
	snap.LevelID = lvl.ID
	snap.LevelDescription = lvl.Description
	snap.Background = lvl.Background
	snap.Elapsed = s.elapsed
	snap.Character = CharacterView{
		Rect:   s.character.Rect(),
		Reach:  s.character.Reach(),
		Facing: s.character.Facing,
		Angle:  s.character.Facing.Angle(),
	}

	snap.Backgrounds = make([]ObjectView, len(lvl.Backgrounds))
	for i, b := range lvl.Backgrounds {
		snap.Backgrounds[i] = ObjectView{
			Index:      i,
			Name:       b.Name,
			Rect:       b.Rect,
			Visible:    true,
			Image:      b.Image,
			Background: true,
		}
	}

	snap.Objects = make([]ObjectView, len(lvl.Objects))
	for i := range lvl.Objects {
		o := &lvl.Objects[i]
		snap.Objects[i] = ObjectView{
			Index:      i,
			Name:       o.Name,
			Rect:       o.Rect,
			Visible:    o.Visible,
			State:      o.State,
			Desc:       o.Desc,
			Image:      o.Image(),
			Pickupable: o.Pickupable,
		}
	}

	selected := s.inventory.SelectedIndex()
	for i, entry := range s.inventory.entries {
		snap.Inventory = append(snap.Inventory, InventoryView{
			ObjectIndex: entry.Object.Index,
			Name:        entry.Object.Name,
			Slot:        entry.Slot,
			Image:       entry.Object.Image(),
			Selected:    i == selected,
		})
	}

	snap.FocusName, snap.FocusText = s.Caption()
	snap.Message = s.message
	return snap
}
