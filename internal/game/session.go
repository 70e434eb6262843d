package game

import "github.com/vovakirdan/escape/internal/core"

// MessageKind is the last action message shown in the description area.
type MessageKind int

const (
	MsgNone MessageKind = iota
	MsgOutOfRange
	MsgNothingHappens
	MsgUsed
)

// Fixed message texts.
const (
	TextOutOfRange     = "Out of range..."
	TextNothingHappens = "Nothing interesting happens..."
	TextYou            = "You"
)

// Message is the last action message.
type Message struct {
	Kind MessageKind
	Text string
}

// FocusKind is what the pointer last hovered or clicked.
type FocusKind int

const (
	FocusNone FocusKind = iota
	FocusBackground
	FocusObject
	FocusInventory
	FocusCharacter
)

// Focus identifies the current hovered or clicked thing. Index is into the
// background list, the object arena or the inventory depending on Kind.
type Focus struct {
	Kind  FocusKind
	Index int
}

// Session is the play state of one loaded level.
type Session struct {
	rules     Rules
	level     *Level
	character Character
	inventory Inventory
	focus     Focus
	message   Message
	elapsed   int
	completed bool
}

// NewSession starts play on a freshly built level.
func NewSession(lvl *Level, rules Rules) *Session {
	return &Session{
		rules:     rules,
		level:     lvl,
		character: newCharacter(lvl.Start, rules),
		inventory: newInventory(rules),
	}
}

// Level returns the level being played.
func (s *Session) Level() *Level { return s.level }

// Character returns a copy of the character.
func (s *Session) Character() Character { return s.character }

// Inventory returns the session inventory.
func (s *Session) Inventory() *Inventory { return &s.inventory }

// Message returns the last action message.
func (s *Session) Message() Message { return s.message }

// Focus returns the current focus.
func (s *Session) Focus() Focus { return s.focus }

// Elapsed returns the elapsed time in ticks.
func (s *Session) Elapsed() int { return s.elapsed }

// Completed reports whether the terminal object has been used.
func (s *Session) Completed() bool { return s.completed }

// Tick advances the clock unless the level is complete.
func (s *Session) Tick() {
	if !s.completed {
		s.elapsed++
	}
}

// Caption returns the focus name and text for the description area.
// Action messages take precedence over the focused description.
func (s *Session) Caption() (name, text string) {
	switch s.focus.Kind {
	case FocusBackground:
		b := s.level.Backgrounds[s.focus.Index]
		name, text = b.Name, b.Description
	case FocusObject:
		o := &s.level.Objects[s.focus.Index]
		name, text = o.Name, o.Description()
	case FocusInventory:
		if s.focus.Index < s.inventory.Len() {
			o := s.inventory.entries[s.focus.Index].Object
			name, text = o.Name, o.Description()
		}
	case FocusCharacter:
		name = TextYou
	}

	switch s.message.Kind {
	case MsgOutOfRange:
		text = TextOutOfRange
	case MsgNothingHappens:
		text = TextNothingHappens
	case MsgUsed:
		text = s.message.Text
	}
	return name, text
}

func (s *Session) clearMessage(kinds ...MessageKind) {
	for _, k := range kinds {
		if s.message.Kind == k {
			s.message = Message{}
			return
		}
	}
}

// Move attempts one step in dir. The facing always changes; the position
// changes only when the candidate rect is clear of every blocker.
func (s *Session) Move(dir Direction) bool {
	s.character.Facing = dir
	dx, dy := dir.Delta()
	candidate := core.Point{
		X: s.character.Pos.X + dx*s.rules.Step,
		Y: s.character.Pos.Y + dy*s.rules.Step,
	}
	rect := core.NewRect(candidate.X, candidate.Y, s.rules.CharacterSize.X, s.rules.CharacterSize.Y)
	if s.blocked(rect) {
		return false
	}
	s.character.place(candidate)
	if s.focus.Kind == FocusCharacter {
		s.focus = Focus{}
	}
	return true
}

func (s *Session) blocked(r core.Rect) bool {
	for i := range s.level.Backgrounds {
		if r.Intersects(s.level.Backgrounds[i].Rect) {
			return true
		}
	}
	for i := range s.level.Objects {
		o := &s.level.Objects[i]
		if o.Blocks() && r.Intersects(o.Rect) {
			return true
		}
	}
	return false
}

// PickUpHere moves every visible pickupable object lying fully under the
// character into the inventory, in index order. It returns how many were taken.
func (s *Session) PickUpHere() int {
	taken := 0
	char := s.character.Rect()
	for i := range s.level.Objects {
		o := &s.level.Objects[i]
		if o.Visible && o.Pickupable && char.ContainsRect(o.Rect) {
			s.pickUp(o)
			taken++
		}
	}
	return taken
}

func (s *Session) pickUp(o *InteractiveObject) {
	s.inventory.Add(o)
	o.Visible = false
	s.focus = Focus{}
}
