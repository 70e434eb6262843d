package game

// Outcome reports what an input event did.
type Outcome int

const (
	OutcomeIgnored Outcome = iota // Event not applicable on the current screen
	OutcomeNone                   // Legal no-op
	OutcomeHover
	OutcomeOutOfRange
	OutcomeSelected
	OutcomeDeselected
	OutcomeDescribed
	OutcomePickedUp
	OutcomeWrongItem
	OutcomeNothingHere
	OutcomeRevealed
	OutcomeUsed
	OutcomeCompleted
	OutcomeMoved
	OutcomeBlocked
	OutcomeTick
)

var outcomeNames = map[Outcome]string{
	OutcomeIgnored:     "ignored",
	OutcomeNone:        "none",
	OutcomeHover:       "hover",
	OutcomeOutOfRange:  "out_of_range",
	OutcomeSelected:    "selected",
	OutcomeDeselected:  "deselected",
	OutcomeDescribed:   "described",
	OutcomePickedUp:    "picked_up",
	OutcomeWrongItem:   "wrong_item",
	OutcomeNothingHere: "nothing_here",
	OutcomeRevealed:    "revealed",
	OutcomeUsed:        "used",
	OutcomeCompleted:   "completed",
	OutcomeMoved:       "moved",
	OutcomeBlocked:     "blocked",
	OutcomeTick:        "tick",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}

// targetAt resolves the play-region target under a point.
// Priority: background objects, then visible interactive objects in reverse index order.
func (s *Session) targetAt(x, y int) Focus {
	for i := range s.level.Backgrounds {
		if s.level.Backgrounds[i].Rect.Contains(x, y) {
			return Focus{Kind: FocusBackground, Index: i}
		}
	}
	for i := len(s.level.Objects) - 1; i >= 0; i-- {
		o := &s.level.Objects[i]
		if o.Visible && o.Rect.Contains(x, y) {
			return Focus{Kind: FocusObject, Index: i}
		}
	}
	return Focus{}
}

// Hover updates the focus for a pointer at (x, y).
// Priority: background > interactive (reverse index) > inventory > character > none.
func (s *Session) Hover(x, y int) Outcome {
	s.clearMessage(MsgOutOfRange, MsgNothingHappens)

	var next Focus
	switch {
	case s.rules.Play.Contains(x, y):
		next = s.targetAt(x, y)
	case s.rules.Inventory.Contains(x, y):
		if i, ok := s.inventory.EntryAt(x, y); ok {
			next = Focus{Kind: FocusInventory, Index: i}
		}
	}
	if next.Kind == FocusNone && s.character.Rect().Contains(x, y) {
		next = Focus{Kind: FocusCharacter}
	}

	if next.Kind == FocusObject {
		s.level.Objects[next.Index].Desc = DescHover
	}
	if next != s.focus {
		s.clearMessage(MsgUsed)
	}
	s.focus = next
	return OutcomeHover
}

// Click resolves a pointer press at (x, y) by screen region.
func (s *Session) Click(x, y int) Outcome {
	switch {
	case s.rules.Inventory.Contains(x, y):
		return s.clickInventory(x, y)
	case s.rules.Description.Contains(x, y):
		s.clearMessage(MsgOutOfRange)
		return OutcomeNone
	case s.rules.Play.Contains(x, y):
		if !s.character.InReach(x, y) {
			s.message = Message{Kind: MsgOutOfRange}
			return OutcomeOutOfRange
		}
		return s.clickInReach(x, y)
	}
	return OutcomeNone
}

func (s *Session) clickInventory(x, y int) Outcome {
	i, ok := s.inventory.EntryAt(x, y)
	if !ok {
		return OutcomeNone
	}
	if s.inventory.SelectedIndex() == i {
		s.inventory.Deselect()
		return OutcomeDeselected
	}
	s.inventory.Select(i)
	s.focus = Focus{Kind: FocusInventory, Index: i}
	return OutcomeSelected
}

func (s *Session) clickInReach(x, y int) Outcome {
	s.message = Message{}
	selected, hasSelection := s.inventory.Selected()
	target := s.targetAt(x, y)

	switch target.Kind {
	case FocusNone:
		if hasSelection {
			s.wrongItem()
			return OutcomeNothingHere
		}
		return OutcomeNone
	case FocusBackground:
		s.focus = target
		if hasSelection {
			s.wrongItem()
			return OutcomeWrongItem
		}
		return OutcomeDescribed
	}

	obj := &s.level.Objects[target.Index]
	s.focus = target

	switch {
	case obj.Pickupable:
		s.pickUp(obj)
		return OutcomePickedUp
	case hasSelection && obj.State != StateUsed && obj.Required == selected.Index:
		s.inventory.Remove(s.inventory.SelectedIndex())
		obj.reveal(s.level.Objects)
		obj.markUsed()
		s.message = Message{Kind: MsgUsed, Text: obj.Description()}
		if obj.Index == s.level.Terminal {
			s.completed = true
			return OutcomeCompleted
		}
		return OutcomeUsed
	case hasSelection:
		s.wrongItem()
		return OutcomeWrongItem
	case obj.Required == NoIndex:
		obj.reveal(s.level.Objects)
		return OutcomeRevealed
	}
	return OutcomeNone
}

func (s *Session) wrongItem() {
	s.inventory.Deselect()
	s.message = Message{Kind: MsgNothingHappens}
}
