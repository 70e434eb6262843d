package tui

import (
	"unicode/utf8"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
)

// Scene draws engine snapshots into a cell buffer at a fixed world scale.
type Scene struct {
	Rules  game.Rules
	Config core.RuntimeConfig
	Theme  Theme
}

// Size returns the cell dimensions needed to show the whole world.
func (sc Scene) Size() (int, int) {
	full := core.NewRect(0, 0, sc.Rules.Play.W, sc.Rules.Play.H+sc.Rules.Inventory.H)
	cells := sc.Config.ToCells(full)
	return cells.W, cells.H
}

// Draw renders the play, inventory and description regions of snap.
func (sc Scene) Draw(s *core.Screen, snap game.Snapshot) {
	s.Clear()

	for _, b := range snap.Backgrounds {
		sc.drawScenery(s, b)
	}
	for _, o := range snap.Objects {
		if o.Visible {
			sc.drawObject(s, o)
		}
	}

	sc.drawCharacter(s, snap.Character)
	sc.drawInventory(s, snap.Inventory)
	sc.drawDescription(s, snap)

	if snap.Paused {
		play := sc.Config.ToCells(sc.Rules.Play)
		label := " PAUSED "
		box := core.NewRect(play.X+(play.W-len(label)-2)/2, play.Y+play.H/2-1, len(label)+2, 3)
		s.DrawRect(box, ' ', core.ColorDefault)
		s.DrawBox(box, sc.Theme.Changed)
		s.DrawText(box.X+1, box.Y+1, label, sc.Theme.Changed)
	}
}

func (sc Scene) drawScenery(s *core.Screen, b game.ObjectView) {
	r := sc.Config.ToCells(b.Rect)
	if r.W < 3 || r.H < 3 {
		s.DrawRect(r, '█', sc.Theme.Wall)
		return
	}
	s.DrawBox(r, sc.Theme.Scenery)
	drawLabel(s, r, b.Name, sc.Theme.Scenery)
}

func (sc Scene) drawObject(s *core.Screen, o game.ObjectView) {
	r := sc.Config.ToCells(o.Rect)
	if o.Name == game.WallName {
		s.DrawRect(r, '█', sc.Theme.Wall)
		return
	}

	c := sc.objectColor(o)
	if r.W < 3 || r.H < 3 {
		s.DrawRect(r, '▒', c)
		s.DrawText(r.X, r.Y, initial(o.Name), c)
		return
	}
	s.DrawBox(r, c)
	drawLabel(s, r, o.Name, c)
}

func (sc Scene) objectColor(o game.ObjectView) core.Color {
	if o.Pickupable {
		return sc.Theme.Item
	}
	switch o.State {
	case game.StateChanged:
		return sc.Theme.Changed
	case game.StateUsed:
		return sc.Theme.Used
	}
	return sc.Theme.Object
}

func (sc Scene) drawCharacter(s *core.Screen, c game.CharacterView) {
	play := sc.Config.ToCells(sc.Rules.Play)
	reach := sc.Config.ToCells(c.Reach)
	for _, p := range []core.Point{
		{X: reach.X, Y: reach.Y},
		{X: reach.Right() - 1, Y: reach.Y},
		{X: reach.X, Y: reach.Bottom() - 1},
		{X: reach.Right() - 1, Y: reach.Bottom() - 1},
	} {
		if play.ContainsPoint(p) && s.Get(p.X, p.Y) == ' ' {
			s.SetColored(p.X, p.Y, '·', sc.Theme.Reach)
		}
	}

	r := sc.Config.ToCells(c.Rect)
	s.DrawRect(r, ' ', core.ColorDefault)
	s.DrawBox(r, sc.Theme.Character)
	cx, cy := r.Center()
	s.SetColored(cx, cy, facingGlyph(c.Facing), sc.Theme.Character)
}

func (sc Scene) drawInventory(s *core.Screen, items []game.InventoryView) {
	region := sc.Config.ToCells(sc.Rules.Inventory)
	s.DrawBox(region, sc.Theme.RegionEdge)
	s.DrawText(region.X+2, region.Y, " Inventory ", sc.Theme.RegionEdge)

	for _, it := range items {
		r := sc.Config.ToCells(it.Slot)
		c := sc.Theme.Item
		if it.Selected {
			c = sc.Theme.Selected
			s.SetColored(r.X-1, r.Y, '[', c)
			s.SetColored(r.Right(), r.Y, ']', c)
		}
		s.DrawRect(r, '▒', c)
		s.DrawText(r.X, r.Y, initial(it.Name), c)
	}
}

func (sc Scene) drawDescription(s *core.Screen, snap game.Snapshot) {
	region := sc.Config.ToCells(sc.Rules.Description)
	s.DrawBox(region, sc.Theme.RegionEdge)
	s.DrawText(region.X+2, region.Y, " Description ", sc.Theme.RegionEdge)

	x, y := region.X+2, region.Y+1
	width := region.W - 4
	last := region.Bottom() - 1

	name, text := snap.FocusName, snap.FocusText
	textColor := core.ColorWhite
	if name == "" && text == "" {
		text = snap.LevelDescription
		textColor = sc.Theme.Reach
	}
	if name != "" {
		s.DrawText(x, y, truncate(name, width), sc.Theme.Caption)
		y++
	}
	for _, line := range wrapText(text, width) {
		if y >= last {
			break
		}
		s.DrawText(x, y, line, textColor)
		y++
	}
}

// drawLabel writes name on the middle row of a boxed rect.
func drawLabel(s *core.Screen, r core.Rect, name string, c core.Color) {
	label := truncate(name, r.W-2)
	n := utf8.RuneCountInString(label)
	s.DrawText(r.X+1+(r.W-2-n)/2, r.Y+r.H/2, label, c)
}

func facingGlyph(d game.Direction) rune {
	switch d {
	case game.DirUp:
		return '^'
	case game.DirRight:
		return '>'
	case game.DirDown:
		return 'v'
	default:
		return '<'
	}
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(r)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n == 1 {
		return string(runes[:1])
	}
	return string(runes[:n-1]) + "…"
}
