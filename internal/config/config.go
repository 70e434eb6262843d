// Package config provides YAML-based configuration loading for the escape
// engine and its terminal shell.
package config

import "fmt"

// EscapeConfig contains all tunable rules and layout for the game.
type EscapeConfig struct {
	Movement  MovementConfig  `yaml:"movement"`
	Character CharacterConfig `yaml:"character"`
	Layout    LayoutConfig    `yaml:"layout"`
	Records   RecordsConfig   `yaml:"records"`
	Terminal  TerminalConfig  `yaml:"terminal"`
}

// MovementConfig defines character movement.
type MovementConfig struct {
	Step int `yaml:"step"` // World units per key press
}

// CharacterConfig defines the character footprint and reach.
type CharacterConfig struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Reach  ReachConfig `yaml:"reach"`
}

// ReachConfig places the reach rectangle relative to the character's top-left corner.
type ReachConfig struct {
	OffsetX int `yaml:"offset_x"`
	OffsetY int `yaml:"offset_y"`
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
}

// RectConfig is a rectangle in world units.
type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// LayoutConfig defines the screen regions used by click dispatch.
type LayoutConfig struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Play        RectConfig `yaml:"play"`
	Inventory   RectConfig `yaml:"inventory"`
	Description RectConfig `yaml:"description"`
	Slots       SlotConfig `yaml:"slots"`
}

// SlotConfig positions inventory entries: slot i sits at (OriginX + i*Spacing, OriginY).
type SlotConfig struct {
	OriginX int `yaml:"origin_x"`
	OriginY int `yaml:"origin_y"`
	Spacing int `yaml:"spacing"`
}

// HolderLimit is the longest holder name any configuration may allow.
const HolderLimit = 5

// RecordsConfig defines record holder constraints.
type RecordsConfig struct {
	MaxHolderLen int `yaml:"max_holder_len"`
}

// TerminalConfig defines how world units map onto terminal cells.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// Validate checks that every size and step is usable.
func (c EscapeConfig) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"movement.step", c.Movement.Step},
		{"character.width", c.Character.Width},
		{"character.height", c.Character.Height},
		{"character.reach.width", c.Character.Reach.Width},
		{"character.reach.height", c.Character.Reach.Height},
		{"layout.width", c.Layout.Width},
		{"layout.height", c.Layout.Height},
		{"layout.play.w", c.Layout.Play.W},
		{"layout.play.h", c.Layout.Play.H},
		{"layout.inventory.w", c.Layout.Inventory.W},
		{"layout.inventory.h", c.Layout.Inventory.H},
		{"layout.slots.spacing", c.Layout.Slots.Spacing},
		{"records.max_holder_len", c.Records.MaxHolderLen},
		{"terminal.cell_width", c.Terminal.CellWidth},
		{"terminal.cell_height", c.Terminal.CellHeight},
	}
	for _, chk := range checks {
		if chk.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", chk.name, chk.value)
		}
	}
	if c.Records.MaxHolderLen > HolderLimit {
		return fmt.Errorf("config: records.max_holder_len must be at most %d, got %d", HolderLimit, c.Records.MaxHolderLen)
	}
	return nil
}
