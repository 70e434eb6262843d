package game

import (
	"time"

	"github.com/vovakirdan/escape/internal/config"
	"github.com/vovakirdan/escape/internal/core"
)

// TickInterval is the wall time of one clock tick. Elapsed time and records
// count ticks as tenths of a second.
const TickInterval = 100 * time.Millisecond

// Rules holds the fixed tunables the engine consults while playing.
type Rules struct {
	Step          int       // World units per move
	CharacterSize core.Point
	Reach         core.Rect // Offset and size relative to the character's top-left corner
	Play          core.Rect
	Inventory     core.Rect
	Description   core.Rect
	SlotOrigin    core.Point
	SlotSpacing   int
	MaxHolderLen  int
}

// RulesFromConfig converts the YAML configuration into engine rules.
func RulesFromConfig(cfg config.EscapeConfig) Rules {
	rect := func(r config.RectConfig) core.Rect {
		return core.NewRect(r.X, r.Y, r.W, r.H)
	}
	return Rules{
		Step:          cfg.Movement.Step,
		CharacterSize: core.Point{X: cfg.Character.Width, Y: cfg.Character.Height},
		Reach: core.NewRect(
			cfg.Character.Reach.OffsetX,
			cfg.Character.Reach.OffsetY,
			cfg.Character.Reach.Width,
			cfg.Character.Reach.Height,
		),
		Play:         rect(cfg.Layout.Play),
		Inventory:    rect(cfg.Layout.Inventory),
		Description:  rect(cfg.Layout.Description),
		SlotOrigin:   core.Point{X: cfg.Layout.Slots.OriginX, Y: cfg.Layout.Slots.OriginY},
		SlotSpacing:  cfg.Layout.Slots.Spacing,
		MaxHolderLen: cfg.Records.MaxHolderLen,
	}
}

// DefaultRules returns the rules for the built-in configuration.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultConfig())
}

// slot returns the display rectangle of the i-th inventory entry for an item of the given size.
func (r Rules) slot(i int, size core.Rect) core.Rect {
	return core.NewRect(r.SlotOrigin.X+i*r.SlotSpacing, r.SlotOrigin.Y, size.W, size.H)
}
