package config

import (
	_ "embed"
)

//go:embed defaults/escape.yaml
var defaultEscapeYAML []byte

// DefaultConfig returns the built-in configuration for a 1000x700 world.
func DefaultConfig() EscapeConfig {
	return EscapeConfig{
		Movement: MovementConfig{
			Step: 10,
		},
		Character: CharacterConfig{
			Width:  90,
			Height: 90,
			Reach: ReachConfig{
				OffsetX: -120,
				OffsetY: -120,
				Width:   300,
				Height:  300,
			},
		},
		Layout: LayoutConfig{
			Width:       1000,
			Height:      700,
			Play:        RectConfig{X: 0, Y: 0, W: 1000, H: 500},
			Inventory:   RectConfig{X: 0, Y: 500, W: 500, H: 200},
			Description: RectConfig{X: 500, Y: 500, W: 500, H: 200},
			Slots: SlotConfig{
				OriginX: 50,
				OriginY: 550,
				Spacing: 50,
			},
		},
		Records: RecordsConfig{
			MaxHolderLen: 5,
		},
		Terminal: TerminalConfig{
			CellWidth:  10,
			CellHeight: 25,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultEscapeYAML
}
