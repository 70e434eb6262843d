package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/escape/internal/core"
)

// Theme contains the visual styles for menus, panels and the scene.
type Theme struct {
	Name string

	// Scene colors by role
	Wall       core.Color
	Scenery    core.Color
	Object     core.Color
	Changed    core.Color
	Used       core.Color
	Item       core.Color
	Selected   core.Color
	Character  core.Color
	Reach      core.Color
	RegionEdge core.Color
	Caption    core.Color

	// Status line
	Status       lipgloss.Style
	StatusPaused lipgloss.Style

	// Menus
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style

	// Panels and overlays
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Notice     lipgloss.Style
	Help       lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		Wall:       core.ColorGray,
		Scenery:    core.ColorBlue,
		Object:     core.ColorCyan,
		Changed:    core.ColorYellow,
		Used:       core.ColorGreen,
		Item:       core.ColorBrightYellow,
		Selected:   core.ColorBrightWhite,
		Character:  core.ColorBrightRed,
		Reach:      core.ColorGray,
		RegionEdge: core.ColorWhite,
		Caption:    core.ColorBrightCyan,

		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("236")),
		StatusPaused: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("236")).Bold(true),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		PanelTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "monochrome"
	theme.Scenery = core.ColorGray
	theme.Object = core.ColorWhite
	theme.Changed = core.ColorWhite
	theme.Used = core.ColorGray
	theme.Item = core.ColorBrightWhite
	theme.Character = core.ColorBrightWhite
	theme.Caption = core.ColorBrightWhite
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)
	return theme
}

// Themes lists the selectable themes in settings order.
func Themes() []Theme {
	return []Theme{DefaultTheme(), MonochromeTheme()}
}
