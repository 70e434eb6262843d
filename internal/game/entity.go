// Package game implements the escape-room interaction and progression engine:
// the entity model, collision-constrained movement, the click/hover resolver
// and the level lifecycle.
package game

import (
	"fmt"

	"github.com/vovakirdan/escape/internal/core"
)

// Index sentinels for object cross-references.
const (
	NoIndex   = -1 // No host, no hidden item, or triggers on a bare click
	NotUsable = -2 // Required value for objects that are only picked up
)

// WallName is the object name that is visible from the start regardless of its host.
const WallName = "Wall"

// State is the visual state of an interactive object.
type State int

const (
	StateInitial State = iota
	StateChanged
	StateUsed
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateChanged:
		return "changed"
	case StateUsed:
		return "used"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// DescKind selects which of an object's three descriptions is current.
type DescKind int

const (
	DescHover DescKind = iota
	DescClick
	DescUse
)

func (d DescKind) String() string {
	switch d {
	case DescHover:
		return "hover"
	case DescClick:
		return "click"
	case DescUse:
		return "use"
	default:
		return fmt.Sprintf("DescKind(%d)", int(d))
	}
}

// Direction is the character's facing.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Angle returns the render rotation in degrees (Up=0, clockwise).
func (d Direction) Angle() int {
	return int(d) * 90
}

// Delta returns the unit offset of a move in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// DirectionFromKey maps a movement key to a direction.
func DirectionFromKey(k core.Key) (Direction, bool) {
	switch k {
	case core.KeyUp:
		return DirUp, true
	case core.KeyRight:
		return DirRight, true
	case core.KeyDown:
		return DirDown, true
	case core.KeyLeft:
		return DirLeft, true
	}
	return 0, false
}

// BackgroundObject is static scenery. It is always visible and always blocks.
type BackgroundObject struct {
	Name        string
	Description string
	Image       string
	Rect        core.Rect
}

// InteractiveObject is a level entity that can be clicked, picked up or used on.
type InteractiveObject struct {
	Index        int
	Name         string
	Descriptions [3]string // Indexed by DescKind
	Images       [3]string // Indexed by State
	Rect         core.Rect

	Host       int
	Hidden     int
	Required   int
	Pickupable bool
	Clickable  bool

	Visible bool
	State   State
	Desc    DescKind
}

// Description returns the currently selected description.
func (o *InteractiveObject) Description() string {
	return o.Descriptions[o.Desc]
}

// Image returns the image for the current state, falling back to earlier states
// when a later image is not provided.
func (o *InteractiveObject) Image() string {
	for s := o.State; s >= StateInitial; s-- {
		if o.Images[s] != "" {
			return o.Images[s]
		}
	}
	return ""
}

// Blocks reports whether the object currently stops the character.
func (o *InteractiveObject) Blocks() bool {
	return o.Visible && !o.Pickupable
}

// reveal is the object's trigger step: release a hidden item once, otherwise
// advance a clickable object from Initial to Changed.
func (o *InteractiveObject) reveal(objects []InteractiveObject) {
	if o.Hidden != NoIndex && o.State != StateUsed {
		o.markUsed()
		objects[o.Hidden].Visible = true
		return
	}
	if !o.Clickable {
		return
	}
	if o.State == StateInitial {
		o.State = StateChanged
	}
	if o.State <= StateChanged {
		o.Desc = DescClick
	} else {
		o.Desc = DescHover
	}
}

func (o *InteractiveObject) markUsed() {
	o.State = StateUsed
	o.Desc = DescUse
}

// Character is the player avatar. Its rect and reach are derived from Pos.
type Character struct {
	Pos    core.Point
	Facing Direction

	rect        core.Rect
	reach       core.Rect
	size        core.Point
	reachOffset core.Rect
}

func newCharacter(start core.Point, rules Rules) Character {
	c := Character{Facing: DirUp, size: rules.CharacterSize, reachOffset: rules.Reach}
	c.place(start)
	return c
}

// place moves the character and recomputes both rectangles.
func (c *Character) place(p core.Point) {
	c.Pos = p
	c.rect = core.NewRect(p.X, p.Y, c.size.X, c.size.Y)
	c.reach = core.NewRect(p.X+c.reachOffset.X, p.Y+c.reachOffset.Y, c.reachOffset.W, c.reachOffset.H)
}

// Rect returns the character's footprint.
func (c Character) Rect() core.Rect { return c.rect }

// Reach returns the rectangle within which clicks are in range.
func (c Character) Reach() core.Rect { return c.reach }

// InReach reports whether a point is within interaction range.
func (c Character) InReach(x, y int) bool { return c.reach.Contains(x, y) }

// Record is a per-level best time.
type Record struct {
	Tenths int // Elapsed time in tenths of a second
	Holder string
}

// Seconds returns the time in seconds.
func (r Record) Seconds() float64 {
	return float64(r.Tenths) / 10
}

func (r Record) String() string {
	return fmt.Sprintf("%s %s", FormatTenths(r.Tenths), r.Holder)
}

// FormatTenths renders a tenth-second count with one decimal place.
func FormatTenths(t int) string {
	return fmt.Sprintf("%d.%d", t/10, t%10)
}

// Screen is the top-level screen the engine is showing.
type Screen int

const (
	ScreenMainMenu Screen = iota
	ScreenLevelSelect
	ScreenPlaying
	ScreenLevelComplete
	ScreenInstructions
	ScreenRecords
	ScreenSettings
	ScreenCredits
)

func (s Screen) String() string {
	switch s {
	case ScreenMainMenu:
		return "main_menu"
	case ScreenLevelSelect:
		return "level_select"
	case ScreenPlaying:
		return "playing"
	case ScreenLevelComplete:
		return "level_complete"
	case ScreenInstructions:
		return "instructions"
	case ScreenRecords:
		return "records"
	case ScreenSettings:
		return "settings"
	case ScreenCredits:
		return "credits"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}
