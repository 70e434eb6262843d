package core

// Key is a semantic key code delivered to the engine, abstracted from
// physical key presses.
type Key int

const (
	KeyNone     Key = iota
	KeyUp           // Up arrow, W - move up
	KeyDown         // Down arrow, S - move down
	KeyLeft         // Left arrow, A - move left
	KeyRight        // Right arrow, D - move right
	KeyInteract     // Space - pick up whatever the character is standing on
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyInteract:
		return "Interact"
	default:
		return "Unknown"
	}
}

// EventKind identifies the type of an input event.
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerDown
	EventKeyDown
	EventTick
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPointerMove:
		return "PointerMove"
	case EventPointerDown:
		return "PointerDown"
	case EventKeyDown:
		return "KeyDown"
	case EventTick:
		return "Tick"
	default:
		return "Unknown"
	}
}

// Event is a single discrete input event. Only the fields relevant to Kind
// are meaningful: X and Y for pointer events, Key for key events.
type Event struct {
	Kind EventKind
	X, Y int
	Key  Key
}

// PointerMove creates a pointer-move event at world position (x, y).
func PointerMove(x, y int) Event {
	return Event{Kind: EventPointerMove, X: x, Y: y}
}

// PointerDown creates a pointer-down event at world position (x, y).
func PointerDown(x, y int) Event {
	return Event{Kind: EventPointerDown, X: x, Y: y}
}

// KeyPress creates a key-down event.
func KeyPress(k Key) Event {
	return Event{Kind: EventKeyDown, Key: k}
}

// Tick creates a clock tick event.
func Tick() Event {
	return Event{Kind: EventTick}
}

// Point returns the pointer position of the event.
func (e Event) Point() Point {
	return Point{X: e.X, Y: e.Y}
}
