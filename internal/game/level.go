package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/escape/internal/core"
)

// Descriptor is a decoded level file. Sizes must already be resolved.
type Descriptor struct {
	ID          int
	Description string
	Background  string
	Start       core.Point
	Terminal    int // Index of the object whose use completes the level; NoIndex selects the last object
	Backgrounds []BackgroundSpec
	Objects     []ObjectSpec
}

// BackgroundSpec describes one background object.
type BackgroundSpec struct {
	Name        string
	Description string
	Image       string
	Rect        core.Rect
}

// ObjectSpec describes one interactive object.
type ObjectSpec struct {
	Name          string
	Hover         string
	Click         string
	Use           string
	Images        [3]string
	Rect          core.Rect
	Host          int
	Hidden        int
	Required      int
	Pickupable    bool
	Clickable     bool
	AlwaysVisible bool
}

func (o ObjectSpec) initiallyVisible() bool {
	return o.Host == NoIndex || o.AlwaysVisible || o.Name == WallName
}

// Level is a validated level. Objects is the arena that indices refer into.
type Level struct {
	ID          int
	Description string
	Background  string
	Start       core.Point
	Terminal    int
	Backgrounds []BackgroundObject
	Objects     []InteractiveObject
}

// Object returns the interactive object at index i, or nil.
func (l *Level) Object(i int) *InteractiveObject {
	if i < 0 || i >= len(l.Objects) {
		return nil
	}
	return &l.Objects[i]
}

// NewLevel validates a descriptor and builds a fresh level from it.
// It never returns a partially built level.
func NewLevel(d Descriptor) (*Level, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}

	lvl := &Level{
		ID:          d.ID,
		Description: d.Description,
		Background:  d.Background,
		Start:       d.Start,
		Terminal:    d.Terminal,
		Backgrounds: make([]BackgroundObject, len(d.Backgrounds)),
		Objects:     make([]InteractiveObject, len(d.Objects)),
	}
	if lvl.Terminal == NoIndex {
		lvl.Terminal = len(d.Objects) - 1
	}

	for i, b := range d.Backgrounds {
		lvl.Backgrounds[i] = BackgroundObject(b)
	}
	for i, o := range d.Objects {
		lvl.Objects[i] = InteractiveObject{
			Index:        i,
			Name:         o.Name,
			Descriptions: [3]string{o.Hover, o.Click, o.Use},
			Images:       o.Images,
			Rect:         o.Rect,
			Host:         o.Host,
			Hidden:       o.Hidden,
			Required:     o.Required,
			Pickupable:   o.Pickupable,
			Clickable:    o.Clickable,
			Visible:      o.initiallyVisible(),
		}
	}
	return lvl, nil
}

// Validate checks a descriptor's structure and cross-references.
func Validate(d Descriptor) error {
	fail := func(field, format string, args ...any) error {
		return &LevelLoadError{LevelID: d.ID, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(d.Description) == "" {
		return fail("description", "missing")
	}
	n := len(d.Objects)
	if n == 0 {
		return fail("objects", "level has no interactive objects")
	}

	for i, b := range d.Backgrounds {
		field := fmt.Sprintf("backgrounds[%d]", i)
		if strings.TrimSpace(b.Name) == "" {
			return fail(field+".name", "missing")
		}
		if b.Rect.W <= 0 || b.Rect.H <= 0 {
			return fail(field+".size", "must be positive, got %dx%d", b.Rect.W, b.Rect.H)
		}
	}

	ref := func(v int, allowNotUsable bool) bool {
		if v == NoIndex || (v >= 0 && v < n) {
			return true
		}
		return allowNotUsable && v == NotUsable
	}
	for i, o := range d.Objects {
		field := fmt.Sprintf("objects[%d]", i)
		if strings.TrimSpace(o.Name) == "" {
			return fail(field+".name", "missing")
		}
		if o.Rect.W <= 0 || o.Rect.H <= 0 {
			return fail(field+".size", "must be positive, got %dx%d", o.Rect.W, o.Rect.H)
		}
		if !ref(o.Host, false) {
			return fail(field+".host", "index %d out of range", o.Host)
		}
		if !ref(o.Hidden, false) {
			return fail(field+".hidden", "index %d out of range", o.Hidden)
		}
		if o.Hidden == i {
			return fail(field+".hidden", "object hides itself")
		}
		if o.Host == i {
			return fail(field+".host", "object hosts itself")
		}
		if !ref(o.Required, true) {
			return fail(field+".required", "index %d out of range", o.Required)
		}
	}

	if d.Terminal != NoIndex && (d.Terminal < 0 || d.Terminal >= n) {
		return fail("terminal", "index %d out of range", d.Terminal)
	}
	terminal := d.Terminal
	if terminal == NoIndex {
		terminal = n - 1
	}
	// Only a correct use completes a level.
	switch t := d.Objects[terminal]; {
	case t.Pickupable:
		return fail("terminal", "%s is pickupable and can never be used", t.Name)
	case t.Required < 0:
		return fail("terminal", "%s requires no item, so it can never be used", t.Name)
	case !d.Objects[t.Required].Pickupable:
		return fail("terminal", "%s requires %s, which cannot be picked up", t.Name, d.Objects[t.Required].Name)
	}

	if start, ok := revealCycle(d.Objects); ok {
		return fail(fmt.Sprintf("objects[%d].hidden", start), "reveal chain forms a cycle")
	}
	return nil
}

// ValidateStart checks that a character of the given size placed at the
// level start overlaps no background and no initially visible solid object.
func ValidateStart(d Descriptor, size core.Point) error {
	char := core.NewRect(d.Start.X, d.Start.Y, size.X, size.Y)
	fail := func(name string) error {
		return &LevelLoadError{
			LevelID: d.ID,
			Field:   "start",
			Reason:  fmt.Sprintf("character at (%d,%d) overlaps %s", d.Start.X, d.Start.Y, name),
		}
	}
	for _, b := range d.Backgrounds {
		if char.Intersects(b.Rect) {
			return fail(b.Name)
		}
	}
	for _, o := range d.Objects {
		if o.initiallyVisible() && !o.Pickupable && char.Intersects(o.Rect) {
			return fail(o.Name)
		}
	}
	return nil
}

// revealCycle follows hidden-item edges from every object and reports the
// first object whose chain returns to an already visited node.
func revealCycle(objects []ObjectSpec) (int, bool) {
	const (
		unvisited = iota
		onPath
		done
	)
	mark := make([]int, len(objects))
	for i := range objects {
		if mark[i] != unvisited {
			continue
		}
		var path []int
		for j := i; j != NoIndex; j = objects[j].Hidden {
			if mark[j] == onPath {
				return i, true
			}
			if mark[j] == done {
				break
			}
			mark[j] = onPath
			path = append(path, j)
		}
		for _, j := range path {
			mark[j] = done
		}
	}
	return 0, false
}
