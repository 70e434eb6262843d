package formats

import (
	"errors"
	"testing"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
)

type mapSizer map[string]core.Point

func (m mapSizer) Size(ref string) (core.Point, error) {
	if p, ok := m[ref]; ok {
		return p, nil
	}
	return core.Point{}, errors.New("no such image: " + ref)
}

const yamlLevel = `
description: "A cell"
background: cell.png
start: {x: 500, y: 400}
terminal: 1
backgrounds:
  - {name: Bed, description: "Hard", x: 0, y: 0, w: 200, h: 100}
  - {name: Sink, description: "Dry", image: sink.png, x: 300, y: 0}
objects:
  - name: Spoon
    hover: "A spoon"
    x: 10
    y: 20
    w: 30
    h: 40
    pickupable: true
  - name: Door
    hover: "Locked"
    use: "It opens"
    images: [door.png, door2.png, door3.png]
    x: 900
    y: 100
    required: 0
  - name: Poster
    hover: "A poster"
    click: "Torn"
    x: 700
    y: 50
    w: 60
    h: 80
    host: 1
    hidden: 0
    clickable: true
`

func TestParseYAML(t *testing.T) {
	d, err := ParseYAML([]byte(yamlLevel), mapSizer{"sink.png": {X: 50, Y: 60}, "door.png": {X: 80, Y: 200}})
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}

	if d.Description != "A cell" || d.Background != "cell.png" || d.Start != (core.Point{X: 500, Y: 400}) {
		t.Errorf("header = %q %q %+v", d.Description, d.Background, d.Start)
	}
	if d.Terminal != 1 {
		t.Errorf("Terminal = %d, expected 1", d.Terminal)
	}
	if got := d.Backgrounds[1].Rect; got != core.NewRect(300, 0, 50, 60) {
		t.Errorf("Sink rect = %+v, expected size from image", got)
	}

	spoon, door, poster := d.Objects[0], d.Objects[1], d.Objects[2]
	if spoon.Required != game.NotUsable || spoon.Host != game.NoIndex || spoon.Hidden != game.NoIndex {
		t.Errorf("Spoon indices = %d/%d/%d", spoon.Host, spoon.Hidden, spoon.Required)
	}
	if spoon.Click != "A spoon" || spoon.Use != "A spoon" {
		t.Errorf("Spoon descriptions should default to hover, got %q %q", spoon.Click, spoon.Use)
	}
	if door.Required != 0 || door.Use != "It opens" || door.Images[2] != "door3.png" {
		t.Errorf("Door = %+v", door)
	}
	if door.Rect != core.NewRect(900, 100, 80, 200) {
		t.Errorf("Door rect = %+v", door.Rect)
	}
	if poster.Host != 1 || poster.Hidden != 0 || !poster.Clickable || poster.Required != game.NoIndex {
		t.Errorf("Poster = %+v", poster)
	}

	if _, err := game.NewLevel(d); err != nil {
		t.Errorf("NewLevel(parsed) failed: %v", err)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	if _, err := ParseYAML([]byte("objects: [\n"), nil); err == nil {
		t.Error("ParseYAML() should fail on malformed yaml")
	}
	missing := "description: x\nobjects:\n  - {name: A, hover: a, image: nope.png, x: 0, y: 0, images: [nope.png]}\n"
	if _, err := ParseYAML([]byte(missing), mapSizer{}); err == nil {
		t.Error("ParseYAML() should fail when an image size cannot be resolved")
	}

	d, err := ParseYAML([]byte("description: x\nobjects:\n  - {name: A, hover: a, x: 0, y: 0}\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := game.NewLevel(d); !errors.Is(err, game.ErrLevelLoad) {
		t.Errorf("NewLevel(sizeless) = %v, expected a load error", err)
	}
}

const legacyLevel = `The first room
Backgrounds/Room1.png
1 2
500 500
-----
Table
An old table
table.png
100 100
-----
Key
A rusty key
A rusty key
A rusty key
key.png
key.png
key.png
120 110 -1 -1 -2 true false
-----
Door
A sturdy door
Still locked
The door swings open
door1.png
door2.png
door3.png
800 50 -1 -1 0 false false`

func TestParseLegacy(t *testing.T) {
	sizer := mapSizer{
		"table.png": {X: 200, Y: 90},
		"key.png":   {X: 30, Y: 15},
		"door1.png": {X: 100, Y: 200},
	}
	d, err := ParseLegacy([]byte(legacyLevel), sizer)
	if err != nil {
		t.Fatalf("ParseLegacy() failed: %v", err)
	}

	if d.Description != "The first room" || d.Background != "Backgrounds/Room1.png" {
		t.Errorf("header = %q %q", d.Description, d.Background)
	}
	if d.Start != (core.Point{X: 500, Y: 500}) {
		t.Errorf("Start = %+v", d.Start)
	}
	if len(d.Backgrounds) != 1 || d.Backgrounds[0].Rect != core.NewRect(100, 100, 200, 90) {
		t.Errorf("Backgrounds = %+v", d.Backgrounds)
	}
	if len(d.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, expected 2", len(d.Objects))
	}
	key, door := d.Objects[0], d.Objects[1]
	if !key.Pickupable || key.Clickable || key.Required != game.NotUsable {
		t.Errorf("Key = %+v", key)
	}
	if key.Rect != core.NewRect(120, 110, 30, 15) {
		t.Errorf("Key rect = %+v", key.Rect)
	}
	if door.Use != "The door swings open" || door.Required != 0 || door.Images[1] != "door2.png" {
		t.Errorf("Door = %+v", door)
	}
	if d.Terminal != game.NoIndex {
		t.Errorf("Terminal = %d, expected the positional default", d.Terminal)
	}

	lvl, err := game.NewLevel(d)
	if err != nil {
		t.Fatalf("NewLevel(legacy) failed: %v", err)
	}
	if lvl.Terminal != 1 {
		t.Errorf("level Terminal = %d, expected 1", lvl.Terminal)
	}
}

func TestParseLegacyErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"bad count", "desc\nbg\nx 1 0 0\n"},
		{"truncated object", "desc\nbg\n0 1 0 0\n-----\nKey\n"},
		{"bad bool", "desc\nbg\n0 1 0 0\n-\nK\na\nb\nc\ni\ni\ni\n1 2 -1 -1 -1 maybe false\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLegacy([]byte(tc.text), nil); err == nil {
				t.Error("ParseLegacy() should fail")
			}
		})
	}
}
