package game

import (
	"errors"
	"testing"

	"github.com/vovakirdan/escape/internal/core"
)

func TestNewLevelVisibility(t *testing.T) {
	d := puzzleLevel()
	wall := obj(WallName, 0, 0)
	wall.Host = 1
	d.Objects = append(d.Objects, wall)
	d.Terminal = 6

	lvl, err := NewLevel(d)
	if err != nil {
		t.Fatalf("NewLevel() failed: %v", err)
	}

	for i, o := range lvl.Objects {
		want := o.Host == NoIndex || o.Name == WallName
		if o.Visible != want {
			t.Errorf("object %d (%s) Visible = %v, expected %v", i, o.Name, o.Visible, want)
		}
		if o.State != StateInitial || o.Desc != DescHover {
			t.Errorf("object %d starts in %v/%v", i, o.State, o.Desc)
		}
	}
}

func TestNewLevelDefaultTerminal(t *testing.T) {
	lvl, err := NewLevel(puzzleLevel())
	if err != nil {
		t.Fatalf("NewLevel() failed: %v", err)
	}
	if lvl.Terminal != len(lvl.Objects)-1 {
		t.Errorf("Terminal = %d, expected last index %d", lvl.Terminal, len(lvl.Objects)-1)
	}
}

func TestNewLevelExplicitTerminal(t *testing.T) {
	d := puzzleLevel()
	d.Terminal = 1
	lvl, err := NewLevel(d)
	if err != nil {
		t.Fatalf("NewLevel() failed: %v", err)
	}
	if lvl.Terminal != 1 {
		t.Errorf("Terminal = %d, expected 1", lvl.Terminal)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Descriptor)
		field  string
	}{
		{"missing description", func(d *Descriptor) { d.Description = " " }, "description"},
		{"no objects", func(d *Descriptor) { d.Objects = nil }, "objects"},
		{"empty name", func(d *Descriptor) { d.Objects[3].Name = "" }, "objects[3].name"},
		{"zero size", func(d *Descriptor) { d.Objects[0].Rect.W = 0 }, "objects[0].size"},
		{"background size", func(d *Descriptor) {
			d.Backgrounds = []BackgroundSpec{{Name: "Shelf", Rect: core.NewRect(0, 0, 10, -1)}}
		}, "backgrounds[0].size"},
		{"host out of range", func(d *Descriptor) { d.Objects[2].Host = 7 }, "objects[2].host"},
		{"hidden out of range", func(d *Descriptor) { d.Objects[1].Hidden = -5 }, "objects[1].hidden"},
		{"required out of range", func(d *Descriptor) { d.Objects[4].Required = 99 }, "objects[4].required"},
		{"self hide", func(d *Descriptor) { d.Objects[3].Hidden = 3 }, "objects[3].hidden"},
		{"self host", func(d *Descriptor) { d.Objects[3].Host = 3 }, "objects[3].host"},
		{"terminal out of range", func(d *Descriptor) { d.Terminal = 7 }, "terminal"},
		{"terminal pickupable", func(d *Descriptor) { d.Terminal = 0 }, "terminal"},
		{"terminal needs no item", func(d *Descriptor) { d.Terminal = 3 }, "terminal"},
		{"terminal not usable", func(d *Descriptor) {
			d.Objects[6].Required = NotUsable
		}, "terminal"},
		{"terminal needs a fixed object", func(d *Descriptor) { d.Objects[6].Required = 3 }, "terminal"},
		{"reveal cycle", func(d *Descriptor) {
			d.Objects[2].Hidden = 3
			d.Objects[3].Hidden = 1
		}, "objects[1].hidden"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := puzzleLevel()
			tc.mutate(&d)

			lvl, err := NewLevel(d)
			if err == nil {
				t.Fatal("NewLevel() should fail")
			}
			if lvl != nil {
				t.Error("NewLevel() returned a level alongside an error")
			}
			if !errors.Is(err, ErrLevelLoad) {
				t.Errorf("errors.Is(err, ErrLevelLoad) = false for %v", err)
			}
			var lle *LevelLoadError
			if !errors.As(err, &lle) {
				t.Fatalf("error %T is not a *LevelLoadError", err)
			}
			if lle.Field != tc.field {
				t.Errorf("Field = %q, expected %q", lle.Field, tc.field)
			}
			if lle.LevelID != d.ID {
				t.Errorf("LevelID = %d, expected %d", lle.LevelID, d.ID)
			}
		})
	}
}

func TestValidateStartRejectsBlockedStart(t *testing.T) {
	size := DefaultRules().CharacterSize
	tests := []struct {
		name   string
		mutate func(d *Descriptor)
		ok     bool
	}{
		{"clear start", func(d *Descriptor) {}, true},
		{"inside pillar", func(d *Descriptor) {
			d.Backgrounds = []BackgroundSpec{{Name: "Pillar", Rect: core.NewRect(480, 480, 200, 200)}}
		}, false},
		{"touching pillar", func(d *Descriptor) {
			d.Backgrounds = []BackgroundSpec{{Name: "Pillar", Rect: core.NewRect(590, 500, 50, 50)}}
		}, true},
		{"on a visible chair", func(d *Descriptor) { d.Objects[3].Rect = core.NewRect(550, 550, 40, 40) }, false},
		{"on a hidden chair", func(d *Descriptor) {
			d.Objects[2].Pickupable = false
			d.Objects[2].Rect = core.NewRect(550, 550, 40, 40)
		}, true},
		{"standing on a key", func(d *Descriptor) { d.Objects[0].Rect = core.NewRect(510, 510, 30, 20) }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := puzzleLevel()
			tc.mutate(&d)
			err := ValidateStart(d, size)
			if (err == nil) != tc.ok {
				t.Fatalf("ValidateStart() = %v, expected ok=%v", err, tc.ok)
			}
			var lle *LevelLoadError
			if err != nil && (!errors.As(err, &lle) || lle.Field != "start") {
				t.Errorf("ValidateStart() = %v, expected a start LevelLoadError", err)
			}
		})
	}
}

func TestValidateAcceptsNotUsable(t *testing.T) {
	d := puzzleLevel()
	d.Objects[3].Required = NotUsable
	if err := Validate(d); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestRevealChainsAreAcyclic(t *testing.T) {
	// A long chain 0 -> 1 -> ... -> 5 is fine; closing it is not.
	d := puzzleLevel()
	for i := range d.Objects {
		d.Objects[i].Hidden = NoIndex
	}
	for i := 0; i < 5; i++ {
		d.Objects[i].Hidden = i + 1
	}
	if err := Validate(d); err != nil {
		t.Fatalf("Validate(chain) = %v, expected nil", err)
	}

	d.Objects[5].Hidden = 0
	if err := Validate(d); err == nil {
		t.Fatal("Validate(closed chain) should fail")
	}

	// Every accepted level must terminate when following hidden edges.
	lvl, err := NewLevel(puzzleLevel())
	if err != nil {
		t.Fatal(err)
	}
	for start := range lvl.Objects {
		steps := 0
		for j := lvl.Objects[start].Hidden; j != NoIndex; j = lvl.Objects[j].Hidden {
			if j == start {
				t.Fatalf("object %d reveals itself", start)
			}
			steps++
			if steps > len(lvl.Objects) {
				t.Fatalf("reveal chain from %d does not terminate", start)
			}
		}
	}
}

func TestLevelLoadErrorMessage(t *testing.T) {
	err := &LevelLoadError{LevelID: 3, Field: "objects[2].hidden", Reason: "index 9 out of range"}
	want := "level 3: objects[2].hidden: index 9 out of range"
	if err.Error() != want {
		t.Errorf("Error() = %q, expected %q", err.Error(), want)
	}

	wrapped := AsLevelLoadError(4, errors.New("boom"))
	if wrapped.LevelID != 4 || wrapped.Field != "" {
		t.Errorf("AsLevelLoadError() = %+v", wrapped)
	}
	if again := AsLevelLoadError(9, err); again != err {
		t.Error("AsLevelLoadError() should keep an existing LevelLoadError")
	}
}
