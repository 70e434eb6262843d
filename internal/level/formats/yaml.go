package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Description string           `yaml:"description"`
	Background  string           `yaml:"background,omitempty"`
	Start       YAMLPoint        `yaml:"start"`
	Terminal    *int             `yaml:"terminal,omitempty"`
	Backgrounds []YAMLBackground `yaml:"backgrounds,omitempty"`
	Objects     []YAMLObject     `yaml:"objects"`
}

// YAMLPoint is a world coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLBackground represents a static scenery object.
type YAMLBackground struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image,omitempty"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	W           int    `yaml:"w,omitempty"` // Taken from the image when omitted
	H           int    `yaml:"h,omitempty"`
}

// YAMLObject represents an interactive object. Omitted indices mean none.
type YAMLObject struct {
	Name          string   `yaml:"name"`
	Hover         string   `yaml:"hover"`
	Click         string   `yaml:"click,omitempty"` // Defaults to hover
	Use           string   `yaml:"use,omitempty"`   // Defaults to hover
	Images        []string `yaml:"images,omitempty"`
	X             int      `yaml:"x"`
	Y             int      `yaml:"y"`
	W             int      `yaml:"w,omitempty"`
	H             int      `yaml:"h,omitempty"`
	Host          *int     `yaml:"host,omitempty"`
	Hidden        *int     `yaml:"hidden,omitempty"`
	Required      *int     `yaml:"required,omitempty"` // Pickupable objects default to not usable
	Pickupable    bool     `yaml:"pickupable,omitempty"`
	Clickable     bool     `yaml:"clickable,omitempty"`
	AlwaysVisible bool     `yaml:"always_visible,omitempty"`
}

// ParseYAML parses a YAML level file. The returned descriptor has ID 0; the
// loader assigns it from the file name.
func ParseYAML(data []byte, sizer Sizer) (game.Descriptor, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return game.Descriptor{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	d := game.Descriptor{
		Description: yl.Description,
		Background:  yl.Background,
		Start:       core.Point{X: yl.Start.X, Y: yl.Start.Y},
		Terminal:    orIndex(yl.Terminal, game.NoIndex),
		Backgrounds: make([]game.BackgroundSpec, 0, len(yl.Backgrounds)),
		Objects:     make([]game.ObjectSpec, 0, len(yl.Objects)),
	}

	for i, b := range yl.Backgrounds {
		rect, err := resolve(core.NewRect(b.X, b.Y, b.W, b.H), b.Image, sizer)
		if err != nil {
			return game.Descriptor{}, fmt.Errorf("backgrounds[%d]: %w", i, err)
		}
		d.Backgrounds = append(d.Backgrounds, game.BackgroundSpec{
			Name:        b.Name,
			Description: b.Description,
			Image:       b.Image,
			Rect:        rect,
		})
	}

	for i, o := range yl.Objects {
		var images [3]string
		copy(images[:], o.Images)
		rect, err := resolve(core.NewRect(o.X, o.Y, o.W, o.H), images[0], sizer)
		if err != nil {
			return game.Descriptor{}, fmt.Errorf("objects[%d]: %w", i, err)
		}

		required := game.NoIndex
		if o.Pickupable {
			required = game.NotUsable
		}

		d.Objects = append(d.Objects, game.ObjectSpec{
			Name:          o.Name,
			Hover:         o.Hover,
			Click:         orText(o.Click, o.Hover),
			Use:           orText(o.Use, o.Hover),
			Images:        images,
			Rect:          rect,
			Host:          orIndex(o.Host, game.NoIndex),
			Hidden:        orIndex(o.Hidden, game.NoIndex),
			Required:      orIndex(o.Required, required),
			Pickupable:    o.Pickupable,
			Clickable:     o.Clickable,
			AlwaysVisible: o.AlwaysVisible,
		})
	}

	return d, nil
}

func orIndex(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orText(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
