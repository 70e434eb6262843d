package formats

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
)

// ParseLegacy parses the legacy line-oriented level format:
//
//	description
//	background image
//	<backgrounds> <objects> <start x> <start y>
//
// followed by one block per background object (separator line, name,
// description, image, "x y") and one per interactive object (separator line,
// name, three descriptions, three images, "x y host hidden required
// pickupable clickable"). Object sizes come from their first image.
func ParseLegacy(data []byte, sizer Sizer) (game.Descriptor, error) {
	sc := &tokenScanner{src: strings.ReplaceAll(string(data), "\r\n", "\n")}

	d := game.Descriptor{Terminal: game.NoIndex}
	d.Description = strings.TrimSpace(sc.line())
	d.Background = strings.TrimSpace(sc.line())

	nBack := sc.integer("background count")
	nObj := sc.integer("object count")
	d.Start = core.Point{X: sc.integer("start x"), Y: sc.integer("start y")}
	sc.skipLine()
	if sc.err != nil {
		return game.Descriptor{}, sc.err
	}
	if nBack < 0 || nObj < 0 {
		return game.Descriptor{}, fmt.Errorf("negative object count %d/%d", nBack, nObj)
	}

	for i := 0; i < nBack; i++ {
		sc.skipLine()
		b := game.BackgroundSpec{
			Name:        strings.TrimSpace(sc.line()),
			Description: strings.TrimSpace(sc.line()),
			Image:       strings.TrimSpace(sc.line()),
		}
		x, y := sc.integer("x"), sc.integer("y")
		sc.skipLine()
		if sc.err != nil {
			return game.Descriptor{}, fmt.Errorf("background %d: %w", i, sc.err)
		}
		rect, err := resolve(core.NewRect(x, y, 0, 0), b.Image, sizer)
		if err != nil {
			return game.Descriptor{}, fmt.Errorf("background %d: %w", i, err)
		}
		b.Rect = rect
		d.Backgrounds = append(d.Backgrounds, b)
	}

	for i := 0; i < nObj; i++ {
		sc.skipLine()
		o := game.ObjectSpec{
			Name:  strings.TrimSpace(sc.line()),
			Hover: strings.TrimSpace(sc.line()),
			Click: strings.TrimSpace(sc.line()),
			Use:   strings.TrimSpace(sc.line()),
		}
		for j := range o.Images {
			o.Images[j] = strings.TrimSpace(sc.line())
		}
		x, y := sc.integer("x"), sc.integer("y")
		o.Host = sc.integer("host")
		o.Hidden = sc.integer("hidden")
		o.Required = sc.integer("required")
		o.Pickupable = sc.boolean("pickupable")
		o.Clickable = sc.boolean("clickable")
		sc.skipLine()
		if sc.err != nil {
			return game.Descriptor{}, fmt.Errorf("object %d: %w", i, sc.err)
		}
		rect, err := resolve(core.NewRect(x, y, 0, 0), o.Images[0], sizer)
		if err != nil {
			return game.Descriptor{}, fmt.Errorf("object %d: %w", i, err)
		}
		o.Rect = rect
		d.Objects = append(d.Objects, o)
	}

	return d, nil
}

// tokenScanner reads whole lines and whitespace-separated tokens from the same
// input, the way legacy files were written. The first error sticks.
type tokenScanner struct {
	src string
	pos int
	err error
}

// line returns the rest of the current line and moves past its newline.
func (s *tokenScanner) line() string {
	if s.err != nil {
		return ""
	}
	if s.pos >= len(s.src) {
		s.err = fmt.Errorf("unexpected end of file")
		return ""
	}
	rest := s.src[s.pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		s.pos += i + 1
		return rest[:i]
	}
	s.pos = len(s.src)
	return rest
}

// skipLine discards the rest of the current line. It does not fail at end of input.
func (s *tokenScanner) skipLine() {
	if s.err != nil || s.pos >= len(s.src) {
		return
	}
	s.line()
}

func (s *tokenScanner) token(what string) string {
	if s.err != nil {
		return ""
	}
	for s.pos < len(s.src) && unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
	start := s.pos
	for s.pos < len(s.src) && !unicode.IsSpace(rune(s.src[s.pos])) {
		s.pos++
	}
	if start == s.pos {
		s.err = fmt.Errorf("missing %s", what)
	}
	return s.src[start:s.pos]
}

func (s *tokenScanner) integer(what string) int {
	tok := s.token(what)
	if s.err != nil {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		s.err = fmt.Errorf("%s: %q is not an integer", what, tok)
	}
	return v
}

func (s *tokenScanner) boolean(what string) bool {
	tok := s.token(what)
	if s.err != nil {
		return false
	}
	v, err := strconv.ParseBool(strings.ToLower(tok))
	if err != nil {
		s.err = fmt.Errorf("%s: %q is not a boolean", what, tok)
	}
	return v
}
