// Package level discovers and decodes level descriptor files.
// This package depends on game but game does not depend on level.
package level

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vovakirdan/escape/internal/core"
	"github.com/vovakirdan/escape/internal/game"
	"github.com/vovakirdan/escape/internal/level/formats"
)

var levelFile = regexp.MustCompile(`(?i)^level(\d+)\.(ya?ml|txt)$`)

// Loader serves level descriptors from a directory tree.
type Loader struct {
	FS    fs.FS
	Sizer formats.Sizer

	// Character is the character size used to check that each start
	// position is clear. Zero skips the check.
	Character core.Point

	files map[int]string
	ids   []int
}

// NewLoader scans the root of fsys for levelN.yaml, levelN.yml or levelN.txt.
func NewLoader(fsys fs.FS) (*Loader, error) {
	l := &Loader{
		FS:        fsys,
		Sizer:     NewImageSizer(fsys),
		Character: game.DefaultRules().CharacterSize,
	}
	if err := l.Rescan(); err != nil {
		return nil, err
	}
	return l, nil
}

// Rescan rereads the directory listing.
func (l *Loader) Rescan() error {
	entries, err := fs.ReadDir(l.FS, ".")
	if err != nil {
		return fmt.Errorf("reading level directory: %w", err)
	}

	files := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := levelFile.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[1])
		if err != nil || id < 1 {
			continue
		}
		if prev, dup := files[id]; dup {
			return fmt.Errorf("level %d defined twice: %s and %s", id, prev, e.Name())
		}
		files[id] = e.Name()
	}

	ids := make([]int, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	l.files = files
	l.ids = ids
	return nil
}

// Count returns the number of levels, which are numbered 1..Count.
func (l *Loader) Count() int { return len(l.ids) }

// IDs returns the discovered level ids in ascending order.
func (l *Loader) IDs() []int {
	out := make([]int, len(l.ids))
	copy(out, l.ids)
	return out
}

// File returns the file name backing a level.
func (l *Loader) File(id int) (string, bool) {
	name, ok := l.files[id]
	return name, ok
}

// Load reads and decodes one level. Failures are *game.LevelLoadError.
func (l *Loader) Load(id int) (game.Descriptor, error) {
	name, ok := l.files[id]
	if !ok {
		return game.Descriptor{}, &game.LevelLoadError{
			LevelID: id,
			Reason:  "no level file",
			Err:     game.ErrUnknownLevel,
		}
	}

	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return game.Descriptor{}, &game.LevelLoadError{LevelID: id, Reason: "cannot read " + name, Err: err}
	}

	var d game.Descriptor
	if formats.IsLegacy(name) {
		d, err = formats.ParseLegacy(data, l.Sizer)
	} else {
		d, err = formats.ParseYAML(data, l.Sizer)
	}
	if err != nil {
		return game.Descriptor{}, &game.LevelLoadError{
			LevelID: id,
			Reason:  fmt.Sprintf("parsing %s: %v", name, err),
			Err:     err,
		}
	}
	d.ID = id
	return d, nil
}

// Validate loads a level and checks it fully.
func (l *Loader) Validate(id int) error {
	d, err := l.Load(id)
	if err != nil {
		return err
	}
	if err := game.Validate(d); err != nil {
		return err
	}
	if l.Character == (core.Point{}) {
		return nil
	}
	return game.ValidateStart(d, l.Character)
}

// ValidateAll validates every level and also reports numbering gaps.
func (l *Loader) ValidateAll() []error {
	var errs []error
	for i, id := range l.ids {
		if id != i+1 {
			errs = append(errs, &game.LevelLoadError{
				LevelID: i + 1,
				Reason:  fmt.Sprintf("missing; levels must be numbered 1..%d", len(l.ids)),
			})
			break
		}
	}
	for _, id := range l.ids {
		if err := l.Validate(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// IsLevelFile reports whether a path names a level descriptor.
func IsLevelFile(p string) bool {
	return levelFile.MatchString(path.Base(strings.ReplaceAll(p, "\\", "/")))
}
