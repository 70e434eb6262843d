package level

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io/fs"
	"path"
	"sync"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/vovakirdan/escape/internal/core"
)

// DefaultImageDirs are searched, in order, for image references.
var DefaultImageDirs = []string{".", "images", "Objects"}

// ImageSizer reads image dimensions from a file system without decoding pixels.
type ImageSizer struct {
	FS   fs.FS
	Dirs []string

	mu    sync.Mutex
	cache map[string]core.Point
}

// NewImageSizer creates a sizer searching DefaultImageDirs.
func NewImageSizer(fsys fs.FS) *ImageSizer {
	return &ImageSizer{FS: fsys, Dirs: DefaultImageDirs}
}

// Size returns the width and height of the referenced image.
func (s *ImageSizer) Size(ref string) (core.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.cache[ref]; ok {
		return p, nil
	}

	dirs := s.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		name := path.Join(dir, ref)
		f, err := s.FS.Open(name)
		if err != nil {
			continue
		}
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			return core.Point{}, fmt.Errorf("image %s: %w", name, err)
		}
		p := core.Point{X: cfg.Width, Y: cfg.Height}
		if s.cache == nil {
			s.cache = make(map[string]core.Point)
		}
		s.cache[ref] = p
		return p, nil
	}
	return core.Point{}, fmt.Errorf("image %s: %w", ref, fs.ErrNotExist)
}
