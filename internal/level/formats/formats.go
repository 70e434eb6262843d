// Package formats provides pluggable level file format parsers.
package formats

import (
	"path"
	"strings"

	"github.com/vovakirdan/escape/internal/core"
)

// Sizer resolves the pixel size of an image reference.
type Sizer interface {
	Size(ref string) (core.Point, error)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}

// IsLegacy reports whether a file name uses the line-oriented text format.
func IsLegacy(name string) bool {
	return strings.EqualFold(path.Ext(name), ".txt")
}

// resolve fills a missing size from the image when a sizer is available.
// Unresolved sizes stay zero and are rejected by level validation.
func resolve(r core.Rect, image string, sizer Sizer) (core.Rect, error) {
	if (r.W > 0 && r.H > 0) || image == "" || sizer == nil {
		return r, nil
	}
	size, err := sizer.Size(image)
	if err != nil {
		return r, err
	}
	if r.W <= 0 {
		r.W = size.X
	}
	if r.H <= 0 {
		r.H = size.Y
	}
	return r, nil
}
