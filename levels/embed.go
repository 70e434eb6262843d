// Package levels embeds the built-in level set.
package levels

import "embed"

// FS holds level descriptors at its root and their images under images/.
//
//go:embed *.yaml *.txt images
var FS embed.FS
