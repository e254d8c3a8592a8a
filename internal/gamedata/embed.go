// Package gamedata provides the embedded levels and wall textures.
package gamedata

import "embed"

// dataFS embeds level files and texture assets at build time.
//
//go:embed levels/*.yaml assets/*.png
var dataFS embed.FS
