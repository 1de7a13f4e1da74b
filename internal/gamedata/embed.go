// Package gamedata provides the embedded catalog of items, enemies and the
// world layout, and builds fresh game objects from it.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
