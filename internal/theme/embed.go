package theme

import "embed"

// EmbeddedThemes ships the stock themes.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS
