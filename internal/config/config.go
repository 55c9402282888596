// Package config reads and writes the retouch RC file.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/retouch/internal/editor"
	"github.com/example/retouch/internal/export"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/theme"
)

// Preview bounds the on-screen preview.
type Preview struct {
	MaxWidth  int
	MaxHeight int
}

// Crop holds the crop session distances and the initial aspect.
type Crop struct {
	Margin          float64
	HandleTolerance float64
	Aspect          string
}

// Export holds the default export settings.
type Export struct {
	Format  string
	Quality float64
	Name    string
}

// Notify holds notification settings.
type Notify struct {
	Export  bool
	Copy    bool
	Capture bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Preview Preview
	Crop    Crop
	Export  Export
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Preview: Preview{MaxWidth: 1200, MaxHeight: 800},
		Crop:    Crop{Margin: 20, HandleTolerance: 12, Aspect: "free"},
		Export:  Export{Format: string(export.PNG), Quality: export.DefaultQuality, Name: "edit"},
		Themes:  make(map[string]*theme.Theme),
	}
}

// EditorOptions converts the preview and crop sections into editor options.
// The theme's overlay colours are applied when t is not nil.
func (c *Config) EditorOptions(t *theme.Theme) editor.Options {
	opts := editor.DefaultOptions()
	if c.Preview.MaxWidth > 0 && c.Preview.MaxHeight > 0 {
		opts.MaxPreview = geom.Sz(c.Preview.MaxWidth, c.Preview.MaxHeight)
	}
	if c.Crop.Margin >= 0 {
		opts.Crop.Margin = c.Crop.Margin
	}
	if c.Crop.HandleTolerance > 0 {
		opts.Crop.Tolerance = c.Crop.HandleTolerance
	}
	if t != nil {
		opts.Overlay = t.Overlay()
	}
	return opts
}

// Aspect parses the configured crop aspect. Invalid values were rejected by
// Parse, so a failure here falls back to free.
func (c *Config) Aspect() geom.Aspect {
	a, err := geom.ParseAspect(c.Crop.Aspect)
	if err != nil {
		return geom.Free
	}
	return a
}

// Encoding parses the configured export format, defaulting to PNG.
func (c *Config) Encoding() export.Encoding {
	e, err := export.ParseEncoding(c.Export.Format)
	if err != nil {
		return export.PNG
	}
	return e
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[preview]\n")
	fmt.Fprintf(&sb, "max_width = %d\n", c.Preview.MaxWidth)
	fmt.Fprintf(&sb, "max_height = %d\n", c.Preview.MaxHeight)
	sb.WriteString("\n")

	sb.WriteString("[crop]\n")
	fmt.Fprintf(&sb, "margin = %s\n", formatFloat(c.Crop.Margin))
	fmt.Fprintf(&sb, "handle_tolerance = %s\n", formatFloat(c.Crop.HandleTolerance))
	fmt.Fprintf(&sb, "aspect = %s\n", c.Crop.Aspect)
	sb.WriteString("\n")

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	fmt.Fprintf(&sb, "quality = %s\n", formatFloat(c.Export.Quality))
	fmt.Fprintf(&sb, "name = %s\n", c.Export.Name)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, field := range theme.Fields(t) {
			col, _ := theme.Color(t, field)
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
