package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader resolves theme names to themes.
type Loader struct {
	ConfigDir string
	SystemDir string
}

// NewLoader returns a Loader searching the user and system theme folders.
func NewLoader() *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "retouch", "themes"),
		SystemDir: "/usr/share/retouch/themes",
	}
}

// Load resolves name in this order: an existing file path, the embedded
// themes, ConfigDir, then SystemDir. An empty name or "default" returns
// Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || strings.EqualFold(name, "default") {
		return Default(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return parseFile(name)
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if f, err := EmbeddedThemes.Open("defaults/" + filename); err == nil {
		defer f.Close()
		return Parse(f)
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, filename)
		if _, err := os.Stat(p); err == nil {
			return parseFile(p)
		}
	}
	return nil, fmt.Errorf("theme '%s' not found", name)
}

// Names lists the built-in theme names, including "default".
func Names() []string {
	out := []string{"default"}
	entries, _ := fs.ReadDir(EmbeddedThemes, "defaults")
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".theme"))
	}
	sort.Strings(out[1:])
	return out
}

func parseFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
