package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader finds, reads and writes the configuration file.
type Loader struct {
	Version      string // build version; "dev" enables ./.retouchrc
	OverridePath string // set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string
// if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".retouchrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "retouch.rc"} {
		p := filepath.Join(home, ".config", "retouch", name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Save writes cfg to the existing configuration file, or to the XDG
// location when none exists. It returns the path written.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.GetConfigPath()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home dir: %w", err)
		}
		path = filepath.Join(home, ".config", "retouch", "config.rc")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return path, nil
}
