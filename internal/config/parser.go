package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/retouch/internal/export"
	"github.com/example/retouch/internal/geom"
	"github.com/example/retouch/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "preview":
			err = setPreviewField(&cfg.Preview, key, value)
		case currentSection == "crop":
			err = setCropField(&cfg.Crop, key, value)
		case currentSection == "export":
			err = setExportField(&cfg.Export, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	}
	return nil
}

func setPreviewField(p *Preview, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid size for key %s: %q", key, value)
	}
	switch key {
	case "max_width":
		p.MaxWidth = n
	case "max_height":
		p.MaxHeight = n
	}
	return nil
}

func setCropField(c *Crop, key, value string) error {
	switch key {
	case "aspect":
		if _, err := geom.ParseAspect(value); err != nil {
			return err
		}
		c.Aspect = value
		return nil
	case "margin", "handle_tolerance":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid distance for key %s: %q", key, value)
		}
		if key == "margin" {
			c.Margin = f
		} else {
			c.HandleTolerance = f
		}
	}
	return nil
}

func setExportField(e *Export, key, value string) error {
	switch key {
	case "format":
		enc, err := export.ParseEncoding(value)
		if err != nil {
			return err
		}
		e.Format = string(enc)
	case "quality":
		q, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid quality: %w", err)
		}
		e.Quality = export.ClampQuality(q)
	case "name":
		e.Name = value
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	case "capture":
		n.Capture = b
	}
	return nil
}
