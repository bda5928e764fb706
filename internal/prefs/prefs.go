// Package prefs remembers the kiosk theme and the last email typed into the
// login dialog between runs.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the on-disk TOML document.
type Prefs struct {
	Theme     string `toml:"theme"`
	LastEmail string `toml:"last_email,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/kiosk/prefs.toml"
	defaultTheme     = "Espresso"
)

// DefaultPath is used when no path is configured. A leading ~ is expanded
// on Load and Save.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load returns the defaults when the file cannot be read or parsed.
func Load(path string) Prefs {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: defaultTheme}
	}

	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastEmail = strings.TrimSpace(p.LastEmail)
	return p
}

// Save writes p as TOML, owner-only, creating the parent directory.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

var errEmptyPath = errors.New("empty prefs path")

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	return expandHome(path)
}

func expandHome(path string) (string, error) {
	if path == "" {
		return "", errEmptyPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
