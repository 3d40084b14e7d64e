package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppName names the per-user data and config directories.
const AppName = "scry"

// DefaultDataDir returns $XDG_DATA_HOME/scry, falling back to
// ~/.local/share/scry.
func DefaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/scry, falling back to
// ~/.config/scry.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", AppName), nil
}

// ResolveSQLitePath returns the configured sqlite path, or cards.db in the
// default data directory when none is set.
func (c StoreConfig) ResolveSQLitePath() (string, error) {
	if c.SQLitePath != "" {
		return c.SQLitePath, nil
	}

	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cards.db"), nil
}
