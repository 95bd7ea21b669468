package settings

import (
	"os"
	"path/filepath"
)

// FileNames are the settings file names looked up in the config directory,
// in order.
var FileNames = []string{"settings.yml", "settings.yaml", "settings.toml"}

// ConfigDir returns the overlay configuration directory.
//
// Resolution order:
// 1. TRADE_OVERLAY_HOME → $TRADE_OVERLAY_HOME/config
// 2. $XDG_CONFIG_HOME/trade-overlay
// 3. ~/.config/trade-overlay
func ConfigDir() string {
	if home := os.Getenv("TRADE_OVERLAY_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trade-overlay")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "trade-overlay")
	}
	return ""
}

// DefaultPath returns the first existing settings file in ConfigDir, or the
// path where a new settings.yml would be created.
func DefaultPath() string {
	dir := ConfigDir()
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return filepath.Join(dir, FileNames[0])
}
