// Package config holds quickswitch configuration with JSON file loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SortMode orders the history view.
type SortMode string

const (
	SortFrequency       SortMode = "frequency"
	SortRecent          SortMode = "recent"
	SortFrequencyRecent SortMode = "frequency_recent"
	SortAlphabetical    SortMode = "alphabetical"
)

// Config is the root configuration.
type Config struct {
	History HistoryConfig `json:"history"`
	UI      UIConfig      `json:"ui"`
}

// HistoryConfig controls the visit history store.
type HistoryConfig struct {
	MaxEntries   int      `json:"maxEntries"`
	MinFrequency uint32   `json:"minFrequency"`
	DecayDays    int      `json:"decayDays"`
	Sort         SortMode `json:"sort"`
}

// UIConfig controls presentation.
type UIConfig struct {
	PreviewEnabled bool `json:"previewEnabled"`
	ShowHidden     bool `json:"showHidden"`
	DoubleClickMs  int  `json:"doubleClickMs"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{
			MaxEntries:   100,
			MinFrequency: 1,
			DecayDays:    30,
			Sort:         SortFrequencyRecent,
		},
		UI: UIConfig{
			PreviewEnabled: true,
			ShowHidden:     false,
			DoubleClickMs:  150,
		},
	}
}

// Validate checks configuration values.
func (c *Config) Validate() error {
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.maxEntries must be positive, got %d", c.History.MaxEntries)
	}
	if c.History.DecayDays <= 0 {
		return fmt.Errorf("history.decayDays must be positive, got %d", c.History.DecayDays)
	}
	switch c.History.Sort {
	case SortFrequency, SortRecent, SortFrequencyRecent, SortAlphabetical:
	default:
		return fmt.Errorf("unknown history.sort %q", c.History.Sort)
	}
	if c.UI.DoubleClickMs <= 0 {
		return fmt.Errorf("ui.doubleClickMs must be positive, got %d", c.UI.DoubleClickMs)
	}
	return nil
}

// NextSort cycles through the sort modes in a fixed order.
func NextSort(m SortMode) SortMode {
	switch m {
	case SortFrequency:
		return SortRecent
	case SortRecent:
		return SortFrequencyRecent
	case SortFrequencyRecent:
		return SortAlphabetical
	default:
		return SortFrequency
	}
}

// dataDirEnv overrides the data directory, mainly for tests and
// sandboxed shells.
const dataDirEnv = "_QUICKSWITCH_DATA_DIR"

// DataDir returns the directory holding the history files, creating it
// when absent.
func DataDir() (string, error) {
	if dir := os.Getenv(dataDirEnv); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create data dir: %w", err)
		}
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	var dir string
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, "quickswitch")
		} else {
			dir = filepath.Join(home, "quickswitch")
		}
	} else {
		dir = filepath.Join(home, ".local", "share", "quickswitch")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}
