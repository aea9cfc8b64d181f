package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDir  = ".config/quickswitch"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer fields
// distinguish "absent" from zero values.
type rawConfig struct {
	History rawHistoryConfig `json:"history"`
	UI      rawUIConfig      `json:"ui"`
}

type rawHistoryConfig struct {
	MaxEntries   *int    `json:"maxEntries"`
	MinFrequency *uint32 `json:"minFrequency"`
	DecayDays    *int    `json:"decayDays"`
	Sort         string  `json:"sort"`
}

type rawUIConfig struct {
	PreviewEnabled *bool `json:"previewEnabled"`
	ShowHidden     *bool `json:"showHidden"`
	DoubleClickMs  *int  `json:"doubleClickMs"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/quickswitch/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Return defaults on error
		}
		path = filepath.Join(home, configDir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// History
	if raw.History.MaxEntries != nil {
		cfg.History.MaxEntries = *raw.History.MaxEntries
	}
	if raw.History.MinFrequency != nil {
		cfg.History.MinFrequency = *raw.History.MinFrequency
	}
	if raw.History.DecayDays != nil {
		cfg.History.DecayDays = *raw.History.DecayDays
	}
	if raw.History.Sort != "" {
		cfg.History.Sort = SortMode(raw.History.Sort)
	}

	// UI
	if raw.UI.PreviewEnabled != nil {
		cfg.UI.PreviewEnabled = *raw.UI.PreviewEnabled
	}
	if raw.UI.ShowHidden != nil {
		cfg.UI.ShowHidden = *raw.UI.ShowHidden
	}
	if raw.UI.DoubleClickMs != nil {
		cfg.UI.DoubleClickMs = *raw.UI.DoubleClickMs
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
