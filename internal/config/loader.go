package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the user and local config directories.
const ConfigFileName = "brickfast.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.brickfast/configs/brickfast.yaml -> ./configs/brickfast.yaml -> embedded default
//
// Files are decoded over the built-in defaults, so a file only needs the keys
// it changes. A custom path that cannot be read or parsed is an error; the
// implicit locations are skipped when missing or broken.
func Load(customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return GameConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(ConfigFileName), filepath.Join("configs", ConfigFileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadWithPreset loads the configuration and applies a difficulty preset.
func LoadWithPreset(customPath string, preset DifficultyPreset) (GameConfig, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return GameConfig{}, err
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

func parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brickfast", "configs", filename)
}
