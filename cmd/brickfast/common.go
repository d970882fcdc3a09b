package main

import (
	"fmt"
	"time"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/layout"
	"github.com/bunTree/BrickFast/internal/levels"
)

// gameFlags configure the engine for play and sim.
type gameFlags struct {
	configPath string
	difficulty string
	levelsPath string
	startLevel int
	endless    bool
}

func (f *gameFlags) load() (config.GameConfig, *layout.Catalog, error) {
	preset, err := config.ParseDifficulty(f.difficulty)
	if err != nil {
		return config.GameConfig{}, nil, err
	}
	cfg, err := config.LoadWithPreset(f.configPath, preset)
	if err != nil {
		return config.GameConfig{}, nil, err
	}
	catalog, err := loadCatalog(f.levelsPath)
	if err != nil {
		return config.GameConfig{}, nil, err
	}
	return cfg, catalog, nil
}

// loadCatalog returns the built-in layouts, or the pack at path.
func loadCatalog(path string) (*layout.Catalog, error) {
	if path == "" {
		return levels.Builtin()
	}
	c, err := levels.NewLoader(path).Catalog()
	if err != nil {
		return nil, fmt.Errorf("load levels %s: %w", path, err)
	}
	return c, nil
}

func resolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
