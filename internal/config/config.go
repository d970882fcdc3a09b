// Package config provides YAML-based game configuration loading,
// environment overrides and difficulty presets.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// GameConfig contains all tunable parameters of the simulation.
type GameConfig struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Paddle      PaddleConfig      `yaml:"paddle"`
	Ball        BallConfig        `yaml:"ball"`
	Bricks      BrickConfig       `yaml:"bricks"`
	Powerups    PowerupConfig     `yaml:"powerups"`
	Performance PerformanceConfig `yaml:"performance"`
	Gameplay    GameplayConfig    `yaml:"gameplay"`
}

// CanvasConfig is the playfield size in playfield units.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the paddle geometry and speed.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // units per frame at full intent
	BottomOffset float64 `yaml:"bottom_offset"` // paddle top = canvas height - bottom_offset
}

// BallConfig defines ball geometry and the population cap.
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`        // nominal speed, units per frame
	SpawnOffset float64 `yaml:"spawn_offset"` // spawn height above the paddle top
	MaxBalls    int     `yaml:"max_balls"`
}

// BrickConfig defines the brick grid metrics.
type BrickConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Padding       float64 `yaml:"padding"`
	OffsetTop     float64 `yaml:"offset_top"`
	MinOffsetLeft float64 `yaml:"min_offset_left"`
	Points        []int   `yaml:"points"` // indexed by row mod len
}

// PowerupConfig defines drop chance and falling pickups.
type PowerupConfig struct {
	Chance    float64 `yaml:"chance"`
	Size      float64 `yaml:"size"`
	FallSpeed float64 `yaml:"fall_speed"`
}

// PerformanceConfig tunes the frame-rate governor and the brick broad phase.
type PerformanceConfig struct {
	MinFPS           float64 `yaml:"min_fps"`
	ShrinkRatio      float64 `yaml:"shrink_ratio"`
	MinBalls         int     `yaml:"min_balls"`
	BroadPhaseMargin float64 `yaml:"broad_phase_margin"`
}

// GameplayConfig holds session rules.
type GameplayConfig struct {
	TransitionMs int  `yaml:"transition_ms"`
	Endless      bool `yaml:"endless"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate rejects configurations the engine cannot run with.
func (c GameConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Canvas.Width > 0 && c.Canvas.Height > 0, "canvas %gx%g must be positive", c.Canvas.Width, c.Canvas.Height)
	check(c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle size must be positive")
	check(c.Paddle.Width <= c.Canvas.Width, "paddle width %g exceeds canvas width %g", c.Paddle.Width, c.Canvas.Width)
	check(c.Paddle.Speed > 0, "paddle speed must be positive")
	check(c.Paddle.BottomOffset > 0 && c.Paddle.BottomOffset < c.Canvas.Height, "paddle bottom offset %g out of range", c.Paddle.BottomOffset)
	check(c.Ball.Radius > 0, "ball radius must be positive")
	check(c.Ball.Speed > 0, "ball speed must be positive")
	check(c.Ball.MaxBalls >= 1, "max balls %d must be at least 1", c.Ball.MaxBalls)
	check(c.Bricks.Width > 0 && c.Bricks.Height > 0, "brick size must be positive")
	check(c.Bricks.Padding >= 0, "brick padding must not be negative")
	check(len(c.Bricks.Points) > 0, "brick points must not be empty")
	check(c.Powerups.Chance >= 0 && c.Powerups.Chance <= 1, "powerup chance %g outside [0,1]", c.Powerups.Chance)
	check(c.Powerups.Size > 0, "powerup size must be positive")
	check(c.Powerups.FallSpeed > 0, "powerup fall speed must be positive")
	check(c.Performance.MinFPS >= 0, "min fps must not be negative")
	check(c.Performance.ShrinkRatio > 0 && c.Performance.ShrinkRatio <= 1, "shrink ratio %g outside (0,1]", c.Performance.ShrinkRatio)
	check(c.Performance.MinBalls >= 1, "governor min balls must be at least 1")
	check(c.Gameplay.TransitionMs >= 0, "transition must not be negative")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts paddle width, drop chance and ball cap for a preset.
// Normal leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width *= 1.3
		cfg.Powerups.Chance = min(1, cfg.Powerups.Chance+0.1)
	case DifficultyHard:
		cfg.Paddle.Width *= 0.8
		cfg.Powerups.Chance = max(0, cfg.Powerups.Chance-0.1)
		cfg.Ball.MaxBalls = max(1, cfg.Ball.MaxBalls*2/3)
	}
	if cfg.Paddle.Width > cfg.Canvas.Width {
		cfg.Paddle.Width = cfg.Canvas.Width
	}
}
