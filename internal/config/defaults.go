package config

import (
	_ "embed"
)

//go:embed defaults/brickfast.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       20,
			Speed:        8,
			BottomOffset: 30,
		},
		Ball: BallConfig{
			Radius:      5,
			Speed:       5,
			SpawnOffset: 10,
			MaxBalls:    30,
		},
		Bricks: BrickConfig{
			Width:         35,
			Height:        10,
			Padding:       2,
			OffsetTop:     35,
			MinOffsetLeft: 5,
			Points:        []int{7, 5, 3, 2, 1},
		},
		Powerups: PowerupConfig{
			Chance:    0.35,
			Size:      20,
			FallSpeed: 2,
		},
		Performance: PerformanceConfig{
			MinFPS:           30,
			ShrinkRatio:      0.6,
			MinBalls:         5,
			BroadPhaseMargin: 10,
		},
		Gameplay: GameplayConfig{
			TransitionMs: 3000,
		},
	}
}
