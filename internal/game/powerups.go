package game

import (
	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/core"
)

// PowerupType identifies what a captured power-up does.
type PowerupType int

const (
	PowerupSplitBall PowerupType = iota // every ball (up to cap/3) splits into three
	PowerupMultiBall                    // up to three balls launch from the paddle
)

// Glyph returns the display character for a power-up type.
func (t PowerupType) Glyph() rune {
	switch t {
	case PowerupSplitBall:
		return 'S'
	case PowerupMultiBall:
		return 'M'
	default:
		return '?'
	}
}

// String returns the name of the power-up type.
func (t PowerupType) String() string {
	switch t {
	case PowerupSplitBall:
		return "split"
	case PowerupMultiBall:
		return "multi"
	default:
		return "?"
	}
}

// Color returns the power-up's display color.
func (t PowerupType) Color() core.Color {
	if t == PowerupSplitBall {
		return core.ColorMagenta
	}
	return core.ColorCyan
}

// Powerup is a falling pickup. Pos is the center.
type Powerup struct {
	Pos   core.Vec
	Size  float64
	Speed float64
	Type  PowerupType
}

// Rect returns the pickup's bounding square.
func (p Powerup) Rect() core.Rect {
	return core.CenteredRect(p.Pos.X, p.Pos.Y, p.Size, p.Size)
}

// Activation reports the outcome of one captured power-up.
type Activation struct {
	Type    PowerupType
	Added   int  // balls added
	Refused bool // the pool was full; the power-up was consumed anyway
}

// PowerupSystem spawns, moves and resolves falling power-ups.
type PowerupSystem struct {
	cfg     config.PowerupConfig
	canvasH float64
	rng     RNG
	items   []Powerup
}

// NewPowerupSystem creates an empty system drawing chance from rng.
func NewPowerupSystem(cfg config.PowerupConfig, canvasH float64, rng RNG) *PowerupSystem {
	return &PowerupSystem{
		cfg:     cfg,
		canvasH: canvasH,
		rng:     rng,
	}
}

// Items returns the falling power-ups. The slice is owned by the system.
func (s *PowerupSystem) Items() []Powerup {
	return s.items
}

// Clear removes every falling power-up.
func (s *PowerupSystem) Clear() {
	s.items = s.items[:0]
}

// MaybeSpawn rolls the drop chance for a destroyed brick and, on success,
// adds a power-up of a uniformly chosen type centered at at.
func (s *PowerupSystem) MaybeSpawn(at core.Vec) (Powerup, bool) {
	if s.rng.Float64() >= s.cfg.Chance {
		return Powerup{}, false
	}
	t := PowerupMultiBall
	if s.rng.Float64() < 0.5 {
		t = PowerupSplitBall
	}
	p := Powerup{Pos: at, Size: s.cfg.Size, Speed: s.cfg.FallSpeed, Type: t}
	s.items = append(s.items, p)
	return p, true
}

// Update moves every power-up down one step. A power-up touching the paddle
// is captured and applied to pool; otherwise it is dropped once it falls past
// the bottom of the field. Capture is tested first.
func (s *PowerupSystem) Update(paddle Paddle, pool *EntityPool) []Activation {
	var activations []Activation
	kept := s.items[:0]
	pr := paddle.Rect()

	for _, p := range s.items {
		p.Pos.Y += p.Speed

		if p.Rect().Intersects(pr) {
			activations = append(activations, Activate(p.Type, pool, paddle))
			continue
		}
		if p.Pos.Y < s.canvasH {
			kept = append(kept, p)
		}
	}

	s.items = kept
	return activations
}

// Activate applies a power-up effect to the pool.
func Activate(t PowerupType, pool *EntityPool, paddle Paddle) Activation {
	var (
		added int
		ok    bool
	)
	switch t {
	case PowerupSplitBall:
		added, ok = pool.SplitAll()
	default:
		added, ok = pool.LaunchFromPaddle(paddle, MaxLaunch)
	}
	return Activation{Type: t, Added: added, Refused: !ok}
}
