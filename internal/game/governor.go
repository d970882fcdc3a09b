package game

import (
	"math"
	"time"

	"github.com/bunTree/BrickFast/internal/config"
)

// PerformanceGovernor shrinks the ball population when the measured frame
// rate drops too low.
type PerformanceGovernor struct {
	minFPS   float64
	ratio    float64
	minBalls int

	rate    float64
	shrinks int
}

// NewPerformanceGovernor creates a governor from the performance settings.
func NewPerformanceGovernor(cfg config.PerformanceConfig) *PerformanceGovernor {
	return &PerformanceGovernor{
		minFPS:   cfg.MinFPS,
		ratio:    cfg.ShrinkRatio,
		minBalls: cfg.MinBalls,
	}
}

// Measure records the frame interval and returns the instantaneous rate in
// frames per second. A non-positive interval yields a rate of zero, which
// never triggers a shrink.
func (g *PerformanceGovernor) Measure(elapsed time.Duration) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		g.rate = 0
		return 0
	}
	g.rate = 1000 / ms
	return g.rate
}

// Rate returns the last measured rate.
func (g *PerformanceGovernor) Rate() float64 {
	return g.rate
}

// Shrinks returns how many times the governor has collapsed the pool.
func (g *PerformanceGovernor) Shrinks() int {
	return g.shrinks
}

// Target returns the population the governor would shrink n balls to.
func (g *PerformanceGovernor) Target(n int) int {
	return max(g.minBalls, int(math.Floor(float64(n)*g.ratio)))
}

// Regulate collapses the pool when the last measured rate is below the
// minimum and more than the minimum number of balls are live. Returns the
// number of balls removed.
func (g *PerformanceGovernor) Regulate(pool *EntityPool) int {
	n := pool.Len()
	if g.rate <= 0 || g.rate >= g.minFPS || n <= g.minBalls {
		return 0
	}
	removed := pool.Collapse(g.Target(n))
	if removed > 0 {
		g.shrinks++
	}
	return removed
}
