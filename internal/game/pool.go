package game

import "github.com/bunTree/BrickFast/internal/core"

// Launch directions for new balls. Children of a split and the side balls of
// a paddle launch go up and outward; the first launched ball goes straight up.
var (
	dirUp      = core.Vec{X: 0, Y: -1}
	dirUpLeft  = core.Vec{X: -3, Y: -4}
	dirUpRight = core.Vec{X: 3, Y: -4}
)

const (
	// MaxLaunch is the most balls a single paddle launch adds.
	MaxLaunch = 3

	// launchSpread is the horizontal distance of the side balls from the
	// paddle center.
	launchSpread = 20.0
)

// EntityPool owns the live balls and enforces the population cap.
type EntityPool struct {
	balls       []Ball
	capacity    int
	radius      float64
	speed       float64
	spawnOffset float64
}

// NewEntityPool creates an empty pool.
func NewEntityPool(capacity int, radius, speed, spawnOffset float64) *EntityPool {
	return &EntityPool{
		balls:       make([]Ball, 0, capacity),
		capacity:    capacity,
		radius:      radius,
		speed:       speed,
		spawnOffset: spawnOffset,
	}
}

// Len returns the number of live balls.
func (p *EntityPool) Len() int {
	return len(p.balls)
}

// Cap returns the population cap.
func (p *EntityPool) Cap() int {
	return p.capacity
}

// Full reports whether the pool is at or above its cap.
func (p *EntityPool) Full() bool {
	return len(p.balls) >= p.capacity
}

// Balls returns the live balls. The slice is owned by the pool and is only
// valid until the next mutation.
func (p *EntityPool) Balls() []Ball {
	return p.balls
}

// Replace swaps in a new ball list, e.g. the survivors of a frame.
func (p *EntityPool) Replace(balls []Ball) {
	p.balls = balls
}

// Clear removes every ball.
func (p *EntityPool) Clear() {
	p.balls = p.balls[:0]
}

// ResetToSingle leaves exactly one ball, spawned above the paddle center and
// heading straight up.
func (p *EntityPool) ResetToSingle(paddle Paddle) {
	p.balls = append(p.balls[:0], p.newBall(paddle.CenterX(), paddle.Y-p.spawnOffset, dirUp))
}

// Collapse trims the pool to target balls keeping the first ball and the
// newest target-1. Returns how many balls were removed.
func (p *EntityPool) Collapse(target int) int {
	n := len(p.balls)
	if target < 1 || n <= target {
		return 0
	}
	kept := make([]Ball, 0, p.capacity)
	kept = append(kept, p.balls[0])
	kept = append(kept, p.balls[n-(target-1):]...)
	p.balls = kept
	return n - target
}

// EnforceCap collapses the pool to its cap.
func (p *EntityPool) EnforceCap() int {
	return p.Collapse(p.capacity)
}

// SplitAll turns a bounded prefix of the balls into three: the parent plus
// two children leaving up-left and up-right from the parent's position.
// At most cap/3 parents split; the rest are kept untouched after the new
// group and the result is truncated to the cap. Returns the number of balls
// added, and false when the pool was already full.
func (p *EntityPool) SplitAll() (int, bool) {
	if p.Full() {
		return 0, false
	}

	before := len(p.balls)
	parents := min(before, p.capacity/3)

	next := make([]Ball, 0, p.capacity)
	for i := 0; i < parents; i++ {
		parent := p.balls[i]
		next = append(next, parent)
		if len(next)+2 <= p.capacity {
			next = append(next,
				p.newBall(parent.Pos.X, parent.Pos.Y, dirUpLeft),
				p.newBall(parent.Pos.X, parent.Pos.Y, dirUpRight),
			)
		}
	}
	next = append(next, p.balls[parents:]...)
	if len(next) > p.capacity {
		next = next[:p.capacity]
	}

	p.balls = next
	p.NormalizeAll()
	return len(p.balls) - before, true
}

// LaunchFromPaddle adds up to n (at most MaxLaunch) balls above the paddle:
// straight up from the center, then up-left and up-right from either side.
// Returns the number of balls added, and false when the pool was already full.
func (p *EntityPool) LaunchFromPaddle(paddle Paddle, n int) (int, bool) {
	if p.Full() {
		return 0, false
	}
	n = min(n, MaxLaunch, p.capacity-len(p.balls))

	cx := paddle.CenterX()
	y := paddle.Y - p.spawnOffset
	spawns := [MaxLaunch]Ball{
		p.newBall(cx, y, dirUp),
		p.newBall(cx-launchSpread, y, dirUpLeft),
		p.newBall(cx+launchSpread, y, dirUpRight),
	}
	p.balls = append(p.balls, spawns[:n]...)

	p.NormalizeAll()
	return n, true
}

// NormalizeAll restores the speed invariant on every drifted ball.
func (p *EntityPool) NormalizeAll() int {
	fixed := 0
	for i := range p.balls {
		if p.balls[i].Drifted() {
			p.balls[i].Normalize()
			fixed++
		}
	}
	return fixed
}

func (p *EntityPool) newBall(x, y float64, dir core.Vec) Ball {
	return NewBall(x, y, dir.X, dir.Y, p.radius, p.speed)
}
