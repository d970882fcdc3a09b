package game

import (
	"math"
	"time"

	"github.com/bunTree/BrickFast/internal/core"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the engine.
type Snapshot struct {
	Tick  uint64
	State State

	CanvasW, CanvasH float64

	Paddle   core.Rect
	Balls    []Ball
	Bricks   []Brick // alive bricks only
	Powerups []Powerup

	Score     int
	Lives     int
	Level     int
	BallCount int
	BallCap   int
	FrameRate float64
	Debug     bool
	Endless   bool

	LayoutName  string
	LayoutIndex int
	LayoutCount int

	// Set during StateLevelTransition.
	TransitionLeft time.Duration
	Preview        []string

	RNGState uint64
}

// Hash returns a cheap fingerprint of the simulation state, for determinism
// checks. Rendering-only fields (frame rate, debug flag) are left out.
func (s Snapshot) Hash() uint64 {
	h := uint64(17)
	mix := func(v uint64) {
		h = h*31 + v
	}
	mixF := func(f float64) {
		mix(math.Float64bits(f))
	}
	mixI := func(i int) {
		mix(uint64(int64(i))) //#nosec G115 -- hashing only
	}

	mix(s.Tick)
	mixI(int(s.State))
	mixI(s.Score)
	mixI(s.Lives)
	mixI(s.Level)
	mixI(s.LayoutIndex)
	mix(uint64(s.TransitionLeft)) //#nosec G115 -- hashing only
	mix(s.RNGState)

	mixF(s.Paddle.X)
	mixF(s.Paddle.W)

	mixI(len(s.Balls))
	for _, b := range s.Balls {
		mixF(b.Pos.X)
		mixF(b.Pos.Y)
		mixF(b.Vel.X)
		mixF(b.Vel.Y)
	}

	mixI(len(s.Bricks))
	for _, b := range s.Bricks {
		mixI(b.Col)
		mixI(b.Row)
	}

	mixI(len(s.Powerups))
	for _, p := range s.Powerups {
		mixI(int(p.Type))
		mixF(p.Pos.X)
		mixF(p.Pos.Y)
	}
	return h
}
