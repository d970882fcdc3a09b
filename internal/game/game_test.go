package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/layout"
	"github.com/bunTree/BrickFast/internal/levels"
)

const frame = 16 * time.Millisecond

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Config.Canvas.Width == 0 {
		opts.Config = config.DefaultGameConfig()
	}
	if opts.Catalog == nil {
		opts.Catalog = levels.MustBuiltin()
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	g, err := New(opts)
	require.NoError(t, err)
	return g
}

// soloCatalog has a single layout with one brick centered at (400, 40).
func soloCatalog(t *testing.T) *layout.Catalog {
	t.Helper()
	c, err := layout.NewCatalog([]layout.Layout{
		{ID: "solo", Name: "Solo", Rows: 1, Cols: 1, Rule: layout.Rule{Kind: layout.RuleAll}},
	})
	require.NoError(t, err)
	return c
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// dropBall leaves one ball just above the floor, falling.
func dropBall(g *Game) {
	g.pool.Replace([]Ball{NewBall(100, 598, 0, 5, 5, 5)})
}

// clearAllBut destroys every brick except (col, row).
func clearAllBut(g *Game, col, row int) {
	for _, b := range g.field.ActiveSet(nil) {
		if b.Col != col || b.Row != row {
			g.field.Destroy(b.Col, b.Row)
		}
	}
}

type recorder struct {
	NopObserver
	scores []int
	lives  []int
	states [][2]State
	levels []string
	over   int
	done   int
}

func (r *recorder) ScoreChanged(s int) { r.scores = append(r.scores, s) }
func (r *recorder) LivesChanged(l int) { r.lives = append(r.lives, l) }
func (r *recorder) GameOver(int) { r.over++ }
func (r *recorder) Completed(int) { r.done++ }

func (r *recorder) StateChanged(from, to State) {
	r.states = append(r.states, [2]State{from, to})
}

func (r *recorder) LevelUp(_ int, l *layout.Layout) {
	r.levels = append(r.levels, l.Name)
}

func TestNewErrors(t *testing.T) {
	cat := levels.MustBuiltin()

	cfg := config.DefaultGameConfig()
	cfg.Canvas.Width = 0
	_, err := New(Options{Config: cfg, Catalog: cat})
	assert.ErrorIs(t, err, ErrInvalidCanvas)

	_, err = New(Options{Config: config.DefaultGameConfig()})
	assert.ErrorIs(t, err, layout.ErrEmptyCatalog)

	cfg = config.DefaultGameConfig()
	cfg.Ball.Speed = 0
	_, err = New(Options{Config: cfg, Catalog: cat})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestNewIsIdle(t *testing.T) {
	g := newTestGame(t, Options{})
	s := g.Snapshot()

	assert.Equal(t, StateIdle, s.State)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 1, s.BallCount)
	assert.Equal(t, "Basic", s.LayoutName)
	assert.Len(t, s.Bricks, 300)

	// Idle ticks do not move anything.
	before := s.Balls[0].Pos
	s = g.Step(input(), frame)
	assert.Equal(t, before, s.Balls[0].Pos)
}

func TestStart(t *testing.T) {
	g := newTestGame(t, Options{})
	s := g.Step(input(core.ActionStart), frame)

	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 1, s.BallCount)
	assert.Equal(t, 0, s.LayoutIndex)
	assert.Equal(t, 20, s.LayoutCount)
	assert.Equal(t, 300, len(s.Bricks))
	assert.Equal(t, 350.0, s.Paddle.X)
}

func TestPauseGatesUpdate(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Start(1)

	s := g.Step(input(core.ActionPause), frame)
	require.Equal(t, StatePaused, s.State)
	pos := s.Balls[0].Pos

	s = g.Step(input(core.ActionRight), frame)
	assert.Equal(t, pos, s.Balls[0].Pos)
	assert.Equal(t, 350.0, s.Paddle.X)

	s = g.Step(input(core.ActionPause), frame)
	assert.Equal(t, StatePlaying, s.State)
	assert.Less(t, s.Balls[0].Pos.Y, pos.Y)
}

func TestPauseIgnoredWhenIdle(t *testing.T) {
	g := newTestGame(t, Options{})
	g.TogglePause()
	assert.Equal(t, StateIdle, g.State())
}

func TestLifeLossAndGameOver(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, Options{Observer: rec})
	g.Start(1)

	dropBall(g)
	s := g.Step(input(), frame)
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 2, s.Lives)
	require.Len(t, s.Balls, 1)
	assert.Equal(t, core.Vec{X: 400, Y: 560}, s.Balls[0].Pos)
	assert.Equal(t, core.Vec{X: 0, Y: -5}, s.Balls[0].Vel)

	dropBall(g)
	g.Step(input(), frame)
	dropBall(g)
	s = g.Step(input(), frame)

	assert.Equal(t, StateGameOver, s.State)
	assert.Equal(t, 0, s.Lives)
	assert.Equal(t, 1, rec.over)
	assert.Equal(t, []int{3, 2, 1, 0}, rec.lives)
	assert.Equal(t, 3, g.Stats().LivesLost)

	// Frozen until restarted.
	for i := 0; i < 10; i++ {
		next := g.Step(input(core.ActionLeft), frame)
		assert.Equal(t, StateGameOver, next.State)
		assert.Equal(t, s.Score, next.Score)
		assert.Equal(t, s.Balls, next.Balls)
		assert.Equal(t, s.Paddle, next.Paddle)
	}

	s = g.Step(input(core.ActionStart), frame)
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, 1, s.BallCount)
}

func TestLevelClearTransition(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, Options{Observer: rec})
	g.Start(1)

	// Brick (10, 14) spans (401, 203)-(436, 213); the ball rises into its
	// bottom face.
	clearAllBut(g, 10, 14)
	g.pool.Replace([]Ball{NewBall(418.5, 222, 0, -5, 5, 5)})

	s := g.Step(input(core.ActionRight), frame)
	assert.Equal(t, StateLevelTransition, s.State)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 1, s.LayoutIndex)
	assert.Equal(t, "Twin Walls", s.LayoutName)
	assert.Len(t, s.Bricks, 120)
	assert.Empty(t, s.Powerups)
	assert.Equal(t, 3*time.Second, s.TransitionLeft)
	assert.Equal(t, g.Catalog().At(1).Preview(PreviewBrick, PreviewEmpty), s.Preview)
	assert.Equal(t, []string{"Twin Walls"}, rec.levels)

	s = g.Step(input(), time.Second)
	assert.Equal(t, StateLevelTransition, s.State)
	assert.Equal(t, 2*time.Second, s.TransitionLeft)

	s = g.Step(input(), 2*time.Second)
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 1, s.BallCount)
	assert.Equal(t, 350.0, s.Paddle.X)
	assert.Nil(t, s.Preview)
	assert.Equal(t, 1, g.Stats().LevelsCleared)
}

func TestPauseIgnoredDuringTransition(t *testing.T) {
	g := newTestGame(t, Options{Catalog: soloCatalog(t), Endless: true})
	g.Start(1)
	g.pool.Replace([]Ball{NewBall(400, 52, 0, -5, 5, 5)})
	g.Step(input(), frame)
	require.Equal(t, StateLevelTransition, g.State())

	g.Step(input(core.ActionPause), frame)
	assert.Equal(t, StateLevelTransition, g.State())
}

func TestLastLevelCompletes(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, Options{Catalog: soloCatalog(t), Observer: rec})
	g.Start(1)
	g.pool.Replace([]Ball{NewBall(400, 52, 0, -5, 5, 5)})

	s := g.Step(input(), frame)
	assert.Equal(t, StateCompleted, s.State)
	assert.Equal(t, 7, s.Score)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 1, g.Session().Level, "completion keeps the last layout's level")
	assert.Equal(t, g.Catalog().At(0).Name, s.LayoutName)
	assert.Equal(t, 1, rec.done)

	s = g.Step(input(), frame)
	assert.Equal(t, StateCompleted, s.State)
}

func TestEndlessWraps(t *testing.T) {
	g := newTestGame(t, Options{Catalog: soloCatalog(t), Endless: true})
	g.Start(1)
	g.pool.Replace([]Ball{NewBall(400, 52, 0, -5, 5, 5)})

	s := g.Step(input(), frame)
	assert.Equal(t, StateLevelTransition, s.State)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 0, s.LayoutIndex)
	assert.Len(t, s.Bricks, 1)
	assert.True(t, s.Endless)
}

func TestSplitCapture(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Start(1)
	g.powerups.items = append(g.powerups.items, Powerup{
		Pos: core.Vec{X: 400, Y: 575}, Size: 20, Speed: 2, Type: PowerupSplitBall,
	})

	s := g.Step(input(), frame)
	assert.Equal(t, 3, s.BallCount)
	assert.Empty(t, s.Powerups)
	assert.Equal(t, 1, g.Stats().PowerupsCaught)
	assert.Equal(t, 3, g.Stats().PeakBalls)
}

func TestGovernorShrinksDuringPlay(t *testing.T) {
	g := newTestGame(t, Options{})
	g.Start(1)

	balls := make([]Ball, 20)
	for i := range balls {
		balls[i] = NewBall(100+float64(i)*10, 400, 0, -1, 5, 5)
	}
	g.pool.Replace(balls)

	s := g.Step(input(), 100*time.Millisecond)
	assert.Equal(t, 12, s.BallCount)
	assert.Equal(t, 100.0, s.Balls[0].Pos.X)
	assert.InDelta(t, 10.0, s.FrameRate, 1e-9)
	assert.Equal(t, 1, g.Stats().Shrinks)
	assert.Equal(t, 8, g.Stats().ShrunkBalls)

	s = g.Step(input(), frame)
	assert.Equal(t, 12, s.BallCount)
}

func TestDebugToggle(t *testing.T) {
	g := newTestGame(t, Options{})
	assert.True(t, g.Step(input(core.ActionDebug), frame).Debug)
	assert.False(t, g.Step(input(core.ActionDebug), frame).Debug)
}

func TestStartLevelAndClamp(t *testing.T) {
	g := newTestGame(t, Options{StartLevel: 4})
	s := g.Step(input(core.ActionStart), frame)
	assert.Equal(t, 4, s.Level)
	assert.Equal(t, "Pyramid", s.LayoutName)

	g.Start(99)
	assert.Equal(t, 20, g.Session().Level)

	g.Start(-3)
	assert.Equal(t, 1, g.Session().Level)
}

func TestObserverLifecycle(t *testing.T) {
	rec := &recorder{}
	g := newTestGame(t, Options{Observer: rec})
	g.Start(1)
	g.TogglePause()
	g.TogglePause()

	assert.Equal(t, []int{0}, rec.scores)
	assert.Equal(t, []int{3}, rec.lives)
	assert.Equal(t, [][2]State{
		{StateIdle, StatePlaying},
		{StatePlaying, StatePaused},
		{StatePaused, StatePlaying},
	}, rec.states)
}

// track follows the first ball with the paddle.
func track(s Snapshot) core.InputFrame {
	if len(s.Balls) == 0 {
		return input()
	}
	cx := s.Paddle.X + s.Paddle.W/2
	switch x := s.Balls[0].Pos.X; {
	case x < cx-4:
		return input(core.ActionLeft)
	case x > cx+4:
		return input(core.ActionRight)
	}
	return input()
}

func TestInvariantsHoldOverLongRun(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Powerups.Chance = 1
	g := newTestGame(t, Options{Config: cfg, Endless: true, Seed: 7})
	g.Start(1)

	s := g.Snapshot()
	score, peakScore, sawPowerup := 0, 0, false
	for i := 0; i < 6000; i++ {
		in := track(s)
		if s.State.Terminal() {
			in.Set(core.ActionStart)
			score = 0
		}
		s = g.Step(in, frame)

		require.LessOrEqual(t, s.BallCount, s.BallCap)
		require.GreaterOrEqual(t, s.Score, score, "score never decreases")
		score = s.Score
		peakScore = max(peakScore, score)
		sawPowerup = sawPowerup || len(s.Powerups) > 0
		require.GreaterOrEqual(t, s.Paddle.X, 0.0)
		require.LessOrEqual(t, s.Paddle.Right(), 800.0)
		for _, b := range s.Balls {
			require.InDelta(t, b.Speed, b.Magnitude(), SpeedTolerance, "tick %d", s.Tick)
		}
	}
	assert.Positive(t, peakScore)
	assert.True(t, sawPowerup)
}

func TestDeterministicRuns(t *testing.T) {
	run := func() uint64 {
		g := newTestGame(t, Options{Seed: 99})
		g.Start(1)
		s := g.Snapshot()
		for i := 0; i < 2000; i++ {
			s = g.Step(track(s), frame)
		}
		return s.Hash()
	}
	assert.Equal(t, run(), run())
}

func TestRestartReplaysSeed(t *testing.T) {
	g := newTestGame(t, Options{Seed: 5})
	g.Start(1)
	first := g.Snapshot().RNGState
	for i := 0; i < 50; i++ {
		g.rng.Next()
	}
	g.Start(1)
	assert.Equal(t, first, g.Snapshot().RNGState)
}

func TestLevelSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	g := newTestGame(t, Options{Tracer: tp.Tracer(TracerName)})
	g.Start(1)
	for i := 0; i < 3; i++ {
		dropBall(g)
		g.Step(input(), frame)
	}
	require.Equal(t, StateGameOver, g.State())

	ended := rec.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "brickfast.level", span.Name())

	var names []string
	for _, e := range span.Events() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"life_lost", "life_lost", "life_lost"}, names)
	assert.Contains(t, span.Attributes(), attribute.String("outcome", "game_over"))
	assert.Contains(t, span.Attributes(), attribute.String("layout", "Basic"))

	g.Start(1)
	g.Close()
	require.Len(t, rec.Ended(), 2)
	assert.Contains(t, rec.Ended()[1].Attributes(), attribute.String("outcome", "closed"))
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "transition", StateLevelTransition.String())
	assert.True(t, StateCompleted.Terminal())
	assert.False(t, StatePaused.Terminal())
}
