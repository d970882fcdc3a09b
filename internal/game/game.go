// Package game implements the BrickFast simulation engine: bricks, balls,
// power-ups, the frame-rate governor and the game state machine.
//
// The engine is single-threaded. The driver calls Step once per frame with
// the input for that frame and the time since the previous frame, and renders
// the returned Snapshot.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/layout"
)

// TracerName is the instrumentation scope used for engine spans.
const TracerName = "github.com/bunTree/BrickFast/internal/game"

// Preview glyphs for the upcoming layout.
const (
	PreviewBrick = '█'
	PreviewEmpty = '·'
)

// ErrInvalidCanvas is returned by New for a non-positive playfield.
var ErrInvalidCanvas = errors.New("game: invalid canvas")

// State is the lifecycle state of a game.
type State int

const (
	StateIdle            State = iota // created, waiting for Start
	StatePlaying                      // simulation running
	StatePaused                       // simulation frozen by the player
	StateLevelTransition              // between levels, counting down
	StateGameOver                     // no lives left
	StateCompleted                    // last layout cleared (campaign only)
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLevelTransition:
		return "transition"
	case StateGameOver:
		return "gameover"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends a run.
func (s State) Terminal() bool {
	return s == StateGameOver || s == StateCompleted
}

// Options configures a Game.
type Options struct {
	Config  config.GameConfig
	Catalog *layout.Catalog

	Seed       int64
	StartLevel int  // level used by Start actions; defaults to 1
	Endless    bool // wrap past the last layout instead of completing

	Logger   *log.Logger  // defaults to a discarding logger
	Tracer   trace.Tracer // defaults to the global provider's tracer
	Observer Observer     // defaults to NopObserver
}

// Stats counts notable events of the current run.
type Stats struct {
	Ticks           uint64
	PeakBalls       int
	BricksDestroyed int
	PowerupsSpawned int
	PowerupsCaught  int
	Refused         int // power-ups consumed while the pool was full
	Trimmed         int // balls dropped by the cap at frame start
	Shrinks         int // governor collapses
	ShrunkBalls     int // balls removed by the governor
	LivesLost       int
	LevelsCleared   int
}

// Game owns the session, paddle, ball pool, brick field and power-ups.
type Game struct {
	cfg      config.GameConfig
	catalog  *layout.Catalog
	endless  bool
	seed     int64
	logger   *log.Logger
	tracer   trace.Tracer
	observer Observer

	state      State
	session    Session
	startLevel int

	paddle   Paddle
	rng      *SimpleRNG
	pool     *EntityPool
	field    *BrickField
	powerups *PowerupSystem
	resolver *CollisionResolver
	governor *PerformanceGovernor

	debug          bool
	transitionLeft time.Duration
	stats          Stats

	span trace.Span
}

// New validates the options and returns an idle game showing its start level.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg.Canvas.Width <= 0 || cfg.Canvas.Height <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidCanvas, cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return nil, fmt.Errorf("game: %w", layout.ErrEmptyCatalog)
	}

	g := &Game{
		cfg:      cfg,
		catalog:  opts.Catalog,
		endless:  opts.Endless || cfg.Gameplay.Endless,
		seed:     opts.Seed,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
		observer: opts.Observer,
		rng:      NewSimpleRNG(opts.Seed),
		paddle: Paddle{
			Y:     cfg.Canvas.Height - cfg.Paddle.BottomOffset,
			W:     cfg.Paddle.Width,
			H:     cfg.Paddle.Height,
			Speed: cfg.Paddle.Speed,
		},
		pool:     NewEntityPool(cfg.Ball.MaxBalls, cfg.Ball.Radius, cfg.Ball.Speed, cfg.Ball.SpawnOffset),
		field:    NewBrickField(cfg.Bricks, cfg.Canvas.Width),
		resolver: NewCollisionResolver(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Performance.BroadPhaseMargin),
		governor: NewPerformanceGovernor(cfg.Performance),
	}
	g.powerups = NewPowerupSystem(cfg.Powerups, cfg.Canvas.Height, g.rng)

	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer(TracerName)
	}
	if g.observer == nil {
		g.observer = NopObserver{}
	}

	g.startLevel = g.clampLevel(opts.StartLevel)
	g.session = NewSession(g.startLevel)
	g.field.Build(g.catalog, g.startLevel)
	g.paddle.Center(cfg.Canvas.Width)
	g.pool.ResetToSingle(g.paddle)

	return g, nil
}

// Start begins a new run at level from any state: score 0, three lives, the
// level's layout rebuilt, one ball on a centered paddle.
func (g *Game) Start(level int) {
	level = g.clampLevel(level)
	g.endSpan("restarted")

	*g.rng = *NewSimpleRNG(g.seed)
	g.startLevel = level
	g.session = NewSession(level)
	g.stats = Stats{}
	g.transitionLeft = 0

	g.field.Build(g.catalog, level)
	g.powerups.Clear()
	g.paddle.Center(g.cfg.Canvas.Width)
	g.pool.ResetToSingle(g.paddle)

	g.logger.Info("game started", "level", level, "layout", g.field.Layout().Name, "endless", g.endless, "seed", g.seed)
	g.observer.ScoreChanged(g.session.Score)
	g.observer.LivesChanged(g.session.Lives)
	g.beginSpan()
	g.setState(StatePlaying)
}

// TogglePause switches between Playing and Paused. Other states ignore it.
func (g *Game) TogglePause() {
	switch g.state {
	case StatePlaying:
		g.setState(StatePaused)
	case StatePaused:
		g.setState(StatePlaying)
	}
}

// ToggleDebug flips the debug overlay flag.
func (g *Game) ToggleDebug() {
	g.debug = !g.debug
	g.logger.Debug("debug overlay", "enabled", g.debug)
}

// Step advances the game by one frame and returns the resulting snapshot.
// elapsed is the wall time since the previous Step; it drives the frame-rate
// governor and the level transition countdown.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) Snapshot {
	g.stats.Ticks++
	g.governor.Measure(elapsed)

	if in.Has(core.ActionDebug) {
		g.ToggleDebug()
	}
	if in.Has(core.ActionStart) {
		g.Start(g.startLevel)
	} else if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	switch g.state {
	case StatePlaying:
		g.update(in.Intent())
	case StateLevelTransition:
		g.countdown(elapsed)
	}

	return g.Snapshot()
}

// update runs one Playing frame: paddle, balls, power-ups, governor, then the
// level-clear check.
func (g *Game) update(intent int) {
	g.paddle.Move(intent, g.cfg.Canvas.Width)

	res := g.resolver.Resolve(g.pool, g.paddle, g.field, g.powerups)
	g.stats.BricksDestroyed += res.BricksHit
	g.stats.PowerupsSpawned += res.Spawned
	if res.Trimmed > 0 {
		g.stats.Trimmed += res.Trimmed
		g.logger.Debug("ball cap enforced", "removed", res.Trimmed, "cap", g.pool.Cap())
	}
	if res.Normalized > 0 {
		g.logger.Debug("ball speed corrected", "balls", res.Normalized)
	}
	if res.Points > 0 {
		g.session.AddScore(res.Points)
		g.observer.ScoreChanged(g.session.Score)
	}

	if res.Exhausted && g.loseLife() {
		return
	}

	for _, a := range g.powerups.Update(g.paddle, g.pool) {
		g.applied(a)
	}

	if removed := g.governor.Regulate(g.pool); removed > 0 {
		g.stats.Shrinks++
		g.stats.ShrunkBalls += removed
		g.logger.Warn("frame rate low, shrinking balls", "fps", g.governor.Rate(), "removed", removed, "balls", g.pool.Len())
		g.spanEvent("governor_shrink",
			attribute.Float64("fps", g.governor.Rate()),
			attribute.Int("removed", removed),
		)
	}

	g.stats.PeakBalls = max(g.stats.PeakBalls, g.pool.Len())

	if res.Cleared && g.field.IsCleared() {
		g.levelUp()
	}
}

func (g *Game) applied(a Activation) {
	g.stats.PowerupsCaught++
	if a.Refused {
		g.stats.Refused++
		g.logger.Warn("ball cap reached, powerup dropped", "type", a.Type, "balls", g.pool.Len(), "cap", g.pool.Cap())
		g.spanEvent("capacity_exhausted", attribute.String("powerup", a.Type.String()))
		return
	}
	g.logger.Debug("powerup caught", "type", a.Type, "added", a.Added, "balls", g.pool.Len())
}

// loseLife handles a frame that ended without balls. Reports whether the game
// is over.
func (g *Game) loseLife() bool {
	g.stats.LivesLost++
	over := g.session.LoseLife()
	g.observer.LivesChanged(g.session.Lives)
	g.logger.Info("life lost", "lives", g.session.Lives, "level", g.session.Level, "score", g.session.Score)
	g.spanEvent("life_lost", attribute.Int("lives", g.session.Lives))

	if over {
		g.endSpan("game_over")
		g.setState(StateGameOver)
		g.observer.GameOver(g.session.Score)
		return true
	}

	g.pool.ResetToSingle(g.paddle)
	return false
}

func (g *Game) levelUp() {
	g.stats.LevelsCleared++
	g.endSpan("cleared")

	next := g.session.Level + 1
	if !g.endless && next > g.catalog.Len() {
		g.logger.Info("all levels cleared", "score", g.session.Score)
		g.setState(StateCompleted)
		g.observer.Completed(g.session.Score)
		return
	}

	g.session.Level = next
	g.field.Build(g.catalog, next)
	g.powerups.Clear()
	g.transitionLeft = time.Duration(g.cfg.Gameplay.TransitionMs) * time.Millisecond

	g.logger.Info("level cleared", "next", next, "layout", g.field.Layout().Name, "score", g.session.Score)
	g.setState(StateLevelTransition)
	g.observer.LevelUp(next, g.field.Layout())
}

func (g *Game) countdown(elapsed time.Duration) {
	if elapsed > 0 {
		g.transitionLeft -= elapsed
	}
	if g.transitionLeft > 0 {
		return
	}

	g.transitionLeft = 0
	g.paddle.Center(g.cfg.Canvas.Width)
	g.pool.ResetToSingle(g.paddle)
	g.beginSpan()
	g.setState(StatePlaying)
}

func (g *Game) setState(s State) {
	if s == g.state {
		return
	}
	from := g.state
	g.state = s
	g.logger.Debug("state changed", "from", from, "to", s)
	g.observer.StateChanged(from, s)
}

func (g *Game) clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if !g.endless && level > g.catalog.Len() {
		return g.catalog.Len()
	}
	return level
}

func (g *Game) beginSpan() {
	_, g.span = g.tracer.Start(context.Background(), "brickfast.level",
		trace.WithAttributes(
			attribute.Int("level", g.session.Level),
			attribute.String("layout", g.field.Layout().Name),
			attribute.Int("bricks", g.field.AliveCount()),
		),
	)
}

func (g *Game) spanEvent(name string, attrs ...attribute.KeyValue) {
	if g.span != nil {
		g.span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}

func (g *Game) endSpan(outcome string) {
	if g.span == nil {
		return
	}
	g.span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("score", g.session.Score),
		attribute.Int("peak_balls", g.stats.PeakBalls),
	)
	g.span.End()
	g.span = nil
}

// Close ends any open trace span.
func (g *Game) Close() {
	g.endSpan("closed")
}

// State returns the current lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Session returns the current score, lives and level.
func (g *Game) Session() Session {
	return g.session
}

// Stats returns the run counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// Paddle returns the paddle.
func (g *Game) Paddle() Paddle {
	return g.paddle
}

// Catalog returns the layout catalog in use.
func (g *Game) Catalog() *layout.Catalog {
	return g.catalog
}

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	l := g.field.Layout()
	s := Snapshot{
		Tick:        g.stats.Ticks,
		State:       g.state,
		CanvasW:     g.cfg.Canvas.Width,
		CanvasH:     g.cfg.Canvas.Height,
		Paddle:      g.paddle.Rect(),
		Balls:       append([]Ball(nil), g.pool.Balls()...),
		Bricks:      g.field.ActiveSet(make([]Brick, 0, g.field.AliveCount())),
		Powerups:    append([]Powerup(nil), g.powerups.Items()...),
		Score:       g.session.Score,
		Lives:       g.session.Lives,
		Level:       g.session.Level,
		BallCount:   g.pool.Len(),
		BallCap:     g.pool.Cap(),
		FrameRate:   g.governor.Rate(),
		Debug:       g.debug,
		Endless:     g.endless,
		LayoutName:  l.Name,
		LayoutIndex: g.field.LayoutIndex(),
		LayoutCount: g.catalog.Len(),
		RNGState:    g.rng.State(),
	}
	if g.state == StateLevelTransition {
		s.TransitionLeft = g.transitionLeft
		s.Preview = l.Preview(PreviewBrick, PreviewEmpty)
	}
	return s
}
