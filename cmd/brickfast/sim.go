package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/game"
)

// autopilotDeadZone is how far off-center the paddle may be before it moves.
const autopilotDeadZone = 4.0

func newSimCmd(env config.Env, global *globalFlags) *cobra.Command {
	flags := gameFlags{
		configPath: env.ConfigPath,
		difficulty: env.Difficulty,
		levelsPath: env.Levels,
		startLevel: 1,
	}
	var (
		ticks    int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a headless game with an automatic paddle",
		Long: `Simulate a game without a terminal UI. The paddle follows the lowest
falling ball. The run stops after --ticks frames or when the game ends, then a
summary is printed.

--interval is the frame time reported to the engine; set it above 33ms to
watch the frame-rate governor shrink the ball population.

Examples:
  brickfast sim --ticks 20000 --seed 3
  brickfast sim --interval 50ms --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, catalog, err := flags.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), global.logLevel)
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = time.Second / time.Duration(max(1, global.fps))
			}

			g, err := game.New(game.Options{
				Config:     cfg,
				Catalog:    catalog,
				Seed:       resolveSeed(global.seed),
				StartLevel: flags.startLevel,
				Endless:    flags.endless,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			defer g.Close()

			s := simulate(g, ticks, interval)
			printSummary(cmd.OutOrStdout(), s, g.Stats())
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", flags.configPath, "Path to custom game config YAML")
	cmd.Flags().StringVar(&flags.difficulty, "difficulty", flags.difficulty, "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flags.levelsPath, "levels", flags.levelsPath, "Level pack file or directory")
	cmd.Flags().IntVar(&flags.startLevel, "start-level", flags.startLevel, "Level to start at")
	cmd.Flags().BoolVar(&flags.endless, "endless", false, "Wrap around after the last layout")
	cmd.Flags().IntVar(&ticks, "ticks", 3600, "Maximum number of frames to simulate")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Frame time reported to the engine (default 1/fps)")
	return cmd
}

// simulate starts g and steps it until it ends or ticks run out.
func simulate(g *game.Game, ticks int, interval time.Duration) game.Snapshot {
	g.Start(g.Session().Level)
	s := g.Snapshot()
	for i := 0; i < ticks && !s.State.Terminal(); i++ {
		s = g.Step(autopilot(s), interval)
	}
	return s
}

// autopilot steers the paddle under the lowest falling ball, or the first
// ball when none is falling.
func autopilot(s game.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if len(s.Balls) == 0 {
		return in
	}

	target := s.Balls[0]
	for _, b := range s.Balls[1:] {
		if b.Vel.Y > 0 && (target.Vel.Y <= 0 || b.Pos.Y > target.Pos.Y) {
			target = b
		}
	}

	center := s.Paddle.X + s.Paddle.W/2
	switch {
	case target.Pos.X < center-autopilotDeadZone:
		in.Set(core.ActionLeft)
	case target.Pos.X > center+autopilotDeadZone:
		in.Set(core.ActionRight)
	}
	return in
}

func printSummary(w io.Writer, s game.Snapshot, st game.Stats) {
	fmt.Fprintf(w, "state:            %s\n", s.State)
	fmt.Fprintf(w, "ticks:            %d\n", st.Ticks)
	fmt.Fprintf(w, "score:            %d\n", s.Score)
	fmt.Fprintf(w, "level:            %d (%s)\n", s.Level, s.LayoutName)
	fmt.Fprintf(w, "lives:            %d\n", s.Lives)
	fmt.Fprintf(w, "bricks destroyed: %d\n", st.BricksDestroyed)
	fmt.Fprintf(w, "levels cleared:   %d\n", st.LevelsCleared)
	fmt.Fprintf(w, "powerups:         %d dropped, %d caught, %d refused\n", st.PowerupsSpawned, st.PowerupsCaught, st.Refused)
	fmt.Fprintf(w, "peak balls:       %d\n", st.PeakBalls)
	fmt.Fprintf(w, "governor shrinks: %d (%d balls removed)\n", st.Shrinks, st.ShrunkBalls)
	fmt.Fprintf(w, "final state hash: %016x\n", s.Hash())
}
