// brickfast is a brick-breaking arcade game for the terminal.
//
// Usage:
//
//	brickfast play               - Play interactively
//	brickfast levels [name|#]    - List layouts or preview one
//	brickfast sim                - Run a headless game with an automatic paddle
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--log-level <lvl>   - debug, info, warn or error
//
// Every flag default can also come from a BRICKFAST_* environment variable.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/telemetry"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(env).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	fps      int
	seed     int64
	logLevel string
}

func newRootCmd(env config.Env) *cobra.Command {
	var (
		flags    globalFlags
		shutdown telemetry.Shutdown
	)

	root := &cobra.Command{
		Use:   "brickfast",
		Short: "BrickFast - break bricks in your terminal",
		Long: `BrickFast is a terminal brick breaker with twenty built-in layouts,
multi-ball power-ups and a frame-rate governor that keeps the ball count
playable.

Examples:
  brickfast play
  brickfast play --difficulty hard --endless
  brickfast levels
  brickfast levels "twin walls"
  brickfast sim --ticks 10000 --seed 7`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			shutdown, err = telemetry.Setup(cmd.Context(), telemetry.ServiceName, env.OTelEndpoint)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	root.PersistentFlags().IntVar(&flags.fps, "fps", env.FPS, "Tick rate (frames per second)")
	root.PersistentFlags().Int64Var(&flags.seed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")

	root.AddCommand(newPlayCmd(env, &flags))
	root.AddCommand(newLevelsCmd(env))
	root.AddCommand(newSimCmd(env, &flags))
	return root
}

// newLogger builds a leveled logger writing to w.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "brickfast",
		Level:           lvl,
	})
	return logger, nil
}
