package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/game"
	"github.com/bunTree/BrickFast/internal/platform/tui"
)

func newPlayCmd(env config.Env, global *globalFlags) *cobra.Command {
	flags := gameFlags{
		configPath: env.ConfigPath,
		difficulty: env.Difficulty,
		levelsPath: env.Levels,
	}
	logFile := env.LogFile

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play BrickFast",
		Long: `Start an interactive game.

Without --start-level or --endless a menu lets you pick campaign, endless or
a starting layout.

Controls:
  Left/Right, A/D  - Move paddle
  Enter/Space      - Start or restart
  P/Esc            - Pause
  F2               - Debug overlay
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Wider paddle, more power-ups
  normal - Default settings
  hard   - Narrower paddle, fewer power-ups, lower ball cap

Examples:
  brickfast play
  brickfast play --start-level 9
  brickfast play --endless --difficulty hard
  brickfast play --levels ./packs --log-file brickfast.log`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPlay(global, &flags, logFile)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", flags.configPath, "Path to custom game config YAML")
	cmd.Flags().StringVar(&flags.difficulty, "difficulty", flags.difficulty, "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flags.levelsPath, "levels", flags.levelsPath, "Level pack file or directory (.yaml, .yml, .toml)")
	cmd.Flags().IntVar(&flags.startLevel, "start-level", 0, "Start at this level (skips the menu)")
	cmd.Flags().BoolVar(&flags.endless, "endless", false, "Wrap around after the last layout (skips the menu)")
	cmd.Flags().StringVar(&logFile, "log-file", logFile, "Write logs to this file (the terminal belongs to the game)")
	return cmd
}

func runPlay(global *globalFlags, flags *gameFlags, logFile string) error {
	cfg, catalog, err := flags.load()
	if err != nil {
		return err
	}

	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, global.logLevel)
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}
	rt.TickRate = global.fps
	rt.Seed = resolveSeed(global.seed)

	if flags.startLevel == 0 && !flags.endless {
		sel, err := tui.RunLevelSelector(catalog, rt)
		if err != nil {
			return err
		}
		if sel == nil {
			return nil
		}
		flags.startLevel = sel.Level
		flags.endless = sel.Endless
	}

	opts := game.Options{
		Config:     cfg,
		Catalog:    catalog,
		Seed:       rt.Seed,
		StartLevel: flags.startLevel,
		Endless:    flags.endless,
		Logger:     logger,
	}
	logger.Info("starting", "layouts", catalog.Len(), "start_level", opts.StartLevel, "endless", opts.Endless, "fps", rt.TickRate)
	return tui.Run(opts, rt)
}
