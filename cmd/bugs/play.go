package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pickfire/bugs/internal/config"
	"github.com/pickfire/bugs/internal/control"
	"github.com/pickfire/bugs/internal/games/bugs"
	"github.com/pickfire/bugs/internal/platform/tui"
	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/storage"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round in the terminal.

Controls:
  Arrows/WASD  - Move (manual mode)
  P/Space      - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot to ~/.bugs/screenshots
  Q/Ctrl+C     - Quit

Modes:
  manual      - You steer the player
  autonomous  - The autopilot chases the target and dodges bugs

The mode defaults to the "mode" key of the config file.

Examples:
  bugs play
  bugs play --mode autonomous
  bugs play --difficulty hard
  bugs play --config ./my-bugs.yaml --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Controller mode: manual or autonomous")
}

func runPlay(_ *cobra.Command, _ []string) error {
	mode, err := resolveMode()
	if err != nil {
		return err
	}

	game, err := registry.Create(bugs.ForMode(mode))
	if err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without score storage", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	logger.Info("starting", "game", game.ID(), "mode", mode)
	return tui.Run(game, store, runtimeConfig(), logger)
}

// resolveMode picks --mode, then the config file's mode.
func resolveMode() (control.Mode, error) {
	name := flagMode
	if name == "" {
		cfg, err := config.LoadBugs(flagConfig)
		if err != nil {
			return "", err
		}
		name = cfg.Mode
	}
	if name == "" {
		return control.ModeManual, nil
	}
	return control.ParseMode(name)
}
