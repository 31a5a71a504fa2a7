// bugs is a terminal avoidance game: steer the green square onto the blue
// target while red bugs bounce around the field. It can be played by hand
// or by a built-in autopilot.
//
// Usage:
//
//	bugs play [--mode manual|autonomous]  - Play a round
//	bugs sim [--runs N]                    - Run the autopilot headlessly
//	bugs menu                              - Pick a mode interactively
//	bugs serve                             - Start SSH server for remote play
//	bugs scores [game]                     - Show high scores
//	bugs list                              - List games and modes
//
// Global flags:
//
//	--fps <rate>        - Render rate (default: 60)
//	--seed <value>      - RNG seed for reproducible play
//	--db <path>         - Scores database (default: ~/.bugs/scores.db)
//	--config <path>     - Custom config YAML
//	--difficulty <name> - easy, normal, hard or fixed
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination for the terminal UI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pickfire/bugs/internal/config"
	"github.com/pickfire/bugs/internal/games/bugs"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bugs",
	Short: "Bugs - collect the target, dodge the bugs",
	Long: `Bugs is a terminal arcade game. Move the green square onto the blue
target to score; every capture releases another red bug. Touching a bug
ends the round.

Available commands:
  play     - Play a round, by hand or on autopilot
  sim      - Run autopilot rounds without a terminal
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  list     - Show games and controller modes

Examples:
  bugs play
  bugs play --mode autonomous
  bugs sim --runs 100 --workers 8
  bugs serve --ssh :2222
  bugs scores bugs_auto`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" {
			if _, err := config.ParsePreset(flagDifficulty); err != nil {
				return err
			}
		}
		bugs.SetConfigPath(flagConfig)
		bugs.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.bugs/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.bugs/bugs.log", "Log file used while the terminal UI is open")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
