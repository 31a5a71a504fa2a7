package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pickfire/bugs/internal/config"
	"github.com/pickfire/bugs/internal/sim"
	"github.com/pickfire/bugs/internal/storage"
)

var (
	flagRuns     int
	flagMaxTicks int
	flagWorkers  int
	flagSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the autopilot without a terminal",
	Long: `Play autopilot rounds headlessly and report how they went.

Run i uses seed --seed+i, so a batch is reproducible. Rounds stop at the
first collision or after --max-ticks ticks. Progress is logged to stderr.

Examples:
  bugs sim
  bugs sim --runs 200 --workers 8 --seed 42
  bugs sim --difficulty hard --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of rounds")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", sim.DefaultMaxTicks, "Tick cap per round")
	simCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel rounds (0 = one per CPU)")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store results in the scores database")
}

func runSim(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "bugs-sim")
	if err != nil {
		return err
	}

	cfg, err := config.LoadBugs(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		config.ApplyBugsPreset(&cfg, preset)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	summary, err := sim.Run(ctx, sim.Options{
		Runs:     flagRuns,
		MaxTicks: flagMaxTicks,
		Seed:     seed,
		Workers:  flagWorkers,
		Config:   cfg,
		Logger:   logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		logger.Warn("interrupted", "finished", len(summary.Results), "requested", flagRuns)
	}

	printSummary(summary, time.Since(start))

	if flagSave && len(summary.Results) > 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveSimRuns(summary.Records()); err != nil {
			return err
		}
		logger.Info("saved runs", "batch", summary.BatchID, "count", len(summary.Results))
	}
	return nil
}

func printSummary(s sim.Summary, elapsed time.Duration) {
	fmt.Printf("Batch %s: %d rounds in %s\n", s.BatchID, len(s.Results), elapsed.Round(time.Millisecond))
	if len(s.Results) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-20s  %6s  %8s  %5s  %s\n", "Seed", "Score", "Ticks", "Bugs", "End")
	fmt.Printf("  %-20s  %6s  %8s  %5s  %s\n", "----", "-----", "-----", "----", "---")
	for _, r := range s.Results {
		fmt.Printf("  %-20d  %6d  %8d  %5d  %s\n", r.Seed, r.Score, r.Ticks, r.Bugs, r.EndReason)
	}
	fmt.Println()
	fmt.Printf("Mean score %.2f, mean ticks %.0f, %d of %d ended in a collision\n",
		s.MeanScore, s.MeanTicks, s.Collisions, len(s.Results))
	fmt.Printf("Best: score %d in %d ticks (seed %d)\n", s.Best.Score, s.Best.Ticks, s.Best.Seed)
}
