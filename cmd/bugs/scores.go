package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pickfire/bugs/internal/games/bugs"
	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresSim   bool
	flagScoresClear bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game (default: bugs), or the most recent
headless autopilot runs with --sim.

Examples:
  bugs scores
  bugs scores bugs_auto
  bugs scores --limit 0
  bugs scores --all
  bugs scores --sim --limit 50
  bugs scores bugs --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresSim, "sim", false, "Show recent sim runs instead of scores")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every game that has scores")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := bugs.IDManual
	if len(args) > 0 {
		gameID = args[0]
	}
	if !flagScoresSim && !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'bugs list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresSim:
		return printSimRuns(store)
	case flagScoresAll:
		return printAllStats(store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", gameID)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	var scores []storage.ScoreEntry
	if flagScoresLimit <= 0 {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bugs play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Rank", "Score", "Ticks", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-6d  %-8d  %s\n", i+1, e.Score, e.Ticks, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f  Longest run: %d ticks\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestRun)
	}
	return nil
}

func printSimRuns(store *storage.Store) error {
	runs, err := store.RecentSimRuns(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("Recent autopilot runs")
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Try 'bugs sim --save'.")
		return nil
	}

	fmt.Printf("  %-8s  %-20s  %6s  %8s  %-10s  %s\n", "Batch", "Seed", "Score", "Ticks", "End", "Date")
	for _, r := range runs {
		batch := r.BatchID
		if len(batch) > 8 {
			batch = batch[:8]
		}
		fmt.Printf("  %-8s  %-20d  %6d  %8d  %-10s  %s\n",
			batch, r.Seed, r.Score, r.Ticks, r.EndReason, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Println("All games")
	fmt.Println()
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-12s  %5s  %5s  %7s  %8s  %s\n", "Game", "Games", "Best", "Average", "Longest", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-12s  %5d  %5d  %7.1f  %8d  %s\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.LongestRun, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
