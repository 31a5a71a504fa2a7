// Package sim runs autopilot sessions headlessly, without a terminal, to
// measure how well the controller plays.
package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/pickfire/bugs/internal/config"
	"github.com/pickfire/bugs/internal/control"
	"github.com/pickfire/bugs/internal/storage"
	"github.com/pickfire/bugs/internal/world"
)

// End reasons recorded for each run.
const (
	EndCollision = "collision"
	EndTickLimit = "tick_limit"
)

// DefaultMaxTicks caps a run at ten minutes of 30 Hz play.
const DefaultMaxTicks = 30 * 60 * 10

// Options configure a batch of runs.
type Options struct {
	Runs     int   // number of sessions, default 1
	MaxTicks int   // per-session cap, default DefaultMaxTicks
	Seed     int64 // run i uses Seed+i
	Workers  int   // parallel sessions, default GOMAXPROCS
	Config   config.BugsConfig
	Logger   *log.Logger
}

// Result is the outcome of one session.
type Result struct {
	Seed      int64
	Score     int
	Ticks     int
	Bugs      int
	EndReason string
}

// Summary aggregates a batch.
type Summary struct {
	BatchID    string
	Results    []Result // in run order
	Best       Result
	MeanScore  float64
	MeanTicks  float64
	Collisions int
}

// Run plays opts.Runs autopilot sessions and summarizes them. On
// cancellation it returns the runs that finished together with ctx.Err().
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Runs <= 0 {
		opts.Runs = 1
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Workers > opts.Runs {
		opts.Workers = opts.Runs
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if err := opts.Config.Validate(); err != nil {
		return Summary{}, fmt.Errorf("sim: %w", err)
	}

	batch := uuid.NewString()
	logger := opts.Logger.With("batch", batch[:8])

	results := make([]Result, opts.Runs)
	done := make([]bool, opts.Runs)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, ok := playOne(ctx, opts, opts.Seed+int64(i), logger)
				if !ok {
					continue
				}
				results[i] = r
				done[i] = true
				logger.Info("run finished", "run", i, "seed", r.Seed, "score", r.Score, "ticks", r.Ticks, "end", r.EndReason)
			}
		}()
	}

feed:
	for i := 0; i < opts.Runs; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	finished := make([]Result, 0, opts.Runs)
	for i, r := range results {
		if done[i] {
			finished = append(finished, r)
		}
	}
	summary := summarize(batch, finished)
	return summary, ctx.Err()
}

// PlayOne runs a single autopilot session to completion or maxTicks.
func PlayOne(cfg config.BugsConfig, seed int64, maxTicks int, logger *log.Logger) Result {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r, _ := playOne(context.Background(), Options{Config: cfg, MaxTicks: maxTicks}, seed, logger)
	return r
}

// playOne reports false when ctx was cancelled before the session ended.
func playOne(ctx context.Context, opts Options, seed int64, logger *log.Logger) (Result, bool) {
	cfg := opts.Config
	rng := rand.New(rand.NewSource(seed))
	w := world.New(cfg.Screen.Width, cfg.Screen.Height, cfg.WorldParams(), rng)

	dm := config.NewDifficultyManager(cfg.Difficulty)
	if dm.IsEnabled() {
		w.SpeedScale = dm.BugSpeedScale
	}
	ap := control.NewAutopilot(cfg.Bot.Horizon, logger)

	res := Result{Seed: seed, EndReason: EndTickLimit}
	for w.Ticks() < opts.MaxTicks {
		if w.Ticks()%1024 == 0 && ctx.Err() != nil {
			return res, false
		}
		out := w.Tick(ap.Decide(w))
		if out.Over {
			res.EndReason = EndCollision
			break
		}
	}

	res.Score = w.ScoreCount
	res.Ticks = w.Ticks()
	res.Bugs = len(w.Bugs)
	return res, true
}

func summarize(batch string, results []Result) Summary {
	s := Summary{BatchID: batch, Results: results}
	if len(results) == 0 {
		return s
	}

	var scores, ticks int
	for i, r := range results {
		scores += r.Score
		ticks += r.Ticks
		if r.EndReason == EndCollision {
			s.Collisions++
		}
		if i == 0 || r.Score > s.Best.Score || (r.Score == s.Best.Score && r.Ticks > s.Best.Ticks) {
			s.Best = r
		}
	}
	s.MeanScore = float64(scores) / float64(len(results))
	s.MeanTicks = float64(ticks) / float64(len(results))
	return s
}

// Records converts the batch into storage rows.
func (s Summary) Records() []storage.SimRun {
	runs := make([]storage.SimRun, len(s.Results))
	for i, r := range s.Results {
		runs[i] = storage.SimRun{
			BatchID:   s.BatchID,
			Seed:      r.Seed,
			Score:     r.Score,
			Ticks:     r.Ticks,
			Bugs:      r.Bugs,
			EndReason: r.EndReason,
		}
	}
	return runs
}
