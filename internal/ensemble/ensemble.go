package ensemble

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/metrics"
	"github.com/san-kum/kinetype/internal/script"
	"github.com/san-kum/kinetype/internal/session"
)

var ErrNoRuns = errors.New("ensemble: runs must be positive")

// Config describes a batch of identical sessions that differ only by seed.
type Config struct {
	Session   session.Config
	Width     float64
	Height    float64
	Ticks     int
	Script    *script.Script
	Runs      int
	SeedStart int64
	// Workers bounds concurrency; zero means GOMAXPROCS.
	Workers int
}

type Result struct {
	Seed    int64
	Ticks   int
	Metrics map[string]float64
}

type Summary struct {
	Mean float64
	Min  float64
	Max  float64
}

// Run plays the script against Runs sessions seeded SeedStart,
// SeedStart+1, ... and returns their metrics in seed order. The measurer is
// shared and must be safe for concurrent use.
func Run(ctx context.Context, cfg Config, m layout.Measurer) ([]Result, error) {
	if cfg.Runs <= 0 {
		return nil, ErrNoRuns
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, cfg.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < cfg.Runs; i++ {
		g.Go(func() error {
			sc := cfg.Session
			sc.Seed = cfg.SeedStart + int64(i)

			res, err := runOne(ctx, cfg, sc, m)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runOne(ctx context.Context, cfg Config, sc session.Config, m layout.Measurer) (Result, error) {
	sess, err := session.New(sc, m)
	if err != nil {
		return Result{}, err
	}
	defer sess.Close()

	if err := sess.Resize(cfg.Width, cfg.Height); err != nil {
		return Result{}, err
	}

	set := metrics.Default()
	sess.AddObserver(set)

	n := cfg.Ticks
	var player *script.Player
	if cfg.Script != nil {
		player = script.NewPlayer(cfg.Script)
		n = max(n, cfg.Script.Ticks()+1)
	}

	for t := 0; t < n; t++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if player != nil {
			if err := player.Advance(sess); err != nil {
				return Result{}, err
			}
		}
		if _, err := sess.Tick(); err != nil {
			return Result{}, err
		}
	}

	return Result{Seed: sc.Seed, Ticks: n, Metrics: set.Values()}, nil
}

// Summarize reduces each metric across results.
func Summarize(results []Result) map[string]Summary {
	out := make(map[string]Summary)
	if len(results) == 0 {
		return out
	}

	names := make([]string, 0, len(results[0].Metrics))
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, r := range results {
			v := r.Metrics[name]
			s.Mean += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
		s.Mean /= float64(len(results))
		out[name] = s
	}
	return out
}
