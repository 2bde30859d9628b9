package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"varazs/internal/config"
	"varazs/internal/render"
	"varazs/internal/walk"
	"varazs/internal/world"
	rng "varazs/pkg/core"
)

type seedResult struct {
	seed    uint64
	rooms   int
	visited int
	failed  string
	digest  string
	hist    map[string]int
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, _, err := config.Resolve(config.PathFromArgs(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	config.BindPath(flag.CommandLine)
	cfg.Bind(flag.CommandLine)
	seeds := flag.Int("seeds", 32, "number of seeds to generate")
	first := flag.Uint64("start", 1, "first seed")
	steps := flag.Int("steps", 200, "random steps to walk per world")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	check := flag.Bool("check", false, "generate every seed twice and fail on digest mismatch")
	flag.Parse()
	if *seeds <= 0 {
		return fmt.Errorf("-seeds must be positive, got %d", *seeds)
	}

	if cfg.Logging.Level == "info" {
		cfg.Logging.Level = "warn"
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	wcfg, err := cfg.ToWorld()
	if err != nil {
		return fmt.Errorf("world config: %w", err)
	}

	fmt.Printf("Sweeping %d seeds from %d (%d workers, %d steps, check=%v)\n", *seeds, *first, *workers, *steps, *check)

	results := make([]seedResult, *seeds)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*workers, 1))

	start := time.Now()
	for i := range results {
		seed := *first + uint64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := explore(wcfg, cfg.World.Assets, seed, *steps, log)
			if err != nil {
				return err
			}
			if *check {
				again, err := explore(wcfg, cfg.World.Assets, seed, *steps, log)
				if err != nil {
					return err
				}
				if again.digest != res.digest {
					return fmt.Errorf("seed %d is not deterministic: %s != %s", seed, res.digest[:12], again.digest[:12])
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	total := map[string]int{}
	minRooms, maxRooms, sum := results[0].rooms, results[0].rooms, 0
	for _, r := range results {
		fmt.Printf("seed %-10d rooms %-5d visited %-5d digest %s%s\n", r.seed, r.rooms, r.visited, r.digest[:16], r.failed)
		for name, n := range r.hist {
			total[name] += n
		}
		minRooms, maxRooms = min(minRooms, r.rooms), max(maxRooms, r.rooms)
		sum += r.rooms
	}

	names := make([]string, 0, len(total))
	for name := range total {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if total[names[i]] != total[names[j]] {
			return total[names[i]] > total[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Printf("\nRooms min %d max %d mean %.1f\n", minRooms, maxRooms, float64(sum)/float64(len(results)))
	fmt.Println("Templates")
	for _, name := range names {
		share := 100 * float64(total[name]) / float64(sum)
		fmt.Printf("  %-16s %7d %5.1f%% %s\n", name, total[name], share, strings.Repeat("#", int(share/2)))
	}
	fmt.Printf("Sweep complete in %s\n", elapsed.Round(time.Millisecond))
	return nil
}

func explore(cfg world.Config, assets string, seed uint64, steps int, log *zap.Logger) (seedResult, error) {
	w := world.New(cfg, render.NewHeadless(), log.With(zap.Uint64("seed", seed)))
	if err := w.Init(seed, assets); err != nil {
		return seedResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	defer w.Destroy()

	walker := walk.New(w, rng.NewRNG(seed^0x9e3779b97f4a7c15))
	for i := 0; i < steps; i++ {
		if _, err := walker.Random(); err != nil {
			return seedResult{}, fmt.Errorf("seed %d step %d: %w", seed, i, err)
		}
	}

	res := seedResult{
		seed:    seed,
		rooms:   w.Rooms(),
		visited: walker.Visited(),
		digest:  w.Digest(),
		hist:    w.Histogram(),
	}
	if v, ok := w.Stats().Lookup("pass_failures"); ok && v != "0" {
		res.failed = "  pass failures " + v
	}
	return res, nil
}
