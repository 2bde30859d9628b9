package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"varazs/internal/config"
	"varazs/internal/core"
	"varazs/internal/render"
	"varazs/internal/walk"
	"varazs/internal/world"
	rng "varazs/pkg/core"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, path, err := config.Resolve(config.PathFromArgs(os.Args[1:]))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Render.Backend = render.HeadlessName
	config.BindPath(flag.CommandLine)
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 200, "random steps to take when no route is given")
	route := flag.String("route", "", "scripted route of door letters, e.g. SSENNW")
	tps := flag.Int("tps", 0, "ticks per second (0 runs unpaced)")
	pngPath := flag.String("png", "", "write a map of the explored area to this PNG file")
	tile := flag.Int("tile", 9, "pixels per room in the PNG map")
	flag.Parse()

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if path != "" {
		log.Debug("config loaded", zap.String("path", path))
	}

	doors, err := walk.ParseRoute(*route)
	if err != nil {
		return err
	}

	b, err := core.NewBackend(cfg.Render.Backend)
	if err != nil {
		return fmt.Errorf("render backend: %w", err)
	}
	backend := b.(*render.Headless)

	wcfg, err := cfg.ToWorld()
	if err != nil {
		return fmt.Errorf("world config: %w", err)
	}
	w := world.New(wcfg, backend, log)
	if err := w.Init(cfg.World.Seed, cfg.World.Assets); err != nil {
		return err
	}
	defer w.Destroy()

	walker := walk.New(w, rng.NewRNG(cfg.World.Seed^0x9e3779b97f4a7c15))
	ticks := *steps
	if len(doors) > 0 {
		ticks = len(doors)
	}

	var pace *core.FixedStep
	if *tps > 0 {
		pace = core.NewFixedStep(*tps)
	}

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if pace != nil {
			pace.Wait()
		}
		if len(doors) > 0 {
			_, err = walker.Step(doors[i])
		} else {
			_, err = walker.Random()
		}
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if err := w.Draw(); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		backend.EndFrame()
	}
	elapsed := time.Since(start)

	minX, minY, maxX, maxY, ok := w.Bounds()
	if !ok {
		return fmt.Errorf("no rooms placed: %w", core.ErrNotFound)
	}
	region := w.Region(int64(minX), int64(minY), int64(maxX), int64(maxY))
	px, py := walker.Cell()
	markX, markY := int(int64(px)-int64(minX)), int(int64(maxY)-int64(py))

	fmt.Printf("Seed %d: %d ticks in %s, %d moves, %d blocked, %d rooms visited\n\n",
		cfg.World.Seed, ticks, elapsed.Round(time.Millisecond), walker.Moves(), walker.Blocked(), walker.Visited())
	fmt.Print(render.ASCII(region, markX, markY))
	fmt.Println()

	snap := w.Stats()
	snap.Groups = append(snap.Groups, backend.Stats())
	for _, g := range snap.Groups {
		fmt.Println(g.Name)
		for _, st := range g.Stats {
			fmt.Printf("  %-12s %s\n", st.Label, st.Value)
		}
	}

	hist := w.Histogram()
	names := make([]string, 0, len(hist))
	for name := range hist {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if hist[names[i]] != hist[names[j]] {
			return hist[names[i]] > hist[names[j]]
		}
		return names[i] < names[j]
	})
	fmt.Println("Templates")
	for _, name := range names {
		fmt.Printf("  %-16s %d\n", name, hist[name])
	}
	fmt.Printf("Digest %s\n", w.Digest())

	if *pngPath != "" {
		img := render.RoomImage(region, *tile, render.DefaultPalette, markX, markY)
		f, err := os.Create(*pngPath)
		if err != nil {
			return fmt.Errorf("create map: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return fmt.Errorf("encode map: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write map: %w", err)
		}
		log.Info("map written", zap.String("path", *pngPath))
	}
	return nil
}
