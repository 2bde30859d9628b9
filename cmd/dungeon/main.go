//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"varazs/internal/app"
	"varazs/internal/config"
	"varazs/internal/core"
	"varazs/internal/render"
	"varazs/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

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
	cfg.Render.Backend = render.EbitenName
	config.BindPath(flag.CommandLine)
	cfg.Bind(flag.CommandLine)
	cfg.BindWindow(flag.CommandLine)
	flag.Parse()

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	b, err := core.NewBackend(cfg.Render.Backend)
	if err != nil {
		return fmt.Errorf("render backend: %w", err)
	}
	backend, ok := b.(*render.Ebiten)
	if !ok {
		return fmt.Errorf("render backend %q cannot open a window", cfg.Render.Backend)
	}

	wcfg, err := cfg.ToWorld()
	if err != nil {
		return fmt.Errorf("world config: %w", err)
	}
	backend.SetRoomSize(wcfg.RoomSize)

	w := world.New(wcfg, backend, log)
	if err := w.Init(cfg.World.Seed, cfg.World.Assets); err != nil {
		return err
	}
	defer w.Destroy()
	log.Info("dungeon ready", zap.Uint64("seed", cfg.World.Seed), zap.Int("rooms", w.Rooms()))

	scale := max(cfg.Window.Scale, 1)
	game := app.New(w, backend, cfg.World.Assets, cfg.Window.Width, cfg.Window.Height, cfg.Window.TPS, log)
	width, height := game.Layout(0, 0)

	ebiten.SetWindowTitle(fmt.Sprintf("varazs (seed %d)", cfg.World.Seed))
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowSize(width*scale, height*scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
