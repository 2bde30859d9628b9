//go:build ebiten

package app

import (
	"image/color"
	"time"

	"go.uber.org/zap"

	"varazs/internal/core"
	"varazs/internal/render"
	"varazs/internal/room"
	"varazs/internal/ui"
	"varazs/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth     = 240
	playerPixels = 8
	// Player speed in rooms per second.
	roomsPerSecond = 2.5
)

// Game adapts a streaming world to the ebiten.Game interface.
type Game struct {
	world   *world.World
	backend *render.Ebiten
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *zap.Logger

	assets string
	seed   uint64
	pos    core.Vec3
	speed  float32

	viewW, viewH int
	marker       *ebiten.Image
}

// New constructs a Game around an initialized world. The world must draw
// through backend.
func New(w *world.World, backend *render.Ebiten, assets string, viewW, viewH, tps int, log *zap.Logger) *Game {
	if tps <= 0 {
		tps = 60
	}
	g := &Game{
		world:   w,
		backend: backend,
		hud:     ui.NewHUD(w, hudWidth, "varazs"),
		overlay: ui.NewOverlay(w),
		log:     log,
		assets:  assets,
		seed:    w.Seed(),
		pos:     w.SpawnPosition(),
		speed:   w.Config().RoomSize * roomsPerSecond / float32(tps),
		viewW:   viewW,
		viewH:   viewH,
	}
	g.marker = ebiten.NewImage(playerPixels, playerPixels)
	g.marker.Fill(render.DefaultPalette.Player)
	return g
}

// Reset rebuilds the world from seed and puts the player back at the spawn.
func (g *Game) Reset(seed uint64) error {
	g.world.Destroy()
	if err := g.world.Init(seed, g.assets); err != nil {
		return err
	}
	g.seed = seed
	g.pos = g.world.SpawnPosition()
	g.log.Info("world reset", zap.Uint64("seed", seed), zap.Int("rooms", g.world.Rooms()))
	return nil
}

// Update handles input, moves the player and streams the world.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := g.Reset(uint64(time.Now().UnixNano())); err != nil {
			return err
		}
	}
	g.overlay.Update()

	var dx, dz float32
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dz += g.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dz -= g.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= g.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += g.speed
	}
	g.move(dx, 0)
	g.move(0, dz)

	if err := g.world.Update(g.pos); err != nil {
		return err
	}
	g.hud.Update()
	return nil
}

// move applies one axis of motion. The player may only leave a room
// through a door into a placed neighbour.
func (g *Game) move(dx, dz float32) {
	if dx == 0 && dz == 0 {
		return
	}
	next := g.pos
	next.X += dx
	next.Z += dz

	from := g.world.CellAt(g.pos)
	to := g.world.CellAt(next)
	if to == nil {
		return
	}
	if from != nil && from != to {
		var door room.Door
		switch {
		case to.Y > from.Y:
			door = room.North
		case to.Y < from.Y:
			door = room.South
		case to.X > from.X:
			door = room.East
		default:
			door = room.West
		}
		if !from.Template.Doors.Has(door) || !to.Template.Doors.Has(door.Opposite()) {
			return
		}
	}
	g.pos = next
}

// Draw renders the rooms around the camera, the player and the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 24, G: 22, B: 28, A: 255})

	b := screen.Bounds()
	b.Max.X -= g.hud.Width()
	view := screen.SubImage(b).(*ebiten.Image)

	g.backend.Begin(view, g.world.RoomCenter(g.pos))
	if err := g.world.Draw(); err != nil {
		g.log.Warn("draw world", zap.Error(err))
	}
	px, py := g.backend.ScreenPos(g.pos)
	g.backend.End()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(px-playerPixels/2, py-playerPixels/2)
	view.DrawImage(g.marker, op)

	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewW, g.viewH)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewW + g.hud.Width(), g.viewH
}
