//go:build ebiten

package render

import (
	"fmt"
	"path/filepath"

	"varazs/internal/core"
	"varazs/internal/room"

	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenName is the registry name of the windowed backend.
const EbitenName = "ebiten"

const (
	defaultTilePixels = 96
	defaultRoomSize   = 4.0
)

func init() {
	core.RegisterBackend(EbitenName, func() (core.Backend, error) {
		return NewEbiten(defaultTilePixels, defaultRoomSize), nil
	})
}

// Ebiten draws rooms top-down as tiles. Each loaded model is a pre-rendered
// tile whose wall openings come from the door mask encoded in its file name.
// Draws land on the target set by Begin; outside Begin/End they are dropped.
type Ebiten struct {
	tile     int
	roomSize float32
	pal      Palette

	next   core.Model
	models map[core.Model]*ebiten.Image

	target *ebiten.Image
	center core.Vec3
}

// NewEbiten returns a backend drawing tile pixels per room of roomSize world
// units.
func NewEbiten(tile int, roomSize float32) *Ebiten {
	if tile < 3 {
		tile = defaultTilePixels
	}
	if roomSize <= 0 {
		roomSize = defaultRoomSize
	}
	return &Ebiten{
		tile:     tile,
		roomSize: roomSize,
		pal:      DefaultPalette,
		models:   make(map[core.Model]*ebiten.Image),
	}
}

// SetRoomSize changes the world-to-screen scale.
func (e *Ebiten) SetRoomSize(size float32) {
	if size > 0 {
		e.roomSize = size
	}
}

// Tile reports the on-screen edge length of one room in pixels.
func (e *Ebiten) Tile() int { return e.tile }

// LoadModel renders the room tile for path.
func (e *Ebiten) LoadModel(path string) (core.Model, error) {
	if path == "" {
		return 0, fmt.Errorf("load model: empty path: %w", core.ErrInvalidArgument)
	}
	var doors room.Door
	if p, ok := room.Classify(filepath.Base(path)); ok {
		doors = p.Doors
	}

	g := core.NewByteGrid(1, 1)
	g.Set(0, 0, 0x80|uint8(doors))
	buf := make([]byte, 4*e.tile*e.tile)
	fillRoomsRGBA(buf, g, e.tile, e.pal, -1, -1)

	img := ebiten.NewImage(e.tile, e.tile)
	img.WritePixels(buf)

	e.next++
	e.models[e.next] = img
	return e.next, nil
}

// UnloadModel frees the tile behind m.
func (e *Ebiten) UnloadModel(m core.Model) {
	img, ok := e.models[m]
	if !ok {
		return
	}
	img.Dispose()
	delete(e.models, m)
}

// Begin directs draws to target with the camera over center.
func (e *Ebiten) Begin(target *ebiten.Image, center core.Vec3) {
	e.target = target
	e.center = center
}

// End stops drawing to the current target.
func (e *Ebiten) End() { e.target = nil }

// DrawModel blits the tile for m at the room position pos. World +Z is
// screen up.
func (e *Ebiten) DrawModel(m core.Model, pos core.Vec3, scale float32) {
	img, ok := e.models[m]
	if !ok || e.target == nil {
		return
	}
	sx, sy := e.ScreenPos(pos)
	half := float64(e.tile) * float64(scale) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(sx-half, sy-half)
	e.target.DrawImage(img, op)
}

// ScreenPos maps a world position to target pixels relative to the camera.
func (e *Ebiten) ScreenPos(pos core.Vec3) (float64, float64) {
	if e.target == nil {
		return 0, 0
	}
	b := e.target.Bounds()
	ppu := float64(e.tile) / float64(e.roomSize)
	x := float64(pos.X-e.center.X)*ppu + float64(b.Dx())/2
	y := float64(e.center.Z-pos.Z)*ppu + float64(b.Dy())/2
	return x, y
}
