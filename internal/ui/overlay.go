//go:build ebiten

package ui

import (
	"image/color"

	"varazs/internal/core"
	"varazs/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowProvider rasterises the rooms around the player.
type WindowProvider interface {
	Window(radius int) *core.ByteGrid
}

const (
	minimapRadius = 7
	minimapTile   = 9
	minimapMargin = 8
)

// Overlay draws the minimap in the top-left corner. M toggles it.
type Overlay struct {
	src  WindowProvider
	show bool

	img   *ebiten.Image
	frame *ebiten.Image
}

// NewOverlay constructs a minimap overlay for src, initially visible.
func NewOverlay(src WindowProvider) *Overlay {
	return &Overlay{src: src, show: true}
}

// Visible reports whether the minimap is drawn.
func (o *Overlay) Visible() bool { return o.show }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.show = !o.show
	}
}

// Draw renders the minimap onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || o.src == nil {
		return
	}
	g := o.src.Window(minimapRadius)
	rgba := render.RoomImage(g, minimapTile, render.DefaultPalette, minimapRadius, minimapRadius)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	if o.img == nil || o.img.Bounds().Dx() != w || o.img.Bounds().Dy() != h {
		o.img = ebiten.NewImage(w, h)
		o.frame = ebiten.NewImage(w+4, h+4)
		o.frame.Fill(color.RGBA{R: 10, G: 10, B: 12, A: 200})
	}
	o.img.WritePixels(rgba.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(minimapMargin-2, minimapMargin-2)
	screen.DrawImage(o.frame, op)

	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(minimapMargin, minimapMargin)
	screen.DrawImage(o.img, op)
}
