//go:build ebiten

package ui

import (
	"image/color"

	"varazs/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 10
	headerBaseline = 14
	lineHeight     = 16
	groupGap       = 8
)

// StatsProvider is anything that can describe itself for the HUD.
type StatsProvider interface {
	Stats() core.StatsSnapshot
}

// HUD renders the world statistics panel to the right of the map view.
type HUD struct {
	src      StatsProvider
	width    int
	panel    *ebiten.Image
	height   int
	snapshot core.StatsSnapshot
	extra    []core.StatGroup
	title    string
}

// NewHUD constructs a HUD for the provided source and panel width.
func NewHUD(src StatsProvider, width int, title string) *HUD {
	if width < 0 {
		width = 0
	}
	if title == "" {
		title = "Dungeon"
	}
	return &HUD{src: src, width: width, title: title}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot. Extra groups are appended after the
// source's own.
func (h *HUD) Update(extra ...core.StatGroup) {
	if h == nil || h.src == nil {
		return
	}
	h.snapshot = h.src.Stats()
	h.extra = extra
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.height != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.height = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStats()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawStats() {
	face := basicfont.Face7x13
	header := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	label := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	value := color.RGBA{R: 230, G: 230, B: 240, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, header)
	y += lineHeight + groupGap

	groups := append(append([]core.StatGroup(nil), h.snapshot.Groups...), h.extra...)
	for _, g := range groups {
		text.Draw(h.panel, g.Name, face, panelPadding, y, header)
		y += lineHeight
		for _, st := range g.Stats {
			text.Draw(h.panel, st.Label, face, panelPadding, y, label)
			w := text.BoundString(face, st.Value).Dx()
			text.Draw(h.panel, st.Value, face, h.width-panelPadding-w, y, value)
			y += lineHeight
		}
		y += groupGap
	}

	help := []string{"WASD/arrows move", "M map  R reset  N new seed", "Q quit"}
	y = h.height - panelPadding - lineHeight*(len(help)-1)
	for _, line := range help {
		text.Draw(h.panel, line, face, panelPadding, y, label)
		y += lineHeight
	}
}
