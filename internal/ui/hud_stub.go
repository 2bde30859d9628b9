//go:build !ebiten

package ui

import "varazs/internal/core"

// StatsProvider is anything that can describe itself for the HUD.
type StatsProvider interface {
	Stats() core.StatsSnapshot
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(StatsProvider, int, string) *HUD { return nil }

// Width is always zero in the headless build.
func (h *HUD) Width() int { return 0 }

// Update is a no-op in the headless build.
func (h *HUD) Update(...core.StatGroup) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
