package render

import (
	"fmt"

	"varazs/internal/core"
)

// HeadlessName is the registry name of the headless backend.
const HeadlessName = "headless"

func init() {
	core.RegisterBackend(HeadlessName, func() (core.Backend, error) {
		return NewHeadless(), nil
	})
}

// DrawCall records one DrawModel request.
type DrawCall struct {
	Model core.Model
	Path  string
	Pos   core.Vec3
	Scale float32
}

// Headless is a Backend that keeps models in a handle table instead of on a
// GPU. It counts every call and records draws so tools and tests can inspect
// what a world asked for.
type Headless struct {
	next   core.Model
	models map[core.Model]string

	loads   int
	unloads int
	draws   []DrawCall
	frames  int
}

// NewHeadless returns an empty headless backend.
func NewHeadless() *Headless {
	return &Headless{models: make(map[core.Model]string)}
}

// LoadModel issues a fresh handle for path.
func (h *Headless) LoadModel(path string) (core.Model, error) {
	if path == "" {
		return 0, fmt.Errorf("load model: empty path: %w", core.ErrInvalidArgument)
	}
	h.next++
	h.models[h.next] = path
	h.loads++
	return h.next, nil
}

// UnloadModel releases m. Unknown handles are ignored.
func (h *Headless) UnloadModel(m core.Model) {
	if _, ok := h.models[m]; !ok {
		return
	}
	delete(h.models, m)
	h.unloads++
}

// DrawModel records the draw.
func (h *Headless) DrawModel(m core.Model, pos core.Vec3, scale float32) {
	h.draws = append(h.draws, DrawCall{Model: m, Path: h.models[m], Pos: pos, Scale: scale})
}

// EndFrame clears the draw log and counts a frame.
func (h *Headless) EndFrame() {
	h.draws = h.draws[:0]
	h.frames++
}

// Live reports how many models are currently loaded.
func (h *Headless) Live() int { return len(h.models) }

// Path returns the asset path behind a live handle.
func (h *Headless) Path(m core.Model) (string, bool) {
	p, ok := h.models[m]
	return p, ok
}

// Loads reports the total number of successful LoadModel calls.
func (h *Headless) Loads() int { return h.loads }

// Unloads reports the total number of UnloadModel calls that released a model.
func (h *Headless) Unloads() int { return h.unloads }

// Draws returns the draws recorded since the last EndFrame.
func (h *Headless) Draws() []DrawCall { return h.draws }

// Frames reports how many frames have been ended.
func (h *Headless) Frames() int { return h.frames }

// Stats summarises backend activity for presentation.
func (h *Headless) Stats() core.StatGroup {
	return core.StatGroup{
		Name: "Backend",
		Stats: []core.Stat{
			core.IntStat("backend_live", "Live models", h.Live()),
			core.IntStat("backend_loads", "Loads", h.loads),
			core.IntStat("backend_unloads", "Unloads", h.unloads),
			core.IntStat("backend_frames", "Frames", h.frames),
		},
	}
}
