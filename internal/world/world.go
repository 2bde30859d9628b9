// Package world ties template loading, generation and model streaming to a
// moving player position.
package world

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"varazs/internal/core"
	"varazs/internal/gen"
	"varazs/internal/grid"
	"varazs/internal/room"
	rng "varazs/pkg/core"
)

const (
	// DefaultRoomSize is the world-space edge length of one grid cell.
	DefaultRoomSize float32 = 4.0
	// DefaultLoadRadius is the Chebyshev distance within which models stay
	// resident.
	DefaultLoadRadius = 1

	// SpawnHeight lifts the spawn point just above the floor.
	SpawnHeight float32 = 0.1

	// Grid coordinates closer than this to the int32 limits are not streamed.
	edgeMargin = 2
	// Cells this far beyond the load radius are checked for unloading.
	unloadSlack = 2
	// Sentinel player cell before the first update.
	farAway int32 = -9999
)

// Config holds the tunables of a world.
type Config struct {
	RoomSize   float32
	LoadRadius int32
	MaxCells   int        // map slot cap; 0 means unbounded
	Table      room.Table // nil selects room.DefaultTable
}

// DefaultConfig returns the stock world settings.
func DefaultConfig() Config {
	return Config{RoomSize: DefaultRoomSize, LoadRadius: DefaultLoadRadius}
}

func (c Config) normalized() Config {
	if c.RoomSize <= 0 {
		c.RoomSize = DefaultRoomSize
	}
	if c.LoadRadius < 0 {
		c.LoadRadius = DefaultLoadRadius
	}
	return c
}

// World owns one generated dungeon. Every World has its own registry, grid,
// generator and random stream, so separate worlds may run on separate
// goroutines. A single World is not safe for concurrent use.
type World struct {
	cfg     Config
	backend core.Backend
	log     *zap.Logger

	rng  *rng.RNG
	reg  *room.Registry
	grid *grid.Grid
	gen  *gen.Generator

	seed        uint64
	assets      string
	initialized bool
	px, py      int32

	counters counters
}

type counters struct {
	updates      int
	passes       int
	passFailures int
	placed       int
	loads        int
	unloads      int
	draws        int
	lastPass     gen.PassStats
}

// New returns an uninitialized world that renders through backend.
func New(cfg Config, backend core.Backend, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		cfg:     cfg.normalized(),
		backend: backend,
		log:     log,
		px:      farAway,
		py:      farAway,
	}
}

// Init loads the templates in assets, generates the starting area from seed
// and streams in the rooms around the origin. Calling Init on an
// initialized world does nothing.
func (w *World) Init(seed uint64, assets string) error {
	if w.initialized {
		return nil
	}

	w.rng = rng.NewRNG(seed)
	w.reg = room.NewRegistry(w.rng, room.WithLogger(w.log), room.WithTable(w.cfg.Table))
	w.grid = grid.New(w.backend, grid.WithLogger(w.log), grid.WithMaxCells(w.cfg.MaxCells))
	w.gen = gen.New(w.reg, w.grid, w.rng, gen.WithLogger(w.log))

	n, err := w.reg.LoadAll(assets)
	if err != nil {
		w.teardown()
		return fmt.Errorf("init world: %w", err)
	}
	if n == 0 {
		w.teardown()
		return fmt.Errorf("init world: no room templates in %s: %w", assets, core.ErrNotFound)
	}

	if err := w.gen.Init(seed); err != nil {
		w.teardown()
		return fmt.Errorf("init world: %w", err)
	}

	w.seed = seed
	w.assets = assets
	w.initialized = true
	w.px, w.py = farAway, farAway
	w.counters = counters{}

	w.log.Info("world initialized",
		zap.Uint64("seed", seed),
		zap.String("assets", assets),
		zap.Int("templates", n),
		zap.Int("rooms", w.grid.Len()),
	)
	return w.Update(core.Vec3{})
}

// Update moves the player to pos. Entering a new cell runs a generation pass
// around it and then loads models within the load radius and unloads the
// ones just outside it. Staying in the same cell does nothing.
func (w *World) Update(pos core.Vec3) error {
	if !w.initialized {
		return fmt.Errorf("update world: %w", core.ErrNotInitialized)
	}

	x, y := w.gridCoords(pos)
	if x == w.px && y == w.py {
		return nil
	}
	w.px, w.py = x, y
	w.counters.updates++

	if nearLimit(x) || nearLimit(y) {
		w.log.Debug("player at grid edge, streaming skipped", zap.Int32("x", x), zap.Int32("y", y))
		return nil
	}

	before := w.grid.Len()
	st, err := w.gen.CreateChunkStats(x, y)
	w.counters.passes++
	w.counters.lastPass = st
	w.counters.placed += w.grid.Len() - before
	if err != nil {
		w.counters.passFailures++
		w.log.Error("chunk generation failed", zap.Int32("x", x), zap.Int32("y", y), zap.Error(err))
	}

	w.stream(x, y)
	return nil
}

func (w *World) stream(px, py int32) {
	scan := int64(w.cfg.LoadRadius) + unloadSlack
	load := int64(w.cfg.LoadRadius)

	w.eachInWindow(px, py, scan, func(c *grid.Cell, dx, dy int64) {
		if abs64(dx) <= load && abs64(dy) <= load {
			if c.Loaded {
				return
			}
			if err := w.grid.LoadModel(c); err != nil {
				w.log.Warn("load room model", zap.String("path", c.Template.Path), zap.Error(err))
				return
			}
			w.counters.loads++
			return
		}
		if c.Loaded {
			_ = w.grid.UnloadModel(c)
			w.counters.unloads++
		}
	})
}

// Draw submits every resident room within the load radius to the backend.
func (w *World) Draw() error {
	if !w.initialized {
		return fmt.Errorf("draw world: %w", core.ErrNotInitialized)
	}
	w.eachInWindow(w.px, w.py, int64(w.cfg.LoadRadius), func(c *grid.Cell, _, _ int64) {
		if !c.Loaded {
			return
		}
		w.backend.DrawModel(c.Model, w.cellOrigin(c.X, c.Y), 1)
		w.counters.draws++
	})
	return nil
}

// Destroy releases every model and template. It is safe to call more than
// once; a destroyed world may be initialized again.
func (w *World) Destroy() {
	if !w.initialized {
		return
	}
	w.teardown()
	w.initialized = false
	w.px, w.py = farAway, farAway
	w.log.Info("world destroyed", zap.Uint64("seed", w.seed))
}

func (w *World) teardown() {
	if w.grid != nil {
		w.grid.Destroy()
	}
	if w.reg != nil {
		w.reg.UnloadAll()
	}
}

// Initialized reports whether Init has succeeded since the last Destroy.
func (w *World) Initialized() bool { return w.initialized }

// Seed returns the seed the world was generated from.
func (w *World) Seed() uint64 { return w.seed }

// Config returns the effective configuration.
func (w *World) Config() Config { return w.cfg }

// CellAt returns the room containing the world-space position, or nil.
func (w *World) CellAt(pos core.Vec3) *grid.Cell {
	if !w.initialized {
		return nil
	}
	x, y := w.gridCoords(pos)
	return w.grid.Cell(x, y)
}

// RoomCenter returns the floor centre of the cell containing pos. Cameras
// use it as a stable focus point.
func (w *World) RoomCenter(pos core.Vec3) core.Vec3 {
	x, y := w.gridCoords(pos)
	return w.cellOrigin(x, y)
}

// SpawnPosition is where the player starts: the middle of the starting room,
// slightly above the floor.
func (w *World) SpawnPosition() core.Vec3 {
	return core.Vec3{Y: SpawnHeight}
}

// PlayerCell returns the grid cell of the last Update.
func (w *World) PlayerCell() (x, y int32) { return w.px, w.py }

// Cell returns the room at grid coordinates (x, y), or nil.
func (w *World) Cell(x, y int32) *grid.Cell {
	if !w.initialized {
		return nil
	}
	return w.grid.Cell(x, y)
}

// Rooms reports how many rooms have been placed.
func (w *World) Rooms() int {
	if !w.initialized {
		return 0
	}
	return w.grid.Len()
}

// Each visits every placed room until fn returns false.
func (w *World) Each(fn func(*grid.Cell) bool) {
	if !w.initialized {
		return
	}
	w.grid.Each(fn)
}

func (w *World) gridCoords(pos core.Vec3) (int32, int32) {
	return toCell(pos.X, w.cfg.RoomSize), toCell(pos.Z, w.cfg.RoomSize)
}

func (w *World) cellOrigin(x, y int32) core.Vec3 {
	return core.Vec3{X: float32(x) * w.cfg.RoomSize, Z: float32(y) * w.cfg.RoomSize}
}

// eachInWindow calls fn for each placed cell within radius of (cx, cy),
// passing its offset from the centre.
func (w *World) eachInWindow(cx, cy int32, radius int64, fn func(c *grid.Cell, dx, dy int64)) {
	for dy := -radius; dy <= radius; dy++ {
		y := int64(cy) + dy
		if y < math.MinInt32 || y > math.MaxInt32 {
			continue
		}
		for dx := -radius; dx <= radius; dx++ {
			x := int64(cx) + dx
			if x < math.MinInt32 || x > math.MaxInt32 {
				continue
			}
			if c := w.grid.Cell(int32(x), int32(y)); c != nil {
				fn(c, dx, dy)
			}
		}
	}
}

// toCell rounds half away from zero and saturates at the int32 range.
func toCell(v, size float32) int32 {
	r := math.Round(float64(v) / float64(size))
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt32:
		return math.MaxInt32
	case r <= math.MinInt32:
		return math.MinInt32
	}
	return int32(r)
}

func nearLimit(v int32) bool {
	return v > math.MaxInt32-edgeMargin || v < math.MinInt32+edgeMargin
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
