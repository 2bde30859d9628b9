// Package grid stores placed rooms in a sparse map keyed by integer grid
// coordinates and tracks which of them have a model resident in the render
// backend.
package grid

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"varazs/internal/core"
	"varazs/internal/room"
	"varazs/pkg/ds"
)

// Cell is one placed room.
type Cell struct {
	X, Y     int32
	Template *room.Template
	Model    core.Model
	Loaded   bool
}

// Grid owns its cells. It is not safe for concurrent use.
type Grid struct {
	backend  core.Backend
	log      *zap.Logger
	maxCells int

	cells    *ds.HashMap[*Cell]
	resident int
}

// Option configures a Grid.
type Option func(*Grid)

// WithLogger sets the grid's logger.
func WithLogger(log *zap.Logger) Option {
	return func(g *Grid) {
		if log != nil {
			g.log = log
		}
	}
}

// WithMaxCells caps the number of map slots the grid may allocate. Placing a
// room that would need more fails with core.ErrOutOfMemory.
func WithMaxCells(n int) Option {
	return func(g *Grid) { g.maxCells = n }
}

// New returns an empty grid that loads models through backend.
func New(backend core.Backend, opts ...Option) *Grid {
	g := &Grid{backend: backend, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}

	var mapOpts []ds.HashMapOption
	if g.maxCells > 0 {
		mapOpts = append(mapOpts, ds.WithMaxCapacity(g.maxCells))
	}
	g.cells = ds.NewHashMap[*Cell](mapOpts...)
	return g
}

// Key packs a coordinate pair into a map key. Each half is the two's
// complement bit pattern of its coordinate, so distinct pairs never share a
// key.
func Key(x, y int32) uint64 {
	return uint64(uint32(x))<<32 | uint64(uint32(y))
}

// Unpack reverses Key.
func Unpack(key uint64) (x, y int32) {
	return int32(uint32(key >> 32)), int32(uint32(key))
}

// Place puts t at (x, y). An occupied cell is left as it is.
func (g *Grid) Place(x, y int32, t *room.Template) error {
	if g.cells == nil {
		g.log.Warn("place called on destroyed grid", zap.Int32("x", x), zap.Int32("y", y))
		return fmt.Errorf("place room (%d,%d): %w", x, y, core.ErrNotInitialized)
	}
	if t == nil {
		return fmt.Errorf("place room (%d,%d): nil template: %w", x, y, core.ErrInvalidArgument)
	}

	key := Key(x, y)
	if _, ok := g.cells.Get(key); ok {
		return nil
	}

	_, _, err := g.cells.Set(key, &Cell{X: x, Y: y, Template: t})
	if errors.Is(err, ds.ErrCapacityExceeded) {
		g.log.Error("grid is full", zap.Int("cells", g.cells.Len()), zap.Int("max", g.maxCells))
		return fmt.Errorf("place room (%d,%d): %w: %w", x, y, core.ErrOutOfMemory, err)
	}
	return err
}

// Cell returns the cell at (x, y), or nil.
func (g *Grid) Cell(x, y int32) *Cell {
	if g.cells == nil {
		return nil
	}
	c, _ := g.cells.Get(Key(x, y))
	return c
}

// Occupied reports whether a room has been placed at (x, y).
func (g *Grid) Occupied(x, y int32) bool { return g.Cell(x, y) != nil }

// LoadModel makes the cell's model resident. Loading a resident cell does
// nothing.
func (g *Grid) LoadModel(c *Cell) error {
	if c == nil {
		return fmt.Errorf("load model: nil cell: %w", core.ErrInvalidArgument)
	}
	if g.cells == nil {
		return fmt.Errorf("load model: %w", core.ErrNotInitialized)
	}
	if c.Loaded {
		return nil
	}

	m, err := g.backend.LoadModel(c.Template.Path)
	if err != nil {
		return fmt.Errorf("load model %s: %w", c.Template.Path, err)
	}
	c.Model = m
	c.Loaded = true
	g.resident++
	return nil
}

// UnloadModel releases the cell's model. Unloading a cell with no model
// does nothing.
func (g *Grid) UnloadModel(c *Cell) error {
	if c == nil {
		return fmt.Errorf("unload model: nil cell: %w", core.ErrInvalidArgument)
	}
	if g.cells == nil {
		return fmt.Errorf("unload model: %w", core.ErrNotInitialized)
	}
	if !c.Loaded {
		return nil
	}

	g.backend.UnloadModel(c.Model)
	c.Model = 0
	c.Loaded = false
	g.resident--
	return nil
}

// Each calls fn for every cell in map order until fn returns false.
func (g *Grid) Each(fn func(*Cell) bool) {
	if g.cells == nil {
		return
	}
	cursor := 0
	for {
		_, c, ok := g.cells.Next(&cursor)
		if !ok || !fn(c) {
			return
		}
	}
}

// Len reports how many rooms are placed.
func (g *Grid) Len() int {
	if g.cells == nil {
		return 0
	}
	return g.cells.Len()
}

// Resident reports how many cells have a model loaded.
func (g *Grid) Resident() int { return g.resident }

// Destroy unloads every resident model and drops all cells. Later calls are
// no-ops.
func (g *Grid) Destroy() {
	if g.cells == nil {
		return
	}
	g.Each(func(c *Cell) bool {
		if c.Loaded {
			g.backend.UnloadModel(c.Model)
			c.Loaded = false
		}
		return true
	})
	g.log.Debug("grid destroyed", zap.Int("cells", g.cells.Len()))
	g.cells.Destroy()
	g.cells = nil
	g.resident = 0
}
